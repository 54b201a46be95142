// Package service holds lead persistence and dashboard query logic.
package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"prequal_backend/internal/intake/domain"
	"prequal_backend/internal/leads/repository"
	"prequal_backend/platform/apperr"
	"prequal_backend/platform/logger"
)

// Lead event types recorded on the audit timeline.
const (
	EventLeadCreated = "lead_created"
	EventLeadUpdated = "lead_updated"
	EventLeadRouted  = "lead_routed"
)

type Service struct {
	repo *repository.Repository
	log  *logger.Logger
}

func New(repo *repository.Repository, log *logger.Logger) *Service {
	return &Service{repo: repo, log: log}
}

// CreateLead persists a session snapshot as a lead. Calling it twice for the
// same session returns the same lead id.
func (s *Service) CreateLead(ctx context.Context, snap domain.LeadSnapshot) (uuid.UUID, error) {
	id, err := s.repo.Create(ctx, snap)
	if err != nil {
		return uuid.Nil, fmt.Errorf("create lead: %w", err)
	}
	if err := s.repo.AppendEvent(ctx, id, EventLeadCreated, nil); err != nil {
		s.log.Warn("failed to append lead event", "leadId", id, "event", EventLeadCreated, "error", err)
	}
	return id, nil
}

// UpdateLead refreshes a lead from the latest session snapshot.
func (s *Service) UpdateLead(ctx context.Context, leadID uuid.UUID, snap domain.LeadSnapshot) error {
	if err := s.repo.Update(ctx, leadID, snap); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperr.NotFound(fmt.Sprintf("lead %s not found", leadID))
		}
		return fmt.Errorf("update lead: %w", err)
	}
	if err := s.repo.AppendEvent(ctx, leadID, EventLeadUpdated, nil); err != nil {
		s.log.Warn("failed to append lead event", "leadId", leadID, "event", EventLeadUpdated, "error", err)
	}
	return nil
}

func (s *Service) GetLead(ctx context.Context, id uuid.UUID) (*repository.Lead, error) {
	l, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperr.NotFound(fmt.Sprintf("lead %s not found", id))
	}
	return l, err
}

func (s *Service) ListLeads(ctx context.Context, p repository.ListParams) ([]repository.Lead, error) {
	return s.repo.List(ctx, p)
}

func (s *Service) ListEvents(ctx context.Context, leadID uuid.UUID) ([]repository.Event, error) {
	if _, err := s.GetLead(ctx, leadID); err != nil {
		return nil, err
	}
	return s.repo.ListEvents(ctx, leadID)
}

// Repository exposes the repository for modules that share the lead tables.
func (s *Service) Repository() *repository.Repository {
	return s.repo
}
