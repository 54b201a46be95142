// Package service exposes dealer lookups to the rest of the application.
package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"prequal_backend/internal/dealers/repository"
	"prequal_backend/platform/apperr"
	"prequal_backend/platform/logger"
	"prequal_backend/platform/phone"
)

type Service struct {
	repo *repository.Repository
	log  *logger.Logger
}

func New(repo *repository.Repository, log *logger.Logger) *Service {
	return &Service{repo: repo, log: log}
}

func (s *Service) GetDealer(ctx context.Context, id uuid.UUID) (*repository.Dealer, error) {
	d, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperr.NotFound(fmt.Sprintf("dealer %s not found", id))
	}
	return d, err
}

func (s *Service) GetCoverage(ctx context.Context, state, zip string) ([]repository.CoverageCandidate, error) {
	return s.repo.GetCoverage(ctx, state, zip)
}

func (s *Service) List(ctx context.Context) ([]repository.Dealer, error) {
	return s.repo.List(ctx)
}

// MatchInboundNumber resolves a dealer tracking number to a dealer id.
// A miss is not an error, the call simply carries no dealer attribution.
func (s *Service) MatchInboundNumber(ctx context.Context, number string) (uuid.UUID, bool, error) {
	normalized, ok := phone.Valid(number)
	if !ok {
		normalized = number
	}
	d, err := s.repo.GetByPhone(ctx, normalized)
	if errors.Is(err, repository.ErrNotFound) {
		return uuid.Nil, false, nil
	}
	if err != nil {
		return uuid.Nil, false, err
	}
	return d.ID, true, nil
}

// MatchReferralToken resolves a referral tracking token to a dealer id.
func (s *Service) MatchReferralToken(ctx context.Context, token string) (uuid.UUID, bool, error) {
	if token == "" {
		return uuid.Nil, false, nil
	}
	d, err := s.repo.GetByReferralToken(ctx, token)
	if errors.Is(err, repository.ErrNotFound) {
		return uuid.Nil, false, nil
	}
	if err != nil {
		return uuid.Nil, false, err
	}
	return d.ID, true, nil
}
