package routing

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"prequal_backend/internal/events"
	leadsrepo "prequal_backend/internal/leads/repository"
	leadssvc "prequal_backend/internal/leads/service"
	"prequal_backend/platform/apperr"
	"prequal_backend/platform/config"
	"prequal_backend/platform/logger"
)

// Service runs the ladder against persisted leads and records the outcome.
type Service struct {
	leads  *leadsrepo.Repository
	lookup DealerLookup
	cfg    config.RoutingConfig
	bus    events.Bus
	log    *logger.Logger
}

func NewService(leads *leadsrepo.Repository, lookup DealerLookup, cfg config.RoutingConfig, bus events.Bus, log *logger.Logger) *Service {
	return &Service{leads: leads, lookup: lookup, cfg: cfg, bus: bus, log: log}
}

// Route assigns a dealer to a lead. Already-assigned leads are left alone;
// a repeat call is a no-op, not an error.
func (s *Service) Route(ctx context.Context, leadID uuid.UUID) error {
	lead, err := s.leads.GetByID(ctx, leadID)
	if errors.Is(err, leadsrepo.ErrNotFound) {
		return apperr.NotFound(fmt.Sprintf("lead %s not found", leadID))
	}
	if err != nil {
		return fmt.Errorf("load lead: %w", err)
	}

	if lead.AssignedDealerID != nil {
		s.log.Info("lead already routed", "leadId", leadID, "dealerId", *lead.AssignedDealerID)
		return nil
	}

	decision, err := Decide(ctx, lead, s.lookup, s.cfg.GetFallbackDealerID())
	if err != nil {
		if incErr := s.leads.IncrementRoutingAttempt(ctx, leadID); incErr != nil {
			s.log.Warn("failed to record routing attempt", "leadId", leadID, "error", incErr)
		}
		return fmt.Errorf("routing decision: %w", err)
	}

	applied, err := s.leads.SetAssignment(ctx, leadID, decision.DealerID, decision.AssignmentType, decision.Reason)
	if err != nil {
		return fmt.Errorf("persist assignment: %w", err)
	}
	if !applied {
		// Another worker won the race. Their assignment stands.
		s.log.Info("lead already routed", "leadId", leadID)
		return nil
	}

	attempt := lead.RoutingAttemptCount + 1
	s.audit(ctx, leadID, decision, attempt)

	candidateIDs := make([]string, 0, len(decision.Candidates))
	for _, c := range decision.Candidates {
		candidateIDs = append(candidateIDs, c.DealerID.String())
	}
	s.log.RoutingDecision(leadID.String(), decision.DealerID.String(), decision.AssignmentType, decision.Reason, attempt, candidateIDs)

	s.bus.Publish(ctx, events.LeadRouted{
		BaseEvent:        events.NewBaseEvent(),
		LeadID:           leadID,
		DealerID:         decision.DealerID,
		AssignmentType:   decision.AssignmentType,
		AssignmentReason: decision.Reason,
		Attempt:          attempt,
	})
	return nil
}

func (s *Service) audit(ctx context.Context, leadID uuid.UUID, decision Decision, attempt int) {
	detail, err := json.Marshal(struct {
		Decision
		Attempt int `json:"attempt"`
	}{decision, attempt})
	if err != nil {
		s.log.Warn("failed to encode routing audit detail", "leadId", leadID, "error", err)
		detail = nil
	}
	if err := s.leads.AppendEvent(ctx, leadID, leadssvc.EventLeadRouted, detail); err != nil {
		s.log.Warn("failed to append lead event", "leadId", leadID, "event", leadssvc.EventLeadRouted, "error", err)
	}
}
