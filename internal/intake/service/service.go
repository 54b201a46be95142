// Package service orchestrates conversation turns: it applies extracted field
// updates to the session, runs the deterministic controller, and drives the
// fire-and-log persistence and routing side effects.
package service

import (
	"context"
	"errors"
	"time"

	"prequal_backend/internal/events"
	"prequal_backend/internal/intake/domain"
	"prequal_backend/internal/intake/ports"
	"prequal_backend/internal/intake/transport"
	"prequal_backend/platform/apperr"
	"prequal_backend/platform/logger"

	"github.com/google/uuid"
)

type Service struct {
	sessions  ports.SessionStore
	leads     ports.LeadStore
	router    ports.LeadRouter
	matcher   ports.AttributionMatcher
	extractor ports.Extractor
	bus       events.Bus
	log       *logger.Logger
	now       func() time.Time
}

// Option customizes the service; used by tests to pin the clock.
type Option func(*Service)

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// New creates the intake service. The extractor may be nil, in which case
// turns must carry pre-extracted field maps.
func New(sessions ports.SessionStore, leads ports.LeadStore, router ports.LeadRouter,
	matcher ports.AttributionMatcher, extractor ports.Extractor,
	bus events.Bus, log *logger.Logger, opts ...Option) *Service {

	s := &Service{
		sessions:  sessions,
		leads:     leads,
		router:    router,
		matcher:   matcher,
		extractor: extractor,
		bus:       bus,
		log:       log,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start opens a conversation and acquires the attribution lock from the
// inbound number or referral token when either matches a dealer.
func (s *Service) Start(ctx context.Context, req transport.StartConversationRequest) (transport.TurnResponse, error) {
	now := s.now()
	session := domain.NewSession(req.Entrypoint, now)
	session.Attribution.TrackingToken = req.TrackingToken

	s.acquireLock(ctx, session, req, now)

	if err := s.sessions.Save(ctx, session); err != nil {
		return transport.TurnResponse{}, apperr.Wrap(apperr.KindInternal, "failed to save conversation", err)
	}

	s.bus.Publish(ctx, events.ConversationStarted{
		BaseEvent:      events.NewBaseEvent(),
		ConversationID: session.ID,
		Entrypoint:     req.Entrypoint,
		LockedDealerID: session.Attribution.LockedDealerID,
		LockedReason:   session.Attribution.LockedReason,
	})

	return s.respond(session, session.NextAction()), nil
}

// Turn processes one caller turn and returns the single next action.
func (s *Service) Turn(ctx context.Context, conversationID uuid.UUID, req transport.TurnRequest) (transport.TurnResponse, error) {
	session, err := s.sessions.Get(ctx, conversationID)
	if err != nil {
		return transport.TurnResponse{}, err
	}
	if session.Ended {
		return transport.TurnResponse{}, apperr.Gone("conversation has ended")
	}

	now := s.now()
	log := s.log.WithConversationID(conversationID.String())

	updates := req.Fields
	confirmation := req.ConfirmationResponse
	if len(updates) == 0 && req.Utterance != "" && s.extractor != nil {
		extracted, err := s.extractor.Extract(ctx, req.Utterance, session.Phase)
		if err != nil {
			// Extraction failure is non-fatal: the controller re-issues the
			// outstanding question on the response below.
			log.Error("extraction failed", "error", err)
		} else {
			updates = extracted.Fields
			if confirmation == nil {
				confirmation = extracted.Confirmation
			}
		}
	}

	s.applyConfirmation(session, confirmation, now, log)
	s.applyUpdates(session, updates, now, log)

	session.AdvancePhases(now)
	action := session.NextAction()
	if action.Type == domain.ActionAsk {
		session.IncrementAsk(action.Field)
	}

	s.runSideEffects(ctx, session, action, now, log)

	if err := s.sessions.Save(ctx, session); err != nil {
		return transport.TurnResponse{}, apperr.Wrap(apperr.KindInternal, "failed to save conversation", err)
	}

	log.TurnDecision(session.ID.String(), string(session.Phase), string(action.Type), string(action.Field))
	return s.respond(session, action), nil
}

// End terminates a conversation (caller hung up or transport dropped). The
// session becomes read-only; collected data already persisted stays as is.
func (s *Service) End(ctx context.Context, conversationID uuid.UUID) (transport.TurnResponse, error) {
	session, err := s.sessions.Get(ctx, conversationID)
	if err != nil {
		return transport.TurnResponse{}, err
	}

	now := s.now()
	if !session.Ended {
		session.End(domain.EndReasonCallerEnded, now)
		if session.LeadID != nil {
			if err := s.leads.UpdateLead(ctx, *session.LeadID, session.Snapshot()); err != nil {
				s.log.PersistenceError("update_lead", session.ID.String(), err)
			}
		}
		if err := s.sessions.Save(ctx, session); err != nil {
			return transport.TurnResponse{}, apperr.Wrap(apperr.KindInternal, "failed to save conversation", err)
		}
		s.bus.Publish(ctx, events.ConversationEnded{
			BaseEvent:      events.NewBaseEvent(),
			ConversationID: session.ID,
			Reason:         domain.EndReasonCallerEnded,
			DoNotContact:   session.DoNotContact,
		})
	}

	return s.respond(session, domain.Action{Type: domain.ActionEndCall, Reason: domain.EndReasonCallerEnded}), nil
}

// State returns the read-only view of a conversation.
func (s *Service) State(ctx context.Context, conversationID uuid.UUID) (transport.ConversationState, error) {
	session, err := s.sessions.Get(ctx, conversationID)
	if err != nil {
		return transport.ConversationState{}, err
	}
	return transport.ConversationState{
		ConversationID: session.ID,
		Phase:          session.Phase,
		Fields:         session.Fields,
		Prequalified:   session.Prequalified,
		DoNotContact:   session.DoNotContact,
		Ended:          session.Ended,
		LeadID:         session.LeadID,
		Attribution:    session.Attribution,
		Events:         session.Events,
		CreatedAt:      session.CreatedAt,
		UpdatedAt:      session.UpdatedAt,
	}, nil
}

func (s *Service) acquireLock(ctx context.Context, session *domain.Session, req transport.StartConversationRequest, now time.Time) {
	if s.matcher == nil {
		return
	}
	if req.InboundNumber != "" {
		dealerID, ok, err := s.matcher.MatchInboundNumber(ctx, req.InboundNumber)
		if err != nil {
			s.log.Error("inbound number match failed", "error", err)
		} else if ok {
			session.LockDealer(dealerID, domain.LockReasonDealerNumber, now)
			return
		}
	}
	if req.TrackingToken != "" {
		dealerID, ok, err := s.matcher.MatchReferralToken(ctx, req.TrackingToken)
		if err != nil {
			s.log.Error("referral token match failed", "error", err)
		} else if ok {
			session.LockDealer(dealerID, domain.LockReasonReferral, now)
		}
	}
}

// applyConfirmation resolves an outstanding confirmation. A negative response
// leaves the field set-but-unconfirmed so the controller re-asks; it never
// auto-selects a different value.
func (s *Service) applyConfirmation(session *domain.Session, confirmation *bool, now time.Time, log *logger.Logger) {
	if confirmation == nil || !*confirmation {
		return
	}
	pending := session.NextAction()
	if pending.Type != domain.ActionConfirm {
		return
	}
	if err := session.Confirm(pending.Field, now); err != nil {
		// Unreachable when invariants hold.
		log.Error("confirm failed", "field", pending.Field, "error", err)
	}
}

// applyUpdates stores extracted values in the fixed field order so that the
// resolution order is deterministic when one utterance produced several
// fields. Unknown names and invalid values are logged and skipped.
func (s *Service) applyUpdates(session *domain.Session, updates map[string]string, now time.Time, log *logger.Logger) {
	if len(updates) == 0 {
		return
	}

	applied := make(map[string]bool, len(updates))
	for _, f := range domain.FieldOrder {
		raw, ok := updates[string(f)]
		if !ok {
			continue
		}
		applied[string(f)] = true
		if err := session.Set(f, raw, false, now); err != nil {
			switch {
			case errors.Is(err, domain.ErrAmbiguousTimeline):
				log.FieldRejected(session.ID.String(), string(f), "ambiguous_timeline")
			case errors.Is(err, domain.ErrInvalidValue):
				log.FieldRejected(session.ID.String(), string(f), err.Error())
			default:
				log.Error("field update failed", "field", f, "error", err)
			}
		}
	}

	for name := range updates {
		if !applied[name] {
			log.Warn("ignoring unknown field", "field", name)
		}
	}
}

// runSideEffects drives the persistence and routing boundaries. Failures are
// logged and retried on a later turn; they never block flow control.
func (s *Service) runSideEffects(ctx context.Context, session *domain.Session, action domain.Action, now time.Time, log *logger.Logger) {
	if session.LeadID == nil && session.MinimumCollected() {
		snap := session.Snapshot()
		leadID, err := s.leads.CreateLead(ctx, snap)
		if err != nil {
			log.PersistenceError("create_lead", session.ID.String(), err)
		} else {
			session.LeadID = &leadID
			s.bus.Publish(ctx, events.LeadCreated{
				BaseEvent:      events.NewBaseEvent(),
				LeadID:         leadID,
				ConversationID: session.ID,
				FirstName:      snap.FirstName,
				LastName:       snap.LastName,
				Phone:          snap.Phone,
				Email:          snap.Email,
			})
		}
	}

	if action.Type == domain.ActionComplete && session.Prequalified {
		if session.LeadID == nil {
			log.Error("prequalified without a persisted lead, retrying create next turn")
			return
		}
		if err := s.leads.UpdateLead(ctx, *session.LeadID, session.Snapshot()); err != nil {
			log.PersistenceError("update_lead", session.ID.String(), err)
		}
		s.bus.Publish(ctx, events.PrequalificationReached{
			BaseEvent:      events.NewBaseEvent(),
			ConversationID: session.ID,
			LeadID:         session.LeadID,
		})
		if err := s.router.Route(ctx, *session.LeadID); err != nil {
			// The scheduler sweep re-routes stranded leads later.
			log.Error("routing failed", "lead_id", session.LeadID, "error", err)
		}
	}

	if action.Type == domain.ActionEndCall && !session.Ended {
		session.End(action.Reason, now)
		if session.LeadID != nil {
			if err := s.leads.UpdateLead(ctx, *session.LeadID, session.Snapshot()); err != nil {
				log.PersistenceError("update_lead", session.ID.String(), err)
			}
		}
		s.bus.Publish(ctx, events.ConversationEnded{
			BaseEvent:      events.NewBaseEvent(),
			ConversationID: session.ID,
			Reason:         action.Reason,
			DoNotContact:   session.DoNotContact,
		})
	}
}

func (s *Service) respond(session *domain.Session, action domain.Action) transport.TurnResponse {
	return transport.TurnResponse{
		ConversationID: session.ID,
		Phase:          session.Phase,
		Action:         action,
		Prompt:         promptFor(action),
		Prequalified:   session.Prequalified,
		DoNotContact:   session.DoNotContact,
		LeadID:         session.LeadID,
	}
}
