// Package ports defines the interfaces the intake engine consumes from other
// bounded contexts. The engine never imports their implementations.
package ports

import (
	"context"

	"prequal_backend/internal/intake/domain"

	"github.com/google/uuid"
)

// LeadStore is the persistence boundary. CreateLead is idempotent on the
// snapshot's session id; a second call returns the existing lead id.
type LeadStore interface {
	CreateLead(ctx context.Context, snap domain.LeadSnapshot) (uuid.UUID, error)
	UpdateLead(ctx context.Context, leadID uuid.UUID, snap domain.LeadSnapshot) error
}

// LeadRouter triggers dealer attribution and routing for a persisted lead.
type LeadRouter interface {
	Route(ctx context.Context, leadID uuid.UUID) error
}

// AttributionMatcher resolves attribution locks at conversation start.
type AttributionMatcher interface {
	// MatchInboundNumber returns the dealer owning the dialed tracking number.
	MatchInboundNumber(ctx context.Context, number string) (uuid.UUID, bool, error)
	// MatchReferralToken returns the dealer owning a referral tracking token.
	MatchReferralToken(ctx context.Context, token string) (uuid.UUID, bool, error)
}

// Extraction is the shape an LLM tool-call produces for one utterance.
type Extraction struct {
	Fields       map[string]string
	Confirmation *bool
}

// Extractor turns a raw utterance into field updates. Implementations live
// outside the engine; the engine only consumes the resulting map.
type Extractor interface {
	Extract(ctx context.Context, utterance string, phase domain.Phase) (Extraction, error)
}

// SessionStore holds active conversation state between turns.
type SessionStore interface {
	Save(ctx context.Context, session *domain.Session) error
	Get(ctx context.Context, id uuid.UUID) (*domain.Session, error)
}
