package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Field state ratchet: unset -> set (unconfirmed) -> confirmed. The only back
// edge is confirmed -> set, taken when the caller corrects a value.
type FieldStatus string

const (
	StatusUnset     FieldStatus = "unset"
	StatusSet       FieldStatus = "set"
	StatusConfirmed FieldStatus = "confirmed"
)

// FieldValue is the tagged per-field state. Value holds the canonical
// (banded, for the four banded fields) value; Raw holds the original
// utterance for banded fields.
type FieldValue struct {
	Status FieldStatus `json:"status"`
	Value  string      `json:"value,omitempty"`
	Raw    string      `json:"raw,omitempty"`
}

// AuditEvent is one entry in the session's append-only event log.
type AuditEvent struct {
	Type      string    `json:"type"`
	Field     Field     `json:"field,omitempty"`
	Detail    string    `json:"detail,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// Audit event types.
const (
	EventSessionStarted       = "session_started"
	EventFieldSet             = "field_set"
	EventFieldConfirmed       = "field_confirmed"
	EventConfirmationReopened = "confirmation_reopened"
	EventConsentDeclined      = "consent_declined"
	EventPhaseAdvanced        = "phase_advanced"
	EventPrequalified         = "prequalified"
	EventDealerLocked         = "dealer_locked"
	EventCallEnded            = "call_ended"
)

// Attribution lock reasons.
const (
	LockReasonDealerNumber = "dealer_number"
	LockReasonReferral     = "referral_lock"
)

// Attribution records how the lead's dealer claim was established at session
// start. The lock is set once and never overwritten.
type Attribution struct {
	Entrypoint     string     `json:"entrypoint"`
	LockedDealerID *uuid.UUID `json:"lockedDealerId,omitempty"`
	LockedReason   string     `json:"lockedReason,omitempty"`
	TrackingToken  string     `json:"trackingToken,omitempty"`
}

// Validation and flow errors surfaced by the accessors.
var (
	ErrUnknownField      = errors.New("unknown field")
	ErrInvalidValue      = errors.New("invalid value")
	ErrAmbiguousTimeline = errors.New("ambiguous timeline, clarification needed")
	ErrNoValue           = errors.New("field has no value to confirm")
	ErrSessionEnded      = errors.New("session has ended")
)

// Session is the canonical in-memory state of one conversation. It is owned
// exclusively by the single in-flight turn processing it; the transport
// serializes turns per conversation.
type Session struct {
	ID           uuid.UUID             `json:"id"`
	Phase        Phase                 `json:"phase"`
	Fields       map[Field]FieldValue  `json:"fields"`
	AskCounts    map[Field]int         `json:"askCounts,omitempty"`
	Questions    int                   `json:"questions"`
	Prequalified bool                  `json:"prequalified"`
	DoNotContact bool                  `json:"doNotContact"`
	Ended        bool                  `json:"ended"`
	Events       []AuditEvent          `json:"events"`
	LeadID       *uuid.UUID            `json:"leadId,omitempty"`
	Attribution  Attribution           `json:"attribution"`
	CreatedAt    time.Time             `json:"createdAt"`
	UpdatedAt    time.Time             `json:"updatedAt"`
}

// NewSession creates a session at the welcome phase with all fields unset.
func NewSession(entrypoint string, now time.Time) *Session {
	s := &Session{
		ID:          uuid.New(),
		Phase:       PhaseWelcome,
		Fields:      make(map[Field]FieldValue, len(FieldOrder)),
		AskCounts:   make(map[Field]int),
		Attribution: Attribution{Entrypoint: entrypoint},
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	s.appendEvent(EventSessionStarted, "", entrypoint, now)
	return s
}

// Get returns the canonical value for the field and whether one is set.
func (s *Session) Get(f Field) (string, bool) {
	fv, ok := s.Fields[f]
	if !ok || fv.Status == StatusUnset {
		return "", false
	}
	return fv.Value, true
}

// GetRaw returns the original utterance stored for a banded field.
func (s *Session) GetRaw(f Field) string {
	return s.Fields[f].Raw
}

// IsConfirmed reports whether the field's value has been confirmed.
func (s *Session) IsConfirmed(f Field) bool {
	return s.Fields[f].Status == StatusConfirmed
}

// Set validates and stores a raw value for the field. Banded fields are
// routed through the normalizer before storing. Setting a previously
// confirmed field intentionally re-opens confirmation.
func (s *Session) Set(f Field, raw string, confirmed bool, now time.Time) error {
	if s.Ended {
		return ErrSessionEnded
	}
	if !IsKnownField(string(f)) {
		return fmt.Errorf("%w: %s", ErrUnknownField, f)
	}

	value, storedRaw, err := canonicalize(f, raw, now)
	if err != nil {
		return err
	}

	prev := s.Fields[f]
	status := StatusSet
	if confirmed {
		status = StatusConfirmed
	}
	s.Fields[f] = FieldValue{Status: status, Value: value, Raw: storedRaw}
	s.UpdatedAt = now

	if prev.Status == StatusConfirmed && !confirmed {
		s.appendEvent(EventConfirmationReopened, f, "", now)
	}
	s.appendEvent(EventFieldSet, f, value, now)

	if f == FieldConsent && value == ConsentDeclined {
		s.declineContact(now)
	}
	return nil
}

// Confirm marks the field's current value as confirmed. Idempotent: a second
// confirm neither mutates the value nor appends another event.
func (s *Session) Confirm(f Field, now time.Time) error {
	if s.Ended {
		return ErrSessionEnded
	}
	fv, ok := s.Fields[f]
	if !ok || fv.Status == StatusUnset {
		return fmt.Errorf("%w: %s", ErrNoValue, f)
	}
	if fv.Status == StatusConfirmed {
		return nil
	}
	fv.Status = StatusConfirmed
	s.Fields[f] = fv
	s.UpdatedAt = now
	s.appendEvent(EventFieldConfirmed, f, fv.Value, now)
	return nil
}

// LockDealer records the attribution lock. Only the first call takes effect.
func (s *Session) LockDealer(dealerID uuid.UUID, reason string, now time.Time) {
	if s.Attribution.LockedDealerID != nil {
		return
	}
	id := dealerID
	s.Attribution.LockedDealerID = &id
	s.Attribution.LockedReason = reason
	s.appendEvent(EventDealerLocked, "", reason, now)
}

// End marks the session terminal and read-only.
func (s *Session) End(reason string, now time.Time) {
	if s.Ended {
		return
	}
	s.Ended = true
	s.Phase = PhaseEndCall
	s.UpdatedAt = now
	s.appendEvent(EventCallEnded, "", reason, now)
}

// IncrementAsk records that the controller asked for the field this turn.
func (s *Session) IncrementAsk(f Field) {
	if s.AskCounts == nil {
		s.AskCounts = make(map[Field]int)
	}
	s.AskCounts[f]++
	s.Questions++
}

func (s *Session) declineContact(now time.Time) {
	if s.DoNotContact {
		return
	}
	s.DoNotContact = true
	s.Phase = PhaseEndCall
	s.appendEvent(EventConsentDeclined, FieldConsent, "", now)
}

func (s *Session) appendEvent(eventType string, f Field, detail string, now time.Time) {
	s.Events = append(s.Events, AuditEvent{
		Type:      eventType,
		Field:     f,
		Detail:    detail,
		Timestamp: now,
	})
}
