// Package events provides domain event definitions for decoupled,
// event-driven communication between modules.
// Infrastructure (Bus, Handler) is in platform/events.
package events

import (
	"prequal_backend/platform/events"
	"prequal_backend/platform/logger"

	"github.com/google/uuid"
)

// Re-export platform types for convenience
type (
	Event       = events.Event
	Bus         = events.Bus
	Handler     = events.Handler
	HandlerFunc = events.HandlerFunc
	BaseEvent   = events.BaseEvent
)

// Re-export platform functions
var NewBaseEvent = events.NewBaseEvent

// InMemoryBus is a type alias to the platform InMemoryBus
type InMemoryBus = events.InMemoryBus

// NewInMemoryBus creates a new in-memory event bus.
func NewInMemoryBus(log *logger.Logger) *InMemoryBus {
	return events.NewInMemoryBus(log)
}

// =============================================================================
// Intake Domain Events
// =============================================================================

// ConversationStarted is published when a new intake conversation begins.
type ConversationStarted struct {
	BaseEvent
	ConversationID uuid.UUID  `json:"conversationId"`
	Entrypoint     string     `json:"entrypoint"`
	LockedDealerID *uuid.UUID `json:"lockedDealerId,omitempty"`
	LockedReason   string     `json:"lockedReason,omitempty"`
}

func (e ConversationStarted) EventName() string { return "intake.conversation.started" }

// ConversationEnded is published when a conversation reaches end_call.
type ConversationEnded struct {
	BaseEvent
	ConversationID uuid.UUID `json:"conversationId"`
	Reason         string    `json:"reason"`
	DoNotContact   bool      `json:"doNotContact"`
}

func (e ConversationEnded) EventName() string { return "intake.conversation.ended" }

// PrequalificationReached is published when all required fields are collected
// and confirmed for a conversation.
type PrequalificationReached struct {
	BaseEvent
	ConversationID uuid.UUID  `json:"conversationId"`
	LeadID         *uuid.UUID `json:"leadId,omitempty"`
}

func (e PrequalificationReached) EventName() string { return "intake.prequalification.reached" }

// =============================================================================
// Leads Domain Events
// =============================================================================

// LeadCreated is published when a partial lead record is first persisted.
type LeadCreated struct {
	BaseEvent
	LeadID         uuid.UUID `json:"leadId"`
	ConversationID uuid.UUID `json:"conversationId"`
	FirstName      string    `json:"firstName"`
	LastName       string    `json:"lastName"`
	Phone          string    `json:"phone"`
	Email          string    `json:"email"`
}

func (e LeadCreated) EventName() string { return "leads.lead.created" }

// LeadRouted is published when the routing engine assigns a dealer.
type LeadRouted struct {
	BaseEvent
	LeadID           uuid.UUID `json:"leadId"`
	DealerID         uuid.UUID `json:"dealerId"`
	AssignmentType   string    `json:"assignmentType"`
	AssignmentReason string    `json:"assignmentReason"`
	Attempt          int       `json:"attempt"`
}

func (e LeadRouted) EventName() string { return "leads.lead.routed" }
