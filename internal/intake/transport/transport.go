// Package transport defines the request/response DTOs for the intake API.
package transport

import (
	"time"

	"prequal_backend/internal/intake/domain"

	"github.com/google/uuid"
)

// StartConversationRequest opens a new conversation. The inbound number and
// tracking token, when present, are used to acquire the attribution lock.
type StartConversationRequest struct {
	Entrypoint    string `json:"entrypoint" validate:"required,max=50"`
	CallerNumber  string `json:"callerNumber" validate:"omitempty,max=20"`
	InboundNumber string `json:"inboundNumber" validate:"omitempty,max=20"`
	TrackingToken string `json:"trackingToken" validate:"omitempty,max=100"`
}

// TurnRequest carries one caller turn: either pre-extracted field updates
// (the shape an LLM tool-call produces) or a raw utterance for the engine's
// own extraction boundary, plus an optional yes/no answer to an outstanding
// confirmation.
type TurnRequest struct {
	Utterance            string            `json:"utterance" validate:"omitempty,max=2000"`
	Fields               map[string]string `json:"fields"`
	ConfirmationResponse *bool             `json:"confirmationResponse"`
}

// TurnResponse reports the engine's next action for the conversation.
type TurnResponse struct {
	ConversationID uuid.UUID     `json:"conversationId"`
	Phase          domain.Phase  `json:"phase"`
	Action         domain.Action `json:"action"`
	Prompt         string        `json:"prompt"`
	Prequalified   bool          `json:"prequalified"`
	DoNotContact   bool          `json:"doNotContact"`
	LeadID         *uuid.UUID    `json:"leadId,omitempty"`
}

// ConversationState is the read-only view of a session for inspection.
type ConversationState struct {
	ConversationID uuid.UUID                           `json:"conversationId"`
	Phase          domain.Phase                        `json:"phase"`
	Fields         map[domain.Field]domain.FieldValue  `json:"fields"`
	Prequalified   bool                                `json:"prequalified"`
	DoNotContact   bool                                `json:"doNotContact"`
	Ended          bool                                `json:"ended"`
	LeadID         *uuid.UUID                          `json:"leadId,omitempty"`
	Attribution    domain.Attribution                  `json:"attribution"`
	Events         []domain.AuditEvent                 `json:"events"`
	CreatedAt      time.Time                           `json:"createdAt"`
	UpdatedAt      time.Time                           `json:"updatedAt"`
}
