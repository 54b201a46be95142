// Package transport defines request and response shapes for the leads API.
package transport

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"prequal_backend/internal/leads/repository"
)

// ListLeadsQuery carries dashboard list filters.
type ListLeadsQuery struct {
	Prequalified *bool  `form:"prequalified"`
	State        string `form:"state" binding:"omitempty,len=2"`
	Limit        int    `form:"limit" binding:"omitempty,min=1,max=200"`
	Offset       int    `form:"offset" binding:"omitempty,min=0"`
}

// LeadSummary is the list-view projection of a lead.
type LeadSummary struct {
	ID               uuid.UUID  `json:"id"`
	FirstName        string     `json:"firstName"`
	LastName         string     `json:"lastName"`
	Phone            string     `json:"phone"`
	State            string     `json:"state"`
	Zip              string     `json:"zip"`
	TimelineBand     string     `json:"timelineBand"`
	CreditBand       string     `json:"creditBand"`
	Prequalified     bool       `json:"prequalified"`
	AssignedDealerID *uuid.UUID `json:"assignedDealerId,omitempty"`
	AssignmentType   string     `json:"assignmentType,omitempty"`
	CreatedAt        time.Time  `json:"createdAt"`
}

func ToLeadSummary(l repository.Lead) LeadSummary {
	return LeadSummary{
		ID:               l.ID,
		FirstName:        l.FirstName,
		LastName:         l.LastName,
		Phone:            l.Phone,
		State:            l.State,
		Zip:              l.Zip,
		TimelineBand:     l.TimelineBand,
		CreditBand:       l.CreditBand,
		Prequalified:     l.Prequalified,
		AssignedDealerID: l.AssignedDealerID,
		AssignmentType:   l.AssignmentType,
		CreatedAt:        l.CreatedAt,
	}
}

// EventResponse renders one audit entry with its detail decoded.
type EventResponse struct {
	ID        int64           `json:"id"`
	EventType string          `json:"eventType"`
	Detail    json.RawMessage `json:"detail,omitempty"`
	CreatedAt time.Time       `json:"createdAt"`
}

func ToEventResponse(e repository.Event) EventResponse {
	return EventResponse{
		ID:        e.ID,
		EventType: e.EventType,
		Detail:    json.RawMessage(e.Detail),
		CreatedAt: e.CreatedAt,
	}
}
