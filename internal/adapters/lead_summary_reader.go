package adapters

import (
	"context"

	"github.com/google/uuid"

	leadssvc "prequal_backend/internal/leads/service"
	"prequal_backend/internal/notification"
)

// LeadSummaryReader adapts the leads service for notification rendering.
type LeadSummaryReader struct {
	svc *leadssvc.Service
}

func NewLeadSummaryReader(svc *leadssvc.Service) *LeadSummaryReader {
	return &LeadSummaryReader{svc: svc}
}

func (a *LeadSummaryReader) GetSummary(ctx context.Context, leadID uuid.UUID) (notification.LeadSummary, error) {
	lead, err := a.svc.GetLead(ctx, leadID)
	if err != nil {
		return notification.LeadSummary{}, err
	}
	return notification.LeadSummary{
		FirstName:    lead.FirstName,
		LastName:     lead.LastName,
		Phone:        lead.Phone,
		State:        lead.State,
		Zip:          lead.Zip,
		HomeType:     lead.HomeType,
		TimelineBand: lead.TimelineBand,
		ContactTime:  lead.ContactTimeBand,
	}, nil
}
