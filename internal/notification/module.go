// Package notification sends outbound notifications in response to domain
// events. Domain modules publish events and never touch email directly.
package notification

import (
	"context"
	"fmt"
	"strings"

	"prequal_backend/internal/email"
	"prequal_backend/internal/events"
	"prequal_backend/platform/logger"

	"github.com/google/uuid"
)

// DealerContactReader resolves a dealer's notification address.
type DealerContactReader interface {
	GetContact(ctx context.Context, dealerID uuid.UUID) (name, address string, err error)
}

// LeadReader loads the lead summary rendered into notifications.
type LeadReader interface {
	GetSummary(ctx context.Context, leadID uuid.UUID) (LeadSummary, error)
}

// LeadSummary is the slice of a lead a notification needs.
type LeadSummary struct {
	FirstName    string
	LastName     string
	Phone        string
	State        string
	Zip          string
	HomeType     string
	TimelineBand string
	ContactTime  string
}

type Module struct {
	sender  email.Sender
	dealers DealerContactReader
	leads   LeadReader
	log     *logger.Logger
}

func New(sender email.Sender, dealers DealerContactReader, leads LeadReader, log *logger.Logger) *Module {
	return &Module{sender: sender, dealers: dealers, leads: leads, log: log}
}

// RegisterHandlers subscribes the module to the events it acts on.
func (m *Module) RegisterHandlers(bus events.Bus) {
	bus.Subscribe(events.LeadRouted{}.EventName(), events.HandlerFunc(m.handleLeadRouted))
}

func (m *Module) handleLeadRouted(ctx context.Context, event events.Event) error {
	routed, ok := event.(events.LeadRouted)
	if !ok {
		return fmt.Errorf("unexpected event type %T", event)
	}

	name, address, err := m.dealers.GetContact(ctx, routed.DealerID)
	if err != nil {
		return fmt.Errorf("resolve dealer contact: %w", err)
	}
	if address == "" {
		m.log.Info("dealer has no notification address", "dealerId", routed.DealerID)
		return nil
	}

	summary, err := m.leads.GetSummary(ctx, routed.LeadID)
	if err != nil {
		return fmt.Errorf("load lead summary: %w", err)
	}

	data := email.LeadAssignedData{
		DealerName:   name,
		LeadName:     strings.TrimSpace(summary.FirstName + " " + summary.LastName),
		Phone:        summary.Phone,
		State:        summary.State,
		Zip:          summary.Zip,
		HomeType:     summary.HomeType,
		TimelineBand: summary.TimelineBand,
		ContactTime:  summary.ContactTime,
	}
	if err := m.sender.SendLeadAssignedEmail(ctx, address, data); err != nil {
		return fmt.Errorf("send lead assigned email: %w", err)
	}

	m.log.Info("dealer notified of new lead", "leadId", routed.LeadID, "dealerId", routed.DealerID)
	return nil
}
