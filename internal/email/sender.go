// Package email delivers outbound mail over SMTP.
package email

import (
	"context"

	"prequal_backend/platform/config"
)

type Sender interface {
	// SendLeadAssignedEmail notifies a dealer that a new lead was routed to
	// them.
	SendLeadAssignedEmail(ctx context.Context, toEmail string, data LeadAssignedData) error
}

// LeadAssignedData carries the lead summary rendered into the notification.
type LeadAssignedData struct {
	DealerName   string
	LeadName     string
	Phone        string
	State        string
	Zip          string
	HomeType     string
	TimelineBand string
	ContactTime  string
}

// NoopSender swallows all mail. Used when email delivery is disabled.
type NoopSender struct{}

func (NoopSender) SendLeadAssignedEmail(ctx context.Context, toEmail string, data LeadAssignedData) error {
	return nil
}

// NewSender picks the sender implementation from configuration.
func NewSender(cfg config.EmailConfig) Sender {
	if !cfg.GetEmailEnabled() {
		return NoopSender{}
	}
	return NewSMTPSender(
		cfg.GetSMTPHost(),
		cfg.GetSMTPPort(),
		cfg.GetSMTPUsername(),
		cfg.GetSMTPPassword(),
		cfg.GetEmailFromAddress(),
		cfg.GetEmailFromName(),
	)
}
