package domain

import "github.com/google/uuid"

// LeadSnapshot is the flattened view of a session handed across the
// persistence boundary. Unset fields are empty strings.
type LeadSnapshot struct {
	SessionID       uuid.UUID   `json:"sessionId"`
	Consent         bool        `json:"consent"`
	FirstName       string      `json:"firstName"`
	LastName        string      `json:"lastName"`
	Phone           string      `json:"phone"`
	Email           string      `json:"email"`
	ContactMethod   string      `json:"contactMethod"`
	State           string      `json:"state"`
	Zip             string      `json:"zip"`
	LandStatus      string      `json:"landStatus"`
	LandValueRaw    string      `json:"landValueRaw"`
	LandValueBand   string      `json:"landValueBand"`
	HomeType        string      `json:"homeType"`
	Bedrooms        string      `json:"bedrooms"`
	TimelineRaw     string      `json:"timelineRaw"`
	TimelineBand    string      `json:"timelineBand"`
	CreditRaw       string      `json:"creditRaw"`
	CreditBand      string      `json:"creditBand"`
	BudgetRange     string      `json:"budgetRange"`
	DownPayment     string      `json:"downPayment"`
	ContactTimeRaw  string      `json:"contactTimeRaw"`
	ContactTimeBand string      `json:"contactTimeBand"`
	CoApplicant     string      `json:"coApplicant"`
	Military        string      `json:"military"`
	Prequalified    bool        `json:"prequalified"`
	Attribution     Attribution `json:"attribution"`
}

// Snapshot flattens the session's collected data for persistence.
func (s *Session) Snapshot() LeadSnapshot {
	value := func(f Field) string {
		v, _ := s.Get(f)
		return v
	}
	consent, _ := s.Get(FieldConsent)

	return LeadSnapshot{
		SessionID:       s.ID,
		Consent:         consent == ConsentGranted,
		FirstName:       value(FieldFirstName),
		LastName:        value(FieldLastName),
		Phone:           value(FieldPhone),
		Email:           value(FieldEmail),
		ContactMethod:   value(FieldContactMethod),
		State:           value(FieldState),
		Zip:             value(FieldZip),
		LandStatus:      value(FieldLandStatus),
		LandValueRaw:    s.GetRaw(FieldLandValue),
		LandValueBand:   value(FieldLandValue),
		HomeType:        value(FieldHomeType),
		Bedrooms:        value(FieldBedrooms),
		TimelineRaw:     s.GetRaw(FieldTimeline),
		TimelineBand:    value(FieldTimeline),
		CreditRaw:       s.GetRaw(FieldCreditRange),
		CreditBand:      value(FieldCreditRange),
		BudgetRange:     value(FieldBudgetRange),
		DownPayment:     value(FieldDownPayment),
		ContactTimeRaw:  s.GetRaw(FieldContactTime),
		ContactTimeBand: value(FieldContactTime),
		CoApplicant:     value(FieldCoApplicant),
		Military:        value(FieldMilitary),
		Prequalified:    s.Prequalified,
		Attribution:     s.Attribution,
	}
}
