// Package repository persists leads and their audit events in Postgres.
package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"prequal_backend/internal/intake/domain"
)

var ErrNotFound = errors.New("lead not found")

// Lead is the persisted record of one prequalification conversation.
type Lead struct {
	ID              uuid.UUID  `json:"id"`
	SessionID       uuid.UUID  `json:"sessionId"`
	Consent         bool       `json:"consent"`
	FirstName       string     `json:"firstName"`
	LastName        string     `json:"lastName"`
	Phone           string     `json:"phone"`
	Email           string     `json:"email"`
	ContactMethod   string     `json:"contactMethod"`
	State           string     `json:"state"`
	Zip             string     `json:"zip"`
	LandStatus      string     `json:"landStatus"`
	LandValueRaw    string     `json:"landValueRaw"`
	LandValueBand   string     `json:"landValueBand"`
	HomeType        string     `json:"homeType"`
	Bedrooms        string     `json:"bedrooms"`
	TimelineRaw     string     `json:"timelineRaw"`
	TimelineBand    string     `json:"timelineBand"`
	CreditRaw       string     `json:"creditRaw"`
	CreditBand      string     `json:"creditBand"`
	BudgetRange     string     `json:"budgetRange"`
	DownPayment     string     `json:"downPayment"`
	ContactTimeRaw  string     `json:"contactTimeRaw"`
	ContactTimeBand string     `json:"contactTimeBand"`
	CoApplicant     string     `json:"coApplicant"`
	Military        string     `json:"military"`
	Prequalified    bool       `json:"prequalified"`
	Entrypoint      string     `json:"entrypoint"`
	LockedDealerID  *uuid.UUID `json:"lockedDealerId,omitempty"`
	LockedReason    string     `json:"lockedReason,omitempty"`
	TrackingToken   string     `json:"trackingToken,omitempty"`

	AssignedDealerID    *uuid.UUID `json:"assignedDealerId,omitempty"`
	AssignmentType      string     `json:"assignmentType,omitempty"`
	AssignmentReason    string     `json:"assignmentReason,omitempty"`
	RoutingAttemptCount int        `json:"routingAttemptCount"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Event is one audit entry on a lead's timeline.
type Event struct {
	ID        int64     `json:"id"`
	LeadID    uuid.UUID `json:"leadId"`
	EventType string    `json:"eventType"`
	Detail    []byte    `json:"detail,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

type Repository struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const leadColumns = `
	id, session_id, consent, first_name, last_name, phone, email, contact_method,
	state, zip, land_status, land_value_raw, land_value_band, home_type, bedrooms,
	timeline_raw, timeline_band, credit_raw, credit_band, budget_range, down_payment,
	contact_time_raw, contact_time_band, co_applicant, military, prequalified,
	entrypoint, locked_dealer_id, locked_reason, tracking_token,
	assigned_dealer_id, assignment_type, assignment_reason, routing_attempt_count,
	created_at, updated_at`

// Create inserts a lead for a session, or returns the existing lead's id when
// one was already created for that session. Retried calls are safe.
func (r *Repository) Create(ctx context.Context, snap domain.LeadSnapshot) (uuid.UUID, error) {
	var id uuid.UUID
	err := r.pool.QueryRow(ctx, `
		INSERT INTO leads (
			id, session_id, consent, first_name, last_name, phone, email, contact_method,
			state, zip, land_status, land_value_raw, land_value_band, home_type, bedrooms,
			timeline_raw, timeline_band, credit_raw, credit_band, budget_range, down_payment,
			contact_time_raw, contact_time_band, co_applicant, military, prequalified,
			entrypoint, locked_dealer_id, locked_reason, tracking_token
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8,
			$9, $10, $11, $12, $13, $14, $15,
			$16, $17, $18, $19, $20, $21,
			$22, $23, $24, $25, $26,
			$27, $28, $29, $30
		)
		ON CONFLICT (session_id) DO UPDATE SET session_id = EXCLUDED.session_id
		RETURNING id
	`,
		uuid.New(), snap.SessionID, snap.Consent, snap.FirstName, snap.LastName, snap.Phone, snap.Email, snap.ContactMethod,
		snap.State, snap.Zip, snap.LandStatus, snap.LandValueRaw, snap.LandValueBand, snap.HomeType, snap.Bedrooms,
		snap.TimelineRaw, snap.TimelineBand, snap.CreditRaw, snap.CreditBand, snap.BudgetRange, snap.DownPayment,
		snap.ContactTimeRaw, snap.ContactTimeBand, snap.CoApplicant, snap.Military, snap.Prequalified,
		snap.Attribution.Entrypoint, snap.Attribution.LockedDealerID, snap.Attribution.LockedReason, snap.Attribution.TrackingToken,
	).Scan(&id)
	return id, err
}

// Update overwrites a lead's collected data from a fresh session snapshot.
// Assignment columns are untouched.
func (r *Repository) Update(ctx context.Context, leadID uuid.UUID, snap domain.LeadSnapshot) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE leads SET
			consent = $2, first_name = $3, last_name = $4, phone = $5, email = $6,
			contact_method = $7, state = $8, zip = $9, land_status = $10,
			land_value_raw = $11, land_value_band = $12, home_type = $13, bedrooms = $14,
			timeline_raw = $15, timeline_band = $16, credit_raw = $17, credit_band = $18,
			budget_range = $19, down_payment = $20, contact_time_raw = $21,
			contact_time_band = $22, co_applicant = $23, military = $24,
			prequalified = $25, updated_at = now()
		WHERE id = $1
	`,
		leadID, snap.Consent, snap.FirstName, snap.LastName, snap.Phone, snap.Email,
		snap.ContactMethod, snap.State, snap.Zip, snap.LandStatus,
		snap.LandValueRaw, snap.LandValueBand, snap.HomeType, snap.Bedrooms,
		snap.TimelineRaw, snap.TimelineBand, snap.CreditRaw, snap.CreditBand,
		snap.BudgetRange, snap.DownPayment, snap.ContactTimeRaw,
		snap.ContactTimeBand, snap.CoApplicant, snap.Military,
		snap.Prequalified,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*Lead, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+leadColumns+` FROM leads WHERE id = $1`, id)
	return scanLead(row)
}

func (r *Repository) GetBySessionID(ctx context.Context, sessionID uuid.UUID) (*Lead, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+leadColumns+` FROM leads WHERE session_id = $1`, sessionID)
	return scanLead(row)
}

// ListParams narrows the dashboard lead listing.
type ListParams struct {
	Prequalified *bool
	State        string
	Limit        int
	Offset       int
}

func (r *Repository) List(ctx context.Context, p ListParams) ([]Lead, error) {
	if p.Limit <= 0 || p.Limit > 200 {
		p.Limit = 50
	}
	rows, err := r.pool.Query(ctx, `
		SELECT `+leadColumns+`
		FROM leads
		WHERE ($1::boolean IS NULL OR prequalified = $1)
		  AND ($2 = '' OR state = $2)
		ORDER BY created_at DESC
		LIMIT $3 OFFSET $4
	`, p.Prequalified, p.State, p.Limit, p.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectLeads(rows)
}

// ListUnroutedPrequalified returns prequalified leads without a dealer
// assignment. The routing sweep retries these.
func (r *Repository) ListUnroutedPrequalified(ctx context.Context, limit int) ([]Lead, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := r.pool.Query(ctx, `
		SELECT `+leadColumns+`
		FROM leads
		WHERE prequalified = true AND assigned_dealer_id IS NULL
		ORDER BY created_at ASC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectLeads(rows)
}

// SetAssignment records the routing outcome for a lead. It only applies when
// the lead is still unassigned, keeping routing idempotent under races.
func (r *Repository) SetAssignment(ctx context.Context, leadID, dealerID uuid.UUID, assignmentType, reason string) (bool, error) {
	tag, err := r.pool.Exec(ctx, `
		UPDATE leads SET
			assigned_dealer_id = $2,
			assignment_type = $3,
			assignment_reason = $4,
			routing_attempt_count = routing_attempt_count + 1,
			updated_at = now()
		WHERE id = $1 AND assigned_dealer_id IS NULL
	`, leadID, dealerID, assignmentType, reason)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

// IncrementRoutingAttempt records a routing attempt that did not produce an
// assignment.
func (r *Repository) IncrementRoutingAttempt(ctx context.Context, leadID uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE leads SET routing_attempt_count = routing_attempt_count + 1, updated_at = now()
		WHERE id = $1
	`, leadID)
	return err
}

// AppendEvent writes one audit entry to the lead's timeline. Detail is an
// optional JSON payload.
func (r *Repository) AppendEvent(ctx context.Context, leadID uuid.UUID, eventType string, detail []byte) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO lead_events (lead_id, event_type, detail)
		VALUES ($1, $2, $3)
	`, leadID, eventType, detail)
	return err
}

func (r *Repository) ListEvents(ctx context.Context, leadID uuid.UUID) ([]Event, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, lead_id, event_type, detail, created_at
		FROM lead_events
		WHERE lead_id = $1
		ORDER BY id ASC
	`, leadID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := make([]Event, 0)
	for rows.Next() {
		var e Event
		if err := rows.Scan(&e.ID, &e.LeadID, &e.EventType, &e.Detail, &e.CreatedAt); err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

type leadRow interface {
	Scan(dest ...any) error
}

func scanLead(row pgx.Row) (*Lead, error) {
	l, err := scanLeadValues(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return l, err
}

func scanLeadValues(row leadRow) (*Lead, error) {
	var l Lead
	err := row.Scan(
		&l.ID, &l.SessionID, &l.Consent, &l.FirstName, &l.LastName, &l.Phone, &l.Email, &l.ContactMethod,
		&l.State, &l.Zip, &l.LandStatus, &l.LandValueRaw, &l.LandValueBand, &l.HomeType, &l.Bedrooms,
		&l.TimelineRaw, &l.TimelineBand, &l.CreditRaw, &l.CreditBand, &l.BudgetRange, &l.DownPayment,
		&l.ContactTimeRaw, &l.ContactTimeBand, &l.CoApplicant, &l.Military, &l.Prequalified,
		&l.Entrypoint, &l.LockedDealerID, &l.LockedReason, &l.TrackingToken,
		&l.AssignedDealerID, &l.AssignmentType, &l.AssignmentReason, &l.RoutingAttemptCount,
		&l.CreatedAt, &l.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func collectLeads(rows pgx.Rows) ([]Lead, error) {
	leads := make([]Lead, 0)
	for rows.Next() {
		l, err := scanLeadValues(rows)
		if err != nil {
			return nil, err
		}
		leads = append(leads, *l)
	}
	return leads, rows.Err()
}
