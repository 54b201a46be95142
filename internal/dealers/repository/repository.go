// Package repository provides read/write access to dealer reference data.
package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNotFound = errors.New("dealer not found")

type Dealer struct {
	ID             uuid.UUID
	Name           string
	Phone          string
	Email          string
	State          string
	Zip            string
	ReferralToken  *string
	PriorityWeight int
	Active         bool
	CreatedAt      time.Time
}

// CoverageCandidate is one dealer covering a (state, zip) pair. Position
// preserves seed-file order for deterministic tie breaking.
type CoverageCandidate struct {
	DealerID uuid.UUID
	Priority int
	Position int
}

type Repository struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const dealerColumns = `id, name, phone, email, state, zip, referral_token, priority_weight, active, created_at`

func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*Dealer, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+dealerColumns+` FROM dealers WHERE id = $1`, id)
	return scanDealer(row)
}

// GetByPhone looks a dealer up by its inbound tracking number.
func (r *Repository) GetByPhone(ctx context.Context, phone string) (*Dealer, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+dealerColumns+` FROM dealers WHERE phone = $1`, phone)
	return scanDealer(row)
}

// GetByReferralToken looks a dealer up by its referral tracking token.
func (r *Repository) GetByReferralToken(ctx context.Context, token string) (*Dealer, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+dealerColumns+` FROM dealers WHERE referral_token = $1`, token)
	return scanDealer(row)
}

// GetCoverage returns the candidate dealers covering a (state, zip) pair,
// ordered by priority then seed position.
func (r *Repository) GetCoverage(ctx context.Context, state, zip string) ([]CoverageCandidate, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT dealer_id, priority, position
		FROM dealer_coverage
		WHERE state = $1 AND zip = $2
		ORDER BY priority ASC, position ASC
	`, state, zip)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	candidates := make([]CoverageCandidate, 0)
	for rows.Next() {
		var c CoverageCandidate
		if err := rows.Scan(&c.DealerID, &c.Priority, &c.Position); err != nil {
			return nil, err
		}
		candidates = append(candidates, c)
	}
	return candidates, rows.Err()
}

// List returns all dealers, active first.
func (r *Repository) List(ctx context.Context) ([]Dealer, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+dealerColumns+` FROM dealers ORDER BY active DESC, name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	dealers := make([]Dealer, 0)
	for rows.Next() {
		d, err := scanDealerValues(rows)
		if err != nil {
			return nil, err
		}
		dealers = append(dealers, *d)
	}
	return dealers, rows.Err()
}

type UpsertDealerParams struct {
	ID             uuid.UUID
	Name           string
	Phone          string
	Email          string
	State          string
	Zip            string
	ReferralToken  *string
	PriorityWeight int
	Active         bool
}

// Upsert inserts or updates a dealer keyed by id. Used by the import CLI.
func (r *Repository) Upsert(ctx context.Context, p UpsertDealerParams) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO dealers (id, name, phone, email, state, zip, referral_token, priority_weight, active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			phone = EXCLUDED.phone,
			email = EXCLUDED.email,
			state = EXCLUDED.state,
			zip = EXCLUDED.zip,
			referral_token = EXCLUDED.referral_token,
			priority_weight = EXCLUDED.priority_weight,
			active = EXCLUDED.active
	`, p.ID, p.Name, p.Phone, p.Email, p.State, p.Zip, p.ReferralToken, p.PriorityWeight, p.Active)
	return err
}

// ReplaceCoverage swaps the full coverage set for a dealer.
func (r *Repository) ReplaceCoverage(ctx context.Context, dealerID uuid.UUID, state string, zips []string, priority int) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM dealer_coverage WHERE dealer_id = $1`, dealerID); err != nil {
		return err
	}
	for i, zip := range zips {
		if _, err := tx.Exec(ctx, `
			INSERT INTO dealer_coverage (state, zip, dealer_id, priority, position)
			VALUES ($1, $2, $3, $4, $5)
		`, state, zip, dealerID, priority, i); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

type dealerRow interface {
	Scan(dest ...any) error
}

func scanDealer(row pgx.Row) (*Dealer, error) {
	d, err := scanDealerValues(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return d, err
}

func scanDealerValues(row dealerRow) (*Dealer, error) {
	var d Dealer
	err := row.Scan(&d.ID, &d.Name, &d.Phone, &d.Email, &d.State, &d.Zip,
		&d.ReferralToken, &d.PriorityWeight, &d.Active, &d.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &d, nil
}
