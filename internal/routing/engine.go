// Package routing assigns prequalified leads to dealers. The ladder is
// strict: a live attribution lock beats geographic coverage, and coverage
// beats the house fallback dealer.
package routing

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	dealersrepo "prequal_backend/internal/dealers/repository"
	leadsrepo "prequal_backend/internal/leads/repository"
)

// Assignment types and reasons recorded on the lead.
const (
	TypeDealerSourced = "dealer_sourced"
	TypeGeoRouted     = "geo_routed"

	ReasonDealerNumber = "dealer_number"
	ReasonReferralLock = "referral_lock"
	ReasonZipMatch     = "zip_match"
	ReasonFallback     = "fallback"
)

// DealerLookup is the slice of the dealer directory the engine needs.
type DealerLookup interface {
	GetDealer(ctx context.Context, id uuid.UUID) (*dealersrepo.Dealer, error)
	GetCoverage(ctx context.Context, state, zip string) ([]dealersrepo.CoverageCandidate, error)
}

// Candidate is one dealer the ladder considered, kept for the audit trail.
type Candidate struct {
	DealerID uuid.UUID `json:"dealerId"`
	Source   string    `json:"source"`
	Priority int       `json:"priority,omitempty"`
	Active   bool      `json:"active"`
	Chosen   bool      `json:"chosen"`
}

// Decision is the outcome of one pass through the ladder.
type Decision struct {
	DealerID       uuid.UUID   `json:"dealerId"`
	AssignmentType string      `json:"assignmentType"`
	Reason         string      `json:"reason"`
	Candidates     []Candidate `json:"candidates"`
}

// Decide walks the ladder for one lead. It never mutates anything; callers
// persist the decision. The fallback dealer guarantees a decision is always
// reached unless a lookup fails outright.
func Decide(ctx context.Context, lead *leadsrepo.Lead, lookup DealerLookup, fallbackID uuid.UUID) (Decision, error) {
	candidates := make([]Candidate, 0, 4)

	// Rung 1: attribution lock, honored only while the dealer is active.
	if lead.LockedDealerID != nil {
		dealer, err := lookup.GetDealer(ctx, *lead.LockedDealerID)
		if err != nil {
			return Decision{}, fmt.Errorf("lookup locked dealer %s: %w", *lead.LockedDealerID, err)
		}
		c := Candidate{DealerID: dealer.ID, Source: "lock", Active: dealer.Active}
		if dealer.Active {
			c.Chosen = true
			return Decision{
				DealerID:       dealer.ID,
				AssignmentType: TypeDealerSourced,
				Reason:         lockReason(lead.LockedReason),
				Candidates:     append(candidates, c),
			}, nil
		}
		candidates = append(candidates, c)
	}

	// Rung 2: geographic coverage, lowest priority value wins. Candidates
	// arrive ordered by priority then seed position, so the first active
	// one is the winner.
	if lead.State != "" && lead.Zip != "" {
		coverage, err := lookup.GetCoverage(ctx, lead.State, lead.Zip)
		if err != nil {
			return Decision{}, fmt.Errorf("lookup coverage %s/%s: %w", lead.State, lead.Zip, err)
		}
		var winner *Candidate
		for _, cov := range coverage {
			dealer, err := lookup.GetDealer(ctx, cov.DealerID)
			if err != nil {
				return Decision{}, fmt.Errorf("lookup coverage dealer %s: %w", cov.DealerID, err)
			}
			c := Candidate{DealerID: dealer.ID, Source: "coverage", Priority: cov.Priority, Active: dealer.Active}
			candidates = append(candidates, c)
			if winner == nil && dealer.Active {
				winner = &candidates[len(candidates)-1]
			}
		}
		if winner != nil {
			winner.Chosen = true
			return Decision{
				DealerID:       winner.DealerID,
				AssignmentType: TypeGeoRouted,
				Reason:         ReasonZipMatch,
				Candidates:     candidates,
			}, nil
		}
	}

	// Rung 3: house fallback dealer. Always assigned, active or not, so no
	// prequalified lead is left stranded.
	candidates = append(candidates, Candidate{DealerID: fallbackID, Source: "fallback", Active: true, Chosen: true})
	return Decision{
		DealerID:       fallbackID,
		AssignmentType: TypeGeoRouted,
		Reason:         ReasonFallback,
		Candidates:     candidates,
	}, nil
}

func lockReason(locked string) string {
	if locked == ReasonReferralLock {
		return ReasonReferralLock
	}
	return ReasonDealerNumber
}
