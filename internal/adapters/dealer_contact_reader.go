package adapters

import (
	"context"

	"github.com/google/uuid"

	dealersvc "prequal_backend/internal/dealers/service"
)

// DealerContactReader adapts the dealer directory for notification lookups.
type DealerContactReader struct {
	svc *dealersvc.Service
}

func NewDealerContactReader(svc *dealersvc.Service) *DealerContactReader {
	return &DealerContactReader{svc: svc}
}

func (a *DealerContactReader) GetContact(ctx context.Context, dealerID uuid.UUID) (string, string, error) {
	dealer, err := a.svc.GetDealer(ctx, dealerID)
	if err != nil {
		return "", "", err
	}
	return dealer.Name, dealer.Email, nil
}
