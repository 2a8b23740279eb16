package ports

import (
	"context"

	"github.com/pressid/mission-orders/internal/core/domain"
	"github.com/pressid/mission-orders/internal/db"
)

// JournalistService resolves the identity record a mission order is issued to
type JournalistService interface {
	// Resolve returns the journalist with req.NationalID, creating it when it does not exist.
	// An existing record is returned as stored, request details are not applied to it.
	Resolve(ctx context.Context, conn db.Querier, req *JournalistRequest) (*domain.Journalist, error)
}

// JournalistRequest holds the identity details typed on the issuance form
type JournalistRequest struct {
	NationalID string
	FullName   string
	Phone      string
	Email      *string
	PhotoURL   *string
}
