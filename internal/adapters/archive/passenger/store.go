package passenger

import (
	"context"

	domain "sequoia/internal/domain/passenger"
)

// Store reads Passenger records, always keyed by voyage id.
type Store interface {
	ListByVoyage(ctx context.Context, voyageID int64) ([]domain.Passenger, error)
}
