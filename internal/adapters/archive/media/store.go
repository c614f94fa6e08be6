package media

import (
	"context"

	domain "sequoia/internal/domain/media"
)

// Store reads MediaSource records, always keyed by voyage id.
type Store interface {
	ListByVoyage(ctx context.Context, voyageID int64) ([]domain.Source, error)
}
