package president

import (
	"context"

	domain "sequoia/internal/domain/president"
)

// Store reads President reference data.
type Store interface {
	List(ctx context.Context) ([]domain.President, error)
}
