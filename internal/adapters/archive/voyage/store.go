package voyage

import (
	"context"

	"sequoia/internal/application/filters"
	domain "sequoia/internal/domain/voyage"
)

// Store reads Voyage records. The archive is read-only from this system's
// perspective.
type Store interface {
	List(ctx context.Context, f filters.Filters) ([]domain.Voyage, error)
	ListByPresident(ctx context.Context, presidentID int64) ([]domain.Voyage, error)
	GetByID(ctx context.Context, id int64) (domain.Voyage, error)
}
