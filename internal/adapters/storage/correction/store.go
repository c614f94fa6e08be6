package correction

import (
	"context"

	domain "sequoia/internal/domain/correction"
)

// Store persists Correction submissions.
type Store interface {
	GetByID(ctx context.Context, id string) (domain.Correction, error)
	Save(ctx context.Context, value domain.Correction) error
	List(ctx context.Context, filter ListFilter) ([]domain.Correction, error)
}

// ListFilter carries filtering parameters for List operations.
type ListFilter struct {
	VoyageID int64
	Status   string
	Limit    int
}
