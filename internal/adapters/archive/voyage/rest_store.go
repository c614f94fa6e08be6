package voyage

import (
	"context"
	"fmt"

	"sequoia/internal/adapters/archive"
	"sequoia/internal/application/filters"
	domain "sequoia/internal/domain/voyage"
)

// RESTStore implements Store against the archive backend.
type RESTStore struct {
	api *archive.Client
}

// NewRESTStore creates a new RESTStore.
func NewRESTStore(api *archive.Client) *RESTStore {
	return &RESTStore{api: api}
}

// List retrieves voyages matching the filter state. Filtering happens
// server-side; the canonical filter encoding is the wire query string.
func (s *RESTStore) List(ctx context.Context, f filters.Filters) ([]domain.Voyage, error) {
	var out []domain.Voyage
	if err := s.api.GetJSON(ctx, "/api/voyages", f.Values(), &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ListByPresident retrieves all voyages recorded under one administration.
func (s *RESTStore) ListByPresident(ctx context.Context, presidentID int64) ([]domain.Voyage, error) {
	var out []domain.Voyage
	path := fmt.Sprintf("/api/presidents/%d/voyages", presidentID)
	if err := s.api.GetJSON(ctx, path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetByID retrieves a single voyage.
// POST: returns archive.ErrNotFound (wrapped) when no record exists
func (s *RESTStore) GetByID(ctx context.Context, id int64) (domain.Voyage, error) {
	var out domain.Voyage
	path := fmt.Sprintf("/api/voyages/%d", id)
	if err := s.api.GetJSON(ctx, path, nil, &out); err != nil {
		return domain.Voyage{}, err
	}
	return out, nil
}
