package president

import (
	"context"

	"sequoia/internal/adapters/archive"
	domain "sequoia/internal/domain/president"
)

// RESTStore implements Store against the archive backend.
type RESTStore struct {
	api *archive.Client
}

// NewRESTStore creates a new RESTStore.
func NewRESTStore(api *archive.Client) *RESTStore {
	return &RESTStore{api: api}
}

// List retrieves the full president reference list.
// POST: returns the records in backend order, or an error the caller may
// degrade to an empty selector
func (s *RESTStore) List(ctx context.Context) ([]domain.President, error) {
	var out []domain.President
	if err := s.api.GetJSON(ctx, "/api/presidents", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}
