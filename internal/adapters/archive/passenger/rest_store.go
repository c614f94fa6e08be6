package passenger

import (
	"context"
	"fmt"

	"sequoia/internal/adapters/archive"
	domain "sequoia/internal/domain/passenger"
)

// RESTStore implements Store against the archive backend.
type RESTStore struct {
	api *archive.Client
}

// NewRESTStore creates a new RESTStore.
func NewRESTStore(api *archive.Client) *RESTStore {
	return &RESTStore{api: api}
}

// ListByVoyage retrieves the passengers recorded for one voyage.
func (s *RESTStore) ListByVoyage(ctx context.Context, voyageID int64) ([]domain.Passenger, error) {
	var out []domain.Passenger
	path := fmt.Sprintf("/api/voyages/%d/passengers", voyageID)
	if err := s.api.GetJSON(ctx, path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}
