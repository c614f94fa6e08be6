package projections

import (
	"context"
	"errors"
	"testing"

	mediaDomain "sequoia/internal/domain/media"
)

type stubMediaLister struct {
	sources []mediaDomain.Source
	err     error
}

func (s *stubMediaLister) ListByVoyage(ctx context.Context, voyageID int64) ([]mediaDomain.Source, error) {
	return s.sources, s.err
}

func pagep(n int) *int { return &n }

// TestQueryGetMediaGallery_ClassifiesAndOrders tests classification plus
// page ordering: a .mp4 is a video link card, a page-numbered scan sorts
// ahead of an unpaginated photo.
func TestQueryGetMediaGallery_ClassifiesAndOrders(t *testing.T) {
	deps := GetMediaGalleryDeps{MediaStore: &stubMediaLister{sources: []mediaDomain.Source{
		{ID: 1, Path: "/media/launch.mp4", Type: "Newsreel"},
		{ID: 2, Path: "/media/logbook-2.jpg", Type: "Logbook", PageNum: pagep(2)},
		{ID: 3, Path: "/media/manifest.pdf", Type: "Manifest"},
	}}}
	result := QueryGetMediaGallery(context.Background(), GetMediaGalleryQuery{VoyageID: 7}, deps)

	if len(result.Items) != 3 {
		t.Fatalf("got %d items", len(result.Items))
	}
	if result.Items[0].ID != 2 {
		t.Errorf("page-numbered item not first: %+v", result.Items)
	}
	kinds := map[int64]mediaDomain.Kind{}
	for _, it := range result.Items {
		kinds[it.ID] = it.Kind
	}
	if kinds[1] != mediaDomain.KindVideo {
		t.Errorf(".mp4 classified as %q, want video", kinds[1])
	}
	if kinds[2] != mediaDomain.KindImage {
		t.Errorf(".jpg classified as %q, want image", kinds[2])
	}
	if kinds[3] != mediaDomain.KindOther {
		t.Errorf(".pdf classified as %q, want other", kinds[3])
	}
}

// TestQueryGetMediaGallery_FailureDegradesToEmpty tests that a backend
// failure yields an empty gallery.
func TestQueryGetMediaGallery_FailureDegradesToEmpty(t *testing.T) {
	deps := GetMediaGalleryDeps{MediaStore: &stubMediaLister{err: errors.New("status 500")}}
	result := QueryGetMediaGallery(context.Background(), GetMediaGalleryQuery{VoyageID: 7}, deps)
	if len(result.Items) != 0 {
		t.Errorf("got %+v, want empty", result.Items)
	}
	if result.VoyageID != 7 {
		t.Errorf("got voyage id %d", result.VoyageID)
	}
}
