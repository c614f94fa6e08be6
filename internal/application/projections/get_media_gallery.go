package projections

import (
	"context"
	"log/slog"

	mediaStore "sequoia/internal/adapters/archive/media"
	mediaDomain "sequoia/internal/domain/media"
)

// GetMediaGalleryQuery carries input for the gallery projection.
type GetMediaGalleryQuery struct {
	VoyageID int64
}

// GetMediaGalleryDeps holds dependencies for the gallery projection.
type GetMediaGalleryDeps struct {
	MediaStore mediaStore.Store
}

// GalleryItem is one classified, display-ready media entry.
type GalleryItem struct {
	ID      int64            `json:"source_id"`
	URL     string           `json:"url"`
	Kind    mediaDomain.Kind `json:"kind"`
	Caption string           `json:"caption"`
	Page    *int             `json:"page_num,omitempty"`
}

// MediaGalleryResult carries the output of the gallery projection.
type MediaGalleryResult struct {
	VoyageID int64         `json:"voyage_id"`
	Items    []GalleryItem `json:"items"`
}

// QueryGetMediaGallery fetches a voyage's media, classifies each entry by
// extension and orders paginated scans by page number. A backend failure
// degrades to an empty gallery ("No media for this voyage").
func QueryGetMediaGallery(ctx context.Context, query GetMediaGalleryQuery, deps GetMediaGalleryDeps) MediaGalleryResult {
	sources, err := deps.MediaStore.ListByVoyage(ctx, query.VoyageID)
	if err != nil {
		slog.Warn("media_list_unavailable", "voyage_id", query.VoyageID, "error", err.Error())
		sources = nil
	}

	mediaDomain.SortForDisplay(sources)

	items := make([]GalleryItem, 0, len(sources))
	for _, s := range sources {
		items = append(items, GalleryItem{
			ID:      s.ID,
			URL:     s.Path,
			Kind:    s.Kind(),
			Caption: s.Caption(),
			Page:    s.PageNum,
		})
	}
	return MediaGalleryResult{VoyageID: query.VoyageID, Items: items}
}
