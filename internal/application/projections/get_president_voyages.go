package projections

import (
	"context"
	"log/slog"
	"sync"

	presidentStore "sequoia/internal/adapters/archive/president"
	presidentDomain "sequoia/internal/domain/president"
	voyageDomain "sequoia/internal/domain/voyage"
)

// PresidentVoyageStore is the voyage store interface needed by the
// per-president projection.
type PresidentVoyageStore interface {
	ListByPresident(ctx context.Context, presidentID int64) ([]voyageDomain.Voyage, error)
}

// GetPresidentVoyagesQuery carries input for the per-president projection.
type GetPresidentVoyagesQuery struct {
	PresidentID int64
}

// GetPresidentVoyagesDeps holds dependencies for the per-president
// projection.
type GetPresidentVoyagesDeps struct {
	VoyageStore    PresidentVoyageStore
	PresidentStore presidentStore.Store
}

// PresidentVoyagesResult carries the output of the per-president
// projection. Heading falls back to "Administration" when the president id
// resolves to no known name.
type PresidentVoyagesResult struct {
	PresidentID int64        `json:"president_id"`
	Heading     string       `json:"heading"`
	TermRange   string       `json:"term_range"`
	Voyages     []VoyageCard `json:"voyages"`
}

// QueryGetPresidentVoyages fetches one administration's voyages and resolves
// the president's display name from the reference list, concurrently.
// Either fetch failing degrades independently: an unknown president keeps
// the generic heading, a failed voyage list renders empty.
func QueryGetPresidentVoyages(ctx context.Context, query GetPresidentVoyagesQuery, deps GetPresidentVoyagesDeps) PresidentVoyagesResult {
	var (
		wg         sync.WaitGroup
		voyages    []voyageDomain.Voyage
		vErr       error
		presidents []presidentDomain.President
		pErr       error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		voyages, vErr = deps.VoyageStore.ListByPresident(ctx, query.PresidentID)
	}()
	go func() {
		defer wg.Done()
		presidents, pErr = deps.PresidentStore.List(ctx)
	}()
	wg.Wait()

	if vErr != nil {
		slog.Warn("president_voyages_unavailable", "president_id", query.PresidentID, "error", vErr.Error())
		voyages = nil
	}
	if pErr != nil {
		slog.Warn("president_list_unavailable", "error", pErr.Error())
		presidents = nil
	}

	result := PresidentVoyagesResult{
		PresidentID: query.PresidentID,
		Heading:     "Administration",
		Voyages:     SortCardsByStart(voyages),
	}
	for _, p := range presidents {
		if p.ID == query.PresidentID {
			result.Heading = p.FullName
			result.TermRange = p.TermRange()
			break
		}
	}
	return result
}
