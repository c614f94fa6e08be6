package projections

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"sequoia/internal/adapters/archive"
	passengerDomain "sequoia/internal/domain/passenger"
	voyageDomain "sequoia/internal/domain/voyage"
)

// DetailVoyageStore is the voyage store interface needed by the detail
// projection.
type DetailVoyageStore interface {
	GetByID(ctx context.Context, id int64) (voyageDomain.Voyage, error)
}

// DetailPassengerStore is the passenger store interface needed by the
// detail projection.
type DetailPassengerStore interface {
	ListByVoyage(ctx context.Context, voyageID int64) ([]passengerDomain.Passenger, error)
}

// GetVoyageDetailQuery carries input for the detail projection.
type GetVoyageDetailQuery struct {
	VoyageID int64
}

// GetVoyageDetailDeps holds dependencies for the detail projection.
type GetVoyageDetailDeps struct {
	VoyageStore    DetailVoyageStore
	PassengerStore DetailPassengerStore
}

// VoyageDetailResult carries the output of the detail projection. Found
// distinguishes "no such voyage" from a voyage that merely has empty
// sections; the media gallery is loaded separately (see GetMediaGallery).
type VoyageDetailResult struct {
	Found      bool
	Voyage     voyageDomain.Voyage
	DateRange  string
	Passengers []passengerDomain.Passenger
}

// QueryGetVoyageDetail fetches one voyage and its passenger list
// concurrently. Any voyage fetch failure, missing record or backend
// outage alike, yields Found=false; a passenger fetch failure degrades
// to an empty list without blocking the voyage's own metadata.
func QueryGetVoyageDetail(ctx context.Context, query GetVoyageDetailQuery, deps GetVoyageDetailDeps) (VoyageDetailResult, error) {
	var (
		wg         sync.WaitGroup
		v          voyageDomain.Voyage
		vErr       error
		passengers []passengerDomain.Passenger
		pErr       error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		v, vErr = deps.VoyageStore.GetByID(ctx, query.VoyageID)
	}()
	go func() {
		defer wg.Done()
		passengers, pErr = deps.PassengerStore.ListByVoyage(ctx, query.VoyageID)
	}()
	wg.Wait()

	if vErr != nil {
		if !errors.Is(vErr, archive.ErrNotFound) {
			slog.Warn("voyage_detail_unavailable", "voyage_id", query.VoyageID, "error", vErr.Error())
		}
		return VoyageDetailResult{Found: false}, nil
	}

	if pErr != nil {
		slog.Warn("passenger_list_unavailable", "voyage_id", query.VoyageID, "error", pErr.Error())
		passengers = nil
	}

	return VoyageDetailResult{
		Found:      true,
		Voyage:     v,
		DateRange:  v.DateRange(),
		Passengers: passengers,
	}, nil
}
