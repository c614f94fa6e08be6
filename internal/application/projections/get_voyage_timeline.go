package projections

import (
	"context"
	"log/slog"
	"sort"

	presidentStore "sequoia/internal/adapters/archive/president"
	"sequoia/internal/application/filters"
	presidentDomain "sequoia/internal/domain/president"
	voyageDomain "sequoia/internal/domain/voyage"
)

// TimelineVoyageStore is the voyage store interface needed by the timeline
// projection.
type TimelineVoyageStore interface {
	List(ctx context.Context, f filters.Filters) ([]voyageDomain.Voyage, error)
}

// GetVoyageTimelineQuery carries input for the timeline projection.
type GetVoyageTimelineQuery struct {
	Filters filters.Filters
}

// GetVoyageTimelineDeps holds dependencies for the timeline projection.
type GetVoyageTimelineDeps struct {
	VoyageStore    TimelineVoyageStore
	PresidentStore presidentStore.Store
}

// VoyageCard is one rendered list item.
type VoyageCard struct {
	ID          int64  `json:"voyage_id"`
	DateRange   string `json:"date_range"`
	Significant bool   `json:"significant"`
	Royalty     bool   `json:"royalty"`
	Excerpt     string `json:"excerpt"`
}

// TimelineGroup is one administration's section of the timeline.
type TimelineGroup struct {
	Key     string       `json:"key"`
	Heading string       `json:"heading"`
	Voyages []VoyageCard `json:"voyages"`
}

// VoyageTimelineResult carries the output of the timeline projection.
type VoyageTimelineResult struct {
	Groups     []TimelineGroup             `json:"groups"`
	Presidents []presidentDomain.President `json:"presidents"`
	Total      int                         `json:"total"`
}

// QueryGetVoyageTimeline fetches the filtered voyage collection and groups
// it by administration. Backend failures on either list degrade to empty
// results so the view renders its "No voyages found" state instead of an
// error page.
func QueryGetVoyageTimeline(ctx context.Context, query GetVoyageTimelineQuery, deps GetVoyageTimelineDeps) VoyageTimelineResult {
	voyages, err := deps.VoyageStore.List(ctx, query.Filters)
	if err != nil {
		slog.Warn("voyage_list_unavailable", "error", err.Error())
		voyages = nil
	}

	presidents, err := deps.PresidentStore.List(ctx)
	if err != nil {
		slog.Warn("president_list_unavailable", "error", err.Error())
		presidents = nil
	}

	return VoyageTimelineResult{
		Groups:     GroupVoyages(voyages),
		Presidents: presidents,
		Total:      len(voyages),
	}
}

// GroupVoyages partitions voyages by president name and sorts each group
// chronologically.
// POST: the sentinel group is always last; real administrations keep first-
// appearance order; within a group voyages ascend by start timestamp, ties
// broken by voyage id; the result is deterministic and idempotent for any
// input order
func GroupVoyages(voyages []voyageDomain.Voyage) []TimelineGroup {
	byKey := make(map[string][]voyageDomain.Voyage)
	var order []string

	for _, v := range voyages {
		key := v.GroupKey()
		if _, ok := byKey[key]; !ok {
			order = append(order, key)
		}
		byKey[key] = append(byKey[key], v)
	}

	sort.SliceStable(order, func(i, j int) bool {
		return sentinelRank(order[i]) < sentinelRank(order[j])
	})

	groups := make([]TimelineGroup, 0, len(order))
	for _, key := range order {
		groups = append(groups, TimelineGroup{
			Key:     key,
			Heading: voyageDomain.GroupHeading(key),
			Voyages: SortCardsByStart(byKey[key]),
		})
	}
	return groups
}

func sentinelRank(key string) int {
	if key == voyageDomain.NonPresidentialGroup {
		return 1
	}
	return 0
}

// lessByStartThenID orders voyages ascending by start timestamp, ties (and
// unparseable timestamps) broken by id ascending.
func lessByStartThenID(a, b voyageDomain.Voyage) bool {
	at, _ := a.StartTime()
	bt, _ := b.StartTime()
	if !at.Equal(bt) {
		return at.Before(bt)
	}
	return a.ID < b.ID
}

func newVoyageCard(v voyageDomain.Voyage) VoyageCard {
	return VoyageCard{
		ID:          v.ID,
		DateRange:   v.DateRange(),
		Significant: bool(v.Significant),
		Royalty:     bool(v.Royalty),
		Excerpt:     v.Excerpt(),
	}
}

// SortCardsByStart converts voyages to cards in display order: start
// timestamp ascending, ties by id.
func SortCardsByStart(voyages []voyageDomain.Voyage) []VoyageCard {
	sorted := make([]voyageDomain.Voyage, len(voyages))
	copy(sorted, voyages)
	sort.SliceStable(sorted, func(i, j int) bool {
		return lessByStartThenID(sorted[i], sorted[j])
	})
	cards := make([]VoyageCard, 0, len(sorted))
	for _, v := range sorted {
		cards = append(cards, newVoyageCard(v))
	}
	return cards
}
