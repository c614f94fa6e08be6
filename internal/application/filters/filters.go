// Package filters holds the canonical voyage filter state. The URL query
// string is the single shared resource across views, so every component
// reads and writes it through this one parse/encode pair rather than ad hoc
// string concatenation.
package filters

import (
	"net/url"
	"strconv"
)

// Recognized query-string keys. These match the backend's
// GET /api/voyages contract one for one.
const (
	KeyQuery       = "q"
	KeySignificant = "significant"
	KeyRoyalty     = "royalty"
	KeyDateFrom    = "date_from"
	KeyDateTo      = "date_to"
	KeyPresidentID = "president_id"
)

// Filters is the serializable filter-state value object. The zero value
// means "no constraint" for every field; absence of a key implies no
// constraint, never a literal empty-string match.
type Filters struct {
	Query       string // free-text keyword
	Significant bool   // only voyages flagged significant
	Royalty     bool   // only voyages with royalty aboard
	DateFrom    string // ISO date lower bound
	DateTo      string // ISO date upper bound
	PresidentID string // numeric id as it appears in the select control
}

// Parse derives a Filters from URL query values. Unrecognized keys are
// ignored; the boolean filters accept only "1" as true.
// POST: Parse(f.Values()) == f for every f (round-trip law)
func Parse(q url.Values) Filters {
	return Filters{
		Query:       q.Get(KeyQuery),
		Significant: q.Get(KeySignificant) == "1",
		Royalty:     q.Get(KeyRoyalty) == "1",
		DateFrom:    q.Get(KeyDateFrom),
		DateTo:      q.Get(KeyDateTo),
		PresidentID: q.Get(KeyPresidentID),
	}
}

// Values serializes the filter state, emitting only non-zero fields.
func (f Filters) Values() url.Values {
	v := url.Values{}
	if f.Query != "" {
		v.Set(KeyQuery, f.Query)
	}
	if f.Significant {
		v.Set(KeySignificant, "1")
	}
	if f.Royalty {
		v.Set(KeyRoyalty, "1")
	}
	if f.DateFrom != "" {
		v.Set(KeyDateFrom, f.DateFrom)
	}
	if f.DateTo != "" {
		v.Set(KeyDateTo, f.DateTo)
	}
	if f.PresidentID != "" {
		v.Set(KeyPresidentID, f.PresidentID)
	}
	return v
}

// Encode returns the canonical query string for the filter state.
// POST: returns "" for the zero value (a "clear" action yields an empty
// query string)
func (f Filters) Encode() string {
	return f.Values().Encode()
}

// HasAny reports whether any constraint is set.
func (f Filters) HasAny() bool {
	return f != Filters{}
}

// PresidentIDInt returns the numeric president id, or 0 when unset or
// non-numeric.
func (f Filters) PresidentIDInt() int64 {
	n, err := strconv.ParseInt(f.PresidentID, 10, 64)
	if err != nil || n < 0 {
		return 0
	}
	return n
}
