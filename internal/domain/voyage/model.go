package voyage

import (
	"bytes"
	"strings"
	"time"
)

// NonPresidentialGroup is the group key for voyages with no presidential
// association.
const NonPresidentialGroup = "Non-presidential"

// NonPresidentialHeading is the display heading for the sentinel group.
const NonPresidentialHeading = "Before / After Presidential Use"

// dateLayout is the display format for voyage dates.
const dateLayout = "Jan 2, 2006"

// timestampLayouts are the accepted wire formats for voyage timestamps, in
// order of preference. The backend has served all of these at one point.
var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// Flag is a boolean that unmarshals from the backend's mixed 0/1, true/false
// and null encodings.
type Flag bool

// UnmarshalJSON coerces 1, "1", true (and their negatives/null) to a bool.
// PRE: data is a JSON scalar
// POST: unknown encodings coerce to false rather than erroring
func (f *Flag) UnmarshalJSON(data []byte) error {
	switch string(bytes.TrimSpace(data)) {
	case "1", `"1"`, "true", `"true"`:
		*f = true
	default:
		*f = false
	}
	return nil
}

// Voyage is one recorded trip of the vessel as served by the archive API.
// Timestamps are kept in wire form; null JSON fields leave the zero value.
// INVARIANT: a voyage is read-only from this system's perspective.
type Voyage struct {
	ID             int64  `json:"voyage_id"`
	StartTimestamp string `json:"start_timestamp"`
	EndTimestamp   string `json:"end_timestamp"`
	AdditionalInfo string `json:"additional_info"`
	Notes          string `json:"notes"`
	Significant    Flag   `json:"significant"`
	Royalty        Flag   `json:"royalty"`
	PresidentID    int64  `json:"president_id"`
	PresidentName  string `json:"president_name"`
}

// parseTimestamp tries the known wire layouts.
func parseTimestamp(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// StartTime returns the parsed start timestamp.
// POST: ok is false when the timestamp is absent or unparseable
func (v Voyage) StartTime() (time.Time, bool) {
	return parseTimestamp(v.StartTimestamp)
}

// EndTime returns the parsed end timestamp.
func (v Voyage) EndTime() (time.Time, bool) {
	return parseTimestamp(v.EndTimestamp)
}

// DateRange formats the voyage's dates for display.
// POST: returns a single date when start and end fall on the same day or the
// end is absent/invalid, otherwise "start – end"
func (v Voyage) DateRange() string {
	start, ok := v.StartTime()
	if !ok {
		return ""
	}
	end, ok := v.EndTime()
	if !ok || sameDay(start, end) {
		return start.Format(dateLayout)
	}
	return start.Format(dateLayout) + " – " + end.Format(dateLayout)
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// Excerpt returns the short description shown on voyage cards, preferring
// the additional info over the logbook notes.
func (v Voyage) Excerpt() string {
	if s := strings.TrimSpace(v.AdditionalInfo); s != "" {
		return s
	}
	return strings.TrimSpace(v.Notes)
}

// GroupKey returns the president's full name, or the sentinel group key when
// the voyage has no presidential association.
func (v Voyage) GroupKey() string {
	if name := strings.TrimSpace(v.PresidentName); name != "" {
		return name
	}
	return NonPresidentialGroup
}

// GroupHeading returns the display heading for a group key.
func GroupHeading(key string) string {
	if key == NonPresidentialGroup {
		return NonPresidentialHeading
	}
	return key + " Administration"
}
