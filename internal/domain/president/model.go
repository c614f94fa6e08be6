package president

import "strings"

// President is immutable reference data describing one administration.
// Fetched once per page render; never mutated by this system.
type President struct {
	ID        int64  `json:"president_id"`
	FullName  string `json:"full_name"`
	TermStart string `json:"term_start"` // ISO date
	TermEnd   string `json:"term_end"`   // ISO date, empty while in office
	Party     string `json:"party"`
	Notes     string `json:"notes"`
}

// TermRange formats the term for display, e.g. "1969 – 1974" or "1961 –".
func (p President) TermRange() string {
	start := yearOf(p.TermStart)
	if start == "" {
		return ""
	}
	return strings.TrimSpace(start + " – " + yearOf(p.TermEnd))
}

func yearOf(isoDate string) string {
	if len(isoDate) >= 4 {
		return isoDate[:4]
	}
	return ""
}
