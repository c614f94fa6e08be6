package passenger

import "strings"

// Passenger is one person recorded aboard a voyage. Owned by exactly one
// voyage; fetched per voyage-detail view.
type Passenger struct {
	ID        int64  `json:"passenger_id"`
	Name      string `json:"name"`
	BasicInfo string `json:"basic_info"`
	BioPath   string `json:"bio_path"` // external biography URL, optional
}

// HasBio reports whether the passenger has a linkable biography.
func (p Passenger) HasBio() bool {
	return strings.TrimSpace(p.BioPath) != ""
}
