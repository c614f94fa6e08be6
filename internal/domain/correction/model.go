package correction

import (
	"errors"
	"regexp"
	"strings"
	"time"
)

// Max length constants for user-editable fields.
const (
	MaxNameLength    = 200
	MaxEmailLength   = 320
	MaxMessageLength = 4000
)

// Submission statuses.
const (
	StatusNew      = "new"
	StatusResolved = "resolved"
)

var emailRegex = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// Correction is a reader-submitted correction or addition for one voyage
// record. The archive itself stays read-only; corrections land in a local
// inbox and are forwarded to the maintainers.
// INVARIANT: a correction always references a voyage via VoyageID.
type Correction struct {
	ID        string
	VoyageID  int64
	Name      string // submitter name, optional
	Email     string // submitter email, optional reply address
	Message   string
	Status    string
	CreatedAt time.Time
}

// Validate checks the submission's invariants.
// POST: returns nil if valid, error describing the first violation otherwise
func (c *Correction) Validate() error {
	if c.VoyageID <= 0 {
		return errors.New("correction voyage ID must be positive")
	}
	if strings.TrimSpace(c.Message) == "" {
		return errors.New("correction message cannot be empty")
	}
	if len(c.Message) > MaxMessageLength {
		return errors.New("correction message cannot exceed 4000 characters")
	}
	if len(c.Name) > MaxNameLength {
		return errors.New("correction name cannot exceed 200 characters")
	}
	if c.Email != "" {
		if len(c.Email) > MaxEmailLength {
			return errors.New("correction email cannot exceed 320 characters")
		}
		if !emailRegex.MatchString(c.Email) {
			return errors.New("correction email is not a valid address")
		}
	}
	return nil
}

// Resolve marks the correction as handled.
// POST: Status is StatusResolved
func (c *Correction) Resolve() {
	c.Status = StatusResolved
}
