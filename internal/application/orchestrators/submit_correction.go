// Package orchestrators holds the write-side use cases. The archive is
// read-only, so the only writes are reader-submitted corrections.
package orchestrators

import (
	"context"
	"errors"
	"fmt"
	"html"
	"log/slog"
	"time"

	"sequoia/internal/adapters/email"
	correctionStore "sequoia/internal/adapters/storage/correction"
	domain "sequoia/internal/domain/correction"
)

// ErrInvalidSubmission marks validation failures so handlers can respond
// 400 instead of 500.
var ErrInvalidSubmission = errors.New("invalid submission")

// SubmitCorrectionInput carries a reader's correction for one voyage.
type SubmitCorrectionInput struct {
	ID       string
	VoyageID int64
	Name     string
	Email    string
	Message  string
}

// SubmitCorrectionDeps holds dependencies for the submit-correction use
// case. Sender may be nil when email notification is disabled.
type SubmitCorrectionDeps struct {
	CorrectionStore correctionStore.Store
	Sender          email.Sender
	NotifyTo        string // maintainer address notified of new submissions
	From            string
}

// SubmitCorrectionResult carries the output of the use case.
type SubmitCorrectionResult struct {
	SubmissionID string
}

// ExecuteSubmitCorrection validates, persists and forwards a correction.
// The email notification is best effort: a provider failure is logged but
// does not fail the submission, which is already in the inbox.
// PRE: input.ID is a fresh unique id
// POST: submission persisted with status "new"
func ExecuteSubmitCorrection(ctx context.Context, input SubmitCorrectionInput, deps SubmitCorrectionDeps) (SubmitCorrectionResult, error) {
	c := domain.Correction{
		ID:        input.ID,
		VoyageID:  input.VoyageID,
		Name:      input.Name,
		Email:     input.Email,
		Message:   input.Message,
		Status:    domain.StatusNew,
		CreatedAt: time.Now().UTC(),
	}
	if err := c.Validate(); err != nil {
		return SubmitCorrectionResult{}, fmt.Errorf("%w: %w", ErrInvalidSubmission, err)
	}

	if err := deps.CorrectionStore.Save(ctx, c); err != nil {
		return SubmitCorrectionResult{}, fmt.Errorf("save correction: %w", err)
	}

	if deps.Sender != nil && deps.NotifyTo != "" {
		req := email.SendRequest{
			To:      []string{deps.NotifyTo},
			From:    deps.From,
			Subject: fmt.Sprintf("Correction submitted for voyage %d", c.VoyageID),
			HTML:    notificationHTML(c),
			ReplyTo: c.Email,
		}
		if _, err := deps.Sender.Send(ctx, req); err != nil {
			slog.Warn("correction_notify_failed", "submission_id", c.ID, "error", err.Error())
		}
	}

	slog.Info("correction_submitted", "submission_id", c.ID, "voyage_id", c.VoyageID)
	return SubmitCorrectionResult{SubmissionID: c.ID}, nil
}

func notificationHTML(c domain.Correction) string {
	name := c.Name
	if name == "" {
		name = "Anonymous"
	}
	return fmt.Sprintf(
		"<p><strong>Voyage %d</strong> — correction from %s</p><p>%s</p>",
		c.VoyageID, html.EscapeString(name), html.EscapeString(c.Message))
}
