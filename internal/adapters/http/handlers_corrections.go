package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"sequoia/internal/application/orchestrators"
)

// handleCorrectionSubmit handles POST /voyages/{id}/corrections.
// Accepts a browser form post (CSRF-protected) or a JSON body. The archive
// itself is read-only; submissions land in the local inbox and notify the
// maintainers by email.
// PRE: {id} is a positive integer
// POST: submission persisted with a fresh UUID; browser is redirected back
// to the voyage page
func handleCorrectionSubmit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, ok := pathID(r)
	if !ok {
		notFound(w, r)
		return
	}

	input := orchestrators.SubmitCorrectionInput{
		ID:       generateID(),
		VoyageID: id,
	}

	isForm := strings.HasPrefix(r.Header.Get("Content-Type"), "application/x-www-form-urlencoded")
	if isForm {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form submission", http.StatusBadRequest)
			return
		}
		input.Name = strings.TrimSpace(r.FormValue("name"))
		input.Email = strings.TrimSpace(r.FormValue("email"))
		input.Message = strings.TrimSpace(r.FormValue("message"))
	} else {
		var body struct {
			Name    string `json:"name"`
			Email   string `json:"email"`
			Message string `json:"message"`
		}
		if err := strictDecode(r, &body); err != nil {
			http.Error(w, "Invalid request", http.StatusBadRequest)
			return
		}
		input.Name = strings.TrimSpace(body.Name)
		input.Email = strings.TrimSpace(body.Email)
		input.Message = strings.TrimSpace(body.Message)
	}

	deps := orchestrators.SubmitCorrectionDeps{
		CorrectionStore: stores.CorrectionStore,
		Sender:          emailSender,
		NotifyTo:        emailNotifyTo,
		From:            emailFromAddress,
	}

	result, err := orchestrators.ExecuteSubmitCorrection(ctx, input, deps)
	if err != nil {
		if errors.Is(err, orchestrators.ErrInvalidSubmission) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		slog.Error("correction_submit_failed", "voyage_id", id, "error", err.Error())
		internalError(w, err)
		return
	}

	if isForm {
		http.Redirect(w, r, fmt.Sprintf("/voyages/%d?submitted=1#corrections", id), http.StatusSeeOther)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]any{
		"submission_id": result.SubmissionID,
	})
}
