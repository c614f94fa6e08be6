package web

import (
	"bytes"
	"encoding/json"
	"html/template"
	"log/slog"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/gorilla/csrf"
	"github.com/yuin/goldmark"
	goldmarkHTML "github.com/yuin/goldmark/renderer/html"

	"sequoia/internal/application/filters"
	"sequoia/internal/application/projections"
)

// mdRenderer is a goldmark instance configured for safe HTML output.
// Raw HTML in markdown input is escaped (WithUnsafe is NOT set), preventing XSS.
var mdRenderer = goldmark.New(
	goldmark.WithRendererOptions(
		goldmarkHTML.WithHardWraps(),
	),
)

// generateID creates a new UUID string.
func generateID() string {
	return uuid.New().String()
}

// internalError logs the real error and returns a generic message to the client.
// This prevents leaking internal details per OWASP A05.
func internalError(w http.ResponseWriter, err error) {
	slog.Error("internal_error", "error", err.Error())
	http.Error(w, "internal server error", http.StatusInternalServerError)
}

// strictDecode decodes JSON from the request body, rejecting unknown fields.
func strictDecode(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

const templatesDir = "internal/adapters/http/templates"

func isHTMLRequest(r *http.Request) bool {
	accept := r.Header.Get("Accept")
	return strings.Contains(accept, "text/html") || strings.Contains(accept, "application/xhtml+xml")
}

func renderTemplate(w http.ResponseWriter, r *http.Request, templateName string, data any) {
	renderTemplateStatus(w, r, templateName, data, http.StatusOK)
}

func renderTemplateStatus(w http.ResponseWriter, r *http.Request, templateName string, data any, status int) {
	funcMap := template.FuncMap{
		"csrfToken": func() string { return csrf.Token(r) },
		"renderMarkdown": func(md string) template.HTML {
			var buf bytes.Buffer
			if err := mdRenderer.Convert([]byte(md), &buf); err != nil {
				return template.HTML(template.HTMLEscapeString(md))
			}
			return template.HTML(buf.String())
		},
	}

	layoutPath := filepath.Join(templatesDir, "layout.html")
	pagePath := filepath.Join(templatesDir, templateName)
	tpl, err := template.New("layout.html").Funcs(funcMap).ParseFiles(layoutPath, pagePath)
	if err != nil {
		http.Error(w, "Template error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if status != http.StatusOK {
		w.WriteHeader(status)
	}
	if err := tpl.Execute(w, data); err != nil {
		http.Error(w, "Render error: "+err.Error(), http.StatusInternalServerError)
		return
	}
}

// notFound renders the 404 page for browsers, plain text otherwise.
func notFound(w http.ResponseWriter, r *http.Request) {
	if isHTMLRequest(r) {
		renderTemplateStatus(w, r, "not_found.html", nil, http.StatusNotFound)
		return
	}
	http.Error(w, "not found", http.StatusNotFound)
}

// pathID parses the {id} path segment. Returns 0, false for anything that
// is not a positive integer; the caller responds 404.
func pathID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// registerRoutes attaches all application routes.
func registerRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /{$}", handleHome)
	mux.HandleFunc("GET /voyages", handleVoyageList)
	mux.HandleFunc("GET /voyages/{id}", handleVoyageDetail)
	mux.HandleFunc("GET /voyages/{id}/media", handleVoyageMedia)
	mux.HandleFunc("POST /voyages/{id}/corrections", handleCorrectionSubmit)
	mux.HandleFunc("GET /presidents", handlePresidents)
	mux.HandleFunc("GET /presidents/{id}/voyages", handlePresidentVoyages)
}

// handleHome handles GET /. The landing page carries the same search
// controls as the timeline; submitting lands on /voyages with the filter
// state in the URL.
func handleHome(w http.ResponseWriter, r *http.Request) {
	if !isHTMLRequest(r) {
		http.Redirect(w, r, "/voyages", http.StatusSeeOther)
		return
	}

	presidents, err := stores.PresidentStore.List(r.Context())
	if err != nil {
		slog.Warn("president_list_unavailable", "error", err.Error())
		presidents = nil
	}
	renderTemplate(w, r, "home.html", map[string]any{
		"Presidents": presidents,
	})
}

// handleVoyageList handles GET /voyages: the filterable timeline grouped
// by administration. Filter state round-trips through the query string, so
// a bookmarked URL reproduces the same view.
func handleVoyageList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	f := filters.Parse(r.URL.Query())

	result := projections.QueryGetVoyageTimeline(ctx, projections.GetVoyageTimelineQuery{Filters: f},
		projections.GetVoyageTimelineDeps{
			VoyageStore:    stores.VoyageStore,
			PresidentStore: stores.PresidentStore,
		})

	if isHTMLRequest(r) {
		renderTemplate(w, r, "voyage_list.html", map[string]any{
			"Groups":     result.Groups,
			"Presidents": result.Presidents,
			"Total":      result.Total,
			"Filters":    f,
			"HasFilters": f.HasAny(),
		})
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}

// handleVoyageDetail handles GET /voyages/{id}.
func handleVoyageDetail(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, ok := pathID(r)
	if !ok {
		notFound(w, r)
		return
	}

	result, err := projections.QueryGetVoyageDetail(ctx, projections.GetVoyageDetailQuery{VoyageID: id},
		projections.GetVoyageDetailDeps{
			VoyageStore:    stores.VoyageStore,
			PassengerStore: stores.PassengerStore,
		})
	if err != nil {
		internalError(w, err)
		return
	}
	if !result.Found {
		notFound(w, r)
		return
	}

	if isHTMLRequest(r) {
		renderTemplate(w, r, "voyage_detail.html", map[string]any{
			"Voyage":     result.Voyage,
			"DateRange":  result.DateRange,
			"Passengers": result.Passengers,
			"Submitted":  r.URL.Query().Get("submitted") == "1",
		})
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}

// handleVoyageMedia handles GET /voyages/{id}/media. JSON only: the
// gallery script fetches this lazily when the gallery scrolls into view.
func handleVoyageMedia(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, ok := pathID(r)
	if !ok {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}

	result := projections.QueryGetMediaGallery(ctx, projections.GetMediaGalleryQuery{VoyageID: id},
		projections.GetMediaGalleryDeps{MediaStore: stores.MediaStore})

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	json.NewEncoder(w).Encode(result)
}

// handlePresidents handles GET /presidents: the administration directory.
func handlePresidents(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	presidents, err := stores.PresidentStore.List(ctx)
	if err != nil {
		slog.Warn("president_list_unavailable", "error", err.Error())
		presidents = nil
	}

	if isHTMLRequest(r) {
		renderTemplate(w, r, "presidents.html", map[string]any{
			"Presidents": presidents,
		})
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"presidents": presidents})
}

// handlePresidentVoyages handles GET /presidents/{id}/voyages.
func handlePresidentVoyages(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, ok := pathID(r)
	if !ok {
		notFound(w, r)
		return
	}

	result := projections.QueryGetPresidentVoyages(ctx, projections.GetPresidentVoyagesQuery{PresidentID: id},
		projections.GetPresidentVoyagesDeps{
			VoyageStore:    stores.VoyageStore,
			PresidentStore: stores.PresidentStore,
		})

	if isHTMLRequest(r) {
		renderTemplate(w, r, "president_voyages.html", map[string]any{
			"PresidentID": result.PresidentID,
			"Heading":     result.Heading,
			"TermRange":   result.TermRange,
			"Voyages":     result.Voyages,
		})
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}
