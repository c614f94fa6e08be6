package browser_test

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"log"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/playwright-community/playwright-go"

	_ "modernc.org/sqlite"

	"sequoia/internal/adapters/archive"
	mediaStore "sequoia/internal/adapters/archive/media"
	passengerStore "sequoia/internal/adapters/archive/passenger"
	presidentStore "sequoia/internal/adapters/archive/president"
	voyageStore "sequoia/internal/adapters/archive/voyage"
	web "sequoia/internal/adapters/http"
	"sequoia/internal/adapters/http/middleware"
	"sequoia/internal/adapters/storage"
	correctionStorePkg "sequoia/internal/adapters/storage/correction"
	mediaDomain "sequoia/internal/domain/media"
	passengerDomain "sequoia/internal/domain/passenger"
	presidentDomain "sequoia/internal/domain/president"
	voyageDomain "sequoia/internal/domain/voyage"
)

// testApp holds the running test server, the fake archive backend and
// Playwright handles.
type testApp struct {
	BaseURL string
	Archive *httptest.Server
	DB      *sql.DB
	Server  *http.Server
	PW      *playwright.Playwright
	Browser playwright.Browser
	Stores  *web.Stores
}

func intp(n int) *int { return &n }

// fixtureVoyages is the canned archive content served by the fake backend.
func fixtureVoyages() []voyageDomain.Voyage {
	return []voyageDomain.Voyage{
		{ID: 1, StartTimestamp: "1973-06-18T10:00:00", EndTimestamp: "1973-06-19T16:00:00",
			PresidentID: 37, PresidentName: "Richard Nixon", Significant: true,
			AdditionalInfo: "Summit cruise with General Secretary Brezhnev.",
			Notes:          "Dinner served on the fantail."},
		{ID: 2, StartTimestamp: "1933-04-23T09:00:00", EndTimestamp: "1933-04-23T17:00:00",
			PresidentID: 32, PresidentName: "Franklin D. Roosevelt",
			AdditionalInfo: "Fishing trip on the Potomac."},
		{ID: 3, StartTimestamp: "1929-07-04T12:00:00",
			AdditionalInfo: "Pre-commissioning shakedown."},
	}
}

// newFakeArchive starts an httptest server that mimics the upstream voyage
// archive API, including basic filter handling on /api/voyages.
func newFakeArchive(t *testing.T) *httptest.Server {
	t.Helper()

	// 1x1 PNG used for every image media fixture
	var imgBuf bytes.Buffer
	im := image.NewRGBA(image.Rect(0, 0, 1, 1))
	im.Set(0, 0, color.RGBA{R: 27, G: 42, B: 74, A: 255})
	if err := png.Encode(&imgBuf, im); err != nil {
		t.Fatalf("failed to encode fixture image: %v", err)
	}
	imgBytes := imgBuf.Bytes()

	mux := http.NewServeMux()

	writeJSON := func(w http.ResponseWriter, v any) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(v)
	}

	mux.HandleFunc("GET /api/presidents", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, []presidentDomain.President{
			{ID: 32, FullName: "Franklin D. Roosevelt", TermStart: "1933-03-04", TermEnd: "1945-04-12"},
			{ID: 37, FullName: "Richard Nixon", TermStart: "1969-01-20", TermEnd: "1974-08-09"},
		})
	})

	mux.HandleFunc("GET /api/voyages", func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		var out []voyageDomain.Voyage
		for _, v := range fixtureVoyages() {
			if q.Get("significant") == "1" && !bool(v.Significant) {
				continue
			}
			if pid := q.Get("president_id"); pid != "" && pid != fmt.Sprint(v.PresidentID) {
				continue
			}
			if kw := q.Get("q"); kw != "" && !strings.Contains(strings.ToLower(v.AdditionalInfo), strings.ToLower(kw)) {
				continue
			}
			out = append(out, v)
		}
		writeJSON(w, out)
	})

	mux.HandleFunc("GET /api/voyages/{id}", func(w http.ResponseWriter, r *http.Request) {
		for _, v := range fixtureVoyages() {
			if fmt.Sprint(v.ID) == r.PathValue("id") {
				writeJSON(w, v)
				return
			}
		}
		http.Error(w, "not found", http.StatusNotFound)
	})

	mux.HandleFunc("GET /api/presidents/{id}/voyages", func(w http.ResponseWriter, r *http.Request) {
		var out []voyageDomain.Voyage
		for _, v := range fixtureVoyages() {
			if fmt.Sprint(v.PresidentID) == r.PathValue("id") {
				out = append(out, v)
			}
		}
		writeJSON(w, out)
	})

	mux.HandleFunc("GET /api/voyages/{id}/passengers", func(w http.ResponseWriter, r *http.Request) {
		if r.PathValue("id") != "1" {
			writeJSON(w, []passengerDomain.Passenger{})
			return
		}
		writeJSON(w, []passengerDomain.Passenger{
			{ID: 9, Name: "Leonid Brezhnev", BasicInfo: "General Secretary of the CPSU"},
		})
	})

	mux.HandleFunc("GET /api/voyages/{id}/media", func(w http.ResponseWriter, r *http.Request) {
		if r.PathValue("id") != "1" {
			writeJSON(w, []mediaDomain.Source{})
			return
		}
		// Served relative to this fake server so images actually load.
		base := "http://" + r.Host
		writeJSON(w, []mediaDomain.Source{
			{ID: 11, Path: base + "/assets/log-p2.png", Type: "Ship log", Origin: "National Archives", PageNum: intp(2)},
			{ID: 12, Path: base + "/assets/log-p1.png", Type: "Ship log", Origin: "National Archives", PageNum: intp(1)},
			{ID: 13, Path: base + "/assets/newsreel.mp4", Type: "Newsreel", Description: "Departure footage"},
		})
	})

	mux.HandleFunc("GET /assets/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Write(imgBytes)
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

// newTestApp wires the full app against a fake archive backend and a temp
// inbox database, then starts an HTTP server and a headless browser.
func newTestApp(t *testing.T) *testApp {
	t.Helper()

	backend := newFakeArchive(t)

	dbPath := filepath.Join(t.TempDir(), "test.db")
	dsn := dbPath + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(ON)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		t.Fatalf("failed to open test DB: %v", err)
	}
	if err := storage.InitDB(db); err != nil {
		t.Fatalf("failed to init test DB: %v", err)
	}

	api := archive.NewClient(backend.URL, 5*time.Second)
	stores := &web.Stores{
		PresidentStore:  presidentStore.NewRESTStore(api),
		VoyageStore:     voyageStore.NewRESTStore(api),
		PassengerStore:  passengerStore.NewRESTStore(api),
		MediaStore:      mediaStore.NewRESTStore(api),
		CorrectionStore: correctionStorePkg.NewSQLiteStore(db),
	}

	// Find a free port
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("failed to find free port: %v", err)
	}
	port := listener.Addr().(*net.TCPAddr).Port
	listener.Close()

	// Change to project root so relative template/static paths work
	projectRoot := findProjectRoot(t)
	origDir, _ := os.Getwd()
	if err := os.Chdir(projectRoot); err != nil {
		t.Fatalf("failed to chdir to project root: %v", err)
	}
	t.Cleanup(func() { os.Chdir(origDir) })

	// Add test port to CSRF trusted origins before creating mux
	middleware.ExtraTrustedOrigins = append(middleware.ExtraTrustedOrigins,
		fmt.Sprintf("127.0.0.1:%d", port),
		fmt.Sprintf("localhost:%d", port),
	)

	mux := web.NewMux("static", stores)
	srv := &http.Server{
		Addr:    fmt.Sprintf("127.0.0.1:%d", port),
		Handler: mux,
	}
	go func() {
		if err := srv.ListenAndServe(); err != http.ErrServerClosed {
			log.Printf("test server error: %v", err)
		}
	}()

	// Wait for server to be ready
	baseURL := fmt.Sprintf("http://127.0.0.1:%d", port)
	for i := 0; i < 50; i++ {
		resp, err := http.Get(baseURL + "/voyages")
		if err == nil {
			resp.Body.Close()
			break
		}
		time.Sleep(100 * time.Millisecond)
	}

	pw, err := playwright.Run()
	if err != nil {
		t.Fatalf("failed to start Playwright: %v", err)
	}
	browser, err := pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(true),
	})
	if err != nil {
		t.Fatalf("failed to launch browser: %v", err)
	}

	app := &testApp{
		BaseURL: baseURL,
		Archive: backend,
		DB:      db,
		Server:  srv,
		PW:      pw,
		Browser: browser,
		Stores:  stores,
	}

	t.Cleanup(func() {
		browser.Close()
		pw.Stop()
		srv.Close()
		db.Close()
	})

	return app
}

// newPage creates a new browser page (tab).
func (a *testApp) newPage(t *testing.T) playwright.Page {
	t.Helper()
	page, err := a.Browser.NewPage()
	if err != nil {
		t.Fatalf("failed to create page: %v", err)
	}
	t.Cleanup(func() { page.Close() })
	return page
}

// findProjectRoot walks up from the working directory to find the project root (contains go.mod).
func findProjectRoot(t *testing.T) string {
	t.Helper()
	dir, err := os.Getwd()
	if err != nil {
		t.Fatalf("failed to get working directory: %v", err)
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			t.Fatalf("could not find project root (go.mod) from working directory")
		}
		dir = parent
	}
}
