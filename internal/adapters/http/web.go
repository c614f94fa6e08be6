package web

import (
	"crypto/rand"
	"encoding/hex"
	"log"
	"net/http"
	"os"
	"time"

	mediaStore "sequoia/internal/adapters/archive/media"
	passengerStore "sequoia/internal/adapters/archive/passenger"
	presidentStore "sequoia/internal/adapters/archive/president"
	voyageStore "sequoia/internal/adapters/archive/voyage"
	"sequoia/internal/adapters/email"
	"sequoia/internal/adapters/http/middleware"
	correctionStore "sequoia/internal/adapters/storage/correction"
)

// Stores holds all storage dependencies. The archive stores read the
// upstream voyage API; the correction store is the local inbox.
type Stores struct {
	PresidentStore  presidentStore.Store
	VoyageStore     voyageStore.Store
	PassengerStore  passengerStore.Store
	MediaStore      mediaStore.Store
	CorrectionStore correctionStore.Store
}

// loadCSRFKey reads the CSRF secret from SEQUOIA_CSRF_KEY (hex-encoded, 32 bytes).
// In production, the key MUST be set. In development, a random key is generated per startup.
func loadCSRFKey() []byte {
	if keyHex := os.Getenv("SEQUOIA_CSRF_KEY"); keyHex != "" {
		key, err := hex.DecodeString(keyHex)
		if err != nil || len(key) != 32 {
			log.Fatal("SEQUOIA_CSRF_KEY must be 64 hex characters (32 bytes)")
		}
		return key
	}
	if os.Getenv("SEQUOIA_ENV") == "production" {
		log.Fatal("SEQUOIA_CSRF_KEY is required in production")
	}
	key := make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		log.Fatalf("failed to generate CSRF key: %v", err)
	}
	log.Println("WARNING: using random CSRF key (sessions won't survive restart). Set SEQUOIA_CSRF_KEY for production.")
	return key
}

// Global stores instance (set by NewMux)
var stores *Stores

// RateLimitPerSecond controls the per-IP rate limit. Tests can increase this.
var RateLimitPerSecond = 10

// Global email sender instance (set by SetEmailSender)
var emailSender email.Sender

// Email configuration
var emailFromAddress string
var emailNotifyTo string

// SetEmailSender sets the global email sender for the application.
func SetEmailSender(sender email.Sender, from, notifyTo string) {
	emailSender = sender
	emailFromAddress = from
	emailNotifyTo = notifyTo
}

// NewMux wires HTTP handlers for the app.
func NewMux(staticDir string, s *Stores) http.Handler {
	stores = s

	mux := http.NewServeMux()
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.Dir(staticDir))))
	registerRoutes(mux)

	// CSRF key: 32-byte hex-encoded secret from env var
	csrfKey := loadCSRFKey()

	// Rate limiter: configurable requests per second per IP (OWASP A04)
	limiter := middleware.NewRateLimiter(RateLimitPerSecond, time.Second)

	// Apply middleware: Timing -> CSRF -> SecurityHeaders -> RateLimit -> Mux
	return middleware.Chain(mux,
		middleware.SecurityHeaders,
		middleware.CSRF(csrfKey),
		middleware.RateLimit(limiter),
		middleware.Timing(),
	)
}
