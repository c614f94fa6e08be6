package main

import (
	"database/sql"
	"flag"
	"log"
	"log/slog"
	"net/http"
	"os"

	_ "modernc.org/sqlite"

	"sequoia/internal/adapters/archive"
	mediaStore "sequoia/internal/adapters/archive/media"
	passengerStore "sequoia/internal/adapters/archive/passenger"
	presidentStore "sequoia/internal/adapters/archive/president"
	voyageStore "sequoia/internal/adapters/archive/voyage"
	emailPkg "sequoia/internal/adapters/email"
	web "sequoia/internal/adapters/http"
	"sequoia/internal/adapters/storage"
	correctionStorePkg "sequoia/internal/adapters/storage/correction"
	"sequoia/internal/config"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

func main() {
	configPath := flag.String("config", "sequoia.yaml", "path to the YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	setupLogging(cfg.Logging.Level)

	// Corrections inbox with WAL mode, foreign keys, and busy timeout
	dsn := cfg.Inbox.DBPath + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(ON)&_pragma=synchronous(NORMAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		log.Fatalf("failed to open inbox database: %v", err)
	}
	defer db.Close()

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)

	if err := db.Ping(); err != nil {
		log.Fatalf("inbox database unreachable: %v", err)
	}
	if err := storage.InitDB(db); err != nil {
		log.Fatalf("failed to initialize inbox database: %v", err)
	}

	// Archive API client shared by all read stores
	api := archive.NewClient(cfg.Archive.BaseURL, cfg.Archive.Timeout())

	stores := &web.Stores{
		PresidentStore:  presidentStore.NewRESTStore(api),
		VoyageStore:     voyageStore.NewRESTStore(api),
		PassengerStore:  passengerStore.NewRESTStore(api),
		MediaStore:      mediaStore.NewRESTStore(api),
		CorrectionStore: correctionStorePkg.NewSQLiteStore(db),
	}

	// Configure email sender
	if cfg.Email.ResendAPIKey != "" {
		web.SetEmailSender(emailPkg.NewResendSender(cfg.Email.ResendAPIKey, cfg.Email.From), cfg.Email.From, cfg.Email.NotifyTo)
		log.Println("Email sender configured (Resend)")
	} else {
		web.SetEmailSender(emailPkg.NewNoopSender(), cfg.Email.From, cfg.Email.NotifyTo)
		if cfg.Server.Env == "production" {
			log.Println("WARNING: resend API key is not set — correction notifications are DISABLED in production")
		} else {
			log.Println("Email sender configured (noop — set RESEND_API_KEY for real delivery)")
		}
	}

	mux := web.NewMux(cfg.Server.StaticDir, stores)

	log.Printf("Sequoia %s starting on %s (env=%s, archive=%s)", version, cfg.Server.Addr, cfg.Server.Env, cfg.Archive.BaseURL)
	if err := http.ListenAndServe(cfg.Server.Addr, mux); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

// setupLogging installs a text slog handler at the configured level.
func setupLogging(level string) {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})))
}
