package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/anonto42/vinahome/backend/internal/apperrors"
	"github.com/anonto42/vinahome/backend/internal/identity"
	"github.com/anonto42/vinahome/backend/internal/metrics"
	"github.com/anonto42/vinahome/backend/internal/router"
	"github.com/anonto42/vinahome/backend/pkg/config"
	"github.com/anonto42/vinahome/backend/pkg/firebase"
	"github.com/anonto42/vinahome/backend/validators"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize storage
	var storage *router.Storage
	switch cfg.Storage {
	case "memory":
		storage = router.MemoryStorage()
		log.Println("Using in-memory storage; data is lost on restart.")
	default:
		db, err := config.InitDB(ctx, cfg)
		if err != nil {
			log.Fatalf("Failed to initialize databases: %v", err)
		}
		defer func() {
			closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := db.Close(closeCtx); err != nil {
				log.Printf("Closing databases: %v", err)
			}
		}()

		storage, err = router.PostgresStorage(ctx, db.Postgres, db.Notifications)
		if err != nil {
			log.Fatalf("Failed to prepare storage: %v", err)
		}
	}

	// Initialize the session verifier
	var verifier identity.Verifier
	switch cfg.AuthProvider {
	case "firebase":
		authClient, err := firebase.NewAuthClient(ctx, cfg.FirebaseCredentialsPath)
		if err != nil {
			log.Fatalf("Failed to initialize Firebase: %v", err)
		}
		verifier = identity.NewFirebaseVerifier(authClient)
	default:
		verifier = identity.NewJWTVerifier(cfg.JWTSecret)
	}
	resolver := identity.NewResolver(verifier, cfg.SessionCookie, cfg.Community.AdminEmails)

	// Metrics
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(registry)
	go func() {
		if err := metrics.Serve(ctx, ":"+cfg.MetricsPort, registry); err != nil {
			log.Printf("Metrics server stopped: %v", err)
		}
	}()

	// Create Echo instance
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = apperrors.HTTPErrorHandler
	e.Validator = validators.NewValidator()

	// Setup global middleware
	config.SetupMiddleware(e)

	// Setup routes and dependencies
	if err := router.SetupRoutes(ctx, e, cfg, storage, resolver, m); err != nil {
		log.Fatalf("Failed to set up routes: %v", err)
	}

	// Start server
	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server stopped: %v", err)
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server shutdown: %v", err)
	}
}
