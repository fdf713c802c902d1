// Package main initializes and starts the Vortex Proxies directory server,
// setting up configuration, logging, storage, seeding, services, handlers,
// and optional TLS.
package main

import (
	"cmp"
	"context"
	"fmt"
	"time"

	nethttp "net/http"

	"go.uber.org/zap"

	"github.com/titanmaster/vortexproxies/internal/config"
	"github.com/titanmaster/vortexproxies/internal/db"
	"github.com/titanmaster/vortexproxies/internal/logger"
	"github.com/titanmaster/vortexproxies/internal/repository"
	"github.com/titanmaster/vortexproxies/internal/seed"
	"github.com/titanmaster/vortexproxies/internal/server/handler/http"
	"github.com/titanmaster/vortexproxies/internal/service"
	"github.com/titanmaster/vortexproxies/internal/session"
)

var (
	// version holds the build version set via ldflags.
	version string
	// buildDate holds the build timestamp set via ldflags.
	buildDate string
)

// store is the repository contract the server wires against; both the
// in-memory and the Postgres implementations satisfy it.
type store interface {
	service.UserRepository
	service.LinkRepository
	service.AnnouncementRepository
	service.FeedbackRepository
}

func main() {
	// Parse command-line and environment configuration.
	options := config.Parse()
	addr := options.Port

	// Print build metadata (or "N/A" if unset).
	fmt.Printf("Build version: %s\n", cmp.Or(version, "N/A"))
	fmt.Printf("Build date: %s\n", cmp.Or(buildDate, "N/A"))

	// Initialize structured logging.
	log := logger.New()
	defer func() { _ = log.Log.Sync() }()
	if err := log.Init("Info"); err != nil {
		log.Log.Fatal("failed to init logger", zap.Error(err))
	}
	zapLogger := log.Log

	// Pick the record store: in-memory by default, Postgres when a DSN is set.
	var records store
	if options.DatabaseDSN != "" {
		postgresDB, err := db.InitPostgres(options.DatabaseDSN)
		if err != nil {
			zapLogger.Fatal("cannot init database", zap.Error(err))
		}
		records = repository.NewPostgresStore(postgresDB)
		zapLogger.Info("using postgres store")
	} else {
		records = repository.NewMemoryStore()
		zapLogger.Info("using in-memory store")
	}

	// Seed the admin account and sample records.
	if err := seed.Run(context.Background(), records, records, records,
		options.AdminUsername, options.AdminPassword, zapLogger); err != nil {
		zapLogger.Fatal("failed to seed store", zap.Error(err))
	}

	// Initialize the session store and its expiry sweeper.
	ttl, err := time.ParseDuration(options.SessionTTL)
	if err != nil {
		zapLogger.Fatal("invalid session TTL", zap.Error(err))
	}
	sessions := session.NewStore(ttl)
	sessions.StartExpiredCleaner(context.Background(), time.Hour, zapLogger)

	// Initialize business-logic services.
	authService := service.NewAuthService(records)
	directoryService := service.NewDirectoryService(records, records, records)

	// Create HTTP handlers.
	authHandler := &http.AuthHandler{AuthService: authService, Sessions: sessions}
	linkHandler := &http.LinkHandler{LinkService: directoryService}
	announcementHandler := &http.AnnouncementHandler{AnnouncementService: directoryService}
	feedbackHandler := &http.FeedbackHandler{FeedbackService: directoryService}

	// Build the router with middleware and routes.
	router := http.NewRouter(
		authHandler,
		linkHandler,
		announcementHandler,
		feedbackHandler,
		sessions,
		authService,
		options.AdminUsername,
		zapLogger,
	)

	server := &nethttp.Server{
		Addr:    addr,
		Handler: router,
	}

	// Serve TLS when a certificate pair is configured, plain HTTP otherwise.
	if options.TLSCert != "" && options.TLSKey != "" {
		zapLogger.Info("starting HTTPS server", zap.String("addr", addr))
		if err := server.ListenAndServeTLS(options.TLSCert, options.TLSKey); err != nil {
			zapLogger.Fatal("failed to start HTTPS server", zap.Error(err))
		}
		return
	}

	zapLogger.Info("starting HTTP server", zap.String("addr", addr))
	if err := server.ListenAndServe(); err != nil {
		zapLogger.Fatal("failed to start HTTP server", zap.Error(err))
	}
}
