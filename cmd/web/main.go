// Copyright (c) 2026 Ripple. All rights reserved.
// Author: dev@ripple.social

// Command web is the entry point for the Ripple client.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Open the file-backed credential keystore.
//  4. Construct the remote API client.
//  5. Rehydrate the session from any persisted token.
//  6. Start the local UI server with graceful shutdown.
//
// No business logic lives here. All wiring is explicit constructor injection.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/ripplesocial/ripple/internal/api"
	"github.com/ripplesocial/ripple/internal/platform/config"
	"github.com/ripplesocial/ripple/internal/platform/constants"
	"github.com/ripplesocial/ripple/internal/session"
	"github.com/ripplesocial/ripple/internal/web"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	// Initialize first so that subsequent startup errors are structured JSON.
	rawLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	// Add global context to all log entries.
	log := rawLog.With(slog.String("app", "ripple"))
	slog.SetDefault(log)

	log.Info("[Ripple] client_initializing")

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		debugLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
		log = debugLog.With(slog.String("app", "ripple"))
		slog.SetDefault(log)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
		slog.String("api_base_url", cfg.APIBaseURL),
	)

	// ── 3. Credential Keystore ────────────────────────────────────────────
	keystore := session.NewFileKeystore(cfg.TokenPath)

	// ── 4. Remote API Client ──────────────────────────────────────────────
	client := api.NewClient(cfg.APIBaseURL, &http.Client{Timeout: cfg.HTTPTimeout}, keystore)

	// ── 5. Session Rehydration ────────────────────────────────────────────
	// Runs to completion before the UI starts listening, so no request can
	// ever observe the transient rehydrating state. A rejected or missing
	// token silently yields the anonymous state.
	sessions := session.NewStore(client, keystore, log)

	rehydrateCtx, rehydrateCancel := context.WithTimeout(context.Background(), cfg.HTTPTimeout)
	sessions.Rehydrate(rehydrateCtx)
	rehydrateCancel()

	log.Info("session_ready", slog.String("state", string(sessions.State())))
	if expiry := sessions.TokenExpiry(); expiry != nil {
		log.Info("access_token_expiry", slog.Time("expires_at", *expiry))
	}

	// ── 6. UI Server ──────────────────────────────────────────────────────
	serverCtx, serverCancel := context.WithCancel(context.Background())
	defer serverCancel()

	handler, err := web.NewHandler(sessions, client, log)
	must(log, err, "build page handler")

	server := web.NewServer(serverCtx, cfg, log, handler)

	// ── 7. Graceful Shutdown ──────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Block until OS signal or server error.
	select {
	case sig := <-quit:
		log.Info("shutdown_signal_received", slog.String("signal", sig.String()))
	case err := <-serverErr:
		log.Error("server_startup_error", slog.Any("error", err))
	}

	// Give in-flight requests enough time to complete.
	shutdownTimeout := constants.ShutdownTimeout
	log.Info("shutting_down", slog.Duration("timeout", shutdownTimeout))

	if err := server.Shutdown(shutdownTimeout); err != nil {
		log.Error("shutdown_error", slog.Any("error", err))
		os.Exit(1)
	}

	log.Info("client_stopped_cleanly")
}

// must logs a structured fatal error and terminates the process if err is non-nil.
//
// It is intentionally limited to startup wiring. After startup, all errors
// must be returned and handled explicitly (never panic).
func must(log *slog.Logger, err error, context string) {
	if err != nil {
		log.Error("startup_failure",
			slog.String("context", context),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
