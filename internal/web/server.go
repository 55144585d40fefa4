// Copyright (c) 2026 Ripple. All rights reserved.
// Author: dev@ripple.social

package web

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/ripplesocial/ripple/internal/api"
	"github.com/ripplesocial/ripple/internal/platform/config"
	"github.com/ripplesocial/ripple/internal/platform/constants"
	"github.com/ripplesocial/ripple/internal/platform/middleware"
	"github.com/ripplesocial/ripple/internal/session"
)

// # Server Definitions

// Server wraps the chi router and the [http.Server] for the local UI.
//
// It is constructed once in main with all dependencies injected.
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	log        *slog.Logger
}

// Handler owns every routed page. It holds the session store and the API
// client and no state of its own.
type Handler struct {
	sessions *session.Store
	client   *api.Client
	renderer *renderer
}

// NewHandler constructs the page [Handler].
func NewHandler(sessions *session.Store, client *api.Client, log *slog.Logger) (*Handler, error) {
	r, err := newRenderer(log)
	if err != nil {
		return nil, err
	}
	return &Handler{sessions: sessions, client: client, renderer: r}, nil
}

// # Server Initialization

// NewServer constructs the chi router with the full middleware chain and
// registers all page routes.
func NewServer(ctx context.Context, cfg *config.Config, log *slog.Logger, handler *Handler) *Server {
	r := chi.NewRouter()

	// # Middleware Chain
	// Global middleware applied in order of execution.
	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(log))
	r.Use(chimw.Timeout(constants.GlobalRequestTimeout))
	r.Use(middleware.RateLimit(ctx))
	r.Use(middleware.PanicRecovery(log))
	r.Use(chimw.CleanPath)
	r.Use(handler.withViewer)

	// # Infrastructure Endpoints
	r.Get("/health", handler.health)

	// # Authentication Pages
	// Signed-in visitors are bounced back to the feed.
	r.Group(func(public chi.Router) {
		public.Use(handler.redirectAuthenticated)
		public.Get("/login", handler.getLogin)
		public.Post("/login", handler.postLogin)
		public.Get("/register", handler.getRegister)
		public.Post("/register", handler.postRegister)
	})

	// # Protected Pages
	// Anonymous visitors are routed to authentication.
	r.Group(func(protected chi.Router) {
		protected.Use(handler.requireSession)
		protected.Get("/", handler.getFeed)
		protected.Get("/posts/new", handler.getCompose)
		protected.Post("/posts/new", handler.postCompose)
		protected.Get("/profile", handler.getOwnProfile)
		protected.Post("/profile", handler.postProfile)
		protected.Get("/users/{id}", handler.getUserProfile)
		protected.Post("/logout", handler.postLogout)
	})

	return &Server{
		router: r,
		log:    log,
		httpServer: &http.Server{
			Addr:              ":" + cfg.ServerPort,
			Handler:           r,
			ReadTimeout:       constants.DefaultReadTimeout,
			WriteTimeout:      constants.DefaultWriteTimeout,
			IdleTimeout:       constants.DefaultIdleTimeout,
			ReadHeaderTimeout: constants.DefaultReadHeaderTimeout,
		},
	}
}

// # Server Lifecycle

// Handler exposes the composed router, primarily for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe starts the UI server.
//
// It blocks until the server is closed or an error occurs.
func (s *Server) ListenAndServe() error {
	s.log.Info("ui_server_starting", slog.String("addr", s.httpServer.Addr))
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the server, waiting for in-flight requests.
func (s *Server) Shutdown(timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return s.httpServer.Shutdown(ctx)
}

// # Session Gating

// withViewer attaches the session's current identity to the request context
// so downstream handlers and the logger see who is browsing.
func (h *Handler) withViewer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		if viewer := h.sessions.Current(); viewer != nil {
			ctx := api.WithViewer(request.Context(), viewer)
			request = request.WithContext(ctx)
		}
		next.ServeHTTP(writer, request)
	})
}

// requireSession routes anonymous visitors to the login page.
//
// Rehydration completes before the server starts listening, so a request
// can never observe the transient rehydrating state here.
func (h *Handler) requireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		if api.GetViewer(request.Context()) == nil {
			http.Redirect(writer, request, "/login", http.StatusSeeOther)
			return
		}
		next.ServeHTTP(writer, request)
	})
}

// redirectAuthenticated bounces signed-in visitors off the auth pages.
func (h *Handler) redirectAuthenticated(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		if api.GetViewer(request.Context()) != nil {
			http.Redirect(writer, request, "/", http.StatusSeeOther)
			return
		}
		next.ServeHTTP(writer, request)
	})
}

// # Infrastructure Handlers

// health handles GET /health (liveness probe).
//
// The remote API is deliberately not checked: the UI is alive even when the
// remote side is down, and pages surface remote failures on their own.
func (h *Handler) health(writer http.ResponseWriter, request *http.Request) {
	writer.Header().Set("Content-Type", "application/json; charset=utf-8")
	writer.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(writer).Encode(map[string]string{
		"status":  "ok",
		"app":     constants.AppName,
		"version": constants.AppVersion,
	})
}
