// Copyright (c) 2026 Ripple. All rights reserved.
// Author: dev@ripple.social

/*
Package web is the view layer: routed pages rendered server-side over the
Session Store and API Client.

It mirrors the pages of the original single-page experience — feed,
create-post, profile, and the authentication forms — as plain HTML routed
through chi. All state lives in the session store and the remote API; the
view layer holds none of its own.
*/
package web

import (
	"embed"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"time"

	"github.com/ripplesocial/ripple/internal/api"
	"github.com/ripplesocial/ripple/internal/platform/apperr"
	"github.com/ripplesocial/ripple/internal/platform/ctxutil"
	"github.com/ripplesocial/ripple/pkg/pointer"
)

//go:embed templates/*.html
var templateFS embed.FS

// # Page Rendering

// page is the data envelope every template receives.
//
// Handlers fill Data with page-specific content; the rest is chrome shared
// by the layout (viewer for the nav bar, flash error, sticky form values).
type page struct {
	// Title is the document title suffix.
	Title string
	// Viewer is the authenticated identity, or nil on the auth pages.
	Viewer *api.Identity
	// Error is a display string rendered as a flash banner, verbatim.
	Error string
	// Fields maps form field names to their validation messages.
	Fields map[string]string
	// Form holds submitted values so failed forms re-render sticky.
	Form map[string]string
	// Data is the page-specific payload.
	Data any
}

// renderer parses and executes the embedded template set.
//
// Each page template is paired with the shared layout at parse time, the
// standard html/template composition pattern.
type renderer struct {
	pages map[string]*template.Template
	log   *slog.Logger
}

// templateFuncs are the helpers available inside every template.
var templateFuncs = template.FuncMap{
	// postDate formats a post timestamp for cards.
	"postDate": func(t time.Time) string {
		return t.Local().Format("Jan 2, 2006 at 15:04")
	},
	// joinDate formats a profile creation date ("Joined March 2026").
	"joinDate": func(t time.Time) string {
		return t.Local().Format("January 2006")
	},
	// bioOrEmpty unwraps an optional bio for form values.
	"bioOrEmpty": pointer.Val[string],
}

// newRenderer parses every page template against the shared layout.
func newRenderer(log *slog.Logger) (*renderer, error) {
	names := []string{
		"login.html", "register.html", "feed.html",
		"compose.html", "profile.html", "error.html",
	}

	pages := make(map[string]*template.Template, len(names))
	for _, name := range names {
		parsed, err := template.New("layout.html").
			Funcs(templateFuncs).
			ParseFS(templateFS, "templates/layout.html", "templates/"+name)
		if err != nil {
			return nil, fmt.Errorf("web: parse template %s: %w", name, err)
		}
		pages[name] = parsed
	}

	return &renderer{pages: pages, log: log}, nil
}

// render executes the named page template with the given data.
func (r *renderer) render(writer http.ResponseWriter, request *http.Request, status int, name string, data page) {
	tmpl, ok := r.pages[name]
	if !ok {
		r.fail(writer, request, fmt.Errorf("web: unknown template %q", name))
		return
	}

	writer.Header().Set("Content-Type", "text/html; charset=utf-8")
	writer.WriteHeader(status)
	if err := tmpl.ExecuteTemplate(writer, "layout.html", data); err != nil {
		// Headers are gone; all we can do is log.
		ctxutil.GetLogger(request.Context()).ErrorContext(request.Context(), "template_render_failed",
			slog.String("template", name),
			slog.Any("error", err),
		)
	}
}

// renderError shows the standalone error page for a failed operation.
//
// The display string comes from the normalized [apperr.AppError] verbatim;
// unexpected error types collapse to the generic internal message.
func (r *renderer) renderError(writer http.ResponseWriter, request *http.Request, viewer *api.Identity, err error) {
	appError := apperr.As(err)
	if appError == nil {
		appError = apperr.Internal(err)
	}

	if appError.Code == "INTERNAL_ERROR" || appError.Cause != nil {
		ctxutil.GetLogger(request.Context()).ErrorContext(request.Context(), "page_error",
			slog.String("code", appError.Code),
			slog.Any("cause", appError.Cause),
		)
	}

	status := appError.HTTPStatus
	if status == 0 {
		// Transport failures have no remote status; surface them as a
		// gateway-style condition.
		status = http.StatusBadGateway
	}

	r.render(writer, request, status, "error.html", page{
		Title:  "Error",
		Viewer: viewer,
		Error:  appError.Message,
	})
}

// renderFailure routes a failed page operation.
//
// An UNAUTHORIZED error on a protected page means the persisted token went
// stale mid-session: the session is signed out (purging the rejected
// credential, so the auth-page bounce cannot loop) and the visitor lands on
// the login page. Everything else renders the error page.
func (h *Handler) renderFailure(writer http.ResponseWriter, request *http.Request, viewer *api.Identity, err error) {
	if apperr.IsUnauthorized(err) {
		ctxutil.GetLogger(request.Context()).WarnContext(request.Context(), "session_expired",
			slog.String("error", err.Error()),
		)
		h.sessions.SignOut()
		http.Redirect(writer, request, "/login", http.StatusSeeOther)
		return
	}
	h.renderer.renderError(writer, request, viewer, err)
}

// fail is the last-resort path when rendering machinery itself breaks.
func (r *renderer) fail(writer http.ResponseWriter, request *http.Request, err error) {
	ctxutil.GetLogger(request.Context()).ErrorContext(request.Context(), "render_failure", slog.Any("error", err))
	http.Error(writer, "An unexpected error occurred", http.StatusInternalServerError)
}

// fieldMap flattens [apperr.FieldError] details for template lookup.
func fieldMap(err error) map[string]string {
	appError := apperr.As(err)
	if appError == nil {
		return nil
	}
	fields := make(map[string]string, len(appError.Details))
	for _, detail := range appError.Details {
		fields[detail.Field] = detail.Message
	}
	return fields
}
