// Copyright (c) 2026 Ripple. All rights reserved.
// Author: dev@ripple.social

package web_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ripplesocial/ripple/internal/api"
	"github.com/ripplesocial/ripple/internal/platform/config"
	"github.com/ripplesocial/ripple/internal/session"
	"github.com/ripplesocial/ripple/internal/web"
)

// newRemote fakes the slice of the remote API the pages touch.
func newRemote(t *testing.T) *httptest.Server {
	t.Helper()

	user := api.Identity{
		ID: 7, Email: "a@x.com", Name: "A",
		CreatedAt: time.Date(2026, 1, 2, 15, 4, 5, 0, time.UTC),
	}
	posts := []api.Post{{
		ID: 1, User: user, Content: "first post",
		CreatedAt: time.Now(), UpdatedAt: time.Now(),
	}}

	writeJSON := func(writer http.ResponseWriter, status int, payload any) {
		writer.Header().Set("Content-Type", "application/json")
		writer.WriteHeader(status)
		_ = json.NewEncoder(writer).Encode(payload)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /auth/login/", func(writer http.ResponseWriter, request *http.Request) {
		var body struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		_ = json.NewDecoder(request.Body).Decode(&body)
		if body.Email != user.Email || body.Password != "p1p1p1p1" {
			writeJSON(writer, http.StatusUnauthorized, map[string]string{"detail": "Invalid email or password."})
			return
		}
		writeJSON(writer, http.StatusOK, map[string]any{"user": user, "access": "tok", "refresh": "ref"})
	})
	mux.HandleFunc("GET /posts/", func(writer http.ResponseWriter, request *http.Request) {
		writeJSON(writer, http.StatusOK, posts)
	})
	mux.HandleFunc("GET /users/7/posts/", func(writer http.ResponseWriter, request *http.Request) {
		writeJSON(writer, http.StatusOK, posts)
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

// newUI boots the full page stack over the standard fake remote and returns
// a test client that does NOT follow redirects, so gating can be asserted.
func newUI(t *testing.T) (*httptest.Server, *http.Client, *session.Store) {
	t.Helper()
	return newUIOver(t, newRemote(t))
}

// newUIOver boots the page stack over a caller-supplied remote.
func newUIOver(t *testing.T, remote *httptest.Server) (*httptest.Server, *http.Client, *session.Store) {
	t.Helper()

	keystore := session.NewMemoryKeystore()
	client := api.NewClient(remote.URL, remote.Client(), keystore)

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	sessions := session.NewStore(client, keystore, log)
	sessions.Rehydrate(context.Background())

	handler, err := web.NewHandler(sessions, client, log)
	require.NoError(t, err)

	cfg := &config.Config{ServerPort: "0", Environment: "test"}
	server := web.NewServer(context.Background(), cfg, log, handler)

	ui := httptest.NewServer(server.Handler())
	t.Cleanup(ui.Close)

	uiClient := &http.Client{
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
	return ui, uiClient, sessions
}

// get fetches a path and returns the response plus its body.
func get(t *testing.T, client *http.Client, base, path string) (*http.Response, string) {
	t.Helper()
	response, err := client.Get(base + path)
	require.NoError(t, err)
	body, err := io.ReadAll(response.Body)
	require.NoError(t, err)
	_ = response.Body.Close()
	return response, string(body)
}

// postForm submits a form and returns the response plus its body.
func postForm(t *testing.T, client *http.Client, base, path string, form url.Values) (*http.Response, string) {
	t.Helper()
	response, err := client.PostForm(base+path, form)
	require.NoError(t, err)
	body, err := io.ReadAll(response.Body)
	require.NoError(t, err)
	_ = response.Body.Close()
	return response, string(body)
}

/*
TestUI_AuthGating verifies that anonymous visitors are routed to the login
page and that signed-in visitors are bounced off the auth pages.
*/
func TestUI_AuthGating(t *testing.T) {
	ui, client, sessions := newUI(t)

	// 1. Anonymous: every protected page redirects to /login
	for _, path := range []string{"/", "/posts/new", "/profile", "/users/7"} {
		response, _ := get(t, client, ui.URL, path)
		assert.Equal(t, http.StatusSeeOther, response.StatusCode, path)
		assert.Equal(t, "/login", response.Header.Get("Location"), path)
	}

	// 2. Auth pages render for anonymous visitors
	response, body := get(t, client, ui.URL, "/login")
	assert.Equal(t, http.StatusOK, response.StatusCode)
	assert.Contains(t, body, "Sign in")

	// 3. Signed in: the login page bounces back to the feed
	_, err := sessions.SignIn(context.Background(), "a@x.com", "p1p1p1p1")
	require.NoError(t, err)

	response, _ = get(t, client, ui.URL, "/login")
	assert.Equal(t, http.StatusSeeOther, response.StatusCode)
	assert.Equal(t, "/", response.Header.Get("Location"))
}

/*
TestUI_LoginFlow exercises the full form flow: a bad password re-renders
the form with the server's message verbatim, a good one lands on the feed.
*/
func TestUI_LoginFlow(t *testing.T) {
	ui, client, sessions := newUI(t)

	// 1. Wrong password: form re-renders with the remote detail string
	response, body := postForm(t, client, ui.URL, "/login", url.Values{
		"email":    {"a@x.com"},
		"password": {"nope"},
	})
	assert.Equal(t, http.StatusUnauthorized, response.StatusCode)
	assert.Contains(t, body, "Invalid email or password.")
	assert.Equal(t, session.StateAnonymous, sessions.State())

	// 2. Missing fields never reach the remote
	response, body = postForm(t, client, ui.URL, "/login", url.Values{})
	assert.Equal(t, http.StatusBadRequest, response.StatusCode)
	assert.Contains(t, body, "This field is required")

	// 3. Correct credentials: redirect home, feed renders
	response, _ = postForm(t, client, ui.URL, "/login", url.Values{
		"email":    {"a@x.com"},
		"password": {"p1p1p1p1"},
	})
	assert.Equal(t, http.StatusSeeOther, response.StatusCode)
	assert.Equal(t, "/", response.Header.Get("Location"))
	assert.Equal(t, session.StateAuthenticated, sessions.State())

	response, body = get(t, client, ui.URL, "/")
	assert.Equal(t, http.StatusOK, response.StatusCode)
	assert.Contains(t, body, "first post")
}

/*
TestUI_Logout verifies the sign-out round trip back to anonymous gating.
*/
func TestUI_Logout(t *testing.T) {
	ui, client, sessions := newUI(t)

	_, err := sessions.SignIn(context.Background(), "a@x.com", "p1p1p1p1")
	require.NoError(t, err)

	response, _ := postForm(t, client, ui.URL, "/logout", url.Values{})
	assert.Equal(t, http.StatusSeeOther, response.StatusCode)
	assert.Equal(t, "/login", response.Header.Get("Location"))
	assert.Equal(t, session.StateAnonymous, sessions.State())

	response, _ = get(t, client, ui.URL, "/")
	assert.Equal(t, http.StatusSeeOther, response.StatusCode)
}

/*
TestUI_StaleSession verifies that a token the remote stops accepting
mid-session signs the visitor out and routes to the login page instead of
rendering an error, with no redirect loop afterwards.
*/
func TestUI_StaleSession(t *testing.T) {
	// A remote that grants a session but rejects every feed fetch, as if the
	// access token expired right after login.
	mux := http.NewServeMux()
	mux.HandleFunc("POST /auth/login/", func(writer http.ResponseWriter, request *http.Request) {
		writer.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(writer).Encode(map[string]any{
			"user":    api.Identity{ID: 7, Email: "a@x.com", Name: "A", CreatedAt: time.Now()},
			"access":  "short-lived",
			"refresh": "ref",
		})
	})
	mux.HandleFunc("GET /posts/", func(writer http.ResponseWriter, request *http.Request) {
		writer.Header().Set("Content-Type", "application/json")
		writer.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(writer).Encode(map[string]string{"detail": "Token is invalid or expired."})
	})
	remote := httptest.NewServer(mux)
	t.Cleanup(remote.Close)

	ui, client, sessions := newUIOver(t, remote)

	_, err := sessions.SignIn(context.Background(), "a@x.com", "anything")
	require.NoError(t, err)
	require.Equal(t, session.StateAuthenticated, sessions.State())

	// 1. The rejected feed fetch signs out and redirects to the login page
	response, _ := get(t, client, ui.URL, "/")
	assert.Equal(t, http.StatusSeeOther, response.StatusCode)
	assert.Equal(t, "/login", response.Header.Get("Location"))
	assert.Equal(t, session.StateAnonymous, sessions.State())

	// 2. The login page now renders instead of bouncing back to the feed
	response, body := get(t, client, ui.URL, "/login")
	assert.Equal(t, http.StatusOK, response.StatusCode)
	assert.Contains(t, body, "Sign in")
}

/*
TestUI_ComposeValidation verifies that an empty draft re-renders the form
with a field error instead of leaving the page.
*/
func TestUI_ComposeValidation(t *testing.T) {
	ui, client, sessions := newUI(t)

	_, err := sessions.SignIn(context.Background(), "a@x.com", "p1p1p1p1")
	require.NoError(t, err)

	response, body := postForm(t, client, ui.URL, "/posts/new", url.Values{
		"content": {"   "},
	})
	assert.Equal(t, http.StatusBadRequest, response.StatusCode)
	assert.Contains(t, body, "Post content cannot be empty")
}

/*
TestUI_Health verifies the liveness probe.
*/
func TestUI_Health(t *testing.T) {
	ui, client, _ := newUI(t)

	response, body := get(t, client, ui.URL, "/health")
	assert.Equal(t, http.StatusOK, response.StatusCode)
	assert.True(t, strings.Contains(body, `"status":"ok"`) || strings.Contains(body, `"status": "ok"`))
}
