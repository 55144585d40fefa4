// Copyright (c) 2026 Ripple. All rights reserved.
// Author: dev@ripple.social

package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ripplesocial/ripple/internal/platform/apperr"
	"github.com/ripplesocial/ripple/internal/platform/constants"
	"github.com/ripplesocial/ripple/internal/platform/ctxutil"
)

// # Dependencies

// TokenStore is the credential storage the client reads on every request and
// writes as a side effect of register/login.
//
// The interface is defined here, on the consumer side; the session package
// provides the file-backed and in-memory implementations.
type TokenStore interface {
	// Access returns the persisted access token, or "" when absent.
	Access() (string, error)
	// SetPair atomically persists both tokens.
	SetPair(access, refresh string) error
	// Clear deletes both tokens. Clearing an empty store is a no-op.
	Clear() error
}

// # Client Definition

// Client issues HTTP requests against the remote Ripple API.
//
// # Behavior
//
// Every operation is a single round trip: no retries, no backoff, no
// status-specific recovery. The bearer token is re-read from the
// [TokenStore] per request, never cached, so a logout in one code path is
// immediately visible to all others.
type Client struct {
	baseURL string
	http    *http.Client
	tokens  TokenStore
}

// NewClient constructs a [Client] for the given base URL.
//
// baseURL must not end with a slash (e.g. "http://localhost:8000/api").
// httpClient may carry a timeout; the client itself imposes none.
func NewClient(baseURL string, httpClient *http.Client, tokens TokenStore) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
		tokens:  tokens,
	}
}

// # Transport Core

// errorBody is the shape we attempt to decode from any non-2xx response.
// Django-style APIs use "detail"; some endpoints use "message".
type errorBody struct {
	Detail  string `json:"detail"`
	Message string `json:"message"`
}

// genericErrorMessage is the fallback display string when the error body is
// missing, not JSON, or carries neither known field.
const genericErrorMessage = "An error occurred"

/*
do executes a single API round trip and decodes a 2xx response into out.

Parameters:
  - ctx: request-scoped context (cancellation, deadline)
  - method, path: HTTP verb and API path relative to the base URL ("/posts/")
  - body: request payload marshaled as JSON, or nil
  - authed: whether to attach the bearer header from the token store
  - out: pointer to the response target, or nil to discard the body

Returns:
  - error: an [*apperr.AppError] on any failure
*/
func (client *Client) do(ctx context.Context, method, path string, body any, authed bool, out any) error {

	// 1. Marshal the payload, if any
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return apperr.Internal(fmt.Errorf("api: marshal request body: %w", err))
		}
		reader = bytes.NewReader(raw)
	}

	request, err := http.NewRequestWithContext(ctx, method, client.baseURL+path, reader)
	if err != nil {
		return apperr.Internal(fmt.Errorf("api: build request: %w", err))
	}

	// 2. Standard headers: content type, correlation ID, client identity
	request.Header.Set("Content-Type", "application/json")
	request.Header.Set("User-Agent", constants.AppName+"/"+constants.AppVersion)
	request.Header.Set(constants.HeaderXRequestID, requestID(ctx))

	// 3. Bearer credential, re-read from storage on every call
	if authed {
		token, err := client.tokens.Access()
		if err != nil {
			return apperr.Storage(err)
		}
		if token != "" {
			request.Header.Set("Authorization", "Bearer "+token)
		}
	}

	// 4. Single round trip
	startTime := time.Now()
	response, err := client.http.Do(request)
	if err != nil {
		ctxutil.GetLogger(ctx).WarnContext(ctx, "api_request_failed",
			slog.String("method", method),
			slog.String("path", path),
			slog.Any("error", err),
		)
		return apperr.Network(err)
	}
	defer func() { _ = response.Body.Close() }()

	ctxutil.GetLogger(ctx).DebugContext(ctx, "api_request_finished",
		slog.String("method", method),
		slog.String("path", path),
		slog.Int("status", response.StatusCode),
		slog.Int64("latency_ms", time.Since(startTime).Milliseconds()),
	)

	// 5. Normalize any non-2xx response into the local error taxonomy
	if response.StatusCode < 200 || response.StatusCode > 299 {
		return normalizeError(response.StatusCode, response.Body)
	}

	if out == nil {
		return nil
	}

	if err := json.NewDecoder(response.Body).Decode(out); err != nil {
		return apperr.Internal(fmt.Errorf("api: decode response: %w", err))
	}

	return nil
}

// normalizeError maps a non-2xx response to an [*apperr.AppError].
//
// # Display Contract
//
// The display string is the body's "detail" field, then "message", then a
// generic fallback (also used when the body is not JSON). The server's
// wording is surfaced verbatim — the view layer shows it as-is.
func normalizeError(status int, body io.Reader) *apperr.AppError {
	detail := genericErrorMessage

	var parsed errorBody
	if err := json.NewDecoder(body).Decode(&parsed); err == nil {
		if parsed.Detail != "" {
			detail = parsed.Detail
		} else if parsed.Message != "" {
			detail = parsed.Message
		}
	}

	// The remote status is preserved as-is: a 403 must not replay as 401,
	// nor a 422 as 400.
	switch status {
	case http.StatusUnauthorized, http.StatusForbidden:
		return &apperr.AppError{Code: "UNAUTHORIZED", Message: detail, HTTPStatus: status}
	case http.StatusNotFound:
		return &apperr.AppError{Code: "NOT_FOUND", Message: detail, HTTPStatus: status}
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return &apperr.AppError{Code: "VALIDATION_ERROR", Message: detail, HTTPStatus: status}
	default:
		return apperr.Remote(status, detail)
	}
}

// requestID reuses the inbound correlation ID when one exists, so a page
// render and its API calls share one trace. Otherwise a fresh UUIDv7.
func requestID(ctx context.Context) string {
	if id := ctxutil.GetRequestID(ctx); id != "" {
		return id
	}
	uuidV7, err := uuid.NewV7()
	if err != nil {
		return uuid.New().String()
	}
	return uuidV7.String()
}
