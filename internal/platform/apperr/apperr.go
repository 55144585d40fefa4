// Copyright (c) 2026 Ripple. All rights reserved.
// Author: dev@ripple.social

/*
Package apperr defines the centralized error handling framework for Ripple.

It provides a rich error type that bridges the gap between remote API
failures and the messages the view layer shows to the user.

Architecture:

  - AppError: A struct containing machine-readable ErrorCode and user-friendly messages.
  - Normalization: Remote responses of any shape collapse into one AppError.
  - Mapping: Explicit mapping from remote HTTP status codes to the local taxonomy.

Every error that leaves the API client or the session store is an [AppError],
so the view layer can always surface a display string verbatim.
*/
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// AppError is the canonical error type for the Ripple client.
//
// It carries the remote HTTP status (when one exists), a machine-readable
// code, a display-safe message, and an optional slice of field-level
// validation errors.
//
// # Display Contract
//
// Message is always safe to show to the user verbatim. The Cause field is
// for logging only and never rendered.
type AppError struct {
	// Code is a machine-readable error identifier (e.g. "NOT_FOUND", "UNAUTHORIZED").
	Code string `json:"code"`
	// Message is the human-readable display string.
	Message string `json:"error"`
	// HTTPStatus is the remote response status, or 0 when the request never completed.
	HTTPStatus int `json:"-"`
	// Cause is the underlying error, used for logging only.
	Cause error `json:"-"`
	// Details holds per-field validation errors for VALIDATION_ERROR responses.
	Details []FieldError `json:"details,omitempty"`
}

// FieldError represents a single field-level validation failure.
type FieldError struct {
	// Field is the form field name that failed validation.
	Field string `json:"field"`
	// Message is the human-readable description of the failure.
	Message string `json:"message"`
}

// Error implements the error interface. It returns the display string.
func (e *AppError) Error() string { return e.Message }

// Unwrap allows [errors.Is] and [errors.As] to traverse the cause chain.
func (e *AppError) Unwrap() error { return e.Cause }

// # Authentication & Resource Errors

// Unauthorized creates an UNAUTHORIZED [AppError]: a missing, expired, or
// rejected credential, or a failed login attempt.
func Unauthorized(msg string) *AppError {
	return &AppError{
		Code:       "UNAUTHORIZED",
		Message:    msg,
		HTTPStatus: http.StatusUnauthorized,
	}
}

// NotFound creates a NOT_FOUND [AppError] for a named resource.
//
// Example:
//
//	apperr.NotFound("User") // Returns "User not found"
func NotFound(resource string) *AppError {
	return &AppError{
		Code:       "NOT_FOUND",
		Message:    resource + " not found",
		HTTPStatus: http.StatusNotFound,
	}
}

// ValidationError creates a VALIDATION_ERROR [AppError] with optional
// per-field details.
func ValidationError(msg string, details ...FieldError) *AppError {
	return &AppError{
		Code:       "VALIDATION_ERROR",
		Message:    msg,
		HTTPStatus: http.StatusBadRequest,
		Details:    details,
	}
}

// # Transport Errors

// Network creates a NETWORK_ERROR [AppError] for a request that could not
// complete (connection refused, DNS failure, timeout). The cause is kept
// for logging; the display string stays generic.
func Network(cause error) *AppError {
	return &AppError{
		Code:    "NETWORK_ERROR",
		Message: "Could not reach the server",
		Cause:   cause,
	}
}

// Remote creates a REMOTE_ERROR [AppError] carrying the server's display
// string for a status code outside the mapped taxonomy.
func Remote(status int, msg string) *AppError {
	return &AppError{
		Code:       "REMOTE_ERROR",
		Message:    msg,
		HTTPStatus: status,
	}
}

// # Local Errors

// Internal creates an INTERNAL_ERROR [AppError] wrapping an unexpected
// client-side failure. The cause is stored for logging but never rendered.
func Internal(cause error) *AppError {
	return &AppError{
		Code:       "INTERNAL_ERROR",
		Message:    "An unexpected error occurred",
		HTTPStatus: http.StatusInternalServerError,
		Cause:      cause,
	}
}

// Storage creates a STORAGE_ERROR [AppError] for a keystore read/write
// failure (disk full, permission denied).
func Storage(cause error) *AppError {
	return &AppError{
		Code:    "STORAGE_ERROR",
		Message: fmt.Sprintf("Could not access credential storage: %v", cause),
		Cause:   cause,
	}
}

// # Helpers

// IsAppError reports whether err (or any error in its chain) is an [*AppError].
func IsAppError(err error) bool {
	var ae *AppError
	return errors.As(err, &ae)
}

// As extracts the [*AppError] from err's chain. It returns nil if not found.
func As(err error) *AppError {
	var ae *AppError
	if errors.As(err, &ae) {
		return ae
	}
	return nil
}

// IsUnauthorized reports whether err carries the UNAUTHORIZED code. The view
// layer uses it to redirect to the login page instead of rendering an error.
func IsUnauthorized(err error) bool {
	ae := As(err)
	return ae != nil && ae.Code == "UNAUTHORIZED"
}
