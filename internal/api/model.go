// Copyright (c) 2026 Ripple. All rights reserved.
// Author: dev@ripple.social

/*
Package api implements the client for the remote Ripple social API.

It translates typed operations into HTTP calls against a fixed base URL,
attaches bearer credentials when present, and normalizes both success and
error payloads into domain types and [apperr.AppError] values.

# Architecture

The remote server is opaque: it owns all persistence and business rules.
This package is the only part of the client that speaks HTTP to it. Each
operation is a single round trip with no retries, no backoff, and no
status-specific recovery.
*/
package api

import (
	"time"
)

// # Domain Entities

// Identity is the profile of a registered user as the remote API reports it.
//
// # Optional Fields
//
// Bio and UpdatedAt are pointers: a nil Bio means the user never set one,
// which is distinct from an empty-string bio.
type Identity struct {
	ID        int64      `json:"id"`
	Email     string     `json:"email"`
	Name      string     `json:"name"`
	Bio       *string    `json:"bio"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

// Post is a single text post with an embedded author snapshot.
//
// Posts are immutable in this client: there is no edit or delete operation.
type Post struct {
	ID        int64     `json:"id"`
	User      Identity  `json:"user"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Credentials is the opaque token pair issued on register/login.
type Credentials struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// AuthResult is the combined payload of a successful register or login call.
type AuthResult struct {
	User    Identity `json:"user"`
	Access  string   `json:"access"`
	Refresh string   `json:"refresh"`
}

// Tokens returns the credential pair carried by the auth result.
func (r AuthResult) Tokens() Credentials {
	return Credentials{Access: r.Access, Refresh: r.Refresh}
}

// # Field Identifiers

// Form and JSON field names shared between the client and the view layer.
const (
	FieldEmail    = "email"
	FieldPassword = "password"
	FieldName     = "name"
	FieldBio      = "bio"
	FieldContent  = "content"
)
