// Copyright (c) 2026 Ripple. All rights reserved.
// Author: dev@ripple.social

package session

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// # Token Introspection

// TokenExpiry reports the expiry claim of the persisted access token, for
// display and logging only.
//
// # Trust Boundary
//
// The token is parsed WITHOUT signature verification — this client never
// holds the server's key and never makes an accept/reject decision itself.
// The remote profile endpoint remains the sole authority on token validity;
// an expired-looking token is still sent until the server rejects it.
//
// Returns nil when no token is persisted, the token is not a JWT, or it
// carries no expiry claim.
func (store *Store) TokenExpiry() *time.Time {
	token, err := store.keys.Access()
	if err != nil || token == "" {
		return nil
	}

	parser := jwt.NewParser()
	parsed, _, err := parser.ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return nil
	}

	expiry, err := parsed.Claims.GetExpirationTime()
	if err != nil || expiry == nil {
		return nil
	}

	expiresAt := expiry.Time
	return &expiresAt
}
