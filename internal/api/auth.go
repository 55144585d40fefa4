// Copyright (c) 2026 Ripple. All rights reserved.
// Author: dev@ripple.social

package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/ripplesocial/ripple/internal/platform/apperr"
)

// # Request Payloads

type registerRequest struct {
	Email           string `json:"email"`
	Password        string `json:"password"`
	PasswordConfirm string `json:"password_confirm"`
	Name            string `json:"name"`
	Bio             string `json:"bio"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// # Authentication Operations

/*
Register creates a new account on the remote API.

POST /auth/register/

Description: The remote contract requires a password confirmation; this
client has already collected a single password, so it is sent twice. An
absent bio is sent as the empty string, matching the remote serializer.

Side effect: on success both returned tokens are persisted to the token
store BEFORE the result is returned to the caller.

Returns:
  - AuthResult: created identity plus the credential pair
  - error: UNAUTHORIZED/VALIDATION_ERROR on rejection (duplicate email,
    weak password), NETWORK_ERROR if the request never completed
*/
func (client *Client) Register(ctx context.Context, email, password, name string, bio *string) (*AuthResult, error) {
	payload := registerRequest{
		Email:           email,
		Password:        password,
		PasswordConfirm: password,
		Name:            name,
	}
	if bio != nil {
		payload.Bio = *bio
	}

	var result AuthResult
	if err := client.do(ctx, http.MethodPost, "/auth/register/", payload, false, &result); err != nil {
		return nil, err
	}

	credentials := result.Tokens()
	if err := client.tokens.SetPair(credentials.Access, credentials.Refresh); err != nil {
		return nil, apperr.Storage(err)
	}

	return &result, nil
}

/*
Login authenticates against the remote API.

POST /auth/login/

Side effect: on success both returned tokens are persisted to the token
store BEFORE the result is returned to the caller.

Returns:
  - AuthResult: identity plus the credential pair
  - error: UNAUTHORIZED with the server's detail string on bad credentials
*/
func (client *Client) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	var result AuthResult
	err := client.do(ctx, http.MethodPost, "/auth/login/", loginRequest{Email: email, Password: password}, false, &result)
	if err != nil {
		return nil, err
	}

	credentials := result.Tokens()
	if err := client.tokens.SetPair(credentials.Access, credentials.Refresh); err != nil {
		return nil, apperr.Storage(err)
	}

	return &result, nil
}

/*
Logout deletes both persisted tokens.

This is a purely local operation — the remote API holds no session state the
client could revoke, so no request is made and the call cannot fail short of
a storage error.
*/
func (client *Client) Logout() error {
	return client.tokens.Clear()
}

/*
Profile fetches the identity behind the persisted access token.

GET /auth/profile/

Returns:
  - Identity: the current user's profile
  - error: UNAUTHORIZED when the token is missing, expired, or rejected
*/
func (client *Client) Profile(ctx context.Context) (*Identity, error) {
	var identity Identity
	if err := client.do(ctx, http.MethodGet, "/auth/profile/", nil, true, &identity); err != nil {
		return nil, err
	}
	return &identity, nil
}

// ProfileUpdate describes a partial profile mutation. Nil fields are omitted
// from the request and left untouched by the server.
type ProfileUpdate struct {
	// Name replaces the display name when non-nil.
	Name *string
	// Bio replaces the bio when non-nil.
	Bio *string
	// ClearBio sends an explicit null bio, removing it. Takes precedence
	// over Bio. Distinguishes "remove the bio" from "leave it alone".
	ClearBio bool
}

// body assembles the wire payload, keeping absent fields absent so the
// remote PUT behaves as a partial update.
func (update ProfileUpdate) body() map[string]any {
	payload := map[string]any{}
	if update.Name != nil {
		payload["name"] = *update.Name
	}
	switch {
	case update.ClearBio:
		payload["bio"] = nil
	case update.Bio != nil:
		payload["bio"] = *update.Bio
	}
	return payload
}

/*
UpdateProfile applies a partial update to the current user's profile.

PUT /auth/profile/update/

Returns:
  - Identity: the full updated profile as the server now sees it
  - error: VALIDATION_ERROR on rejected fields, UNAUTHORIZED when
    unauthenticated
*/
func (client *Client) UpdateProfile(ctx context.Context, update ProfileUpdate) (*Identity, error) {
	var identity Identity
	if err := client.do(ctx, http.MethodPut, "/auth/profile/update/", update.body(), true, &identity); err != nil {
		return nil, err
	}
	return &identity, nil
}

/*
UserByID fetches another user's public profile.

GET /auth/users/{id}/

Returns:
  - Identity: the requested profile
  - error: NOT_FOUND when no such user exists
*/
func (client *Client) UserByID(ctx context.Context, id int64) (*Identity, error) {
	var identity Identity
	path := fmt.Sprintf("/auth/users/%d/", id)
	if err := client.do(ctx, http.MethodGet, path, nil, true, &identity); err != nil {
		return nil, err
	}
	return &identity, nil
}
