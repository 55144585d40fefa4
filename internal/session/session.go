// Copyright (c) 2026 Ripple. All rights reserved.
// Author: dev@ripple.social

/*
Package session holds the process-wide authenticated session.

It owns the credential pair (via a [Keystore]) and the in-memory identity,
and exposes the sign-up/sign-in/sign-out/update lifecycle as an explicit
state machine:

	Uninitialized → Rehydrating → { Authenticated | Anonymous }

with Authenticated ↔ Anonymous transitions on sign-in/out and
Authenticated → Authenticated on profile update.

# Invariants

  - Authenticated if and only if a server-accepted access token is persisted.
  - Within a transition, token persistence happens before the in-memory
    identity update, which happens before the method returns.
  - Rehydration failure silently demotes to Anonymous; it is never surfaced
    as a user-facing error.

# Concurrency

The store guards its state with a mutex so each transition is atomic.
Overlapping mutating calls are not serialized against each other — the last
writer wins, and the view layer is expected to debounce double submits.
*/
package session

import (
	"context"
	"log/slog"
	"sync"

	"github.com/ripplesocial/ripple/internal/api"
	"github.com/ripplesocial/ripple/internal/platform/apperr"
)

// # Session States

// State identifies where the store is in its lifecycle.
type State string

const (
	// StateUninitialized is the zero state before rehydration has started.
	StateUninitialized State = "uninitialized"
	// StateRehydrating is the transient startup state while a persisted
	// token is being verified against the profile endpoint.
	StateRehydrating State = "rehydrating"
	// StateAuthenticated holds a server-confirmed identity.
	StateAuthenticated State = "authenticated"
	// StateAnonymous is the signed-out terminal state.
	StateAnonymous State = "anonymous"
)

// # Dependencies

// API is the slice of the remote client the store drives. *api.Client
// satisfies it; tests substitute fakes.
type API interface {
	Register(ctx context.Context, email, password, name string, bio *string) (*api.AuthResult, error)
	Login(ctx context.Context, email, password string) (*api.AuthResult, error)
	Logout() error
	Profile(ctx context.Context) (*api.Identity, error)
	UpdateProfile(ctx context.Context, update api.ProfileUpdate) (*api.Identity, error)
}

// # Store Definition

// Store is the in-memory authoritative holder of the current identity.
//
// Exactly one instance exists per process; its lifecycle is bound to the
// application runtime.
type Store struct {
	client API
	keys   Keystore
	log    *slog.Logger

	mu       sync.RWMutex
	state    State
	identity *api.Identity
}

// NewStore constructs a [Store] in the Uninitialized state.
//
// The keystore passed here must be the same one the API client reads its
// bearer tokens from, or the token-presence invariant cannot hold.
func NewStore(client API, keys Keystore, log *slog.Logger) *Store {
	if log == nil {
		log = slog.Default()
	}
	return &Store{
		client: client,
		keys:   keys,
		log:    log,
		state:  StateUninitialized,
	}
}

// # Startup Rehydration

/*
Rehydrate attempts to recover an authenticated session from a previously
persisted access token.

Description: With no persisted token the store drops straight to Anonymous.
Otherwise it enters Rehydrating and asks the profile endpoint to vouch for
the token. Acceptance yields Authenticated; rejection of any kind purges
both tokens and yields Anonymous — a rejected token and a missing token are
indistinguishable to the rest of the application.

Rehydrate is called exactly once, at process start, before the view layer
begins serving. It never returns a user-facing error.
*/
func (store *Store) Rehydrate(ctx context.Context) {
	token, err := store.keys.Access()
	if err != nil {
		store.log.Warn("session_keystore_unreadable", slog.Any("error", err))
		token = ""
	}

	if token == "" {
		store.transition(StateAnonymous, nil)
		return
	}

	store.transition(StateRehydrating, nil)

	identity, err := store.client.Profile(ctx)
	if err != nil {
		// Silent demotion: purge the rejected credential and fall back
		// to the anonymous state.
		store.log.Info("session_rehydration_rejected", slog.Any("error", err))
		if cerr := store.keys.Clear(); cerr != nil {
			store.log.Error("session_token_purge_failed", slog.Any("error", cerr))
		}
		store.transition(StateAnonymous, nil)
		return
	}

	store.log.Info("session_rehydrated",
		slog.Int64("user_id", identity.ID),
		slog.String("email", identity.Email),
	)
	store.transition(StateAuthenticated, identity)
}

// # Lifecycle Operations

/*
SignUp registers a new account and adopts the returned identity.

Description: Delegates to the API client, whose contract persists both
tokens before returning. On failure the store remains in its prior state
and the error propagates to the caller for display.

Returns:
  - *api.Identity: the newly created identity
  - error: the API client's normalized error
*/
func (store *Store) SignUp(ctx context.Context, email, password, name string, bio *string) (*api.Identity, error) {
	result, err := store.client.Register(ctx, email, password, name, bio)
	if err != nil {
		return nil, err
	}

	identity := result.User
	store.transition(StateAuthenticated, &identity)
	return &identity, nil
}

/*
SignIn authenticates with the remote API and adopts the returned identity.

Returns:
  - *api.Identity: the authenticated identity
  - error: the API client's normalized error (the server's detail string
    verbatim on bad credentials)
*/
func (store *Store) SignIn(ctx context.Context, email, password string) (*api.Identity, error) {
	result, err := store.client.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}

	identity := result.User
	store.transition(StateAuthenticated, &identity)
	return &identity, nil
}

/*
SignOut clears the credential pair and drops to Anonymous.

Description: Purely local, unconditional, and cannot fail from the caller's
perspective: a keystore error is logged and the in-memory state still
transitions, so no view ever observes Authenticated after a sign-out.
*/
func (store *Store) SignOut() {
	if err := store.client.Logout(); err != nil {
		store.log.Error("session_token_purge_failed", slog.Any("error", err))
	}
	store.transition(StateAnonymous, nil)
}

/*
UpdateProfile applies a partial update to the current identity.

Description: Requires the Authenticated state — an unauthenticated call
fails with UNAUTHORIZED and mutates nothing, without touching the network.
On success the stored identity is replaced wholesale with the server's
response.

Returns:
  - *api.Identity: the updated identity
  - error: UNAUTHORIZED when not authenticated, otherwise the API client's
    normalized error
*/
func (store *Store) UpdateProfile(ctx context.Context, update api.ProfileUpdate) (*api.Identity, error) {
	if store.State() != StateAuthenticated {
		return nil, apperr.Unauthorized("Not signed in")
	}

	identity, err := store.client.UpdateProfile(ctx, update)
	if err != nil {
		return nil, err
	}

	store.transition(StateAuthenticated, identity)
	return identity, nil
}

// # Accessors

// State returns the current lifecycle state.
func (store *Store) State() State {
	store.mu.RLock()
	defer store.mu.RUnlock()
	return store.state
}

// Current returns a copy of the authenticated identity, or nil when the
// store is not Authenticated.
func (store *Store) Current() *api.Identity {
	store.mu.RLock()
	defer store.mu.RUnlock()
	if store.identity == nil {
		return nil
	}
	copied := *store.identity
	return &copied
}

// Loading reports whether the initial rehydration attempt is still
// unresolved. It is true before and during Rehydrate and false forever
// after the first resolution, success or failure.
func (store *Store) Loading() bool {
	state := store.State()
	return state == StateUninitialized || state == StateRehydrating
}

// transition atomically applies a state change and its identity.
func (store *Store) transition(state State, identity *api.Identity) {
	store.mu.Lock()
	defer store.mu.Unlock()
	store.state = state
	if state == StateAuthenticated {
		store.identity = identity
	} else {
		store.identity = nil
	}
}
