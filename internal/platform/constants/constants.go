// Copyright (c) 2026 Ripple. All rights reserved.
// Author: dev@ripple.social

/*
Package constants provides centralized, immutable values for the entire client.

It defines default timeouts, rate limits, and cross-cutting keys that are shared
between different layers of the system.

Categories:

  - Server Timing: Read/Write/Idle timeouts for the local UI server.
  - Rate Limiting: Burst capacities and IP tracking TTLs.
  - Content Rules: Limits the remote API enforces that we pre-check locally.

Using this package keeps magic strings and magic numbers out of the
business logic.
*/
package constants

import "time"

// # Metadata

const (
	AppName    = "ripple-web"
	AppVersion = "0.1.0-dev"
)

// # Server Timing

const (
	// DefaultReadTimeout is the maximum duration for reading the entire request.
	DefaultReadTimeout = 5 * time.Second

	// DefaultWriteTimeout is the maximum duration before timing out writes of the response.
	DefaultWriteTimeout = 10 * time.Second

	// DefaultIdleTimeout is the maximum amount of time to wait for the next request.
	DefaultIdleTimeout = 120 * time.Second

	// DefaultReadHeaderTimeout is the amount of time allowed to read request headers.
	DefaultReadHeaderTimeout = 2 * time.Second

	// GlobalRequestTimeout is the deadline for the entire request lifecycle,
	// including the proxied round trip to the remote API.
	GlobalRequestTimeout = 45 * time.Second

	// ShutdownTimeout is how long we wait for in-flight requests to complete during shutdown.
	ShutdownTimeout = 30 * time.Second
)

// # Rate Limiting

const (
	// DefaultRateLimitRPS is the requests per second allowed per IP.
	DefaultRateLimitRPS = 100.0

	// DefaultRateLimitBurst is the maximum burst allowed for the rate limiter.
	DefaultRateLimitBurst = 150

	// RateLimitCleanupInterval is how often old IP entries are removed from memory.
	RateLimitCleanupInterval = 1 * time.Minute

	// RateLimitClientTTL is how long a client must be idle before its entry is deleted.
	RateLimitClientTTL = 3 * time.Minute
)

// # Content Rules

const (
	// MaxPostLength is the content ceiling the remote API enforces on posts.
	// We reject longer input locally before any network call is made.
	MaxPostLength = 1000

	// MinPasswordLength mirrors the remote registration policy.
	MinPasswordLength = 8
)

// # Headers

const (
	// HeaderXRequestID is the correlation header attached to every request,
	// inbound and outbound.
	HeaderXRequestID = "X-Request-ID"
)

// # Credential Storage

const (
	// KeystoreAccessKey is the fixed key the access token persists under.
	KeystoreAccessKey = "access_token"

	// KeystoreRefreshKey is the fixed key the refresh token persists under.
	KeystoreRefreshKey = "refresh_token"
)
