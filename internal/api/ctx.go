// Copyright (c) 2026 Ripple. All rights reserved.
// Author: dev@ripple.social

package api

import (
	"context"

	"github.com/ripplesocial/ripple/internal/platform/ctxkey"
)

// # Viewer Identity

// WithViewer returns a new context with the authenticated viewer attached.
//
// The helpers live here rather than in ctxutil so that ctxutil stays a leaf
// below the domain packages.
func WithViewer(ctx context.Context, viewer *Identity) context.Context {
	return context.WithValue(ctx, ctxkey.KeyViewer, viewer)
}

// GetViewer retrieves the [*Identity] from the [context.Context].
// Returns nil for anonymous requests.
func GetViewer(ctx context.Context) *Identity {
	viewer, ok := ctx.Value(ctxkey.KeyViewer).(*Identity)
	if !ok {
		return nil
	}
	return viewer
}
