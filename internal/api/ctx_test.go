// Copyright (c) 2026 Ripple. All rights reserved.
// Author: dev@ripple.social

package api_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ripplesocial/ripple/internal/api"
)

/*
TestContext_Viewer verifies that the authenticated viewer can be stored in context.
*/
func TestContext_Viewer(t *testing.T) {
	ctx := context.Background()
	viewer := &api.Identity{
		ID:    123,
		Email: "maya@ripple.social",
		Name:  "Maya",
	}

	// 1. Initially should be nil
	assert.Nil(t, api.GetViewer(ctx))

	// 2. Inject and retrieve
	ctx = api.WithViewer(ctx, viewer)
	retrieved := api.GetViewer(ctx)

	assert.NotNil(t, retrieved)
	assert.Equal(t, int64(123), retrieved.ID)
	assert.Equal(t, "Maya", retrieved.Name)
}
