// Copyright (c) 2026 Ripple. All rights reserved.
// Author: dev@ripple.social

package api_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ripplesocial/ripple/internal/api"
	"github.com/ripplesocial/ripple/internal/platform/apperr"
)

/*
TestClient_CreatePost_PreCheck verifies that invalid content is rejected
locally BEFORE any network I/O, and that the 1000-character boundary is
inclusive.
*/
func TestClient_CreatePost_PreCheck(t *testing.T) {
	tests := []struct {
		name        string
		content     string
		wantNetwork bool
	}{
		{"empty", "", false},
		{"whitespace_only", " \n\t ", false},
		{"over_limit", strings.Repeat("a", 1001), false},
		{"exactly_at_limit", strings.Repeat("a", 1000), true},
		{"plain_text", "hello", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var hits atomic.Int64
			client, keystore := newTestClient(t, http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
				hits.Add(1)
				writer.Header().Set("Content-Type", "application/json")
				writer.WriteHeader(http.StatusCreated)
				_, _ = fmt.Fprintf(writer, `{
					"id": 1,
					"user": {"id": 1, "email": "a@x.com", "name": "A", "bio": null, "created_at": "2026-01-02T15:04:05Z"},
					"content": %q,
					"created_at": "2026-01-02T15:04:05Z",
					"updated_at": "2026-01-02T15:04:05Z"
				}`, tt.content)
			}))
			require.NoError(t, keystore.SetPair("tok", "ref"))

			post, err := client.CreatePost(context.Background(), tt.content)

			if tt.wantNetwork {
				require.NoError(t, err)
				assert.Equal(t, tt.content, post.Content)
				assert.Equal(t, int64(1), hits.Load())
			} else {
				require.Error(t, err)
				assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
				assert.Zero(t, hits.Load(), "invalid content must never reach the network")
			}
		})
	}
}

// fakeFeed is a minimal in-memory stand-in for the remote post endpoints.
type fakeFeed struct {
	posts []api.Post
}

func (f *fakeFeed) handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /posts/create/", func(writer http.ResponseWriter, request *http.Request) {
		var body struct {
			Content string `json:"content"`
		}
		_ = json.NewDecoder(request.Body).Decode(&body)

		post := api.Post{
			ID:        int64(len(f.posts) + 1),
			User:      api.Identity{ID: 7, Email: "a@x.com", Name: "A", CreatedAt: time.Now()},
			Content:   body.Content,
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		}
		// Newest first, matching the remote ordering contract.
		f.posts = append([]api.Post{post}, f.posts...)

		writer.Header().Set("Content-Type", "application/json")
		writer.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(writer).Encode(post)
	})

	mux.HandleFunc("GET /posts/", func(writer http.ResponseWriter, request *http.Request) {
		writer.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(writer).Encode(f.posts)
	})

	mux.HandleFunc("GET /users/7/posts/", func(writer http.ResponseWriter, request *http.Request) {
		writer.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(writer).Encode(f.posts)
	})

	return mux
}

/*
TestClient_CreatePost_RoundTrip creates a post and verifies it comes back
through both the global feed and the author's post list with its content
intact.
*/
func TestClient_CreatePost_RoundTrip(t *testing.T) {
	feed := &fakeFeed{}
	client, keystore := newTestClient(t, feed.handler())
	require.NoError(t, keystore.SetPair("tok", "ref"))

	created, err := client.CreatePost(context.Background(), "hello")
	require.NoError(t, err)
	assert.Equal(t, "hello", created.Content)

	posts, err := client.Posts(context.Background())
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, "hello", posts[0].Content)

	authored, err := client.UserPosts(context.Background(), created.User.ID)
	require.NoError(t, err)
	require.Len(t, authored, 1)
	assert.Equal(t, "hello", authored[0].Content)
}

/*
TestClient_Posts_Unauthorized verifies that an unauthenticated feed fetch
surfaces the remote rejection through the taxonomy.
*/
func TestClient_Posts_Unauthorized(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		writer.WriteHeader(http.StatusUnauthorized)
		_, _ = writer.Write([]byte(`{"detail":"Authentication credentials were not provided."}`))
	}))

	_, err := client.Posts(context.Background())
	require.Error(t, err)
	assert.True(t, apperr.IsUnauthorized(err))
	assert.Equal(t, "Authentication credentials were not provided.", err.Error())
}
