// Copyright (c) 2026 Ripple. All rights reserved.
// Author: dev@ripple.social

package api

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/ripplesocial/ripple/internal/platform/constants"
	"github.com/ripplesocial/ripple/internal/platform/validate"
)

// # Post Operations

type createPostRequest struct {
	Content string `json:"content"`
}

/*
Posts fetches the global feed.

GET /posts/

Description: The server defines the ordering (reverse chronological). No
pagination — the remote contract returns the full list.

Returns:
  - []Post: all posts
  - error: UNAUTHORIZED when unauthenticated
*/
func (client *Client) Posts(ctx context.Context) ([]Post, error) {
	var posts []Post
	if err := client.do(ctx, http.MethodGet, "/posts/", nil, true, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

/*
CreatePost publishes a new text post as the current user.

POST /posts/create/

Description: Content is pre-checked locally BEFORE any network I/O: it must
be non-empty after trimming and at most 1000 characters. The remote server
remains authoritative; the pre-check just refuses requests that cannot
possibly succeed.

Returns:
  - Post: the created post with its server-assigned ID and timestamps
  - error: VALIDATION_ERROR from the local pre-check or the server,
    UNAUTHORIZED when unauthenticated
*/
func (client *Client) CreatePost(ctx context.Context, content string) (*Post, error) {
	validator := &validate.Validator{}
	validator.Custom(FieldContent, strings.TrimSpace(content) == "", "Post content cannot be empty").
		MaxLen(FieldContent, content, constants.MaxPostLength)

	if err := validator.Err(); err != nil {
		return nil, err
	}

	var post Post
	if err := client.do(ctx, http.MethodPost, "/posts/create/", createPostRequest{Content: content}, true, &post); err != nil {
		return nil, err
	}
	return &post, nil
}

/*
UserPosts fetches the posts authored by the given user.

GET /users/{id}/posts/

Returns:
  - []Post: the user's posts, server-ordered
  - error: NOT_FOUND when no such user exists
*/
func (client *Client) UserPosts(ctx context.Context, userID int64) ([]Post, error) {
	var posts []Post
	path := fmt.Sprintf("/users/%d/posts/", userID)
	if err := client.do(ctx, http.MethodGet, path, nil, true, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}
