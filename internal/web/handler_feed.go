// Copyright (c) 2026 Ripple. All rights reserved.
// Author: dev@ripple.social

package web

import (
	"net/http"

	"github.com/ripplesocial/ripple/internal/api"
	"github.com/ripplesocial/ripple/internal/platform/constants"
	"github.com/ripplesocial/ripple/internal/platform/validate"
)

// # Feed Pages

// feedData is the payload for the feed template.
type feedData struct {
	Posts []api.Post
}

// composeData is the payload for the create-post template.
type composeData struct {
	MaxLength int
	Content   string
}

/*
getFeed renders the global feed, newest posts first.

GET /

Description: The list comes straight from the remote API on every render —
no pagination, no client-side cache, matching the remote contract.
*/
func (h *Handler) getFeed(writer http.ResponseWriter, request *http.Request) {
	viewer := api.GetViewer(request.Context())

	posts, err := h.client.Posts(request.Context())
	if err != nil {
		h.renderFailure(writer, request, viewer, err)
		return
	}

	h.renderer.render(writer, request, http.StatusOK, "feed.html", page{
		Title:  "Feed",
		Viewer: viewer,
		Data:   feedData{Posts: posts},
	})
}

/*
getCompose renders the create-post form.

GET /posts/new
*/
func (h *Handler) getCompose(writer http.ResponseWriter, request *http.Request) {
	h.renderer.render(writer, request, http.StatusOK, "compose.html", page{
		Title:  "Create a Post",
		Viewer: api.GetViewer(request.Context()),
		Data:   composeData{MaxLength: constants.MaxPostLength},
	})
}

/*
postCompose publishes a new post.

POST /posts/new

Description: The API client pre-checks the content (non-empty after
trimming, at most 1000 characters) before any network I/O; a pre-check
failure re-renders the form with field errors and the draft kept sticky.
On success the visitor lands on the feed with the new post at the top.
*/
func (h *Handler) postCompose(writer http.ResponseWriter, request *http.Request) {
	viewer := api.GetViewer(request.Context())

	if err := request.ParseForm(); err != nil {
		h.renderer.render(writer, request, http.StatusBadRequest, "compose.html", page{
			Title:  "Create a Post",
			Viewer: viewer,
			Error:  validate.ErrInvalidForm.Message,
			Data:   composeData{MaxLength: constants.MaxPostLength},
		})
		return
	}

	content := request.PostFormValue(api.FieldContent)

	if _, err := h.client.CreatePost(request.Context(), content); err != nil {
		h.renderer.render(writer, request, http.StatusBadRequest, "compose.html", page{
			Title:  "Create a Post",
			Viewer: viewer,
			Error:  err.Error(),
			Fields: fieldMap(err),
			Data:   composeData{MaxLength: constants.MaxPostLength, Content: content},
		})
		return
	}

	http.Redirect(writer, request, "/", http.StatusSeeOther)
}
