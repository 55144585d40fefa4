// Copyright (c) 2026 Ripple. All rights reserved.
// Author: dev@ripple.social

package web

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/ripplesocial/ripple/internal/api"
	"github.com/ripplesocial/ripple/internal/platform/apperr"
	"github.com/ripplesocial/ripple/internal/platform/validate"
	"github.com/ripplesocial/ripple/pkg/pointer"
)

// # Profile Pages

// profileData is the payload for the profile template.
type profileData struct {
	// Profile is the identity whose page this is.
	Profile api.Identity
	// Posts are the profile owner's posts, server-ordered.
	Posts []api.Post
	// IsOwn marks the viewer's own page, which shows the edit form.
	IsOwn bool
}

/*
getOwnProfile renders the viewer's own profile with the edit form.

GET /profile

Description: The identity comes from the session store — it is the cached,
server-confirmed copy, so no profile fetch is needed. Only the post list
hits the remote API.
*/
func (h *Handler) getOwnProfile(writer http.ResponseWriter, request *http.Request) {
	viewer := api.GetViewer(request.Context())

	posts, err := h.client.UserPosts(request.Context(), viewer.ID)
	if err != nil {
		h.renderFailure(writer, request, viewer, err)
		return
	}

	h.renderer.render(writer, request, http.StatusOK, "profile.html", page{
		Title:  viewer.Name,
		Viewer: viewer,
		Data:   profileData{Profile: *viewer, Posts: posts, IsOwn: true},
	})
}

/*
getUserProfile renders another user's profile and posts.

GET /users/{id}

Description: The viewer's own ID redirects to /profile so the edit form is
never duplicated. An unknown ID surfaces the remote NOT_FOUND verbatim.
*/
func (h *Handler) getUserProfile(writer http.ResponseWriter, request *http.Request) {
	viewer := api.GetViewer(request.Context())

	id, err := strconv.ParseInt(chi.URLParam(request, "id"), 10, 64)
	if err != nil {
		h.renderer.renderError(writer, request, viewer, apperr.NotFound("User"))
		return
	}

	if id == viewer.ID {
		http.Redirect(writer, request, "/profile", http.StatusSeeOther)
		return
	}

	profile, err := h.client.UserByID(request.Context(), id)
	if err != nil {
		h.renderFailure(writer, request, viewer, err)
		return
	}

	posts, err := h.client.UserPosts(request.Context(), id)
	if err != nil {
		h.renderFailure(writer, request, viewer, err)
		return
	}

	h.renderer.render(writer, request, http.StatusOK, "profile.html", page{
		Title:  profile.Name,
		Viewer: viewer,
		Data:   profileData{Profile: *profile, Posts: posts},
	})
}

/*
postProfile updates the viewer's display name and bio.

POST /profile

Description: The name is required; the bio is optional and a blank
submission clears it entirely (explicit null on the wire, not an empty
string). On success the session adopts the server's updated identity and
the page re-renders from it.
*/
func (h *Handler) postProfile(writer http.ResponseWriter, request *http.Request) {
	viewer := api.GetViewer(request.Context())

	if err := request.ParseForm(); err != nil {
		h.renderer.renderError(writer, request, viewer, validate.ErrInvalidForm)
		return
	}

	name := strings.TrimSpace(request.PostFormValue(api.FieldName))
	bio := strings.TrimSpace(request.PostFormValue(api.FieldBio))

	validator := &validate.Validator{}
	validator.Required(api.FieldName, name)

	if err := validator.Err(); err != nil {
		h.renderProfileForm(writer, request, viewer, err)
		return
	}

	update := api.ProfileUpdate{Name: pointer.To(name)}
	if bio == "" {
		update.ClearBio = true
	} else {
		update.Bio = pointer.To(bio)
	}

	if _, err := h.sessions.UpdateProfile(request.Context(), update); err != nil {
		h.renderProfileForm(writer, request, viewer, err)
		return
	}

	http.Redirect(writer, request, "/profile", http.StatusSeeOther)
}

// renderProfileForm re-renders the viewer's profile page with an error,
// keeping their posts visible under the failed form.
func (h *Handler) renderProfileForm(writer http.ResponseWriter, request *http.Request, viewer *api.Identity, formErr error) {
	posts, err := h.client.UserPosts(request.Context(), viewer.ID)
	if err != nil {
		h.renderFailure(writer, request, viewer, err)
		return
	}

	h.renderer.render(writer, request, http.StatusBadRequest, "profile.html", page{
		Title:  viewer.Name,
		Viewer: viewer,
		Error:  formErr.Error(),
		Fields: fieldMap(formErr),
		Data:   profileData{Profile: *viewer, Posts: posts, IsOwn: true},
	})
}
