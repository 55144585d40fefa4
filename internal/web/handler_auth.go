// Copyright (c) 2026 Ripple. All rights reserved.
// Author: dev@ripple.social

package web

import (
	"net/http"
	"strings"

	"github.com/ripplesocial/ripple/internal/api"
	"github.com/ripplesocial/ripple/internal/platform/constants"
	"github.com/ripplesocial/ripple/internal/platform/validate"
	"github.com/ripplesocial/ripple/pkg/pointer"
)

// # Authentication Pages

/*
getLogin renders the sign-in form.

GET /login
*/
func (h *Handler) getLogin(writer http.ResponseWriter, request *http.Request) {
	h.renderer.render(writer, request, http.StatusOK, "login.html", page{Title: "Sign in"})
}

/*
postLogin authenticates the submitted credentials.

POST /login

Description: Validates presence locally, then delegates to the session
store. A failed attempt re-renders the form with the server's display
string verbatim and the submitted email kept sticky; the session remains
anonymous and no tokens are written.
*/
func (h *Handler) postLogin(writer http.ResponseWriter, request *http.Request) {
	if err := request.ParseForm(); err != nil {
		h.renderer.render(writer, request, http.StatusBadRequest, "login.html", page{
			Title: "Sign in",
			Error: validate.ErrInvalidForm.Message,
		})
		return
	}

	email := strings.TrimSpace(request.PostFormValue(api.FieldEmail))
	password := request.PostFormValue(api.FieldPassword)

	validator := &validate.Validator{}
	validator.Required(api.FieldEmail, email).
		Required(api.FieldPassword, password)

	if err := validator.Err(); err != nil {
		h.renderer.render(writer, request, http.StatusBadRequest, "login.html", page{
			Title:  "Sign in",
			Fields: fieldMap(err),
			Form:   map[string]string{api.FieldEmail: email},
		})
		return
	}

	if _, err := h.sessions.SignIn(request.Context(), email, password); err != nil {
		h.renderer.render(writer, request, http.StatusUnauthorized, "login.html", page{
			Title: "Sign in",
			Error: err.Error(),
			Form:  map[string]string{api.FieldEmail: email},
		})
		return
	}

	http.Redirect(writer, request, "/", http.StatusSeeOther)
}

/*
getRegister renders the account creation form.

GET /register
*/
func (h *Handler) getRegister(writer http.ResponseWriter, request *http.Request) {
	h.renderer.render(writer, request, http.StatusOK, "register.html", page{Title: "Create account"})
}

/*
postRegister creates a new account and signs the visitor in.

POST /register

Description: Local rules mirror the remote policy (valid email, password of
at least 8 characters, display name required). The bio is optional: a blank
submission registers with no bio at all, not an empty-string one.
*/
func (h *Handler) postRegister(writer http.ResponseWriter, request *http.Request) {
	if err := request.ParseForm(); err != nil {
		h.renderer.render(writer, request, http.StatusBadRequest, "register.html", page{
			Title: "Create account",
			Error: validate.ErrInvalidForm.Message,
		})
		return
	}

	email := strings.TrimSpace(request.PostFormValue(api.FieldEmail))
	password := request.PostFormValue(api.FieldPassword)
	name := strings.TrimSpace(request.PostFormValue(api.FieldName))
	bio := strings.TrimSpace(request.PostFormValue(api.FieldBio))

	sticky := map[string]string{
		api.FieldEmail: email,
		api.FieldName:  name,
		api.FieldBio:   bio,
	}

	validator := &validate.Validator{}
	validator.Required(api.FieldEmail, email).
		Email(api.FieldEmail, email).
		Required(api.FieldPassword, password).
		MinLen(api.FieldPassword, password, constants.MinPasswordLength).
		Required(api.FieldName, name)

	if err := validator.Err(); err != nil {
		h.renderer.render(writer, request, http.StatusBadRequest, "register.html", page{
			Title:  "Create account",
			Fields: fieldMap(err),
			Form:   sticky,
		})
		return
	}

	var bioValue *string
	if bio != "" {
		bioValue = pointer.To(bio)
	}

	if _, err := h.sessions.SignUp(request.Context(), email, password, name, bioValue); err != nil {
		h.renderer.render(writer, request, http.StatusBadRequest, "register.html", page{
			Title: "Create account",
			Error: err.Error(),
			Form:  sticky,
		})
		return
	}

	http.Redirect(writer, request, "/", http.StatusSeeOther)
}

/*
postLogout signs the viewer out.

POST /logout

Description: Unconditional and local-only — tokens are purged, no remote
call is made, and the visitor lands back on the login page.
*/
func (h *Handler) postLogout(writer http.ResponseWriter, request *http.Request) {
	h.sessions.SignOut()
	http.Redirect(writer, request, "/login", http.StatusSeeOther)
}
