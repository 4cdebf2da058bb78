package handlers

import (
	"net/http"
	"strings"

	"github.com/a-h/templ"

	applog "kitchen/internal/log"
	"kitchen/internal/views/pages"
)

// Login renders the authentication view and processes sign-in submissions.
func Login(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	applog.Debug(r.Context(), "handling login request", "method", r.Method, "htmx", isHTMX(r))

	switch r.Method {
	case http.MethodGet, http.MethodHead:
		if ActiveSession(r) {
			applog.Debug(r.Context(), "active session detected, redirecting to index")
			redirectToIndex(w, r)
			return
		}
		message := ""
		if sessionManager != nil {
			message = sessionManager.PopString(r.Context(), sessionLoginMessageKey)
		}
		applog.Debug(r.Context(), "rendering login form", "messagePresent", message != "")
		renderLogin(w, r, http.StatusOK, message, "")
	case http.MethodPost:
		if sessionManager == nil || kitchenStore == nil {
			applog.Debug(r.Context(), "authentication dependencies unavailable", "hasSession", sessionManager != nil, "hasStore", kitchenStore != nil)
			http.Error(w, "authentication not available", http.StatusServiceUnavailable)
			return
		}
		if err := r.ParseForm(); err != nil {
			applog.Debug(r.Context(), "failed to parse login form", "error", err)
			http.Error(w, "invalid form submission", http.StatusBadRequest)
			return
		}
		username := strings.TrimSpace(r.PostFormValue("username"))
		password := r.PostFormValue("password")

		if username == "" || password == "" {
			applog.Debug(r.Context(), "login form missing credentials", "usernamePresent", username != "", "passwordPresent", password != "")
			renderLogin(w, r, http.StatusUnprocessableEntity, "Username and password are required.", username)
			return
		}

		if !authenticate(r, username, password) {
			applog.Debug(r.Context(), "authentication failed", "username", username)
			message := sessionManager.PopString(r.Context(), sessionLoginMessageKey)
			if message == "" {
				message = "We were unable to sign you in. Please try again."
			}
			renderLogin(w, r, http.StatusUnprocessableEntity, message, username)
			return
		}

		applog.Debug(r.Context(), "authentication succeeded", "username", username)
		redirectToIndex(w, r)
	default:
		applog.Debug(r.Context(), "method not allowed for login", "method", r.Method)
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func renderLogin(w http.ResponseWriter, r *http.Request, status int, message, username string) {
	var component templ.Component
	if isHTMX(r) {
		component = pages.LoginPartial(message, username)
	} else {
		component = pages.Login(message, username)
	}
	renderStatus(w, r, status, component)
}
