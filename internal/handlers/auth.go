package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/alexedwards/scs/v2"

	"kitchen/internal/auth"
	applog "kitchen/internal/log"
	"kitchen/internal/routes"
	"kitchen/internal/store"
	"kitchen/models"
)

const (
	sessionAuthenticatedKey = "auth:authenticated"
	sessionLoginMessageKey  = "auth:message"
	sessionCookIDKey        = "auth:cook:id"
	sessionUsernameKey      = "auth:cook:username"
	sessionFlashKey         = "flash"
	sessionVisitsKey        = "num_visits"
)

var (
	sessionManager *scs.SessionManager
	kitchenStore   *store.Store
	tokenIssuer    *auth.TokenIssuer
)

// Configure installs the shared dependencies used by the HTTP handlers. A nil
// issuer disables the token endpoint.
func Configure(sm *scs.SessionManager, st *store.Store, tokens *auth.TokenIssuer) {
	sessionManager = sm
	kitchenStore = st
	tokenIssuer = tokens
}

// authenticate verifies the provided credentials and populates the session if successful.
func authenticate(r *http.Request, username, password string) bool {
	if sessionManager == nil || kitchenStore == nil {
		return false
	}

	cook, err := kitchenStore.Authenticate(r.Context(), username, password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			sessionManager.Put(r.Context(), sessionLoginMessageKey, "Please enter a correct username and password.")
		} else {
			applog.Error(r.Context(), "failed to load cook during login", "error", err)
			sessionManager.Put(r.Context(), sessionLoginMessageKey, "We were unable to sign you in. Please try again.")
		}
		return false
	}

	if err := establishSession(r, cook); err != nil {
		applog.Error(r.Context(), "failed to establish session", "error", err)
		sessionManager.Put(r.Context(), sessionLoginMessageKey, "We were unable to sign you in. Please try again.")
		return false
	}

	return true
}

func establishSession(r *http.Request, cook *models.Cook) error {
	if sessionManager == nil {
		return errors.New("session manager not configured")
	}
	if err := sessionManager.RenewToken(r.Context()); err != nil {
		return err
	}
	sessionManager.Put(r.Context(), sessionAuthenticatedKey, true)
	sessionManager.Put(r.Context(), sessionCookIDKey, int(cook.ID))
	sessionManager.Put(r.Context(), sessionUsernameKey, cook.Username)
	return nil
}

// Logout destroys the current session and redirects the cook to the login screen.
func Logout(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet, http.MethodPost:
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	if sessionManager != nil {
		if err := sessionManager.Destroy(r.Context()); err != nil {
			applog.Error(r.Context(), "failed to destroy session", "error", err)
		}
	}

	redirectToLogin(w, r)
}

func redirectTo(w http.ResponseWriter, r *http.Request, path string) {
	if isHTMX(r) {
		w.Header().Set("HX-Redirect", path)
		w.WriteHeader(http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, path, http.StatusSeeOther)
}

func redirectToLogin(w http.ResponseWriter, r *http.Request) {
	redirectTo(w, r, routes.Path(routes.Login))
}

func redirectToIndex(w http.ResponseWriter, r *http.Request) {
	redirectTo(w, r, routes.Path(routes.Index))
}

// ActiveSession returns true when the current request has an authenticated session.
func ActiveSession(r *http.Request) bool {
	if sessionManager == nil {
		return false
	}
	return sessionManager.GetBool(r.Context(), sessionAuthenticatedKey) && sessionManager.GetInt(r.Context(), sessionCookIDKey) > 0
}

func currentCookID(r *http.Request) (uint, bool) {
	if !ActiveSession(r) {
		return 0, false
	}
	return uint(sessionManager.GetInt(r.Context(), sessionCookIDKey)), true
}

// sessionCook loads the signed-in cook with its role. A session pointing at a
// deleted cook is destroyed and treated as anonymous.
func sessionCook(r *http.Request) (*models.Cook, error) {
	id, ok := currentCookID(r)
	if !ok {
		return nil, auth.ErrUnauthenticated
	}
	if kitchenStore == nil {
		return nil, errStoreNotConfigured
	}
	cook, err := kitchenStore.FindCook(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		applog.Debug(r.Context(), "session references missing cook", "cookID", id)
		if err := sessionManager.Destroy(r.Context()); err != nil {
			applog.Error(r.Context(), "failed to destroy stale session", "error", err)
		}
		return nil, auth.ErrUnauthenticated
	}
	if err != nil {
		return nil, err
	}
	return cook, nil
}

func setFlash(ctx context.Context, message string) {
	if sessionManager != nil {
		sessionManager.Put(ctx, sessionFlashKey, message)
	}
}

func popFlash(ctx context.Context) string {
	if sessionManager == nil {
		return ""
	}
	return sessionManager.PopString(ctx, sessionFlashKey)
}
