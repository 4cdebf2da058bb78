package handlers

import (
	"net/http"
	"strings"

	applog "kitchen/internal/log"
	"kitchen/internal/store"
	"kitchen/internal/views/theme"
)

type preferencesResponse struct {
	Theme string `json:"theme"`
}

// UpdatePreferences persists the UI theme of the signed-in cook.
func UpdatePreferences(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, r, "POST")
		return
	}

	cook := actorFrom(r.Context()).cook
	if cook == nil {
		applog.Debug(r.Context(), "preferences update without a cook")
		redirectToLogin(w, r)
		return
	}

	if err := r.ParseForm(); err != nil {
		applog.Error(r.Context(), "failed to parse preferences form", "error", err)
		http.Error(w, "invalid form submission", http.StatusBadRequest)
		return
	}

	value := strings.ToLower(strings.TrimSpace(r.FormValue("theme")))
	if !theme.Known(value) {
		applog.Debug(r.Context(), "received invalid theme selection", "value", value)
		http.Error(w, "invalid theme selection", http.StatusBadRequest)
		return
	}

	applog.Debug(r.Context(), "updating cook preferences", "cookID", cook.ID, "theme", value)
	err := kitchenStore.SetCookTheme(r.Context(), cook.ID, value)
	if _, ok := store.AsValidation(err); ok {
		http.Error(w, "invalid theme selection", http.StatusBadRequest)
		return
	}
	if err != nil {
		applog.Error(r.Context(), "failed to persist cook preferences", "error", err)
		http.Error(w, "failed to save preferences", http.StatusInternalServerError)
		return
	}

	if isHTMX(r) {
		writeJSON(w, http.StatusOK, preferencesResponse{Theme: value})
		return
	}
	redirectToIndex(w, r)
}
