package handlers

import (
	"net/http"

	applog "kitchen/internal/log"
	"kitchen/internal/views/components"
	"kitchen/internal/views/pages"
)

// Index renders the dashboard: entity counts plus how many times this
// session has seen the page before.
func Index(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		methodNotAllowed(w, r, "GET")
		return
	}
	counts, err := kitchenStore.Counts(r.Context())
	if handleStoreError(w, r, err, "count records") {
		return
	}

	visits := 0
	if sessionManager != nil {
		visits = sessionManager.GetInt(r.Context(), sessionVisitsKey)
		sessionManager.Put(r.Context(), sessionVisitsKey, visits+1)
	}
	applog.Debug(r.Context(), "dashboard requested", "visits", visits)

	renderComponent(w, r, pages.Index(frameFor(r, "Home", components.SectionHome), counts, visits))
}
