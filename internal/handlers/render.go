package handlers

import (
	"bytes"
	"errors"
	"net/http"
	"strings"

	templpkg "github.com/a-h/templ"

	applog "kitchen/internal/log"
	"kitchen/internal/store"
	"kitchen/internal/views/pages"
)

// isHTMX reports whether the request came from htmx, boosted links included.
func isHTMX(r *http.Request) bool {
	for _, header := range []string{"HX-Request", "HX-Boosted"} {
		if strings.EqualFold(r.Header.Get(header), "true") {
			return true
		}
	}
	return false
}

func frameFor(r *http.Request, title, section string) pages.Frame {
	return pages.Frame{
		Title:   title,
		Section: section,
		Viewer:  viewerFor(r.Context()),
		Flash:   popFlash(r.Context()),
		Partial: isHTMX(r),
	}
}

func renderComponent(w http.ResponseWriter, r *http.Request, component templpkg.Component) {
	renderStatus(w, r, http.StatusOK, component)
}

// renderStatus renders into a buffer first so a failing component still
// yields a clean 500.
func renderStatus(w http.ResponseWriter, r *http.Request, status int, component templpkg.Component) {
	var buf bytes.Buffer
	if err := component.Render(r.Context(), &buf); err != nil {
		applog.Error(r.Context(), "failed to render component", "error", err)
		http.Error(w, "failed to render page", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if r.Method == http.MethodHead {
		return
	}
	if _, err := buf.WriteTo(w); err != nil {
		applog.Debug(r.Context(), "failed to write response body", "error", err)
	}
}

func renderError(w http.ResponseWriter, r *http.Request, status int, message string) {
	renderStatus(w, r, status, pages.ErrorPage(frameFor(r, http.StatusText(status), ""), status, message))
}

// handleStoreError writes the response for a failed store call and reports
// whether err was non-nil.
func handleStoreError(w http.ResponseWriter, r *http.Request, err error, action string) bool {
	switch {
	case err == nil:
		return false
	case errors.Is(err, store.ErrNotFound):
		applog.Debug(r.Context(), "record not found", "action", action, "path", r.URL.Path)
		renderError(w, r, http.StatusNotFound, "The requested record does not exist.")
	case errors.Is(err, store.ErrPageNotFound):
		applog.Debug(r.Context(), "page not found", "action", action, "query", r.URL.RawQuery)
		renderError(w, r, http.StatusNotFound, "Invalid page.")
	default:
		applog.Error(r.Context(), "store operation failed", "action", action, "error", err)
		renderError(w, r, http.StatusInternalServerError, "Something went wrong. Please try again.")
	}
	return true
}

func methodNotAllowed(w http.ResponseWriter, r *http.Request, allowed string) {
	applog.Debug(r.Context(), "method not allowed", "method", r.Method, "path", r.URL.Path)
	w.Header().Set("Allow", allowed)
	w.WriteHeader(http.StatusMethodNotAllowed)
}
