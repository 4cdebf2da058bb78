package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"kitchen/internal/store"
)

// pathID reads the {id} route variable.
func pathID(r *http.Request) (uint, bool) {
	raw := mux.Vars(r)["id"]
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

func parseUint(value string) (uint, error) {
	id, err := strconv.ParseUint(strings.TrimSpace(value), 10, 64)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}

// parseIDList reads a multi-value field of ids, recording a field error for
// values that are not ids.
func parseIDList(values []string, field string, verr *store.ValidationError) []uint {
	ids := make([]uint, 0, len(values))
	for _, value := range values {
		if strings.TrimSpace(value) == "" {
			continue
		}
		id, err := parseUint(value)
		if err != nil || id == 0 {
			verr.Add(field, "Enter a list of values.")
			continue
		}
		ids = append(ids, id)
	}
	return ids
}

func idSet(ids []uint) map[uint]bool {
	set := make(map[uint]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}

// listParams reads the filter term and page of a list request.
func listParams(r *http.Request, field string) (string, int, error) {
	query := r.URL.Query().Get(field)
	page, err := store.ParsePage(r.URL.Query().Get("page"))
	return query, page, err
}

func parseOptionalInt(value string, field string, verr *store.ValidationError) *int {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil
	}
	n, err := strconv.Atoi(trimmed)
	if err != nil {
		verr.Add(field, "Enter a whole number.")
		return nil
	}
	return &n
}

func pluralize(n int, singular, plural string) string {
	if n == 1 {
		return "1 " + singular
	}
	return strconv.Itoa(n) + " " + plural
}
