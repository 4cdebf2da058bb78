package server

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	applog "kitchen/internal/log"
)

const requestIDHeader = "X-Request-ID"

// requestID tags the request context and the response with an id, reusing a
// well-formed inbound X-Request-ID.
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimSpace(r.Header.Get(requestIDHeader))
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		w.Header().Set(requestIDHeader, id)
		next.ServeHTTP(w, r.WithContext(applog.WithRequestID(r.Context(), id)))
	})
}
