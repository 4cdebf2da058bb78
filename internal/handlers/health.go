package handlers

import (
	"context"
	"net/http"
	"time"

	applog "kitchen/internal/log"
)

type healthResponse struct {
	Status   string    `json:"status"`
	Database string    `json:"database"`
	Time     time.Time `json:"time"`
}

// Health is a readiness handler for infrastructure probes. It answers 503
// when the database does not respond to a ping.
func Health(w http.ResponseWriter, r *http.Request) {
	applog.Debug(r.Context(), "health check requested", "method", r.Method)
	resp := healthResponse{Status: "ok", Database: "ok", Time: time.Now().UTC()}

	if err := pingDatabase(r.Context()); err != nil {
		applog.Error(r.Context(), "health check database ping failed", "error", err)
		resp.Status = "unavailable"
		resp.Database = err.Error()
		writeJSON(w, http.StatusServiceUnavailable, resp)
		return
	}

	writeJSON(w, http.StatusOK, resp)
	applog.Debug(r.Context(), "health check responded successfully")
}

func pingDatabase(ctx context.Context) error {
	if kitchenStore == nil {
		return errStoreNotConfigured
	}
	sqlDB, err := kitchenStore.DB().DB()
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return sqlDB.PingContext(ctx)
}
