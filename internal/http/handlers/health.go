package handlers

import (
	"context"
	"net/http"
	"time"
)

// Health reports liveness plus the state of the database and cache.
func (a *App) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	dbStatus := "ok"
	if a.Pool != nil {
		if err := a.Pool.Ping(ctx); err != nil {
			a.Logger.Error().Err(err).Msg("database ping failed")
			dbStatus = "error"
		}
	} else {
		dbStatus = "disabled"
	}

	status := http.StatusOK
	if dbStatus == "error" {
		status = http.StatusServiceUnavailable
	}
	a.json(w, status, map[string]string{
		"status":   "ok",
		"database": dbStatus,
		"cache":    a.Cache.Health(ctx),
	})
}
