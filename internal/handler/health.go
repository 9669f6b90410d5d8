package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/ilerise/farmsim/internal/database"
)

const readinessTimeout = 2 * time.Second

// HandleHealthz returns a liveness check handler
func HandleHealthz() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, SuccessResponse{Message: "ok"})
	}
}

// HandleReadyz returns a readiness check handler. When a database pool is
// configured it must answer a ping; without one, readiness equals liveness.
func HandleReadyz(pool database.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if pool != nil {
			ctx, cancel := context.WithTimeout(r.Context(), readinessTimeout)
			defer cancel()

			if err := pool.Ping(ctx); err != nil {
				respondError(w, http.StatusServiceUnavailable, "database unavailable")
				return
			}
		}
		respondJSON(w, http.StatusOK, SuccessResponse{Message: "ready"})
	}
}
