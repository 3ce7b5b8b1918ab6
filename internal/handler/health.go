package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/amigo-fit/amigo-server/internal/database"
)

// HealthResponse represents the response for health endpoints
type HealthResponse struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// HandleHealthz provides a basic liveness check
func HandleHealthz() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, HealthResponse{Status: "ok"})
	}
}

// HandleReadyz provides a readiness check that validates database
// connectivity. With the memory backend there is no pool; a nil pool is
// always ready.
func HandleReadyz(dbPool database.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if dbPool == nil {
			respondJSON(w, http.StatusOK, HealthResponse{Status: "ok"})
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := dbPool.Ping(ctx); err != nil {
			slog.Error("Readiness check failed", "error", err)
			respondJSON(w, http.StatusServiceUnavailable, HealthResponse{
				Status:  "unavailable",
				Message: "database connection failed",
			})
			return
		}

		respondJSON(w, http.StatusOK, HealthResponse{Status: "ok"})
	}
}
