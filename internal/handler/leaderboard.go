package handler

import (
	"net/http"
	"strconv"

	"github.com/amigo-fit/amigo-server/internal/domain"
	"github.com/amigo-fit/amigo-server/internal/leaderboard"
	"github.com/amigo-fit/amigo-server/internal/logger"
)

// HandleGetLeaderboard returns the ranked daily-steps leaderboard.
// The optional limit query parameter is clamped by the service.
func HandleGetLeaderboard(svc leaderboard.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit := 0
		if raw := r.URL.Query().Get("limit"); raw != "" {
			parsed, err := strconv.Atoi(raw)
			if err != nil {
				respondError(w, http.StatusBadRequest, "limit must be an integer")
				return
			}
			limit = parsed
		}

		entries, err := svc.Top(r.Context(), limit)
		if err != nil {
			logger.FromContext(r.Context()).Error("Failed to get leaderboard", "error", err)
			statusCode, userMsg := mapServiceErrorToUserMessage(err)
			respondError(w, statusCode, userMsg)
			return
		}
		if entries == nil {
			entries = []domain.LeaderboardEntry{}
		}

		respondJSON(w, http.StatusOK, entries)
	}
}
