package handler

import (
	"net/http"

	"github.com/amigo-fit/amigo-server/internal/logger"
	"github.com/amigo-fit/amigo-server/internal/steps"
)

// SyncStepsRequest is the payload for a step sync from the client's
// health provider
type SyncStepsRequest struct {
	UserID     string `json:"user_id" validate:"required"`
	DailySteps int    `json:"daily_steps" validate:"gte=0"`
}

// HandleSyncSteps records the reported daily step count and credits any
// earned coins
func HandleSyncSteps(svc steps.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req SyncStepsRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Sync steps"); err != nil {
			return
		}

		result, err := svc.RecordDailySteps(r.Context(), req.UserID, req.DailySteps)
		if err != nil {
			logger.FromContext(r.Context()).Error("Failed to sync steps", "error", err)
			statusCode, userMsg := mapServiceErrorToUserMessage(err)
			respondError(w, statusCode, userMsg)
			return
		}

		respondJSON(w, http.StatusOK, result)
	}
}
