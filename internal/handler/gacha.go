package handler

import (
	"net/http"

	"github.com/amigo-fit/amigo-server/internal/gacha"
	"github.com/amigo-fit/amigo-server/internal/logger"
	"github.com/amigo-fit/amigo-server/internal/purchase"
)

// PullRequest is the payload for single and batch pulls
type PullRequest struct {
	UserID string `json:"user_id" validate:"required"`
}

// HandlePull performs one paid draw
func HandlePull(svc purchase.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req PullRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Pull"); err != nil {
			return
		}

		result, err := svc.Pull(r.Context(), req.UserID)
		if err != nil {
			logger.FromContext(r.Context()).Error("Failed to pull", "error", err)
			statusCode, userMsg := mapServiceErrorToUserMessage(err)
			respondError(w, statusCode, userMsg)
			return
		}

		respondJSON(w, http.StatusOK, result)
	}
}

// HandlePullBatch performs a full batch of draws for one upfront debit
func HandlePullBatch(svc purchase.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req PullRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Batch pull"); err != nil {
			return
		}

		results, err := svc.PullBatch(r.Context(), req.UserID)
		if err != nil {
			logger.FromContext(r.Context()).Error("Failed to batch pull", "error", err)
			statusCode, userMsg := mapServiceErrorToUserMessage(err)
			respondError(w, statusCode, userMsg)
			return
		}

		respondJSON(w, http.StatusOK, results)
	}
}

// HandleGetCatalog returns the full draw catalog with weights and prices
func HandleGetCatalog(engine *gacha.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, engine.Items())
	}
}
