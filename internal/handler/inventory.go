package handler

import (
	"net/http"

	"github.com/amigo-fit/amigo-server/internal/domain"
	"github.com/amigo-fit/amigo-server/internal/inventory"
	"github.com/amigo-fit/amigo-server/internal/logger"
)

// InventoryResponse lists everything a user owns
type InventoryResponse struct {
	UserID  string                  `json:"user_id"`
	Entries []domain.InventoryEntry `json:"entries"`
}

// HandleGetInventory returns the user's ownership ledger
func HandleGetInventory(stores inventory.Provider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := GetQueryParam(r, w, "user_id")
		if !ok {
			return
		}

		entries, err := stores.StoreFor(userID).ListOwned(r.Context())
		if err != nil {
			logger.FromContext(r.Context()).Error("Failed to list inventory", "error", err)
			statusCode, userMsg := mapServiceErrorToUserMessage(err)
			respondError(w, statusCode, userMsg)
			return
		}
		if entries == nil {
			entries = []domain.InventoryEntry{}
		}

		respondJSON(w, http.StatusOK, InventoryResponse{UserID: userID, Entries: entries})
	}
}

// ClearInventoryRequest is the payload for resetting a user's inventory
type ClearInventoryRequest struct {
	UserID string `json:"user_id" validate:"required"`
}

// HandleClearInventory wipes the user's ledger (admin/dev utility)
func HandleClearInventory(stores inventory.Provider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ClearInventoryRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Clear inventory"); err != nil {
			return
		}

		if err := stores.StoreFor(req.UserID).Clear(r.Context()); err != nil {
			logger.FromContext(r.Context()).Error("Failed to clear inventory", "error", err)
			statusCode, userMsg := mapServiceErrorToUserMessage(err)
			respondError(w, statusCode, userMsg)
			return
		}

		respondJSON(w, http.StatusOK, SuccessResponse{Message: "Inventory cleared"})
	}
}
