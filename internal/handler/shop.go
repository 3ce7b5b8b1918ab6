package handler

import (
	"net/http"

	"github.com/amigo-fit/amigo-server/internal/logger"
	"github.com/amigo-fit/amigo-server/internal/purchase"
)

// BuyItemRequest is the payload for a direct catalog purchase
type BuyItemRequest struct {
	UserID    string `json:"user_id" validate:"required"`
	CatalogID int    `json:"catalog_id" validate:"required,gte=1"`
}

// HandleBuyItem buys a specific catalog item at its listed price
func HandleBuyItem(svc purchase.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req BuyItemRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Buy item"); err != nil {
			return
		}

		result, err := svc.BuyItem(r.Context(), req.UserID, req.CatalogID)
		if err != nil {
			logger.FromContext(r.Context()).Error("Failed to buy item", "error", err)
			statusCode, userMsg := mapServiceErrorToUserMessage(err)
			respondError(w, statusCode, userMsg)
			return
		}

		respondJSON(w, http.StatusOK, result)
	}
}
