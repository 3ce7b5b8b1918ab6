package handler

import (
	"net/http"

	"github.com/amigo-fit/amigo-server/internal/logger"
	"github.com/amigo-fit/amigo-server/internal/user"
)

// RegisterUserRequest is the payload for user registration
type RegisterUserRequest struct {
	UserID   string `json:"user_id" validate:"required"`
	Email    string `json:"email" validate:"omitempty,email"`
	Username string `json:"username" validate:"required,min=3,max=20,username"`
}

// RegisterUserResponse reports the created or existing profile
type RegisterUserResponse struct {
	Created bool        `json:"created"`
	User    interface{} `json:"user"`
}

// HandleRegisterUser creates a profile on first sign-in
func HandleRegisterUser(svc user.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req RegisterUserRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Register user"); err != nil {
			return
		}

		u, created, err := svc.Register(r.Context(), req.UserID, req.Email, req.Username)
		if err != nil {
			logger.FromContext(r.Context()).Error("Failed to register user", "error", err)
			statusCode, userMsg := mapServiceErrorToUserMessage(err)
			respondError(w, statusCode, userMsg)
			return
		}

		status := http.StatusOK
		if created {
			status = http.StatusCreated
		}
		respondJSON(w, status, RegisterUserResponse{Created: created, User: u})
	}
}

// HandleGetProfile returns a user's full profile
func HandleGetProfile(svc user.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := GetQueryParam(r, w, "user_id")
		if !ok {
			return
		}

		u, err := svc.GetProfile(r.Context(), userID)
		if err != nil {
			logger.FromContext(r.Context()).Error("Failed to get profile", "error", err)
			statusCode, userMsg := mapServiceErrorToUserMessage(err)
			respondError(w, statusCode, userMsg)
			return
		}

		respondJSON(w, http.StatusOK, u)
	}
}

// SetUsernameRequest is the payload for a username change
type SetUsernameRequest struct {
	UserID   string `json:"user_id" validate:"required"`
	Username string `json:"username" validate:"required,min=3,max=20,username"`
}

// HandleSetUsername changes a user's display name
func HandleSetUsername(svc user.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req SetUsernameRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Set username"); err != nil {
			return
		}

		if err := svc.SetUsername(r.Context(), req.UserID, req.Username); err != nil {
			logger.FromContext(r.Context()).Error("Failed to set username", "error", err)
			statusCode, userMsg := mapServiceErrorToUserMessage(err)
			respondError(w, statusCode, userMsg)
			return
		}

		respondJSON(w, http.StatusOK, SuccessResponse{Message: "Username updated"})
	}
}

// UsernameAvailableResponse reports whether a username is free
type UsernameAvailableResponse struct {
	Username  string `json:"username"`
	Available bool   `json:"available"`
}

// HandleUsernameAvailable checks username availability
func HandleUsernameAvailable(svc user.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		username, ok := GetQueryParam(r, w, "username")
		if !ok {
			return
		}

		available, err := svc.IsUsernameAvailable(r.Context(), username)
		if err != nil {
			logger.FromContext(r.Context()).Error("Failed to check username", "error", err)
			statusCode, userMsg := mapServiceErrorToUserMessage(err)
			respondError(w, statusCode, userMsg)
			return
		}

		respondJSON(w, http.StatusOK, UsernameAvailableResponse{Username: username, Available: available})
	}
}

// SetEquippedItemsRequest is the payload for changing the pet's
// cosmetics. An empty item list unequips everything.
type SetEquippedItemsRequest struct {
	UserID string `json:"user_id" validate:"required"`
	Items  []int  `json:"items" validate:"dive,min=1"`
}

// EquippedItemsResponse reports the stored cosmetics list
type EquippedItemsResponse struct {
	UserID string `json:"user_id"`
	Items  []int  `json:"items"`
}

// HandleSetEquippedItems equips owned cosmetics on the user's pet
func HandleSetEquippedItems(svc user.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req SetEquippedItemsRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Set equipped items"); err != nil {
			return
		}

		items, err := svc.SetEquippedItems(r.Context(), req.UserID, req.Items)
		if err != nil {
			logger.FromContext(r.Context()).Error("Failed to set equipped items", "error", err)
			statusCode, userMsg := mapServiceErrorToUserMessage(err)
			respondError(w, statusCode, userMsg)
			return
		}

		respondJSON(w, http.StatusOK, EquippedItemsResponse{UserID: req.UserID, Items: items})
	}
}

// SetPetNameRequest is the payload for renaming the companion pet
type SetPetNameRequest struct {
	UserID  string `json:"user_id" validate:"required"`
	PetName string `json:"pet_name" validate:"required,min=1,max=30"`
}

// HandleSetPetName renames the user's companion pet
func HandleSetPetName(svc user.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req SetPetNameRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Set pet name"); err != nil {
			return
		}

		if err := svc.UpdatePetName(r.Context(), req.UserID, req.PetName); err != nil {
			logger.FromContext(r.Context()).Error("Failed to set pet name", "error", err)
			statusCode, userMsg := mapServiceErrorToUserMessage(err)
			respondError(w, statusCode, userMsg)
			return
		}

		respondJSON(w, http.StatusOK, SuccessResponse{Message: "Pet name updated"})
	}
}
