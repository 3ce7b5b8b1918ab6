package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/amigo-fit/amigo-server/internal/domain"
)

// Standard response types for consistent API responses

// SuccessResponse represents a simple successful operation message
type SuccessResponse struct {
	Message string `json:"message"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// respondJSON sends a JSON response with the given status code and payload
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	buf := getBuffer()
	defer putBuffer(buf)

	// Encode to a pooled buffer first; headers are already sent, so an
	// encoding failure can only be logged
	if err := json.NewEncoder(buf).Encode(payload); err != nil {
		slog.Error("Failed to encode JSON response", "error", err)
		return
	}

	if _, err := buf.WriteTo(w); err != nil {
		slog.Error("Failed to write response buffer", "error", err)
	}
}

// respondError sends a JSON error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{Error: message})
}

// User-facing error messages for service errors
const (
	// Generic messages
	ErrMsgGenericServerError  = "Something went wrong"
	ErrMsgUnknownError        = "Unknown error"
	ErrMsgInvalidRequestError = "Invalid request. Please check your inputs."
	ErrMsgUnavailableError    = "Server is temporarily unavailable. Please try again."

	// User messages
	ErrMsgUserNotFoundError  = "User not found"
	ErrMsgUsernameTakenError = "That username is already taken"

	// Economy messages
	ErrMsgNotEnoughCoinsError = "Not enough coins"
	ErrMsgItemNotFoundError   = "Item not found"
	ErrMsgItemNotOwnedError   = "You don't own that item"

	// Social messages
	ErrMsgSelfFriendRequestError     = "You can't send a friend request to yourself"
	ErrMsgAlreadyFriendsError        = "You are already friends"
	ErrMsgFriendRequestExistsError   = "A friend request is already pending"
	ErrMsgFriendRequestNotFoundError = "Friend request not found"
	ErrMsgNotAuthorizedError         = "You are not allowed to do that"
)

// mapServiceErrorToUserMessage maps domain errors to user-friendly HTTP
// status codes and messages
func mapServiceErrorToUserMessage(err error) (int, string) {
	if err == nil {
		return http.StatusInternalServerError, ErrMsgUnknownError
	}

	switch {
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound, ErrMsgUserNotFoundError
	case errors.Is(err, domain.ErrUsernameTaken):
		return http.StatusConflict, ErrMsgUsernameTakenError
	case errors.Is(err, domain.ErrItemNotFound):
		return http.StatusNotFound, ErrMsgItemNotFoundError
	case errors.Is(err, domain.ErrItemNotOwned):
		return http.StatusBadRequest, ErrMsgItemNotOwnedError
	case errors.Is(err, domain.ErrInsufficientFunds):
		return http.StatusBadRequest, ErrMsgNotEnoughCoinsError
	case errors.Is(err, domain.ErrSelfFriendRequest):
		return http.StatusBadRequest, ErrMsgSelfFriendRequestError
	case errors.Is(err, domain.ErrAlreadyFriends):
		return http.StatusConflict, ErrMsgAlreadyFriendsError
	case errors.Is(err, domain.ErrFriendRequestExists):
		return http.StatusConflict, ErrMsgFriendRequestExistsError
	case errors.Is(err, domain.ErrFriendRequestNotFound):
		return http.StatusNotFound, ErrMsgFriendRequestNotFoundError
	case errors.Is(err, domain.ErrNotAuthorized):
		return http.StatusForbidden, ErrMsgNotAuthorizedError
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, domain.ErrPersistenceUnavailable):
		return http.StatusServiceUnavailable, ErrMsgUnavailableError
	}

	return http.StatusInternalServerError, ErrMsgGenericServerError
}
