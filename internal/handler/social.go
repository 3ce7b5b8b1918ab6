package handler

import (
	"net/http"

	"github.com/amigo-fit/amigo-server/internal/domain"
	"github.com/amigo-fit/amigo-server/internal/logger"
	"github.com/amigo-fit/amigo-server/internal/social"
)

// SendFriendRequestRequest is the payload for creating a friend request
type SendFriendRequestRequest struct {
	FromUserID string `json:"from_user_id" validate:"required"`
	ToUserID   string `json:"to_user_id" validate:"required"`
}

// HandleSendFriendRequest creates a pending friend request
func HandleSendFriendRequest(svc social.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req SendFriendRequestRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Send friend request"); err != nil {
			return
		}

		request, err := svc.SendFriendRequest(r.Context(), req.FromUserID, req.ToUserID)
		if err != nil {
			logger.FromContext(r.Context()).Error("Failed to send friend request", "error", err)
			statusCode, userMsg := mapServiceErrorToUserMessage(err)
			respondError(w, statusCode, userMsg)
			return
		}

		respondJSON(w, http.StatusCreated, request)
	}
}

// FriendRequestActionRequest is the payload for accepting or declining
type FriendRequestActionRequest struct {
	RequestID string `json:"request_id" validate:"required"`
	UserID    string `json:"user_id" validate:"required"`
}

// HandleAcceptFriendRequest accepts a pending request
func HandleAcceptFriendRequest(svc social.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req FriendRequestActionRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Accept friend request"); err != nil {
			return
		}

		if err := svc.AcceptFriendRequest(r.Context(), req.RequestID, req.UserID); err != nil {
			logger.FromContext(r.Context()).Error("Failed to accept friend request", "error", err)
			statusCode, userMsg := mapServiceErrorToUserMessage(err)
			respondError(w, statusCode, userMsg)
			return
		}

		respondJSON(w, http.StatusOK, SuccessResponse{Message: "Friend request accepted"})
	}
}

// HandleDeclineFriendRequest declines or cancels a pending request
func HandleDeclineFriendRequest(svc social.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req FriendRequestActionRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Decline friend request"); err != nil {
			return
		}

		if err := svc.DeclineFriendRequest(r.Context(), req.RequestID, req.UserID); err != nil {
			logger.FromContext(r.Context()).Error("Failed to decline friend request", "error", err)
			statusCode, userMsg := mapServiceErrorToUserMessage(err)
			respondError(w, statusCode, userMsg)
			return
		}

		respondJSON(w, http.StatusOK, SuccessResponse{Message: "Friend request removed"})
	}
}

// HandleListFriends returns the user's friends list
func HandleListFriends(svc social.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := GetQueryParam(r, w, "user_id")
		if !ok {
			return
		}

		friends, err := svc.ListFriends(r.Context(), userID)
		if err != nil {
			logger.FromContext(r.Context()).Error("Failed to list friends", "error", err)
			statusCode, userMsg := mapServiceErrorToUserMessage(err)
			respondError(w, statusCode, userMsg)
			return
		}
		if friends == nil {
			friends = []domain.Friend{}
		}

		respondJSON(w, http.StatusOK, friends)
	}
}

// HandleListFriendRequests returns pending requests for the user,
// incoming by default, outgoing with direction=outgoing
func HandleListFriendRequests(svc social.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := GetQueryParam(r, w, "user_id")
		if !ok {
			return
		}

		var (
			requests []domain.FriendRequest
			err      error
		)
		if r.URL.Query().Get("direction") == "outgoing" {
			requests, err = svc.ListOutgoingRequests(r.Context(), userID)
		} else {
			requests, err = svc.ListIncomingRequests(r.Context(), userID)
		}
		if err != nil {
			logger.FromContext(r.Context()).Error("Failed to list friend requests", "error", err)
			statusCode, userMsg := mapServiceErrorToUserMessage(err)
			respondError(w, statusCode, userMsg)
			return
		}
		if requests == nil {
			requests = []domain.FriendRequest{}
		}

		respondJSON(w, http.StatusOK, requests)
	}
}
