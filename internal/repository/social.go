package repository

import (
	"context"

	"github.com/amigo-fit/amigo-server/internal/domain"
)

// Social defines the interface for friend graph persistence
type Social interface {
	CreateFriendRequest(ctx context.Context, request *domain.FriendRequest) error
	GetFriendRequest(ctx context.Context, requestID string) (*domain.FriendRequest, error)
	DeleteFriendRequest(ctx context.Context, requestID string) error

	// HasPendingRequestBetween reports whether a pending request exists in
	// either direction between the two players.
	HasPendingRequestBetween(ctx context.Context, userA, userB string) (bool, error)
	ListIncomingRequests(ctx context.Context, userID string) ([]domain.FriendRequest, error)
	ListOutgoingRequests(ctx context.Context, userID string) ([]domain.FriendRequest, error)

	AreFriends(ctx context.Context, userA, userB string) (bool, error)

	// CreateFriendship writes both directed friendship edges and bumps
	// both players' friend counts atomically.
	CreateFriendship(ctx context.Context, userA, userB string) error
	ListFriends(ctx context.Context, userID string) ([]domain.Friend, error)
}
