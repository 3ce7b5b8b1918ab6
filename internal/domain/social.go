package domain

import "time"

// FriendRequestStatus is the lifecycle state of a friend request
type FriendRequestStatus string

const (
	FriendRequestPending FriendRequestStatus = "pending"
)

// FriendRequest is a pending request between two players.
// Accepted and declined requests are deleted, not archived, so the only
// persisted status is pending.
type FriendRequest struct {
	ID        string              `json:"request_id"`
	FromID    string              `json:"from_user_id"`
	ToID      string              `json:"to_user_id"`
	Status    FriendRequestStatus `json:"status"`
	CreatedAt time.Time           `json:"created_at"`
	UpdatedAt time.Time           `json:"updated_at"`
}

// Friend is one accepted friendship edge as seen from a player's friends list
type Friend struct {
	UserID   string    `json:"user_id"`
	Username string    `json:"username"`
	Since    time.Time `json:"since"`
}
