package repository

import (
	"context"

	"github.com/amigo-fit/amigo-server/internal/domain"
)

// User defines the interface for user profile persistence
type User interface {
	// CreateUserIfMissing inserts the profile when no row exists for
	// user.ID and reports whether a row was created. An existing profile
	// is left untouched.
	CreateUserIfMissing(ctx context.Context, user *domain.User) (bool, error)
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)
	GetUserByUsername(ctx context.Context, username string) (*domain.User, error)
	UpdateUsername(ctx context.Context, userID, username string) error
	UpdatePetName(ctx context.Context, userID, petName string) error

	// UpdateEquippedItems replaces the user's equipped cosmetics with
	// catalogIDs. Ownership checks are the service's concern.
	UpdateEquippedItems(ctx context.Context, userID string, catalogIDs []int) error

	// UpdateSteps sets the daily step figure and adds totalDelta (>= 0)
	// to the lifetime total in one write.
	UpdateSteps(ctx context.Context, userID string, dailySteps, totalDelta int) error

	// TopByDailySteps returns up to limit users ordered by daily steps
	// descending. Rank assignment is the caller's concern.
	TopByDailySteps(ctx context.Context, limit int) ([]domain.LeaderboardEntry, error)
}
