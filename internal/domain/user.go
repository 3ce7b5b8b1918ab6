package domain

import "time"

// Default profile values applied on registration
const (
	DefaultPetName  = "Sunny"
	DefaultPetLevel = 1
)

// User represents a registered player profile.
// ID is the opaque stable identifier issued by the external identity
// provider; the service never authenticates users itself.
type User struct {
	ID          string    `json:"user_id"`
	Email       string    `json:"email"`
	Username    string    `json:"username"`
	Coins       int       `json:"coins"`
	DailySteps  int       `json:"daily_steps"`
	TotalSteps  int       `json:"total_steps"`
	FriendCount int       `json:"friend_count"`
	PetName     string    `json:"pet_name"`
	PetLevel    int       `json:"pet_level"`
	CreatedAt   time.Time `json:"created_at"`

	// EquippedItems are the catalog IDs of owned cosmetics currently
	// shown on the pet, in the order the user equipped them.
	EquippedItems []int `json:"equipped_items"`
}

// LeaderboardEntry is one ranked row of the daily-steps leaderboard
type LeaderboardEntry struct {
	Rank     int    `json:"rank"`
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	Steps    int    `json:"steps"`
}
