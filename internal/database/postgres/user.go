package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/amigo-fit/amigo-server/internal/domain"
)

// UserRepository implements the user repository for PostgreSQL
type UserRepository struct {
	db *pgxpool.Pool
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{db: db}
}

const userColumns = `user_id, email, username, coins, daily_steps, total_steps, friend_count, pet_name, pet_level, equipped_items, created_at`

func scanUser(row pgx.Row) (*domain.User, error) {
	var u domain.User
	err := row.Scan(&u.ID, &u.Email, &u.Username, &u.Coins, &u.DailySteps, &u.TotalSteps,
		&u.FriendCount, &u.PetName, &u.PetLevel, &u.EquippedItems, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to scan user: %w", err)
	}
	return &u, nil
}

// CreateUserIfMissing inserts the profile unless a row for user.ID
// already exists. An existing row is never touched.
func (r *UserRepository) CreateUserIfMissing(ctx context.Context, user *domain.User) (bool, error) {
	query := `
		INSERT INTO users (user_id, email, username, coins, pet_name, pet_level)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (user_id) DO NOTHING
	`
	tag, err := r.db.Exec(ctx, query, user.ID, user.Email, user.Username, user.Coins, user.PetName, user.PetLevel)
	if err != nil {
		if isUniqueViolation(err, constraintUsersUsernameKey) {
			return false, domain.ErrUsernameTaken
		}
		return false, fmt.Errorf("failed to insert user: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

func (r *UserRepository) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE user_id = $1`
	return scanUser(r.db.QueryRow(ctx, query, userID))
}

func (r *UserRepository) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE username = $1`
	return scanUser(r.db.QueryRow(ctx, query, username))
}

func (r *UserRepository) UpdateUsername(ctx context.Context, userID, username string) error {
	query := `UPDATE users SET username = $2, updated_at = NOW() WHERE user_id = $1`
	tag, err := r.db.Exec(ctx, query, userID, username)
	if err != nil {
		if isUniqueViolation(err, constraintUsersUsernameKey) {
			return domain.ErrUsernameTaken
		}
		return fmt.Errorf("failed to update username: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) UpdatePetName(ctx context.Context, userID, petName string) error {
	query := `UPDATE users SET pet_name = $2, updated_at = NOW() WHERE user_id = $1`
	tag, err := r.db.Exec(ctx, query, userID, petName)
	if err != nil {
		return fmt.Errorf("failed to update pet name: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// UpdateEquippedItems replaces the equipped cosmetics list wholesale
func (r *UserRepository) UpdateEquippedItems(ctx context.Context, userID string, catalogIDs []int) error {
	if catalogIDs == nil {
		catalogIDs = []int{}
	}
	query := `UPDATE users SET equipped_items = $2, updated_at = NOW() WHERE user_id = $1`
	tag, err := r.db.Exec(ctx, query, userID, catalogIDs)
	if err != nil {
		return fmt.Errorf("failed to update equipped items: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// UpdateSteps writes the daily figure and bumps the lifetime total in a
// single statement so a crash can never apply one without the other.
func (r *UserRepository) UpdateSteps(ctx context.Context, userID string, dailySteps, totalDelta int) error {
	query := `
		UPDATE users
		SET daily_steps = $2, total_steps = total_steps + $3, updated_at = NOW()
		WHERE user_id = $1
	`
	tag, err := r.db.Exec(ctx, query, userID, dailySteps, totalDelta)
	if err != nil {
		return fmt.Errorf("failed to update steps: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// ResetDailySteps zeroes every non-zero daily counter at the day
// boundary. Lifetime totals are untouched.
func (r *UserRepository) ResetDailySteps(ctx context.Context) (int64, error) {
	query := `
		UPDATE users
		SET daily_steps = 0, updated_at = NOW()
		WHERE daily_steps <> 0
	`
	tag, err := r.db.Exec(ctx, query)
	if err != nil {
		return 0, fmt.Errorf("failed to reset daily steps: %w", err)
	}
	return tag.RowsAffected(), nil
}

func (r *UserRepository) TopByDailySteps(ctx context.Context, limit int) ([]domain.LeaderboardEntry, error) {
	query := `
		SELECT user_id, username, daily_steps
		FROM users
		ORDER BY daily_steps DESC, username ASC
		LIMIT $1
	`
	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query leaderboard: %w", err)
	}
	defer rows.Close()

	var entries []domain.LeaderboardEntry
	for rows.Next() {
		var e domain.LeaderboardEntry
		if err := rows.Scan(&e.UserID, &e.Username, &e.Steps); err != nil {
			return nil, fmt.Errorf("failed to scan leaderboard row: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read leaderboard rows: %w", err)
	}
	return entries, nil
}
