package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/amigo-fit/amigo-server/internal/domain"
)

// SocialRepository implements the friend graph for PostgreSQL
type SocialRepository struct {
	db *pgxpool.Pool
}

// NewSocialRepository creates a new SocialRepository
func NewSocialRepository(db *pgxpool.Pool) *SocialRepository {
	return &SocialRepository{db: db}
}

func (r *SocialRepository) CreateFriendRequest(ctx context.Context, request *domain.FriendRequest) error {
	query := `
		INSERT INTO friend_requests (request_id, from_user_id, to_user_id, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := r.db.Exec(ctx, query, request.ID, request.FromID, request.ToID, request.Status, request.CreatedAt, request.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err, "") {
			return domain.ErrFriendRequestExists
		}
		if isForeignKeyViolation(err) {
			return domain.ErrUserNotFound
		}
		return fmt.Errorf("failed to insert friend request: %w", err)
	}
	return nil
}

func (r *SocialRepository) GetFriendRequest(ctx context.Context, requestID string) (*domain.FriendRequest, error) {
	query := `
		SELECT request_id, from_user_id, to_user_id, status, created_at, updated_at
		FROM friend_requests
		WHERE request_id = $1
	`
	var req domain.FriendRequest
	err := r.db.QueryRow(ctx, query, requestID).
		Scan(&req.ID, &req.FromID, &req.ToID, &req.Status, &req.CreatedAt, &req.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrFriendRequestNotFound
		}
		return nil, fmt.Errorf("failed to get friend request: %w", err)
	}
	return &req, nil
}

func (r *SocialRepository) DeleteFriendRequest(ctx context.Context, requestID string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM friend_requests WHERE request_id = $1`, requestID)
	if err != nil {
		return fmt.Errorf("failed to delete friend request: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrFriendRequestNotFound
	}
	return nil
}

func (r *SocialRepository) HasPendingRequestBetween(ctx context.Context, userA, userB string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM friend_requests
			WHERE (from_user_id = $1 AND to_user_id = $2)
			   OR (from_user_id = $2 AND to_user_id = $1)
		)
	`
	var exists bool
	if err := r.db.QueryRow(ctx, query, userA, userB).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check pending requests: %w", err)
	}
	return exists, nil
}

func (r *SocialRepository) ListIncomingRequests(ctx context.Context, userID string) ([]domain.FriendRequest, error) {
	return r.listRequests(ctx, `to_user_id`, userID)
}

func (r *SocialRepository) ListOutgoingRequests(ctx context.Context, userID string) ([]domain.FriendRequest, error) {
	return r.listRequests(ctx, `from_user_id`, userID)
}

func (r *SocialRepository) listRequests(ctx context.Context, column, userID string) ([]domain.FriendRequest, error) {
	query := `
		SELECT request_id, from_user_id, to_user_id, status, created_at, updated_at
		FROM friend_requests
		WHERE ` + column + ` = $1
		ORDER BY created_at ASC
	`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query friend requests: %w", err)
	}
	defer rows.Close()

	var requests []domain.FriendRequest
	for rows.Next() {
		var req domain.FriendRequest
		if err := rows.Scan(&req.ID, &req.FromID, &req.ToID, &req.Status, &req.CreatedAt, &req.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan friend request: %w", err)
		}
		requests = append(requests, req)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read friend request rows: %w", err)
	}
	return requests, nil
}

func (r *SocialRepository) AreFriends(ctx context.Context, userA, userB string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM friendships WHERE user_id = $1 AND friend_id = $2)`
	var exists bool
	if err := r.db.QueryRow(ctx, query, userA, userB).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check friendship: %w", err)
	}
	return exists, nil
}

// CreateFriendship writes both directed edges and bumps both friend
// counts in one transaction. A pre-existing edge aborts with
// domain.ErrAlreadyFriends and changes nothing.
func (r *SocialRepository) CreateFriendship(ctx context.Context, userA, userB string) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	insert := `
		INSERT INTO friendships (user_id, friend_id)
		VALUES ($1, $2), ($2, $1)
		ON CONFLICT (user_id, friend_id) DO NOTHING
	`
	tag, err := tx.Exec(ctx, insert, userA, userB)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrUserNotFound
		}
		return fmt.Errorf("failed to insert friendship edges: %w", err)
	}
	// Anything short of both edges means the friendship (or a stray
	// half of it) already exists; abort before touching the counters
	if tag.RowsAffected() != 2 {
		return domain.ErrAlreadyFriends
	}

	bump := `UPDATE users SET friend_count = friend_count + 1, updated_at = NOW() WHERE user_id = ANY($1)`
	if _, err := tx.Exec(ctx, bump, []string{userA, userB}); err != nil {
		return fmt.Errorf("failed to update friend counts: %w", err)
	}

	return tx.Commit(ctx)
}

func (r *SocialRepository) ListFriends(ctx context.Context, userID string) ([]domain.Friend, error) {
	query := `
		SELECT f.friend_id, u.username, f.created_at
		FROM friendships f
		JOIN users u ON u.user_id = f.friend_id
		WHERE f.user_id = $1
		ORDER BY f.created_at ASC
	`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query friends: %w", err)
	}
	defer rows.Close()

	var friends []domain.Friend
	for rows.Next() {
		var f domain.Friend
		if err := rows.Scan(&f.UserID, &f.Username, &f.Since); err != nil {
			return nil, fmt.Errorf("failed to scan friend: %w", err)
		}
		friends = append(friends, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read friend rows: %w", err)
	}
	return friends, nil
}
