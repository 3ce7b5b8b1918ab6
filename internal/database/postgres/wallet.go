package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/amigo-fit/amigo-server/internal/domain"
)

// WalletRepository implements the wallet repository for PostgreSQL.
// The balance lives on the users row; the conditional update in Debit is
// what keeps it non-negative under concurrent spends.
type WalletRepository struct {
	db *pgxpool.Pool
}

// NewWalletRepository creates a new WalletRepository
func NewWalletRepository(db *pgxpool.Pool) *WalletRepository {
	return &WalletRepository{db: db}
}

func (r *WalletRepository) GetBalance(ctx context.Context, userID string) (int, error) {
	var coins int
	err := r.db.QueryRow(ctx, `SELECT coins FROM users WHERE user_id = $1`, userID).Scan(&coins)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, domain.ErrUserNotFound
		}
		return 0, fmt.Errorf("failed to get balance: %w", err)
	}
	return coins, nil
}

// Debit subtracts amount if and only if the balance covers it
func (r *WalletRepository) Debit(ctx context.Context, userID string, amount int) (int, error) {
	if amount < 0 {
		return 0, fmt.Errorf("%w: debit amount cannot be negative", domain.ErrInvalidInput)
	}

	query := `
		UPDATE users
		SET coins = coins - $2, updated_at = NOW()
		WHERE user_id = $1 AND coins >= $2
		RETURNING coins
	`
	var coins int
	err := r.db.QueryRow(ctx, query, userID, amount).Scan(&coins)
	if err == nil {
		return coins, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return 0, fmt.Errorf("failed to debit: %w", err)
	}

	// No row matched: either the user is unknown or the balance was short
	if _, err := r.GetBalance(ctx, userID); err != nil {
		return 0, err
	}
	return 0, domain.ErrInsufficientFunds
}

func (r *WalletRepository) Credit(ctx context.Context, userID string, amount int) (int, error) {
	if amount < 0 {
		return 0, fmt.Errorf("%w: credit amount cannot be negative", domain.ErrInvalidInput)
	}

	query := `
		UPDATE users
		SET coins = coins + $2, updated_at = NOW()
		WHERE user_id = $1
		RETURNING coins
	`
	var coins int
	err := r.db.QueryRow(ctx, query, userID, amount).Scan(&coins)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, domain.ErrUserNotFound
		}
		return 0, fmt.Errorf("failed to credit: %w", err)
	}
	return coins, nil
}
