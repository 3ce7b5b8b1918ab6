package repository

import "context"

// Wallet defines the interface for coin balance persistence.
// The balance is a single non-negative integer per player. Debit is the
// only operation allowed to reduce it and must be atomic: it fails with
// domain.ErrInsufficientFunds, leaving the balance untouched, rather than
// ever letting it go negative.
type Wallet interface {
	GetBalance(ctx context.Context, userID string) (int, error)
	Debit(ctx context.Context, userID string, amount int) (int, error)
	Credit(ctx context.Context, userID string, amount int) (int, error)
}
