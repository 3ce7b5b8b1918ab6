package repository

import (
	"context"

	"github.com/amigo-fit/amigo-server/internal/domain"
)

// Inventory defines the interface for ownership ledger persistence.
// The store only needs existence-check-by-catalog-id and
// create-if-absent semantics; no richer query surface is assumed.
type Inventory interface {
	ListEntries(ctx context.Context, userID string) ([]domain.InventoryEntry, error)

	// InsertEntryIfAbsent writes the entry unless the player already owns
	// entry.CatalogID. It reports whether the insert happened and returns
	// the authoritative entry either way: the new row on insert, the
	// pre-existing row when a concurrent or earlier acquire won.
	InsertEntryIfAbsent(ctx context.Context, userID string, entry domain.InventoryEntry) (bool, *domain.InventoryEntry, error)

	// ClearEntries removes every entry for the player (test/reset utility)
	ClearEntries(ctx context.Context, userID string) error
}
