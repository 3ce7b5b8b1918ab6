package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/amigo-fit/amigo-server/internal/domain"
)

// InventoryRepository implements the ownership ledger for PostgreSQL.
// The UNIQUE (user_id, catalog_id) constraint is what makes concurrent
// acquires of the same item resolve to a single grant.
type InventoryRepository struct {
	db *pgxpool.Pool
}

// NewInventoryRepository creates a new InventoryRepository
func NewInventoryRepository(db *pgxpool.Pool) *InventoryRepository {
	return &InventoryRepository{db: db}
}

func (r *InventoryRepository) ListEntries(ctx context.Context, userID string) ([]domain.InventoryEntry, error) {
	query := `
		SELECT entry_id, catalog_id, acquired_at
		FROM inventory_entries
		WHERE user_id = $1
		ORDER BY acquired_at ASC
	`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query inventory: %w", err)
	}
	defer rows.Close()

	var entries []domain.InventoryEntry
	for rows.Next() {
		var e domain.InventoryEntry
		if err := rows.Scan(&e.EntryID, &e.CatalogID, &e.AcquiredAt); err != nil {
			return nil, fmt.Errorf("failed to scan inventory entry: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read inventory rows: %w", err)
	}
	return entries, nil
}

// InsertEntryIfAbsent writes the entry unless the player already owns the
// catalog item. ON CONFLICT DO NOTHING means a lost race is not an error;
// the surviving row is fetched and returned instead.
func (r *InventoryRepository) InsertEntryIfAbsent(ctx context.Context, userID string, entry domain.InventoryEntry) (bool, *domain.InventoryEntry, error) {
	insert := `
		INSERT INTO inventory_entries (entry_id, user_id, catalog_id, acquired_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id, catalog_id) DO NOTHING
		RETURNING entry_id, catalog_id, acquired_at
	`
	var inserted domain.InventoryEntry
	err := r.db.QueryRow(ctx, insert, entry.EntryID, userID, entry.CatalogID, entry.AcquiredAt).
		Scan(&inserted.EntryID, &inserted.CatalogID, &inserted.AcquiredAt)
	if err == nil {
		return true, &inserted, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		if isForeignKeyViolation(err) {
			return false, nil, domain.ErrUserNotFound
		}
		return false, nil, fmt.Errorf("failed to insert inventory entry: %w", err)
	}

	// Conflict: someone owns it already, return their entry
	existing := `
		SELECT entry_id, catalog_id, acquired_at
		FROM inventory_entries
		WHERE user_id = $1 AND catalog_id = $2
	`
	var winner domain.InventoryEntry
	err = r.db.QueryRow(ctx, existing, userID, entry.CatalogID).
		Scan(&winner.EntryID, &winner.CatalogID, &winner.AcquiredAt)
	if err != nil {
		return false, nil, fmt.Errorf("failed to load existing inventory entry: %w", err)
	}
	return false, &winner, nil
}

func (r *InventoryRepository) ClearEntries(ctx context.Context, userID string) error {
	_, err := r.db.Exec(ctx, `DELETE FROM inventory_entries WHERE user_id = $1`, userID)
	if err != nil {
		return fmt.Errorf("failed to clear inventory: %w", err)
	}
	return nil
}
