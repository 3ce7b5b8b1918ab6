package domain

import "time"

// InventoryEntry records a player's ownership of one catalog item.
// EntryID is an opaque unique record ID; CatalogID references
// CatalogItem.ID. For a given player at most one entry exists per
// CatalogID. Entries are never mutated after creation.
type InventoryEntry struct {
	EntryID    string    `json:"entry_id"`
	CatalogID  int       `json:"catalog_id"`
	AcquiredAt time.Time `json:"acquired_at"`
}
