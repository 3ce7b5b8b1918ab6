package domain

// Rarity is the draw-rate tier of a catalog item
type Rarity string

const (
	RarityCommon    Rarity = "common"
	RarityRare      Rarity = "rare"
	RarityEpic      Rarity = "epic"
	RarityLegendary Rarity = "legendary"
)

// Valid reports whether r is one of the known rarity tiers
func (r Rarity) Valid() bool {
	switch r {
	case RarityCommon, RarityRare, RarityEpic, RarityLegendary:
		return true
	}
	return false
}

// CatalogItem is one obtainable cosmetic in the fixed catalog.
// ID is stable across releases and is the de-duplication key for ownership.
// Weight is the relative draw weight, not a percentage.
type CatalogItem struct {
	ID       int     `json:"item_id"`
	Name     string  `json:"name"`
	Rarity   Rarity  `json:"rarity"`
	Weight   float64 `json:"weight"`
	Price    int     `json:"price"`
	AssetRef string  `json:"asset_ref"`
}

// PullResult is the per-draw outcome handed back to the caller.
// It is ephemeral and never persisted. NewlyGranted is false when the
// player already owned the item; that is a normal outcome, not an error.
type PullResult struct {
	Item         CatalogItem `json:"item"`
	NewlyGranted bool        `json:"newly_granted"`
}
