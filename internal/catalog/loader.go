package catalog

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/amigo-fit/amigo-server/internal/domain"
)

// Config represents the JSON configuration for the gacha/shop catalog
type Config struct {
	Version     string `json:"version"`
	Description string `json:"description"`

	Items []Def `json:"items"`
}

// Def represents a single catalog entry in the JSON.
// ID must be unique and stable across releases: it is the de-duplication
// key for player ownership.
type Def struct {
	ID       int     `json:"id"`
	Name     string  `json:"name"`
	Rarity   string  `json:"rarity"`
	Weight   float64 `json:"weight"`
	Price    int     `json:"price"`
	AssetRef string  `json:"asset_ref"`
}

// Loader handles loading and validating the catalog configuration
type Loader interface {
	Load(path string) (*Config, error)
	Validate(config *Config) error
}

type catalogLoader struct{}

// NewLoader creates a new Loader instance
func NewLoader() Loader {
	return &catalogLoader{}
}

// Load reads and parses a catalog JSON file
func (l *catalogLoader) Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}

	var config Config
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse catalog file: %w", err)
	}

	return &config, nil
}

// Validate checks the catalog configuration for errors.
// The catalog is static and loaded once at startup, so any failure here
// is a configuration bug and fatal.
func (l *catalogLoader) Validate(config *Config) error {
	if config == nil {
		return fmt.Errorf("%w: config is nil", domain.ErrInvalidCatalog)
	}
	if len(config.Items) == 0 {
		return fmt.Errorf("%w: no items defined", domain.ErrInvalidCatalog)
	}

	seenIDs := make(map[int]bool, len(config.Items))
	totalWeight := 0.0

	for i := range config.Items {
		def := &config.Items[i]

		if def.ID <= 0 {
			return fmt.Errorf("%w: item at index %d has non-positive id %d", domain.ErrInvalidCatalog, i, def.ID)
		}
		if seenIDs[def.ID] {
			return fmt.Errorf("%w: duplicate item id %d", domain.ErrInvalidCatalog, def.ID)
		}
		seenIDs[def.ID] = true

		if def.Name == "" {
			return fmt.Errorf("%w: item %d has empty name", domain.ErrInvalidCatalog, def.ID)
		}
		if !domain.Rarity(def.Rarity).Valid() {
			return fmt.Errorf("%w: item %d has unknown rarity %q", domain.ErrInvalidCatalog, def.ID, def.Rarity)
		}
		if def.Weight <= 0 {
			return fmt.Errorf("%w: item %d has non-positive weight %v", domain.ErrInvalidCatalog, def.ID, def.Weight)
		}
		if def.Price <= 0 {
			return fmt.Errorf("%w: item %d has non-positive price %d", domain.ErrInvalidCatalog, def.ID, def.Price)
		}

		totalWeight += def.Weight
	}

	if totalWeight <= 0 {
		return fmt.Errorf("%w: total weight must be positive", domain.ErrInvalidCatalog)
	}

	return nil
}

// CatalogItems converts the validated config into domain items,
// preserving file order. Draw probabilities depend on this order staying
// stable, so callers must not re-sort the result.
func (c *Config) CatalogItems() []domain.CatalogItem {
	items := make([]domain.CatalogItem, 0, len(c.Items))
	for _, def := range c.Items {
		items = append(items, domain.CatalogItem{
			ID:       def.ID,
			Name:     def.Name,
			Rarity:   domain.Rarity(def.Rarity),
			Weight:   def.Weight,
			Price:    def.Price,
			AssetRef: def.AssetRef,
		})
	}
	return items
}
