package gacha

import (
	"fmt"

	"github.com/amigo-fit/amigo-server/internal/domain"
)

// Engine performs weighted random selection over a fixed catalog.
// It holds no state between draws beyond the catalog itself, so a single
// Engine is safe for concurrent use as long as its RandomSource is.
type Engine struct {
	items []domain.CatalogItem
	total float64
	src   RandomSource
}

// NewEngine validates the catalog and builds an engine over it.
// The catalog order is captured once and never re-sorted; cumulative-weight
// inversion is only correct when the iteration order is stable across draws.
func NewEngine(items []domain.CatalogItem, src RandomSource) (*Engine, error) {
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: catalog is empty", domain.ErrInvalidCatalog)
	}

	total := 0.0
	for _, item := range items {
		if item.Weight <= 0 {
			return nil, fmt.Errorf("%w: item %d must have positive weight, got %v", domain.ErrInvalidCatalog, item.ID, item.Weight)
		}
		total += item.Weight
	}

	if src == nil {
		src = DefaultSource()
	}

	catalog := make([]domain.CatalogItem, len(items))
	copy(catalog, items)

	return &Engine{items: catalog, total: total, src: src}, nil
}

// Draw selects one catalog item, honoring relative weights.
// A uniform value in [0, total) is walked down the catalog in its fixed
// order; the first item whose weight exhausts the remainder wins. If
// floating-point rounding leaves the remainder positive after the full
// walk, the last item is returned deterministically.
func (e *Engine) Draw() domain.CatalogItem {
	r := e.src.Float64() * e.total

	for _, item := range e.items {
		r -= item.Weight
		if r <= 0 {
			return item
		}
	}

	return e.items[len(e.items)-1]
}

// DrawBatch performs n independent draws and returns all n results.
// Draws are i.i.d.: an earlier outcome never changes later weights. The
// result is fully materialized so callers can persist the whole batch.
func (e *Engine) DrawBatch(n int) []domain.CatalogItem {
	results := make([]domain.CatalogItem, 0, n)
	for i := 0; i < n; i++ {
		results = append(results, e.Draw())
	}
	return results
}

// Items returns a copy of the catalog in draw order
func (e *Engine) Items() []domain.CatalogItem {
	items := make([]domain.CatalogItem, len(e.items))
	copy(items, e.items)
	return items
}

// TotalWeight returns the catalog's weight sum
func (e *Engine) TotalWeight() float64 {
	return e.total
}
