package catalog

import (
	"context"
	"strings"
	"sync"
)

type memoryRepository struct {
	mu       sync.RWMutex
	products []Product
}

// NewMemoryRepository builds an in-memory catalog for testing and
// database-less development.
func NewMemoryRepository(products ...Product) Repository {
	return &memoryRepository{products: products}
}

func (r *memoryRepository) List(_ context.Context, filter Filter) ([]Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Product, 0)
	for _, p := range r.products {
		if !matches(p, filter) {
			continue
		}
		out = append(out, p)
		if len(out) == catalogPageSize {
			break
		}
	}
	return out, nil
}

// matches applies the same semantics as the SQL builder: substring facet
// match, OR within a facet, AND across facets, inclusive price range.
func matches(p Product, filter Filter) bool {
	if !facetMatches(p.SkinType, filter.SkinTypes) {
		return false
	}
	if !facetMatches(p.ProductType, filter.ProductTypes) {
		return false
	}
	if !facetMatches(p.Brand, filter.Brands) {
		return false
	}
	if !facetMatches(p.NotableEffects, filter.NotableEffects) {
		return false
	}
	if filter.MinPrice != nil && p.Price < *filter.MinPrice {
		return false
	}
	if filter.MaxPrice != nil && p.Price > *filter.MaxPrice {
		return false
	}
	return true
}

func facetMatches(value string, wanted []string) bool {
	if len(wanted) == 0 {
		return true
	}
	lower := strings.ToLower(value)
	for _, w := range wanted {
		if strings.Contains(lower, strings.ToLower(w)) {
			return true
		}
	}
	return false
}
