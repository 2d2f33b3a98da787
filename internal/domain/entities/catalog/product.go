package catalog

import (
	"maps"
	"reflect"
)

// Product is a catalog-owned item record, immutable once seeded except
// through explicit update.
type Product struct {
	ID         string         `json:"id"`
	Name       string         `json:"name"`
	Price      float64        `json:"price"`
	Category   string         `json:"category"`
	Attributes map[string]any `json:"attributes"`
}

// Clone returns a deep copy so callers never hold pointers into store-owned state.
func (p *Product) Clone() *Product {
	if p == nil {
		return nil
	}
	clone := *p
	clone.Attributes = maps.Clone(p.Attributes)
	return &clone
}

// ProductFilter carries search criteria for the product catalog. Recognized
// fields are ANDed together; Extra keys are compared by exact equality against
// the same-named product attribute and match nothing when the attribute is
// absent. That permissive fallthrough is kept for compatibility with existing
// clients even though it silently swallows typos in filter names.
type ProductFilter struct {
	Category *string
	MinPrice *float64
	MaxPrice *float64
	Extra    map[string]any
}

// Matches reports whether the product satisfies every provided criterion.
func (f *ProductFilter) Matches(p *Product) bool {
	if f == nil {
		return true
	}
	if f.Category != nil && p.Category != *f.Category {
		return false
	}
	if f.MinPrice != nil && p.Price < *f.MinPrice {
		return false
	}
	if f.MaxPrice != nil && p.Price > *f.MaxPrice {
		return false
	}
	for key, want := range f.Extra {
		got, exists := p.Attributes[key]
		if !exists || !reflect.DeepEqual(got, want) {
			return false
		}
	}
	return true
}
