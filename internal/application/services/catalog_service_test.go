package services

import "testing"

func TestCatalogServiceSearchParsesPriceBounds(t *testing.T) {
	m, _ := newTestEngine()
	catalogService := NewCatalogService(m, nil)

	results := catalogService.SearchProducts(map[string]string{
		"minPrice": "10",
		"maxPrice": "100",
	})

	if len(results) != 3 {
		t.Errorf("len(results) = %d; want 3", len(results))
	}
}

func TestCatalogServiceSearchIgnoresUnparseablePrice(t *testing.T) {
	m, _ := newTestEngine()
	catalogService := NewCatalogService(m, nil)

	// A garbage bound parses to nothing and drops out of the filter rather
	// than failing the search.
	results := catalogService.SearchProducts(map[string]string{
		"category": "electronics",
		"maxPrice": "not-a-number",
	})

	if len(results) != 3 {
		t.Errorf("len(results) = %d; want all 3 electronics", len(results))
	}
}

func TestCatalogServiceSearchUnknownKeyFallsThroughToAttributes(t *testing.T) {
	m, _ := newTestEngine()
	catalogService := NewCatalogService(m, nil)

	byBrand := catalogService.SearchProducts(map[string]string{"brand": "Voltaic"})
	if len(byBrand) != 2 {
		t.Errorf("brand search returned %d products; want 2", len(byBrand))
	}

	byNothing := catalogService.SearchProducts(map[string]string{"madeOn": "mars"})
	if len(byNothing) != 0 {
		t.Errorf("search on an attribute no product has returned %d products; want 0", len(byNothing))
	}
}
