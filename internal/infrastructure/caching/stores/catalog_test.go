package stores

import (
	"errors"
	"testing"

	"github.com/statecraft-labs/statecraft-go/internal/domain/entities/catalog"
)

func newSeededCatalog() *CatalogStore {
	store := NewCatalogStore(nil)
	store.Seed()
	return store
}

func TestCatalogSeed(t *testing.T) {
	store := newSeededCatalog()

	if store.UserCount() != 2 {
		t.Errorf("UserCount() = %d; want 2", store.UserCount())
	}
	if store.ProductCount() != 5 {
		t.Errorf("ProductCount() = %d; want 5", store.ProductCount())
	}
	if _, found := store.GetUser("u-alice"); !found {
		t.Error("GetUser(u-alice) missed after seeding")
	}
	if _, found := store.GetProduct("p-laptop"); !found {
		t.Error("GetProduct(p-laptop) missed after seeding")
	}
}

func TestCatalogCreateUserGeneratesID(t *testing.T) {
	store := NewCatalogStore(nil)

	user := store.CreateUser(&catalog.User{Name: "Carol", Email: "carol@example.com"})
	if user.ID == "" {
		t.Error("CreateUser left ID empty; want generated id")
	}
	if user.CreatedAt.IsZero() || user.UpdatedAt.IsZero() {
		t.Error("CreateUser left timestamps unset")
	}
}

func TestCatalogUpdateUserPreferencesMerges(t *testing.T) {
	store := newSeededCatalog()

	// u-alice seeds with theme=dark, newsletter=true.
	user, err := store.UpdateUserPreferences("u-alice", map[string]any{"theme": "light", "locale": "en"})
	if err != nil {
		t.Fatalf("UpdateUserPreferences: %v", err)
	}

	if user.Preferences["theme"] != "light" {
		t.Errorf("theme = %v; want light", user.Preferences["theme"])
	}
	if user.Preferences["newsletter"] != true {
		t.Errorf("newsletter = %v; untouched key must survive the merge", user.Preferences["newsletter"])
	}
	if user.Preferences["locale"] != "en" {
		t.Errorf("locale = %v; want en", user.Preferences["locale"])
	}
}

func TestCatalogUpdateUnknownUser(t *testing.T) {
	store := newSeededCatalog()

	if _, err := store.UpdateUserPreferences("u-nobody", map[string]any{"k": "v"}); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("UpdateUserPreferences error = %v; want ErrUserNotFound", err)
	}
}

func TestCatalogSearchByCategory(t *testing.T) {
	store := newSeededCatalog()
	category := "electronics"

	results := store.SearchProducts(&catalog.ProductFilter{Category: &category})

	if len(results) != 3 {
		t.Fatalf("len(results) = %d; want 3", len(results))
	}
	for _, product := range results {
		if product.Category != "electronics" {
			t.Errorf("result %s has category %q", product.ID, product.Category)
		}
	}
}

func TestCatalogSearchPriceRange(t *testing.T) {
	store := newSeededCatalog()
	minPrice, maxPrice := 10.0, 100.0

	results := store.SearchProducts(&catalog.ProductFilter{MinPrice: &minPrice, MaxPrice: &maxPrice})

	// mouse 24.50, keyboard 89.99, mug 10.00; laptop and notebook out of range.
	if len(results) != 3 {
		t.Fatalf("len(results) = %d; want 3: %v", len(results), resultIDs(results))
	}
}

func TestCatalogSearchFiltersCombineWithAnd(t *testing.T) {
	store := newSeededCatalog()
	category := "electronics"
	maxPrice := 50.0

	results := store.SearchProducts(&catalog.ProductFilter{Category: &category, MaxPrice: &maxPrice})

	if len(results) != 1 || results[0].ID != "p-mouse" {
		t.Errorf("results = %v; want [p-mouse]", resultIDs(results))
	}
}

func TestCatalogSearchUnknownKeyMatchesAttribute(t *testing.T) {
	store := newSeededCatalog()

	results := store.SearchProducts(&catalog.ProductFilter{Extra: map[string]any{"brand": "Voltaic"}})

	if len(results) != 2 {
		t.Errorf("results = %v; want the two Voltaic products", resultIDs(results))
	}
}

func TestCatalogSearchAbsentAttributeMatchesNothing(t *testing.T) {
	store := newSeededCatalog()

	// No product carries this attribute; the filter silently matches nothing
	// instead of erroring.
	results := store.SearchProducts(&catalog.ProductFilter{Extra: map[string]any{"warranty_years": "3"}})

	if len(results) != 0 {
		t.Errorf("results = %v; want none for an attribute no product has", resultIDs(results))
	}
}

func TestCatalogUpdateProductPartial(t *testing.T) {
	store := newSeededCatalog()

	product, err := store.UpdateProduct("p-mug", &catalog.Product{Price: 12.50})
	if err != nil {
		t.Fatalf("UpdateProduct: %v", err)
	}

	if product.Price != 12.50 {
		t.Errorf("Price = %v; want 12.50", product.Price)
	}
	if product.Name != "Coffee Mug" {
		t.Errorf("Name = %q; unset fields must be preserved", product.Name)
	}
	if product.Category != "kitchen" {
		t.Errorf("Category = %q; unset fields must be preserved", product.Category)
	}
}

func TestCatalogRemoveProduct(t *testing.T) {
	store := newSeededCatalog()

	if !store.RemoveProduct("p-notebook") {
		t.Error("RemoveProduct = false for an existing product")
	}
	if store.RemoveProduct("p-notebook") {
		t.Error("second RemoveProduct = true; want false")
	}
	if _, found := store.GetProduct("p-notebook"); found {
		t.Error("GetProduct hit a removed product")
	}
}

func resultIDs(products []*catalog.Product) []string {
	ids := make([]string, len(products))
	for i, product := range products {
		ids[i] = product.ID
	}
	return ids
}
