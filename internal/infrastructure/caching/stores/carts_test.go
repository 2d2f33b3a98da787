package stores

import (
	"errors"
	"math"
	"testing"

	"github.com/statecraft-labs/statecraft-go/internal/domain/entities/catalog"
)

func newTestCartsStore() (*CartsStore, *CatalogStore) {
	catalogStore := NewCatalogStore(nil)
	catalogStore.Seed()
	return NewCartsStore(catalogStore, nil), catalogStore
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestCartsLazyCreation(t *testing.T) {
	store, _ := newTestCartsStore()

	if store.Count() != 0 {
		t.Fatalf("Count() = %d before first access; want 0", store.Count())
	}

	cart := store.Get("sess-1")
	if cart == nil {
		t.Fatal("Get returned nil cart")
	}
	if len(cart.Items) != 0 || cart.Total != 0 {
		t.Errorf("fresh cart = %d items, total %v; want empty", len(cart.Items), cart.Total)
	}
	if store.Count() != 1 {
		t.Errorf("Count() = %d after first access; want 1", store.Count())
	}
}

func TestCartsAddItemAggregatesQuantity(t *testing.T) {
	store, _ := newTestCartsStore()

	if _, err := store.AddItem("sess-1", "p-mouse", 2); err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	cart, err := store.AddItem("sess-1", "p-mouse", 3)
	if err != nil {
		t.Fatalf("AddItem: %v", err)
	}

	if len(cart.Items) != 1 {
		t.Fatalf("len(Items) = %d; want 1 (same product must merge)", len(cart.Items))
	}
	if cart.Items[0].Quantity != 5 {
		t.Errorf("Quantity = %d; want 5", cart.Items[0].Quantity)
	}
	if want := 5 * 24.50; !almostEqual(cart.Total, want) {
		t.Errorf("Total = %v; want %v", cart.Total, want)
	}
}

func TestCartsAddItemSnapshotsNameAndPrice(t *testing.T) {
	store, catalogStore := newTestCartsStore()

	if _, err := store.AddItem("sess-1", "p-mug", 1); err != nil {
		t.Fatalf("AddItem: %v", err)
	}

	// A later catalog price change must not reprice lines already in a cart.
	if _, err := catalogStore.UpdateProduct("p-mug", &catalog.Product{Price: 99.99, Name: "Deluxe Mug"}); err != nil {
		t.Fatalf("UpdateProduct: %v", err)
	}

	cart := store.Get("sess-1")
	if cart.Items[0].Price != 10.00 {
		t.Errorf("Price = %v; want add-time snapshot 10.00", cart.Items[0].Price)
	}
	if cart.Items[0].Name != "Coffee Mug" {
		t.Errorf("Name = %q; want add-time snapshot %q", cart.Items[0].Name, "Coffee Mug")
	}
	if !almostEqual(cart.Total, 10.00) {
		t.Errorf("Total = %v; want 10.00", cart.Total)
	}
}

func TestCartsAddItemUnknownProduct(t *testing.T) {
	store, _ := newTestCartsStore()

	_, err := store.AddItem("sess-1", "p-unknown", 1)
	if !errors.Is(err, ErrProductNotFound) {
		t.Errorf("AddItem error = %v; want ErrProductNotFound", err)
	}
	if store.Count() != 0 {
		t.Errorf("Count() = %d; failed add must not create a cart", store.Count())
	}
}

func TestCartsAddItemInvalidQuantity(t *testing.T) {
	store, _ := newTestCartsStore()

	for _, quantity := range []int{0, -1, -100} {
		if _, err := store.AddItem("sess-1", "p-mouse", quantity); !errors.Is(err, ErrInvalidQuantity) {
			t.Errorf("AddItem(quantity=%d) error = %v; want ErrInvalidQuantity", quantity, err)
		}
	}
}

func TestCartsTotalSpansMultipleLines(t *testing.T) {
	store, _ := newTestCartsStore()

	store.AddItem("sess-1", "p-keyboard", 1) // 89.99
	store.AddItem("sess-1", "p-notebook", 4) // 27.00
	cart, err := store.AddItem("sess-1", "p-mug", 2)
	if err != nil {
		t.Fatalf("AddItem: %v", err)
	}

	if want := 89.99 + 4*6.75 + 2*10.00; !almostEqual(cart.Total, want) {
		t.Errorf("Total = %v; want %v", cart.Total, want)
	}
}

func TestCartsRemoveItemDropsEntireLine(t *testing.T) {
	store, _ := newTestCartsStore()

	store.AddItem("sess-1", "p-mouse", 5)
	store.AddItem("sess-1", "p-mug", 1)

	cart := store.RemoveItem("sess-1", "p-mouse")

	if len(cart.Items) != 1 {
		t.Fatalf("len(Items) = %d; want 1 (whole line removed, not decremented)", len(cart.Items))
	}
	if cart.Items[0].ProductID != "p-mug" {
		t.Errorf("remaining line = %s; want p-mug", cart.Items[0].ProductID)
	}
	if !almostEqual(cart.Total, 10.00) {
		t.Errorf("Total = %v; want 10.00", cart.Total)
	}
}

func TestCartsRemoveAbsentItemIsNoOp(t *testing.T) {
	store, _ := newTestCartsStore()

	store.AddItem("sess-1", "p-mouse", 2)
	cart := store.RemoveItem("sess-1", "p-laptop")

	if len(cart.Items) != 1 || cart.Items[0].Quantity != 2 {
		t.Errorf("cart changed by removing an absent product: %+v", cart.Items)
	}
}

func TestCartsClearPreservesRecord(t *testing.T) {
	store, _ := newTestCartsStore()

	store.AddItem("sess-1", "p-laptop", 1)
	created := store.Get("sess-1").CreatedAt

	cart := store.Clear("sess-1")

	if len(cart.Items) != 0 || cart.Total != 0 {
		t.Errorf("cleared cart = %d items, total %v; want empty", len(cart.Items), cart.Total)
	}
	if !cart.CreatedAt.Equal(created) {
		t.Errorf("CreatedAt = %v; want original %v (record must survive Clear)", cart.CreatedAt, created)
	}
	if store.Count() != 1 {
		t.Errorf("Count() = %d after Clear; want 1", store.Count())
	}
}

func TestCartsRemoveCascadeHook(t *testing.T) {
	store, _ := newTestCartsStore()

	store.AddItem("sess-1", "p-mouse", 1)

	if !store.Remove("sess-1") {
		t.Error("Remove = false for an existing cart; want true")
	}
	if store.Remove("sess-1") {
		t.Error("second Remove = true; want false")
	}

	// A later access starts over with a fresh empty cart.
	cart := store.Get("sess-1")
	if len(cart.Items) != 0 {
		t.Errorf("recreated cart has %d items; want 0", len(cart.Items))
	}
}

func TestCartsSweepOrphansChecksLivenessPerCart(t *testing.T) {
	store, _ := newTestCartsStore()

	store.AddItem("sess-dead", "p-mouse", 1)
	store.AddItem("sess-live", "p-laptop", 1)

	removed := store.SweepOrphans(func(sessionID string) bool {
		return sessionID == "sess-live"
	})

	if removed != 1 {
		t.Errorf("SweepOrphans() = %d; want 1", removed)
	}
	if store.Count() != 1 {
		t.Fatalf("Count() = %d; want 1", store.Count())
	}

	cart := store.Get("sess-live")
	if len(cart.Items) != 1 || cart.Items[0].ProductID != "p-laptop" {
		t.Errorf("live session's cart = %+v; want the laptop line intact", cart.Items)
	}
}

func TestCartsSweepOrphansSeesSessionsCreatedMidSweep(t *testing.T) {
	store, _ := newTestCartsStore()

	// A session born after a sweep began is invisible to any id set captured
	// up front. The sweep must ask about each cart's session when the cart is
	// actually considered, so the fresh cart answers live and survives.
	staleSnapshot := map[string]bool{}

	store.AddItem("sess-new", "p-mouse", 2)

	liveNow := map[string]bool{"sess-new": true}
	store.SweepOrphans(func(sessionID string) bool {
		if staleSnapshot[sessionID] {
			t.Fatal("liveness answered from the stale snapshot")
		}
		return liveNow[sessionID]
	})

	cart := store.Get("sess-new")
	if len(cart.Items) != 1 || cart.Items[0].Quantity != 2 {
		t.Errorf("cart created mid-sweep = %+v; want the mouse line intact", cart.Items)
	}
}

func TestCartsReturnedCartIsACopy(t *testing.T) {
	store, _ := newTestCartsStore()

	store.AddItem("sess-1", "p-mouse", 1)
	cart := store.Get("sess-1")
	cart.Items[0].Quantity = 999
	cart.Total = 0

	fresh := store.Get("sess-1")
	if fresh.Items[0].Quantity != 1 {
		t.Errorf("Quantity = %d; caller mutation leaked into the store", fresh.Items[0].Quantity)
	}
}
