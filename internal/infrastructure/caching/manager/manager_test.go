package manager

import (
	"sync"
	"testing"
	"time"
)

const testTTL = 15 * time.Minute

func newTestManager() (*Manager, *time.Time) {
	m := NewManagerWithTTL(testTTL, nil)
	m.SeedCatalog()

	current := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)
	m.SessionsStore().SetNowFunc(func() time.Time { return current })
	return m, &current
}

func TestManagerDeleteSessionCascadesToCart(t *testing.T) {
	m, _ := newTestManager()

	session := m.CreateSession(nil, nil)
	if _, err := m.AddCartItem(session.ID, "p-mouse", 2); err != nil {
		t.Fatalf("AddCartItem: %v", err)
	}
	if m.CartCount() != 1 {
		t.Fatalf("CartCount() = %d; want 1", m.CartCount())
	}

	if !m.DeleteSession(session.ID) {
		t.Fatal("DeleteSession = false; want true")
	}

	if m.CartCount() != 0 {
		t.Errorf("CartCount() = %d after session delete; want 0 (cascade)", m.CartCount())
	}
}

func TestManagerDeleteUnknownSessionLeavesCartsAlone(t *testing.T) {
	m, _ := newTestManager()

	session := m.CreateSession(nil, nil)
	m.AddCartItem(session.ID, "p-mug", 1)

	if m.DeleteSession("no-such-session") {
		t.Error("DeleteSession of unknown id = true; want false")
	}
	if m.CartCount() != 1 {
		t.Errorf("CartCount() = %d; unrelated delete must not touch carts", m.CartCount())
	}
}

func TestManagerSweepCascadesCarts(t *testing.T) {
	m, current := newTestManager()

	stale := m.CreateSession(nil, nil)
	m.AddCartItem(stale.ID, "p-laptop", 1)

	*current = current.Add(10 * time.Minute)

	fresh := m.CreateSession(nil, nil)
	m.AddCartItem(fresh.ID, "p-mouse", 1)

	*current = current.Add(10 * time.Minute)

	if removed := m.SweepExpiredSessions(); removed != 1 {
		t.Fatalf("SweepExpiredSessions() = %d; want 1", removed)
	}

	if m.SessionCount() != 1 {
		t.Errorf("SessionCount() = %d; want 1", m.SessionCount())
	}
	if m.CartCount() != 1 {
		t.Errorf("CartCount() = %d; sweep must remove the dead session's cart", m.CartCount())
	}

	cart := m.GetCart(fresh.ID)
	if len(cart.Items) != 1 || cart.Items[0].ProductID != "p-mouse" {
		t.Errorf("surviving cart = %+v; want the fresh session's mouse line", cart.Items)
	}
}

func TestManagerCartSurvivesUntilCascade(t *testing.T) {
	m, current := newTestManager()

	session := m.CreateSession(nil, nil)
	m.AddCartItem(session.ID, "p-mug", 3)

	// Expire the session without sweeping. The cart store is liveness-blind,
	// so the record sits there until the cascade runs.
	*current = current.Add(testTTL + time.Minute)

	if _, found := m.GetSession(session.ID); found {
		t.Fatal("GetSession hit an expired session")
	}
	if m.CartCount() != 1 {
		t.Errorf("CartCount() = %d; cart should persist until sweep cascade", m.CartCount())
	}

	m.SweepExpiredSessions()

	if m.CartCount() != 0 {
		t.Errorf("CartCount() = %d after sweep; want 0", m.CartCount())
	}
}

func TestManagerSweepNeverDropsLiveSessionCarts(t *testing.T) {
	m := NewManagerWithTTL(testTTL, nil)
	m.SeedCatalog()

	// Sweep continuously while sessions and carts are being created. No live
	// session may ever lose its cart to the orphan pass.
	done := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(2)
	for s := 0; s < 2; s++ {
		go func() {
			defer wg.Done()
			for {
				select {
				case <-done:
					return
				default:
					m.SweepExpiredSessions()
				}
			}
		}()
	}

	var ids []string
	for i := 0; i < 200; i++ {
		session := m.CreateSession(nil, nil)
		if _, err := m.AddCartItem(session.ID, "p-mouse", 1); err != nil {
			t.Fatalf("AddCartItem: %v", err)
		}
		ids = append(ids, session.ID)
	}
	close(done)
	wg.Wait()

	for _, id := range ids {
		cart := m.GetCart(id)
		if len(cart.Items) != 1 {
			t.Fatalf("live session %s has %d cart items; want 1", id, len(cart.Items))
		}
	}
}

func TestManagerExportImportRoundTrip(t *testing.T) {
	m, _ := newTestManager()

	userID := "u-bob"
	session := m.CreateSession(&userID, map[string]any{"step": "payment"})
	m.AddCartItem(session.ID, "p-keyboard", 1)
	m.IncrementCounter()
	m.IncrementCounter()

	snapshot := m.ExportState()

	if len(snapshot.Sessions) != 1 || len(snapshot.Carts) != 1 || snapshot.Counter != 2 {
		t.Fatalf("snapshot = %d sessions, %d carts, counter %d; want 1, 1, 2",
			len(snapshot.Sessions), len(snapshot.Carts), snapshot.Counter)
	}

	replacement := NewManagerWithTTL(testTTL, nil)
	replacement.SeedCatalog()
	replacement.ImportState(snapshot)

	restored, found := replacement.GetSession(session.ID)
	if !found {
		t.Fatal("imported engine missed the session")
	}
	if restored.UserID == nil || *restored.UserID != "u-bob" {
		t.Errorf("UserID = %v; want u-bob", restored.UserID)
	}

	cart := replacement.GetCart(session.ID)
	if len(cart.Items) != 1 || cart.Items[0].ProductID != "p-keyboard" {
		t.Errorf("imported cart = %+v; want the keyboard line", cart.Items)
	}
	if replacement.GetCounter() != 2 {
		t.Errorf("GetCounter() = %d; want 2", replacement.GetCounter())
	}
}

func TestManagerStats(t *testing.T) {
	m, _ := newTestManager()

	session := m.CreateSession(nil, nil)
	m.GetCart(session.ID)
	m.IncrementCounter()

	stats := m.Stats()
	if stats.Sessions != 1 {
		t.Errorf("Sessions = %d; want 1", stats.Sessions)
	}
	if stats.Carts != 1 {
		t.Errorf("Carts = %d; want 1", stats.Carts)
	}
	if stats.Users != 2 || stats.Products != 5 {
		t.Errorf("Users, Products = %d, %d; want 2, 5", stats.Users, stats.Products)
	}
	if stats.Counter != 1 {
		t.Errorf("Counter = %d; want 1", stats.Counter)
	}
}
