// Package manager provides centralized store operations for the state engine
package manager

import (
	"time"

	"github.com/statecraft-labs/statecraft-go/internal/domain/entities/catalog"
	"github.com/statecraft-labs/statecraft-go/internal/infrastructure/caching/interfaces"
	"github.com/statecraft-labs/statecraft-go/internal/infrastructure/caching/stores"
	"github.com/statecraft-labs/statecraft-go/internal/infrastructure/caching/types"
	"github.com/statecraft-labs/statecraft-go/internal/infrastructure/observability/logging"
	"github.com/statecraft-labs/statecraft-go/pkg/config"
)

// Interface assertion to ensure Manager implements the full cache contract.
var _ interfaces.Cache = (*Manager)(nil)

// Manager coordinates the specialized stores and owns the cross-store rules:
// deleting a session cascades to its cart, and the expiry sweep cascades the
// carts of every session it removes.
type Manager struct {
	sessionsStore *stores.SessionsStore
	cartsStore    *stores.CartsStore
	catalogStore  *stores.CatalogStore
	counterStore  *stores.CounterStore
	logger        *logging.ChanneledLogger
}

// NewManager wires the stores together using the configured session TTL.
func NewManager(logger *logging.ChanneledLogger) *Manager {
	return NewManagerWithTTL(config.SessionTTL, logger)
}

// NewManagerWithTTL wires the stores with an explicit session TTL. Tests use
// this to instantiate isolated engines without touching process-wide config.
func NewManagerWithTTL(sessionTTL time.Duration, logger *logging.ChanneledLogger) *Manager {
	if logger != nil {
		logger.System().Info("Initializing state engine", "stores", []string{"sessions", "carts", "catalog", "counter"}, "sessionTTL", sessionTTL)
	}

	catalogStore := stores.NewCatalogStore(logger)
	return &Manager{
		sessionsStore: stores.NewSessionsStore(sessionTTL, logger),
		cartsStore:    stores.NewCartsStore(catalogStore, logger),
		catalogStore:  catalogStore,
		counterStore:  stores.NewCounterStore(logger),
		logger:        logger,
	}
}

// SessionsStore exposes the underlying sessions store. Test hook.
func (m *Manager) SessionsStore() *stores.SessionsStore { return m.sessionsStore }

// =============================================================================
// Session Operations
// =============================================================================

func (m *Manager) CreateSession(userID *string, initialData map[string]any) *types.SessionRecord {
	return m.sessionsStore.Create(userID, initialData)
}

func (m *Manager) GetSession(id string) (*types.SessionRecord, bool) {
	return m.sessionsStore.Get(id)
}

func (m *Manager) UpdateSession(id string, partialData map[string]any) (*types.SessionRecord, bool) {
	return m.sessionsStore.Update(id, partialData)
}

// DeleteSession removes the session and cascades to its cart. The cart's
// lifetime is bound to the session's; it never outlives it past this call.
func (m *Manager) DeleteSession(id string) bool {
	removed := m.sessionsStore.Delete(id)
	if removed {
		m.cartsStore.Remove(id)
	}
	return removed
}

// SweepExpiredSessions removes expired sessions and their carts, returning
// the number of sessions removed. A final orphan pass drops carts whose
// session was already removed eagerly on an expired access. The pass queries
// the sessions store for each cart at the moment it is considered; a stale
// pre-captured id set would misclassify sessions created mid-sweep.
func (m *Manager) SweepExpiredSessions() int {
	removed := m.sessionsStore.SweepExpired()
	for _, id := range removed {
		m.cartsStore.Remove(id)
	}
	m.cartsStore.SweepOrphans(m.sessionsStore.Has)

	return len(removed)
}

func (m *Manager) GetAllSessionIDs() []string { return m.sessionsStore.AllIDs() }
func (m *Manager) SessionCount() int          { return m.sessionsStore.Count() }

// =============================================================================
// Cart Operations
// =============================================================================

func (m *Manager) GetCart(sessionID string) *types.Cart {
	return m.cartsStore.Get(sessionID)
}

func (m *Manager) AddCartItem(sessionID, productID string, quantity int) (*types.Cart, error) {
	return m.cartsStore.AddItem(sessionID, productID, quantity)
}

func (m *Manager) RemoveCartItem(sessionID, productID string) *types.Cart {
	return m.cartsStore.RemoveItem(sessionID, productID)
}

func (m *Manager) ClearCart(sessionID string) *types.Cart {
	return m.cartsStore.Clear(sessionID)
}

func (m *Manager) CartCount() int { return m.cartsStore.Count() }

// =============================================================================
// Catalog Operations
// =============================================================================

func (m *Manager) CreateUser(user *catalog.User) *catalog.User {
	return m.catalogStore.CreateUser(user)
}

func (m *Manager) UpdateUserPreferences(id string, preferences map[string]any) (*catalog.User, error) {
	return m.catalogStore.UpdateUserPreferences(id, preferences)
}

func (m *Manager) GetUser(id string) (*catalog.User, bool) { return m.catalogStore.GetUser(id) }
func (m *Manager) ListUsers() []*catalog.User              { return m.catalogStore.ListUsers() }

func (m *Manager) CreateProduct(product *catalog.Product) *catalog.Product {
	return m.catalogStore.CreateProduct(product)
}

func (m *Manager) UpdateProduct(id string, update *catalog.Product) (*catalog.Product, error) {
	return m.catalogStore.UpdateProduct(id, update)
}

func (m *Manager) RemoveProduct(id string) bool { return m.catalogStore.RemoveProduct(id) }

func (m *Manager) GetProduct(id string) (*catalog.Product, bool) {
	return m.catalogStore.GetProduct(id)
}

func (m *Manager) ListProducts() []*catalog.Product { return m.catalogStore.ListProducts() }

func (m *Manager) SearchProducts(filter *catalog.ProductFilter) []*catalog.Product {
	return m.catalogStore.SearchProducts(filter)
}

// SeedCatalog loads the demonstration reference data.
func (m *Manager) SeedCatalog() { m.catalogStore.Seed() }

// =============================================================================
// Counter Operations
// =============================================================================

func (m *Manager) IncrementCounter() int64 { return m.counterStore.IncrementAndGet() }
func (m *Manager) GetCounter() int64       { return m.counterStore.Get() }

// =============================================================================
// State Export / Import
// =============================================================================

// ExportState dumps all transient state as a snapshot. Catalog data is
// excluded: it is seeded reference data, not session state.
func (m *Manager) ExportState() *types.StateSnapshot {
	snapshot := &types.StateSnapshot{
		Sessions:   m.sessionsStore.Snapshot(),
		Carts:      m.cartsStore.Snapshot(),
		Counter:    m.counterStore.Get(),
		ExportedAt: time.Now().UTC(),
	}

	if m.logger != nil {
		m.logger.System().Info("State exported", "sessions", len(snapshot.Sessions), "carts", len(snapshot.Carts), "counter", snapshot.Counter)
	}
	return snapshot
}

// ImportState replaces all transient state wholesale with the snapshot.
func (m *Manager) ImportState(snapshot *types.StateSnapshot) {
	m.sessionsStore.Restore(snapshot.Sessions)
	m.cartsStore.Restore(snapshot.Carts)
	m.counterStore.Set(snapshot.Counter)

	if m.logger != nil {
		m.logger.System().Info("State imported", "sessions", len(snapshot.Sessions), "carts", len(snapshot.Carts), "counter", snapshot.Counter)
	}
}

// Stats summarizes live engine state.
func (m *Manager) Stats() interfaces.EngineStats {
	return interfaces.EngineStats{
		Sessions: m.sessionsStore.Count(),
		Carts:    m.cartsStore.Count(),
		Users:    m.catalogStore.UserCount(),
		Products: m.catalogStore.ProductCount(),
		Counter:  m.counterStore.Get(),
	}
}
