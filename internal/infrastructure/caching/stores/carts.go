package stores

import (
	"errors"
	"sync"
	"time"

	"github.com/statecraft-labs/statecraft-go/internal/domain/entities/catalog"
	"github.com/statecraft-labs/statecraft-go/internal/infrastructure/caching/types"
	"github.com/statecraft-labs/statecraft-go/internal/infrastructure/observability/logging"
)

var (
	// ErrProductNotFound is returned when AddItem references a product the
	// catalog does not know.
	ErrProductNotFound = errors.New("product not found")
	// ErrInvalidQuantity is returned for zero or negative quantities.
	ErrInvalidQuantity = errors.New("quantity must be a positive integer")
)

// ProductLookup is the narrow catalog dependency the carts store needs.
type ProductLookup interface {
	GetProduct(id string) (*catalog.Product, bool)
}

// CartsStore manages per-session item aggregation and price totals. It is
// keyed by session id but deliberately never checks session liveness; that
// boundary belongs to the calling layer, which keeps expiry logic in exactly
// one place. A cart can therefore outlive its session until the cascade
// delete runs.
type CartsStore struct {
	carts   map[string]*types.Cart
	mu      sync.RWMutex
	catalog ProductLookup
	logger  *logging.ChanneledLogger

	// now is swappable for tests
	now func() time.Time
}

// NewCartsStore creates a new carts store with a catalog lookup dependency
func NewCartsStore(catalog ProductLookup, logger *logging.ChanneledLogger) *CartsStore {
	if logger != nil {
		logger.Cart().Info("Initializing carts store")
	}
	return &CartsStore{
		carts:   make(map[string]*types.Cart),
		catalog: catalog,
		logger:  logger,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// getOrCreateLocked returns the cart for sessionID, creating an empty one on
// first reference. Callers must hold the write lock.
func (cs *CartsStore) getOrCreateLocked(sessionID string) *types.Cart {
	cart, found := cs.carts[sessionID]
	if !found {
		now := cs.now()
		cart = &types.Cart{
			SessionID: sessionID,
			Items:     []types.CartItem{},
			CreatedAt: now,
			UpdatedAt: now,
		}
		cs.carts[sessionID] = cart
		if cs.logger != nil {
			cs.logger.Cart().Debug("Cart created lazily", "sessionId", logging.SanitizeSessionID(sessionID))
		}
	}
	return cart
}

// Get returns the existing cart or lazily creates an empty one. There is no
// miss case for this call.
func (cs *CartsStore) Get(sessionID string) *types.Cart {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	return cs.getOrCreateLocked(sessionID).Clone()
}

// AddItem adds quantity of the given product to the session's cart. Adding a
// product already in the cart increments the existing line instead of
// appending a duplicate. Name and price are snapshotted from the catalog at
// add time.
func (cs *CartsStore) AddItem(sessionID, productID string, quantity int) (*types.Cart, error) {
	start := time.Now()

	if quantity <= 0 {
		return nil, ErrInvalidQuantity
	}

	product, found := cs.catalog.GetProduct(productID)
	if !found {
		return nil, ErrProductNotFound
	}

	cs.mu.Lock()
	defer cs.mu.Unlock()

	cart := cs.getOrCreateLocked(sessionID)

	merged := false
	for i := range cart.Items {
		if cart.Items[i].ProductID == productID {
			cart.Items[i].Quantity += quantity
			merged = true
			break
		}
	}
	if !merged {
		cart.Items = append(cart.Items, types.CartItem{
			ProductID: productID,
			Name:      product.Name,
			Price:     product.Price,
			Quantity:  quantity,
			AddedAt:   cs.now(),
		})
	}

	cart.RecomputeTotal()
	cart.UpdatedAt = cs.now()

	if cs.logger != nil {
		cs.logger.Cart().Debug("Store operation", "operation", "add_item", "sessionId", logging.SanitizeSessionID(sessionID), "productId", productID, "quantity", quantity, "merged", merged, "total", cart.Total, "duration", time.Since(start))
	}
	return cart.Clone(), nil
}

// RemoveItem removes the matching line entirely regardless of its quantity.
// Removing a product that was never in the cart is a no-op, not an error.
func (cs *CartsStore) RemoveItem(sessionID, productID string) *types.Cart {
	start := time.Now()

	cs.mu.Lock()
	defer cs.mu.Unlock()

	cart := cs.getOrCreateLocked(sessionID)

	for i := range cart.Items {
		if cart.Items[i].ProductID == productID {
			cart.Items = append(cart.Items[:i], cart.Items[i+1:]...)
			cart.RecomputeTotal()
			cart.UpdatedAt = cs.now()
			break
		}
	}

	if cs.logger != nil {
		cs.logger.Cart().Debug("Store operation", "operation", "remove_item", "sessionId", logging.SanitizeSessionID(sessionID), "productId", productID, "total", cart.Total, "duration", time.Since(start))
	}
	return cart.Clone()
}

// Clear empties the cart's items and resets its total while preserving the
// cart record itself, so a later Get keeps the original CreatedAt.
func (cs *CartsStore) Clear(sessionID string) *types.Cart {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	cart := cs.getOrCreateLocked(sessionID)
	cart.Items = []types.CartItem{}
	cart.Total = 0
	cart.UpdatedAt = cs.now()

	if cs.logger != nil {
		cs.logger.Cart().Debug("Store operation", "operation", "clear", "sessionId", logging.SanitizeSessionID(sessionID))
	}
	return cart.Clone()
}

// Remove drops the cart record entirely. This is the cascade-delete hook used
// when the owning session dies; it reports whether a cart existed.
func (cs *CartsStore) Remove(sessionID string) bool {
	cs.mu.Lock()
	_, found := cs.carts[sessionID]
	if found {
		delete(cs.carts, sessionID)
	}
	cs.mu.Unlock()

	if cs.logger != nil && found {
		cs.logger.Cart().Debug("Store operation", "operation", "remove_cart", "sessionId", logging.SanitizeSessionID(sessionID))
	}
	return found
}

// SweepOrphans drops every cart whose owning session no longer exists. Covers
// carts whose session was removed eagerly on an expired Get, where no cascade
// ran. Liveness is checked per cart at delete time, under the carts lock:
// session ids are never reused, so a session absent at that instant can never
// come back, and a cart created for a fresh session mid-sweep always finds its
// session alive.
func (cs *CartsStore) SweepOrphans(isLive func(sessionID string) bool) int {
	cs.mu.Lock()
	var removed int
	for sessionID := range cs.carts {
		if !isLive(sessionID) {
			delete(cs.carts, sessionID)
			removed++
		}
	}
	cs.mu.Unlock()

	if cs.logger != nil && removed > 0 {
		cs.logger.Sweep().Info("Orphaned carts swept", "count", removed)
	}
	return removed
}

// Count returns the number of cart records.
func (cs *CartsStore) Count() int {
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	return len(cs.carts)
}

// Snapshot returns deep copies of every cart for state export.
func (cs *CartsStore) Snapshot() []types.Cart {
	cs.mu.RLock()
	defer cs.mu.RUnlock()

	carts := make([]types.Cart, 0, len(cs.carts))
	for _, cart := range cs.carts {
		carts = append(carts, *cart.Clone())
	}
	return carts
}

// Restore replaces all carts with the given records.
func (cs *CartsStore) Restore(carts []types.Cart) {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	cs.carts = make(map[string]*types.Cart, len(carts))
	for i := range carts {
		cart := carts[i]
		cs.carts[cart.SessionID] = cart.Clone()
	}

	if cs.logger != nil {
		cs.logger.Cart().Info("Carts restored from snapshot", "count", len(carts))
	}
}
