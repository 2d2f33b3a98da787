// Package interfaces defines the store contracts for the state engine.
package interfaces

import (
	"github.com/statecraft-labs/statecraft-go/internal/domain/entities/catalog"
	"github.com/statecraft-labs/statecraft-go/internal/infrastructure/caching/types"
)

// SessionCache defines operations for session lifecycle management
type SessionCache interface {
	CreateSession(userID *string, initialData map[string]any) *types.SessionRecord
	GetSession(id string) (*types.SessionRecord, bool)
	UpdateSession(id string, partialData map[string]any) (*types.SessionRecord, bool)
	DeleteSession(id string) bool
	SweepExpiredSessions() int
	GetAllSessionIDs() []string
	SessionCount() int
}

// CartCache defines operations for per-session cart aggregation
type CartCache interface {
	GetCart(sessionID string) *types.Cart
	AddCartItem(sessionID, productID string, quantity int) (*types.Cart, error)
	RemoveCartItem(sessionID, productID string) *types.Cart
	ClearCart(sessionID string) *types.Cart
	CartCount() int
}

// CatalogCache defines operations for seeded reference data
type CatalogCache interface {
	CreateUser(user *catalog.User) *catalog.User
	UpdateUserPreferences(id string, preferences map[string]any) (*catalog.User, error)
	GetUser(id string) (*catalog.User, bool)
	ListUsers() []*catalog.User
	CreateProduct(product *catalog.Product) *catalog.Product
	UpdateProduct(id string, update *catalog.Product) (*catalog.Product, error)
	RemoveProduct(id string) bool
	GetProduct(id string) (*catalog.Product, bool)
	ListProducts() []*catalog.Product
	SearchProducts(filter *catalog.ProductFilter) []*catalog.Product
}

// RequestCounter defines the stateless counter contract
type RequestCounter interface {
	IncrementCounter() int64
	GetCounter() int64
}

// Cache is the main interface combining all store operations
type Cache interface {
	SessionCache
	CartCache
	CatalogCache
	RequestCounter
	ExportState() *types.StateSnapshot
	ImportState(snapshot *types.StateSnapshot)
	Stats() EngineStats
}

// EngineStats summarizes live engine state for reporting and sysop endpoints
type EngineStats struct {
	Sessions int   `json:"sessions"`
	Carts    int   `json:"carts"`
	Users    int   `json:"users"`
	Products int   `json:"products"`
	Counter  int64 `json:"counter"`
}
