package stores

import (
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/statecraft-labs/statecraft-go/internal/domain/entities/catalog"
	"github.com/statecraft-labs/statecraft-go/internal/infrastructure/observability/logging"
	"github.com/statecraft-labs/statecraft-go/internal/infrastructure/security"
)

// ErrUserNotFound is returned when a catalog user lookup misses.
var ErrUserNotFound = errors.New("user not found")

// CatalogStore holds seeded reference data: users and products. It has no
// expiration semantics and is read-only after initialization except through
// explicit create/update operations.
type CatalogStore struct {
	users    map[string]*catalog.User
	products map[string]*catalog.Product
	mu       sync.RWMutex
	logger   *logging.ChanneledLogger
}

// NewCatalogStore creates an empty catalog store
func NewCatalogStore(logger *logging.ChanneledLogger) *CatalogStore {
	if logger != nil {
		logger.Catalog().Info("Initializing catalog store")
	}
	return &CatalogStore{
		users:    make(map[string]*catalog.User),
		products: make(map[string]*catalog.Product),
		logger:   logger,
	}
}

// CreateUser registers a new user. A missing ID is filled with a fresh ULID.
func (cs *CatalogStore) CreateUser(user *catalog.User) *catalog.User {
	now := time.Now().UTC()
	record := user.Clone()
	if record.ID == "" {
		record.ID = security.GenerateULID()
	}
	if record.Preferences == nil {
		record.Preferences = make(map[string]any)
	}
	record.CreatedAt = now
	record.UpdatedAt = now

	cs.mu.Lock()
	cs.users[record.ID] = record
	cs.mu.Unlock()

	if cs.logger != nil {
		cs.logger.Catalog().Debug("Store operation", "operation", "create_user", "userId", record.ID)
	}
	return record.Clone()
}

// UpdateUserPreferences shallow-merges preference keys onto an existing user.
func (cs *CatalogStore) UpdateUserPreferences(id string, preferences map[string]any) (*catalog.User, error) {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	user, found := cs.users[id]
	if !found {
		return nil, ErrUserNotFound
	}

	for key, value := range preferences {
		user.Preferences[key] = value
	}
	user.UpdatedAt = time.Now().UTC()

	if cs.logger != nil {
		cs.logger.Catalog().Debug("Store operation", "operation", "update_user", "userId", id, "mergedKeys", len(preferences))
	}
	return user.Clone(), nil
}

// GetUser returns the user for id.
func (cs *CatalogStore) GetUser(id string) (*catalog.User, bool) {
	cs.mu.RLock()
	defer cs.mu.RUnlock()

	user, found := cs.users[id]
	if !found {
		return nil, false
	}
	return user.Clone(), true
}

// ListUsers returns a snapshot of all users, ordered by id.
func (cs *CatalogStore) ListUsers() []*catalog.User {
	cs.mu.RLock()
	defer cs.mu.RUnlock()

	users := make([]*catalog.User, 0, len(cs.users))
	for _, user := range cs.users {
		users = append(users, user.Clone())
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users
}

// CreateProduct registers a new product. A missing ID is filled with a fresh ULID.
func (cs *CatalogStore) CreateProduct(product *catalog.Product) *catalog.Product {
	record := product.Clone()
	if record.ID == "" {
		record.ID = security.GenerateULID()
	}
	if record.Attributes == nil {
		record.Attributes = make(map[string]any)
	}

	cs.mu.Lock()
	cs.products[record.ID] = record
	cs.mu.Unlock()

	if cs.logger != nil {
		cs.logger.Catalog().Debug("Store operation", "operation", "create_product", "productId", record.ID, "price", record.Price)
	}
	return record.Clone()
}

// UpdateProduct replaces an existing product's mutable fields.
func (cs *CatalogStore) UpdateProduct(id string, update *catalog.Product) (*catalog.Product, error) {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	product, found := cs.products[id]
	if !found {
		return nil, ErrProductNotFound
	}

	if update.Name != "" {
		product.Name = update.Name
	}
	if update.Price > 0 {
		product.Price = update.Price
	}
	if update.Category != "" {
		product.Category = update.Category
	}
	for key, value := range update.Attributes {
		product.Attributes[key] = value
	}

	if cs.logger != nil {
		cs.logger.Catalog().Debug("Store operation", "operation", "update_product", "productId", id)
	}
	return product.Clone(), nil
}

// RemoveProduct drops a product from the catalog. Existing cart lines keep
// their add-time snapshot and are not touched.
func (cs *CatalogStore) RemoveProduct(id string) bool {
	cs.mu.Lock()
	_, found := cs.products[id]
	if found {
		delete(cs.products, id)
	}
	cs.mu.Unlock()

	if cs.logger != nil {
		cs.logger.Catalog().Debug("Store operation", "operation", "remove_product", "productId", id, "hit", found)
	}
	return found
}

// GetProduct returns the product for id.
func (cs *CatalogStore) GetProduct(id string) (*catalog.Product, bool) {
	cs.mu.RLock()
	defer cs.mu.RUnlock()

	product, found := cs.products[id]
	if !found {
		return nil, false
	}
	return product.Clone(), true
}

// ListProducts returns a snapshot of all products, ordered by id.
func (cs *CatalogStore) ListProducts() []*catalog.Product {
	cs.mu.RLock()
	defer cs.mu.RUnlock()

	products := make([]*catalog.Product, 0, len(cs.products))
	for _, product := range cs.products {
		products = append(products, product.Clone())
	}
	sort.Slice(products, func(i, j int) bool { return products[i].ID < products[j].ID })
	return products
}

// SearchProducts returns the products matching every provided filter field.
func (cs *CatalogStore) SearchProducts(filter *catalog.ProductFilter) []*catalog.Product {
	cs.mu.RLock()
	defer cs.mu.RUnlock()

	var matches []*catalog.Product
	for _, product := range cs.products {
		if filter.Matches(product) {
			matches = append(matches, product.Clone())
		}
	}
	sort.Slice(matches, func(i, j int) bool { return matches[i].ID < matches[j].ID })
	return matches
}

// UserCount returns the number of users.
func (cs *CatalogStore) UserCount() int {
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	return len(cs.users)
}

// ProductCount returns the number of products.
func (cs *CatalogStore) ProductCount() int {
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	return len(cs.products)
}

// Seed loads the demonstration users and products.
func (cs *CatalogStore) Seed() {
	for _, user := range []*catalog.User{
		{ID: "u-alice", Name: "Alice Nguyen", Email: "alice@example.com", Preferences: map[string]any{"theme": "dark", "newsletter": true}},
		{ID: "u-bob", Name: "Bob Okafor", Email: "bob@example.com", Preferences: map[string]any{"theme": "light"}},
	} {
		cs.CreateUser(user)
	}

	for _, product := range []*catalog.Product{
		{ID: "p-laptop", Name: "Laptop", Price: 1299.00, Category: "electronics", Attributes: map[string]any{"brand": "Voltaic", "ram_gb": 16}},
		{ID: "p-mouse", Name: "Wireless Mouse", Price: 24.50, Category: "electronics", Attributes: map[string]any{"brand": "Voltaic", "wireless": true}},
		{ID: "p-keyboard", Name: "Mechanical Keyboard", Price: 89.99, Category: "electronics", Attributes: map[string]any{"switches": "brown"}},
		{ID: "p-mug", Name: "Coffee Mug", Price: 10.00, Category: "kitchen", Attributes: map[string]any{"volume_ml": 350}},
		{ID: "p-notebook", Name: "Dotted Notebook", Price: 6.75, Category: "stationery", Attributes: map[string]any{"pages": 192}},
	} {
		cs.CreateProduct(product)
	}

	if cs.logger != nil {
		cs.logger.Catalog().Info("Demo catalog seeded", "users", cs.UserCount(), "products", cs.ProductCount())
	}
}
