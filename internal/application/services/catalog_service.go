package services

import (
	"strconv"

	"github.com/statecraft-labs/statecraft-go/internal/domain/entities/catalog"
	"github.com/statecraft-labs/statecraft-go/internal/infrastructure/caching/interfaces"
	"github.com/statecraft-labs/statecraft-go/internal/infrastructure/observability/logging"
)

// CatalogService wraps the catalog store and parses search filters from raw
// query values.
type CatalogService struct {
	cache  interfaces.Cache
	logger *logging.ChanneledLogger
}

// NewCatalogService creates a new catalog service
func NewCatalogService(cache interfaces.Cache, logger *logging.ChanneledLogger) *CatalogService {
	return &CatalogService{
		cache:  cache,
		logger: logger,
	}
}

func (s *CatalogService) CreateUser(user *catalog.User) *catalog.User {
	return s.cache.CreateUser(user)
}

func (s *CatalogService) UpdateUserPreferences(id string, preferences map[string]any) (*catalog.User, error) {
	return s.cache.UpdateUserPreferences(id, preferences)
}

func (s *CatalogService) GetUser(id string) (*catalog.User, bool) {
	return s.cache.GetUser(id)
}

func (s *CatalogService) ListUsers() []*catalog.User {
	return s.cache.ListUsers()
}

func (s *CatalogService) CreateProduct(product *catalog.Product) *catalog.Product {
	return s.cache.CreateProduct(product)
}

func (s *CatalogService) UpdateProduct(id string, update *catalog.Product) (*catalog.Product, error) {
	return s.cache.UpdateProduct(id, update)
}

func (s *CatalogService) RemoveProduct(id string) bool {
	return s.cache.RemoveProduct(id)
}

func (s *CatalogService) GetProduct(id string) (*catalog.Product, bool) {
	return s.cache.GetProduct(id)
}

func (s *CatalogService) ListProducts() []*catalog.Product {
	return s.cache.ListProducts()
}

// SearchProducts builds a filter from raw query parameters and runs it.
// minPrice, maxPrice, and category are recognized fields; every other key is
// matched by exact equality against the same-named product attribute, which
// silently matches nothing when the attribute is absent. Preserved as-is for
// client compatibility.
func (s *CatalogService) SearchProducts(query map[string]string) []*catalog.Product {
	filter := &catalog.ProductFilter{Extra: make(map[string]any)}

	for key, value := range query {
		switch key {
		case "category":
			category := value
			filter.Category = &category
		case "minPrice":
			if price, err := strconv.ParseFloat(value, 64); err == nil {
				filter.MinPrice = &price
			}
		case "maxPrice":
			if price, err := strconv.ParseFloat(value, 64); err == nil {
				filter.MaxPrice = &price
			}
		default:
			filter.Extra[key] = value
		}
	}

	results := s.cache.SearchProducts(filter)

	if s.logger != nil {
		s.logger.Catalog().Debug("Product search", "filters", len(query), "results", len(results))
	}
	return results
}
