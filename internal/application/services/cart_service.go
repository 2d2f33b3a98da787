package services

import (
	"time"

	"github.com/statecraft-labs/statecraft-go/internal/infrastructure/caching/interfaces"
	"github.com/statecraft-labs/statecraft-go/internal/infrastructure/caching/types"
	"github.com/statecraft-labs/statecraft-go/internal/infrastructure/observability/logging"
)

// CartService orchestrates cart operations. The cart store itself never
// checks session liveness, so this service enforces it before every call:
// every operation refreshes the session (keeping it alive) and fails with
// ErrSessionNotFound when the session is dead.
type CartService struct {
	cache  interfaces.Cache
	logger *logging.ChanneledLogger
}

// NewCartService creates a new cart service
func NewCartService(cache interfaces.Cache, logger *logging.ChanneledLogger) *CartService {
	return &CartService{
		cache:  cache,
		logger: logger,
	}
}

// requireLiveSession rejects operations against dead sessions before they
// reach the cart store. The Get doubles as the access-time refresh.
func (s *CartService) requireLiveSession(sessionID string) error {
	if _, found := s.cache.GetSession(sessionID); !found {
		return ErrSessionNotFound
	}
	return nil
}

// Get returns the session's cart, creating an empty one on first reference.
func (s *CartService) Get(sessionID string) (*types.Cart, error) {
	if err := s.requireLiveSession(sessionID); err != nil {
		return nil, err
	}
	return s.cache.GetCart(sessionID), nil
}

// AddItem adds quantity of a catalog product to the session's cart.
func (s *CartService) AddItem(sessionID, productID string, quantity int) (*types.Cart, error) {
	start := time.Now()

	if err := s.requireLiveSession(sessionID); err != nil {
		return nil, err
	}

	cart, err := s.cache.AddCartItem(sessionID, productID, quantity)
	if err != nil {
		return nil, err
	}

	if s.logger != nil {
		s.logger.Cart().Info("Item added to cart", "sessionId", logging.SanitizeSessionID(sessionID), "productId", productID, "quantity", quantity, "total", cart.Total, "duration", time.Since(start))
	}
	return cart, nil
}

// RemoveItem removes the product's line entirely; a no-op for absent products.
func (s *CartService) RemoveItem(sessionID, productID string) (*types.Cart, error) {
	if err := s.requireLiveSession(sessionID); err != nil {
		return nil, err
	}
	return s.cache.RemoveCartItem(sessionID, productID), nil
}

// Clear empties the cart while preserving the cart record.
func (s *CartService) Clear(sessionID string) (*types.Cart, error) {
	if err := s.requireLiveSession(sessionID); err != nil {
		return nil, err
	}
	return s.cache.ClearCart(sessionID), nil
}
