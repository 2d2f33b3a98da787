package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/statecraft-labs/statecraft-go/internal/application/services"
	"github.com/statecraft-labs/statecraft-go/internal/infrastructure/caching/stores"
	"github.com/statecraft-labs/statecraft-go/internal/presentation/http/middleware"
)

// CartHandlers serves the cart endpoints. All routes sit behind
// RequireSession, so the session token in the header is live by the time a
// handler runs; the service re-checks anyway because the middleware refresh
// and the cart operation are not atomic.
type CartHandlers struct {
	cartService *services.CartService
}

// NewCartHandlers creates cart handlers
func NewCartHandlers(cartService *services.CartService) *CartHandlers {
	return &CartHandlers{cartService: cartService}
}

// Get handles GET /api/v1/cart
func (h *CartHandlers) Get(c *gin.Context) {
	cart, err := h.cartService.Get(middleware.SessionToken(c))
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "session not found"})
		return
	}
	c.JSON(http.StatusOK, cart)
}

type addItemRequest struct {
	ProductID string `json:"productId" binding:"required"`
	// Pointer so an omitted quantity (defaults to 1) stays distinguishable
	// from an explicit zero, which is invalid.
	Quantity *int `json:"quantity"`
}

// AddItem handles POST /api/v1/cart/items
func (h *CartHandlers) AddItem(c *gin.Context) {
	var req addItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	quantity := 1
	if req.Quantity != nil {
		quantity = *req.Quantity
	}

	cart, err := h.cartService.AddItem(middleware.SessionToken(c), req.ProductID, quantity)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrSessionNotFound):
			c.JSON(http.StatusUnauthorized, gin.H{"error": "session not found"})
		case errors.Is(err, stores.ErrProductNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
		case errors.Is(err, stores.ErrInvalidQuantity):
			c.JSON(http.StatusBadRequest, gin.H{"error": "quantity must be positive"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "cart update failed"})
		}
		return
	}
	c.JSON(http.StatusOK, cart)
}

// RemoveItem handles DELETE /api/v1/cart/items/:productId
func (h *CartHandlers) RemoveItem(c *gin.Context) {
	cart, err := h.cartService.RemoveItem(middleware.SessionToken(c), c.Param("productId"))
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "session not found"})
		return
	}
	c.JSON(http.StatusOK, cart)
}

// Clear handles DELETE /api/v1/cart
func (h *CartHandlers) Clear(c *gin.Context) {
	cart, err := h.cartService.Clear(middleware.SessionToken(c))
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "session not found"})
		return
	}
	c.JSON(http.StatusOK, cart)
}
