package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/statecraft-labs/statecraft-go/internal/application/services"
	"github.com/statecraft-labs/statecraft-go/internal/domain/entities/catalog"
	"github.com/statecraft-labs/statecraft-go/internal/infrastructure/caching/stores"
)

// CatalogHandlers serves the users and products endpoints.
type CatalogHandlers struct {
	catalogService *services.CatalogService
}

// NewCatalogHandlers creates catalog handlers
func NewCatalogHandlers(catalogService *services.CatalogService) *CatalogHandlers {
	return &CatalogHandlers{catalogService: catalogService}
}

// CreateUser handles POST /api/v1/users
func (h *CatalogHandlers) CreateUser(c *gin.Context) {
	var user catalog.User
	if err := c.ShouldBindJSON(&user); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	c.JSON(http.StatusCreated, h.catalogService.CreateUser(&user))
}

// GetUser handles GET /api/v1/users/:userId
func (h *CatalogHandlers) GetUser(c *gin.Context) {
	user, found := h.catalogService.GetUser(c.Param("userId"))
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}
	c.JSON(http.StatusOK, user)
}

// ListUsers handles GET /api/v1/users
func (h *CatalogHandlers) ListUsers(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"users": h.catalogService.ListUsers()})
}

type updatePreferencesRequest struct {
	Preferences map[string]any `json:"preferences" binding:"required"`
}

// UpdateUserPreferences handles PATCH /api/v1/users/:userId/preferences
func (h *CatalogHandlers) UpdateUserPreferences(c *gin.Context) {
	var req updatePreferencesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	user, err := h.catalogService.UpdateUserPreferences(c.Param("userId"), req.Preferences)
	if err != nil {
		if errors.Is(err, stores.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user update failed"})
		return
	}
	c.JSON(http.StatusOK, user)
}

// CreateProduct handles POST /api/v1/products
func (h *CatalogHandlers) CreateProduct(c *gin.Context) {
	var product catalog.Product
	if err := c.ShouldBindJSON(&product); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if product.Name == "" || product.Price <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name and positive price are required"})
		return
	}
	c.JSON(http.StatusCreated, h.catalogService.CreateProduct(&product))
}

// GetProduct handles GET /api/v1/products/:productId
func (h *CatalogHandlers) GetProduct(c *gin.Context) {
	product, found := h.catalogService.GetProduct(c.Param("productId"))
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
		return
	}
	c.JSON(http.StatusOK, product)
}

// ListProducts handles GET /api/v1/products. With query parameters present it
// becomes a filtered search; without any it lists the whole catalog.
func (h *CatalogHandlers) ListProducts(c *gin.Context) {
	query := c.Request.URL.Query()
	if len(query) == 0 {
		c.JSON(http.StatusOK, gin.H{"products": h.catalogService.ListProducts()})
		return
	}

	filters := make(map[string]string, len(query))
	for key, values := range query {
		if len(values) > 0 {
			filters[key] = values[0]
		}
	}
	c.JSON(http.StatusOK, gin.H{"products": h.catalogService.SearchProducts(filters)})
}

// UpdateProduct handles PATCH /api/v1/products/:productId
func (h *CatalogHandlers) UpdateProduct(c *gin.Context) {
	var update catalog.Product
	if err := c.ShouldBindJSON(&update); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	product, err := h.catalogService.UpdateProduct(c.Param("productId"), &update)
	if err != nil {
		if errors.Is(err, stores.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "product update failed"})
		return
	}
	c.JSON(http.StatusOK, product)
}

// RemoveProduct handles DELETE /api/v1/products/:productId
func (h *CatalogHandlers) RemoveProduct(c *gin.Context) {
	removed := h.catalogService.RemoveProduct(c.Param("productId"))
	if !removed {
		c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"removed": true})
}
