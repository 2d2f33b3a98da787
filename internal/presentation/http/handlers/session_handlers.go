// Package handlers provides HTTP handlers for the engine's API surface.
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/statecraft-labs/statecraft-go/internal/application/services"
	"github.com/statecraft-labs/statecraft-go/internal/presentation/http/middleware"
)

// SessionHandlers serves the session lifecycle endpoints.
type SessionHandlers struct {
	sessionService *services.SessionService
}

// NewSessionHandlers creates session handlers
func NewSessionHandlers(sessionService *services.SessionService) *SessionHandlers {
	return &SessionHandlers{sessionService: sessionService}
}

type createSessionRequest struct {
	UserID *string        `json:"userId"`
	Data   map[string]any `json:"data"`
}

// Create handles POST /api/v1/sessions
func (h *SessionHandlers) Create(c *gin.Context) {
	var req createSessionRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
	}

	record := h.sessionService.Create(req.UserID, req.Data)
	c.JSON(http.StatusCreated, record)
}

// Get handles GET /api/v1/sessions/current
func (h *SessionHandlers) Get(c *gin.Context) {
	record, ok := middleware.GetSessionRecord(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "session not found"})
		return
	}
	c.JSON(http.StatusOK, record)
}

type updateSessionRequest struct {
	Data map[string]any `json:"data"`
}

// Update handles PATCH /api/v1/sessions/current
func (h *SessionHandlers) Update(c *gin.Context) {
	var req updateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	record, err := h.sessionService.Update(middleware.SessionToken(c), req.Data)
	if err != nil {
		if errors.Is(err, services.ErrSessionNotFound) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "session not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "session update failed"})
		return
	}
	c.JSON(http.StatusOK, record)
}

// Delete handles DELETE /api/v1/sessions/current. Idempotent: deleting an
// already-dead session still succeeds.
func (h *SessionHandlers) Delete(c *gin.Context) {
	removed := h.sessionService.Logout(middleware.SessionToken(c))
	c.JSON(http.StatusOK, gin.H{"removed": removed})
}
