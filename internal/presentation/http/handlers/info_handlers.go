package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/statecraft-labs/statecraft-go/internal/application/services"
)

// InfoHandlers serves the stateless demonstration endpoints.
type InfoHandlers struct {
	stateService *services.StateService
}

// NewInfoHandlers creates info handlers
func NewInfoHandlers(stateService *services.StateService) *InfoHandlers {
	return &InfoHandlers{stateService: stateService}
}

// Info handles GET /api/v1/info. Every hit bumps the global request counter;
// the response is identical for every caller regardless of any session header
// they send.
func (h *InfoHandlers) Info(c *gin.Context) {
	c.JSON(http.StatusOK, h.stateService.RecordRequest())
}

// Health handles GET /health
func (h *InfoHandlers) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"counter": h.stateService.CounterValue(),
	})
}
