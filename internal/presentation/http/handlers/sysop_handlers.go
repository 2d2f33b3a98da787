package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/statecraft-labs/statecraft-go/internal/application/services"
	"github.com/statecraft-labs/statecraft-go/internal/infrastructure/caching/types"
	"github.com/statecraft-labs/statecraft-go/internal/infrastructure/observability/logging"
)

// SysopHandlers serves the admin surface: login, engine stats, state
// export/import, and runtime log-level control.
type SysopHandlers struct {
	authService  *services.AuthService
	stateService *services.StateService
	logger       *logging.ChanneledLogger
}

// NewSysopHandlers creates sysop handlers
func NewSysopHandlers(authService *services.AuthService, stateService *services.StateService, logger *logging.ChanneledLogger) *SysopHandlers {
	return &SysopHandlers{
		authService:  authService,
		stateService: stateService,
		logger:       logger,
	}
}

type sysopLoginRequest struct {
	Password string `json:"password" binding:"required"`
}

// Login handles POST /api/sysop/login
func (h *SysopHandlers) Login(c *gin.Context) {
	var req sysopLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	token, err := h.authService.Login(req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "login failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token})
}

// Stats handles GET /api/sysop/stats
func (h *SysopHandlers) Stats(c *gin.Context) {
	c.JSON(http.StatusOK, h.stateService.Stats())
}

// ExportState handles GET /api/sysop/state/export
func (h *SysopHandlers) ExportState(c *gin.Context) {
	c.JSON(http.StatusOK, h.stateService.ExportState())
}

// ImportState handles POST /api/sysop/state/import. The snapshot replaces the
// engine's transient state wholesale; expired sessions in the snapshot are
// dropped on their next access like any other.
func (h *SysopHandlers) ImportState(c *gin.Context) {
	var snapshot types.StateSnapshot
	if err := c.ShouldBindJSON(&snapshot); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid snapshot"})
		return
	}

	h.stateService.ImportState(&snapshot)
	c.JSON(http.StatusOK, gin.H{"imported": true})
}

// GetLogLevels handles GET /api/sysop/logs/levels
func (h *SysopHandlers) GetLogLevels(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"levels": h.logger.GetChannelLevels()})
}

type setLogLevelRequest struct {
	Channel string `json:"channel" binding:"required"`
	Level   string `json:"level" binding:"required"`
}

// SetLogLevel handles POST /api/sysop/logs/levels
func (h *SysopHandlers) SetLogLevel(c *gin.Context) {
	var req setLogLevelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(req.Level)); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid log level"})
		return
	}

	if err := h.logger.SetChannelLevel(logging.Channel(req.Channel), level); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"levels": h.logger.GetChannelLevels()})
}
