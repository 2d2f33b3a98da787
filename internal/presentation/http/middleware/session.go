// Package middleware provides HTTP middleware for the presentation layer.
package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/statecraft-labs/statecraft-go/internal/application/services"
	"github.com/statecraft-labs/statecraft-go/internal/infrastructure/caching/types"
)

// SessionHeader carries the opaque session token.
const SessionHeader = "X-Statecraft-Session-ID"

const sessionContextKey = "statecraft:session"

// SessionToken extracts the raw session token from the request, if present.
func SessionToken(c *gin.Context) string {
	return strings.TrimSpace(c.GetHeader(SessionHeader))
}

// RequireSession rejects requests without a live session before the handler
// runs. A missing header, a never-issued token, a deleted token, and an
// expired token all produce the same 401: the causes are indistinguishable by
// contract. The lookup refreshes the session's sliding deadline.
func RequireSession(sessionService *services.SessionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := SessionToken(c)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "session not found"})
			return
		}

		record, err := sessionService.Get(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "session not found"})
			return
		}

		c.Set(sessionContextKey, record)
		c.Next()
	}
}

// GetSessionRecord returns the session attached by RequireSession.
func GetSessionRecord(c *gin.Context) (*types.SessionRecord, bool) {
	value, exists := c.Get(sessionContextKey)
	if !exists {
		return nil, false
	}
	record, ok := value.(*types.SessionRecord)
	return record, ok
}

// RequireSysop gates admin endpoints behind a bearer sysop token.
func RequireSysop(authService *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, found := strings.CutPrefix(header, "Bearer ")
		if !found || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "sysop token required"})
			return
		}

		if err := authService.ValidateToken(strings.TrimSpace(token)); err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid sysop token"})
			return
		}

		c.Next()
	}
}
