// Package services provides application-level orchestration services
package services

import (
	"errors"
	"time"

	"github.com/statecraft-labs/statecraft-go/internal/infrastructure/caching/interfaces"
	"github.com/statecraft-labs/statecraft-go/internal/infrastructure/caching/types"
	"github.com/statecraft-labs/statecraft-go/internal/infrastructure/observability/logging"
)

// ErrSessionNotFound is returned for any session miss: never issued, deleted,
// or expired. The three causes are deliberately indistinguishable.
var ErrSessionNotFound = errors.New("session not found")

// SessionService orchestrates session lifecycle operations on the engine.
type SessionService struct {
	cache  interfaces.Cache
	logger *logging.ChanneledLogger
}

// NewSessionService creates a new session service
func NewSessionService(cache interfaces.Cache, logger *logging.ChanneledLogger) *SessionService {
	return &SessionService{
		cache:  cache,
		logger: logger,
	}
}

// Create establishes a new session, optionally bound to a catalog user. An
// unknown userId is accepted as-is: the reference is informational and
// creation has no failure path.
func (s *SessionService) Create(userID *string, initialData map[string]any) *types.SessionRecord {
	start := time.Now()
	record := s.cache.CreateSession(userID, initialData)

	if s.logger != nil {
		s.logger.Session().Info("Session created", "sessionId", logging.SanitizeSessionID(record.ID), "hasUser", userID != nil, "duration", time.Since(start))
	}
	return record
}

// Get returns the live session for id, refreshing its sliding deadline.
func (s *SessionService) Get(id string) (*types.SessionRecord, error) {
	record, found := s.cache.GetSession(id)
	if !found {
		return nil, ErrSessionNotFound
	}
	return record, nil
}

// Update shallow-merges partialData into the session's attached data.
func (s *SessionService) Update(id string, partialData map[string]any) (*types.SessionRecord, error) {
	record, found := s.cache.UpdateSession(id, partialData)
	if !found {
		return nil, ErrSessionNotFound
	}
	return record, nil
}

// Logout deletes the session and, through the engine's cascade, its cart.
// Idempotent: logging out twice reports removed=false the second time.
func (s *SessionService) Logout(id string) bool {
	removed := s.cache.DeleteSession(id)

	if s.logger != nil {
		s.logger.Session().Info("Session logout", "sessionId", logging.SanitizeSessionID(id), "removed", removed)
	}
	return removed
}
