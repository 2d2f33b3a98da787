// Package types defines session and cart state data structures.
package types

import (
	"maps"
	"time"
)

// SessionRecord is an ephemeral session owned exclusively by the sessions
// store. ExpiresAt is a sliding deadline: every successful read recomputes it
// as LastAccessedAt + TTL, so the record decays only from inactivity.
type SessionRecord struct {
	ID             string         `json:"id"`
	UserID         *string        `json:"userId,omitempty"`
	CreatedAt      time.Time      `json:"createdAt"`
	LastAccessedAt time.Time      `json:"lastAccessedAt"`
	ExpiresAt      time.Time      `json:"expiresAt"`
	Data           map[string]any `json:"data"`
}

// Expired reports whether the record's deadline has passed at the given instant.
func (s *SessionRecord) Expired(now time.Time) bool {
	return !s.ExpiresAt.After(now)
}

// Clone returns a deep copy so callers never mutate store-owned state.
func (s *SessionRecord) Clone() *SessionRecord {
	if s == nil {
		return nil
	}
	clone := *s
	clone.Data = maps.Clone(s.Data)
	return &clone
}
