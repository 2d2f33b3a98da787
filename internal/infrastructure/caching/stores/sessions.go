// Package stores provides concrete in-memory store implementations
package stores

import (
	"maps"
	"sync"
	"time"

	"github.com/statecraft-labs/statecraft-go/internal/infrastructure/caching/types"
	"github.com/statecraft-labs/statecraft-go/internal/infrastructure/observability/logging"
	"github.com/statecraft-labs/statecraft-go/internal/infrastructure/security"
)

// SessionsStore manages the full lifecycle of session records with
// sliding-window expiry. All mutating operations, including Get's access-time
// refresh, run under the write lock, so read-then-refresh is atomic and the
// sweep can never observe a record mid-refresh.
type SessionsStore struct {
	sessions map[string]*types.SessionRecord
	ttl      time.Duration
	mu       sync.RWMutex
	logger   *logging.ChanneledLogger

	// now is swappable for expiry tests
	now func() time.Time
}

// NewSessionsStore creates a new sessions store with the given sliding TTL
func NewSessionsStore(ttl time.Duration, logger *logging.ChanneledLogger) *SessionsStore {
	if logger != nil {
		logger.Session().Info("Initializing sessions store", "ttl", ttl)
	}
	return &SessionsStore{
		sessions: make(map[string]*types.SessionRecord),
		ttl:      ttl,
		logger:   logger,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Create issues a new session with an opaque, unguessable identifier. Creation
// has no failure path.
func (ss *SessionsStore) Create(userID *string, initialData map[string]any) *types.SessionRecord {
	start := time.Now()
	now := ss.now()

	record := &types.SessionRecord{
		ID:             security.GenerateSessionToken(),
		UserID:         userID,
		CreatedAt:      now,
		LastAccessedAt: now,
		ExpiresAt:      now.Add(ss.ttl),
		Data:           maps.Clone(initialData),
	}
	if record.Data == nil {
		record.Data = make(map[string]any)
	}

	ss.mu.Lock()
	ss.sessions[record.ID] = record
	ss.mu.Unlock()

	if ss.logger != nil {
		ss.logger.Session().Debug("Store operation", "operation", "create", "sessionId", logging.SanitizeSessionID(record.ID), "hasUser", userID != nil, "duration", time.Since(start))
	}
	return record.Clone()
}

// Get returns the live session for id and refreshes its sliding deadline. A
// never-issued, deleted, or expired id all produce the same miss; the caller
// cannot tell the causes apart. An expired record found here is removed
// eagerly rather than left for the sweep.
func (ss *SessionsStore) Get(id string) (*types.SessionRecord, bool) {
	start := time.Now()
	now := ss.now()

	ss.mu.Lock()
	defer ss.mu.Unlock()

	record, found := ss.sessions[id]
	if !found {
		if ss.logger != nil {
			ss.logger.Session().Debug("Store operation", "operation", "get", "sessionId", logging.SanitizeSessionID(id), "hit", false, "duration", time.Since(start))
		}
		return nil, false
	}

	if record.Expired(now) {
		delete(ss.sessions, id)
		if ss.logger != nil {
			ss.logger.Session().Debug("Store operation", "operation", "get", "sessionId", logging.SanitizeSessionID(id), "hit", false, "duration", time.Since(start))
		}
		return nil, false
	}

	record.LastAccessedAt = now
	record.ExpiresAt = now.Add(ss.ttl)

	if ss.logger != nil {
		ss.logger.Session().Debug("Store operation", "operation", "get", "sessionId", logging.SanitizeSessionID(id), "hit", true, "duration", time.Since(start))
	}
	return record.Clone(), true
}

// Update shallow-merges partialData into the session's data: keys in
// partialData overwrite, all other keys are untouched. Refreshes the sliding
// deadline like Get.
func (ss *SessionsStore) Update(id string, partialData map[string]any) (*types.SessionRecord, bool) {
	start := time.Now()
	now := ss.now()

	ss.mu.Lock()
	defer ss.mu.Unlock()

	record, found := ss.sessions[id]
	if !found || record.Expired(now) {
		if found {
			delete(ss.sessions, id)
		}
		if ss.logger != nil {
			ss.logger.Session().Debug("Store operation", "operation", "update", "sessionId", logging.SanitizeSessionID(id), "hit", false, "duration", time.Since(start))
		}
		return nil, false
	}

	for key, value := range partialData {
		record.Data[key] = value
	}
	record.LastAccessedAt = now
	record.ExpiresAt = now.Add(ss.ttl)

	if ss.logger != nil {
		ss.logger.Session().Debug("Store operation", "operation", "update", "sessionId", logging.SanitizeSessionID(id), "hit", true, "mergedKeys", len(partialData), "duration", time.Since(start))
	}
	return record.Clone(), true
}

// Delete removes the record and reports whether anything was removed.
// Deleting twice is not an error; the second call simply returns false.
func (ss *SessionsStore) Delete(id string) bool {
	start := time.Now()

	ss.mu.Lock()
	_, found := ss.sessions[id]
	if found {
		delete(ss.sessions, id)
	}
	ss.mu.Unlock()

	if ss.logger != nil {
		ss.logger.Session().Debug("Store operation", "operation", "delete", "sessionId", logging.SanitizeSessionID(id), "hit", found, "duration", time.Since(start))
	}
	return found
}

// SweepExpired removes every session whose deadline has passed and returns
// their ids. Expiry is evaluated under the write lock, so a session refreshed
// after the sweep began is compared against its refreshed deadline and
// survives.
func (ss *SessionsStore) SweepExpired() []string {
	start := time.Now()
	now := ss.now()

	ss.mu.Lock()
	var removed []string
	for id, record := range ss.sessions {
		if record.Expired(now) {
			delete(ss.sessions, id)
			removed = append(removed, id)
		}
	}
	ss.mu.Unlock()

	if ss.logger != nil && len(removed) > 0 {
		ss.logger.Sweep().Info("Expired sessions swept", "count", len(removed), "duration", time.Since(start))
	}
	return removed
}

// Has reports whether a record exists for id, without refreshing it. Expired
// records still present count as existing; the next sweep handles them.
func (ss *SessionsStore) Has(id string) bool {
	ss.mu.RLock()
	defer ss.mu.RUnlock()
	_, found := ss.sessions[id]
	return found
}

// Count returns the number of live records, expired-but-unswept included.
func (ss *SessionsStore) Count() int {
	ss.mu.RLock()
	defer ss.mu.RUnlock()
	return len(ss.sessions)
}

// AllIDs returns a snapshot of all session ids.
func (ss *SessionsStore) AllIDs() []string {
	ss.mu.RLock()
	defer ss.mu.RUnlock()

	ids := make([]string, 0, len(ss.sessions))
	for id := range ss.sessions {
		ids = append(ids, id)
	}
	return ids
}

// Snapshot returns deep copies of every record for state export.
func (ss *SessionsStore) Snapshot() []types.SessionRecord {
	ss.mu.RLock()
	defer ss.mu.RUnlock()

	records := make([]types.SessionRecord, 0, len(ss.sessions))
	for _, record := range ss.sessions {
		records = append(records, *record.Clone())
	}
	return records
}

// Restore replaces all live sessions with the given records.
func (ss *SessionsStore) Restore(records []types.SessionRecord) {
	ss.mu.Lock()
	defer ss.mu.Unlock()

	ss.sessions = make(map[string]*types.SessionRecord, len(records))
	for i := range records {
		record := records[i]
		ss.sessions[record.ID] = record.Clone()
	}

	if ss.logger != nil {
		ss.logger.Session().Info("Sessions restored from snapshot", "count", len(records))
	}
}

// SetNowFunc overrides the store clock. Test hook.
func (ss *SessionsStore) SetNowFunc(now func() time.Time) {
	ss.mu.Lock()
	defer ss.mu.Unlock()
	ss.now = now
}
