package services

import (
	"os"
	"time"

	"github.com/statecraft-labs/statecraft-go/internal/infrastructure/caching/interfaces"
	"github.com/statecraft-labs/statecraft-go/internal/infrastructure/caching/types"
	"github.com/statecraft-labs/statecraft-go/internal/infrastructure/observability/logging"
)

// ServerInfo is the payload of the stateless info endpoint. RequestNumber
// comes from the global counter and carries no per-client memory: two
// different clients interleave into one monotonic sequence.
type ServerInfo struct {
	RequestNumber int64     `json:"requestNumber"`
	Hostname      string    `json:"hostname"`
	StartedAt     time.Time `json:"startedAt"`
	UptimeSeconds float64   `json:"uptimeSeconds"`
	LiveSessions  int       `json:"liveSessions"`
}

// StateService serves the stateless counter demonstration and the sysop
// state export/import surface.
type StateService struct {
	cache     interfaces.Cache
	logger    *logging.ChanneledLogger
	startedAt time.Time
	hostname  string
}

// NewStateService creates a new state service
func NewStateService(cache interfaces.Cache, logger *logging.ChanneledLogger) *StateService {
	hostname, err := os.Hostname()
	if err != nil {
		hostname = "unknown"
	}
	return &StateService{
		cache:     cache,
		logger:    logger,
		startedAt: time.Now().UTC(),
		hostname:  hostname,
	}
}

// RecordRequest increments the global counter and returns the server info
// payload. Deliberately ignorant of any session context.
func (s *StateService) RecordRequest() *ServerInfo {
	now := time.Now().UTC()
	return &ServerInfo{
		RequestNumber: s.cache.IncrementCounter(),
		Hostname:      s.hostname,
		StartedAt:     s.startedAt,
		UptimeSeconds: now.Sub(s.startedAt).Seconds(),
		LiveSessions:  s.cache.SessionCount(),
	}
}

// CounterValue reads the counter without mutation.
func (s *StateService) CounterValue() int64 {
	return s.cache.GetCounter()
}

// Stats summarizes live engine state for the sysop dashboard.
func (s *StateService) Stats() interfaces.EngineStats {
	return s.cache.Stats()
}

// ExportState dumps all transient engine state.
func (s *StateService) ExportState() *types.StateSnapshot {
	return s.cache.ExportState()
}

// ImportState replaces all transient engine state with the snapshot.
func (s *StateService) ImportState(snapshot *types.StateSnapshot) {
	s.cache.ImportState(snapshot)
}
