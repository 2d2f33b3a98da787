package stores

import (
	"sync/atomic"

	"github.com/statecraft-labs/statecraft-go/internal/infrastructure/observability/logging"
)

// CounterStore is the stateless request counter: one process-wide integer
// with no keying by client, IP, or session. It resets to zero only on process
// restart, which is the point of the demonstration.
type CounterStore struct {
	value  atomic.Int64
	logger *logging.ChanneledLogger
}

// NewCounterStore creates the global request counter
func NewCounterStore(logger *logging.ChanneledLogger) *CounterStore {
	if logger != nil {
		logger.Counter().Info("Initializing stateless request counter")
	}
	return &CounterStore{logger: logger}
}

// IncrementAndGet atomically increments the counter and returns the new value.
func (c *CounterStore) IncrementAndGet() int64 {
	value := c.value.Add(1)
	if c.logger != nil {
		c.logger.Counter().Debug("Counter incremented", "value", value)
	}
	return value
}

// Get reads the counter without mutation.
func (c *CounterStore) Get() int64 {
	return c.value.Load()
}

// Set overwrites the counter. Used only by state import.
func (c *CounterStore) Set(value int64) {
	c.value.Store(value)
}
