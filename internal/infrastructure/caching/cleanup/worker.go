package cleanup

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/statecraft-labs/statecraft-go/internal/infrastructure/caching/interfaces"
)

// Worker runs the periodic expiry sweep in the background. The sweep is a
// safety net: Get and Update already drop expired records eagerly, so the
// worker only catches sessions nobody touched again.
type Worker struct {
	cache  interfaces.Cache
	config *Config
}

// NewWorker creates a new sweep worker with injected configuration
func NewWorker(cache interfaces.Cache, config *Config) *Worker {
	return &Worker{
		cache:  cache,
		config: config,
	}
}

// Start begins the sweep worker routine, using the configured interval
func (w *Worker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.config.SweepInterval)
	defer ticker.Stop()

	log.Printf("Expiry sweep worker started (interval: %v, verbose: %v)",
		w.config.SweepInterval, w.config.VerboseReporting)

	for {
		select {
		case <-ctx.Done():
			log.Println("Expiry sweep worker stopping...")
			return
		case <-ticker.C:
			w.performSweep()
		}
	}
}

// performSweep executes one expiry pass over the session store
func (w *Worker) performSweep() {
	start := time.Now()
	reporter := NewReporter(w.cache)

	if w.config.VerboseReporting {
		reporter.LogStage("PERIODIC EXPIRY SWEEP")
		fmt.Print(reporter.GenerateEngineReport())
	}

	removed := w.cache.SweepExpiredSessions()

	duration := time.Since(start)
	if removed > 0 {
		reporter.LogSuccess("Expiry sweep finished: %d sessions removed in %v", removed, duration)
	} else if w.config.VerboseReporting {
		reporter.LogInfo("Expiry sweep completed - no expired sessions found (%v)", duration)
	}
}
