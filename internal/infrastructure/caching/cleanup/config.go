package cleanup

import (
	"time"

	"github.com/statecraft-labs/statecraft-go/pkg/config"
)

// Config holds sweep worker configuration, sourced from the central config package.
type Config struct {
	SweepInterval    time.Duration
	VerboseReporting bool
}

// NewConfig creates a new sweep configuration by reading values from the
// already-initialized variables in the centralized /pkg/config package.
func NewConfig() *Config {
	return &Config{
		SweepInterval:    config.SweepInterval,
		VerboseReporting: config.SweepVerbose,
	}
}
