package types

import "time"

// StateSnapshot is a point-in-time JSON dump of all transient engine state.
// It exists for demonstration and debugging only; the engine never writes it
// to disk on its own, and a process restart still loses everything.
type StateSnapshot struct {
	Sessions   []SessionRecord `json:"sessions"`
	Carts      []Cart          `json:"carts"`
	Counter    int64           `json:"counter"`
	ExportedAt time.Time       `json:"exportedAt"`
}
