// Package catalog defines the seeded reference entities: users and products.
package catalog

import (
	"maps"
	"time"
)

// User is a catalog-owned account record. Identity is immutable after
// creation; Preferences is a freeform mapping.
type User struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Email       string         `json:"email"`
	Preferences map[string]any `json:"preferences"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
}

// Clone returns a deep copy so callers never hold pointers into store-owned state.
func (u *User) Clone() *User {
	if u == nil {
		return nil
	}
	clone := *u
	clone.Preferences = maps.Clone(u.Preferences)
	return &clone
}
