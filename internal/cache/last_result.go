package cache

import (
	"sync"

	"fatiguelens/internal/models"
)

// LastResult is a single-slot, process-wide holder of the most recent
// prediction. Set overwrites unconditionally; Get returns the current value or
// ok=false if no prediction has ever been produced. Safe for concurrent use.
type LastResult struct {
	mu       sync.RWMutex
	snapshot models.Snapshot
	set      bool
}

// New returns an empty cache. Construct one per serving graph (and per test)
// rather than sharing module-level state.
func New() *LastResult {
	return &LastResult{}
}

// Set replaces the held snapshot.
func (c *LastResult) Set(snap models.Snapshot) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.snapshot = snap
	c.set = true
}

// Get returns the held snapshot, if any.
func (c *LastResult) Get() (models.Snapshot, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.snapshot, c.set
}
