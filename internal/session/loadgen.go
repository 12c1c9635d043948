package session

import "sync/atomic"

// LoadTracker hands out load generations so that a slow fetch cannot
// overwrite the result of a newer one. Call Begin when a load starts and
// apply its result only if IsCurrent still holds for that generation.
type LoadTracker struct {
	gen atomic.Uint64
}

// Begin starts a new load and supersedes all earlier ones.
func (t *LoadTracker) Begin() uint64 {
	return t.gen.Add(1)
}

// IsCurrent reports whether gen is the most recent load.
func (t *LoadTracker) IsCurrent(gen uint64) bool {
	return t.gen.Load() == gen
}
