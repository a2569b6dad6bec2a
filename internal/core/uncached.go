package core

import "sync"

// closerComparable statements can be tracked by identity in a map, which is
// what the registry needs to support caller-initiated removal before a flush
// happens.
type closerComparable interface {
	Closer
	comparable
}

// UncachedRegistry tracks statements created outside the LRU cache so they
// can be force-closed when the holder moves to IN_POOL or NOT_ACCESSIBLE. It
// permits unsynchronized-looking concurrent insertion and removal from
// caller threads; internally every operation is guarded by a single mutex.
type UncachedRegistry[S closerComparable] struct {
	mu  sync.Mutex
	set map[S]struct{}
}

// NewUncachedRegistry constructs an empty registry.
func NewUncachedRegistry[S closerComparable]() *UncachedRegistry[S] {
	return &UncachedRegistry[S]{set: make(map[S]struct{})}
}

// Register adds stmt to the registry on creation.
func (r *UncachedRegistry[S]) Register(stmt S) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.set[stmt] = struct{}{}
}

// Unregister removes stmt from the registry, reporting whether it was
// present. Called when a caller closes a statement itself, independently of
// holder lifecycle.
func (r *UncachedRegistry[S]) Unregister(stmt S) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.set[stmt]; !ok {
		return false
	}
	delete(r.set, stmt)
	return true
}

// Len reports the number of currently registered statements.
func (r *UncachedRegistry[S]) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.set)
}

// Flush swaps out the entire contents of the registry and closes each one,
// logging and continuing past any individual failure so one bad close
// cannot prevent the rest from being closed. Called from the holder's
// pre-transition hook when moving to IN_POOL or NOT_ACCESSIBLE, so that the
// registry is guaranteed empty before the new state becomes visible.
func (r *UncachedRegistry[S]) Flush() {
	r.mu.Lock()
	snapshot := r.set
	r.set = make(map[S]struct{})
	r.mu.Unlock()

	for stmt := range snapshot {
		if err := stmt.Close(); err != nil {
			Logger().Warn("uncached: failed to close statement on flush", "error", err)
		}
	}
}
