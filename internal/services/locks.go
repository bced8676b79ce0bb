package services

import "sync"

// keyedLocks serializes check-then-commit sections per key. Services are
// constructed per request, so the arenas live at package level.
type keyedLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newKeyedLocks() *keyedLocks {
	return &keyedLocks{locks: map[string]*sync.Mutex{}}
}

// Lock acquires the mutex for key and returns its unlock func.
func (k *keyedLocks) Lock(key string) func() {
	k.mu.Lock()
	m, ok := k.locks[key]
	if !ok {
		m = &sync.Mutex{}
		k.locks[key] = m
	}
	k.mu.Unlock()

	m.Lock()
	return m.Unlock
}

var (
	// assignLocks serializes trip assignment per (depot, serviceDate).
	assignLocks = newKeyedLocks()
	// bookingLocks serializes seat reservation per (trip, serviceDate).
	// The booking_seats unique key remains the storage-level backstop.
	bookingLocks = newKeyedLocks()
)
