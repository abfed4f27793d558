package usecase

import "sync"

// SnapshotLock serializes top-level operations across every service
// that reads and mutates the shared league entities. Each operation
// performs its read-modify-write under the same lock, so no operation
// ever acts on a snapshot another one is halfway through changing.
// All services wired against the same store must share one lock.
type SnapshotLock struct {
	mu sync.Mutex
}

func NewSnapshotLock() *SnapshotLock {
	return &SnapshotLock{}
}

func (l *SnapshotLock) Lock()   { l.mu.Lock() }
func (l *SnapshotLock) Unlock() { l.mu.Unlock() }
