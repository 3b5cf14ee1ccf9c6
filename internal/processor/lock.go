package processor

import "sync/atomic"

// RunLock is a non-blocking lock that rejects overlapping directory runs
// instead of queueing them.
type RunLock struct {
	state atomic.Int32 // 0 = free, 1 = held
}

// TryAcquire takes the lock if it is free and reports whether it did
func (l *RunLock) TryAcquire() bool {
	return l.state.CompareAndSwap(0, 1)
}

// Release frees the lock. Only the holder may call it.
func (l *RunLock) Release() {
	l.state.Store(0)
}

// Held reports whether a run is in progress
func (l *RunLock) Held() bool {
	return l.state.Load() == 1
}
