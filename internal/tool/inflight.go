package tool

import (
	"context"
	"sync/atomic"
	"time"
)

// InFlightTracker counts invocations currently being served. The shutdown
// path waits on it before releasing the shared HTTP client.
type InFlightTracker struct {
	count atomic.Int64
}

// Increment adds one to the in-flight count. Call when an invocation starts.
func (t *InFlightTracker) Increment() {
	t.count.Add(1)
}

// Decrement subtracts one from the in-flight count. Call when an invocation completes.
func (t *InFlightTracker) Decrement() {
	t.count.Add(-1)
}

// Count returns the current in-flight count.
func (t *InFlightTracker) Count() int64 {
	return t.count.Load()
}

// WaitForZero blocks until the in-flight count reaches zero or ctx is done.
// checkInterval is how often to re-check the count.
func (t *InFlightTracker) WaitForZero(ctx context.Context, checkInterval time.Duration) error {
	ticker := time.NewTicker(checkInterval)
	defer ticker.Stop()
	for {
		if t.Count() == 0 {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}
