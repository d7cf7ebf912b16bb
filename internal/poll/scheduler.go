// Package poll provides the fixed-interval refresh trigger.
//
// The scheduler is the correctness backstop for the change feed: the backing
// realtime feature may be unavailable or silently stop delivering, so ticks
// fire regardless of feed state. The initial load is a separate explicit call
// by the owner; the first tick only fires after one full interval.
package poll

import (
	"sync"
	"time"
)

// DefaultInterval is the refresh cadence when the caller passes zero.
const DefaultInterval = 5 * time.Second

// Schedule fires onTick every interval, starting after the first interval
// elapses. The returned cancel stops future ticks and is safe to call more
// than once. onTick runs on the scheduler goroutine; keep it short or hand
// off.
func Schedule(interval time.Duration, onTick func()) (cancel func()) {
	if interval <= 0 {
		interval = DefaultInterval
	}

	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				onTick()
			}
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() { close(done) })
	}
}
