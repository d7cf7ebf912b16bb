package poll

import (
	"sync/atomic"
	"testing"
	"time"
)

func TestSchedule_DoesNotFireImmediately(t *testing.T) {
	var ticks atomic.Int64
	cancel := Schedule(100*time.Millisecond, func() { ticks.Add(1) })
	defer cancel()

	time.Sleep(30 * time.Millisecond)
	if got := ticks.Load(); got != 0 {
		t.Fatalf("ticks = %d before first interval elapsed, want 0", got)
	}
}

func TestSchedule_FiresAfterInterval(t *testing.T) {
	fired := make(chan struct{}, 1)
	start := time.Now()
	cancel := Schedule(50*time.Millisecond, func() {
		select {
		case fired <- struct{}{}:
		default:
		}
	})
	defer cancel()

	select {
	case <-fired:
		if elapsed := time.Since(start); elapsed < 40*time.Millisecond {
			t.Fatalf("first tick after %v, want >= interval", elapsed)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("scheduler never fired")
	}
}

func TestSchedule_CancelStopsTicksAndIsIdempotent(t *testing.T) {
	var ticks atomic.Int64
	cancel := Schedule(20*time.Millisecond, func() { ticks.Add(1) })

	time.Sleep(70 * time.Millisecond)
	cancel()
	cancel() // must be safe to call again

	settled := ticks.Load()
	if settled == 0 {
		t.Fatal("scheduler never ticked before cancel")
	}
	time.Sleep(80 * time.Millisecond)
	if got := ticks.Load(); got != settled {
		t.Fatalf("ticks advanced after cancel: %d -> %d", settled, got)
	}
}

func TestSchedule_ZeroIntervalUsesDefault(t *testing.T) {
	var ticks atomic.Int64
	cancel := Schedule(0, func() { ticks.Add(1) })
	defer cancel()

	// The default interval is seconds; nothing should fire this quickly.
	time.Sleep(50 * time.Millisecond)
	if got := ticks.Load(); got != 0 {
		t.Fatalf("ticks = %d with default interval, want 0 this early", got)
	}
}
