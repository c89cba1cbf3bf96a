package ratelimit

import (
	"sync"
	"time"
)

// FixedWindow is a process-local fixed-window limiter. Each key gets its own
// counter with its own lock, so contention on one busy key never blocks
// checks for unrelated keys. A key's window is anchored at its first attempt
// and resets entirely once the window elapses.
type FixedWindow struct {
	limit    int
	window   time.Duration
	counters sync.Map // string -> *counter
	now      func() time.Time
}

type counter struct {
	mu    sync.Mutex
	count int
	reset time.Time
}

func NewFixedWindow(limit int, window time.Duration) *FixedWindow {
	return &FixedWindow{
		limit:  limit,
		window: window,
		now:    time.Now,
	}
}

func (l *FixedWindow) Check(key string) Decision {
	value, _ := l.counters.LoadOrStore(key, &counter{})
	c := value.(*counter)

	c.mu.Lock()
	defer c.mu.Unlock()

	now := l.now()
	if c.count == 0 || !now.Before(c.reset) {
		c.count = 0
		c.reset = now.Add(l.window)
	}

	if c.count >= l.limit {
		return Decision{
			Allowed:    false,
			Limit:      l.limit,
			Remaining:  0,
			RetryAfter: c.reset.Sub(now),
			Reset:      c.reset,
		}
	}

	c.count++
	return Decision{
		Allowed:   true,
		Limit:     l.limit,
		Remaining: l.limit - c.count,
		Reset:     c.reset,
	}
}

// Sweep drops counters whose window has elapsed. Idle keys otherwise keep
// their entry around forever; run this periodically.
func (l *FixedWindow) Sweep() {
	now := l.now()
	l.counters.Range(func(key, value any) bool {
		c := value.(*counter)
		c.mu.Lock()
		stale := !now.Before(c.reset)
		c.mu.Unlock()
		if stale {
			l.counters.Delete(key)
		}
		return true
	})
}
