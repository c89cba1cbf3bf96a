// Package ratelimit throttles repeated login attempts with a fixed-window
// counter per client key.
package ratelimit

import "time"

const (
	DefaultLimit  = 5
	DefaultWindow = time.Minute
)

// Decision is the outcome of one admission check. On denial, Remaining is
// zero and RetryAfter/Reset tell the client when the window opens again.
type Decision struct {
	Allowed    bool
	Limit      int
	Remaining  int
	RetryAfter time.Duration
	Reset      time.Time
}

// Limiter admits or denies an attempt for a client key. Implementations must
// be safe for concurrent use. A single-process implementation and one backed
// by a shared store are interchangeable behind this interface; the in-memory
// one enforces its limit per process instance, which is a documented
// limitation of such deployments, not something this package papers over.
type Limiter interface {
	Check(key string) Decision
}
