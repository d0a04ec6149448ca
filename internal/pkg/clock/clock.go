// Package clock provides time utilities for the application
package clock

import "time"

//go:generate mockgen -destination=mock/mock.go -package=mockclock github.com/KirkDiggler/verb-battle/internal/pkg/clock Clock,Ticker

// Clock provides time functionality
type Clock interface {
	Now() time.Time
	// NewTicker returns a ticker that fires every d
	NewTicker(d time.Duration) Ticker
}

// Ticker delivers ticks on C until stopped
type Ticker interface {
	C() <-chan time.Time
	// Reset restarts the period so the next tick arrives d from now
	Reset(d time.Duration)
	Stop()
}

// Real implements Clock using actual system time
type Real struct{}

// Now returns the current time
func (c *Real) Now() time.Time {
	return time.Now()
}

// NewTicker wraps time.NewTicker
func (c *Real) NewTicker(d time.Duration) Ticker {
	return &realTicker{t: time.NewTicker(d)}
}

// New returns a new real clock
func New() Clock {
	return &Real{}
}

type realTicker struct {
	t *time.Ticker
}

func (r *realTicker) C() <-chan time.Time { return r.t.C }

func (r *realTicker) Reset(d time.Duration) { r.t.Reset(d) }

func (r *realTicker) Stop() { r.t.Stop() }
