// Package clock abstracts wall-clock time and recurring timers so that the
// terminal hosts can be driven deterministically in tests.
package clock

import (
	"time"
)

// Clock is the time source used by the countdown engine, the session's
// transient error flag, and the line-mode host.
type Clock interface {
	Now() time.Time
	// NewTicker returns a ticker that fires every d. The caller must Stop it.
	NewTicker(d time.Duration) Ticker
}

// Ticker is the subset of time.Ticker the hosts rely on.
type Ticker interface {
	C() <-chan time.Time
	Stop()
}

// Real is the system clock.
type Real struct{}

var _ Clock = Real{}

func (Real) Now() time.Time { return time.Now() }

func (Real) NewTicker(d time.Duration) Ticker {
	return realTicker{time.NewTicker(d)}
}

type realTicker struct{ t *time.Ticker }

func (r realTicker) C() <-chan time.Time { return r.t.C }
func (r realTicker) Stop()               { r.t.Stop() }
