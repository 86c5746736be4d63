// Package countdown computes the launch countdown shown beside the terminal.
package countdown

import (
	"fmt"
	"math"
	"time"

	"github.com/gmtstudio/gmt-terminal/internal/clock"
)

// Phase names the milestone the project is in, derived from progress.
type Phase string

const (
	PhasePlanning    Phase = "planning"
	PhaseDevelopment Phase = "development"
	PhaseTesting     Phase = "testing"
	PhaseLaunch      Phase = "launch"
)

// Target is the fixed window the countdown measures.
type Target struct {
	Start time.Time
	End   time.Time
}

// DefaultTarget is the website build window, in local time.
func DefaultTarget() Target {
	return Target{
		Start: time.Date(2024, time.November, 1, 0, 0, 0, 0, time.Local),
		End:   time.Date(2025, time.July, 1, 0, 0, 0, 0, time.Local),
	}
}

// Snapshot is one evaluation of the countdown.
type Snapshot struct {
	Days     int
	Hours    int
	Minutes  int
	Seconds  int
	Progress int // 0..100
	Phase    Phase
	Done     bool
}

// String renders the snapshot as "DDd HH:MM:SS (P%)".
func (s Snapshot) String() string {
	return fmt.Sprintf("%dd %02d:%02d:%02d (%d%%)", s.Days, s.Hours, s.Minutes, s.Seconds, s.Progress)
}

var completed = Snapshot{Progress: 100, Phase: PhaseLaunch, Done: true}

// Compute evaluates target at now. Once End has been reached the snapshot is
// the completed state: all units zero, 100% progress.
func Compute(target Target, now time.Time) Snapshot {
	remaining := target.End.Sub(now)
	if remaining <= 0 {
		return completed
	}

	s := Snapshot{
		Days:     int(remaining / (24 * time.Hour)),
		Hours:    int(remaining % (24 * time.Hour) / time.Hour),
		Minutes:  int(remaining % time.Hour / time.Minute),
		Seconds:  int(remaining % time.Minute / time.Second),
		Progress: Progress(target, now),
	}
	s.Phase = phaseFor(s.Progress)
	return s
}

// Progress returns round(100 * elapsed / total), clamped to [0, 100].
func Progress(target Target, now time.Time) int {
	total := target.End.Sub(target.Start)
	if total <= 0 {
		if now.Before(target.End) {
			return 0
		}
		return 100
	}
	p := math.Round(100 * float64(now.Sub(target.Start)) / float64(total))
	return int(math.Max(0, math.Min(100, p)))
}

func phaseFor(progress int) Phase {
	switch {
	case progress < 25:
		return PhasePlanning
	case progress < 75:
		return PhaseDevelopment
	case progress < 100:
		return PhaseTesting
	default:
		return PhaseLaunch
	}
}

// Engine re-evaluates a Target against a clock. It freezes once the target
// is reached: further ticks return the completed snapshot without reading
// the clock.
type Engine struct {
	target Target
	clock  clock.Clock
	last   Snapshot
	frozen bool
}

// NewEngine returns an Engine already evaluated at the clock's current time.
func NewEngine(target Target, c clock.Clock) *Engine {
	e := &Engine{target: target, clock: c}
	e.Tick()
	return e
}

// Tick recomputes the snapshot. Hosts call it once per second.
func (e *Engine) Tick() Snapshot {
	if e.frozen {
		return e.last
	}
	e.last = Compute(e.target, e.clock.Now())
	e.frozen = e.last.Done
	return e.last
}

// Snapshot returns the most recent evaluation.
func (e *Engine) Snapshot() Snapshot { return e.last }

// Target returns the window being measured.
func (e *Engine) Target() Target { return e.target }
