package countdown

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gmtstudio/gmt-terminal/internal/clock"
)

var testTarget = Target{
	Start: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	End:   time.Date(2025, 1, 11, 0, 0, 0, 0, time.UTC),
}

func TestCompute_Breakdown(t *testing.T) {
	t.Parallel()
	now := testTarget.End.Add(-(3*24*time.Hour + 4*time.Hour + 5*time.Minute + 6*time.Second + 700*time.Millisecond))
	s := Compute(testTarget, now)
	assert.Equal(t, 3, s.Days)
	assert.Equal(t, 4, s.Hours)
	assert.Equal(t, 5, s.Minutes)
	assert.Equal(t, 6, s.Seconds, "seconds floor, never round up")
	assert.False(t, s.Done)
	assert.Equal(t, 68, s.Progress)
	assert.Equal(t, PhaseDevelopment, s.Phase)
	assert.Equal(t, "3d 04:05:06 (68%)", s.String())
}

func TestCompute_CompletedAtAndAfterEnd(t *testing.T) {
	t.Parallel()
	for _, now := range []time.Time{testTarget.End, testTarget.End.Add(time.Hour)} {
		s := Compute(testTarget, now)
		assert.True(t, s.Done)
		assert.Equal(t, Snapshot{Progress: 100, Phase: PhaseLaunch, Done: true}, s)
	}
}

func TestProgress_ClampedAndMonotonic(t *testing.T) {
	t.Parallel()
	assert.Equal(t, 0, Progress(testTarget, testTarget.Start.Add(-48*time.Hour)))
	assert.Equal(t, 0, Progress(testTarget, testTarget.Start))
	assert.Equal(t, 50, Progress(testTarget, testTarget.Start.Add(5*24*time.Hour)))
	assert.Equal(t, 100, Progress(testTarget, testTarget.End))
	assert.Equal(t, 100, Progress(testTarget, testTarget.End.Add(48*time.Hour)))

	prev := -1
	for now := testTarget.Start.Add(-24 * time.Hour); now.Before(testTarget.End.Add(24 * time.Hour)); now = now.Add(37 * time.Minute) {
		p := Progress(testTarget, now)
		require.GreaterOrEqual(t, p, prev, "progress decreased at %v", now)
		require.GreaterOrEqual(t, p, 0)
		require.LessOrEqual(t, p, 100)
		prev = p
	}
}

func TestProgress_DegenerateTarget(t *testing.T) {
	t.Parallel()
	at := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	target := Target{Start: at, End: at}
	assert.Equal(t, 0, Progress(target, at.Add(-time.Second)))
	assert.Equal(t, 100, Progress(target, at))
}

func TestPhaseFor(t *testing.T) {
	t.Parallel()
	assert.Equal(t, PhasePlanning, phaseFor(0))
	assert.Equal(t, PhasePlanning, phaseFor(24))
	assert.Equal(t, PhaseDevelopment, phaseFor(25))
	assert.Equal(t, PhaseTesting, phaseFor(75))
	assert.Equal(t, PhaseTesting, phaseFor(99))
	assert.Equal(t, PhaseLaunch, phaseFor(100))
}

func TestEngine_TickFollowsClockThenFreezes(t *testing.T) {
	t.Parallel()
	c := clock.NewFake(testTarget.End.Add(-2 * time.Second))
	e := NewEngine(testTarget, c)
	assert.Equal(t, 2, e.Snapshot().Seconds)

	c.Advance(time.Second)
	assert.Equal(t, 1, e.Tick().Seconds)

	c.Advance(time.Second)
	done := e.Tick()
	assert.True(t, done.Done)

	// A clock moving backwards after completion must not unfreeze it.
	c.Set(testTarget.Start)
	assert.Equal(t, done, e.Tick())
	assert.Equal(t, testTarget, e.Target())
}

func TestDefaultTarget(t *testing.T) {
	t.Parallel()
	target := DefaultTarget()
	assert.True(t, target.Start.Before(target.End))
	assert.Equal(t, 2025, target.End.Year())
	assert.Equal(t, time.July, target.End.Month())
}
