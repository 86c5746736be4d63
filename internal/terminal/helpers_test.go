package terminal

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/gmtstudio/gmt-terminal/internal/clock"
)

type recordingNavigator struct {
	views []string
}

func (n *recordingNavigator) Navigate(view string) { n.views = append(n.views, view) }

type fixture struct {
	session *Session
	clock   *clock.Fake
	nav     *recordingNavigator
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		clock: clock.NewFake(time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)),
		nav:   &recordingNavigator{},
	}
	f.session = NewSession(
		WithClock(f.clock),
		WithLogger(slog.New(slog.DiscardHandler)),
		WithNavigator(f.nav),
	)
	return f
}

// boot powers on and runs the whole boot sequence.
func (f *fixture) boot(t *testing.T) {
	t.Helper()
	f.session.PowerToggle()
	for f.session.BootTick() {
	}
	require.True(t, f.session.PuzzleVisible())
}

// ready drives the session all the way to the command prompt.
func (f *fixture) ready(t *testing.T) {
	t.Helper()
	f.boot(t)
	ok, err := f.session.SubmitPassword(Password)
	require.NoError(t, err)
	require.True(t, ok)
	require.NoError(t, f.session.OpenTerminal())
	require.Equal(t, StateReady, f.session.State())
}

// submit runs one command to completion and returns the transcript.
func (f *fixture) submit(t *testing.T, line string) []Line {
	t.Helper()
	require.NoError(t, f.session.Submit(line))
	f.session.Settle()
	return f.session.Transcript()
}

func lastOutput(t *testing.T, lines []Line) string {
	t.Helper()
	require.NotEmpty(t, lines)
	last := lines[len(lines)-1]
	require.Equal(t, RoleOutput, last.Role)
	require.True(t, last.Complete())
	return last.Full
}
