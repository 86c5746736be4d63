package console

import (
	"context"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gmtstudio/gmt-terminal/internal/clock"
	"github.com/gmtstudio/gmt-terminal/internal/terminal"
	"github.com/gmtstudio/gmt-terminal/internal/testutil"
)

const bootInterval = 800 * time.Millisecond

type harness struct {
	t      *testing.T
	clock  *clock.Fake
	out    *testutil.SyncBuffer
	input  chan string
	host   *Host
	done   chan error
	cancel context.CancelFunc
}

func start(t *testing.T, reveal time.Duration) *harness {
	t.Helper()
	h := &harness{
		t:     t,
		clock: clock.NewFake(time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)),
		out:   &testutil.SyncBuffer{},
		input: make(chan string),
		done:  make(chan error, 1),
	}
	h.host = New(h.out, Options{
		Clock:          h.clock,
		Logger:         slog.New(slog.DiscardHandler),
		BootInterval:   bootInterval,
		RevealInterval: reveal,
	})
	ctx, cancel := context.WithCancel(context.Background())
	h.cancel = cancel
	go func() { h.done <- h.host.Run(ctx, h.input) }()
	t.Cleanup(func() {
		cancel()
		<-h.done
	})
	return h
}

func (h *harness) send(line string) {
	h.t.Helper()
	select {
	case h.input <- line:
	case <-time.After(testutil.DefaultTimeout):
		h.t.Fatalf("host did not accept %q", line)
	}
}

func (h *harness) waitFor(substr string) string {
	h.t.Helper()
	out, err := testutil.WaitForState(context.Background(), h.out.String,
		func(s string) bool { return strings.Contains(s, substr) },
		testutil.DefaultTimeout, testutil.DefaultInterval)
	require.NoError(h.t, err, "waiting for %q in:\n%s", substr, h.out.String())
	return out
}

func (h *harness) waitTickers(n int) {
	h.t.Helper()
	_, err := testutil.WaitForState(context.Background(), h.clock.ActiveTickers,
		func(got int) bool { return got == n },
		testutil.DefaultTimeout, testutil.DefaultInterval)
	require.NoError(h.t, err, "waiting for %d active tickers", n)
}

func (h *harness) boot() {
	h.t.Helper()
	h.send(PowerWord)
	h.waitFor("[power on]")
	h.finishBoot()
	h.waitFor(terminal.PuzzlePrompt)
}

// finishBoot finishes a boot that was started by an earlier power line.
func (h *harness) finishBoot() {
	h.t.Helper()
	for _, msg := range terminal.BootSequence {
		h.waitTickers(1)
		h.clock.Advance(bootInterval)
		h.waitFor(msg)
	}
	h.waitTickers(0)
}

func (h *harness) ready() {
	h.t.Helper()
	h.boot()
	h.send(terminal.Password)
	h.waitFor(grantedText)
	h.send(OpenWord)
	h.waitFor(terminal.WelcomeText)
}

func TestPoweredOffPrompt(t *testing.T) {
	h := start(t, 0)
	h.send("hello")
	h.waitFor(offText)
}

func TestBootAndUnlock(t *testing.T) {
	h := start(t, 0)
	h.boot()

	h.send("wrong")
	h.waitFor(deniedText)
	h.send("wrong")
	h.send("wrong")
	h.waitFor(terminal.PuzzleHint)

	h.send(terminal.Password)
	h.waitFor(grantedText)
	h.send("help")
	_, err := testutil.WaitForState(context.Background(), h.out.String,
		func(s string) bool { return strings.Count(s, openHint) == 2 },
		testutil.DefaultTimeout, testutil.DefaultInterval)
	require.NoError(t, err)
	h.send("OPEN")
	h.waitFor(terminal.WelcomeText)
}

func TestCommandsPrintInstantly(t *testing.T) {
	h := start(t, 0)
	h.ready()

	h.send("About")
	out := h.waitFor(terminal.AboutText)
	assert.Contains(t, out, "$ about\n"+terminal.AboutText+"\n")

	h.send("decode_binary 01000111 01001101 01010100")
	h.waitFor("$ decode_binary 01000111 01001101 01010100\nGMT\n")

	h.send("cd hero")
	out = h.waitFor(terminal.HeroTagline)
	assert.Contains(t, out, "Navigating to hero...\n"+terminal.HeroBanner())
	h.waitTickers(0)
}

func TestRevealFollowsTicker(t *testing.T) {
	h := start(t, 10*time.Millisecond)
	h.ready()

	h.send("decode_binary 01001111 01001011")
	h.waitFor("$ decode_binary 01001111 01001011\n")
	h.waitTickers(1)
	assert.True(t, strings.HasSuffix(h.out.String(), "01001011\n"))

	h.clock.Advance(10 * time.Millisecond)
	h.waitFor("01001011\nO")
	h.clock.Advance(10 * time.Millisecond)
	h.waitFor("01001011\nOK\n")
	h.waitTickers(0)
}

func TestPowerOffMidRevealReleasesTickers(t *testing.T) {
	h := start(t, 10*time.Millisecond)
	h.ready()

	h.send("about")
	h.waitTickers(1)
	h.clock.Advance(10 * time.Millisecond)
	h.waitFor("$ about\nG")

	h.send(PowerWord)
	out := h.waitFor("[power off]")
	assert.Contains(t, out, "$ about\nG\n[power off]\n")
	h.waitTickers(0)
	assert.Equal(t, terminal.StateOff, h.host.Session().State())
}

func TestInputCloseSettlesOutput(t *testing.T) {
	h := start(t, 10*time.Millisecond)
	h.ready()

	h.send("about")
	h.waitTickers(1)
	close(h.input)

	select {
	case err := <-h.done:
		require.NoError(t, err)
		h.done <- nil
	case <-time.After(testutil.DefaultTimeout):
		t.Fatal("Run did not return after input closed")
	}
	assert.True(t, strings.HasSuffix(h.out.String(), "$ about\n"+terminal.AboutText+"\n"))
	assert.Zero(t, h.clock.ActiveTickers())
}

func TestLinesDuringBootAreReplayed(t *testing.T) {
	h := start(t, 0)
	h.send(PowerWord)
	h.send(terminal.Password)
	h.send(OpenWord)
	h.send("about")
	close(h.input)
	h.finishBoot()

	select {
	case err := <-h.done:
		require.NoError(t, err)
		h.done <- nil
	case <-time.After(testutil.DefaultTimeout):
		t.Fatal("Run did not return after boot and input close")
	}
	out := h.out.String()
	assert.Contains(t, out, terminal.PuzzlePrompt+"\n"+grantedText+"\n"+terminal.WelcomeText+"\n$ about\n"+terminal.AboutText+"\n")
	assert.Zero(t, h.clock.ActiveTickers())
}

func TestPowerOffDropsBootBacklog(t *testing.T) {
	h := start(t, 0)
	h.send(PowerWord)
	h.send(terminal.Password)
	h.send(PowerWord)
	h.waitFor("[power off]")
	h.send(PowerWord)
	h.finishBoot()
	assert.NotContains(t, h.out.String(), grantedText)
}

func TestContextCancel(t *testing.T) {
	h := start(t, 0)
	h.send(PowerWord)
	h.waitTickers(1)
	h.cancel()

	select {
	case err := <-h.done:
		assert.ErrorIs(t, err, context.Canceled)
		h.done <- nil
	case <-time.After(testutil.DefaultTimeout):
		t.Fatal("Run did not return after cancel")
	}
	assert.Zero(t, h.clock.ActiveTickers())
}

func TestReadLines(t *testing.T) {
	t.Parallel()
	var got []string
	for line := range ReadLines(context.Background(), strings.NewReader("power\r\nhelp\nlast")) {
		got = append(got, line)
	}
	assert.Equal(t, []string{"power", "help", "last"}, got)
}
