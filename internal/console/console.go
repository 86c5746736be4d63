// Package console is the line-mode host. It drives a terminal.Session from
// a stream of input lines and prints the transcript as it is revealed, for
// use without a TTY and in scripted tests.
package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/gmtstudio/gmt-terminal/internal/clock"
	"github.com/gmtstudio/gmt-terminal/internal/terminal"
)

// Line-mode control words and messages.
const (
	PowerWord = "power"
	OpenWord  = "open"

	offText     = "The terminal is powered off. Type 'power' to switch it on."
	deniedText  = "ACCESS DENIED"
	grantedText = "ACCESS GRANTED. Type 'open' to open the terminal."
	openHint    = "Type 'open' to open the terminal."
)

// Options configures a Host. BootInterval falls back to the terminal
// default; a RevealInterval of zero prints command output at once.
type Options struct {
	Clock          clock.Clock
	Logger         *slog.Logger
	BootInterval   time.Duration
	RevealInterval time.Duration
	ErrorDuration  time.Duration
	// PowerOn switches the terminal on before the first line is read.
	PowerOn bool
}

// Host owns one session and everything that mutates it. Run must be called
// at most once.
type Host struct {
	opts    Options
	logger  *slog.Logger
	session *terminal.Session
	out     io.Writer
	err     error

	// transcript print position within the current epoch
	epoch  uint64
	line   int
	offset int

	navigations []string
	// lines received while booting, replayed once boot completes
	backlog []string
}

// New returns a Host writing to out.
func New(out io.Writer, opts Options) *Host {
	if opts.Clock == nil {
		opts.Clock = clock.Real{}
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.BootInterval <= 0 {
		opts.BootInterval = terminal.DefaultBootInterval
	}
	if opts.ErrorDuration <= 0 {
		opts.ErrorDuration = terminal.DefaultErrorDuration
	}
	h := &Host{
		opts:   opts,
		logger: opts.Logger.With("component", "console"),
		out:    out,
	}
	h.session = terminal.NewSession(
		terminal.WithClock(opts.Clock),
		terminal.WithLogger(opts.Logger),
		terminal.WithNavigator(terminal.NavigatorFunc(func(view string) {
			h.navigations = append(h.navigations, view)
		})),
		terminal.WithErrorDuration(opts.ErrorDuration),
	)
	return h
}

// ReadLines feeds r into a channel line by line. The channel is closed at
// EOF, on a read error, or when ctx is done.
func ReadLines(ctx context.Context, r io.Reader) <-chan string {
	ch := make(chan string)
	go func() {
		defer close(ch)
		sc := bufio.NewScanner(r)
		for sc.Scan() {
			select {
			case ch <- strings.TrimRight(sc.Text(), "\r"):
			case <-ctx.Done():
				return
			}
		}
	}()
	return ch
}

// Run processes input until it is closed or ctx is done. Lines that arrive
// while the terminal is booting are held until boot completes. Once input
// closes, Run waits for any boot in progress, replays held lines, prints
// in-flight output in full, and returns nil.
func (h *Host) Run(ctx context.Context, input <-chan string) error {
	var boot, reveal clock.Ticker
	defer func() {
		stop(&boot)
		stop(&reveal)
	}()

	if h.opts.PowerOn {
		h.togglePower()
	}

	for h.err == nil {
		booting := h.session.State() == terminal.StateBooting
		if input == nil && !booting {
			h.session.Settle()
			h.flush()
			break
		}

		// acquire or release timers to match what the session needs now
		if booting {
			if boot == nil {
				boot = h.opts.Clock.NewTicker(h.opts.BootInterval)
			}
		} else {
			stop(&boot)
		}
		if h.session.Active() != nil && h.opts.RevealInterval > 0 {
			if reveal == nil {
				reveal = h.opts.Clock.NewTicker(h.opts.RevealInterval)
			}
		} else {
			stop(&reveal)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()

		case line, ok := <-input:
			if !ok {
				input = nil
				continue
			}
			h.handle(line)

		case <-tick(boot):
			h.onBootTick()
			h.replayBacklog()

		case <-tick(reveal):
			if a := h.session.Active(); a != nil {
				h.session.Step(a)
				h.flush()
			}
		}
	}
	return h.err
}

// Session exposes the driven session for inspection.
func (h *Host) Session() *terminal.Session { return h.session }

func (h *Host) handle(line string) {
	if terminal.Fold(line) == PowerWord {
		h.backlog = nil
		h.togglePower()
		return
	}

	switch h.session.State() {
	case terminal.StateOff:
		h.println(offText)

	case terminal.StateBooting:
		h.backlog = append(h.backlog, line)

	case terminal.StateLockedPuzzle:
		ok, err := h.session.SubmitPassword(line)
		switch {
		case err != nil:
			h.logger.Debug("password rejected", "error", err)
		case ok:
			h.println(grantedText)
		default:
			h.println(deniedText)
			if h.session.HintVisible() {
				h.println(terminal.PuzzleHint)
			}
		}

	case terminal.StateAuthenticated:
		if terminal.Fold(line) != OpenWord {
			h.println(openHint)
			return
		}
		if err := h.session.OpenTerminal(); err != nil {
			h.logger.Debug("open terminal rejected", "error", err)
		}
		h.flush()

	case terminal.StateReady:
		if err := h.session.Submit(line); err != nil {
			h.logger.Debug("submit rejected", "error", err)
			return
		}
		if h.opts.RevealInterval <= 0 {
			h.session.Settle()
		}
		h.flush()
	}
}

func (h *Host) replayBacklog() {
	for len(h.backlog) > 0 && h.session.State() != terminal.StateBooting {
		line := h.backlog[0]
		h.backlog = h.backlog[1:]
		h.handle(line)
	}
}

func (h *Host) togglePower() {
	h.breakLine()
	h.session.PowerToggle()
	if h.session.Power() {
		h.println("[power on]")
	} else {
		h.println("[power off]")
	}
	h.resetPrinter()
}

func (h *Host) onBootTick() {
	if !h.session.BootTick() {
		return
	}
	msgs := h.session.BootMessages()
	h.println(msgs[len(msgs)-1])
	if h.session.PuzzleVisible() {
		h.println(terminal.PuzzlePrompt)
	}
}

func (h *Host) resetPrinter() {
	h.epoch = h.session.Epoch()
	h.line, h.offset = 0, 0
	h.navigations = nil
}

// flush prints whatever part of the transcript has become visible since the
// last flush, then any hero banners requested meanwhile. Within an epoch the
// transcript only grows, so a print position is enough.
func (h *Host) flush() {
	if h.session.Epoch() != h.epoch {
		h.breakLine()
		h.resetPrinter()
	}
	lines := h.session.Transcript()
	for h.line < len(lines) {
		l := lines[h.line]
		prefix := ""
		if h.offset == 0 && l.Role == terminal.RoleInput {
			prefix = "$ "
		}
		h.printf("%s%s", prefix, l.Visible[h.offset:])
		h.offset = len(l.Visible)
		if !l.Complete() {
			break
		}
		h.println("")
		h.line++
		h.offset = 0
	}
	for _, view := range h.navigations {
		if view == terminal.ViewHero {
			h.println(terminal.HeroBanner())
		}
	}
	h.navigations = nil
}

// breakLine ends a partially printed line, such as a reveal that was cut
// short by clear or power-off.
func (h *Host) breakLine() {
	if h.offset > 0 {
		h.println("")
		h.offset = 0
	}
}

func (h *Host) println(s string) { h.printf("%s\n", s) }

func (h *Host) printf(format string, args ...any) {
	if h.err != nil {
		return
	}
	if _, err := fmt.Fprintf(h.out, format, args...); err != nil {
		h.err = fmt.Errorf("console: write: %w", err)
	}
}

func tick(t clock.Ticker) <-chan time.Time {
	if t == nil {
		return nil
	}
	return t.C()
}

func stop(t *clock.Ticker) {
	if *t != nil {
		(*t).Stop()
		*t = nil
	}
}
