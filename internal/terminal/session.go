// Package terminal implements the retro terminal: the power/boot/auth state
// machine, the per-character output animator, and the command interpreter.
//
// A Session is plain single-threaded state. It never starts goroutines or
// timers; hosts own the clocks and call BootTick and Step at their chosen
// cadence, from a single goroutine.
package terminal

import (
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/gmtstudio/gmt-terminal/internal/clock"
)

// Default host cadences.
const (
	DefaultBootInterval   = 800 * time.Millisecond
	DefaultRevealInterval = 10 * time.Millisecond
	DefaultErrorDuration  = 2 * time.Second
)

// State is the position of a Session in the boot/auth lifecycle.
type State int

const (
	StateOff State = iota
	StateBooting
	StateLockedPuzzle
	StateAuthenticated
	StateReady
)

func (s State) String() string {
	switch s {
	case StateOff:
		return "off"
	case StateBooting:
		return "booting"
	case StateLockedPuzzle:
		return "locked"
	case StateAuthenticated:
		return "authenticated"
	case StateReady:
		return "ready"
	default:
		return "unknown"
	}
}

// Navigator receives fire-and-forget view change requests.
type Navigator interface {
	Navigate(view string)
}

// NavigatorFunc adapts a function to Navigator.
type NavigatorFunc func(view string)

func (f NavigatorFunc) Navigate(view string) { f(view) }

// Session is one terminal visit. The zero value is not usable; call
// NewSession.
type Session struct {
	id            string
	power         bool
	bootPhase     int
	authenticated bool
	terminalOpen  bool
	attemptCount  int
	transcript    []Line

	// epoch changes whenever the transcript is reset; reveals and host
	// timers from an older epoch must not touch the session.
	epoch      uint64
	errorUntil time.Time
	active     *Reveal
	revealSeq  uint64
	pending    []queuedOutput

	clock         clock.Clock
	logger        *slog.Logger
	navigator     Navigator
	errorDuration time.Duration
}

// Option configures a Session.
type Option func(*Session)

// WithClock sets the time source for the transient error flag.
func WithClock(c clock.Clock) Option {
	return func(s *Session) { s.clock = c }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Session) { s.logger = l }
}

// WithNavigator sets the collaborator that handles `cd hero`.
func WithNavigator(n Navigator) Option {
	return func(s *Session) { s.navigator = n }
}

// WithErrorDuration sets how long a wrong password keeps the error flag up.
func WithErrorDuration(d time.Duration) Option {
	return func(s *Session) { s.errorDuration = d }
}

// NewSession returns a powered-off session.
func NewSession(opts ...Option) *Session {
	s := &Session{
		clock:         clock.Real{},
		logger:        slog.Default(),
		navigator:     NavigatorFunc(func(string) {}),
		errorDuration: DefaultErrorDuration,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// PowerToggle flips the power switch. Switching on starts a fresh boot;
// switching off abandons everything in flight and clears the screen.
func (s *Session) PowerToggle() {
	s.cancelActive()
	s.pending = nil
	s.epoch++

	s.power = !s.power
	s.bootPhase = 0
	s.authenticated = false
	s.terminalOpen = false
	s.attemptCount = 0
	s.transcript = nil
	s.errorUntil = time.Time{}

	if s.power {
		s.id = uuid.NewString()
	}
	s.logger.Info("terminal power toggled", "session", s.id, "power", s.power)
}

// BootTick advances the boot sequence by one message. It reports whether
// anything changed; once the sequence is complete it is a no-op.
func (s *Session) BootTick() bool {
	if !s.power || s.bootPhase >= len(BootSequence) {
		return false
	}
	s.bootPhase++
	if s.bootPhase == len(BootSequence) {
		s.logger.Debug("boot sequence complete", "session", s.id)
	}
	return true
}

// State derives the lifecycle state from the session fields.
func (s *Session) State() State {
	switch {
	case !s.power:
		return StateOff
	case s.bootPhase < len(BootSequence):
		return StateBooting
	case !s.authenticated:
		return StateLockedPuzzle
	case !s.terminalOpen:
		return StateAuthenticated
	default:
		return StateReady
	}
}

// ID identifies the current power cycle. Empty until first power-on.
func (s *Session) ID() string { return s.id }

// Epoch identifies the current transcript generation. Hosts stamp their
// timers with it and drop ticks from older epochs.
func (s *Session) Epoch() uint64 { return s.epoch }

func (s *Session) Power() bool         { return s.power }
func (s *Session) BootPhase() int      { return s.bootPhase }
func (s *Session) Authenticated() bool { return s.authenticated }
func (s *Session) TerminalOpen() bool  { return s.terminalOpen }
func (s *Session) AttemptCount() int   { return s.attemptCount }

// BootMessages returns the boot messages shown so far.
func (s *Session) BootMessages() []string {
	return BootSequence[:s.bootPhase]
}

// Transcript returns a copy of the transcript.
func (s *Session) Transcript() []Line {
	out := make([]Line, len(s.transcript))
	copy(out, s.transcript)
	return out
}
