// Package tui is the interactive host: a bubbletea program that drives a
// terminal.Session and the launch countdown.
//
// All session mutation happens inside Update. Timers are tea.Tick commands
// whose messages carry the session epoch (and, for reveals, the handle they
// advance); a message from an older epoch is dropped on arrival.
package tui

import (
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"

	"github.com/gmtstudio/gmt-terminal/internal/clock"
	"github.com/gmtstudio/gmt-terminal/internal/countdown"
	"github.com/gmtstudio/gmt-terminal/internal/logging"
	"github.com/gmtstudio/gmt-terminal/internal/termui/scrollbar"
	"github.com/gmtstudio/gmt-terminal/internal/terminal"
)

const (
	zonePower = "power"
	zoneOpen  = "open"

	countdownInterval = time.Second
	inputPrompt       = "guest@gmtstudio:~$ "
	passwordPrompt    = "access code> "
)

// Options configures a Model. Zero durations fall back to the terminal
// package defaults, except RevealInterval, where zero means instant output.
type Options struct {
	Clock  clock.Clock
	Logger *slog.Logger
	// Logs backs the ctrl+l panel; nil shows an empty panel.
	Logs           *logging.Buffer
	Target         countdown.Target
	BootInterval   time.Duration
	RevealInterval time.Duration
	ErrorDuration  time.Duration
}

type (
	bootTickMsg struct{ epoch uint64 }

	revealTickMsg struct {
		epoch  uint64
		handle *terminal.Reveal
	}

	countdownTickMsg struct{}

	// errorExpiredMsg only forces a redraw once the wrong-password flag
	// has lapsed.
	errorExpiredMsg struct{}
)

// Model is the bubbletea model. It must be used through a pointer.
type Model struct {
	opts    Options
	logger  *slog.Logger
	session *terminal.Session
	engine  *countdown.Engine
	zones   *zone.Manager
	keys    keyMap
	styles  styles

	input      textinput.Model
	transcript viewport.Model
	gutter     scrollbar.Model
	bar        progress.Model
	help       help.Model

	view     string
	showLogs bool
	width    int
}

var _ tea.Model = (*Model)(nil)

// New returns a Model with the terminal powered off.
func New(opts Options) *Model {
	if opts.Clock == nil {
		opts.Clock = clock.Real{}
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Target == (countdown.Target{}) {
		opts.Target = countdown.DefaultTarget()
	}
	if opts.BootInterval <= 0 {
		opts.BootInterval = terminal.DefaultBootInterval
	}
	if opts.ErrorDuration <= 0 {
		opts.ErrorDuration = terminal.DefaultErrorDuration
	}

	st := newStyles()
	m := &Model{
		opts:       opts,
		logger:     opts.Logger.With("component", "tui"),
		engine:     countdown.NewEngine(opts.Target, opts.Clock),
		zones:      zone.New(),
		keys:       newKeyMap(),
		styles:     st,
		input:      textinput.New(),
		transcript: viewport.New(76, 12),
		gutter:     scrollbar.New(scrollbar.WithStyles(st.Text, st.Dim)),
		bar:        progress.New(progress.WithSolidFill(string(phosphor)), progress.WithoutPercentage(), progress.WithWidth(40)),
		help:       help.New(),
		view:       terminal.ViewTerminal,
		width:      80,
	}
	m.session = terminal.NewSession(
		terminal.WithClock(opts.Clock),
		terminal.WithLogger(opts.Logger),
		terminal.WithNavigator(terminal.NavigatorFunc(m.navigate)),
		terminal.WithErrorDuration(opts.ErrorDuration),
	)
	m.input.CharLimit = 256
	m.input.EchoCharacter = '*'
	m.input.Cursor.Style = st.Text
	m.input.TextStyle = st.Input
	m.input.PromptStyle = st.Dim
	m.keys.sync(m.session.State(), m.view, m.showLogs)
	return m
}

// Session exposes the driven session for inspection.
func (m *Model) Session() *terminal.Session { return m.session }

// Close releases the click-zone tracker.
func (m *Model) Close() { m.zones.Close() }

func (m *Model) Init() tea.Cmd {
	return countdownTick()
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
	case tea.KeyMsg:
		cmd = m.handleKey(msg)
	case tea.MouseMsg:
		cmd = m.handleMouse(msg)
	case bootTickMsg:
		cmd = m.onBootTick(msg)
	case revealTickMsg:
		cmd = m.onRevealTick(msg)
	case countdownTickMsg:
		if !m.engine.Tick().Done {
			cmd = countdownTick()
		}
	case errorExpiredMsg:
	default:
		m.input, cmd = m.input.Update(msg)
	}
	m.keys.sync(m.session.State(), m.view, m.showLogs)
	return m, cmd
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return tea.Quit
	case key.Matches(msg, m.keys.Logs):
		m.showLogs = !m.showLogs
		return nil
	case m.showLogs:
		return nil
	case key.Matches(msg, m.keys.Back):
		m.view = terminal.ViewTerminal
		return nil
	case m.view != terminal.ViewTerminal:
		return nil
	case key.Matches(msg, m.keys.Power):
		return m.togglePower()
	case key.Matches(msg, m.keys.Open):
		return m.openTerminal()
	case key.Matches(msg, m.keys.Submit):
		return m.submit()
	case key.Matches(msg, m.keys.ScrollUp, m.keys.ScrollDown):
		var cmd tea.Cmd
		m.transcript, cmd = m.transcript.Update(msg)
		return cmd
	}
	if !m.input.Focused() {
		return nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return cmd
}

func (m *Model) handleMouse(msg tea.MouseMsg) tea.Cmd {
	if m.showLogs || m.view != terminal.ViewTerminal {
		return nil
	}
	if msg.Action != tea.MouseActionRelease || msg.Button != tea.MouseButtonLeft {
		var cmd tea.Cmd
		m.transcript, cmd = m.transcript.Update(msg)
		return cmd
	}
	switch {
	case m.inZone(zonePower, msg):
		return m.togglePower()
	case m.inZone(zoneOpen, msg):
		return m.openTerminal()
	}
	return nil
}

func (m *Model) inZone(id string, msg tea.MouseMsg) bool {
	z := m.zones.Get(id)
	return z != nil && z.InBounds(msg)
}

func (m *Model) togglePower() tea.Cmd {
	m.session.PowerToggle()
	m.view = terminal.ViewTerminal
	m.input.Reset()
	m.refreshTranscript()
	cmd := m.syncInput()
	if !m.session.Power() {
		return cmd
	}
	return tea.Batch(cmd, m.bootTick())
}

func (m *Model) bootTick() tea.Cmd {
	epoch := m.session.Epoch()
	return tea.Tick(m.opts.BootInterval, func(time.Time) tea.Msg {
		return bootTickMsg{epoch: epoch}
	})
}

func (m *Model) onBootTick(msg bootTickMsg) tea.Cmd {
	if msg.epoch != m.session.Epoch() || !m.session.BootTick() {
		return nil
	}
	if m.session.State() == terminal.StateBooting {
		return m.bootTick()
	}
	return m.syncInput()
}

func (m *Model) submit() tea.Cmd {
	value := m.input.Value()
	m.input.Reset()

	switch m.session.State() {
	case terminal.StateLockedPuzzle:
		ok, err := m.session.SubmitPassword(value)
		if err != nil {
			m.logger.Debug("password rejected", "error", err)
			return nil
		}
		if ok {
			return m.syncInput()
		}
		return tea.Tick(m.opts.ErrorDuration, func(time.Time) tea.Msg { return errorExpiredMsg{} })

	case terminal.StateReady:
		idle := m.session.Active() == nil
		if err := m.session.Submit(value); err != nil {
			m.logger.Debug("submit rejected", "error", err)
			return nil
		}
		m.refreshTranscript()
		if idle {
			return m.scheduleReveal()
		}
	}
	return nil
}

func (m *Model) openTerminal() tea.Cmd {
	if err := m.session.OpenTerminal(); err != nil {
		m.logger.Debug("open terminal rejected", "error", err)
		return nil
	}
	m.refreshTranscript()
	return m.syncInput()
}

// scheduleReveal starts the tick chain for the session's active reveal.
// Exactly one chain runs per handle: it is started when a reveal begins on
// an idle session, and handed on when a finished reveal drains the queue.
func (m *Model) scheduleReveal() tea.Cmd {
	h := m.session.Active()
	if h == nil {
		return nil
	}
	if m.opts.RevealInterval <= 0 {
		m.session.Settle()
		m.refreshTranscript()
		return nil
	}
	return m.revealTick(h)
}

func (m *Model) revealTick(h *terminal.Reveal) tea.Cmd {
	return tea.Tick(m.opts.RevealInterval, func(time.Time) tea.Msg {
		return revealTickMsg{epoch: h.Epoch(), handle: h}
	})
}

func (m *Model) onRevealTick(msg revealTickMsg) tea.Cmd {
	if msg.epoch != m.session.Epoch() || msg.handle != m.session.Active() {
		return nil
	}
	done := m.session.Step(msg.handle)
	m.refreshTranscript()
	if !done {
		return m.revealTick(msg.handle)
	}
	return m.scheduleReveal()
}

func (m *Model) navigate(view string) {
	m.view = view
	m.logger.Info("view changed", "session", m.session.ID(), "view", view)
}

// syncInput configures the prompt for the current state.
func (m *Model) syncInput() tea.Cmd {
	switch m.session.State() {
	case terminal.StateLockedPuzzle:
		m.input.Prompt = passwordPrompt
		m.input.EchoMode = textinput.EchoPassword
		return m.input.Focus()
	case terminal.StateReady:
		m.input.Prompt = inputPrompt
		m.input.EchoMode = textinput.EchoNormal
		return m.input.Focus()
	default:
		m.input.Blur()
		return nil
	}
}

func (m *Model) refreshTranscript() {
	var b strings.Builder
	for i, l := range m.session.Transcript() {
		if i > 0 {
			b.WriteByte('\n')
		}
		if l.Role == terminal.RoleInput {
			b.WriteString(m.styles.Dim.Render("$ ") + m.styles.Input.Render(l.Visible))
			continue
		}
		b.WriteString(m.styles.Text.Render(l.Visible))
	}
	if m.session.Busy() {
		b.WriteString("\n" + m.styles.Dim.Render("..."))
	}
	m.transcript.SetContent(b.String())
	m.transcript.GotoBottom()
}

func (m *Model) resize(width, height int) {
	m.width = width
	m.help.Width = width
	// header, border, prompt, countdown and footer take about ten rows
	m.transcript.Width = max(width-6, 10)
	m.transcript.Height = max(height-12, 3)
	m.bar.Width = max(min(width-24, 60), 10)
	m.input.Width = max(width-len(inputPrompt)-8, 10)
	m.refreshTranscript()
}

func countdownTick() tea.Cmd {
	return tea.Tick(countdownInterval, func(time.Time) tea.Msg { return countdownTickMsg{} })
}
