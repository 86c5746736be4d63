package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/gmtstudio/gmt-terminal/internal/terminal"
)

func (m *Model) View() string {
	var body string
	switch {
	case m.showLogs:
		body = m.logsView()
	case m.view == terminal.ViewHero:
		body = m.heroView()
	default:
		body = m.terminalView()
	}
	out := lipgloss.JoinVertical(lipgloss.Left,
		m.headerView(),
		body,
		m.countdownView(),
		m.help.View(m.keys),
	)
	return m.zones.Scan(out)
}

func (m *Model) headerView() string {
	state := "OFF"
	if m.session.Power() {
		state = "ON"
	}
	power := m.zones.Mark(zonePower, m.styles.Button.Render(fmt.Sprintf("[ POWER: %s ]", state)))
	return lipgloss.JoinHorizontal(lipgloss.Center, m.styles.Title.Render("GMTStudio Terminal"), "  ", power)
}

func (m *Model) terminalView() string {
	var lines []string
	switch m.session.State() {
	case terminal.StateOff:
		lines = append(lines, m.styles.Dim.Render("The terminal is powered off. Press ctrl+p or click POWER."))

	case terminal.StateBooting:
		lines = m.bootLines()
		lines = append(lines, m.styles.Text.Render("_"))

	case terminal.StateLockedPuzzle:
		lines = m.bootLines()
		lines = append(lines, "", m.styles.Text.Render(terminal.PuzzlePrompt), m.input.View())
		if m.session.ErrorVisible() {
			lines = append(lines, m.styles.Error.Render("ACCESS DENIED"))
		}
		if m.session.HintVisible() {
			lines = append(lines, m.styles.Hint.Render(terminal.PuzzleHint))
		}

	case terminal.StateAuthenticated:
		lines = append(lines,
			m.styles.Text.Render("ACCESS GRANTED"),
			"",
			m.zones.Mark(zoneOpen, m.styles.Button.Render("[ OPEN TERMINAL ]")),
		)

	case terminal.StateReady:
		g := m.gutter.Sync(m.transcript)
		lines = append(lines,
			lipgloss.JoinHorizontal(lipgloss.Top, m.transcript.View(), " ", g.View()),
			m.input.View(),
		)
	}
	return m.styles.Screen.Render(strings.Join(lines, "\n"))
}

func (m *Model) bootLines() []string {
	msgs := m.session.BootMessages()
	lines := make([]string, len(msgs))
	for i, msg := range msgs {
		lines[i] = m.styles.Text.Render(msg)
	}
	return lines
}

func (m *Model) heroView() string {
	cards := make([]string, len(terminal.HeroCards))
	for i, c := range terminal.HeroCards {
		cards[i] = m.styles.Card.Render(lipgloss.JoinVertical(lipgloss.Left,
			m.styles.Title.Render(c.Title),
			m.styles.Dim.Render(c.Tagline),
			c.Detail,
		))
	}
	blurb := lipgloss.NewStyle().Width(max(m.width-6, 20)).Render(terminal.HeroBlurb)
	return m.styles.Screen.Render(lipgloss.JoinVertical(lipgloss.Left,
		m.styles.Title.Render(terminal.HeroTitle),
		m.styles.Tagline.Render(terminal.HeroTagline),
		"",
		m.styles.Hint.Render(terminal.HeroBadge),
		blurb,
		"",
		lipgloss.JoinHorizontal(lipgloss.Top, cards...),
	))
}

func (m *Model) logsView() string {
	var lines []string
	if m.opts.Logs != nil {
		for _, e := range m.opts.Logs.Recent(m.transcript.Height) {
			lines = append(lines, e.String())
		}
	}
	if len(lines) == 0 {
		lines = append(lines, "(no log entries)")
	}
	return m.styles.Screen.Render(m.styles.Dim.Render(strings.Join(lines, "\n")))
}

func (m *Model) countdownView() string {
	snap := m.engine.Snapshot()
	label := "Launch in " + snap.String()
	if snap.Done {
		label = "Launched!"
	}
	return lipgloss.JoinHorizontal(lipgloss.Center,
		m.styles.Text.Render(label), "  ",
		m.bar.ViewAs(float64(snap.Progress)/100), "  ",
		m.styles.Dim.Render(string(snap.Phase)),
	)
}
