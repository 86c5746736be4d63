package tui

import (
	"github.com/charmbracelet/bubbles/key"

	"github.com/gmtstudio/gmt-terminal/internal/terminal"
)

type keyMap struct {
	Power      key.Binding
	Open       key.Binding
	Submit     key.Binding
	Back       key.Binding
	ScrollUp   key.Binding
	ScrollDown key.Binding
	Logs       key.Binding
	Quit       key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Power:      key.NewBinding(key.WithKeys("ctrl+p"), key.WithHelp("ctrl+p", "power")),
		Open:       key.NewBinding(key.WithKeys("ctrl+o"), key.WithHelp("ctrl+o", "open terminal")),
		Submit:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "submit")),
		Back:       key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		ScrollUp:   key.NewBinding(key.WithKeys("pgup"), key.WithHelp("pgup", "scroll up")),
		ScrollDown: key.NewBinding(key.WithKeys("pgdown"), key.WithHelp("pgdn", "scroll down")),
		Logs:       key.NewBinding(key.WithKeys("ctrl+l"), key.WithHelp("ctrl+l", "logs")),
		Quit:       key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
	}
}

// sync enables only the bindings that do something in the current state,
// so that the help footer never advertises a dead key.
func (k *keyMap) sync(state terminal.State, view string, logs bool) {
	onTerminal := view == terminal.ViewTerminal && !logs
	k.Power.SetEnabled(onTerminal)
	k.Open.SetEnabled(onTerminal && state == terminal.StateAuthenticated)
	k.Submit.SetEnabled(onTerminal && (state == terminal.StateLockedPuzzle || state == terminal.StateReady))
	k.ScrollUp.SetEnabled(onTerminal && state == terminal.StateReady)
	k.ScrollDown.SetEnabled(onTerminal && state == terminal.StateReady)
	k.Back.SetEnabled(view == terminal.ViewHero && !logs)
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Power, k.Open, k.Submit, k.Back, k.Logs, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Power, k.Open, k.Submit},
		{k.ScrollUp, k.ScrollDown, k.Back},
		{k.Logs, k.Quit},
	}
}
