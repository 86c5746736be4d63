// Package scrollbar renders a one-column scroll gutter beside a bubbles
// viewport, such as the terminal transcript.
package scrollbar

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/lipgloss"
)

// Model is the gutter's geometry and look. It holds no state of its own;
// callers refresh it from their viewport before each render.
type Model struct {
	ContentHeight  int
	ViewportHeight int
	YOffset        int

	ThumbStyle lipgloss.Style
	TrackStyle lipgloss.Style
	ThumbChar  string
	TrackChar  string
}

// Option configures a Model in New.
type Option func(*Model)

// New returns a gutter styled for the green-on-black terminal.
func New(opts ...Option) Model {
	m := Model{
		ThumbChar:  "█",
		TrackChar:  "│",
		ThumbStyle: lipgloss.NewStyle().Foreground(lipgloss.Color("46")),
		TrackStyle: lipgloss.NewStyle().Foreground(lipgloss.Color("22")),
	}
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

// WithStyles sets the thumb and track styles.
func WithStyles(thumb, track lipgloss.Style) Option {
	return func(m *Model) {
		m.ThumbStyle = thumb
		m.TrackStyle = track
	}
}

// Sync copies the geometry of vp into m.
func (m Model) Sync(vp viewport.Model) Model {
	m.ContentHeight = vp.TotalLineCount()
	m.ViewportHeight = vp.Height
	m.YOffset = vp.YOffset
	return m
}

// Scrollable reports whether the content overflows the viewport.
func (m Model) Scrollable() bool {
	return m.ViewportHeight > 0 && m.ContentHeight > m.ViewportHeight
}

// Thumb returns the first row and height of the thumb. Content that fits
// gets a full-height thumb.
func (m Model) Thumb() (top, height int) {
	if m.ViewportHeight <= 0 {
		return 0, 0
	}
	if !m.Scrollable() {
		return 0, m.ViewportHeight
	}

	view := float64(m.ViewportHeight)
	height = int(view * view / float64(m.ContentHeight))
	height = min(max(height, 1), m.ViewportHeight)

	maxOffset := m.ContentHeight - m.ViewportHeight
	offset := min(max(m.YOffset, 0), maxOffset)
	room := m.ViewportHeight - height
	top = int(float64(offset) / float64(maxOffset) * float64(room))
	return min(max(top, 0), room), height
}

// View renders exactly ViewportHeight rows.
func (m Model) View() string {
	top, height := m.Thumb()
	rows := make([]string, m.ViewportHeight)
	for i := range rows {
		if i >= top && i < top+height {
			rows[i] = m.ThumbStyle.Render(m.ThumbChar)
		} else {
			rows[i] = m.TrackStyle.Render(m.TrackChar)
		}
	}
	return strings.Join(rows, "\n")
}
