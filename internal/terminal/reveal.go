package terminal

import (
	"slices"

	"github.com/rivo/uniseg"
)

// Reveal is the handle of one in-flight output animation. Each Step makes
// one more grapheme cluster of the line visible. A Reveal that has been
// cancelled, or that belongs to an older epoch, is inert.
type Reveal struct {
	id        uint64
	epoch     uint64
	index     int
	text      string
	offset    int
	graphemes int
	navigate  string
	cancelled bool
}

// ID distinguishes handles within a session.
func (r *Reveal) ID() uint64 { return r.id }

// Epoch is the session epoch the handle was created in.
func (r *Reveal) Epoch() uint64 { return r.epoch }

// Cancelled reports whether the reveal was abandoned.
func (r *Reveal) Cancelled() bool { return r.cancelled }

// Active returns the in-flight reveal, or nil when output has settled.
func (s *Session) Active() *Reveal { return s.active }

// Busy reports whether output is still being revealed or queued.
func (s *Session) Busy() bool { return s.active != nil || len(s.pending) > 0 }

// queuedOutput is a reserved output line waiting for the active reveal.
type queuedOutput struct {
	index    int
	navigate string
}

// startReveal appends an empty output line and makes it the active reveal.
func (s *Session) startReveal(text, navigate string) *Reveal {
	s.transcript = append(s.transcript, Line{Role: RoleOutput, Full: text})
	return s.revealAt(len(s.transcript)-1, navigate)
}

// revealAt makes the reserved output line at index the active reveal.
func (s *Session) revealAt(index int, navigate string) *Reveal {
	s.revealSeq++
	s.active = &Reveal{
		id:        s.revealSeq,
		epoch:     s.epoch,
		index:     index,
		text:      s.transcript[index].Full,
		graphemes: -1,
		navigate:  navigate,
	}
	return s.active
}

// Step reveals one more character of h. It returns true when h needs no
// further steps, either because it finished or because it is no longer the
// session's live reveal. Finishing a reveal fires its navigation, then
// starts the next queued submission, if any.
func (s *Session) Step(h *Reveal) bool {
	if h == nil || h.cancelled || h != s.active || h.epoch != s.epoch {
		return true
	}

	if h.offset < len(h.text) {
		cluster, _, _, state := uniseg.FirstGraphemeClusterInString(h.text[h.offset:], h.graphemes)
		h.offset += len(cluster)
		h.graphemes = state
		s.transcript[h.index].Visible = h.text[:h.offset]
	}
	if h.offset < len(h.text) {
		return false
	}

	s.active = nil
	if h.navigate != "" {
		s.logger.Debug("navigating", "session", s.id, "view", h.navigate)
		s.navigator.Navigate(h.navigate)
	}
	s.drainPending()
	return true
}

// Settle runs every in-flight and queued reveal to completion.
func (s *Session) Settle() {
	for s.active != nil {
		s.Step(s.active)
	}
}

// cancelActive abandons the active reveal and discards its partial line.
func (s *Session) cancelActive() {
	h := s.active
	if h == nil {
		return
	}
	h.cancelled = true
	s.active = nil
	if h.index < len(s.transcript) {
		s.transcript = slices.Delete(s.transcript, h.index, h.index+1)
	}
	s.logger.Debug("reveal cancelled", "session", s.id, "reveal", h.id)
}

func (s *Session) drainPending() {
	for s.active == nil && len(s.pending) > 0 {
		next := s.pending[0]
		s.pending = s.pending[1:]
		s.revealAt(next.index, next.navigate)
	}
}
