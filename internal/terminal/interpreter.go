package terminal

import (
	"errors"
	"fmt"

	"github.com/gmtstudio/gmt-terminal/internal/codec"
)

// Result is the outcome of executing one Command: exactly one output line,
// unless Clear is set, plus an optional view to navigate to once that line
// has been revealed.
type Result struct {
	Output   string
	Clear    bool
	Navigate string
}

// Execute runs cmd. It has no side effects.
func Execute(cmd Command) Result {
	switch c := cmd.(type) {
	case Help:
		return Result{Output: HelpText}
	case Clear:
		return Result{Clear: true}
	case About:
		return Result{Output: AboutText}
	case Encode:
		return Result{Output: encodeText}
	case Decode:
		return Result{Output: decodeText}
	case Cd:
		switch c.Dir {
		case "":
			return Result{Output: cdMissingText}
		case ViewHero:
			return Result{Output: fmt.Sprintf(navigatingFormat, ViewHero), Navigate: ViewHero}
		default:
			return Result{Output: fmt.Sprintf(cdNoSuchDirFormat, c.Dir)}
		}
	case DecodeBinary:
		if c.Arg == "" {
			return Result{Output: binaryUsageText}
		}
		text, err := codec.DecodeBinary(c.Arg)
		if errors.Is(err, codec.ErrInvalidBinary) {
			return Result{Output: binaryInvalidText}
		}
		return Result{Output: text}
	case DecodeVigenere:
		if len(c.Args) != 2 {
			return Result{Output: vigenereUsageText}
		}
		return Result{Output: codec.DecryptVigenere(c.Args[0], c.Args[1])}
	case Unknown:
		return Result{Output: fmt.Sprintf(notFoundFormat, c.Raw)}
	default:
		return Result{Output: fmt.Sprintf(notFoundFormat, cmd)}
	}
}

// Submit feeds one line to the interpreter. Blank lines are ignored. The
// line is echoed at once; while an earlier command's output is still being
// revealed, its own output waits in the queue. clear takes effect at once
// and drops the queue.
func (s *Session) Submit(line string) error {
	if s.State() != StateReady {
		return ErrTerminalNotReady
	}
	folded := Fold(line)
	if folded == "" {
		return nil
	}
	cmd := Parse(line)
	if _, ok := cmd.(Clear); ok {
		s.clearTranscript()
		return nil
	}

	s.transcript = append(s.transcript, Line{Role: RoleInput, Full: folded, Visible: folded})
	res := Execute(cmd)
	s.logger.Debug("command", "session", s.id, "input", folded, "type", fmt.Sprintf("%T", cmd))

	// the output line is reserved now so that it stays under its echo
	s.transcript = append(s.transcript, Line{Role: RoleOutput, Full: res.Output})
	index := len(s.transcript) - 1
	if s.active != nil {
		s.pending = append(s.pending, queuedOutput{index: index, navigate: res.Navigate})
		return nil
	}
	s.revealAt(index, res.Navigate)
	return nil
}

func (s *Session) clearTranscript() {
	s.cancelActive()
	s.pending = nil
	s.transcript = nil
	s.epoch++
}
