package terminal

import (
	"strings"

	"golang.org/x/text/cases"
)

// Command is a parsed input line. The concrete types below are the only
// implementations.
type Command interface {
	command()
}

type (
	Help   struct{}
	Clear  struct{}
	About  struct{}
	Encode struct{}
	Decode struct{}

	// Cd changes view. Dir is empty when no argument was given.
	Cd struct{ Dir string }

	// DecodeBinary holds everything after the command name.
	DecodeBinary struct{ Arg string }

	// DecodeVigenere holds the raw argument list; exactly two are valid.
	DecodeVigenere struct{ Args []string }

	// Unknown keeps the trimmed input as typed, for the error message.
	Unknown struct{ Raw string }
)

func (Help) command()           {}
func (Clear) command()          {}
func (About) command()          {}
func (Encode) command()         {}
func (Decode) command()         {}
func (Cd) command()             {}
func (DecodeBinary) command()   {}
func (DecodeVigenere) command() {}
func (Unknown) command()        {}

// Fold trims and case-folds an input line. This is the form that is echoed
// and matched against the command table.
func Fold(line string) string {
	return cases.Fold().String(strings.TrimSpace(line))
}

// Parse maps one input line onto a Command. Fixed commands must match
// exactly; cd, decode_binary and decode_vigenere take arguments.
func Parse(line string) Command {
	raw := strings.TrimSpace(line)
	fields := strings.Fields(Fold(raw))
	if len(fields) == 0 {
		return Unknown{Raw: raw}
	}

	name, args := fields[0], fields[1:]
	switch name {
	case "help", "clear", "about", "encode", "decode":
		if len(args) > 0 {
			return Unknown{Raw: raw}
		}
		return fixedCommands[name]
	case "cd":
		return Cd{Dir: strings.Join(args, " ")}
	case "decode_binary":
		return DecodeBinary{Arg: strings.Join(args, " ")}
	case "decode_vigenere":
		return DecodeVigenere{Args: args}
	}
	return Unknown{Raw: raw}
}

var fixedCommands = map[string]Command{
	"help":   Help{},
	"clear":  Clear{},
	"about":  About{},
	"encode": Encode{},
	"decode": Decode{},
}
