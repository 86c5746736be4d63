package command

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"slices"

	"github.com/samber/lo"
)

// ErrUnknownCommand is returned by Get and Run for an unregistered name.
var ErrUnknownCommand = errors.New("unknown command")

// Registry manages the collection of available commands.
type Registry struct {
	commands map[string]Command
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{commands: make(map[string]Command)}
}

// Register adds a command, replacing any with the same name.
func (r *Registry) Register(cmd Command) {
	r.commands[cmd.Name()] = cmd
}

// Get returns a command by name.
func (r *Registry) Get(name string) (Command, error) {
	if cmd, ok := r.commands[name]; ok {
		return cmd, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownCommand, name)
}

// List returns the registered command names, sorted.
func (r *Registry) List() []string {
	names := lo.Keys(r.commands)
	slices.Sort(names)
	return names
}

// Run looks up args[0], parses its flags from the rest, and executes it.
func (r *Registry) Run(ctx context.Context, args []string, s Streams) error {
	if len(args) == 0 {
		return fmt.Errorf("%w: (none)", ErrUnknownCommand)
	}
	cmd, err := r.Get(args[0])
	if err != nil {
		_, _ = fmt.Fprintf(s.Stderr, "Unknown command: %s\n", args[0])
		_, _ = fmt.Fprintln(s.Stderr, "Use 'gmtterm help' to see available commands.")
		return err
	}

	fs := flag.NewFlagSet(cmd.Name(), flag.ContinueOnError)
	fs.SetOutput(s.Stderr)
	fs.Usage = func() {
		_, _ = fmt.Fprintf(s.Stderr, "Usage: gmtterm %s\n", cmd.Usage())
		_, _ = fmt.Fprintf(s.Stderr, "\n%s\n\n", cmd.Description())
		_, _ = fmt.Fprintln(s.Stderr, "Options:")
		fs.PrintDefaults()
	}
	cmd.SetupFlags(fs)
	if err := fs.Parse(args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}
	return cmd.Execute(ctx, fs.Args(), s)
}
