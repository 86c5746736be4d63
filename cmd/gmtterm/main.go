package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"golang.org/x/term"

	"github.com/gmtstudio/gmt-terminal/internal/clock"
	"github.com/gmtstudio/gmt-terminal/internal/command"
	"github.com/gmtstudio/gmt-terminal/internal/config"
)

const version = "0.1.0"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	s := command.Streams{Stdin: os.Stdin, Stdout: os.Stdout, Stderr: os.Stderr}
	interactive := term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))

	if err := run(ctx, os.Args[1:], s, interactive); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, s command.Streams, interactive bool) error {
	// .env is optional; GMTTERM_* variables may live there
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load .env: %w", err)
	}

	cfg, err := config.Load()
	if err != nil {
		_, _ = fmt.Fprintf(s.Stderr, "warning: %v; using defaults\n", err)
		cfg = config.NewConfig()
	}

	registry := newRegistry(cfg)

	switch {
	case len(args) == 0:
		args = []string{defaultCommand(interactive)}
	case args[0] == "-h" || args[0] == "--help":
		args = []string{"help"}
	}
	return registry.Run(ctx, args, s)
}

func newRegistry(cfg *config.Config) *command.Registry {
	registry := command.NewRegistry()
	registry.Register(command.NewHelpCommand(registry))
	registry.Register(command.NewVersionCommand(version))
	registry.Register(command.NewConfigCommand(cfg, ""))
	registry.Register(command.NewRunCommand(cfg))
	registry.Register(command.NewPlainCommand(cfg, clock.Real{}))
	registry.Register(command.NewDecodeCommand())
	registry.Register(command.NewEncodeCommand())
	registry.Register(command.NewCountdownCommand(cfg, clock.Real{}))
	return registry
}

// defaultCommand picks the full-screen UI only when both ends are a TTY.
func defaultCommand(interactive bool) string {
	if interactive {
		return "run"
	}
	return "plain"
}
