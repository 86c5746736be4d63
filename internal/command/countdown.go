package command

import (
	"context"
	"flag"
	"fmt"
	"time"

	"github.com/gmtstudio/gmt-terminal/internal/clock"
	"github.com/gmtstudio/gmt-terminal/internal/config"
	"github.com/gmtstudio/gmt-terminal/internal/countdown"
)

// CountdownCommand prints one countdown snapshot.
type CountdownCommand struct {
	*BaseCommand
	config *config.Config
	clock  clock.Clock
	at     string
}

// NewCountdownCommand creates a new countdown command.
func NewCountdownCommand(cfg *config.Config, clk clock.Clock) *CountdownCommand {
	return &CountdownCommand{
		BaseCommand: NewBaseCommand(
			"countdown",
			"Print the launch countdown",
			"countdown [-at RFC3339]",
		),
		config: cfg,
		clock:  clk,
	}
}

// SetupFlags configures the flags for the countdown command.
func (c *CountdownCommand) SetupFlags(fs *flag.FlagSet) {
	c.at = ""
	fs.StringVar(&c.at, "at", "", "Evaluate at this instant instead of now (default: [countdown] at config)")
}

// Execute evaluates the countdown and prints it.
func (c *CountdownCommand) Execute(ctx context.Context, args []string, s Streams) error {
	if len(args) > 0 {
		return fmt.Errorf("unexpected arguments: %v", args)
	}
	settings, err := config.Resolve(c.config)
	if err != nil {
		return err
	}

	now := c.clock.Now()
	if at, ok := c.config.GetCommandTime("countdown", "at"); ok {
		now = at
	}
	if c.at != "" {
		now, err = time.Parse(time.RFC3339, c.at)
		if err != nil {
			return fmt.Errorf("invalid -at: %w", err)
		}
	}

	snap := countdown.Compute(targetFrom(settings), now)
	if snap.Done {
		_, err = fmt.Fprintln(s.Stdout, "launched")
		return err
	}
	_, err = fmt.Fprintf(s.Stdout, "%s %s\n", snap, snap.Phase)
	return err
}
