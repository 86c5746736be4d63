package command

import (
	"context"
	"errors"
	"flag"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/gmtstudio/gmt-terminal/internal/clock"
	"github.com/gmtstudio/gmt-terminal/internal/config"
	"github.com/gmtstudio/gmt-terminal/internal/console"
	"github.com/gmtstudio/gmt-terminal/internal/countdown"
	"github.com/gmtstudio/gmt-terminal/internal/logging"
	"github.com/gmtstudio/gmt-terminal/internal/tui"
)

// RunCommand starts the interactive terminal.
type RunCommand struct {
	*BaseCommand
	config    *config.Config
	logs      logFlags
	altScreen optionalBool
	mouse     optionalBool
}

// NewRunCommand creates a new run command.
func NewRunCommand(cfg *config.Config) *RunCommand {
	return &RunCommand{
		BaseCommand: NewBaseCommand(
			"run",
			"Start the interactive terminal",
			"run [options]",
		),
		config: cfg,
	}
}

// SetupFlags configures the flags for the run command.
func (c *RunCommand) SetupFlags(fs *flag.FlagSet) {
	c.logs.setup(fs)
	c.altScreen, c.mouse = optionalBool{}, optionalBool{}
	fs.Var(&c.altScreen, "alt-screen", "Use the alternate screen (default: ui.alt-screen config)")
	fs.Var(&c.mouse, "mouse", "Enable mouse clicks (default: ui.mouse config)")
}

// Execute runs the TUI until the user quits or ctx is done.
func (c *RunCommand) Execute(ctx context.Context, args []string, s Streams) error {
	if len(args) > 0 {
		return fmt.Errorf("unexpected arguments: %v", args)
	}
	settings, err := config.Resolve(c.config)
	if err != nil {
		return err
	}
	logOpts, err := resolveLogOptions(c.logs, settings, nil)
	if err != nil {
		return err
	}
	logger, err := logging.New(logOpts)
	if err != nil {
		return err
	}
	defer logger.Close()

	model := tui.New(tui.Options{
		Clock:          clock.Real{},
		Logger:         logger.Logger,
		Logs:           logger.Buffer,
		Target:         targetFrom(settings),
		BootInterval:   settings.BootInterval,
		RevealInterval: settings.RevealInterval,
		ErrorDuration:  settings.ErrorDuration,
	})

	opts := []tea.ProgramOption{tea.WithInput(s.Stdin), tea.WithOutput(s.Stdout)}
	if c.altScreen.or(settings.AltScreen) {
		opts = append(opts, tea.WithAltScreen())
	}
	if c.mouse.or(settings.Mouse) {
		opts = append(opts, tea.WithMouseCellMotion())
	}

	logger.Info("tui starting", "alt_screen", c.altScreen.or(settings.AltScreen))
	return tui.Run(ctx, model, opts...)
}

// PlainCommand runs the terminal in line mode on stdin and stdout.
type PlainCommand struct {
	*BaseCommand
	config  *config.Config
	clock   clock.Clock
	logs    logFlags
	powerOn optionalBool
}

// NewPlainCommand creates a new plain command.
func NewPlainCommand(cfg *config.Config, clk clock.Clock) *PlainCommand {
	return &PlainCommand{
		BaseCommand: NewBaseCommand(
			"plain",
			"Run the terminal in line mode (no TTY needed)",
			"plain [options]",
		),
		config: cfg,
		clock:  clk,
	}
}

// SetupFlags configures the flags for the plain command.
func (c *PlainCommand) SetupFlags(fs *flag.FlagSet) {
	c.logs.setup(fs)
	c.powerOn = optionalBool{}
	fs.Var(&c.powerOn, "power-on", "Switch the terminal on at start (default: [plain] power-on config)")
}

// Execute reads lines from stdin until EOF or ctx is done.
func (c *PlainCommand) Execute(ctx context.Context, args []string, s Streams) error {
	if len(args) > 0 {
		return fmt.Errorf("unexpected arguments: %v", args)
	}
	settings, err := config.Resolve(c.config)
	if err != nil {
		return err
	}
	logOpts, err := resolveLogOptions(c.logs, settings, nil)
	if err != nil {
		return err
	}
	logger, err := logging.New(logOpts)
	if err != nil {
		return err
	}
	defer logger.Close()

	powerOn, _ := c.config.GetCommandBool("plain", "power-on")

	host := console.New(s.Stdout, console.Options{
		Clock:          c.clock,
		Logger:         logger.Logger,
		BootInterval:   settings.BootInterval,
		RevealInterval: settings.RevealInterval,
		ErrorDuration:  settings.ErrorDuration,
		PowerOn:        c.powerOn.or(powerOn),
	})
	err = host.Run(ctx, console.ReadLines(ctx, s.Stdin))
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// targetFrom applies configured countdown bounds over the defaults.
func targetFrom(settings config.Settings) countdown.Target {
	target := countdown.DefaultTarget()
	if !settings.CountdownStart.IsZero() {
		target.Start = settings.CountdownStart
	}
	if !settings.CountdownEnd.IsZero() {
		target.End = settings.CountdownEnd
	}
	return target
}
