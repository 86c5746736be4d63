package command

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"text/tabwriter"

	"github.com/gmtstudio/gmt-terminal/internal/config"
)

// HelpCommand displays help information for commands.
type HelpCommand struct {
	*BaseCommand
	registry *Registry
}

// NewHelpCommand creates a new help command.
func NewHelpCommand(registry *Registry) *HelpCommand {
	return &HelpCommand{
		BaseCommand: NewBaseCommand(
			"help",
			"Display help information for commands",
			"help [command]",
		),
		registry: registry,
	}
}

// Execute displays help information.
func (c *HelpCommand) Execute(_ context.Context, args []string, s Streams) error {
	if len(args) == 0 {
		_, _ = fmt.Fprintln(s.Stdout, "gmtterm - the GMTStudio retro terminal")
		_, _ = fmt.Fprintln(s.Stdout, "")
		_, _ = fmt.Fprintln(s.Stdout, "Usage: gmtterm [command] [options] [args...]")
		_, _ = fmt.Fprintln(s.Stdout, "")
		_, _ = fmt.Fprintln(s.Stdout, "With no command, gmtterm runs 'run' on a terminal and 'plain' otherwise.")
		_, _ = fmt.Fprintln(s.Stdout, "")
		_, _ = fmt.Fprintln(s.Stdout, "Available commands:")

		w := tabwriter.NewWriter(s.Stdout, 0, 8, 2, ' ', 0)
		for _, name := range c.registry.List() {
			if cmd, err := c.registry.Get(name); err == nil {
				_, _ = fmt.Fprintf(w, "  %s\t%s\n", name, cmd.Description())
			}
		}
		_ = w.Flush()

		_, _ = fmt.Fprintln(s.Stdout, "")
		_, _ = fmt.Fprintln(s.Stdout, "Use 'gmtterm help <command>' for more information about a specific command (includes flags).")
		return nil
	}

	cmd, err := c.registry.Get(args[0])
	if err != nil {
		_, _ = fmt.Fprintf(s.Stderr, "Unknown command: %s\n", args[0])
		return err
	}

	_, _ = fmt.Fprintf(s.Stdout, "Command: %s\n", cmd.Name())
	_, _ = fmt.Fprintf(s.Stdout, "Description: %s\n", cmd.Description())
	_, _ = fmt.Fprintf(s.Stdout, "Usage: gmtterm %s\n", cmd.Usage())

	fs := flag.NewFlagSet(cmd.Name(), flag.ContinueOnError)
	buf := &bytes.Buffer{}
	fs.SetOutput(buf)
	cmd.SetupFlags(fs)
	fs.PrintDefaults()
	if buf.Len() > 0 {
		_, _ = fmt.Fprintln(s.Stdout, "")
		_, _ = fmt.Fprintln(s.Stdout, "Flags:")
		_, _ = fmt.Fprint(s.Stdout, buf.String())
	}
	return nil
}

// VersionCommand displays version information.
type VersionCommand struct {
	*BaseCommand
	version string
}

// NewVersionCommand creates a new version command.
func NewVersionCommand(version string) *VersionCommand {
	return &VersionCommand{
		BaseCommand: NewBaseCommand(
			"version",
			"Display version information",
			"version",
		),
		version: version,
	}
}

// Execute displays version information.
func (c *VersionCommand) Execute(_ context.Context, args []string, s Streams) error {
	if len(args) > 0 {
		return fmt.Errorf("unexpected arguments: %v", args)
	}
	_, _ = fmt.Fprintf(s.Stdout, "gmtterm version %s\n", c.version)
	return nil
}

// ConfigCommand shows and edits configuration.
type ConfigCommand struct {
	*BaseCommand
	config     *config.Config
	configPath string
	schema     bool
}

// NewConfigCommand creates a new config command. Values set with it are
// persisted to configPath; an empty path resolves the default location.
func NewConfigCommand(cfg *config.Config, configPath string) *ConfigCommand {
	return &ConfigCommand{
		BaseCommand: NewBaseCommand(
			"config",
			"Show or change configuration settings",
			"config [-schema] [validate | <key> [value]]",
		),
		config:     cfg,
		configPath: configPath,
	}
}

// SetupFlags configures the flags for the config command.
func (c *ConfigCommand) SetupFlags(fs *flag.FlagSet) {
	c.schema = false
	fs.BoolVar(&c.schema, "schema", false, "Show every supported option with its type, default and env var")
}

// Execute shows the effective configuration, one key, the schema, or
// validation results, or sets one global key.
func (c *ConfigCommand) Execute(_ context.Context, args []string, s Streams) error {
	schema := config.DefaultSchema()
	if c.schema {
		_, _ = fmt.Fprint(s.Stdout, schema.FormatHelp())
		return nil
	}

	switch {
	case len(args) == 0:
		w := tabwriter.NewWriter(s.Stdout, 0, 8, 2, ' ', 0)
		for _, opt := range schema.GlobalOptions() {
			_, _ = fmt.Fprintf(w, "%s\t%s\n", opt.Key, schema.Resolve(c.config, opt.Key))
		}
		_ = w.Flush()
		for _, warning := range c.config.Warnings {
			_, _ = fmt.Fprintf(s.Stderr, "warning: %s\n", warning)
		}
		return nil

	case len(args) == 1 && args[0] == "validate":
		issues := config.ValidateConfig(c.config, schema)
		if len(issues) == 0 {
			_, _ = fmt.Fprintln(s.Stdout, "Configuration is valid.")
			return nil
		}
		_, _ = fmt.Fprintf(s.Stdout, "Configuration has %d issue(s):\n", len(issues))
		for _, issue := range issues {
			_, _ = fmt.Fprintf(s.Stdout, "  - %s\n", issue)
		}
		return nil

	case len(args) == 1:
		if schema.Lookup("", args[0]) == nil {
			return fmt.Errorf("unknown configuration key: %s", args[0])
		}
		_, _ = fmt.Fprintf(s.Stdout, "%s: %s\n", args[0], schema.Resolve(c.config, args[0]))
		return nil

	case len(args) == 2:
		return c.set(args[0], args[1], s)
	}
	return fmt.Errorf("invalid arguments: %v", args)
}

func (c *ConfigCommand) set(key, value string, s Streams) error {
	candidate := config.NewConfig()
	candidate.SetGlobalOption(key, value)
	if issues := config.ValidateConfig(candidate, config.DefaultSchema()); len(issues) > 0 {
		return fmt.Errorf("cannot set %s: %s", key, issues[0])
	}

	path := c.configPath
	if path == "" {
		if err := config.EnsureConfigDir(); err != nil {
			return fmt.Errorf("failed to create config directory: %w", err)
		}
		p, err := config.GetConfigPath()
		if err != nil {
			return fmt.Errorf("failed to get config path: %w", err)
		}
		path = p
	}
	if err := config.SetKeyInFile(path, key, value); err != nil {
		return fmt.Errorf("failed to persist config: %w", err)
	}
	c.config.SetGlobalOption(key, value)
	_, _ = fmt.Fprintf(s.Stdout, "Set configuration: %s = %s\n", key, value)
	return nil
}
