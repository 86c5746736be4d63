package config

import (
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/samber/lo"
)

// OptionType represents the expected type of a configuration option value.
type OptionType string

const (
	// TypeString is a plain string value (the default for all config values).
	TypeString OptionType = "string"
	// TypeBool is a boolean value (true/false/yes/no/1/0/on/off).
	TypeBool OptionType = "bool"
	// TypeInt is an integer value.
	TypeInt OptionType = "int"
	// TypeDuration is a Go time.Duration value (e.g. "30s", "5m", "1h").
	TypeDuration OptionType = "duration"
	// TypeTime is an RFC 3339 timestamp (e.g. "2025-07-01T00:00:00+10:00").
	TypeTime OptionType = "time"
)

// ConfigOption declares a single configuration option with its type, default,
// documentation, and environment variable override.
type ConfigOption struct {
	// Key is the option name as it appears in the config file (kebab-case).
	Key string
	// Type is the expected value type for validation.
	Type OptionType
	// Default is the default value as a string, or "" for no default.
	Default string
	// Description is a human-readable description of the option.
	Description string
	// Section is "" for global options, or a command/section name.
	Section string
	// EnvVar is the environment variable that overrides this option, or "".
	EnvVar string
}

// ConfigSchema is the set of options gmtterm understands. It drives
// validation, value resolution and the `config -schema` reference.
type ConfigSchema struct {
	options []ConfigOption
	// index maps section ("" for global) to key to position in options
	index map[string]map[string]int
}

// NewSchema creates an empty schema.
func NewSchema() *ConfigSchema {
	return &ConfigSchema{index: make(map[string]map[string]int)}
}

// Register adds opt; registering the same section and key again replaces it.
func (s *ConfigSchema) Register(opt ConfigOption) {
	keys := s.index[opt.Section]
	if keys == nil {
		keys = make(map[string]int)
		s.index[opt.Section] = keys
	}
	if i, ok := keys[opt.Key]; ok {
		s.options[i] = opt
		return
	}
	keys[opt.Key] = len(s.options)
	s.options = append(s.options, opt)
}

// Lookup returns the option declared for key in section ("" for global),
// or nil.
func (s *ConfigSchema) Lookup(section, key string) *ConfigOption {
	i, ok := s.index[section][key]
	if !ok {
		return nil
	}
	opt := s.options[i]
	return &opt
}

// GlobalOptions returns the global options in registration order.
func (s *ConfigSchema) GlobalOptions() []ConfigOption {
	return s.SectionOptions("")
}

// SectionOptions returns the options of one section in registration order.
func (s *ConfigSchema) SectionOptions(section string) []ConfigOption {
	return lo.Filter(s.options, func(o ConfigOption, _ int) bool { return o.Section == section })
}

// Sections returns the names of the non-global sections, sorted.
func (s *ConfigSchema) Sections() []string {
	names := lo.Without(lo.Keys(s.index), "")
	slices.Sort(names)
	return names
}

// Resolve returns the effective value of a global key: the option's env var
// if set, else the config file, else the declared default.
func (s *ConfigSchema) Resolve(c *Config, key string) string {
	opt := s.Lookup("", key)
	if opt != nil && opt.EnvVar != "" {
		if v, ok := os.LookupEnv(opt.EnvVar); ok {
			return v
		}
	}
	if v, ok := c.GetGlobalOption(key); ok {
		return v
	}
	if opt != nil {
		return opt.Default
	}
	return ""
}

// ValidateConfig checks c against s and returns one sorted message per
// unknown key or badly typed value; nil means the config is valid.
func ValidateConfig(c *Config, s *ConfigSchema) []string {
	var issues []string
	for key, value := range c.Global {
		opt := s.Lookup("", key)
		if opt == nil {
			issues = append(issues, fmt.Sprintf("unknown global option: %q (value: %q)", key, value))
		} else if err := validateType(opt.Type, value); err != nil {
			issues = append(issues, fmt.Sprintf("global option %q: %v", key, err))
		}
	}
	for section, opts := range c.Commands {
		for key, value := range opts {
			opt := s.Lookup(section, key)
			if opt == nil {
				opt = s.Lookup("", key)
			}
			if opt == nil {
				issues = append(issues, fmt.Sprintf("unknown option for command %q: %q (value: %q)", section, key, value))
			} else if err := validateType(opt.Type, value); err != nil {
				issues = append(issues, fmt.Sprintf("option %q in [%s]: %v", key, section, err))
			}
		}
	}
	slices.Sort(issues)
	return issues
}

// validateType checks that a string value matches the expected OptionType.
func validateType(t OptionType, value string) error {
	switch t {
	case TypeString, "":
		return nil
	case TypeBool:
		if _, err := parseBool(value); err != nil {
			return fmt.Errorf("expected bool, got %q", value)
		}
	case TypeInt:
		if _, err := strconv.Atoi(value); err != nil {
			return fmt.Errorf("expected int, got %q", value)
		}
	case TypeDuration:
		if _, err := time.ParseDuration(value); err != nil {
			return fmt.Errorf("expected duration, got %q", value)
		}
	case TypeTime:
		if _, err := time.Parse(time.RFC3339, value); err != nil {
			return fmt.Errorf("expected RFC 3339 time, got %q", value)
		}
	default:
		return fmt.Errorf("unknown option type %q", t)
	}
	return nil
}

// --- Section getters ---

// GetCommandBool returns a section option parsed as a boolean, falling back
// to the global value of the same name. The second result is false if the
// option is unset or unparseable.
func (c *Config) GetCommandBool(command, name string) (bool, bool) {
	v, ok := c.GetCommandOption(command, name)
	if !ok {
		return false, false
	}
	b, err := parseBool(v)
	if err != nil {
		return false, false
	}
	return b, true
}

// GetCommandTime returns a section option parsed as an RFC 3339 timestamp,
// with the same fallback as GetCommandBool.
func (c *Config) GetCommandTime(command, name string) (time.Time, bool) {
	v, ok := c.GetCommandOption(command, name)
	if !ok {
		return time.Time{}, false
	}
	t, err := time.Parse(time.RFC3339, v)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// --- Help text generation ---

// FormatHelp renders every option, globals first, then each section.
func (s *ConfigSchema) FormatHelp() string {
	var b strings.Builder
	writeSection := func(title string, opts []ConfigOption) {
		if len(opts) == 0 {
			return
		}
		if b.Len() > 0 {
			b.WriteString("\n")
		}
		b.WriteString(title + ":\n")
		for _, o := range opts {
			fmt.Fprintf(&b, "  %-20s %s%s\n", o.Key, o.Description, optionNotes(o))
		}
	}
	writeSection("Global Options", s.GlobalOptions())
	for _, sec := range s.Sections() {
		writeSection("["+sec+"] Options", s.SectionOptions(sec))
	}
	return b.String()
}

// optionNotes is the " (type: ..., default: ..., env: ...)" suffix.
func optionNotes(o ConfigOption) string {
	var notes []string
	if o.Type != "" && o.Type != TypeString {
		notes = append(notes, "type: "+string(o.Type))
	}
	if o.Default != "" {
		notes = append(notes, "default: "+o.Default)
	}
	if o.EnvVar != "" {
		notes = append(notes, "env: "+o.EnvVar)
	}
	if len(notes) == 0 {
		return ""
	}
	return " (" + strings.Join(notes, ", ") + ")"
}

// --- Default schema for gmtterm ---

// Global option keys.
const (
	KeyBootInterval   = "boot.interval"
	KeyRevealInterval = "reveal.interval"
	KeyErrorDuration  = "error.duration"
	KeyCountdownStart = "countdown.start"
	KeyCountdownEnd   = "countdown.end"
	KeyAltScreen      = "ui.alt-screen"
	KeyMouse          = "ui.mouse"
	KeyLogFile        = "log.file"
	KeyLogLevel       = "log.level"
	KeyLogMaxSizeMB   = "log.max-size-mb"
	KeyLogMaxFiles    = "log.max-files"
	KeyLogBufferSize  = "log.buffer-size"
)

// DefaultSchema returns the canonical schema declaring all known gmtterm
// configuration options.
func DefaultSchema() *ConfigSchema {
	s := NewSchema()
	for _, opt := range slices.Concat(defaultGlobalOptions(), defaultCommandOptions()) {
		s.Register(opt)
	}
	return s
}

func defaultGlobalOptions() []ConfigOption {
	return []ConfigOption{
		// Terminal cadence
		{Key: KeyBootInterval, Type: TypeDuration, Default: "800ms", Description: "Delay between boot messages"},
		{Key: KeyRevealInterval, Type: TypeDuration, Default: "10ms", Description: "Delay between revealed characters (0 prints instantly)"},
		{Key: KeyErrorDuration, Type: TypeDuration, Default: "2s", Description: "How long a wrong password keeps the error visible"},

		// Launch countdown
		{Key: KeyCountdownStart, Type: TypeTime, Default: "", Description: "Countdown start (RFC 3339, default 2024-11-01 local)"},
		{Key: KeyCountdownEnd, Type: TypeTime, Default: "", Description: "Countdown end (RFC 3339, default 2025-07-01 local)", EnvVar: "GMTTERM_COUNTDOWN_END"},

		// Interactive UI
		{Key: KeyAltScreen, Type: TypeBool, Default: "true", Description: "Use the terminal's alternate screen"},
		{Key: KeyMouse, Type: TypeBool, Default: "true", Description: "Enable mouse clicks on buttons"},

		// Logging options
		{Key: KeyLogFile, Type: TypeString, Default: "", Description: "Log file path (JSON output)", EnvVar: "GMTTERM_LOG_FILE"},
		{Key: KeyLogLevel, Type: TypeString, Default: "info", Description: "Log level: debug, info, warn, error", EnvVar: "GMTTERM_LOG_LEVEL"},
		{Key: KeyLogMaxSizeMB, Type: TypeInt, Default: "10", Description: "Max log file size in MB before rotation"},
		{Key: KeyLogMaxFiles, Type: TypeInt, Default: "5", Description: "Max number of rotated log backup files"},
		{Key: KeyLogBufferSize, Type: TypeInt, Default: "1000", Description: "In-memory log buffer size (entries)"},
	}
}

func defaultCommandOptions() []ConfigOption {
	return []ConfigOption{
		{Key: "power-on", Section: "plain", Type: TypeBool, Default: "false", Description: "Switch the terminal on at start"},
		{Key: "at", Section: "countdown", Type: TypeTime, Default: "", Description: "Evaluate the countdown at this instant instead of now"},
	}
}
