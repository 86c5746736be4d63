package config

import (
	"fmt"
	"strconv"
	"time"
)

// Settings is the typed, fully resolved view of the global options: env
// override first, then the config file, then the schema default.
type Settings struct {
	BootInterval   time.Duration
	RevealInterval time.Duration
	ErrorDuration  time.Duration
	// CountdownStart and CountdownEnd are zero when unset.
	CountdownStart time.Time
	CountdownEnd   time.Time
	AltScreen      bool
	Mouse          bool
	LogFile        string
	LogLevel       string
	LogMaxSizeMB   int
	LogMaxFiles    int
	LogBufferSize  int
}

// Resolve computes Settings for c against the default schema. A value that
// does not parse is an error naming its key; the file loader has already
// warned about such values, but env overrides bypass that check.
func Resolve(c *Config) (Settings, error) {
	r := resolver{schema: DefaultSchema(), config: c}
	s := Settings{
		BootInterval:   r.duration(KeyBootInterval),
		RevealInterval: r.duration(KeyRevealInterval),
		ErrorDuration:  r.duration(KeyErrorDuration),
		CountdownStart: r.time(KeyCountdownStart),
		CountdownEnd:   r.time(KeyCountdownEnd),
		AltScreen:      r.bool(KeyAltScreen),
		Mouse:          r.bool(KeyMouse),
		LogFile:        r.schema.Resolve(c, KeyLogFile),
		LogLevel:       r.schema.Resolve(c, KeyLogLevel),
		LogMaxSizeMB:   r.int(KeyLogMaxSizeMB),
		LogMaxFiles:    r.int(KeyLogMaxFiles),
		LogBufferSize:  r.int(KeyLogBufferSize),
	}
	if r.err != nil {
		return Settings{}, r.err
	}
	if s.BootInterval <= 0 {
		return Settings{}, fmt.Errorf("%s: must be positive, got %s", KeyBootInterval, s.BootInterval)
	}
	if s.RevealInterval < 0 || s.ErrorDuration < 0 {
		return Settings{}, fmt.Errorf("%s and %s must not be negative", KeyRevealInterval, KeyErrorDuration)
	}
	return s, nil
}

// resolver records the first parse failure.
type resolver struct {
	schema *ConfigSchema
	config *Config
	err    error
}

func (r *resolver) fail(key, value string, err error) {
	if r.err == nil {
		r.err = fmt.Errorf("%s: invalid value %q: %w", key, value, err)
	}
}

func (r *resolver) duration(key string) time.Duration {
	v := r.schema.Resolve(r.config, key)
	if v == "" {
		return 0
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		r.fail(key, v, err)
	}
	return d
}

func (r *resolver) time(key string) time.Time {
	v := r.schema.Resolve(r.config, key)
	if v == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339, v)
	if err != nil {
		r.fail(key, v, err)
	}
	return t
}

func (r *resolver) bool(key string) bool {
	v := r.schema.Resolve(r.config, key)
	b, err := parseBool(v)
	if err != nil {
		r.fail(key, v, err)
	}
	return b
}

func (r *resolver) int(key string) int {
	v := r.schema.Resolve(r.config, key)
	i, err := strconv.Atoi(v)
	if err != nil {
		r.fail(key, v, err)
	}
	return i
}
