package command

import (
	"flag"
	"io"

	"github.com/gmtstudio/gmt-terminal/internal/config"
	"github.com/gmtstudio/gmt-terminal/internal/logging"
)

// logFlags are the logging flags shared by the terminal commands.
type logFlags struct {
	file  string
	level string
}

func (f *logFlags) setup(fs *flag.FlagSet) {
	*f = logFlags{}
	fs.StringVar(&f.file, "log-file", "", "Write JSON logs to this file (default: log.file config)")
	fs.StringVar(&f.level, "log-level", "", "Log level: debug, info, warn, error (default: log.level config)")
}

// resolveLogOptions merges flags over resolved settings: flag → config/env →
// defaults. console, if non-nil, also receives text logs.
func resolveLogOptions(f logFlags, settings config.Settings, console io.Writer) (logging.Options, error) {
	levelStr := f.level
	if levelStr == "" {
		levelStr = settings.LogLevel
	}
	level, err := logging.ParseLevel(levelStr)
	if err != nil {
		return logging.Options{}, err
	}

	path := f.file
	if path == "" {
		path = settings.LogFile
	}

	return logging.Options{
		Level:      level,
		File:       path,
		MaxSizeMB:  max(settings.LogMaxSizeMB, 1),
		MaxFiles:   max(settings.LogMaxFiles, 0),
		BufferSize: settings.LogBufferSize,
		Console:    console,
	}, nil
}
