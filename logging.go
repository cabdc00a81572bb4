package cliutil

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"

	"github.com/hatsunemiku3939/cliutil/config"
)

// ValidLogLevels lists the accepted level names, most verbose first.
var ValidLogLevels = []string{"debug", "info", "warning", "error", "critical"}

var logLevels = map[string]zerolog.Level{
	"debug":    zerolog.DebugLevel,
	"info":     zerolog.InfoLevel,
	"warning":  zerolog.WarnLevel,
	"error":    zerolog.ErrorLevel,
	"critical": zerolog.FatalLevel,
}

// ConfigureLogger builds the program logger. An empty level disables
// logging entirely; otherwise records at or above level are written to w as
// the bare message followed by any fields.
func ConfigureLogger(w io.Writer, level string) (zerolog.Logger, error) {
	if level == "" {
		return zerolog.Nop(), nil
	}
	lvl, ok := logLevels[level]
	if !ok {
		return zerolog.Nop(), fmt.Errorf("%w %q. Valid values are %v", ErrLogLevel, level, ValidLogLevels)
	}

	out := zerolog.ConsoleWriter{
		Out:        w,
		NoColor:    true,
		PartsOrder: []string{zerolog.MessageFieldName},
	}
	return zerolog.New(out).Level(lvl), nil
}

// ConfigureLoggerFromEnviron applies the level loaded from DCOS_LOG_LEVEL,
// writing to stderr.
func ConfigureLoggerFromEnviron(cfg config.Config) (zerolog.Logger, error) {
	return ConfigureLogger(os.Stderr, cfg.LogLevel)
}
