package cmd

import (
	"io"
	"strings"

	log "github.com/sirupsen/logrus"
)

// Context provides the CLI context global to all commands
type Context struct {
	LogLevel log.Level

	// Colors enables colored log output; set it when Stderr is a terminal
	Colors bool
	Stderr io.Writer
}

// LogLevelFromEnv maps a LOG_LEVEL value (TRACE, DEBUG, INFO, WARN, ERROR,
// FATAL, PANIC) onto a logging level. Anything else is Info.
func LogLevelFromEnv(value string) log.Level {
	level, err := log.ParseLevel(strings.ToLower(value))
	if err != nil {
		return log.InfoLevel
	}

	return level
}

// ApplyContext will load the context into the standard logger
func ApplyContext(ctx Context) {
	log.SetOutput(ctx.Stderr)
	log.SetLevel(ctx.LogLevel)
	log.SetReportCaller(false)
	log.SetFormatter(&log.TextFormatter{
		FullTimestamp: false,
		ForceColors:   ctx.Colors,
		DisableColors: !ctx.Colors,
	})
}
