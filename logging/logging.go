package logging

import (
	"os"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
)

// Logger is the global logger. Commands adjust its level after flag parsing.
var Logger zerolog.Logger

func init() {
	noColor := !isatty.IsTerminal(os.Stderr.Fd()) && !isatty.IsCygwinTerminal(os.Stderr.Fd())
	Logger = newLogger(noColor).Level(zerolog.InfoLevel)
}

func newLogger(noColor bool) zerolog.Logger {
	return zerolog.New(zerolog.ConsoleWriter{
		Out:     os.Stderr,
		NoColor: noColor,
	}).With().Timestamp().Logger()
}

// DisableColor rebuilds the logger without ANSI colours, keeping the level.
func DisableColor() {
	level := Logger.GetLevel()
	Logger = newLogger(true).Level(level)
}

func With() zerolog.Context {
	return Logger.With()
}

func Trace() *zerolog.Event {
	return Logger.Trace()
}

func Debug() *zerolog.Event {
	return Logger.Debug()
}

func Info() *zerolog.Event {
	return Logger.Info()
}

func Warn() *zerolog.Event {
	return Logger.Warn()
}

func Error() *zerolog.Event {
	return Logger.Error()
}

func Fatal() *zerolog.Event {
	return Logger.Fatal()
}
