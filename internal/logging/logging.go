// Package logging configures the zerolog logger used across netspeed.
//
// Logs go to stderr so stdout carries only the report.
package logging

import (
	"io"
	"os"

	"github.com/rs/zerolog"
	"golang.org/x/term"
)

const consoleTimeFormat = "15:04:05.000"

// New returns a console logger writing to w at the given level.
// Colors are enabled only when w is a terminal.
func New(w io.Writer, level string) zerolog.Logger {
	return NewWithWriter(w, level, !isTerminal(w))
}

// NewWithWriter returns a console logger writing to w
func NewWithWriter(w io.Writer, level string, noColor bool) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}

	cw := zerolog.ConsoleWriter{Out: w, TimeFormat: consoleTimeFormat, NoColor: noColor}
	return zerolog.New(cw).Level(lvl).With().Timestamp().Logger()
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
