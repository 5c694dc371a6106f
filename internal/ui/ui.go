package ui

import (
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

var (
	InfoColor    = color.New(color.FgCyan)
	SuccessColor = color.New(color.FgGreen)
	WarningColor = color.New(color.FgYellow)
	ErrorColor   = color.New(color.FgRed)
	CountColor   = color.New(color.Bold)
)

// Messages go to stderr so they never mix with anything written to stdout.
var Out io.Writer = os.Stderr

func Info(format string, a ...interface{}) {
	InfoColor.Fprintf(Out, format+"\n", a...)
}

func Success(format string, a ...interface{}) {
	SuccessColor.Fprintf(Out, format+"\n", a...)
}

func Warning(format string, a ...interface{}) {
	WarningColor.Fprintf(Out, format+"\n", a...)
}

func Error(format string, a ...interface{}) {
	ErrorColor.Fprintf(Out, format+"\n", a...)
}

// SetColor turns colored output on or off for every message and hunk.
func SetColor(enabled bool) {
	color.NoColor = !enabled
}

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
