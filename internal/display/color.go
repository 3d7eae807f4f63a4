// Package display renders planner results for the terminal.
//
// Colors use raw ANSI escape codes. They are off when NO_COLOR is set or the
// output is not a terminal, and FORCE_COLOR turns them on regardless.
package display

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"sync/atomic"
)

const (
	reset  = "\033[0m"
	bold   = "\033[1m"
	dim    = "\033[2m"
	red    = "\033[31m"
	green  = "\033[32m"
	yellow = "\033[33m"
	cyan   = "\033[36m"
	fgGray = "\033[90m"
)

var enabled atomic.Bool

func init() {
	enabled.Store(shouldEnable(os.Stdout))
}

// Configure sets color output for w. plain forces colors off, as --json does.
func Configure(w io.Writer, plain bool) {
	enabled.Store(!plain && shouldEnable(w))
}

func shouldEnable(w io.Writer) bool {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	if _, ok := os.LookupEnv("FORCE_COLOR"); ok {
		return true
	}
	f, ok := w.(*os.File)
	return ok && isTerminal(f)
}

// isTerminal reports whether f is a character device.
func isTerminal(f *os.File) bool {
	fi, err := f.Stat()
	if err != nil {
		return false
	}
	return (fi.Mode() & os.ModeCharDevice) != 0
}

// SetEnabled overrides the detected color state.
func SetEnabled(b bool) {
	enabled.Store(b)
}

// Enabled reports whether color output is active.
func Enabled() bool {
	return enabled.Load()
}

func wrap(code, text string) string {
	if !enabled.Load() {
		return text
	}
	return code + text + reset
}

func Bold(text string) string   { return wrap(bold, text) }
func Dim(text string) string    { return wrap(dim, text) }
func Red(text string) string    { return wrap(red, text) }
func Green(text string) string  { return wrap(green, text) }
func Yellow(text string) string { return wrap(yellow, text) }
func Cyan(text string) string   { return wrap(cyan, text) }
func Gray(text string) string   { return wrap(fgGray, text) }

// Accent highlights the next prayer and today's row.
func Accent(text string) string {
	return wrap(bold+cyan, text)
}

// Boldf formats and bolds a string.
func Boldf(format string, a ...any) string {
	return Bold(fmt.Sprintf(format, a...))
}

// Confidence colors a slot score: green from 90, yellow from 70, red below.
func Confidence(score int) string {
	s := strconv.Itoa(score) + "%"
	switch {
	case score >= 90:
		return Green(s)
	case score >= 70:
		return Yellow(s)
	default:
		return Red(s)
	}
}

// Check renders a completion flag.
func Check(done bool) string {
	if done {
		return Green("✓")
	}
	return Gray("·")
}
