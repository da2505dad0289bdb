// Package term holds the ANSI color codes shared by the vidstamp logger,
// the banner and the show table, plus TTY detection.
//
// The codes are plain package-level strings so callers can concatenate them
// directly. With colors off every code is "", and the same concatenation
// produces clean text for pipes and log files.
package term

import (
	"os"
	"strings"

	"github.com/backmassage/vidstamp/internal/config"
)

// Color codes. Set by [Configure]; empty until then.
var (
	Red     string // errors, failed probes
	Green   string // stamped files
	Yellow  string // warnings, missing tags
	Blue    string // info
	Cyan    string // debug
	Magenta string // banner
	NC      string // reset
)

type palette struct {
	red, green, yellow, blue, cyan, magenta, reset string
}

var (
	ansi = palette{
		red:     "\033[1;91m",
		green:   "\033[1;92m",
		yellow:  "\033[1;93m",
		blue:    "\033[1;94m",
		cyan:    "\033[1;96m",
		magenta: "\033[1;95m",
		reset:   "\033[0m",
	}
	plain palette
)

func (p palette) apply() {
	Red, Green, Yellow, Blue, Cyan, Magenta, NC = p.red, p.green, p.yellow, p.blue, p.cyan, p.magenta, p.reset
}

// Configure switches the codes on or off for mode. logging.NewLogger calls
// it, so every command picks up the --color flag before printing anything.
func Configure(mode config.ColorMode) {
	if wantColor(mode) {
		ansi.apply()
	} else {
		plain.apply()
	}
}

// Enabled reports whether the codes are currently non-empty.
func Enabled() bool { return NC != "" }

// wantColor decides auto mode from stdout: a TTY, NO_COLOR unset
// (https://no-color.org) and a terminal other than "dumb".
func wantColor(mode config.ColorMode) bool {
	switch mode {
	case config.ColorAlways:
		return true
	case config.ColorNever:
		return false
	}
	if os.Getenv("NO_COLOR") != "" || strings.EqualFold(os.Getenv("TERM"), "dumb") {
		return false
	}
	return IsTerminal(os.Stdout)
}

// IsTerminal reports whether f is a character device.
func IsTerminal(f *os.File) bool {
	if f == nil {
		return false
	}
	fi, err := f.Stat()
	return err == nil && fi.Mode()&os.ModeCharDevice != 0
}
