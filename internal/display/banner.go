// Package display holds the CLI banner and human-readable formatting helpers.
package display

import (
	"fmt"
	"io"

	"github.com/backmassage/vidstamp/internal/term"
)

// PrintBanner prints the ASCII art banner; uses Magenta if colors are enabled.
func PrintBanner(out io.Writer) {
	fmt.Fprint(out, term.Magenta)
	fmt.Fprint(out, `       _     _     _
__   _(_) __| |___| |_ __ _ _ __ ___  _ __
\ \ / / |/ _`+"`"+` / __| __/ _`+"`"+` | '_ `+"`"+` _ \| '_ \
 \ V /| | (_| \__ \ || (_| | | | | | | |_) |
  \_/ |_|\__,_|___/\__\__,_|_| |_| |_| .__/
                                     |_|
`)
	fmt.Fprint(out, term.NC)
}
