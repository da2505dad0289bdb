package display

import (
	"bytes"
	"strings"
	"testing"

	"github.com/backmassage/vidstamp/internal/config"
	"github.com/backmassage/vidstamp/internal/term"
)

func TestPrintBanner(t *testing.T) {
	term.Configure(config.ColorNever)
	var buf bytes.Buffer
	PrintBanner(&buf)
	if strings.Contains(buf.String(), "\033[") {
		t.Error("banner contains ANSI codes with colors disabled")
	}
	if n := strings.Count(buf.String(), "\n"); n != 6 {
		t.Errorf("banner has %d lines, want 6", n)
	}

	term.Configure(config.ColorAlways)
	defer term.Configure(config.ColorNever)
	buf.Reset()
	PrintBanner(&buf)
	if !strings.HasPrefix(buf.String(), term.Magenta) || !strings.HasSuffix(buf.String(), term.NC) {
		t.Error("banner should be wrapped in color codes")
	}
}
