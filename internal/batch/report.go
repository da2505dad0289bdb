package batch

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/backmassage/vidstamp/internal/display"
	"github.com/backmassage/vidstamp/internal/probe"
	"github.com/backmassage/vidstamp/internal/term"
)

// Row is one line of the tag report.
type Row struct {
	Name         string
	CreationTime string // Raw tag value; empty when missing.
	Resolution   string
	Duration     float64 // Seconds.
	BitRate      int64   // Bits per second.
	Size         int64
	Err          error
}

// maxNameWidth caps the file column, in runes.
const maxNameWidth = 50

// Report probes each file and returns one row per file. Probe failures are
// recorded on the row rather than aborting the report.
func Report(ctx context.Context, ffprobe string, files []string) []Row {
	rows := make([]Row, 0, len(files))
	for _, path := range files {
		if ctx.Err() != nil {
			break
		}
		row := Row{Name: filepath.Base(path)}
		r, err := probe.Probe(ctx, ffprobe, path)
		if err != nil {
			row.Err = err
			rows = append(rows, row)
			continue
		}
		row.CreationTime, _ = r.Tag("creation_time")
		row.Resolution = r.Resolution()
		row.Duration = r.Format.Duration
		row.BitRate = r.Format.BitRate
		row.Size = r.Format.Size
		rows = append(rows, row)
	}
	return rows
}

// PrintReport writes rows as an aligned table. Missing tags and probe
// failures are highlighted when colors are enabled. Widths are counted in
// runes so multibyte file names line up.
func PrintReport(out io.Writer, rows []Row) {
	headers := []string{"File", "Creation Time", "Resolution", "Duration", "Bitrate", "Size"}
	cells := make([][]string, len(rows))
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = utf8.RuneCountInString(h)
	}
	for i, r := range rows {
		cells[i] = []string{truncate(r.Name, maxNameWidth), tagCell(r), r.Resolution, "", "", ""}
		if r.Err == nil {
			if r.Duration > 0 {
				cells[i][3] = display.FormatSeconds(r.Duration)
			}
			if r.BitRate > 0 {
				cells[i][4] = display.FormatBitrateLabel(r.BitRate)
			}
			cells[i][5] = display.FormatBytes(r.Size)
		}
		for j, c := range cells[i] {
			widths[j] = max(widths[j], utf8.RuneCountInString(c))
		}
	}

	var header strings.Builder
	for i, h := range headers {
		header.WriteString("  " + pad(h, widths[i]))
	}
	line := strings.TrimRight(header.String(), " ")
	fmt.Fprintln(out, line)
	fmt.Fprintln(out, "  "+strings.Repeat("─", utf8.RuneCountInString(line)-2))

	for i, r := range rows {
		var b strings.Builder
		for j, c := range cells[i] {
			cell := pad(c, widths[j])
			if j == 1 {
				cell = colorize(cell, r)
			}
			b.WriteString("  " + cell)
		}
		fmt.Fprintln(out, strings.TrimRight(b.String(), " "))
	}
}

func tagCell(r Row) string {
	switch {
	case r.Err != nil:
		return "(probe failed)"
	case r.CreationTime == "":
		return "(none)"
	default:
		return r.CreationTime
	}
}

// pad right-pads s with spaces to width runes.
func pad(s string, width int) string {
	if n := utf8.RuneCountInString(s); n < width {
		return s + strings.Repeat(" ", width-n)
	}
	return s
}

// truncate shortens s to at most width runes, marking the cut with "…".
func truncate(s string, width int) string {
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	return string(runes[:width-1]) + "…"
}

// colorize wraps an already padded cell, so escape bytes do not count
// towards the column width.
func colorize(cell string, r Row) string {
	switch {
	case r.Err != nil:
		return term.Red + cell + term.NC
	case r.CreationTime == "":
		return term.Yellow + cell + term.NC
	default:
		return cell
	}
}
