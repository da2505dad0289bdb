package batch

import (
	"bytes"
	"errors"
	"os"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/backmassage/vidstamp/internal/config"
	"github.com/backmassage/vidstamp/internal/term"
)

func TestPrintReport(t *testing.T) {
	term.Configure(config.ColorNever)

	rows := []Row{
		{Name: "tagged.mp4", CreationTime: "2022-03-19T12:00:00.000000Z", Resolution: "1920x1080",
			Duration: 3723.5, BitRate: 12345678, Size: 5 * 1024 * 1024},
		{Name: "untagged.mov", Resolution: "1280x720", Duration: 12.34, Size: 2048},
		{Name: "broken.mkv", Err: errors.New("ffprobe failed")},
	}
	var buf bytes.Buffer
	PrintReport(&buf, rows)

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 5 {
		t.Fatalf("got %d lines:\n%s", len(lines), buf.String())
	}
	if !strings.Contains(lines[0], "Creation Time") || !strings.Contains(lines[0], "Bitrate") {
		t.Errorf("header = %q", lines[0])
	}
	for _, want := range []string{"2022-03-19T12:00:00.000000Z", "1920x1080", "1:02:03", "12.3 Mbps", "5.0 MiB"} {
		if !strings.Contains(lines[2], want) {
			t.Errorf("row %q missing %q", lines[2], want)
		}
	}
	if !strings.Contains(lines[3], "(none)") || !strings.Contains(lines[3], "12.3 s") {
		t.Errorf("untagged row = %q", lines[3])
	}
	if !strings.Contains(lines[4], "(probe failed)") {
		t.Errorf("failed row = %q", lines[4])
	}

	col := strings.Index(lines[0], "Resolution")
	if strings.Index(lines[2], "1920x1080") != col || strings.Index(lines[3], "1280x720") != col {
		t.Errorf("columns not aligned:\n%s", buf.String())
	}
}

func TestPrintReport_MultibyteNames(t *testing.T) {
	term.Configure(config.ColorNever)

	rows := []Row{
		{Name: "été_à_paris.mp4", CreationTime: "x", Resolution: "640x480"},
		{Name: "plain.mp4", CreationTime: "x", Resolution: "320x240"},
	}
	var buf bytes.Buffer
	PrintReport(&buf, rows)

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	col := runeIndex(lines[0], "Resolution")
	if runeIndex(lines[2], "640x480") != col || runeIndex(lines[3], "320x240") != col {
		t.Errorf("columns not aligned:\n%s", buf.String())
	}
}

func TestPrintReport_TruncatesLongNames(t *testing.T) {
	term.Configure(config.ColorNever)

	long := strings.Repeat("日", 80) + ".mp4"
	var buf bytes.Buffer
	PrintReport(&buf, []Row{{Name: long, CreationTime: "x"}})

	out := buf.String()
	if strings.Contains(out, long) {
		t.Error("long name should be truncated")
	}
	if !utf8.ValidString(out) {
		t.Error("truncation produced invalid UTF-8")
	}
	if !strings.Contains(out, strings.Repeat("日", maxNameWidth-1)+"…") {
		t.Errorf("expected %d runes plus an ellipsis:\n%s", maxNameWidth-1, out)
	}
}

func runeIndex(s, substr string) int {
	i := strings.Index(s, substr)
	if i < 0 {
		return -1
	}
	return utf8.RuneCountInString(s[:i])
}

func TestTimeSources(t *testing.T) {
	dir := t.TempDir()
	path := touch(t, dir, "a.mp4")
	mtime := time.Date(2021, 1, 2, 3, 4, 5, 0, time.UTC)
	if err := os.Chtimes(path, mtime, mtime); err != nil {
		t.Fatal(err)
	}
	fi, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}

	fixed := time.Date(2022, 3, 19, 12, 0, 0, 0, time.UTC)
	if got, _ := Fixed(fixed)(path, fi); !got.Equal(fixed) {
		t.Errorf("Fixed = %v", got)
	}

	east := time.FixedZone("UTC+2", 2*3600)
	got, err := ModTime(east)(path, fi)
	if err != nil {
		t.Fatal(err)
	}
	if !got.Equal(mtime) || got.Hour() != 5 {
		t.Errorf("ModTime = %v, want %v expressed in UTC+2", got, mtime)
	}
}
