package metadata

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
	"time"

	"github.com/backmassage/vidstamp/internal/ffmpeg"
	"github.com/backmassage/vidstamp/internal/fsx"
	"github.com/backmassage/vidstamp/internal/probe"
)

func requireTools(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("ffmpeg"); err != nil {
		t.Skip("ffmpeg not available")
	}
	if _, err := exec.LookPath("ffprobe"); err != nil {
		t.Skip("ffprobe not available")
	}
}

// synthVideo generates a 1-second 1920x1080 test pattern.
func synthVideo(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test_video.mp4")
	gen := exec.Command("ffmpeg",
		"-hide_banner", "-nostdin", "-loglevel", "error",
		"-f", "lavfi", "-i", "testsrc=size=1920x1080:rate=30",
		"-t", "1", "-pix_fmt", "yuv420p",
		path,
	)
	if out, err := gen.CombinedOutput(); err != nil {
		t.Skipf("cannot generate test video: %v: %s", err, out)
	}
	return path
}

func TestIntegration_WriteAndReadBack(t *testing.T) {
	requireTools(t)
	path := synthVideo(t)
	ctx := context.Background()

	before, err := probe.Probe(ctx, "", path)
	if err != nil {
		t.Fatalf("probe before: %v", err)
	}

	ts := time.Date(2022, 3, 19, 12, 0, 0, 0, time.UTC)
	if err := WriteDatetimeMetadata(ctx, path, ts); err != nil {
		t.Fatalf("WriteDatetimeMetadata: %v", err)
	}

	after, err := probe.Probe(ctx, "", path)
	if err != nil {
		t.Fatalf("probe after: %v", err)
	}
	got, ok := after.CreationTime()
	if !ok {
		t.Fatal("creation_time tag missing after write")
	}
	if !got.Equal(ts) {
		t.Errorf("creation_time = %v, want %v", got, ts)
	}
	if !probe.SameStreams(before, after) {
		t.Errorf("streams changed:\nbefore %+v\nafter  %+v", before.Streams, after.Streams)
	}
	if fsx.Exists(OutputPath(path, "_new")) {
		t.Error("derived output should not remain after success")
	}
}

func TestIntegration_OffsetDiscarded(t *testing.T) {
	requireTools(t)
	path := synthVideo(t)
	ctx := context.Background()

	ts := time.Date(2022, 3, 19, 12, 0, 0, 0, time.FixedZone("", -8*3600))
	w := &Writer{Verify: true}
	for i := 0; i < 2; i++ {
		if err := w.Write(ctx, path, ts); err != nil {
			t.Fatalf("Write #%d: %v", i+1, err)
		}
	}

	r, err := probe.Probe(ctx, "", path)
	if err != nil {
		t.Fatal(err)
	}
	got, _ := r.CreationTime()
	want := time.Date(2022, 3, 19, 12, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("creation_time = %v, want wall clock %v", got, want)
	}
}

func TestIntegration_DeletedInput(t *testing.T) {
	requireTools(t)
	f, err := os.CreateTemp(t.TempDir(), "gone-*.mp4")
	if err != nil {
		t.Fatal(err)
	}
	path := f.Name()
	f.Close()
	os.Remove(path)

	err = WriteDatetimeMetadata(context.Background(), path, time.Now())
	var ee *ffmpeg.ExecError
	if !errors.As(err, &ee) {
		t.Fatalf("expected *ffmpeg.ExecError, got %T %v", err, err)
	}
	if ee.ExitCode == 0 || ee.Output() == "" {
		t.Errorf("ExitCode=%d Output=%q", ee.ExitCode, ee.Output())
	}
	if fsx.Exists(path) {
		t.Error("no file should appear at the original path")
	}
	if fsx.Exists(OutputPath(path, "_new")) {
		t.Error("no file should appear at the derived path")
	}
}
