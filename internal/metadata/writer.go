// Package metadata writes a creation_time tag into a video container by
// stream-copying it through ffmpeg and atomically replacing the original.
package metadata

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/backmassage/vidstamp/internal/config"
	"github.com/backmassage/vidstamp/internal/ffmpeg"
	"github.com/backmassage/vidstamp/internal/fsx"
	"github.com/backmassage/vidstamp/internal/probe"
)

// Logger is the minimal logging interface the writer needs.
type Logger interface {
	Debug(string, ...interface{})
	Warn(string, ...interface{})
}

// Writer rewrites creation_time tags. The zero value uses "ffmpeg" from
// PATH, the "_new" suffix, no timeout and no verification.
//
// A Writer holds no mutable state and may be shared by goroutines, but two
// concurrent writes to the same path race on the same output file; callers
// must serialize per path.
type Writer struct {
	FFmpeg  string        // ffmpeg executable. Default: "ffmpeg".
	FFprobe string        // ffprobe executable, used when Verify is set.
	Suffix  string        // Output suffix. Default: "_new".
	Timeout time.Duration // Zero means wait for ffmpeg indefinitely.
	Verify  bool          // Re-read the tag after replacing.
	Log     Logger        // Optional.
}

// NewWriter returns a Writer configured from cfg.
func NewWriter(cfg *config.Config, log Logger) *Writer {
	return &Writer{
		FFmpeg:  cfg.FFmpeg.Path,
		FFprobe: cfg.FFmpeg.Probe,
		Suffix:  cfg.Output.Suffix,
		Timeout: cfg.FFmpeg.Timeout,
		Verify:  cfg.Output.Verify,
		Log:     log,
	}
}

// WriteDatetimeMetadata rewrites path with the zero-value Writer.
func WriteDatetimeMetadata(ctx context.Context, path string, t time.Time) error {
	var w Writer
	return w.Write(ctx, path, t)
}

// Command returns the ffmpeg argument list Write would run for path.
func (w *Writer) Command(path string, t time.Time) []string {
	return ffmpeg.Build(w.FFmpeg, &ffmpeg.Request{
		Input:        path,
		Output:       OutputPath(path, w.suffix()),
		CreationTime: FormatCreationTime(t),
	})
}

// Write sets path's container-level creation_time to t, copying all
// streams and the remaining tags unchanged, then renames the rewritten
// copy onto path.
//
// Errors:
//   - *ffmpeg.LaunchError (errors.Is ffmpeg.ErrToolUnavailable): ffmpeg
//     could not be started.
//   - *ffmpeg.ExecError: ffmpeg exited non-zero; path is untouched. This
//     is also how a missing or unreadable input is reported.
//   - *ReplaceError: the final rename failed; the rewritten copy is left
//     next to path.
//   - *VerifyError: Verify is set and the tag did not read back.
//   - an error wrapping ctx.Err() when the context or Timeout ends first.
func (w *Writer) Write(ctx context.Context, path string, t time.Time) error {
	if w.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, w.Timeout)
		defer cancel()
	}

	out := OutputPath(path, w.suffix())
	preexisting := fsx.Exists(out)
	args := w.Command(path, t)

	w.debug("Running: %s", strings.Join(args, " "))
	res, err := ffmpeg.Execute(ctx, args)
	if err != nil {
		// ffmpeg may have created a partial file before failing; only
		// remove what this call produced.
		if !preexisting {
			if rmErr := fsx.RemoveIfExists(out); rmErr != nil {
				w.warn("Could not remove partial output %s: %v", out, rmErr)
			}
		}
		return err
	}
	w.debug("ffmpeg finished in %s", res.Duration.Round(time.Millisecond))

	if err := fsx.Replace(out, path); err != nil {
		return &ReplaceError{Src: out, Dst: path, Err: err}
	}

	if w.Verify {
		return w.verify(ctx, path, t)
	}
	return nil
}

func (w *Writer) verify(ctx context.Context, path string, t time.Time) error {
	r, err := probe.Probe(ctx, w.FFprobe, path)
	if err != nil {
		return fmt.Errorf("verify: %w", err)
	}
	want := StripLocation(t)
	raw, _ := r.Tag(ffmpeg.CreationTimeKey)
	got, ok := r.CreationTime()
	if !ok || !got.Equal(want) {
		return &VerifyError{Path: path, Want: want, Got: raw}
	}
	w.debug("Verified creation_time=%s", raw)
	return nil
}

func (w *Writer) suffix() string {
	if w.Suffix == "" {
		return config.DefaultSuffix
	}
	return w.Suffix
}

func (w *Writer) debug(format string, args ...interface{}) {
	if w.Log != nil {
		w.Log.Debug(format, args...)
	}
}

func (w *Writer) warn(format string, args ...interface{}) {
	if w.Log != nil {
		w.Log.Warn(format, args...)
	}
}
