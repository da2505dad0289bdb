package batch

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/backmassage/vidstamp/internal/ffmpeg"
	"github.com/backmassage/vidstamp/internal/logging"
	"github.com/backmassage/vidstamp/internal/metadata"
	"github.com/backmassage/vidstamp/internal/probe"
)

// Options controls a batch run.
type Options struct {
	Jobs          int
	Source        TimeSource
	DryRun        bool
	SkipTagged    bool   // Probe first; skip files already carrying the value.
	FFprobe       string // Used by SkipTagged.
	PreserveMtime bool   // Restore each file's modification time after rewrite.
}

type outcome int

const (
	outcomeStamped outcome = iota
	outcomeSkipped
	outcomeFailed
)

// Run stamps files with up to opts.Jobs concurrent ffmpeg processes and
// returns aggregate stats. Per-file failures are logged and counted. A
// missing or unstartable ffmpeg stops the whole run, since every remaining
// file would fail the same way.
func Run(ctx context.Context, w *metadata.Writer, log *logging.Logger, files []string, opts Options) Stats {
	stats := Stats{Total: len(files)}
	start := time.Now()

	jobs := opts.Jobs
	if jobs < 1 {
		jobs = 1
	}
	log.Info("Found %d files, %d worker(s)", len(files), jobs)
	if opts.DryRun {
		log.Warn("DRY RUN - no files will be written")
	}

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)

	for i, path := range files {
		if gctx.Err() != nil {
			break
		}
		n := i + 1
		g.Go(func() error {
			res, err := processFile(gctx, w, log, opts, path, n, len(files))
			mu.Lock()
			switch res {
			case outcomeStamped:
				stats.Stamped++
			case outcomeSkipped:
				stats.Skipped++
			case outcomeFailed:
				stats.Failed++
			}
			mu.Unlock()
			if errors.Is(err, ffmpeg.ErrToolUnavailable) {
				return err
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		log.Error("Aborting batch: %v", err)
	} else if ctx.Err() != nil {
		log.Warn("Interrupted")
	}

	stats.Elapsed = time.Since(start)
	logSummary(log, &stats)
	return stats
}

// processFile handles one file: stat -> pick timestamp -> optional skip
// check -> write. The returned error is non-nil only for failures that
// should stop the batch.
func processFile(ctx context.Context, w *metadata.Writer, log *logging.Logger, opts Options, path string, n, total int) (outcome, error) {
	base := filepath.Base(path)

	fi, err := os.Stat(path)
	if err != nil {
		log.Error("[%d/%d] File not found: %s", n, total, path)
		return outcomeFailed, nil
	}

	ts, err := opts.Source(path, fi)
	if err != nil {
		log.Error("[%d/%d] %s: cannot determine timestamp: %v", n, total, base, err)
		return outcomeFailed, nil
	}
	tag := metadata.FormatCreationTime(ts)

	if opts.SkipTagged {
		if r, err := probe.Probe(ctx, opts.FFprobe, path); err != nil {
			log.Debug("[%d/%d] %s: probe failed, stamping anyway: %v", n, total, base, err)
		} else if got, ok := r.CreationTime(); ok && got.Equal(metadata.StripLocation(ts)) {
			log.Warn("[%d/%d] Skip (already %s): %s", n, total, tag, base)
			return outcomeSkipped, nil
		}
	}

	if opts.DryRun {
		log.Success("[%d/%d] [DRY] %s", n, total, strings.Join(w.Command(path, ts), " "))
		return outcomeStamped, nil
	}

	if err := w.Write(ctx, path, ts); err != nil {
		LogFailure(log, path, err)
		return outcomeFailed, err
	}

	if opts.PreserveMtime {
		if err := os.Chtimes(path, time.Time{}, fi.ModTime()); err != nil {
			log.Warn("[%d/%d] %s: could not restore modification time: %v", n, total, base, err)
		}
	}

	log.Success("[%d/%d] %s -> %s", n, total, base, tag)
	return outcomeStamped, nil
}

func logSummary(log *logging.Logger, stats *Stats) {
	log.Info("==============================")
	log.Info("Done: %d stamped, %d skipped, %d failed (of %d) in %s",
		stats.Stamped, stats.Skipped, stats.Failed, stats.Total, stats.Elapsed.Round(time.Millisecond))
	if n := stats.Total - stats.Stamped - stats.Skipped - stats.Failed; n > 0 {
		log.Warn("%d file(s) not processed", n)
	}
}
