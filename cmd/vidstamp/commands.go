package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/backmassage/vidstamp/internal/batch"
	"github.com/backmassage/vidstamp/internal/check"
	"github.com/backmassage/vidstamp/internal/display"
	"github.com/backmassage/vidstamp/internal/metadata"
)

func stampCommand() *cli.Command {
	return &cli.Command{
		Name:      "stamp",
		Usage:     "Write one timestamp into each given file",
		ArgsUsage: "<file>...",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "time", Aliases: []string{"t"}, Usage: "Timestamp, e.g. 2022-03-19T12:00:00", Required: true},
			&cli.BoolFlag{Name: "verify", Usage: "Re-read the tag with ffprobe after writing"},
		},
		Action: runStamp,
	}
}

func runStamp(ctx context.Context, cmd *cli.Command) error {
	files := cmd.Args().Slice()
	if len(files) == 0 {
		return fmt.Errorf("stamp: no files given")
	}
	ts, err := metadata.ParseTimestamp(cmd.String("time"))
	if err != nil {
		return err
	}

	cfg, log, err := setup(cmd)
	if err != nil {
		return err
	}
	defer log.Close()

	if cmd.IsSet("verify") {
		cfg.Output.Verify = cmd.Bool("verify")
	}
	if err := check.CheckDeps(cfg, cfg.Output.Verify); err != nil {
		log.Error("%v", err)
		return errFailed
	}

	w := metadata.NewWriter(cfg, log)
	failed := 0
	for _, path := range files {
		if ctx.Err() != nil {
			log.Warn("Interrupted")
			return errFailed
		}
		if err := w.Write(ctx, path, ts); err != nil {
			batch.LogFailure(log, path, err)
			failed++
			continue
		}
		log.Success("%s -> %s", path, metadata.FormatCreationTime(ts))
	}
	if failed > 0 {
		return errFailed
	}
	return nil
}

func batchCommand() *cli.Command {
	return &cli.Command{
		Name:      "batch",
		Usage:     "Stamp every video under a directory",
		ArgsUsage: "<dir>",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "time", Aliases: []string{"t"}, Usage: "Write this timestamp to every file"},
			&cli.BoolFlag{Name: "from-mtime", Usage: "Use each file's modification time"},
			&cli.BoolFlag{Name: "utc", Usage: "With --from-mtime, express the time in UTC instead of local time"},
			&cli.IntFlag{Name: "jobs", Aliases: []string{"j"}, Usage: "Concurrent ffmpeg processes"},
			&cli.BoolFlag{Name: "recursive", Aliases: []string{"r"}, Usage: "Descend into subdirectories"},
			&cli.BoolFlag{Name: "dry-run", Usage: "Print the commands without running them"},
			&cli.BoolFlag{Name: "skip-tagged", Usage: "Skip files that already carry the timestamp"},
			&cli.BoolFlag{Name: "verify", Usage: "Re-read the tag with ffprobe after writing"},
		},
		Action: runBatch,
	}
}

func runBatch(ctx context.Context, cmd *cli.Command) error {
	if cmd.NArg() != 1 {
		return fmt.Errorf("batch: expected exactly one directory")
	}
	dir := cmd.Args().First()

	var source batch.TimeSource
	fromMtime := cmd.Bool("from-mtime")
	switch {
	case cmd.IsSet("time") && fromMtime:
		return fmt.Errorf("batch: --time and --from-mtime are mutually exclusive")
	case cmd.IsSet("time"):
		ts, err := metadata.ParseTimestamp(cmd.String("time"))
		if err != nil {
			return err
		}
		source = batch.Fixed(ts)
	case fromMtime:
		loc := time.Local
		if cmd.Bool("utc") {
			loc = time.UTC
		}
		source = batch.ModTime(loc)
	default:
		return fmt.Errorf("batch: one of --time or --from-mtime is required")
	}

	cfg, log, err := setup(cmd)
	if err != nil {
		return err
	}
	defer log.Close()

	if cmd.IsSet("jobs") {
		cfg.Batch.Jobs = int(cmd.Int("jobs"))
	}
	if cmd.IsSet("recursive") {
		cfg.Batch.Recursive = cmd.Bool("recursive")
	}
	if cmd.IsSet("verify") {
		cfg.Output.Verify = cmd.Bool("verify")
	}
	if err := cfg.Validate(); err != nil {
		log.Error("%v", err)
		return errFailed
	}

	display.PrintBanner(os.Stdout)

	skipTagged := cmd.Bool("skip-tagged")
	dryRun := cmd.Bool("dry-run")
	if !dryRun {
		if err := check.CheckDeps(cfg, skipTagged || cfg.Output.Verify); err != nil {
			log.Error("%v", err)
			return errFailed
		}
	}

	files, err := batch.Discover(dir, batch.DiscoverOptions{
		Extensions: cfg.Batch.Extensions,
		Recursive:  cfg.Batch.Recursive,
		Suffix:     cfg.Output.Suffix,
		OnLeftover: func(path string) {
			log.Warn("Skip (name ends in %s, looks like an unfinished rewrite): %s", cfg.Output.Suffix, path)
		},
	})
	if err != nil {
		log.Error("%v", err)
		return errFailed
	}
	if len(files) == 0 {
		log.Warn("No video files found in %s", dir)
		return nil
	}

	stats := batch.Run(ctx, metadata.NewWriter(cfg, log), log, files, batch.Options{
		Jobs:          cfg.Batch.Jobs,
		Source:        source,
		DryRun:        dryRun,
		SkipTagged:    skipTagged,
		FFprobe:       cfg.FFmpeg.Probe,
		PreserveMtime: fromMtime,
	})
	if !stats.OK() {
		return errFailed
	}
	return nil
}

func showCommand() *cli.Command {
	return &cli.Command{
		Name:      "show",
		Usage:     "Print the creation_time tag of files or directories",
		ArgsUsage: "<file|dir>...",
		Action:    runShow,
	}
}

func runShow(ctx context.Context, cmd *cli.Command) error {
	if cmd.NArg() == 0 {
		return fmt.Errorf("show: no files given")
	}

	cfg, log, err := setup(cmd)
	if err != nil {
		return err
	}
	defer log.Close()

	if err := check.CheckDeps(cfg, true); err != nil {
		log.Error("%v", err)
		return errFailed
	}

	var files []string
	for _, arg := range cmd.Args().Slice() {
		fi, err := os.Stat(arg)
		if err != nil {
			log.Error("Not found: %s", arg)
			return errFailed
		}
		if !fi.IsDir() {
			files = append(files, arg)
			continue
		}
		found, err := batch.Discover(arg, batch.DiscoverOptions{
			Extensions: cfg.Batch.Extensions,
			Recursive:  cfg.Batch.Recursive,
			Suffix:     cfg.Output.Suffix,
			OnLeftover: func(path string) {
				log.Debug("Not listed (leftover %s output): %s", cfg.Output.Suffix, path)
			},
		})
		if err != nil {
			log.Error("%v", err)
			return errFailed
		}
		files = append(files, found...)
	}

	rows := batch.Report(ctx, cfg.FFmpeg.Probe, files)
	batch.PrintReport(os.Stdout, rows)
	failed := false
	for _, r := range rows {
		if r.Err != nil {
			log.Debug("%s: %v", r.Name, r.Err)
			failed = true
		}
	}
	if failed {
		return errFailed
	}
	return nil
}

func checkCommand() *cli.Command {
	return &cli.Command{
		Name:   "check",
		Usage:  "Report ffmpeg and ffprobe availability",
		Action: runCheck,
	}
}

func runCheck(ctx context.Context, cmd *cli.Command) error {
	cfg, log, err := setup(cmd)
	if err != nil {
		return err
	}
	defer log.Close()

	display.PrintBanner(os.Stdout)
	if !check.RunCheck(ctx, cfg, log) {
		return errFailed
	}
	return nil
}
