// Command vidstamp writes creation_time tags into video containers.
//
// Every subcommand shares the same bootstrap: load the optional YAML config,
// apply global flag overrides, validate, then build the logger.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/joho/godotenv/autoload"
	"github.com/urfave/cli/v3"

	"github.com/backmassage/vidstamp/internal/config"
	"github.com/backmassage/vidstamp/internal/logging"
)

// version is injected at build time via -ldflags "-X main.version=...".
var version = "0.1.0"

const defaultConfigFile = "vidstamp.yaml"

// errFailed is returned by actions that already logged their failures.
var errFailed = errors.New("one or more operations failed")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newApp().Run(ctx, os.Args); err != nil {
		if !errors.Is(err, errFailed) {
			fmt.Fprintf(os.Stderr, "vidstamp: %v\n", err)
		}
		os.Exit(1)
	}
}

func newApp() *cli.Command {
	return &cli.Command{
		Name:    "vidstamp",
		Usage:   "Write creation_time metadata into video files with ffmpeg",
		Version: version,
		Flags:   globalFlags(),
		Commands: []*cli.Command{
			stampCommand(),
			batchCommand(),
			showCommand(),
			checkCommand(),
		},
	}
}

// globalFlags are shared by every subcommand. -v is left to the built-in
// --version flag.
func globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "config",
			Aliases:     []string{"c"},
			Usage:       "Path to config file",
			DefaultText: defaultConfigFile,
			Value:       defaultConfigFile,
			Sources:     cli.EnvVars("VIDSTAMP_CONFIG"),
		},
		&cli.BoolFlag{Name: "verbose", Usage: "Enable debug logging"},
		&cli.StringFlag{Name: "log", Aliases: []string{"l"}, Usage: "Append log lines to `FILE`"},
		&cli.StringFlag{Name: "color", Usage: "Color output: auto, always or never"},
		&cli.StringFlag{Name: "ffmpeg", Usage: "ffmpeg executable"},
		&cli.StringFlag{Name: "ffprobe", Usage: "ffprobe executable"},
		&cli.DurationFlag{Name: "timeout", Usage: "Per-file ffmpeg time limit (0 = none)"},
	}
}

// setup loads configuration and builds the logger. The config file is
// optional unless it was named explicitly.
func setup(cmd *cli.Command) (*config.Config, *logging.Logger, error) {
	cfg := config.DefaultConfig()

	path := cmd.String("config")
	load := config.LoadOptional[config.Config]
	if cmd.IsSet("config") {
		load = config.Load[config.Config]
	}
	if err := load(path, &cfg); err != nil {
		return nil, nil, err
	}

	if cmd.IsSet("verbose") {
		cfg.Log.Verbose = cmd.Bool("verbose")
	}
	if cmd.IsSet("log") {
		cfg.Log.File = cmd.String("log")
	}
	if cmd.IsSet("color") {
		cfg.Log.Color = config.ColorMode(cmd.String("color"))
	}
	if cmd.IsSet("ffmpeg") {
		cfg.FFmpeg.Path = cmd.String("ffmpeg")
	}
	if cmd.IsSet("ffprobe") {
		cfg.FFmpeg.Probe = cmd.String("ffprobe")
	}
	if cmd.IsSet("timeout") {
		cfg.FFmpeg.Timeout = cmd.Duration("timeout")
	}

	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	log, err := logging.NewLogger(&cfg)
	if err != nil {
		return nil, nil, err
	}
	return &cfg, log, nil
}
