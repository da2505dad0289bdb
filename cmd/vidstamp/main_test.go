package main

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/backmassage/vidstamp/internal/config"
)

func TestApp_HelpAndVersion(t *testing.T) {
	for _, args := range [][]string{
		{"vidstamp", "--help"},
		{"vidstamp", "--version"},
	} {
		t.Run(strings.Join(args[1:], " "), func(t *testing.T) {
			var out bytes.Buffer
			app := newApp()
			app.Writer = &out
			app.ErrWriter = &out
			if err := app.Run(context.Background(), args); err != nil {
				t.Fatalf("Run(%v): %v", args, err)
			}
			if out.Len() == 0 {
				t.Error("expected output")
			}
		})
	}
}

func TestApp_VersionShortFlag(t *testing.T) {
	var out bytes.Buffer
	app := newApp()
	app.Writer = &out
	if err := app.Run(context.Background(), []string{"vidstamp", "-v"}); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), version) {
		t.Errorf("-v output %q does not contain version %q", out.String(), version)
	}
}

func TestApp_SubcommandHelp(t *testing.T) {
	for _, name := range []string{"stamp", "batch", "show", "check"} {
		app := newApp()
		app.Writer = io.Discard
		if err := app.Run(context.Background(), []string{"vidstamp", name, "--help"}); err != nil {
			t.Errorf("%s --help: %v", name, err)
		}
	}
}

// runSetup runs setup behind the global flags and returns what it produced.
func runSetup(t *testing.T, args ...string) (*config.Config, error) {
	t.Helper()
	var cfg *config.Config
	var setupErr error
	cmd := &cli.Command{
		Name:  "vidstamp",
		Flags: globalFlags(),
		Action: func(_ context.Context, cmd *cli.Command) error {
			c, log, err := setup(cmd)
			if err != nil {
				setupErr = err
				return nil
			}
			log.Close()
			cfg = c
			return nil
		},
	}
	if err := cmd.Run(context.Background(), append([]string{"vidstamp", "--color", "never"}, args...)); err != nil {
		t.Fatalf("Run: %v", err)
	}
	return cfg, setupErr
}

func TestSetup_Defaults(t *testing.T) {
	cfg, err := runSetup(t, "--config", writeConfig(t, "{}"))
	if err != nil {
		t.Fatalf("setup: %v", err)
	}
	want := config.DefaultConfig()
	if cfg.FFmpeg.Path != want.FFmpeg.Path || cfg.Output.Suffix != want.Output.Suffix || cfg.Batch.Jobs != want.Batch.Jobs {
		t.Errorf("cfg = %+v, want defaults", cfg)
	}
}

func TestSetup_FileThenFlags(t *testing.T) {
	path := writeConfig(t, `
ffmpeg:
  path: /opt/file/ffmpeg
  ffprobe: /opt/file/ffprobe
output:
  suffix: _tmp
batch:
  jobs: 4
`)
	logFile := filepath.Join(t.TempDir(), "run.log")
	cfg, err := runSetup(t,
		"--config", path,
		"--ffmpeg", "/opt/flag/ffmpeg",
		"--timeout", "30s",
		"--verbose",
		"--log", logFile,
	)
	if err != nil {
		t.Fatalf("setup: %v", err)
	}
	if cfg.FFmpeg.Path != "/opt/flag/ffmpeg" {
		t.Errorf("ffmpeg = %q, flag should win over file", cfg.FFmpeg.Path)
	}
	if cfg.FFmpeg.Probe != "/opt/file/ffprobe" {
		t.Errorf("ffprobe = %q, file value should survive", cfg.FFmpeg.Probe)
	}
	if cfg.FFmpeg.Timeout != 30*time.Second {
		t.Errorf("timeout = %v", cfg.FFmpeg.Timeout)
	}
	if cfg.Output.Suffix != "_tmp" || cfg.Batch.Jobs != 4 {
		t.Errorf("file values lost: %+v", cfg)
	}
	if !cfg.Log.Verbose || cfg.Log.File != logFile {
		t.Errorf("log = %+v", cfg.Log)
	}
	if _, err := os.Stat(logFile); err != nil {
		t.Errorf("log file not created: %v", err)
	}
}

func TestSetup_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"explicit config missing", []string{"--config", filepath.Join(t.TempDir(), "missing.yaml")}},
		{"invalid config value", []string{"--config", writeConfig(t, "batch:\n  jobs: 0\n")}},
		{"invalid color flag", []string{"--config", writeConfig(t, "{}"), "--color", "rainbow"}},
		{"negative timeout flag", []string{"--config", writeConfig(t, "{}"), "--timeout", "-1s"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := runSetup(t, tt.args...); err == nil {
				t.Error("expected setup error")
			}
		})
	}
}

func TestBatch_SourceFlagsExclusive(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"both", []string{"--time", "2022-03-19T12:00:00", "--from-mtime", dir}, "mutually exclusive"},
		{"neither", []string{dir}, "--time or --from-mtime"},
		{"bad time", []string{"--time", "yesterday", dir}, "invalid timestamp"},
		{"no dir", []string{"--from-mtime"}, "exactly one directory"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"vidstamp", "batch"}, tt.args...)
			err := newApp().Run(context.Background(), args)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("err = %v, want containing %q", err, tt.want)
			}
		})
	}
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "vidstamp.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}
