// Package check provides system diagnostics (the check command) and the
// pre-run dependency validation (CheckDeps) for ffmpeg and ffprobe.
package check

import (
	"context"
	"errors"
	"os/exec"

	"github.com/backmassage/vidstamp/internal/config"
	"github.com/backmassage/vidstamp/internal/ffmpeg"
)

// Sentinel errors returned by CheckDeps when a required tool is missing.
var (
	ErrFfmpegNotFound  = errors.New("ffmpeg not found (install it or set ffmpeg.path)")
	ErrFfprobeNotFound = errors.New("ffprobe not found (install it or set ffmpeg.ffprobe)")
)

// Logger is the minimal logging interface needed by RunCheck.
type Logger interface {
	Info(string, ...interface{})
	Success(string, ...interface{})
	Warn(string, ...interface{})
	Error(string, ...interface{})
}

// CheckDeps verifies that ffmpeg is resolvable, and ffprobe too when
// needProbe is set (verification, show, skip-tagged).
func CheckDeps(cfg *config.Config, needProbe bool) error {
	if _, err := exec.LookPath(cfg.FFmpeg.Path); err != nil {
		return ErrFfmpegNotFound
	}
	if needProbe {
		if _, err := exec.LookPath(cfg.FFmpeg.Probe); err != nil {
			return ErrFfprobeNotFound
		}
	}
	return nil
}

// RunCheck logs the location and version of each tool. It returns false
// when ffmpeg is unusable; a missing ffprobe is only a warning because
// writing works without it.
func RunCheck(ctx context.Context, cfg *config.Config, log Logger) bool {
	log.Info("=== System Check ===")

	ok := checkTool(ctx, log, "ffmpeg", cfg.FFmpeg.Path, true)
	checkTool(ctx, log, "ffprobe", cfg.FFmpeg.Probe, false)
	return ok
}

func checkTool(ctx context.Context, log Logger, label, bin string, required bool) bool {
	path, err := exec.LookPath(bin)
	if err != nil {
		if required {
			log.Error("%s not found: %s", label, bin)
		} else {
			log.Warn("%s not found: %s (verification and show are unavailable)", label, bin)
		}
		return false
	}
	v, err := ffmpeg.Version(ctx, path)
	if err != nil {
		log.Warn("%s found at %s but -version failed: %v", label, path, err)
		return !required
	}
	log.Success("%s: %s (%s)", label, v, path)
	return true
}
