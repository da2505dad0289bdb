// Package config holds runtime configuration: defaults, YAML file loading,
// and validation. CLI flags are applied on top by cmd/vidstamp.
package config

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// ColorMode controls ANSI color output.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"   // Enable colors when stdout is a TTY (default).
	ColorAlways ColorMode = "always" // Force colors on.
	ColorNever  ColorMode = "never"  // Disable colors entirely.
)

// DefaultSuffix is inserted before the extension of the temporary output
// file (clip.mp4 -> clip_new.mp4).
const DefaultSuffix = "_new"

var extensionRe = regexp.MustCompile(`^\.[a-z0-9]+$`)

// Config holds all runtime settings. It is populated by [DefaultConfig],
// optionally overlaid by [Load], then mutated by CLI flags before being
// passed (by pointer) to packages that need it.
type Config struct {
	FFmpeg FFmpegConfig `yaml:"ffmpeg"`
	Output OutputConfig `yaml:"output"`
	Batch  BatchConfig  `yaml:"batch"`
	Log    LogConfig    `yaml:"log"`
}

// FFmpegConfig locates the external tools.
type FFmpegConfig struct {
	Path    string        `yaml:"path"`    // Default: "ffmpeg" (resolved via PATH).
	Probe   string        `yaml:"ffprobe"` // Default: "ffprobe".
	Timeout time.Duration `yaml:"timeout"` // Default: 0, no timeout.
}

// OutputConfig controls the rewrite step.
type OutputConfig struct {
	Suffix string `yaml:"suffix"` // Default: "_new".
	Verify bool   `yaml:"verify"` // Re-read the tag with ffprobe after replacing.
}

// BatchConfig controls directory runs.
type BatchConfig struct {
	Jobs       int      `yaml:"jobs"`       // Default: 2.
	Recursive  bool     `yaml:"recursive"`  // Default: true.
	Extensions []string `yaml:"extensions"` // Lowercase, with leading dot.
}

// LogConfig controls console and file logging.
type LogConfig struct {
	Verbose bool      `yaml:"verbose"`
	File    string    `yaml:"file"` // Optional, append-only.
	Color   ColorMode `yaml:"color"`
}

// DefaultConfig returns a Config with all defaults applied.
func DefaultConfig() Config {
	return Config{
		FFmpeg: FFmpegConfig{
			Path:  "ffmpeg",
			Probe: "ffprobe",
		},
		Output: OutputConfig{
			Suffix: DefaultSuffix,
		},
		Batch: BatchConfig{
			Jobs:      2,
			Recursive: true,
			Extensions: []string{
				".mp4", ".m4v", ".mov", ".mkv", ".webm", ".avi",
				".mts", ".m2ts", ".ts", ".3gp",
			},
		},
		Log: LogConfig{
			Color: ColorAuto,
		},
	}
}

// Validate checks every section and returns the first failure.
func (c *Config) Validate() error {
	if err := c.FFmpeg.Validate(); err != nil {
		return fmt.Errorf("ffmpeg: %w", err)
	}
	if err := c.Output.Validate(); err != nil {
		return fmt.Errorf("output: %w", err)
	}
	if err := c.Batch.Validate(); err != nil {
		return fmt.Errorf("batch: %w", err)
	}
	if err := c.Log.Validate(); err != nil {
		return fmt.Errorf("log: %w", err)
	}
	return nil
}

// Validate validates tool locations and the timeout.
func (c *FFmpegConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Path, validation.Required),
		validation.Field(&c.Probe, validation.Required),
		validation.Field(&c.Timeout, validation.Min(time.Duration(0))),
	)
}

// Validate rejects suffixes that would move the output out of the input's
// directory, which would break the same-filesystem rename.
func (c *OutputConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Suffix, validation.Required, validation.By(noSeparator)),
	)
}

// Validate validates the worker count and the extension list.
func (c *BatchConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Jobs, validation.Required, validation.Min(1), validation.Max(64)),
		validation.Field(&c.Extensions, validation.Required, validation.Each(validation.Match(extensionRe))),
	)
}

// Validate validates the color mode. An empty mode is normalised to auto.
func (c *LogConfig) Validate() error {
	if c.Color == "" {
		c.Color = ColorAuto
	}
	return validation.ValidateStruct(c,
		validation.Field(&c.Color, validation.In(ColorAuto, ColorAlways, ColorNever)),
	)
}

func noSeparator(value interface{}) error {
	s, _ := value.(string)
	if strings.ContainsAny(s, `/\`) {
		return fmt.Errorf("must not contain a path separator")
	}
	return nil
}
