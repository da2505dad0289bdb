package ffmpeg

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrToolUnavailable is matched (via errors.Is) by every [LaunchError]:
// the executable is missing, not executable, or could not be spawned.
var ErrToolUnavailable = errors.New("ffmpeg executable unavailable")

// LaunchError reports that the process never ran.
type LaunchError struct {
	Command []string
	Err     error
}

func (e *LaunchError) Error() string {
	return fmt.Sprintf("cannot start %s: %v", e.Command[0], e.Err)
}

func (e *LaunchError) Unwrap() error { return e.Err }

// Is makes errors.Is(err, ErrToolUnavailable) hold for any LaunchError.
func (e *LaunchError) Is(target error) bool { return target == ErrToolUnavailable }

// ExecError reports that the process ran and exited non-zero. It carries
// enough context to diagnose without re-running.
type ExecError struct {
	Command  []string
	ExitCode int
	Stdout   string
	Stderr   string
}

func (e *ExecError) Error() string {
	return fmt.Sprintf("error executing command %q: returned %d with output: %s",
		strings.Join(e.Command, " "), e.ExitCode, e.Output())
}

// Output returns the captured diagnostic text: stderr, followed by stdout
// when ffmpeg wrote anything there.
func (e *ExecError) Output() string {
	stderr := strings.TrimSpace(e.Stderr)
	stdout := strings.TrimSpace(e.Stdout)
	switch {
	case stdout == "":
		return stderr
	case stderr == "":
		return stdout
	default:
		return stderr + "\n" + stdout
	}
}

// Reason classifies the stderr text into a short label for log lines.
// It returns "" when no known pattern matches.
func (e *ExecError) Reason() string {
	return Classify(e.Stderr)
}

// Pre-compiled patterns for common ffmpeg failures, checked in order.
var reasons = []struct {
	re    *regexp.Regexp
	label string
}{
	{regexp.MustCompile(`No such file or directory`), "input not found"},
	{regexp.MustCompile(`(?i)Permission denied`), "permission denied"},
	{regexp.MustCompile(`Invalid data found when processing input|moov atom not found`), "not a valid container"},
	{regexp.MustCompile(`(?i)Could not find tag for codec|codec not currently supported in container`), "stream not supported by container"},
	{regexp.MustCompile(`(?i)No space left on device`), "disk full"},
}

// Classify returns a short label for a known ffmpeg stderr pattern, or "".
func Classify(stderr string) string {
	for _, r := range reasons {
		if r.re.MatchString(stderr) {
			return r.label
		}
	}
	return ""
}
