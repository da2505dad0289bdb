package ffmpeg

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

// Result holds the captured output of a successful invocation.
type Result struct {
	Stdout   string
	Stderr   string
	Duration time.Duration
}

// Execute runs args[0] with args[1:] and blocks until it exits. Stdout and
// stderr are captured as text; stdin is not connected. The context bounds
// the process: when it ends first the process is killed and the returned
// error wraps ctx.Err().
func Execute(ctx context.Context, args []string) (*Result, error) {
	if len(args) == 0 {
		return nil, errors.New("ffmpeg: empty command")
	}

	cmd := exec.CommandContext(ctx, args[0], args[1:]...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	err := cmd.Run()
	res := &Result{
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		Duration: time.Since(start),
	}
	if err == nil {
		return res, nil
	}

	if ctxErr := ctx.Err(); ctxErr != nil {
		return nil, fmt.Errorf("%s interrupted: %w", filepath.Base(args[0]), ctxErr)
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return nil, &ExecError{
			Command:  args,
			ExitCode: exitErr.ExitCode(),
			Stdout:   res.Stdout,
			Stderr:   res.Stderr,
		}
	}
	return nil, &LaunchError{Command: args, Err: err}
}

// Version runs "<bin> -version" and returns the first output line.
func Version(ctx context.Context, bin string) (string, error) {
	res, err := Execute(ctx, []string{bin, "-version"})
	if err != nil {
		return "", err
	}
	first := strings.TrimSpace(res.Stdout)
	if idx := strings.Index(first, "\n"); idx > 0 {
		first = first[:idx]
	}
	return first, nil
}
