package batch

import (
	"errors"
	"path/filepath"
	"strings"

	"github.com/backmassage/vidstamp/internal/ffmpeg"
	"github.com/backmassage/vidstamp/internal/fsx"
	"github.com/backmassage/vidstamp/internal/logging"
	"github.com/backmassage/vidstamp/internal/metadata"
)

// maxOutputLines bounds how much ffmpeg output is echoed per failure.
const maxOutputLines = 20

// LogFailure logs a writer error with detail matching its kind.
func LogFailure(log *logging.Logger, path string, err error) {
	base := filepath.Base(path)

	var execErr *ffmpeg.ExecError
	var replaceErr *metadata.ReplaceError
	var verifyErr *metadata.VerifyError

	switch {
	case errors.As(err, &execErr):
		reason := execErr.Reason()
		if reason != "" {
			reason = " (" + reason + ")"
		}
		log.Error("ffmpeg exited %d for %s%s", execErr.ExitCode, base, reason)
		log.Debug("Command: %s", strings.Join(execErr.Command, " "))
		logOutput(log, execErr.Output())

	case errors.Is(err, ffmpeg.ErrToolUnavailable):
		log.Error("ffmpeg could not be started: %v", err)

	case errors.As(err, &replaceErr):
		log.Error("Could not replace %s: %v", base, replaceErr.Err)
		if fsx.IsCrossDevice(err) {
			log.Error("Rewritten copy is on a different filesystem")
		}
		log.Warn("Rewritten copy left at %s", replaceErr.Src)

	case errors.As(err, &verifyErr):
		log.Error("%v", verifyErr)

	default:
		log.Error("%s: %v", base, err)
	}
}

func logOutput(log *logging.Logger, output string) {
	if output == "" {
		return
	}
	log.Error("Last ffmpeg output:")
	lines := strings.Split(output, "\n")
	start := 0
	if len(lines) > maxOutputLines {
		start = len(lines) - maxOutputLines
	}
	for _, l := range lines[start:] {
		log.Error("  %s", l)
	}
}
