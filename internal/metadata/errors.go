package metadata

import (
	"fmt"
	"time"
)

// ReplaceError reports that ffmpeg succeeded but the rewritten file could
// not be moved onto the original. The rewritten file is left at Src.
type ReplaceError struct {
	Src string
	Dst string
	Err error
}

func (e *ReplaceError) Error() string {
	return fmt.Sprintf("replace %q with %q: %v (rewritten copy left at %q)", e.Dst, e.Src, e.Err, e.Src)
}

func (e *ReplaceError) Unwrap() error { return e.Err }

// VerifyError reports that the tag read back after a rewrite does not match
// the value written. Got is empty when the tag is missing.
type VerifyError struct {
	Path string
	Want time.Time
	Got  string
}

func (e *VerifyError) Error() string {
	if e.Got == "" {
		return fmt.Sprintf("verify %q: creation_time tag missing after rewrite", e.Path)
	}
	return fmt.Sprintf("verify %q: creation_time is %q, want %s", e.Path, e.Got, FormatCreationTime(e.Want))
}
