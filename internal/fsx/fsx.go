// Package fsx holds the filesystem steps of a rewrite: the atomic replace of
// the original by the rewritten copy, and cleanup of stray outputs.
package fsx

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

// Swappable so tests can simulate EXDEV and permission failures.
var renameFunc = os.Rename

// CrossDeviceError reports a rename that failed with EXDEV. Replace never
// falls back to copy+delete, which would lose atomicity.
type CrossDeviceError struct {
	Src string
	Dst string
	Err error
}

func (e *CrossDeviceError) Error() string {
	return fmt.Sprintf("cross-device rename %q -> %q: source and target must be on the same filesystem: %v", e.Src, e.Dst, e.Err)
}

func (e *CrossDeviceError) Unwrap() error { return e.Err }

// IsCrossDevice reports whether err is (or wraps) a CrossDeviceError.
func IsCrossDevice(err error) bool {
	var e *CrossDeviceError
	return errors.As(err, &e)
}

// Replace renames src onto dst. On platforms with atomic rename, observers
// of dst see either the old or the new file, never a partial one. On
// failure src is left where it is.
func Replace(src, dst string) error {
	if err := renameFunc(src, dst); err != nil {
		if isEXDEV(err) {
			return &CrossDeviceError{Src: src, Dst: dst, Err: err}
		}
		return err
	}
	_ = syncDirBestEffort(filepath.Dir(dst))
	return nil
}

// Exists reports whether path names an existing filesystem entry.
func Exists(path string) bool {
	_, err := os.Lstat(path)
	return err == nil
}

// RemoveIfExists deletes path, treating "already gone" as success.
func RemoveIfExists(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

func syncDirBestEffort(dir string) error {
	if runtime.GOOS == "windows" {
		return nil
	}
	f, err := os.Open(dir)
	if err != nil {
		return err
	}
	defer f.Close()
	return f.Sync()
}
