package batch

import (
	"os"
	"time"
)

// TimeSource returns the timestamp to write for one file.
type TimeSource func(path string, fi os.FileInfo) (time.Time, error)

// Fixed writes the same timestamp to every file.
func Fixed(t time.Time) TimeSource {
	return func(string, os.FileInfo) (time.Time, error) { return t, nil }
}

// ModTime writes each file's modification time, expressed in loc before the
// writer discards the location. Pass time.Local to keep the wall clock the
// file shows in a local listing, time.UTC to tag true UTC.
func ModTime(loc *time.Location) TimeSource {
	return func(_ string, fi os.FileInfo) (time.Time, error) {
		return fi.ModTime().In(loc), nil
	}
}
