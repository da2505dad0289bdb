package probe

import (
	"strconv"
	"strings"
	"time"
)

// FormatInfo holds container-level metadata from ffprobe's format section.
type FormatInfo struct {
	Filename       string
	NbStreams      int
	FormatName     string
	FormatLongName string
	Duration       float64
	Size           int64
	BitRate        int64
	Tags           map[string]string
}

// Stream holds the properties compared by [SameStreams].
type Stream struct {
	Index     int
	CodecName string
	CodecType string
	Width     int
	Height    int
	Frames    int64 // nb_frames; 0 when the container does not report it.
}

// Result is the parsed output of a single ffprobe JSON call.
type Result struct {
	Format  FormatInfo
	Streams []Stream
}

// Tag returns a container-level tag. Keys are matched case-insensitively
// because muxers differ (creation_time vs CREATION_TIME in Matroska).
func (r *Result) Tag(key string) (string, bool) {
	if v, ok := r.Format.Tags[key]; ok {
		return v, true
	}
	for k, v := range r.Format.Tags {
		if strings.EqualFold(k, key) {
			return v, true
		}
	}
	return "", false
}

// CreationTime returns the creation_time tag as a UTC time. Any offset the
// tag carries is ignored and the wall-clock fields are taken as UTC, which
// mirrors how the writer encodes the value.
func (r *Result) CreationTime() (time.Time, bool) {
	v, ok := r.Tag("creation_time")
	if !ok {
		return time.Time{}, false
	}
	t, err := ParseTagTime(v)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

var tagLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
}

// ParseTagTime parses a creation_time value as written by ffmpeg muxers
// (e.g. "2022-03-19T12:00:00.000000Z") and returns its fields in UTC.
func ParseTagTime(v string) (time.Time, error) {
	v = strings.TrimSpace(v)
	var firstErr error
	for _, layout := range tagLayouts {
		t, err := time.Parse(layout, v)
		if err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(),
				t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC), nil
		}
		if firstErr == nil {
			firstErr = err
		}
	}
	return time.Time{}, firstErr
}

// PrimaryVideo returns the first video stream, or nil.
func (r *Result) PrimaryVideo() *Stream {
	for i := range r.Streams {
		if r.Streams[i].CodecType == "video" {
			return &r.Streams[i]
		}
	}
	return nil
}

// Resolution returns "WxH" for the primary video stream, or "unknown".
func (r *Result) Resolution() string {
	v := r.PrimaryVideo()
	if v == nil || v.Width <= 0 || v.Height <= 0 {
		return "unknown"
	}
	return strconv.Itoa(v.Width) + "x" + strconv.Itoa(v.Height)
}

// SameStreams reports whether two probes describe the same streams: count,
// codec, type, resolution and frame count. A stream copy must keep all of
// them unchanged.
func SameStreams(a, b *Result) bool {
	if len(a.Streams) != len(b.Streams) {
		return false
	}
	for i := range a.Streams {
		x, y := a.Streams[i], b.Streams[i]
		if x.CodecName != y.CodecName || x.CodecType != y.CodecType ||
			x.Width != y.Width || x.Height != y.Height || x.Frames != y.Frames {
			return false
		}
	}
	return true
}
