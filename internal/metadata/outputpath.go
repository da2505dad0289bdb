package metadata

import (
	"path/filepath"
	"strings"
)

// OutputPath derives the temporary output path by inserting suffix before
// the extension: clip.mp4 -> clip_new.mp4. The output stays in the input's
// directory so the final rename never crosses a filesystem boundary. Names
// without an extension (or dotfiles such as ".mp4") get the suffix appended.
func OutputPath(path, suffix string) string {
	base := filepath.Base(path)
	ext := filepath.Ext(base)
	if ext == base {
		ext = ""
	}
	return strings.TrimSuffix(path, ext) + suffix + ext
}
