package batch

import (
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
)

// DiscoverOptions controls [Discover].
type DiscoverOptions struct {
	Extensions []string // Lowercase, with leading dot.
	Recursive  bool
	Suffix     string // Writer output suffix; leftovers ending in it are skipped.

	// OnLeftover, when set, is called for every file skipped by
	// [IsLeftover], so a genuine "interview_new.mp4" does not vanish silently.
	OnLeftover func(path string)
}

// Discover walks dir, collects files with a matching extension, skips
// hidden directories and stray "<stem><suffix><ext>" outputs left by an
// earlier failed replace, and returns the paths sorted lexicographically.
// Each path appears once, so batch workers never share a target.
func Discover(dir string, opts DiscoverOptions) ([]string, error) {
	exts := make(map[string]bool, len(opts.Extensions))
	for _, e := range opts.Extensions {
		exts[strings.ToLower(e)] = true
	}

	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path == dir {
				return nil
			}
			if !opts.Recursive || strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		ext := strings.ToLower(filepath.Ext(path))
		if !exts[ext] {
			return nil
		}
		if IsLeftover(path, opts.Suffix) {
			if opts.OnLeftover != nil {
				opts.OnLeftover(path)
			}
			return nil
		}
		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}

// IsLeftover reports whether path looks like a writer output: its stem
// ends with suffix.
func IsLeftover(path, suffix string) bool {
	if suffix == "" {
		return false
	}
	base := filepath.Base(path)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	return stem != suffix && strings.HasSuffix(stem, suffix)
}
