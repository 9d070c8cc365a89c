package discover

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// SkipReason explains why an argument or walked entry was not queued.
type SkipReason string

const (
	// SkipExtension marks an explicit file argument whose extension is not
	// one of the configured extensions.
	SkipExtension SkipReason = "extension"

	// SkipNotFound marks an argument that does not exist.
	SkipNotFound SkipReason = "not-found"

	// SkipUnreadable marks a path that could not be inspected, such as a
	// directory without read permission.
	SkipUnreadable SkipReason = "unreadable"

	// SkipNotRegular marks an explicit argument that is neither a regular
	// file nor a directory (a socket or device, for example).
	SkipNotRegular SkipReason = "not-regular"
)

// Skipped is a path that was reported but not queued.
type Skipped struct {
	Path   string     `json:"path"`
	Reason SkipReason `json:"reason"`
	Err    error      `json:"-"`
}

// Options controls which files are collected.
type Options struct {
	// Extensions are lowercase extensions with a leading dot.
	Extensions []string

	// Exclude holds directory name patterns pruned during the walk.
	// The directories named on the command line are never pruned.
	Exclude []string
}

// Result is the outcome of Discover.
type Result struct {
	// Files are the queued paths, deduplicated, in argument order. Files
	// found inside one directory argument are sorted lexicographically.
	Files []string

	Skipped []Skipped
}

// Discover expands file and directory arguments into the list of files to
// process. Missing or unreadable paths are recorded in Result.Skipped and
// never abort the scan.
func Discover(args []string, opts Options) *Result {
	res := &Result{}
	seen := make(map[string]bool)

	add := func(p string) {
		key := identity(p)
		if seen[key] {
			return
		}
		seen[key] = true
		res.Files = append(res.Files, p)
	}

	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			reason := SkipUnreadable
			if errors.Is(err, fs.ErrNotExist) {
				reason = SkipNotFound
			}
			res.Skipped = append(res.Skipped, Skipped{Path: arg, Reason: reason, Err: err})
			continue
		}

		switch {
		case info.Mode().IsRegular():
			if hasExtension(arg, opts.Extensions) {
				add(arg)
			} else {
				res.Skipped = append(res.Skipped, Skipped{Path: arg, Reason: SkipExtension})
			}
		case info.IsDir():
			files, skipped := walk(arg, opts)
			for _, f := range files {
				add(f)
			}
			res.Skipped = append(res.Skipped, skipped...)
		default:
			res.Skipped = append(res.Skipped, Skipped{Path: arg, Reason: SkipNotRegular})
		}
	}

	return res
}

// identity returns the key used to detect the same file named twice: the
// absolute path with symlinks resolved. It falls back to the cleaned path
// when resolution fails.
func identity(p string) string {
	abs, err := filepath.Abs(p)
	if err != nil {
		return filepath.Clean(p)
	}
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		return resolved
	}
	return abs
}

// walk collects matching regular files below root, pruning excluded
// directories and recording unreadable entries instead of failing.
func walk(root string, opts Options) ([]string, []Skipped) {
	var files []string
	var skipped []Skipped

	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			skipped = append(skipped, Skipped{Path: path, Reason: SkipUnreadable, Err: err})
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			if path != root && isExcluded(d.Name(), opts.Exclude) {
				return filepath.SkipDir
			}
			return nil
		}
		// Symlinks and other non-regular entries are not followed; only
		// regular files are rewritten in place.
		if d.Type().IsRegular() && hasExtension(path, opts.Extensions) {
			files = append(files, path)
		}
		return nil
	})

	sort.Strings(files)
	return files, skipped
}

// hasExtension reports whether path ends in one of exts, ignoring case.
func hasExtension(path string, exts []string) bool {
	ext := filepath.Ext(path)
	for _, e := range exts {
		if strings.EqualFold(ext, e) {
			return true
		}
	}
	return false
}

// isExcluded reports whether a directory name matches any exclude pattern.
// Patterns were validated by config.Normalize, so Match errors mean no match.
func isExcluded(name string, patterns []string) bool {
	for _, p := range patterns {
		if ok, _ := filepath.Match(p, name); ok {
			return true
		}
	}
	return false
}
