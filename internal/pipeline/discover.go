package pipeline

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// DefaultGlob selects every file below the input directory.
const DefaultGlob = "**/*"

// alwaysExcluded directories are never searched.
var alwaysExcluded = []string{".git", ".hg", ".svn"}

// Discover returns the files below root that match pattern, relative to
// root and sorted. A directory is excluded when its name equals an entry
// of exclude or its relative path matches one as a glob.
func Discover(root, pattern string, exclude []string) ([]string, error) {
	if pattern == "" {
		pattern = DefaultGlob
	}
	pattern = strings.TrimPrefix(filepath.ToSlash(pattern), "./")
	if !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("invalid glob %q", pattern)
	}
	for _, ex := range exclude {
		if !doublestar.ValidatePattern(ex) {
			return nil, fmt.Errorf("invalid exclude pattern %q", ex)
		}
	}

	var files []string
	err := doublestar.GlobWalk(os.DirFS(root), pattern, func(p string, d fs.DirEntry) error {
		if excluded(p, exclude) {
			return nil
		}
		files = append(files, filepath.FromSlash(p))
		return nil
	}, doublestar.WithFilesOnly(), doublestar.WithFailOnIOErrors())
	if err != nil {
		return nil, fmt.Errorf("discover files in %s: %w", root, err)
	}

	sort.Strings(files)
	return files, nil
}

// excluded reports whether the slash-separated path p lies in an excluded
// directory.
func excluded(p string, exclude []string) bool {
	segments := strings.Split(p, "/")
	dirs := segments[:len(segments)-1]
	for i, seg := range dirs {
		for _, name := range alwaysExcluded {
			if seg == name {
				return true
			}
		}
		dir := strings.Join(dirs[:i+1], "/")
		for _, ex := range exclude {
			ex = strings.TrimSuffix(filepath.ToSlash(ex), "/")
			if seg == ex {
				return true
			}
			if ok, _ := doublestar.Match(ex, dir); ok {
				return true
			}
		}
	}
	return false
}
