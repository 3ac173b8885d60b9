// FILE: hydrolog/src/internal/source/glob.go
package source

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Expand resolves input arguments in order. Arguments without glob
// metacharacters are kept verbatim so missing files surface later as
// access errors. Matches of one pattern are sorted; repeats are dropped.
func Expand(patterns []string) ([]string, error) {
	var out []string
	seen := make(map[string]bool)

	add := func(p string) {
		key := p
		if abs, err := filepath.Abs(p); err == nil {
			key = abs
		}
		if seen[key] {
			return
		}
		seen[key] = true
		out = append(out, p)
	}

	for _, pattern := range patterns {
		if !strings.ContainsAny(pattern, "*?[{") {
			add(pattern)
			continue
		}

		matches, err := doublestar.FilepathGlob(pattern,
			doublestar.WithFilesOnly(),
			doublestar.WithFailOnIOErrors())
		if err != nil {
			return nil, fmt.Errorf("expand pattern %q: %w", pattern, err)
		}
		sort.Strings(matches)
		for _, m := range matches {
			add(m)
		}
	}

	return out, nil
}

// Directories returns the distinct parent directories of paths
func Directories(paths []string) []string {
	var dirs []string
	seen := make(map[string]bool)
	for _, p := range paths {
		dir := filepath.Dir(p)
		if abs, err := filepath.Abs(dir); err == nil {
			dir = abs
		}
		if !seen[dir] {
			seen[dir] = true
			dirs = append(dirs, dir)
		}
	}
	return dirs
}
