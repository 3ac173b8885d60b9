// FILE: hydrolog/src/internal/export/naming.go
package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// OutputName returns the file name for the input at position index
func OutputName(src string, index int, opts Options) string {
	base := filepath.Base(src)
	ext := filepath.Ext(base)

	if !opts.PreserveFilenames {
		return fmt.Sprintf("exported_%03d%s", index+1, ext)
	}
	if opts.AddSuffix {
		return strings.TrimSuffix(base, ext) + "_edited" + ext
	}
	return base
}

// OutputPath returns the destination for one input in individual mode.
// Without an output directory the file is written next to its source.
func OutputPath(src string, index int, opts Options) string {
	dir := opts.OutputDir
	if dir == "" {
		dir = filepath.Dir(src)
	}
	return filepath.Join(dir, OutputName(src, index, opts))
}

// MergedPath returns the destination for single-output modes
func MergedPath(opts Options) string {
	if opts.OutputPath != "" {
		return opts.OutputPath
	}
	return filepath.Join(opts.OutputDir, defaultMergedName)
}

// sourceSet answers whether a destination is one of the inputs
type sourceSet struct {
	abs   map[string]bool
	infos []os.FileInfo
}

func newSourceSet(paths []string) *sourceSet {
	s := &sourceSet{abs: make(map[string]bool, len(paths))}
	for _, p := range paths {
		s.abs[absPath(p)] = true
		if info, err := os.Stat(p); err == nil {
			s.infos = append(s.infos, info)
		}
	}
	return s
}

func (s *sourceSet) contains(path string) bool {
	if s.abs[absPath(path)] {
		return true
	}
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	for _, src := range s.infos {
		if os.SameFile(info, src) {
			return true
		}
	}
	return false
}

func absPath(p string) string {
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return filepath.Clean(p)
}
