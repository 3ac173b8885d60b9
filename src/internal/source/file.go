// FILE: hydrolog/src/internal/source/file.go
package source

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync/atomic"
	"unicode/utf8"

	"hydrolog/src/internal/core"

	"github.com/lixenwraith/log"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Loader reads and validates sensor log files
type Loader struct {
	opts   Options
	logger *log.Logger

	// Statistics
	totalLoaded   atomic.Uint64
	totalRejected atomic.Uint64
	totalBytes    atomic.Uint64
}

// NewLoader creates a file loader
func NewLoader(opts Options, logger *log.Logger) *Loader {
	if opts.SampleBytes <= 0 {
		opts.SampleBytes = DefaultOptions().SampleBytes
	}
	if opts.ProbeLines <= 0 {
		opts.ProbeLines = DefaultOptions().ProbeLines
	}
	if opts.BinaryThreshold <= 0 {
		opts.BinaryThreshold = DefaultOptions().BinaryThreshold
	}
	return &Loader{opts: opts, logger: logger}
}

// Load reads, decodes and validates one file. Advisory problems are
// returned as warnings; unusable files return a *FileAccessError.
func (l *Loader) Load(path string) (core.SourceFile, []string, error) {
	var warnings []string

	info, err := os.Stat(path)
	if err != nil {
		return l.reject(path, "stat", err)
	}
	if !info.Mode().IsRegular() {
		return l.reject(path, "stat", ErrNotRegular)
	}

	ext := strings.ToLower(filepath.Ext(path))
	if len(l.opts.Extensions) > 0 && !slices.Contains(l.opts.Extensions, ext) {
		warnings = append(warnings, fmt.Sprintf("unsupported extension %q", ext))
	}
	if l.opts.MaxSizeBytes > 0 && info.Size() > l.opts.MaxSizeBytes {
		warnings = append(warnings, fmt.Sprintf("file is large (%d MB)", info.Size()/(1024*1024)))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return l.reject(path, "read", err)
	}
	if len(data) == 0 {
		return l.reject(path, "validate", ErrEmptyFile)
	}

	text, encoding, err := decode(data)
	if err != nil {
		return l.reject(path, "decode", err)
	}
	if isBinary(text, l.opts.SampleBytes, l.opts.BinaryThreshold) {
		return l.reject(path, "validate", ErrBinaryFile)
	}

	lines := splitLines(text)
	if isBlank(lines, l.opts.ProbeLines) {
		return l.reject(path, "validate", ErrEmptyFile)
	}

	for _, w := range warnings {
		l.logger.Warn("msg", "Input file warning",
			"component", "source",
			"path", path,
			"warning", w)
	}

	l.totalLoaded.Add(1)
	l.totalBytes.Add(uint64(info.Size()))
	l.logger.Debug("msg", "Source file loaded",
		"component", "source",
		"path", path,
		"lines", len(lines),
		"encoding", encoding)

	return core.SourceFile{
		Path:     path,
		Lines:    lines,
		Encoding: encoding,
		Size:     info.Size(),
		ModTime:  info.ModTime(),
	}, warnings, nil
}

// GetStats returns loader statistics
func (l *Loader) GetStats() map[string]any {
	return map[string]any{
		"total_loaded":   l.totalLoaded.Load(),
		"total_rejected": l.totalRejected.Load(),
		"total_bytes":    l.totalBytes.Load(),
	}
}

func (l *Loader) reject(path, op string, err error) (core.SourceFile, []string, error) {
	l.totalRejected.Add(1)
	l.logger.Warn("msg", "Source file rejected",
		"component", "source",
		"path", path,
		"op", op,
		"error", err)
	return core.SourceFile{}, nil, &FileAccessError{Path: path, Op: op, Err: err}
}

// decode strips byte order marks, decodes UTF-16, and falls back to
// Windows-1252 for bytes that are not valid UTF-8.
func decode(data []byte) ([]byte, string, error) {
	encoding := "utf-8"
	switch {
	case bytes.HasPrefix(data, []byte{0xEF, 0xBB, 0xBF}):
		encoding = "utf-8-bom"
	case bytes.HasPrefix(data, []byte{0xFF, 0xFE}):
		encoding = "utf-16le"
	case bytes.HasPrefix(data, []byte{0xFE, 0xFF}):
		encoding = "utf-16be"
	}

	out, _, err := transform.Bytes(unicode.BOMOverride(transform.Nop), data)
	if err != nil {
		return nil, "", fmt.Errorf("decode %s: %w", encoding, err)
	}

	if !utf8.Valid(out) {
		out, err = charmap.Windows1252.NewDecoder().Bytes(out)
		if err != nil {
			return nil, "", fmt.Errorf("decode windows-1252: %w", err)
		}
		encoding = "windows-1252"
	}
	return out, encoding, nil
}

func isBinary(data []byte, sample int, threshold float64) bool {
	if len(data) > sample {
		data = data[:sample]
	}
	if len(data) == 0 {
		return false
	}
	control := 0
	for _, b := range data {
		switch {
		case b == 0:
			return true
		case b == '\t', b == '\n', b == '\r', b == '\f':
		case b < 0x20, b == 0x7f:
			control++
		}
	}
	return float64(control)/float64(len(data)) > threshold
}

func splitLines(data []byte) []string {
	text := string(data)
	text = strings.TrimSuffix(text, "\n")
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}

func isBlank(lines []string, probe int) bool {
	for i, line := range lines {
		if i >= probe {
			break
		}
		if strings.TrimSpace(line) != "" {
			return false
		}
	}
	return true
}
