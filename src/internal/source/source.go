// FILE: hydrolog/src/internal/source/source.go
package source

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyFile  = errors.New("file is empty")
	ErrBinaryFile = errors.New("file appears to be binary")
	ErrNotRegular = errors.New("not a regular file")
)

// FileAccessError reports an input file that could not be used
type FileAccessError struct {
	Path string
	Op   string
	Err  error
}

func (e *FileAccessError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *FileAccessError) Unwrap() error {
	return e.Err
}

// Options controls input validation
type Options struct {
	// Extensions accepted without a warning, lower case with leading dot
	Extensions []string
	// Files above this size are read with a warning
	MaxSizeBytes int64
	// Bytes inspected for binary content
	SampleBytes int
	// Fraction of control bytes above which a file is treated as binary
	BinaryThreshold float64
	// Leading lines inspected for emptiness
	ProbeLines int
}

// DefaultOptions returns the standard input checks
func DefaultOptions() Options {
	return Options{
		Extensions:      []string{".txt", ".dat", ".csv"},
		MaxSizeBytes:    100 * 1024 * 1024,
		SampleBytes:     8192,
		BinaryThreshold: 0.05,
		ProbeLines:      5,
	}
}
