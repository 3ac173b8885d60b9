// FILE: hydrolog/src/internal/sink/sink.go
package sink

import (
	"fmt"
	"time"
)

// Sink receives one export output: a header block followed by data lines.
// Nothing is visible at the destination until Commit succeeds.
type Sink interface {
	// Write appends raw bytes, used for the header block
	Write(p []byte) (int, error)

	// WriteLine appends one data line and a newline
	WriteLine(line string) error

	// Commit finalizes the output and returns what was written
	Commit() (Result, error)

	// Abort discards everything written so far
	Abort()

	// GetStats returns sink statistics
	GetStats() SinkStats
}

// Opener creates a sink for a destination path
type Opener func(path string) (Sink, error)

// Result describes a committed output
type Result struct {
	Path   string
	Bytes  int64
	Lines  int
	Digest string
}

// SinkStats contains statistics about a sink
type SinkStats struct {
	Type        string
	TotalLines  uint64
	TotalBytes  uint64
	StartTime   time.Time
	LastWritten time.Time
	Details     map[string]any
}

// ExportWriteError reports a failure producing an output file
type ExportWriteError struct {
	Path string
	Op   string
	Err  error
}

func (e *ExportWriteError) Error() string {
	return fmt.Sprintf("export write %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *ExportWriteError) Unwrap() error {
	return e.Err
}
