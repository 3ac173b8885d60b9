// FILE: hydrolog/src/internal/sink/memory.go
package sink

import (
	"bytes"
	"encoding/hex"
	"strings"
	"sync"
	"time"

	"golang.org/x/crypto/blake2b"
)

// Collects output in memory. Used for dry runs; committed outputs are kept
// by path.
type MemorySink struct {
	store     *MemoryStore
	path      string
	buf       bytes.Buffer
	lines     int
	closed    bool
	startTime time.Time
}

// MemoryStore holds committed in-memory outputs
type MemoryStore struct {
	mu      sync.Mutex
	outputs map[string]string
	order   []string
}

// Creates a new memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{outputs: make(map[string]string)}
}

// Opener returns an Opener producing sinks committed into the store
func (m *MemoryStore) Opener() Opener {
	return func(path string) (Sink, error) {
		return &MemorySink{store: m, path: path, startTime: time.Now()}, nil
	}
}

// Get returns the committed content for path
func (m *MemoryStore) Get(path string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.outputs[path]
	return s, ok
}

// Paths returns committed paths in commit order
func (m *MemoryStore) Paths() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.order...)
}

// Lines returns the committed content for path split into lines
func (m *MemoryStore) Lines(path string) []string {
	s, ok := m.Get(path)
	if !ok {
		return nil
	}
	return strings.Split(strings.TrimSuffix(s, "\n"), "\n")
}

func (s *MemorySink) Write(p []byte) (int, error) {
	if s.closed {
		return 0, &ExportWriteError{Path: s.path, Op: "write", Err: errClosed}
	}
	return s.buf.Write(p)
}

func (s *MemorySink) WriteLine(line string) error {
	if _, err := s.Write([]byte(line + "\n")); err != nil {
		return err
	}
	s.lines++
	return nil
}

func (s *MemorySink) Commit() (Result, error) {
	if s.closed {
		return Result{}, &ExportWriteError{Path: s.path, Op: "commit", Err: errClosed}
	}
	s.closed = true

	sum := blake2b.Sum256(s.buf.Bytes())

	s.store.mu.Lock()
	if _, exists := s.store.outputs[s.path]; !exists {
		s.store.order = append(s.store.order, s.path)
	}
	s.store.outputs[s.path] = s.buf.String()
	s.store.mu.Unlock()

	return Result{
		Path:   s.path,
		Bytes:  int64(s.buf.Len()),
		Lines:  s.lines,
		Digest: hex.EncodeToString(sum[:]),
	}, nil
}

func (s *MemorySink) Abort() {
	s.closed = true
	s.buf.Reset()
}

func (s *MemorySink) GetStats() SinkStats {
	return SinkStats{
		Type:       "memory",
		TotalLines: uint64(s.lines),
		TotalBytes: uint64(s.buf.Len()),
		StartTime:  s.startTime,
		Details: map[string]any{
			"path": s.path,
		},
	}
}
