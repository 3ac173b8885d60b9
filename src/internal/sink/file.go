// FILE: hydrolog/src/internal/sink/file.go
package sink

import (
	"bufio"
	"encoding/hex"
	"errors"
	"hash"
	"io"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/log"
	"golang.org/x/crypto/blake2b"
)

var errClosed = errors.New("sink already committed or aborted")

// Writes an output file through a temp file in the destination directory,
// renamed into place on commit.
type FileSink struct {
	path      string
	tmp       *os.File
	buf       *bufio.Writer
	hash      hash.Hash
	out       io.Writer
	closed    bool
	startTime time.Time
	logger    *log.Logger

	// Statistics
	totalLines  atomic.Uint64
	totalBytes  atomic.Uint64
	lastWritten atomic.Value // time.Time
}

// Creates a new file sink for path
func NewFileSink(path string, logger *log.Logger) (*FileSink, error) {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".hydrolog-tmp-*")
	if err != nil {
		return nil, &ExportWriteError{Path: path, Op: "create", Err: err}
	}

	// Unkeyed BLAKE2b-256 never fails
	h, _ := blake2b.New256(nil)

	fs := &FileSink{
		path:      path,
		tmp:       tmp,
		buf:       bufio.NewWriterSize(tmp, 64*1024),
		hash:      h,
		startTime: time.Now(),
		logger:    logger,
	}
	fs.out = io.MultiWriter(fs.buf, fs.hash)
	fs.lastWritten.Store(time.Time{})

	logger.Debug("msg", "File sink opened",
		"component", "file_sink",
		"path", path,
		"temp", tmp.Name())

	return fs, nil
}

// FileOpener returns an Opener producing file sinks
func FileOpener(logger *log.Logger) Opener {
	return func(path string) (Sink, error) {
		return NewFileSink(path, logger)
	}
}

func (fs *FileSink) Write(p []byte) (int, error) {
	if fs.closed {
		return 0, &ExportWriteError{Path: fs.path, Op: "write", Err: errClosed}
	}
	n, err := fs.out.Write(p)
	fs.totalBytes.Add(uint64(n))
	fs.lastWritten.Store(time.Now())
	if err != nil {
		return n, &ExportWriteError{Path: fs.path, Op: "write", Err: err}
	}
	return n, nil
}

func (fs *FileSink) WriteLine(line string) error {
	if _, err := fs.Write([]byte(line + "\n")); err != nil {
		return err
	}
	fs.totalLines.Add(1)
	return nil
}

// Commit flushes, syncs and renames the temp file onto the destination
func (fs *FileSink) Commit() (Result, error) {
	if fs.closed {
		return Result{}, &ExportWriteError{Path: fs.path, Op: "commit", Err: errClosed}
	}

	fail := func(op string, err error) (Result, error) {
		fs.Abort()
		return Result{}, &ExportWriteError{Path: fs.path, Op: op, Err: err}
	}

	if err := fs.buf.Flush(); err != nil {
		return fail("flush", err)
	}
	if err := fs.tmp.Sync(); err != nil {
		return fail("sync", err)
	}
	tmpPath := fs.tmp.Name()
	if err := fs.tmp.Close(); err != nil {
		return fail("close", err)
	}
	if err := os.Rename(tmpPath, fs.path); err != nil {
		_ = os.Remove(tmpPath)
		fs.closed = true
		return Result{}, &ExportWriteError{Path: fs.path, Op: "rename", Err: err}
	}
	fs.closed = true
	syncDir(filepath.Dir(fs.path))

	res := Result{
		Path:   fs.path,
		Bytes:  int64(fs.totalBytes.Load()),
		Lines:  int(fs.totalLines.Load()),
		Digest: hex.EncodeToString(fs.hash.Sum(nil)),
	}

	fs.logger.Debug("msg", "File sink committed",
		"component", "file_sink",
		"path", fs.path,
		"bytes", res.Bytes,
		"lines", res.Lines)

	return res, nil
}

// Abort removes the temp file; the destination is left untouched
func (fs *FileSink) Abort() {
	if fs.closed {
		return
	}
	fs.closed = true
	_ = fs.tmp.Close()
	if err := os.Remove(fs.tmp.Name()); err != nil && !os.IsNotExist(err) {
		fs.logger.Warn("msg", "Failed to remove temp file",
			"component", "file_sink",
			"path", fs.tmp.Name(),
			"error", err)
	}
}

func (fs *FileSink) GetStats() SinkStats {
	last, _ := fs.lastWritten.Load().(time.Time)

	return SinkStats{
		Type:        "file",
		TotalLines:  fs.totalLines.Load(),
		TotalBytes:  fs.totalBytes.Load(),
		StartTime:   fs.startTime,
		LastWritten: last,
		Details: map[string]any{
			"path": fs.path,
		},
	}
}

// syncDir persists the rename; failures are ignored on platforms that
// cannot open directories.
func syncDir(dir string) {
	d, err := os.Open(dir)
	if err != nil {
		return
	}
	_ = d.Sync()
	_ = d.Close()
}
