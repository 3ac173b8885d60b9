// FILE: hydrolog/src/internal/sink/sink_test.go
package sink

import (
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/lixenwraith/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/blake2b"
)

func newTestLogger() *log.Logger {
	return log.NewLogger()
}

func digestOf(s string) string {
	sum := blake2b.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])
}

func TestFileSink_Commit(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.txt")

	fs, err := NewFileSink(path, newTestLogger())
	require.NoError(t, err)

	_, err = fs.Write([]byte("Client\tAcme\n"))
	require.NoError(t, err)
	require.NoError(t, fs.WriteLine("02:00:00\t1"))
	require.NoError(t, fs.WriteLine("02:00:01\t2"))

	// Not visible before commit
	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))

	res, err := fs.Commit()
	require.NoError(t, err)

	content := "Client\tAcme\n02:00:00\t1\n02:00:01\t2\n"
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, content, string(data))

	assert.Equal(t, path, res.Path)
	assert.Equal(t, int64(len(content)), res.Bytes)
	assert.Equal(t, 2, res.Lines)
	assert.Equal(t, digestOf(content), res.Digest)

	stats := fs.GetStats()
	assert.Equal(t, "file", stats.Type)
	assert.Equal(t, uint64(2), stats.TotalLines)

	// No temp files left behind
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)

	t.Run("WriteAfterCommit", func(t *testing.T) {
		err := fs.WriteLine("late")
		var writeErr *ExportWriteError
		require.True(t, errors.As(err, &writeErr))
		assert.Equal(t, "write", writeErr.Op)
	})
}

func TestFileSink_AbortLeavesDestination(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.txt")
	require.NoError(t, os.WriteFile(path, []byte("previous\n"), 0o644))

	fs, err := NewFileSink(path, newTestLogger())
	require.NoError(t, err)
	require.NoError(t, fs.WriteLine("partial"))
	fs.Abort()
	fs.Abort()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "previous\n", string(data))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)

	_, err = fs.Commit()
	assert.Error(t, err)
}

func TestFileSink_MissingDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "out.txt")

	_, err := FileOpener(newTestLogger())(path)
	var writeErr *ExportWriteError
	require.True(t, errors.As(err, &writeErr))
	assert.Equal(t, "create", writeErr.Op)
	assert.Equal(t, path, writeErr.Path)
	assert.Contains(t, err.Error(), "out.txt")
}

func TestMemoryStore(t *testing.T) {
	store := NewMemoryStore()
	open := store.Opener()

	s, err := open("a.txt")
	require.NoError(t, err)
	_, err = s.Write([]byte("Header\tx\n"))
	require.NoError(t, err)
	require.NoError(t, s.WriteLine("1\t2"))
	res, err := s.Commit()
	require.NoError(t, err)

	assert.Equal(t, 1, res.Lines)
	assert.Equal(t, digestOf("Header\tx\n1\t2\n"), res.Digest)
	assert.Equal(t, []string{"Header\tx", "1\t2"}, store.Lines("a.txt"))

	aborted, err := open("b.txt")
	require.NoError(t, err)
	require.NoError(t, aborted.WriteLine("dropped"))
	aborted.Abort()

	_, ok := store.Get("b.txt")
	assert.False(t, ok)
	assert.Equal(t, []string{"a.txt"}, store.Paths())
}
