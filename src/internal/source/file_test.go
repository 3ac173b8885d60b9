// FILE: hydrolog/src/internal/source/file_test.go
package source

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/lixenwraith/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLogger() *log.Logger {
	return log.NewLogger()
}

func writeFile(t *testing.T, dir, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func TestLoader_Load(t *testing.T) {
	dir := t.TempDir()
	loader := NewLoader(DefaultOptions(), newTestLogger())

	t.Run("ValidFile", func(t *testing.T) {
		path := writeFile(t, dir, "ok.txt", []byte("Client\tAcme\r\nData:\r\n02:00:00\t1\r\n"))
		sf, warnings, err := loader.Load(path)
		require.NoError(t, err)
		assert.Empty(t, warnings)
		assert.Equal(t, []string{"Client\tAcme", "Data:", "02:00:00\t1"}, sf.Lines)
		assert.Equal(t, "utf-8", sf.Encoding)
		assert.Equal(t, path, sf.Path)
	})

	t.Run("MissingFile", func(t *testing.T) {
		_, _, err := loader.Load(filepath.Join(dir, "nope.txt"))
		var fae *FileAccessError
		require.True(t, errors.As(err, &fae))
		assert.Equal(t, "stat", fae.Op)
		assert.True(t, errors.Is(err, os.ErrNotExist))
	})

	t.Run("Directory", func(t *testing.T) {
		_, _, err := loader.Load(dir)
		assert.ErrorIs(t, err, ErrNotRegular)
	})

	t.Run("EmptyFile", func(t *testing.T) {
		path := writeFile(t, dir, "empty.txt", nil)
		_, _, err := loader.Load(path)
		assert.ErrorIs(t, err, ErrEmptyFile)
	})

	t.Run("BlankLinesOnly", func(t *testing.T) {
		path := writeFile(t, dir, "blank.txt", []byte("\n  \n\t\n\n\n\n"))
		_, _, err := loader.Load(path)
		assert.ErrorIs(t, err, ErrEmptyFile)
	})

	t.Run("BinaryFile", func(t *testing.T) {
		path := writeFile(t, dir, "blob.dat", []byte{'R', 'I', 'F', 'F', 0x00, 0x01, 0x02})
		_, _, err := loader.Load(path)
		assert.ErrorIs(t, err, ErrBinaryFile)
	})

	t.Run("Windows1252", func(t *testing.T) {
		path := writeFile(t, dir, "latin.txt", []byte("dB Ref re 1\xb5Pa\t-180\n"))
		sf, _, err := loader.Load(path)
		require.NoError(t, err)
		assert.Equal(t, "windows-1252", sf.Encoding)
		assert.Equal(t, "dB Ref re 1µPa\t-180", sf.Lines[0])
	})

	t.Run("UTF8BOM", func(t *testing.T) {
		path := writeFile(t, dir, "bom.txt", []byte("\xef\xbb\xbfClient\tAcme\n"))
		sf, _, err := loader.Load(path)
		require.NoError(t, err)
		assert.Equal(t, "utf-8-bom", sf.Encoding)
		assert.Equal(t, "Client\tAcme", sf.Lines[0])
	})

	t.Run("UTF16LE", func(t *testing.T) {
		data := []byte{0xFF, 0xFE}
		for _, r := range "Job\tJ1\n" {
			data = append(data, byte(r), 0x00)
		}
		path := writeFile(t, dir, "wide.txt", data)
		sf, _, err := loader.Load(path)
		require.NoError(t, err)
		assert.Equal(t, "utf-16le", sf.Encoding)
		assert.Equal(t, []string{"Job\tJ1"}, sf.Lines)
	})

	t.Run("UnsupportedExtensionWarns", func(t *testing.T) {
		path := writeFile(t, dir, "log.xyz", []byte("Client\tAcme\n"))
		_, warnings, err := loader.Load(path)
		require.NoError(t, err)
		require.Len(t, warnings, 1)
		assert.Contains(t, warnings[0], ".xyz")
	})

	stats := loader.GetStats()
	assert.Greater(t, stats["total_loaded"].(uint64), uint64(0))
	assert.Greater(t, stats["total_rejected"].(uint64), uint64(0))
}

func TestExpand(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "day2"), 0o755))
	b := writeFile(t, dir, "b.txt", []byte("x"))
	a := writeFile(t, dir, "a.txt", []byte("x"))
	c := writeFile(t, filepath.Join(dir, "day2"), "c.txt", []byte("x"))
	writeFile(t, dir, "skip.dat", []byte("x"))

	t.Run("GlobSortedAndRecursive", func(t *testing.T) {
		got, err := Expand([]string{filepath.Join(dir, "**", "*.txt")})
		require.NoError(t, err)
		assert.Equal(t, []string{a, b, c}, got)
	})

	t.Run("LiteralOrderKeptAndDeduplicated", func(t *testing.T) {
		missing := filepath.Join(dir, "missing.txt")
		got, err := Expand([]string{b, a, missing, filepath.Join(dir, "*.txt")})
		require.NoError(t, err)
		assert.Equal(t, []string{b, a, missing}, got)
	})

	t.Run("BadPattern", func(t *testing.T) {
		_, err := Expand([]string{filepath.Join(dir, "[")})
		assert.Error(t, err)
	})

	t.Run("Directories", func(t *testing.T) {
		dirs := Directories([]string{a, b, c})
		assert.Len(t, dirs, 2)
	})
}
