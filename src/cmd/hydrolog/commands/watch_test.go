// FILE: hydrolog/src/cmd/hydrolog/commands/watch_test.go
package commands

import (
	"context"
	"io"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatchCommand_StopsOnCancel(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.txt", sensorFile("2024-01-15", "Acme", "02:00:00\tA1"))
	out := filepath.Join(dir, "merged.txt")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	cmd := NewWatchCommand(ctx, testBoot(nil), io.Discard, io.Discard)
	require.NoError(t, cmd.Execute([]string{"-o", out, a}))

	// The initial export ran before watching started
	assert.Contains(t, readFile(t, out), "02:00:00\tA1\n")
}
