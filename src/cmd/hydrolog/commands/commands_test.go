// FILE: hydrolog/src/cmd/hydrolog/commands/commands_test.go
package commands

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"hydrolog/src/internal/config"

	"github.com/lixenwraith/log"
	"github.com/stretchr/testify/require"
)

// testBoot returns a bootstrapper over the default configuration
func testBoot(mutate func(*config.Config)) Bootstrapper {
	return func(opts BootOptions) (*Runtime, error) {
		cfg := config.Default()
		cfg.Progress = "never"
		cfg.Quiet = opts.Quiet
		if mutate != nil {
			mutate(cfg)
		}
		return NewRuntime(cfg, log.NewLogger()), nil
	}
}

func newTestRouter(boot Bootstrapper) (*CommandRouter, *bytes.Buffer, *bytes.Buffer) {
	var out, errOut bytes.Buffer
	return newCommandRouter(context.Background(), boot, &out, &errOut), &out, &errOut
}

func sensorFile(date, client string, rows ...string) string {
	return "File Details:\n" +
		"Start Date\t" + date + "\n" +
		"Time Zone\tUTC\n" +
		"Client\t" + client + "\n" +
		"Job\tJOB-001\n" +
		"\n" +
		"Device Details:\n" +
		"S/N\t1234\n" +
		"\n" +
		"Setup:\n" +
		"Sample Rate [S/s]\t64000\n" +
		"\n" +
		"Data:\n" +
		"Time\tValue\n" +
		strings.Join(rows, "\n") + "\n"
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}
