// FILE: hydrolog/src/cmd/hydrolog/commands/config_test.go
package commands

import (
	"path/filepath"
	"testing"

	"hydrolog/src/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigCommand_Init(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hydrolog.toml")

	router, stdout, _ := newTestRouter(testBoot(nil))
	_, err := router.Route([]string{"hydrolog", "config", "init", path})
	require.NoError(t, err)
	assert.Contains(t, stdout.String(), path)

	cfg, err := config.LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "single-chronological", cfg.Export.Mode)

	_, err = router.Route([]string{"hydrolog", "config", "init", path})
	assert.Error(t, err, "existing file needs --force")

	_, err = router.Route([]string{"hydrolog", "config", "init", "--force", path})
	assert.NoError(t, err)
}

func TestConfigCommand_Check(t *testing.T) {
	boot := testBoot(func(cfg *config.Config) {
		cfg.Overrides.Client = "Acme Marine"
	})
	router, stdout, _ := newTestRouter(boot)

	_, err := router.Route([]string{"hydrolog", "config", "check"})
	require.NoError(t, err)
	assert.Contains(t, stdout.String(), "single-chronological")
	assert.Contains(t, stdout.String(), "Acme Marine")
	assert.Contains(t, stdout.String(), "configuration is valid")

	_, err = router.Route([]string{"hydrolog", "config"})
	assert.ErrorIs(t, err, ErrUsage)
	_, err = router.Route([]string{"hydrolog", "config", "show"})
	assert.ErrorIs(t, err, ErrUsage)
}
