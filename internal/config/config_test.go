package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/woozymasta/geokit/internal/config"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	t.Parallel()

	t.Run("success - empty path gives defaults", func(t *testing.T) {
		t.Parallel()
		cfg, err := config.Load("")

		require.NoError(t, err)
		assert.Equal(t, config.Default(), cfg)
	})

	t.Run("success - file overrides defaults", func(t *testing.T) {
		t.Parallel()
		path := writeConfig(t, "listen:\n  port: 9090\nequivalence_limit: 50\npretty: true\n")

		cfg, err := config.Load(path)

		require.NoError(t, err)
		assert.Equal(t, 9090, cfg.Listen.Port)
		assert.Equal(t, config.DefaultAddr, cfg.Listen.Addr)
		assert.Equal(t, 50, cfg.EquivalenceLimit)
		assert.Equal(t, int64(config.DefaultMaxBodyBytes), cfg.MaxBodyBytes)
		assert.True(t, cfg.Pretty)
	})

	t.Run("error - missing file", func(t *testing.T) {
		t.Parallel()
		_, err := config.Load(filepath.Join(t.TempDir(), "absent.yaml"))

		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("error - malformed yaml", func(t *testing.T) {
		t.Parallel()
		_, err := config.Load(writeConfig(t, "listen: [\n"))

		assert.Error(t, err)
	})

	t.Run("error - negative limit", func(t *testing.T) {
		t.Parallel()
		_, err := config.Load(writeConfig(t, "equivalence_limit: -1\n"))

		assert.ErrorIs(t, err, config.ErrInvalid)
	})
}
