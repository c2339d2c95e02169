package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	t.Setenv("TOKEN_SECRET", "test-secret")

	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)

	assert.Equal(t, ":8099", cfg.Listen)
	assert.Equal(t, 6, cfg.GridRows)
	assert.Equal(t, "US", cfg.HolidayRegion)
	assert.Equal(t, "test-secret", cfg.TokenSecret)
}

func TestLoadFileWithEnvOverride(t *testing.T) {
	t.Setenv("TOKEN_SECRET", "env-secret")
	t.Setenv("GRID_ROWS", "5")

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
listen: ":9000"
grid_rows: 6
holiday_region: KR
session_ttl: 1h
`), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":9000", cfg.Listen)
	assert.Equal(t, 5, cfg.GridRows, "environment wins over file")
	assert.Equal(t, "KR", cfg.HolidayRegion)
	assert.Equal(t, time.Hour, cfg.SessionTTL)
}

func TestLoadRequiresSecret(t *testing.T) {
	t.Setenv("TOKEN_SECRET", "")

	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestNormalizeRejectsBadGridRows(t *testing.T) {
	cfg := &Config{GridRows: 9}
	cfg.Normalize()
	assert.Equal(t, 6, cfg.GridRows)

	cfg = &Config{GridRows: 5}
	cfg.Normalize()
	assert.Equal(t, 5, cfg.GridRows)
}
