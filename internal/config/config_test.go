package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/screenday/screenday/internal/aggregate"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_EmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, aggregate.DefaultConfig(), cfg)
}

func TestLoad_MissingFileFails(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	assert.ErrorContains(t, err, "read config")
}

func TestLoad_AppliesOverrides(t *testing.T) {
	path := writeConfig(t, `
merge_gap_ms: 10000
active_window_ms: 3000
open_debounce_ms: 0
host_package: "com.example.host"
count_filtered_unlocks: false
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 10*time.Second, cfg.MergeGap)
	assert.Equal(t, 3*time.Second, cfg.ActiveWindow)
	assert.Equal(t, time.Duration(0), cfg.OpenDebounce)
	assert.Equal(t, "com.example.host", cfg.HostPackage)
	assert.False(t, cfg.UnlockIgnoresFilter)

	// Untouched fields keep their defaults.
	def := aggregate.DefaultConfig()
	assert.Equal(t, def.MinSignificantUsage, cfg.MinSignificantUsage)
	assert.Equal(t, def.ShellPackage, cfg.ShellPackage)
}

func TestLoad_RejectsUnknownKey(t *testing.T) {
	path := writeConfig(t, "merge_gap_msec: 10000\n")

	_, err := Load(path)
	require.Error(t, err)
	assert.ErrorContains(t, err, "validate config")
}

func TestLoad_RejectsOutOfRangeValue(t *testing.T) {
	path := writeConfig(t, "merge_gap_ms: -5\n")

	_, err := Load(path)
	require.Error(t, err)
	assert.ErrorContains(t, err, "validate config")
}

func TestLoad_RejectsWrongType(t *testing.T) {
	path := writeConfig(t, "host_package: 42\n")

	_, err := Load(path)
	require.Error(t, err)
	assert.ErrorContains(t, err, "validate config")
}

func TestLoad_EmptyFileReturnsDefaults(t *testing.T) {
	path := writeConfig(t, "{}\n")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, aggregate.DefaultConfig(), cfg)
}
