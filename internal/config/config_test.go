package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default().Seed, cfg.Seed)
	assert.Equal(t, Default().ViewDistance, cfg.ViewDistance)
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "voxelcore.yaml")
	require.NoError(t, os.WriteFile(path, []byte("seed: 99\nview_distance: 8\ncaves: false\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, int64(99), cfg.Seed)
	assert.Equal(t, 8, cfg.ViewDistance)
	assert.False(t, cfg.Caves)
	assert.Equal(t, Default().Workers, cfg.Workers, "unset keys keep defaults")
}

func TestLoadMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "voxelcore.yaml")
	require.NoError(t, os.WriteFile(path, []byte("seed: [not an int\n"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("VOXELCORE_SEED", "1234")
	t.Setenv("VOXELCORE_VIEW_DISTANCE", "20")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, int64(1234), cfg.Seed)
	assert.Equal(t, 20, cfg.ViewDistance)
}

func TestLoadClampsInvalidValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "voxelcore.yaml")
	require.NoError(t, os.WriteFile(path, []byte("workers: 0\nview_distance: 1\nunload_distance: 1\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 1, cfg.Workers)
	assert.Equal(t, 2, cfg.ViewDistance)
	assert.GreaterOrEqual(t, cfg.UnloadDistance, cfg.ViewDistance)
}

func TestViewDistanceSettings(t *testing.T) {
	SetViewDistance(10)
	assert.Equal(t, 10, GetViewDistance())

	SetViewDistance(1)
	assert.Equal(t, 2, GetViewDistance(), "clamped at the low end")

	SetViewDistance(500)
	assert.Equal(t, 48, GetViewDistance(), "clamped at the high end")

	SetViewDistance(10)
	assert.Greater(t, GetUnloadDistance(), GetViewDistance())
}
