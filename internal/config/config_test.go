package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.True(t, cfg.SnapEnabled)
	assert.True(t, cfg.ShowGuides)
	assert.Equal(t, 6.0, cfg.SnapThreshold)
	assert.Equal(t, 24.0, cfg.MinSize)
	assert.Equal(t, 8.0, cfg.MaxZoom)
	assert.Equal(t, 1280, cfg.WindowWidth)

	s := cfg.Settings()
	assert.Equal(t, cfg.SnapThreshold, s.SnapThreshold)
	assert.Equal(t, cfg.BatchMoves, s.BatchMoves)
}

func TestLoad_Env(t *testing.T) {
	t.Setenv("OVERLAY_SNAP_ENABLED", "false")
	t.Setenv("OVERLAY_SNAP_THRESHOLD", "8")
	t.Setenv("OVERLAY_LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)
	assert.False(t, cfg.SnapEnabled)
	assert.Equal(t, 8.0, cfg.SnapThreshold)

	level, err := cfg.SlogLevel()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, level)
}

func TestLoad_FileOverridesEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "overlay.yaml")
	require.NoError(t, os.WriteFile(path, []byte("showGuides: false\nsnapThreshold: 4\n"), 0o644))

	t.Setenv("OVERLAY_SNAP_THRESHOLD", "8")
	t.Setenv("OVERLAY_MIN_SIZE", "30")
	t.Setenv("OVERLAY_CONFIG_FILE", path)

	cfg, err := Load()
	require.NoError(t, err)
	assert.False(t, cfg.ShowGuides)
	assert.Equal(t, 4.0, cfg.SnapThreshold, "file wins over env")
	assert.Equal(t, 30.0, cfg.MinSize, "env kept where the file is silent")
	assert.Equal(t, path, cfg.ConfigFile)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"bad number", map[string]string{"OVERLAY_MIN_SIZE": "big"}},
		{"zero min size", map[string]string{"OVERLAY_MIN_SIZE": "0"}},
		{"inverted zoom", map[string]string{"OVERLAY_MIN_ZOOM": "2", "OVERLAY_MAX_ZOOM": "1"}},
		{"log level", map[string]string{"OVERLAY_LOG_LEVEL": "loud"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	t.Setenv("OVERLAY_CONFIG_FILE", filepath.Join(t.TempDir(), "missing.yaml"))
	_, err := Load()
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestWatch_Reloads(t *testing.T) {
	path := filepath.Join(t.TempDir(), "overlay.yaml")
	require.NoError(t, os.WriteFile(path, []byte("snapEnabled: true\n"), 0o644))

	base, err := Load()
	require.NoError(t, err)

	w, err := Watch(path, *base)
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, os.WriteFile(path, []byte("snapEnabled: false\nsnapThreshold: 3\n"), 0o644))

	select {
	case cfg := <-w.Updates:
		require.NotNil(t, cfg)
		assert.False(t, cfg.SnapEnabled)
		assert.Equal(t, 3.0, cfg.SnapThreshold)
		assert.Equal(t, base.MinSize, cfg.MinSize)
	case err := <-w.Errors:
		t.Fatalf("watch error: %v", err)
	case <-time.After(5 * time.Second):
		t.Fatal("no reload within 5s")
	}
}

func TestWatch_RemovedKeyFallsBackToEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "overlay.yaml")
	require.NoError(t, os.WriteFile(path, []byte("snapThreshold: 4\n"), 0o644))
	t.Setenv("OVERLAY_SNAP_THRESHOLD", "8")
	t.Setenv("OVERLAY_CONFIG_FILE", path)

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, 4.0, cfg.SnapThreshold)

	env, err := LoadEnv()
	require.NoError(t, err)
	w, err := Watch(path, *env)
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, os.WriteFile(path, []byte("showGuides: false\n"), 0o644))

	select {
	case cfg := <-w.Updates:
		require.NotNil(t, cfg)
		assert.False(t, cfg.ShowGuides)
		assert.Equal(t, 8.0, cfg.SnapThreshold, "env value returns once the file drops the key")
	case err := <-w.Errors:
		t.Fatalf("watch error: %v", err)
	case <-time.After(5 * time.Second):
		t.Fatal("no reload within 5s")
	}
}

func TestWatch_InvalidFileReportsError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "overlay.yaml")
	require.NoError(t, os.WriteFile(path, []byte("minSize: 10\n"), 0o644))

	base, err := Load()
	require.NoError(t, err)

	w, err := Watch(path, *base)
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, os.WriteFile(path, []byte("minSize: -5\n"), 0o644))

	select {
	case err := <-w.Errors:
		assert.ErrorIs(t, err, ErrInvalidConfig)
	case cfg := <-w.Updates:
		t.Fatalf("unexpected update: %+v", cfg)
	case <-time.After(5 * time.Second):
		t.Fatal("no error within 5s")
	}
}
