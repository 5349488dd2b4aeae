package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setTestDirs(t *testing.T) string {
	t.Helper()
	base := t.TempDir()
	t.Setenv("ENV", "")
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(base, "cfg"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(base, "data"))
	t.Setenv("XDG_STATE_HOME", filepath.Join(base, "state"))
	return base
}

func TestManager_LoadCreatesDefaultConfig(t *testing.T) {
	base := setTestDirs(t)

	mgr, err := NewManager()
	require.NoError(t, err)
	require.NoError(t, mgr.Load())

	cfg := mgr.Get()
	assert.Equal(t, time.Minute, cfg.Scheduler.TickInterval)
	assert.Equal(t, 5*time.Second, cfg.Notify.Timeout)
	assert.Equal(t, 30*time.Second, cfg.Hook.Timeout)
	assert.Equal(t, 500, cfg.Journal.MaxEntries)
	assert.Equal(t, filepath.Join(base, "data", "themectl", "themes"), cfg.Themes.BundledDir)
	assert.Equal(t, filepath.Join(base, "cfg", "themectl", "current"), cfg.Pointer.Path)

	// The default config file and its schema were written out.
	_, err = os.Stat(mgr.GetConfigFile())
	assert.NoError(t, err)
}

func TestManager_LoadReadsExistingConfig(t *testing.T) {
	base := setTestDirs(t)
	cfgDir := filepath.Join(base, "cfg", "themectl")
	require.NoError(t, os.MkdirAll(cfgDir, 0755))
	doc := "scheduler:\n  tick_interval: 30s\nlocation:\n  latitude: 48.85\n  longitude: 2.35\n"
	require.NoError(t, os.WriteFile(filepath.Join(cfgDir, "config.yaml"), []byte(doc), 0644))

	mgr, err := NewManager()
	require.NoError(t, err)
	require.NoError(t, mgr.Load())

	cfg := mgr.Get()
	assert.Equal(t, 30*time.Second, cfg.Scheduler.TickInterval)
	assert.InDelta(t, 48.85, cfg.Location.Latitude, 0.001)
	// Unset fields keep their defaults.
	assert.Equal(t, 5*time.Second, cfg.Notify.Timeout)
}

func TestManager_GetReturnsCopy(t *testing.T) {
	setTestDirs(t)

	mgr, err := NewManager()
	require.NoError(t, err)
	require.NoError(t, mgr.Load())

	a := mgr.Get()
	a.Journal.MaxEntries = 1
	b := mgr.Get()
	assert.Equal(t, 500, b.Journal.MaxEntries)
}

func TestSchemaJSON(t *testing.T) {
	data, err := SchemaJSON()
	require.NoError(t, err)
	assert.Contains(t, string(data), "$schema")
	assert.Contains(t, string(data), "themectl Configuration")
}
