package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadFrom(t *testing.T, dir string) *Config {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	cfg, err := Load()
	require.NoError(t, err)
	return cfg
}

func TestLoad_Defaults(t *testing.T) {
	cfg := loadFrom(t, t.TempDir())

	assert.Equal(t, "data/sample_pois.csv", cfg.Dataset.Source)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 11.0, cfg.Map.Zoom)
	assert.Equal(t, 30.0, cfg.Map.Pitch)
	assert.Equal(t, 0.0, cfg.Map.Bearing)
	assert.Equal(t, "No data to display.", cfg.Map.EmptyMessage)
	assert.Equal(t, "hexviz.db", cfg.Store.Path)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("HEXVIZ_SERVER_PORT", "9090")
	t.Setenv("HEXVIZ_DATASET_SOURCE", "https://example.com/cells.csv")
	t.Setenv("HEXVIZ_LOG_LEVEL", "debug")

	cfg := loadFrom(t, t.TempDir())

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "https://example.com/cells.csv", cfg.Dataset.Source)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoad_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	yaml := "server:\n  port: 7070\nmap:\n  zoom: 9\n"
	require.NoError(t, os.WriteFile(dir+"/config.yaml", []byte(yaml), 0o644))

	cfg := loadFrom(t, dir)

	assert.Equal(t, 7070, cfg.Server.Port)
	assert.Equal(t, 9.0, cfg.Map.Zoom)
	// Untouched keys keep defaults.
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestDatasetConfig_Timeout(t *testing.T) {
	cfg := DatasetConfig{TimeoutSecs: 45}
	assert.Equal(t, "45s", cfg.Timeout().String())
}

func TestInitLogger_BadLevel(t *testing.T) {
	err := InitLogger(LogConfig{Level: "nope", Format: "json"})
	assert.Error(t, err)
}
