package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chdir moves into an empty directory so no stray config or .env is read.
func chdir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	return dir
}

func TestLoadDefaults(t *testing.T) {
	chdir(t)

	cfg, err := Load("", nil)
	require.NoError(t, err)
	assert.Equal(t, "./data", cfg.DataDir)
	assert.Equal(t, ":8080", cfg.ListenAddr)
	assert.Equal(t, []string{"http://localhost:3000", "http://localhost:8080"}, cfg.CORSOrigins)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, "0 3 * * *", cfg.MaintenanceSchedule)
	assert.Empty(t, cfg.ConfigFile)
}

func TestLoadConfigFile(t *testing.T) {
	dir := chdir(t)
	path := filepath.Join(dir, "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("data_dir: /var/lib/assetcompass\nlisten_addr: \":9090\"\nseed: true\n"), 0o600))

	cfg, err := Load(path, nil)
	require.NoError(t, err)
	assert.Equal(t, "/var/lib/assetcompass", cfg.DataDir)
	assert.Equal(t, ":9090", cfg.ListenAddr)
	assert.True(t, cfg.Seed)
	assert.Equal(t, path, cfg.ConfigFile)
}

func TestLoadDiscoversDefaultConfigFile(t *testing.T) {
	dir := chdir(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "assetcompass.yaml"), []byte("listen_addr: \":7070\"\n"), 0o600))

	cfg, err := Load("", nil)
	require.NoError(t, err)
	assert.Equal(t, ":7070", cfg.ListenAddr)
}

func TestLoadMissingExplicitFileFails(t *testing.T) {
	chdir(t)
	_, err := Load("does-not-exist.yaml", nil)
	assert.Error(t, err)
}

func TestEnvOverridesFile(t *testing.T) {
	dir := chdir(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "assetcompass.yaml"), []byte("data_dir: from-file\n"), 0o600))
	t.Setenv("ASSETCOMPASS_DATA_DIR", "from-env")
	t.Setenv("ASSETCOMPASS_CORS_ORIGINS", "https://inventory.example.com")
	t.Setenv("ASSETCOMPASS_MAINTENANCE_SCHEDULE", "@hourly")

	cfg, err := Load("", nil)
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.DataDir)
	assert.Equal(t, []string{"https://inventory.example.com"}, cfg.CORSOrigins)
	assert.Equal(t, "@hourly", cfg.MaintenanceSchedule)
}

func TestValidate(t *testing.T) {
	cfg := &Config{DataDir: "d", ListenAddr: ":1"}
	assert.NoError(t, cfg.Validate())

	cfg.DataDir = " "
	assert.Error(t, cfg.Validate())

	cfg = &Config{DataDir: "d", ListenAddr: ":1", ShutdownTimeout: -time.Second}
	assert.Error(t, cfg.Validate())
}

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, SplitList(" a, ,b ,"))
	assert.Nil(t, SplitList(""))
}
