package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(dir, "data"))
	return dir
}

func TestDefaults(t *testing.T) {
	dir := isolate(t)
	cfg, err := Load("", nil)
	require.NoError(t, err)

	assert.Equal(t, "file", cfg.Store.Driver)
	assert.Equal(t, "recipes", cfg.Store.Key)
	assert.Equal(t, filepath.Join(dir, "data", "recipes"), cfg.Store.Dir)
	assert.Equal(t, filepath.Join(dir, "data", "recipes", "recipes.db"), cfg.Store.SQLitePath)
	assert.Equal(t, "us-east-1", cfg.Store.S3.Region)
	assert.Equal(t, "clock", cfg.IDs)
	assert.Equal(t, "classic", cfg.UI.Theme)
	assert.Equal(t, "auto", cfg.UI.Color)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Empty(t, cfg.File)
}

func TestFileThenEnvThenFlags(t *testing.T) {
	dir := isolate(t)
	cfgDir := filepath.Join(dir, "config", "recipes")
	require.NoError(t, os.MkdirAll(cfgDir, 0o755))
	yml := `store:
  driver: sqlite
  key: kitchen
  s3:
    bucket: from-file
    path_style: true
ui:
  theme: neon
log:
  level: info
`
	require.NoError(t, os.WriteFile(filepath.Join(cfgDir, "config.yaml"), []byte(yml), 0o644))
	t.Setenv("RECIPES_STORE_KEY", "from-env")
	t.Setenv("RECIPES_UI_THEME", "mono")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("theme", "", "")
	flags.String("log-level", "", "")
	require.NoError(t, flags.Parse([]string{"--log-level", "debug"}))

	cfg, err := Load("", flags)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(cfgDir, "config.yaml"), cfg.File)
	assert.Equal(t, "sqlite", cfg.Store.Driver)
	assert.Equal(t, "from-file", cfg.Store.S3.Bucket)
	assert.True(t, cfg.Store.S3.PathStyle)
	assert.Equal(t, "from-env", cfg.Store.Key)
	assert.Equal(t, "mono", cfg.UI.Theme, "unset flag does not override env")
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestExplicitConfigFile(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("ids: uuid\n"), 0o644))

	cfg, err := Load(path, nil)
	require.NoError(t, err)
	assert.Equal(t, "uuid", cfg.IDs)

	_, err = Load(filepath.Join(dir, "missing.yaml"), nil)
	assert.Error(t, err, "an explicitly named config file must exist")
}

func TestValidate(t *testing.T) {
	isolate(t)
	t.Setenv("RECIPES_UI_COLOR", "sometimes")
	_, err := Load("", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ui.color")

	t.Setenv("RECIPES_UI_COLOR", "never")
	t.Setenv("RECIPES_LOG_LEVEL", "loud")
	_, err = Load("", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "log.level")
}

func TestDataDirFallsBackToHome(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", "")
	home := t.TempDir()
	t.Setenv("HOME", home)
	assert.Equal(t, filepath.Join(home, ".local", "share", "recipes"), DataDir())
}
