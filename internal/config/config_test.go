package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/specialistvlad/modelbind/internal/fault"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "data", cfg.DataDir)
	assert.Equal(t, "scripts", cfg.ScriptsDir)
	assert.Equal(t, ".txt", cfg.DataExt)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, ",", cfg.DecimalSeparator)
	assert.Equal(t, " ", cfg.GroupingSeparator)
	assert.Equal(t, ":8080", cfg.ListenAddr)
	assert.Empty(t, cfg.WidgetURL)
}

func TestLoad_Precedence(t *testing.T) {
	// --- Arrange ---
	t.Setenv("MODELBIND_DATA_DIR", "/env/data")
	t.Setenv("MODELBIND_LOG_LEVEL", "debug")

	path := filepath.Join(t.TempDir(), "modelbind.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log_level: warn\ndecimal_separator: \".\"\ngrouping_separator: \",\"\n"), 0o600))

	// --- Act ---
	cfg, err := Load(path)

	// --- Assert ---
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "/env/data", cfg.DataDir, "environment beats defaults")
	assert.Equal(t, "warn", cfg.LogLevel, "file beats environment")
	assert.Equal(t, "1,234.5", cfg.NumberFormat().Format(1234.5))
}

func TestLoad_FileErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := Load(filepath.Join(dir, "missing.yaml"))
	assert.ErrorIs(t, err, fault.ErrIO)

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("no_such_key: 1\n"), 0o600))
	_, err = Load(bad)
	assert.ErrorIs(t, err, fault.ErrConfig)
}

func TestValidate(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	cfg.LogLevel = "LOUD"
	cfg.WidgetURL = "not a url"
	cfg.GroupingSeparator = ","

	err = cfg.Validate()
	require.ErrorIs(t, err, fault.ErrConfig)
	assert.Contains(t, err.Error(), "LogLevel")
	assert.Contains(t, err.Error(), "WidgetURL")
	assert.Contains(t, err.Error(), "DecimalSeparator")
}
