package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/maloquacious/dbseed/internal/store"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(New(), "")
	require.NoError(t, err)

	assert.Equal(t, store.DefaultURL, cfg.DatabaseURL)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, 5000, cfg.BusyTimeout)
}

func TestLoadEnv(t *testing.T) {
	t.Setenv("DBSEED_DB", "sqlite:teststore")
	t.Setenv("DBSEED_LOG_LEVEL", "debug")
	t.Setenv("DBSEED_SQLITE_BUSY_TIMEOUT", "250")

	cfg, err := Load(New(), "")
	require.NoError(t, err)

	assert.Equal(t, "sqlite:teststore", cfg.DatabaseURL)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 250, cfg.BusyTimeout)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dbseed.yaml")
	contents := "db: sqlite://from-file.db\nlog:\n  format: json\n"
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))

	cfg, err := Load(New(), path)
	require.NoError(t, err)

	assert.Equal(t, "sqlite://from-file.db", cfg.DatabaseURL)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(New(), filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestBindFlags(t *testing.T) {
	v := New()
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("db", store.DefaultURL, "")
	require.NoError(t, BindFlags(v, flags, map[string]string{KeyDatabaseURL: "db"}))
	require.NoError(t, flags.Parse([]string{"--db", "sqlite:flagged.db"}))

	cfg, err := Load(v, "")
	require.NoError(t, err)
	assert.Equal(t, "sqlite:flagged.db", cfg.DatabaseURL)

	err = BindFlags(v, flags, map[string]string{KeyLogLevel: "log-level"})
	assert.Error(t, err)
}

func TestLoadRejectsNegativeBusyTimeout(t *testing.T) {
	v := New()
	v.Set(KeyBusyTimeout, -1)

	_, err := Load(v, "")
	assert.Error(t, err)
}
