package config

import (
	"fmt"
	"strings"

	"github.com/maloquacious/dbseed/internal/store"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	EnvPrefix = "DBSEED"

	KeyDatabaseURL = "db"
	KeyLogLevel    = "log.level"
	KeyLogFormat   = "log.format"
	KeyBusyTimeout = "sqlite.busy_timeout"
)

// Config holds dbseed runtime configuration.
type Config struct {
	DatabaseURL string
	LogLevel    string
	LogFormat   string
	// BusyTimeout is the SQLite busy_timeout in milliseconds.
	BusyTimeout int
}

// New returns a viper instance with defaults and environment binding.
// DBSEED_DB, DBSEED_LOG_LEVEL, DBSEED_LOG_FORMAT and DBSEED_SQLITE_BUSY_TIMEOUT override the defaults.
func New() *viper.Viper {
	v := viper.New()
	v.SetDefault(KeyDatabaseURL, store.DefaultURL)
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyLogFormat, "text")
	v.SetDefault(KeyBusyTimeout, 5000)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// BindFlags binds command line flags to config keys.
// The map is keyed by config key with the flag name as value.
func BindFlags(v *viper.Viper, flags *pflag.FlagSet, names map[string]string) error {
	for key, name := range names {
		f := flags.Lookup(name)
		if f == nil {
			return fmt.Errorf("flag %q not defined", name)
		}
		if err := v.BindPFlag(key, f); err != nil {
			return fmt.Errorf("failed to bind flag %q: %w", name, err)
		}
	}
	return nil
}

// Load reads an optional config file and returns the resolved configuration.
func Load(v *viper.Viper, configFile string) (*Config, error) {
	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", configFile, err)
		}
	}

	cfg := &Config{
		DatabaseURL: v.GetString(KeyDatabaseURL),
		LogLevel:    v.GetString(KeyLogLevel),
		LogFormat:   v.GetString(KeyLogFormat),
		BusyTimeout: v.GetInt(KeyBusyTimeout),
	}
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("config %q must not be empty", KeyDatabaseURL)
	}
	if cfg.BusyTimeout < 0 {
		return nil, fmt.Errorf("config %q must not be negative", KeyBusyTimeout)
	}
	return cfg, nil
}
