// Package config loads application configuration from defaults, an optional
// config file and PETPAL_* environment variables.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Storage StorageConfig
	Logging LoggingConfig
}

// StorageConfig selects and locates the key-value backend.
type StorageConfig struct {
	Driver string // sqlite, file or memory
	Path   string // db file for sqlite, root dir for file
}

// LoggingConfig controls the zap logger.
type LoggingConfig struct {
	Level  string
	Format string // json or console
}

// Load reads configuration. An optional petpal.yaml next to the binary is
// honored; environment variables win over it.
func Load() (*Config, error) {
	v := viper.New()

	v.SetDefault("storage.driver", "sqlite")
	v.SetDefault("storage.path", "petpal.db")
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")

	v.SetConfigName("petpal")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	v.SetEnvPrefix("PETPAL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := &Config{
		Storage: StorageConfig{
			Driver: v.GetString("storage.driver"),
			Path:   v.GetString("storage.path"),
		},
		Logging: LoggingConfig{
			Level:  v.GetString("logging.level"),
			Format: v.GetString("logging.format"),
		},
	}
	return cfg, nil
}
