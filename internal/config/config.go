package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"github.com/tgienger/dispatch/internal/db"
)

// Config holds all configuration for the application.
// The mapstructure tags are used by Viper to unmarshal the data.
type Config struct {
	DBPath   string `mapstructure:"db_path" validate:"required"`
	LogPath  string `mapstructure:"log_path" validate:"required"`
	LogLevel string `mapstructure:"log_level" validate:"oneof=debug info warn error"`
}

// EnvPrefix prefixes every environment variable, e.g. DISPATCH_DB_PATH
const EnvPrefix = "DISPATCH"

// Load reads configuration from defaults, an optional config file,
// DISPATCH_* environment variables and whatever v already has bound
// (command-line flags). configFile may be empty.
func Load(v *viper.Viper, configFile string) (*Config, error) {
	dbPath, err := db.DefaultPath()
	if err != nil {
		return nil, fmt.Errorf("config: default db path: %w", err)
	}

	v.SetDefault("db_path", dbPath)
	v.SetDefault("log_path", "")
	v.SetDefault("log_level", "info")

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		if dir, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(filepath.Join(dir, "dispatch"))
		}
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		// A missing default config file is fine, an explicit one is not
		if !errors.As(err, &notFound) || configFile != "" {
			return nil, fmt.Errorf("config: read: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}

	cfg.LogLevel = strings.ToLower(cfg.LogLevel)
	if cfg.LogPath == "" && cfg.DBPath != "" {
		cfg.LogPath = filepath.Join(filepath.Dir(cfg.DBPath), "dispatch.log")
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}
