package config

import (
	"fmt"
	"path/filepath"
	"reflect"
	"strings"

	"booktracker/core/database"
	"booktracker/core/logger"
	"booktracker/core/server"
	"booktracker/core/storage"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config is the full application configuration, one section per subsystem.
type Config struct {
	Server   server.Config   `mapstructure:"server"`
	Database database.Config `mapstructure:"database"`
	// Exports are disabled when no client can be built from Storage.
	Storage storage.Config `mapstructure:"storage"`
	Log     logger.Config  `mapstructure:"log"`
}

// LoadConfig reads the configuration for the process.
//
// A .env file in dir, when present, is loaded into the environment first and
// wins over variables already set. Keys map to variables as SECTION_KEY, for
// example DATABASE_DRIVER or STORAGE_BUCKET.
func LoadConfig(dir string) (*Config, error) {
	// Missing .env is the normal production case.
	_ = godotenv.Overload(filepath.Join(dir, ".env"))

	v := viper.New()
	registerDefaults(v, reflect.TypeOf(Config{}), "")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects settings the server cannot start with.
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case database.DriverMySQL, database.DriverSQLite:
	default:
		return fmt.Errorf("invalid database driver %q", c.Database.Driver)
	}
	if len(c.Server.Schemes()) == 0 {
		return fmt.Errorf("no supported auth scheme in %q", c.Server.AuthSchemes)
	}
	if c.Storage.Bucket == "" {
		return fmt.Errorf("storage bucket must not be empty")
	}
	return nil
}

// registerDefaults walks t and sets a viper default for every mapstructure
// key. Every key must be registered, even with an empty default, or
// AutomaticEnv will not pick it up during Unmarshal.
func registerDefaults(v *viper.Viper, t reflect.Type, prefix string) {
	for _, field := range reflect.VisibleFields(t) {
		name := field.Tag.Get("mapstructure")
		if name == "" {
			continue
		}
		key := name
		if prefix != "" {
			key = prefix + "." + name
		}
		if field.Type.Kind() == reflect.Struct {
			registerDefaults(v, field.Type, key)
			continue
		}
		v.SetDefault(key, field.Tag.Get("default"))
	}
}
