// Package config resolves settings from defaults, an optional YAML file,
// RECIPES_* environment variables and command-line flags, in that order of
// precedence (last wins).
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	envPrefix = "RECIPES"
	appDir    = "recipes"
)

// Config is the resolved application configuration.
type Config struct {
	Store   StoreConfig   `mapstructure:"store"`
	IDs     string        `mapstructure:"ids"`
	UI      UIConfig      `mapstructure:"ui"`
	Log     LogConfig     `mapstructure:"log"`
	Metrics MetricsConfig `mapstructure:"metrics"`

	// File is the config file that was read, if any.
	File string `mapstructure:"-"`
}

type StoreConfig struct {
	Driver      string   `mapstructure:"driver"`
	Key         string   `mapstructure:"key"`
	Dir         string   `mapstructure:"dir"`
	SQLitePath  string   `mapstructure:"sqlite_path"`
	PostgresDSN string   `mapstructure:"postgres_dsn"`
	S3          S3Config `mapstructure:"s3"`
}

type S3Config struct {
	Bucket          string `mapstructure:"bucket"`
	Region          string `mapstructure:"region"`
	Endpoint        string `mapstructure:"endpoint"`
	Prefix          string `mapstructure:"prefix"`
	PathStyle       bool   `mapstructure:"path_style"`
	AccessKeyID     string `mapstructure:"access_key_id"`
	SecretAccessKey string `mapstructure:"secret_access_key"`
}

type UIConfig struct {
	Theme string `mapstructure:"theme"` // classic | neon | mono
	Color string `mapstructure:"color"` // auto | always | never
}

type LogConfig struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"`
}

type MetricsConfig struct {
	Textfile string `mapstructure:"textfile"`
}

// DataDir is where the file and sqlite drivers keep data by default:
// $XDG_DATA_HOME/recipes, else ~/.local/share/recipes, else the working directory.
func DataDir() string {
	if d := os.Getenv("XDG_DATA_HOME"); d != "" {
		return filepath.Join(d, appDir)
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".local", "share", appDir)
	}
	return "."
}

func setDefaults(v *viper.Viper) {
	dataDir := DataDir()
	v.SetDefault("store.driver", "file")
	v.SetDefault("store.key", "recipes")
	v.SetDefault("store.dir", dataDir)
	v.SetDefault("store.sqlite_path", filepath.Join(dataDir, "recipes.db"))
	v.SetDefault("store.postgres_dsn", "")
	v.SetDefault("store.s3.bucket", "")
	v.SetDefault("store.s3.region", "us-east-1")
	v.SetDefault("store.s3.endpoint", "")
	v.SetDefault("store.s3.prefix", "")
	v.SetDefault("store.s3.path_style", false)
	v.SetDefault("store.s3.access_key_id", "")
	v.SetDefault("store.s3.secret_access_key", "")
	v.SetDefault("ids", "clock")
	v.SetDefault("ui.theme", "classic")
	v.SetDefault("ui.color", "auto")
	v.SetDefault("log.level", "warn")
	v.SetDefault("log.file", "")
	v.SetDefault("metrics.textfile", "")
}

// FlagKeys maps persistent flag names onto config keys.
var FlagKeys = map[string]string{
	"driver":       "store.driver",
	"data-dir":     "store.dir",
	"key":          "store.key",
	"ids":          "ids",
	"theme":        "ui.theme",
	"color":        "ui.color",
	"log-level":    "log.level",
	"log-file":     "log.file",
	"metrics-file": "metrics.textfile",
}

// Load resolves the configuration. configFile may be empty, in which case
// the default locations are tried and a missing file is not an error.
// flags may be nil.
func Load(configFile string, flags *pflag.FlagSet) (Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		if d := os.Getenv("XDG_CONFIG_HOME"); d != "" {
			v.AddConfigPath(filepath.Join(d, appDir))
		} else if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", appDir))
		}
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	if flags != nil {
		for name, key := range FlagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return Config{}, fmt.Errorf("bind flag %s: %w", name, err)
				}
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	cfg.File = v.ConfigFileUsed()
	return cfg, cfg.Validate()
}

// Validate checks enumerated settings.
func (c Config) Validate() error {
	switch strings.ToLower(c.UI.Color) {
	case "auto", "always", "never":
	default:
		return fmt.Errorf("ui.color must be auto, always or never, got %q", c.UI.Color)
	}
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("log.level must be debug, info, warn or error, got %q", c.Log.Level)
	}
	return nil
}
