// Package config loads runtime settings from defaults, an optional config
// file, a .env file, WEBPRGBA_* environment variables and bound CLI flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/Fl0zWer/PaimbnailsGeode-sub002/internal/codec"
)

// EnvPrefix is prepended to every environment variable.
const EnvPrefix = "WEBPRGBA"

// Config holds the resolved settings.
type Config struct {
	Codec     string `mapstructure:"codec"`
	Quality   int    `mapstructure:"quality"`
	Workers   int    `mapstructure:"workers"`
	Listen    string `mapstructure:"listen"`
	LogLevel  string `mapstructure:"log_level"`
	LogFormat string `mapstructure:"log_format"`
	MaxBodyMB int    `mapstructure:"max_body_mb"`
	MaxPixels int    `mapstructure:"max_pixels"`

	// QualitySet is true when quality came from a config file, the
	// environment or a changed flag rather than the built-in default.
	QualitySet bool `mapstructure:"-"`
}

// Options controls where Load looks.
type Options struct {
	ConfigFile string         // explicit file; skips the search path
	EnvFile    string         // dotenv file, default ".env"
	Flags      *pflag.FlagSet // flags bound by name, may be nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("codec", codec.BackendAuto)
	v.SetDefault("quality", codec.DefaultQuality)
	v.SetDefault("workers", 0)
	v.SetDefault("listen", ":8080")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "text")
	v.SetDefault("max_body_mb", 32)
	v.SetDefault("max_pixels", 1<<25)
}

// Load resolves the configuration. A missing config or .env file is not
// an error; a malformed one is.
func Load(opts Options) (*Config, error) {
	envFile := opts.EnvFile
	if envFile == "" {
		envFile = ".env"
	}
	// godotenv never overrides variables already in the environment.
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load %s: %w", envFile, err)
	}

	v := viper.New()
	setDefaults(v)

	if opts.ConfigFile != "" {
		v.SetConfigFile(opts.ConfigFile)
	} else {
		v.SetConfigName("webprgba")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home + "/.config/webprgba")
		}
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if opts.ConfigFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if opts.Flags != nil {
		if err := bindFlags(v, opts.Flags); err != nil {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg.QualitySet = explicit(v, opts.Flags, "quality")
	return &cfg, cfg.Validate()
}

// explicit reports whether key was set anywhere other than setDefaults.
func explicit(v *viper.Viper, fs *pflag.FlagSet, key string) bool {
	if v.InConfig(key) {
		return true
	}
	if _, ok := os.LookupEnv(EnvPrefix + "_" + strings.ToUpper(key)); ok {
		return true
	}
	if fs != nil {
		if f := fs.Lookup(strings.ReplaceAll(key, "_", "-")); f != nil && f.Changed {
			return true
		}
	}
	return false
}

// keys that may be set from a flag of the same name (dashes allowed).
var flagKeys = []string{
	"codec", "quality", "workers", "listen",
	"log_level", "log_format", "max_body_mb", "max_pixels",
}

func bindFlags(v *viper.Viper, fs *pflag.FlagSet) error {
	for _, key := range flagKeys {
		f := fs.Lookup(strings.ReplaceAll(key, "_", "-"))
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return fmt.Errorf("bind flag %s: %w", f.Name, err)
		}
	}
	return nil
}

// Validate checks the fields Load cannot express as defaults. Quality is
// left to the codec library.
func (c *Config) Validate() error {
	if c.Workers < 0 {
		return fmt.Errorf("workers must be >= 0, got %d", c.Workers)
	}
	if c.MaxBodyMB <= 0 {
		return fmt.Errorf("max_body_mb must be > 0, got %d", c.MaxBodyMB)
	}
	if c.MaxPixels < 0 {
		return fmt.Errorf("max_pixels must be >= 0, got %d", c.MaxPixels)
	}
	switch strings.ToLower(c.LogFormat) {
	case "text", "json":
	default:
		return fmt.Errorf("log_format must be text or json, got %q", c.LogFormat)
	}
	return nil
}
