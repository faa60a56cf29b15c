// Package config loads curveforge settings from defaults, a YAML file,
// CURVEFORGE_* environment variables and command-line flags, in increasing
// order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/roach88/curveforge/internal/ctxlog"
)

const (
	configName = "curveforge"
	envPrefix  = "curveforge"
)

// Config is the resolved runtime configuration of the CLI.
type Config struct {
	DB     string    `mapstructure:"db" yaml:"db" json:"db"`
	Format string    `mapstructure:"format" yaml:"format" json:"format"`
	Log    LogConfig `mapstructure:"log" yaml:"log" json:"log"`
}

// LogConfig selects the slog level and handler.
type LogConfig struct {
	Level  string `mapstructure:"level" yaml:"level" json:"level"`
	Format string `mapstructure:"format" yaml:"format" json:"format"`
}

// Defaults returns the built-in values, keyed by viper path.
func Defaults() map[string]any {
	return map[string]any{
		"db":         "curveforge.db",
		"format":     "text",
		"log.level":  "warn",
		"log.format": "text",
	}
}

// DefaultConfig returns Defaults as a Config value.
func DefaultConfig() Config {
	return Config{
		DB:     "curveforge.db",
		Format: "text",
		Log:    LogConfig{Level: "warn", Format: "text"},
	}
}

// Validate reports the first setting outside its allowed values.
func (c Config) Validate() error {
	if c.DB == "" {
		return errors.New("db must not be empty")
	}
	if c.Format != "text" && c.Format != "json" {
		return fmt.Errorf("format %q must be text or json", c.Format)
	}
	if !slices.Contains(ctxlog.Levels, strings.ToLower(c.Log.Level)) {
		return fmt.Errorf("log.level %q must be one of %v", c.Log.Level, ctxlog.Levels)
	}
	if !slices.Contains(ctxlog.Formats, strings.ToLower(c.Log.Format)) {
		return fmt.Errorf("log.format %q must be one of %v", c.Log.Format, ctxlog.Formats)
	}
	return nil
}

// UserConfigPath returns the per-user configuration file path.
func UserConfigPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("could not get user config directory: %w", err)
	}
	return filepath.Join(dir, configName, configName+".yaml"), nil
}

// FlagKey maps a flag name to its viper key: "log-level" becomes "log.level".
func FlagKey(flagName string) string {
	return strings.ReplaceAll(flagName, "-", ".")
}

// Load resolves a T from defaults, the configuration file, the environment
// and flags. An explicit configFile must exist; otherwise curveforge.yaml is
// searched for in the working directory and the user config directory, and
// its absence is not an error. Only flags the user actually set override
// lower layers.
func Load[T any](flags *pflag.FlagSet, defaults map[string]any, configFile string) (T, error) {
	var c T
	v := viper.New()

	// 1. Defaults
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	// 2. Configuration file
	v.SetConfigType("yaml")
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName(configName)
		v.AddConfigPath(".")
		if userPath, err := UserConfigPath(); err == nil {
			v.AddConfigPath(filepath.Dir(userPath))
		}
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return c, fmt.Errorf("read config: %w", err)
		}
	}

	// 3. Environment
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// 4. Flags
	if flags != nil {
		var bindErr error
		flags.VisitAll(func(f *pflag.Flag) {
			if bindErr == nil {
				bindErr = v.BindPFlag(FlagKey(f.Name), f)
			}
		})
		if bindErr != nil {
			return c, fmt.Errorf("bind flags: %w", bindErr)
		}
	}

	if err := v.Unmarshal(&c); err != nil {
		return c, fmt.Errorf("decode config: %w", err)
	}
	return c, nil
}

// WriteFile writes c as YAML to path, creating parent directories.
func WriteFile[T any](c *T, path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("could not create config directory %s: %w", dir, err)
	}
	return os.WriteFile(path, data, 0o644)
}
