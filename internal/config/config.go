package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

const (
	EnvPrefix       = "PRESETDECK"
	DefaultLanguage = "en"
	DefaultLogLevel = "info"
)

// Config holds application configuration
type Config struct {
	Catalog  CatalogConfig
	Database DatabaseConfig
	Log      LogConfig
}

// CatalogConfig selects the built-in catalog and how catalogs are ordered
type CatalogConfig struct {
	BuiltinPath string `mapstructure:"builtin_path"` // empty uses the embedded catalog
	Language    string `mapstructure:"language"`     // BCP 47 collation tag
	Filter      string `mapstructure:"filter"`       // hides presets whose name does not contain it
}

// DatabaseConfig holds sqlite settings
type DatabaseConfig struct {
	Path string `mapstructure:"path"`
}

// LogConfig holds logging settings
type LogConfig struct {
	Level string `mapstructure:"level"`
}

// DefaultDatabasePath is where the user catalog lives unless configured
func DefaultDatabasePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".local", "share", "presetdeck", "presetdeck.db")
}

// FilePath returns the config file location: $PRESETDECK_CONFIG, or
// ~/.config/presetdeck/config.toml.
func FilePath() string {
	if p := os.Getenv(EnvPrefix + "_CONFIG"); p != "" {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".config", "presetdeck", "config.toml")
}

// Load reads configuration from defaults, the optional TOML file and the
// environment. Env var overrides use prefix PRESETDECK_ (e.g.
// PRESETDECK_CATALOG_LANGUAGE).
func Load() (Config, error) {
	v := viper.New()

	v.SetDefault("catalog.builtin_path", "")
	v.SetDefault("catalog.language", DefaultLanguage)
	v.SetDefault("catalog.filter", "")
	v.SetDefault("database.path", DefaultDatabasePath())
	v.SetDefault("log.level", DefaultLogLevel)

	v.SetConfigType("toml")
	v.SetConfigFile(FilePath())

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil && !isMissingFile(err) {
		return Config{}, fmt.Errorf("read config %s: %w", FilePath(), err)
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return c, nil
}

func isMissingFile(err error) bool {
	var notFound viper.ConfigFileNotFoundError
	return errors.As(err, &notFound) || errors.Is(err, os.ErrNotExist)
}

// ParseLevel maps a level name to a slog level. Unknown names are an error.
func ParseLevel(name string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(name))); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid log level %q", name)
	}
	return level, nil
}

// NewLogger builds the text logger shared by a binary. verbose forces debug.
func NewLogger(w io.Writer, level string, verbose bool) (*slog.Logger, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}
	if verbose {
		lvl = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl})), nil
}
