package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

type Config struct {
	LogDir     string `koanf:"log_dir"`     // where the randomizer writes its logs
	DataDir    string `koanf:"data_dir"`    // default folder for .tdat files
	SpritesDir string `koanf:"sprites_dir"` // pokemon sprites, <id>.png
	GameName   string `koanf:"game_name"`   // rom being played, used to auto-detect the log
	GameOver   bool   `koanf:"game_over"`
	Language   string `koanf:"language"`   // "english", "spanish" or "french"
	Icons      string `koanf:"icons"`      // "nerd", "unicode", or "none"
	ThemeFile  string `koanf:"theme_file"` // YAML colour overrides
	AutoDetect *bool  `koanf:"auto_detect"`
	Notify     bool   `koanf:"notify"` // desktop notification when a new log shows up

	Logging LoggingConfig `koanf:"logging"`
}

// LoggingConfig holds the log file settings.
type LoggingConfig struct {
	Level      string `koanf:"level"` // "debug", "info", "warn" or "error" (default: "info")
	File       string `koanf:"file"`  // default: xdg state dir
	MaxSizeMB  int    `koanf:"max_size_mb"`
	MaxBackups int    `koanf:"max_backups"`
}

func Load() (*Config, error) {
	return LoadFrom(getConfigPaths()...)
}

// LoadFrom reads the config files that exist among paths; later files
// override earlier ones.
func LoadFrom(paths ...string) (*Config, error) {
	k := koanf.New(".")

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
				return nil, err
			}
		}
	}

	cfg := &Config{
		Language: "english",
		Icons:    "unicode",
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}

	cfg.LogDir = expandPath(cfg.LogDir)
	cfg.DataDir = expandPath(cfg.DataDir)
	cfg.SpritesDir = expandPath(cfg.SpritesDir)
	cfg.ThemeFile = expandPath(cfg.ThemeFile)
	cfg.Logging.File = expandPath(cfg.Logging.File)
	cfg.Language = strings.ToLower(strings.TrimSpace(cfg.Language))

	return cfg, nil
}

func getConfigPaths() []string {
	paths := []string{}

	// 1. ~/.config/dexlog/config.toml
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "dexlog", "config.toml"))
	}

	// 2. ./config.toml (pwd, highest priority)
	paths = append(paths, "config.toml")

	return paths
}

func expandPath(path string) string {
	if path != "" && path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}

// AutoDetectEnabled reports whether the log is found from the game name
// (default: true when a log dir and game name are set).
func (c *Config) AutoDetectEnabled() bool {
	if c.LogDir == "" || c.GameName == "" {
		return false
	}
	return c.AutoDetect == nil || *c.AutoDetect
}

// GetLoggingConfig returns the logging configuration with defaults applied.
func (c *Config) GetLoggingConfig() LoggingConfig {
	cfg := c.Logging

	switch strings.ToLower(cfg.Level) {
	case "debug", "info", "warn", "error":
		cfg.Level = strings.ToLower(cfg.Level)
	default:
		cfg.Level = "info"
	}
	if cfg.MaxSizeMB <= 0 {
		cfg.MaxSizeMB = 5
	}
	if cfg.MaxBackups <= 0 {
		cfg.MaxBackups = 3
	}

	return cfg
}
