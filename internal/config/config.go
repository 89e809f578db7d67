package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
	"gopkg.in/yaml.v3"
)

// LocalConfigName is looked up in the working directory before the app dir
const LocalConfigName = "mov2mp4.yaml"

// Config represents the application configuration
type Config struct {
	Paths    PathsConfig    `yaml:"paths"`
	Defaults DefaultsConfig `yaml:"defaults"`
	Log      LogConfig      `yaml:"log"`
}

// PathsConfig holds directory and binary locations
type PathsConfig struct {
	InputDir   string `yaml:"input_dir" env:"MOV2MP4_INPUT_DIR, overwrite" validate:"required"`
	OutputDir  string `yaml:"output_dir" env:"MOV2MP4_OUTPUT_DIR, overwrite" validate:"required"`
	FFmpeg     string `yaml:"ffmpeg" env:"MOV2MP4_FFMPEG, overwrite"`
	BundledDir string `yaml:"bundled_dir" env:"MOV2MP4_BUNDLED_DIR, overwrite" validate:"required"`
}

// DefaultsConfig holds default behavior
type DefaultsConfig struct {
	DeleteSources bool   `yaml:"delete_sources" env:"MOV2MP4_DELETE_SOURCES, overwrite"`
	TickInterval  string `yaml:"tick_interval" env:"MOV2MP4_TICK_INTERVAL, overwrite" validate:"required"`
}

// LogConfig controls the diagnostic log file
type LogConfig struct {
	File      string `yaml:"file" env:"MOV2MP4_LOG_FILE, overwrite"`
	Level     string `yaml:"level" env:"MOV2MP4_LOG_LEVEL, overwrite" validate:"oneof=debug info warn warning error"`
	MaxSizeMB int    `yaml:"max_size_mb" validate:"gte=1"`
	MaxAge    string `yaml:"max_age" validate:"required"`
}

// DefaultConfig returns configuration with default values
func DefaultConfig() *Config {
	return &Config{
		Paths: PathsConfig{
			InputDir:   "mov",
			OutputDir:  "mp4",
			FFmpeg:     "",
			BundledDir: filepath.Join("bin", "ffmpeg"),
		},
		Defaults: DefaultsConfig{
			DeleteSources: false,
			TickInterval:  "100ms",
		},
		Log: LogConfig{
			File:      filepath.Join(AppDir(), "mov2mp4.log"),
			Level:     "info",
			MaxSizeMB: 10,
			MaxAge:    "7d",
		},
	}
}

// AppDir returns the application directory (~/.mov2mp4)
func AppDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".mov2mp4"
	}
	return filepath.Join(home, ".mov2mp4")
}

// ConfigPath returns the config file path in the app dir
func ConfigPath() string {
	return filepath.Join(AppDir(), "config.yaml")
}

// ResolvePath picks the config file to use: explicit wins, then a
// mov2mp4.yaml in the working directory, then the app dir.
func ResolvePath(explicit string) string {
	if explicit != "" {
		return explicit
	}
	if _, err := os.Stat(LocalConfigName); err == nil {
		return LocalConfigName
	}
	return ConfigPath()
}

// Load reads config from file, returns default if not exists
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, err
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return cfg, nil
}

// LoadWithEnv loads the config file, then applies a .env file from the
// working directory and MOV2MP4_* environment variables on top, and
// validates the result.
func LoadWithEnv(ctx context.Context, path string) (*Config, error) {
	cfg, err := Load(path)
	if err != nil {
		return nil, err
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to read .env: %w", err)
	}

	if err := ApplyEnv(ctx, cfg, envconfig.OsLookuper()); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyEnv overlays environment values from lookuper onto cfg
func ApplyEnv(ctx context.Context, cfg *Config, lookuper envconfig.Lookuper) error {
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   cfg,
		Lookuper: lookuper,
	}); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// Validate checks field constraints and that durations parse
func (c *Config) Validate() error {
	// ParseLogLevel is case-insensitive, so is the level check
	c.Log.Level = strings.ToLower(c.Log.Level)
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	tick, err := c.GetTickInterval()
	if err != nil {
		return fmt.Errorf("invalid config: tick_interval: %w", err)
	}
	if tick <= 0 {
		return fmt.Errorf("invalid config: tick_interval must be positive")
	}
	if _, err := c.GetLogMaxAge(); err != nil {
		return fmt.Errorf("invalid config: log.max_age: %w", err)
	}
	return nil
}

// Save writes config to file
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := c.Marshal()
	if err != nil {
		return err
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Marshal renders the config as YAML
func (c *Config) Marshal() ([]byte, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config: %w", err)
	}
	return data, nil
}

// GetTickInterval returns the progress tick interval as a duration
func (c *Config) GetTickInterval() (time.Duration, error) {
	return ParseDuration(c.Defaults.TickInterval)
}

// GetLogMaxAge returns how long rotated log files are kept
func (c *Config) GetLogMaxAge() (time.Duration, error) {
	return ParseDuration(c.Log.MaxAge)
}

var durationPattern = regexp.MustCompile(`^(\d+)(ms|s|m|h|d)$`)

// ParseDuration parses duration strings like "100ms", "24h", "7d"
func ParseDuration(s string) (time.Duration, error) {
	matches := durationPattern.FindStringSubmatch(s)
	if len(matches) != 3 {
		return 0, fmt.Errorf("invalid duration format: %s (use format like 100ms, 24h, 7d)", s)
	}

	value, _ := strconv.Atoi(matches[1])
	unit := matches[2]

	switch unit {
	case "ms":
		return time.Duration(value) * time.Millisecond, nil
	case "s":
		return time.Duration(value) * time.Second, nil
	case "m":
		return time.Duration(value) * time.Minute, nil
	case "h":
		return time.Duration(value) * time.Hour, nil
	case "d":
		return time.Duration(value) * 24 * time.Hour, nil
	default:
		return 0, fmt.Errorf("unknown duration unit: %s", unit)
	}
}
