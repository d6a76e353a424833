// Package config provides application configuration management with support
// for environment variables, command-line flags, and .env files.
package config

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Config holds the reader configuration.
type Config struct {
	App      AppConfig
	Logger   LoggerConfig
	Storage  StorageConfig
	Reader   ReaderConfig
	Viewport ViewportConfig
	UI       UIConfig
}

// AppConfig holds application-level configuration.
type AppConfig struct {
	Environment string
}

// LoggerConfig holds logging configuration.
type LoggerConfig struct {
	Level string
}

// StorageConfig holds persistent store configuration.
type StorageConfig struct {
	// DataPath is the directory for the primary key-value store.
	DataPath string
	// LegacyPath points at an old-format database to read stored documents
	// from. Empty disables the legacy fallback.
	LegacyPath string
}

// ReaderConfig holds per-document state and statistics tuning.
type ReaderConfig struct {
	// SaveDebounce is the trailing window coalescing state writes (default: 500ms).
	SaveDebounce time.Duration
	// StatsFlushInterval is how often reading activity is folded into the
	// session history (default: 1m).
	StatsFlushInterval time.Duration
	// SessionRetentionDays bounds session history (default: 90).
	SessionRetentionDays int
}

// ViewportConfig holds zoom bounds.
type ViewportConfig struct {
	MinZoom  float64
	MaxZoom  float64
	ZoomStep float64
}

// UIConfig holds immersive-mode tuning.
type UIConfig struct {
	// IdleHideDelay is how long the chrome stays up after the last activity
	// (default: 3s).
	IdleHideDelay time.Duration
}

// LoadConfig loads configuration from multiple sources with precedence:
// 1. Command-line flags (highest priority).
// 2. Environment variables.
// 3. .env file.
// 4. Default values (lowest priority).
//
// args is the flag slice to parse, normally os.Args[1:]; pass nil to skip
// the flag layer (embedding callers that own their own CLI surface).
func LoadConfig(args []string) (*Config, error) {
	fs := flag.NewFlagSet("codex", flag.ContinueOnError)

	env := fs.String("env", "", "Environment (development, staging, production)")
	logLevel := fs.String("log-level", "", "Log level (debug, info, warn, error)")
	dataPath := fs.String("data-path", "", "Directory for the document store")
	legacyPath := fs.String("legacy-path", "", "Path to a legacy-format database (optional)")

	saveDebounce := fs.String("save-debounce", "", "State save debounce window (default: 500ms)")
	statsInterval := fs.String("stats-interval", "", "Reading statistics flush interval (default: 1m)")
	retentionDays := fs.String("stats-retention-days", "", "Days of session history to keep (default: 90)")

	idleHideDelay := fs.String("idle-hide-delay", "", "Idle delay before the UI chrome hides (default: 3s)")

	envFile := fs.String("env-file", ".env", "Path to .env file")

	if args != nil {
		if err := fs.Parse(args); err != nil {
			return nil, err
		}
	}

	// Load .env file if it exists (silently ignore if not found).
	_ = loadEnvFile(*envFile)

	cfg := &Config{
		App: AppConfig{
			Environment: getConfigValue(*env, "ENV", "development"),
		},
		Logger: LoggerConfig{
			Level: getConfigValue(*logLevel, "LOG_LEVEL", "info"),
		},
		Storage: StorageConfig{
			DataPath:   getConfigValue(*dataPath, "DATA_PATH", ""),
			LegacyPath: getConfigValue(*legacyPath, "LEGACY_DB_PATH", ""),
		},
		Reader: ReaderConfig{
			SessionRetentionDays: getIntConfigValue(*retentionDays, "STATS_RETENTION_DAYS", 90),
		},
		Viewport: ViewportConfig{
			MinZoom:  getFloatConfigValue("", "VIEWPORT_MIN_ZOOM", 0.5),
			MaxZoom:  getFloatConfigValue("", "VIEWPORT_MAX_ZOOM", 3.0),
			ZoomStep: getFloatConfigValue("", "VIEWPORT_ZOOM_STEP", 0.25),
		},
	}

	var err error
	cfg.Reader.SaveDebounce, err = getDurationConfigValue(*saveDebounce, "SAVE_DEBOUNCE", "500ms")
	if err != nil {
		return nil, fmt.Errorf("invalid save debounce: %w", err)
	}
	cfg.Reader.StatsFlushInterval, err = getDurationConfigValue(*statsInterval, "STATS_FLUSH_INTERVAL", "1m")
	if err != nil {
		return nil, fmt.Errorf("invalid stats flush interval: %w", err)
	}
	cfg.UI.IdleHideDelay, err = getDurationConfigValue(*idleHideDelay, "IDLE_HIDE_DELAY", "3s")
	if err != nil {
		return nil, fmt.Errorf("invalid idle hide delay: %w", err)
	}

	if err := cfg.expandDataPath(); err != nil {
		return nil, fmt.Errorf("invalid data path: %w", err)
	}
	if err := cfg.expandLegacyPath(); err != nil {
		return nil, fmt.Errorf("invalid legacy database path: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks that all required config values are present and valid.
func (c *Config) Validate() error {
	if c.App.Environment == "" {
		return errors.New("ENV is required")
	}

	validEnvs := map[string]bool{
		"development": true,
		"staging":     true,
		"production":  true,
	}
	if !validEnvs[c.App.Environment] {
		return fmt.Errorf("invalid environment: %s (must be development, staging, or production)", c.App.Environment)
	}

	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[strings.ToLower(c.Logger.Level)] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.Logger.Level)
	}

	if c.Storage.DataPath == "" {
		return errors.New("data path cannot be empty after expansion")
	}

	if c.Reader.SaveDebounce <= 0 {
		return errors.New("save debounce must be positive")
	}
	if c.Reader.StatsFlushInterval <= 0 {
		return errors.New("stats flush interval must be positive")
	}
	if c.Reader.SessionRetentionDays <= 0 {
		return errors.New("stats retention must be positive")
	}

	if c.Viewport.MinZoom <= 0 || c.Viewport.MaxZoom < c.Viewport.MinZoom || c.Viewport.ZoomStep <= 0 {
		return fmt.Errorf("invalid zoom bounds: min %v max %v step %v",
			c.Viewport.MinZoom, c.Viewport.MaxZoom, c.Viewport.ZoomStep)
	}

	return nil
}

// expandPath expands ~ and makes the path absolute.
// If path is empty and defaultPath is provided, uses the default.
func expandPath(path, defaultPath string) (string, error) {
	if path == "" {
		return defaultPath, nil
	}

	if strings.HasPrefix(path, "~/") {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		path = filepath.Join(homeDir, path[2:])
	}

	if !filepath.IsAbs(path) {
		absPath, err := filepath.Abs(path)
		if err != nil {
			return "", fmt.Errorf("failed to get absolute path: %w", err)
		}
		path = absPath
	}

	return filepath.Clean(path), nil
}

// expandDataPath expands ~ and makes the path absolute, defaulting to
// ~/Codex/data.
func (c *Config) expandDataPath() error {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("failed to get home directory: %w", err)
	}
	defaultPath := filepath.Join(homeDir, "Codex", "data")

	expanded, err := expandPath(c.Storage.DataPath, defaultPath)
	if err != nil {
		return err
	}
	c.Storage.DataPath = expanded
	return nil
}

// expandLegacyPath expands ~ and makes the path absolute. Empty stays empty:
// the legacy fallback is optional.
func (c *Config) expandLegacyPath() error {
	if c.Storage.LegacyPath == "" {
		return nil
	}

	expanded, err := expandPath(c.Storage.LegacyPath, "")
	if err != nil {
		return err
	}
	c.Storage.LegacyPath = expanded
	return nil
}

// getConfigValue returns the first non-empty value from flag, env var, or default.
func getConfigValue(flagValue, envKey, defaultValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if envValue := os.Getenv(envKey); envValue != "" {
		return envValue
	}
	return defaultValue
}

// getIntConfigValue is getConfigValue for integers; unparsable values fall
// back to the default.
func getIntConfigValue(flagValue, envKey string, defaultValue int) int {
	raw := getConfigValue(flagValue, envKey, "")
	if raw == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return defaultValue
	}
	return n
}

// getFloatConfigValue is getConfigValue for floats; unparsable values fall
// back to the default.
func getFloatConfigValue(flagValue, envKey string, defaultValue float64) float64 {
	raw := getConfigValue(flagValue, envKey, "")
	if raw == "" {
		return defaultValue
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return defaultValue
	}
	return f
}

// getDurationConfigValue is getConfigValue for durations; the default must
// parse, other sources error out when malformed.
func getDurationConfigValue(flagValue, envKey, defaultValue string) (time.Duration, error) {
	raw := getConfigValue(flagValue, envKey, defaultValue)
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid duration %q: %w", raw, err)
	}
	return d, nil
}

// loadEnvFile loads environment variables from a file in KEY=VALUE format.
// Lines starting with # are comments. Does not override variables that are
// already set.
func loadEnvFile(path string) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		key, value, found := strings.Cut(line, "=")
		if !found {
			continue
		}

		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)
		value = strings.Trim(value, `"'`)

		if os.Getenv(key) == "" {
			os.Setenv(key, value)
		}
	}

	return scanner.Err()
}
