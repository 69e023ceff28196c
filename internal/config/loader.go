package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// ConfigPaths defines the config file search paths in priority order
var ConfigPaths = []string{
	"./.snapgrid.yaml",               // Project-specific config (highest priority)
	"~/.config/snapgrid/config.yaml", // User config
	"/etc/snapgrid/config.yaml",      // System config (lowest priority)
}

// AccessKeyEnv is consulted when no access key is configured anywhere else
const AccessKeyEnv = "UNSPLASH_ACCESS_KEY"

// Loader handles configuration loading with priority merging
type Loader struct {
	configPaths []string
	sources     []string
	warnings    []string
}

// NewLoader creates a new config loader
func NewLoader() *Loader {
	return NewLoaderWithPaths(ConfigPaths...)
}

// NewLoaderWithPaths creates a loader searching paths, highest priority first
func NewLoaderWithPaths(paths ...string) *Loader {
	return &Loader{configPaths: paths}
}

// LoadConfig loads configuration from multiple sources with priority order:
// 1. Command line flags (handled by caller)
// 2. SNAPGRID_* environment variables
// 3. ./.snapgrid.yaml
// 4. ~/.config/snapgrid/config.yaml
// 5. /etc/snapgrid/config.yaml
// 6. Built-in defaults
//
// UNSPLASH_ACCESS_KEY fills api.access_key if nothing above set it.
func (l *Loader) LoadConfig(customPath string) (*Config, error) {
	config := DefaultConfig()
	l.sources = nil
	l.warnings = nil

	if customPath != "" {
		if err := validateConfigPath(customPath); err != nil {
			return nil, fmt.Errorf("invalid config path: %w", err)
		}
		path := expandPath(customPath)
		if err := l.loadFromFile(config, path); err != nil {
			return nil, fmt.Errorf("failed to load config from %s: %w", customPath, err)
		}
	} else {
		// Lowest priority first so higher ones overwrite
		for i := len(l.configPaths) - 1; i >= 0; i-- {
			expandedPath := expandPath(l.configPaths[i])
			if !fileExists(expandedPath) {
				continue
			}
			if err := l.loadFromFile(config, expandedPath); err != nil {
				l.warnings = append(l.warnings, fmt.Sprintf("failed to load config from %s: %v", expandedPath, err))
			}
		}
	}

	if err := applyEnvOverrides(config); err != nil {
		return nil, fmt.Errorf("failed to apply environment overrides: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Sources returns the files the last LoadConfig read, in load order
func (l *Loader) Sources() []string {
	return append([]string(nil), l.sources...)
}

// Warnings returns non-fatal problems from the last LoadConfig
func (l *Loader) Warnings() []string {
	return append([]string(nil), l.warnings...)
}

// loadFromFile decodes a YAML file over config. Keys absent from the file
// keep their current value.
func (l *Loader) loadFromFile(config *Config, path string) error {
	// #nosec G304 - path is validated by validateConfigPath() or comes from ConfigPaths
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}

	if err := yaml.Unmarshal(data, config); err != nil {
		return fmt.Errorf("failed to parse YAML: %w", err)
	}

	l.sources = append(l.sources, path)
	return nil
}

// applyEnvOverrides applies environment variable overrides to the config
func applyEnvOverrides(config *Config) error {
	envMappings := map[string]func(string) error{
		// API Config
		"SNAPGRID_API_ACCESS_KEY":        func(v string) error { config.API.AccessKey = v; return nil },
		"SNAPGRID_API_BASE_URL":          func(v string) error { config.API.BaseURL = v; return nil },
		"SNAPGRID_API_TIMEOUT":           func(v string) error { return parseDuration(v, &config.API.Timeout) },
		"SNAPGRID_API_REQUESTS_PER_HOUR": func(v string) error { return parseInt(v, &config.API.RequestsPerHour) },

		// Search Config
		"SNAPGRID_SEARCH_DEFAULT_QUERY": func(v string) error { config.Search.DefaultQuery = v; return nil },
		"SNAPGRID_SEARCH_PER_PAGE":      func(v string) error { return parseInt(v, &config.Search.PerPage) },
		"SNAPGRID_SEARCH_DEBOUNCE":      func(v string) error { return parseDuration(v, &config.Search.Debounce) },
		"SNAPGRID_SEARCH_LOADING_DELAY": func(v string) error { return parseDuration(v, &config.Search.LoadingDelay) },

		// UI Config
		"SNAPGRID_UI_LAYOUT":    func(v string) error { config.UI.Layout = v; return nil },
		"SNAPGRID_UI_THEME":     func(v string) error { config.UI.Theme = v; return nil },
		"SNAPGRID_UI_SKELETONS": func(v string) error { return parseInt(v, &config.UI.Skeletons) },

		// Download Config
		"SNAPGRID_DOWNLOAD_DIR":       func(v string) error { config.Download.Dir = v; return nil },
		"SNAPGRID_DOWNLOAD_FILENAME":  func(v string) error { config.Download.Filename = v; return nil },
		"SNAPGRID_DOWNLOAD_OVERWRITE": func(v string) error { return parseBool(v, &config.Download.Overwrite) },

		// Output Config
		"SNAPGRID_OUTPUT_DEFAULT_FORMAT": func(v string) error { config.Output.DefaultFormat = v; return nil },
		"SNAPGRID_OUTPUT_COLOR_MODE":     func(v string) error { config.Output.ColorMode = v; return nil },

		// Logging Config
		"SNAPGRID_LOGGING_FILE":    func(v string) error { config.Logging.File = v; return nil },
		"SNAPGRID_LOGGING_VERBOSE": func(v string) error { return parseBool(v, &config.Logging.Verbose) },
	}

	for envVar, setter := range envMappings {
		if value := os.Getenv(envVar); value != "" {
			if err := setter(value); err != nil {
				return fmt.Errorf("invalid value for %s: %w", envVar, err)
			}
		}
	}

	if config.API.AccessKey == "" {
		config.API.AccessKey = os.Getenv(AccessKeyEnv)
	}

	return nil
}

// GetConfigPaths returns the list of configuration file paths that will be searched
func GetConfigPaths() []string {
	paths := make([]string, 0, len(ConfigPaths))
	for _, path := range ConfigPaths {
		paths = append(paths, expandPath(path))
	}
	return paths
}

// FindConfigFile finds the first existing config file in the search paths
func FindConfigFile() (string, bool) {
	for _, path := range ConfigPaths {
		expandedPath := expandPath(path)
		if fileExists(expandedPath) {
			return expandedPath, true
		}
	}
	return "", false
}

// Helper functions

// validateConfigPath validates that a config path is safe to read
func validateConfigPath(path string) error {
	cleanPath := filepath.Clean(path)

	if strings.Contains(cleanPath, "..") {
		return fmt.Errorf("path traversal not allowed")
	}

	ext := strings.ToLower(filepath.Ext(cleanPath))
	if ext != ".yaml" && ext != ".yml" {
		return fmt.Errorf("config file must have .yaml or .yml extension")
	}

	return nil
}

// expandPath expands ~ to home directory
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}

// fileExists checks if a file exists
func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// Type conversion helpers

func parseInt(s string, dst *int) error {
	val, err := strconv.Atoi(s)
	if err != nil {
		return err
	}
	*dst = val
	return nil
}

func parseBool(s string, dst *bool) error {
	val, err := strconv.ParseBool(s)
	if err != nil {
		return err
	}
	*dst = val
	return nil
}

func parseDuration(s string, dst *time.Duration) error {
	val, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	*dst = val
	return nil
}
