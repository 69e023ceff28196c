package config

import (
	"fmt"
	"time"

	"github.com/yildizm/snapgrid/internal/gallery"
	"github.com/yildizm/snapgrid/internal/layout"
	"github.com/yildizm/snapgrid/internal/unsplash"
)

// Config holds the complete application configuration
type Config struct {
	Version  string         `yaml:"version" json:"version"`
	API      APIConfig      `yaml:"api" json:"api"`
	Search   SearchConfig   `yaml:"search" json:"search"`
	UI       UIConfig       `yaml:"ui" json:"ui"`
	Download DownloadConfig `yaml:"download" json:"download"`
	Output   OutputConfig   `yaml:"output" json:"output"`
	Logging  LoggingConfig  `yaml:"logging" json:"logging"`
}

// APIConfig configures the photo API client
type APIConfig struct {
	AccessKey       string        `yaml:"access_key" json:"access_key"`               // Unsplash access key
	BaseURL         string        `yaml:"base_url" json:"base_url"`                   // API endpoint URL
	Timeout         time.Duration `yaml:"timeout" json:"timeout"`                     // request timeout
	RequestsPerHour int           `yaml:"requests_per_hour" json:"requests_per_hour"` // client-side quota, 0 disables
}

// SearchConfig configures query handling
type SearchConfig struct {
	DefaultQuery string        `yaml:"default_query" json:"default_query"` // searched when the box is empty
	PerPage      int           `yaml:"per_page" json:"per_page"`           // 0 follows the layout
	Debounce     time.Duration `yaml:"debounce" json:"debounce"`
	LoadingDelay time.Duration `yaml:"loading_delay" json:"loading_delay"` // skeletons stay up this long after a fetch settles
}

// UIConfig configures the terminal browser
type UIConfig struct {
	Layout    string `yaml:"layout" json:"layout"` // grid|masonry
	Theme     string `yaml:"theme" json:"theme"`   // default|high-contrast|minimal
	Skeletons int    `yaml:"skeletons" json:"skeletons"`
}

// DownloadConfig configures where photos are saved
type DownloadConfig struct {
	Dir       string `yaml:"dir" json:"dir"`
	Filename  string `yaml:"filename" json:"filename"`
	Overwrite bool   `yaml:"overwrite" json:"overwrite"`
}

// OutputConfig configures one-shot command output
type OutputConfig struct {
	DefaultFormat string `yaml:"default_format" json:"default_format"` // text|json|markdown|csv
	ColorMode     string `yaml:"color_mode" json:"color_mode"`         // auto|always|never
}

// LoggingConfig configures the log sink
type LoggingConfig struct {
	File    string `yaml:"file" json:"file"`
	Verbose bool   `yaml:"verbose" json:"verbose"`
}

var (
	validThemes = map[string]bool{
		"default":       true,
		"high-contrast": true,
		"minimal":       true,
	}
	validFormats = map[string]bool{
		"json":     true,
		"text":     true,
		"markdown": true,
		"csv":      true,
	}
	validColorModes = map[string]bool{
		"auto":   true,
		"always": true,
		"never":  true,
	}
)

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Version: "1.0",
		API: APIConfig{
			BaseURL:         unsplash.DefaultBaseURL,
			Timeout:         unsplash.DefaultTimeout,
			RequestsPerHour: unsplash.DefaultRequestsPerHour,
		},
		Search: SearchConfig{
			DefaultQuery: gallery.DefaultQuery,
			Debounce:     gallery.DefaultDebounce,
			LoadingDelay: gallery.DefaultLoadingDelay,
		},
		UI: UIConfig{
			Layout:    string(layout.Grid),
			Theme:     "default",
			Skeletons: gallery.DefaultSkeletons,
		},
		Download: DownloadConfig{
			Dir:      ".",
			Filename: "downloaded-image.jpg",
		},
		Output: OutputConfig{
			DefaultFormat: "text",
			ColorMode:     "auto",
		},
		Logging: LoggingConfig{
			File: "~/.cache/snapgrid/snapgrid.log",
		},
	}
}

// Validate validates the configuration. A missing access key is not an error
// here; commands that talk to the API check it when building the client.
func (c *Config) Validate() error {
	if err := c.validateAPIConfig(); err != nil {
		return err
	}
	if err := c.validateSearchConfig(); err != nil {
		return err
	}
	if err := c.validateUIConfig(); err != nil {
		return err
	}
	if err := c.validateOutputConfig(); err != nil {
		return err
	}
	if c.Download.Filename == "" {
		return fmt.Errorf("download.filename must not be empty")
	}
	return nil
}

func (c *Config) validateAPIConfig() error {
	if c.API.BaseURL == "" {
		return fmt.Errorf("api.base_url must not be empty")
	}
	if c.API.Timeout <= 0 {
		return fmt.Errorf("api.timeout must be positive")
	}
	if c.API.RequestsPerHour < 0 {
		return fmt.Errorf("api.requests_per_hour must be non-negative")
	}
	return nil
}

func (c *Config) validateSearchConfig() error {
	if c.Search.DefaultQuery == "" {
		return fmt.Errorf("search.default_query must not be empty")
	}
	if c.Search.PerPage < 0 || c.Search.PerPage > unsplash.MaxPerPage {
		return fmt.Errorf("search.per_page must be between 0 and %d", unsplash.MaxPerPage)
	}
	if c.Search.Debounce <= 0 {
		return fmt.Errorf("search.debounce must be positive")
	}
	if c.Search.LoadingDelay <= 0 {
		return fmt.Errorf("search.loading_delay must be positive")
	}
	return nil
}

func (c *Config) validateUIConfig() error {
	if _, err := layout.Parse(c.UI.Layout); err != nil {
		return fmt.Errorf("invalid ui.layout: %w", err)
	}
	if c.UI.Theme != "" && !validThemes[c.UI.Theme] {
		return fmt.Errorf("invalid theme: %s (must be one of: default, high-contrast, minimal)", c.UI.Theme)
	}
	if c.UI.Skeletons <= 0 {
		return fmt.Errorf("ui.skeletons must be positive")
	}
	return nil
}

func (c *Config) validateOutputConfig() error {
	if c.Output.DefaultFormat != "" && !validFormats[c.Output.DefaultFormat] {
		return fmt.Errorf("invalid output format: %s (must be one of: json, text, markdown, csv)", c.Output.DefaultFormat)
	}
	if c.Output.ColorMode != "" && !validColorModes[c.Output.ColorMode] {
		return fmt.Errorf("invalid color mode: %s (must be one of: auto, always, never)", c.Output.ColorMode)
	}
	return nil
}

// LayoutKind returns the parsed layout, falling back to grid
func (c *Config) LayoutKind() layout.Kind {
	kind, err := layout.Parse(c.UI.Layout)
	if err != nil {
		return layout.Grid
	}
	return kind
}

// PageSize returns search.per_page, or the layout's page size when unset
func (c *Config) PageSize() int {
	if c.Search.PerPage > 0 {
		return c.Search.PerPage
	}
	return layout.DefaultPageSize(c.LayoutKind())
}

// GalleryOptions maps the search and UI sections onto gallery options
func (c *Config) GalleryOptions() gallery.Options {
	return gallery.Options{
		DefaultQuery: c.Search.DefaultQuery,
		Debounce:     c.Search.Debounce,
		LoadingDelay: c.Search.LoadingDelay,
		Skeletons:    c.UI.Skeletons,
	}
}

// ClientConfig maps the api section onto the photo client config
func (c *Config) ClientConfig(userAgent string) *unsplash.Config {
	cfg := unsplash.DefaultConfig()
	cfg.AccessKey = c.API.AccessKey
	if c.API.BaseURL != "" {
		cfg.BaseURL = c.API.BaseURL
	}
	if c.API.Timeout > 0 {
		cfg.Timeout = c.API.Timeout
	}
	cfg.RequestsPerHour = c.API.RequestsPerHour
	if userAgent != "" {
		cfg.UserAgent = userAgent
	}
	return cfg
}

// LogFile returns logging.file with ~ expanded
func (c *Config) LogFile() string {
	return expandPath(c.Logging.File)
}

// DownloadDir returns download.dir with ~ expanded
func (c *Config) DownloadDir() string {
	return expandPath(c.Download.Dir)
}
