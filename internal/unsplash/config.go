package unsplash

import (
	"fmt"
	"net/url"
	"time"
)

const (
	DefaultBaseURL         = "https://api.unsplash.com"
	DefaultTimeout         = 15 * time.Second
	DefaultRequestsPerHour = 50
	DefaultUserAgent       = "snapgrid"
	DefaultPerPage         = 8
	MaxPerPage             = 30
)

type Config struct {
	BaseURL         string        `json:"base_url"`
	AccessKey       string        `json:"access_key"`
	Timeout         time.Duration `json:"timeout"`
	RequestsPerHour int           `json:"requests_per_hour"`
	UserAgent       string        `json:"user_agent"`
}

func DefaultConfig() *Config {
	return &Config{
		BaseURL:         DefaultBaseURL,
		Timeout:         DefaultTimeout,
		RequestsPerHour: DefaultRequestsPerHour,
		UserAgent:       DefaultUserAgent,
	}
}

func (c *Config) Validate() error {
	if c.AccessKey == "" {
		return NewConfigurationError("access_key", "access key is required (set api.access_key or UNSPLASH_ACCESS_KEY)")
	}

	if c.BaseURL == "" {
		return NewConfigurationError("base_url", "base URL is required")
	}

	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return NewConfigurationError("base_url", fmt.Sprintf("invalid base URL: %v", err))
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return NewConfigurationError("base_url", fmt.Sprintf("unsupported scheme %q", u.Scheme))
	}

	if c.Timeout <= 0 {
		return NewConfigurationError("timeout", "timeout must be positive")
	}

	return nil
}
