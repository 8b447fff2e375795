package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config represents the entire application configuration
type Config struct {
	Bunkr    BunkrConfig    `mapstructure:"bunkr"`
	Download DownloadConfig `mapstructure:"download"`
	Logging  LoggingConfig  `mapstructure:"logging"`
	Database DatabaseConfig `mapstructure:"database"`
}

// BunkrConfig contains host endpoints and timeouts
type BunkrConfig struct {
	APIURL         string `mapstructure:"api_url"`
	StatusURL      string `mapstructure:"status_url"`
	PageTimeout    string `mapstructure:"page_timeout"`
	StreamTimeout  string `mapstructure:"stream_timeout"`
	StatusCacheTTL string `mapstructure:"status_cache_ttl"`
}

// DownloadConfig contains download pipeline settings
type DownloadConfig struct {
	Dir         string `mapstructure:"dir"`
	MaxAttempts int    `mapstructure:"max_attempts"`
	Concurrent  bool   `mapstructure:"concurrent"`
	// Filters are plain substring matches against the sanitized filename,
	// not globs.
	IgnorePatterns  []string `mapstructure:"ignore_patterns"`
	IncludePatterns []string `mapstructure:"include_patterns"`
	TempMaxAge      string   `mapstructure:"temp_max_age"`
}

// LoggingConfig contains logging settings
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// DatabaseConfig contains history database settings
type DatabaseConfig struct {
	Path string `mapstructure:"path"`
}

// Load loads configuration from the specified file path. An empty path
// loads defaults only.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	// Set defaults
	v.SetDefault("bunkr.api_url", "https://bunkr.cr/api/vs")
	v.SetDefault("bunkr.status_url", "https://status.bunkr.ru/")
	v.SetDefault("bunkr.page_timeout", "15s")
	v.SetDefault("bunkr.stream_timeout", "30s")
	v.SetDefault("bunkr.status_cache_ttl", "300s")
	v.SetDefault("download.dir", "downloads")
	v.SetDefault("download.max_attempts", 5)
	v.SetDefault("download.concurrent", false)
	v.SetDefault("download.temp_max_age", "24h")
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("database.path", "")

	if configPath != "" {
		v.SetConfigFile(configPath)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Bunkr.APIURL == "" {
		return fmt.Errorf("bunkr.api_url is required")
	}
	if c.Bunkr.StatusURL == "" {
		return fmt.Errorf("bunkr.status_url is required")
	}

	if c.Download.Dir == "" {
		return fmt.Errorf("download.dir is required")
	}
	if c.Download.MaxAttempts < 1 || c.Download.MaxAttempts > 10 {
		return fmt.Errorf("download.max_attempts must be between 1 and 10")
	}

	for _, field := range []struct {
		name  string
		value string
	}{
		{"bunkr.page_timeout", c.Bunkr.PageTimeout},
		{"bunkr.stream_timeout", c.Bunkr.StreamTimeout},
		{"bunkr.status_cache_ttl", c.Bunkr.StatusCacheTTL},
		{"download.temp_max_age", c.Download.TempMaxAge},
	} {
		if _, err := time.ParseDuration(field.value); err != nil {
			return fmt.Errorf("invalid %s: %w", field.name, err)
		}
	}

	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
		// Valid levels
	default:
		return fmt.Errorf("invalid logging.level: %s", c.Logging.Level)
	}

	switch c.Logging.Format {
	case "json", "console":
		// Valid formats
	default:
		return fmt.Errorf("invalid logging.format: %s", c.Logging.Format)
	}

	return nil
}

// GetPageTimeout returns the item/album page fetch timeout
func (c *BunkrConfig) GetPageTimeout() time.Duration {
	d, _ := time.ParseDuration(c.PageTimeout)
	if d == 0 {
		return 15 * time.Second
	}
	return d
}

// GetStreamTimeout returns the download response-header timeout
func (c *BunkrConfig) GetStreamTimeout() time.Duration {
	d, _ := time.ParseDuration(c.StreamTimeout)
	if d == 0 {
		return 30 * time.Second
	}
	return d
}

// GetStatusCacheTTL returns the server status cache freshness window
func (c *BunkrConfig) GetStatusCacheTTL() time.Duration {
	d, _ := time.ParseDuration(c.StatusCacheTTL)
	if d == 0 {
		return 300 * time.Second
	}
	return d
}

// GetTempMaxAge returns the maximum age of stale temp artifacts
func (c *DownloadConfig) GetTempMaxAge() time.Duration {
	d, _ := time.ParseDuration(c.TempMaxAge)
	if d == 0 {
		return 24 * time.Hour
	}
	return d
}
