package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	Server struct {
		Addr string `yaml:"addr"`
	} `yaml:"server"`
	DataSource struct {
		Proxy        string  `yaml:"proxy"`
		RatePerSec   float64 `yaml:"rate_per_sec"`
		CacheTTLMins int     `yaml:"cache_ttl_minutes"`
		CachePath    string  `yaml:"cache_path"`
	} `yaml:"data_source"`
	Portfolio struct {
		StartingCash float64 `yaml:"starting_cash"`
	} `yaml:"portfolio"`
	Schedule struct {
		AlertsCron string `yaml:"alerts_cron"`
	} `yaml:"schedule"`
	Watchlist []string `yaml:"watchlist"`
	LogLevel  string   `yaml:"log_level"`
}

// Load reads config from a YAML file, then applies environment variable overrides.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("SERVER_ADDR"); v != "" {
		cfg.Server.Addr = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.DataSource.Proxy = v
	}
	if v := os.Getenv("CACHE_PATH"); v != "" {
		cfg.DataSource.CachePath = v
	}
	if v := os.Getenv("CACHE_TTL_MINUTES"); v != "" {
		var mins int
		if _, err := fmt.Sscanf(v, "%d", &mins); err == nil {
			cfg.DataSource.CacheTTLMins = mins
		}
	}
	if v := os.Getenv("STARTING_CASH"); v != "" {
		var cash float64
		if _, err := fmt.Sscanf(v, "%f", &cash); err == nil {
			cfg.Portfolio.StartingCash = cash
		}
	}
	if v := os.Getenv("ALERTS_CRON"); v != "" {
		cfg.Schedule.AlertsCron = v
	}
	if v := os.Getenv("WATCHLIST"); v != "" {
		var list []string
		for _, t := range strings.Split(v, ",") {
			if t = strings.TrimSpace(t); t != "" {
				list = append(list, t)
			}
		}
		cfg.Watchlist = list
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}

	// Defaults
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = ":8000"
	}
	if cfg.DataSource.RatePerSec == 0 {
		cfg.DataSource.RatePerSec = 5
	}
	if cfg.DataSource.CacheTTLMins == 0 {
		cfg.DataSource.CacheTTLMins = 15
	}
	if cfg.DataSource.CachePath == "" {
		cfg.DataSource.CachePath = "data/cache.db"
	}
	if cfg.Portfolio.StartingCash == 0 {
		cfg.Portfolio.StartingCash = 100000
	}
	if cfg.Schedule.AlertsCron == "" {
		cfg.Schedule.AlertsCron = "0 0 13 * * 1-5"
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}

	return cfg, nil
}

// Validate checks that all required fields are set.
func (c *Config) Validate() error {
	if c.Server.Addr == "" {
		return fmt.Errorf("server.addr is required")
	}
	if c.DataSource.RatePerSec <= 0 {
		return fmt.Errorf("data_source.rate_per_sec must be positive")
	}
	if c.DataSource.CacheTTLMins <= 0 {
		return fmt.Errorf("data_source.cache_ttl_minutes must be positive")
	}
	if c.Portfolio.StartingCash <= 0 {
		return fmt.Errorf("portfolio.starting_cash must be positive")
	}
	return nil
}
