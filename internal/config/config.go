package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	Server struct {
		Host string `yaml:"host"`
		Port int    `yaml:"port"`
	} `yaml:"server"`
	Pricefeed struct {
		BaseURL string `yaml:"base_url"`
		APIKey  string `yaml:"api_key"`
	} `yaml:"pricefeed"`
	Settings struct {
		StateFile string `yaml:"state_file"`
	} `yaml:"settings"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Notify struct {
		WebhookURL  string  `yaml:"webhook_url"`
		MinHitPrice float64 `yaml:"min_hit_price"`
	} `yaml:"notify"`
	Schedule struct {
		SweepCron          string `yaml:"sweep_cron"`
		ExpiryCron         string `yaml:"expiry_cron"`
		DigestCron         string `yaml:"digest_cron"`
		SessionMaxAgeHours int    `yaml:"session_max_age_hours"`
	} `yaml:"schedule"`
	Proxy string `yaml:"proxy"`
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
	if v := os.Getenv("HTTP_PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = p
		}
	}
	if v := os.Getenv("GEMRATE_BASE_URL"); v != "" {
		cfg.Pricefeed.BaseURL = v
	}
	if v := os.Getenv("GEMRATE_API_KEY"); v != "" {
		cfg.Pricefeed.APIKey = v
	}
	if v := os.Getenv("WEBHOOK_URL"); v != "" {
		cfg.Notify.WebhookURL = v
	}
	if v := os.Getenv("SETTINGS_PATH"); v != "" {
		cfg.Settings.StateFile = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}

	// Defaults
	if cfg.Server.Host == "" {
		cfg.Server.Host = "127.0.0.1"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Settings.StateFile == "" {
		cfg.Settings.StateFile = "data/desk_settings.json"
	}
	if cfg.Database.SQLitePath == "" {
		cfg.Database.SQLitePath = "data/carddesk.db"
	}
	if cfg.Notify.MinHitPrice == 0 {
		cfg.Notify.MinHitPrice = 500
	}
	if cfg.Schedule.SweepCron == "" {
		cfg.Schedule.SweepCron = "0 0 7 * * *"
	}
	if cfg.Schedule.ExpiryCron == "" {
		cfg.Schedule.ExpiryCron = "0 30 7 * * *"
	}
	if cfg.Schedule.DigestCron == "" {
		cfg.Schedule.DigestCron = "0 0 9 * * 1"
	}
	if cfg.Schedule.SessionMaxAgeHours == 0 {
		cfg.Schedule.SessionMaxAgeHours = 72
	}

	return cfg, nil
}

// Validate checks that all required fields are sane.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port %d out of range", c.Server.Port)
	}
	if c.Schedule.SessionMaxAgeHours <= 0 {
		return fmt.Errorf("schedule.session_max_age_hours must be positive")
	}
	if c.Notify.MinHitPrice < 0 {
		return fmt.Errorf("notify.min_hit_price must be non-negative")
	}
	return nil
}
