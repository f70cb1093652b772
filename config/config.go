package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the overall application configuration.
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Seed       SeedConfig       `yaml:"seed"`
	Push       PushConfig       `yaml:"push"`
	WorkerPool WorkerPoolConfig `yaml:"worker_pool"`
	Alerts     AlertsConfig     `yaml:"alerts"`
	Schedule   ScheduleConfig   `yaml:"schedule"`
}

// ServerConfig holds the HTTP server configuration.
type ServerConfig struct {
	Port            int           `yaml:"port"`
	RateLimitPerSec float64       `yaml:"rate_limit_per_sec"`
	RateLimitBurst  int           `yaml:"rate_limit_burst"`
	CacheTTLSeconds int           `yaml:"cache_ttl_seconds"`
	CacheTTL        time.Duration `yaml:"-"`
}

// SeedConfig points at an optional seed file. Without a path the built-in demo
// household is used.
type SeedConfig struct {
	Path           string        `yaml:"path"`
	Watch          bool          `yaml:"watch"`
	DebounceMillis int           `yaml:"debounce_millis"`
	Debounce       time.Duration `yaml:"-"`
}

// PushConfig holds the VAPID keys for web push notifications.
type PushConfig struct {
	PublicKey  string `yaml:"vapid_public_key"`
	PrivateKey string `yaml:"vapid_private_key"`
	Subject    string `yaml:"subject"`
	TTL        int    `yaml:"ttl"`
}

// Enabled reports whether both VAPID keys are configured.
func (p PushConfig) Enabled() bool {
	return p.PublicKey != "" && p.PrivateKey != ""
}

// WorkerPoolConfig holds the configuration for the notification worker pool.
type WorkerPoolConfig struct {
	Size int `yaml:"size"`
}

// AlertsConfig tunes when alerts are raised.
type AlertsConfig struct {
	LowConsumableRatio float64 `yaml:"low_consumable_ratio"`
	// Language of push alert texts, a BCP 47 tag. Defaults to "de".
	Language string `yaml:"language"`
}

// ScheduleConfig controls the day rollover job.
type ScheduleConfig struct {
	Timezone             string         `yaml:"timezone"`
	Location             *time.Location `yaml:"-"`
	CheckIntervalMinutes int            `yaml:"check_interval_minutes"`
	CheckInterval        time.Duration  `yaml:"-"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	cfg := &Config{}
	if err := cfg.applyDefaults(); err != nil {
		// Only an unknown timezone can fail, and the default has none.
		panic(err)
	}
	return cfg
}

// Load reads the configuration from the given path.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var cfg Config
	decoder := yaml.NewDecoder(f)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, err
	}

	if err := cfg.applyDefaults(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (cfg *Config) applyDefaults() error {
	if cfg.Server.Port <= 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Server.RateLimitPerSec <= 0 {
		cfg.Server.RateLimitPerSec = 10
	}
	if cfg.Server.RateLimitBurst <= 0 {
		cfg.Server.RateLimitBurst = 5
	}
	if cfg.Server.CacheTTLSeconds <= 0 {
		cfg.Server.CacheTTLSeconds = 300
	}
	cfg.Server.CacheTTL = time.Duration(cfg.Server.CacheTTLSeconds) * time.Second

	if cfg.Seed.DebounceMillis <= 0 {
		cfg.Seed.DebounceMillis = 500
	}
	cfg.Seed.Debounce = time.Duration(cfg.Seed.DebounceMillis) * time.Millisecond

	if cfg.Push.TTL <= 0 {
		cfg.Push.TTL = 3600
	}

	if cfg.WorkerPool.Size <= 0 {
		log.Printf("worker_pool.size is not set or invalid; defaulting to 1")
		cfg.WorkerPool.Size = 1
	}

	if cfg.Alerts.LowConsumableRatio <= 0 || cfg.Alerts.LowConsumableRatio > 1 {
		cfg.Alerts.LowConsumableRatio = 0.3
	}
	if cfg.Alerts.Language == "" {
		cfg.Alerts.Language = "de"
	}

	loc := time.Local
	if cfg.Schedule.Timezone != "" {
		var err error
		loc, err = time.LoadLocation(cfg.Schedule.Timezone)
		if err != nil {
			return fmt.Errorf("failed to load timezone %q: %w", cfg.Schedule.Timezone, err)
		}
	}
	cfg.Schedule.Location = loc
	if cfg.Schedule.CheckIntervalMinutes <= 0 {
		cfg.Schedule.CheckIntervalMinutes = 15
	}
	cfg.Schedule.CheckInterval = time.Duration(cfg.Schedule.CheckIntervalMinutes) * time.Minute

	return nil
}
