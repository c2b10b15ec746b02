package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	Telegram struct {
		BotToken string `yaml:"bot_token"`
		ChatID   string `yaml:"chat_id"`
	} `yaml:"telegram"`
	DataSource struct {
		Provider string `yaml:"provider"` // yahoo, csv or mock
		CSVDir   string `yaml:"csv_dir"`
		Symbol   string `yaml:"symbol"`
		Lookback int    `yaml:"lookback_days"`
	} `yaml:"data_source"`
	Simulation struct {
		Horizon     int    `yaml:"horizon"`
		NumTrials   int    `yaml:"num_trials"`
		Seed        *int64 `yaml:"seed"`
		Workers     int    `yaml:"workers"`
		SamplePaths int    `yaml:"sample_paths"`
	} `yaml:"simulation"`
	Schedule struct {
		Cron string `yaml:"cron"`
	} `yaml:"schedule"`
	Database struct {
		SQLitePath string        `yaml:"sqlite_path"`
		CacheTTL   time.Duration `yaml:"cache_ttl"`
	} `yaml:"database"`
	Chart struct {
		OutputDir string `yaml:"output_dir"`
		Bins      int    `yaml:"bins"`
	} `yaml:"chart"`
	Proxy string `yaml:"proxy"`
}

// Load starts from the numeric defaults, reads a YAML file over them, loads a
// .env file if present, then applies environment variable overrides. An
// explicit 0 in YAML or the environment is kept and left to Validate.
func Load(path string) (*Config, error) {
	cfg := defaultConfig()

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// .env never overrides variables already set in the process environment.
	_ = godotenv.Load()

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		c.Telegram.BotToken = v
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		c.Telegram.ChatID = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		c.Proxy = v
	}
	if v := os.Getenv("SENTINEL_PROVIDER"); v != "" {
		c.DataSource.Provider = v
	}
	if v := os.Getenv("SENTINEL_SYMBOL"); v != "" {
		c.DataSource.Symbol = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		c.Database.SQLitePath = v
	}
	if v := os.Getenv("CRON_SCHEDULE"); v != "" {
		c.Schedule.Cron = v
	}

	ints := []struct {
		key string
		dst *int
	}{
		{"SENTINEL_HORIZON", &c.Simulation.Horizon},
		{"SENTINEL_TRIALS", &c.Simulation.NumTrials},
		{"SENTINEL_WORKERS", &c.Simulation.Workers},
		{"SENTINEL_LOOKBACK", &c.DataSource.Lookback},
	}
	for _, e := range ints {
		v := os.Getenv(e.key)
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", e.key, err)
		}
		*e.dst = n
	}

	if v := os.Getenv("SENTINEL_SEED"); v != "" {
		seed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid SENTINEL_SEED: %w", err)
		}
		c.Simulation.Seed = &seed
	}
	return nil
}

func defaultConfig() *Config {
	c := &Config{}
	c.DataSource.Lookback = 252
	c.Simulation.Horizon = 30
	c.Simulation.NumTrials = 10000
	c.Simulation.SamplePaths = 10
	c.Database.CacheTTL = 6 * time.Hour
	c.Chart.Bins = 40
	return c
}

// applyDefaults fills settings for which an empty string is never meaningful.
func (c *Config) applyDefaults() {
	if c.DataSource.Provider == "" {
		c.DataSource.Provider = "yahoo"
	}
	if c.DataSource.Symbol == "" {
		c.DataSource.Symbol = "SPX500"
	}
	if c.DataSource.CSVDir == "" {
		c.DataSource.CSVDir = "data"
	}
	if c.Schedule.Cron == "" {
		c.Schedule.Cron = "0 30 22 * * 1-5"
	}
}

// Validate checks that simulation and data source settings are usable.
func (c *Config) Validate() error {
	switch c.DataSource.Provider {
	case "yahoo", "csv", "mock":
	default:
		return fmt.Errorf("data_source.provider must be yahoo, csv or mock, got %q", c.DataSource.Provider)
	}
	if c.DataSource.Lookback < 2 {
		return fmt.Errorf("data_source.lookback_days must be >= 2")
	}
	if c.Simulation.Horizon < 0 {
		return fmt.Errorf("simulation.horizon must be >= 0")
	}
	if c.Simulation.NumTrials < 1 {
		return fmt.Errorf("simulation.num_trials must be >= 1")
	}
	if c.Simulation.Workers < 0 {
		return fmt.Errorf("simulation.workers must be >= 0")
	}
	if c.Simulation.SamplePaths < 0 {
		return fmt.Errorf("simulation.sample_paths must be >= 0")
	}
	return nil
}

// ValidateNotifier checks the settings needed to push reports to Telegram.
func (c *Config) ValidateNotifier() error {
	if c.Telegram.BotToken == "" {
		return fmt.Errorf("telegram.bot_token is required")
	}
	if c.Telegram.ChatID == "" {
		return fmt.Errorf("telegram.chat_id is required")
	}
	return nil
}
