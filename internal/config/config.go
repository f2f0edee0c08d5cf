// Package config loads venicecheck configuration from an optional YAML file
// with environment-variable overrides. A .env file in the working directory
// is honoured via godotenv. The API key is intentionally env-only so it never
// ends up committed inside a config file.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const defaultModel = "most_intelligent"

type Config struct {
	Venice VeniceConfig `yaml:"venice"`
	Log    LogConfig    `yaml:"log"`
}

type VeniceConfig struct {
	Model     string  `yaml:"model"`
	BaseURL   string  `yaml:"base_url"`
	MaxTokens int     `yaml:"max_tokens"`
	MaxQPS    float64 `yaml:"max_qps"`

	// Env-only, never read from YAML.
	APIKey string `yaml:"-"`
}

type LogConfig struct {
	Level string `yaml:"level"` // trace | debug | info | warn | error
}

// Load reads the config file at path (skipped when path is empty), then
// applies environment overrides: VENICE_API_KEY, VENICE_MODEL,
// VENICE_API_BASE_URL, VENICE_MAX_QPS, and LOG_LEVEL. A .env file is loaded
// first when present; its absence is not an error.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Venice: VeniceConfig{Model: defaultModel},
		Log:    LogConfig{Level: "info"},
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	if v := os.Getenv("VENICE_API_KEY"); v != "" {
		cfg.Venice.APIKey = v
	}
	if v := os.Getenv("VENICE_MODEL"); v != "" {
		cfg.Venice.Model = v
	}
	if v := os.Getenv("VENICE_API_BASE_URL"); v != "" {
		cfg.Venice.BaseURL = v
	}
	if v := os.Getenv("VENICE_MAX_QPS"); v != "" {
		qps, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid VENICE_MAX_QPS %q: %w", v, err)
		}
		cfg.Venice.MaxQPS = qps
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}

	if cfg.Venice.Model == "" {
		cfg.Venice.Model = defaultModel
	}

	return cfg, nil
}
