package config

import (
	"fmt"
	"os"
	"time"

	"go.uber.org/config"
)

type Config struct {
	AI    AIConfig    `yaml:"ai"`
	Plan  PlanConfig  `yaml:"plan"`
	Watch WatchConfig `yaml:"watch"`
}

type AIConfig struct {
	Endpoint  string        `yaml:"endpoint"`
	Model     string        `yaml:"model"`
	APIKeyEnv string        `yaml:"api_key_env"`
	Timeout   time.Duration `yaml:"timeout"`
}

type PlanConfig struct {
	DefaultDuration int `yaml:"default_duration"`
}

type WatchConfig struct {
	CheckInterval time.Duration `yaml:"check_interval"`
}

func Default() Config {
	return Config{
		AI: AIConfig{
			Endpoint:  "https://api.openai.com/v1/chat/completions",
			Model:     "gpt-4o-mini",
			APIKeyEnv: "DAYBREAK_API_KEY",
			Timeout:   30 * time.Second,
		},
		Plan: PlanConfig{
			DefaultDuration: 21,
		},
		Watch: WatchConfig{
			CheckInterval: time.Hour,
		},
	}
}

// Load reads the YAML config at path, layered over defaults. A missing file
// just yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	provider, err := config.NewYAML(config.File(path))
	if err != nil {
		return cfg, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	if err := provider.Get(config.Root).Populate(&cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	return cfg, nil
}

// APIKey resolves the AI service key from the configured environment variable.
func (c AIConfig) APIKey() string {
	return os.Getenv(c.APIKeyEnv)
}
