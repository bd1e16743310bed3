package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Port           string  `mapstructure:"PORT"`
	Env            string  `mapstructure:"ENV"`
	OllamaURL      string  `mapstructure:"OLLAMA_URL"`
	OllamaModel    string  `mapstructure:"OLLAMA_MODEL"`
	TimeoutSeconds int     `mapstructure:"REQUEST_TIMEOUT_SECONDS"`
	Temperature    float64 `mapstructure:"TEMPERATURE"`
	TopP           float64 `mapstructure:"TOP_P"`
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("PORT", "8080")
	v.SetDefault("ENV", "development")
	v.SetDefault("OLLAMA_URL", "http://localhost:11434")
	v.SetDefault("OLLAMA_MODEL", "llama3")
	v.SetDefault("REQUEST_TIMEOUT_SECONDS", 120)
	v.SetDefault("TEMPERATURE", 0.2)
	v.SetDefault("TOP_P", 0.9)

	// Bind env vars explicitly so Unmarshal picks them up
	v.BindEnv("PORT")
	v.BindEnv("ENV")
	v.BindEnv("OLLAMA_URL")
	v.BindEnv("OLLAMA_MODEL")
	v.BindEnv("REQUEST_TIMEOUT_SECONDS")
	v.BindEnv("TEMPERATURE")
	v.BindEnv("TOP_P")

	// Try reading .env file, but don't fail if missing
	_ = v.ReadInConfig()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Port == "" {
		return fmt.Errorf("PORT must not be empty")
	}
	if c.OllamaURL == "" {
		return fmt.Errorf("OLLAMA_URL must not be empty")
	}
	if c.OllamaModel == "" {
		return fmt.Errorf("OLLAMA_MODEL must not be empty")
	}
	if c.TimeoutSeconds <= 0 {
		return fmt.Errorf("REQUEST_TIMEOUT_SECONDS must be positive, got %d", c.TimeoutSeconds)
	}
	if c.Temperature < 0 || c.Temperature > 1 {
		return fmt.Errorf("TEMPERATURE must be within [0,1], got %v", c.Temperature)
	}
	return nil
}

// Timeout returns the configured request timeout as a duration.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// BaseURL returns the generation endpoint without a trailing slash.
func (c *Config) BaseURL() string {
	return strings.TrimRight(c.OllamaURL, "/")
}

func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}
