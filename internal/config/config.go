package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	// Server
	Port        int    `envconfig:"PORT" default:"3000"`
	Environment string `envconfig:"ENV" default:"development"`

	// Database
	DatabaseURL string `envconfig:"DATABASE_URL" required:"true"`

	// Provider
	ProviderType string `envconfig:"PROVIDER_TYPE" default:"deepface"`
	DeepFaceURL  string `envconfig:"DEEPFACE_URL" default:"http://localhost:5005"`

	// Matching
	MatchThreshold float64 `envconfig:"MATCH_THRESHOLD" default:"0.5"`
	DescriptorDim  int     `envconfig:"DESCRIPTOR_DIM" default:"128"`
	UnknownLabel   string  `envconfig:"UNKNOWN_LABEL" default:"unknown"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.MatchThreshold < 0 {
		return fmt.Errorf("invalid config: MATCH_THRESHOLD must be >= 0, got %v", c.MatchThreshold)
	}
	if c.DescriptorDim <= 0 {
		return fmt.Errorf("invalid config: DESCRIPTOR_DIM must be > 0, got %d", c.DescriptorDim)
	}
	return nil
}

func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
