// Package config resolves runtime settings from the environment.
package config

import (
	"github.com/caarlos0/env/v11"
)

// Config holds the environment-driven settings. Command-line flags take
// precedence over these.
type Config struct {
	// TemplateDir overrides the template library location
	// (default ~/.templink/templates).
	TemplateDir string `env:"TEMPLINK_DIR"`

	// Port is the listen port for --serve mode.
	Port int `env:"TEMPLINK_PORT" envDefault:"8080"`
}

// Load parses the configuration from the environment.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
