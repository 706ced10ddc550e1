package app

import "errors"

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	ComponentsPath string // root of the manifest tree the scanner walks
	EnvFile        string // optional .env file loaded before wiring
	HTTPPort       int    // introspection server port, 0 disables

	LogFormat string
	LogLevel  string
}

// NewConfig validates a Config and returns it.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.ComponentsPath == "" {
		return nil, errors.New("ComponentsPath is a required configuration field and cannot be empty")
	}
	return &cfg, nil
}
