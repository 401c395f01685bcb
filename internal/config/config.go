package config

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
)

// Prefix of every environment variable read by Load
const Prefix = "XIANGQI"

type Configuration struct {
	// empty disables persistence
	StoragePath string `envconfig:"STORAGE_PATH"`
	HistoryFile string `envconfig:"HISTORY_FILE"`
	Theme       string `envconfig:"THEME" default:"wood" validate:"oneof=off red wood gray"`
	Dev         bool   `envconfig:"DEV"`
	LogLevel    string `envconfig:"LOG_LEVEL" default:"warn" validate:"oneof=debug info warn error"`
}

// Load reads the configuration from XIANGQI_* environment variables
func Load() (*Configuration, error) {
	config := &Configuration{}
	if err := envconfig.Process(Prefix, config); err != nil {
		return nil, err
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// Validate checks values after flags have been applied on top of the
// environment
func (c *Configuration) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}
