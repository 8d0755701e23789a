package config

import (
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
)

// Config holds runtime settings for the client.
type Config struct {
	APIBaseURL           string        `validate:"required,url"`
	StorePath            string        `validate:"required"`
	SessionCheckInterval time.Duration `validate:"gte=100ms"`
	RequestTimeout       time.Duration `validate:"gt=0"`
	RetryMax             int           `validate:"gte=0,lte=10"`
	LogLevel             string        `validate:"oneof=debug info warn error"`
	HomeLimit            int           `validate:"gt=0"`
}

// LoadDefaults populates c with defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://localhost:5000/api"
	c.StorePath = "dessertai.db"
	c.SessionCheckInterval = time.Second
	c.RequestTimeout = 15 * time.Second
	c.RetryMax = 0
	c.LogLevel = "info"
	c.HomeLimit = 20
}

// Validate reports the first invalid field.
func (c *Config) Validate() error {
	v := validator.New(validator.WithRequiredStructEnabled())
	if err := v.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// LoadConfig builds a Config from defaults, the JSON file, the environment
// and os.Args, then validates it.
func LoadConfig() (*Config, error) {
	return load(os.Args[1:], os.Getenv)
}

func load(args []string, getenv func(string) string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if err := parseJSON(cfg, args); err != nil {
		return nil, err
	}
	parseEnv(cfg, getenv)
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
