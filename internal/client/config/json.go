package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/dessertai/internal/flagx"
	"github.com/dmitrijs2005/dessertai/internal/timex"
)

// jsonConfig is the on-disk shape. Pointer fields distinguish "absent" from
// zero so a partial file only overrides what it names.
type jsonConfig struct {
	APIBaseURL           *string         `json:"api_base_url"`
	StorePath            *string         `json:"store_path"`
	SessionCheckInterval *timex.Duration `json:"session_check_interval"`
	RequestTimeout       *timex.Duration `json:"request_timeout"`
	RetryMax             *int            `json:"retry_max"`
	LogLevel             *string         `json:"log_level"`
	HomeLimit            *int            `json:"home_limit"`
}

func parseJSON(cfg *Config, args []string) error {
	path := flagx.ConfigPath(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}

	var jc jsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	if jc.APIBaseURL != nil {
		cfg.APIBaseURL = *jc.APIBaseURL
	}
	if jc.StorePath != nil {
		cfg.StorePath = *jc.StorePath
	}
	if jc.SessionCheckInterval != nil {
		cfg.SessionCheckInterval = jc.SessionCheckInterval.Duration
	}
	if jc.RequestTimeout != nil {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.RetryMax != nil {
		cfg.RetryMax = *jc.RetryMax
	}
	if jc.LogLevel != nil {
		cfg.LogLevel = *jc.LogLevel
	}
	if jc.HomeLimit != nil {
		cfg.HomeLimit = *jc.HomeLimit
	}
	return nil
}
