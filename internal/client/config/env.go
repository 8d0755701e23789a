package config

const (
	EnvAPIURL   = "DESSERTAI_API_URL"
	EnvStore    = "DESSERTAI_STORE"
	EnvLogLevel = "DESSERTAI_LOG_LEVEL"
)

func parseEnv(cfg *Config, getenv func(string) string) {
	if v := getenv(EnvAPIURL); v != "" {
		cfg.APIBaseURL = v
	}
	if v := getenv(EnvStore); v != "" {
		cfg.StorePath = v
	}
	if v := getenv(EnvLogLevel); v != "" {
		cfg.LogLevel = v
	}
}
