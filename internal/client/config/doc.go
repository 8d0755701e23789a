// Package config loads runtime configuration for the DessertAI terminal client.
//
// Sources & precedence (later wins)
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected with -c or -config (see parseJSON).
//  3. Environment variables (see parseEnv).
//  4. Command-line flags (see parseFlags).
//
// # Supported flags
//
//	-a string   base URL of the recipe API
//	-s string   path of the local SQLite store
//	-i int      session check interval (seconds)
//	-l string   log level: debug, info, warn, error
//
// # Environment
//
//	DESSERTAI_API_URL, DESSERTAI_STORE, DESSERTAI_LOG_LEVEL
//
// # JSON schema
//
// Durations accept "1s" style strings or integer nanoseconds:
//
//	{
//	  "api_base_url": "http://localhost:5000/api",
//	  "store_path": "dessertai.db",
//	  "session_check_interval": "1s",
//	  "request_timeout": "15s",
//	  "retry_max": 0,
//	  "log_level": "info",
//	  "home_limit": 20
//	}
package config
