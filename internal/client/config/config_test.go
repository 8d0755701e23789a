package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noEnv(string) string { return "" }

func writeTempJSON(t *testing.T, data map[string]any) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cfg.json")
	b, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0o600))
	return path
}

func defaults() *Config {
	c := &Config{}
	c.LoadDefaults()
	return c
}

func TestLoadDefaults(t *testing.T) {
	c := defaults()

	assert.Equal(t, "http://localhost:5000/api", c.APIBaseURL)
	assert.Equal(t, "dessertai.db", c.StorePath)
	assert.Equal(t, time.Second, c.SessionCheckInterval)
	assert.Equal(t, 0, c.RetryMax)
	assert.Equal(t, 20, c.HomeLimit)
	require.NoError(t, c.Validate())
}

func TestLoad_NoSources_UsesDefaults(t *testing.T) {
	cfg, err := load(nil, noEnv)
	require.NoError(t, err)
	assert.Empty(t, cmp.Diff(defaults(), cfg))
}

func TestLoad_Precedence(t *testing.T) {
	path := writeTempJSON(t, map[string]any{
		"api_base_url":           "http://json.example/api",
		"store_path":             "json.db",
		"session_check_interval": "5s",
		"request_timeout":        "2s",
		"log_level":              "debug",
	})
	env := map[string]string{
		EnvAPIURL: "http://env.example/api",
		EnvStore:  "env.db",
	}

	cfg, err := load([]string{"-c", path, "-a", "http://flag.example/api", "-i", "3"},
		func(k string) string { return env[k] })
	require.NoError(t, err)

	want := defaults()
	want.APIBaseURL = "http://flag.example/api"
	want.StorePath = "env.db"
	want.SessionCheckInterval = 3 * time.Second
	want.RequestTimeout = 2 * time.Second
	want.LogLevel = "debug"
	assert.Empty(t, cmp.Diff(want, cfg))
}

func TestLoad_PartialJSONKeepsDefaults(t *testing.T) {
	path := writeTempJSON(t, map[string]any{"home_limit": 8})

	cfg, err := load([]string{"-config", path}, noEnv)
	require.NoError(t, err)
	assert.Equal(t, 8, cfg.HomeLimit)
	assert.Equal(t, time.Second, cfg.SessionCheckInterval)
}

func TestLoad_Errors(t *testing.T) {
	bad := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{ not json`), 0o600))

	tests := []struct {
		name string
		args []string
		env  map[string]string
	}{
		{name: "missing file", args: []string{"-c", filepath.Join(t.TempDir(), "nope.json")}},
		{name: "invalid json", args: []string{"-c", bad}},
		{name: "bad interval flag", args: []string{"-i", "abc"}},
		{name: "invalid url", args: []string{"-a", "not a url"}},
		{name: "unknown log level", env: map[string]string{EnvLogLevel: "chatty"}},
		{name: "interval too small", args: []string{"-i", "0"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := load(tt.args, func(k string) string { return tt.env[k] })
			require.Error(t, err)
		})
	}
}
