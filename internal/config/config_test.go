package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Guyuepp/blog-client/internal/config"
)

func env(values map[string]string) func(string) string {
	return func(key string) string { return values[key] }
}

func TestFromEnvDefaults(t *testing.T) {
	cfg, err := config.FromEnv(env(nil))
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8080/api", cfg.APIBaseURL)
	assert.Equal(t, 15*time.Second, cfg.APITimeout)
	assert.Equal(t, "sqlite", cfg.StateDriver)
	assert.Equal(t, "blog-client.db", cfg.SQLitePath)
	assert.Equal(t, "127.0.0.1:9090", cfg.ControlAddress)
	assert.Equal(t, 30*time.Second, cfg.ContextTimeout)
	assert.Equal(t, "/", cfg.StartURL)
	assert.Equal(t, "sync", cfg.ViewTracking)
	assert.True(t, cfg.SwallowViewErrors)
	assert.True(t, cfg.ThemeFollowSystem)
	assert.Equal(t, "light", cfg.SystemTheme)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.False(t, cfg.Offline)
}

func TestFromEnvOverrides(t *testing.T) {
	cfg, err := config.FromEnv(env(map[string]string{
		"API_BASE_URL":        "https://blog.example.com/api",
		"API_TIMEOUT":         "5",
		"STATE_DRIVER":        "Redis",
		"CACHE_HOST":          "cache",
		"CACHE_DB":            "3",
		"VIEW_TRACKING":       "async",
		"SWALLOW_VIEW_ERRORS": "false",
		"SYSTEM_THEME":        "dark",
		"LOG_FORMAT":          "json",
		"OFFLINE":             "1",
	}))
	require.NoError(t, err)

	assert.Equal(t, "https://blog.example.com/api", cfg.APIBaseURL)
	assert.Equal(t, 5*time.Second, cfg.APITimeout)
	assert.Equal(t, "redis", cfg.StateDriver)
	assert.Equal(t, "cache:6379", cfg.CacheAddress())
	assert.Equal(t, 3, cfg.Cache.DB)
	assert.Equal(t, "async", cfg.ViewTracking)
	assert.False(t, cfg.SwallowViewErrors)
	assert.Equal(t, "dark", cfg.SystemTheme)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.True(t, cfg.Offline)
}

func TestFromEnvFallsBackOnUnparsableValues(t *testing.T) {
	cfg, err := config.FromEnv(env(map[string]string{
		"API_TIMEOUT":         "soon",
		"CONTEXT_TIMEOUT":     "-4",
		"SWALLOW_VIEW_ERRORS": "maybe",
	}))
	require.NoError(t, err)
	assert.Equal(t, 15*time.Second, cfg.APITimeout)
	assert.Equal(t, 30*time.Second, cfg.ContextTimeout)
	assert.True(t, cfg.SwallowViewErrors)
}

func TestFromEnvRejectsInvalidSettings(t *testing.T) {
	tests := map[string]map[string]string{
		"unknown driver":     {"STATE_DRIVER": "mongo"},
		"mysql without host": {"STATE_DRIVER": "mysql", "DATABASE_NAME": "blog"},
		"redis without host": {"STATE_DRIVER": "redis"},
		"cache db range":     {"STATE_DRIVER": "redis", "CACHE_HOST": "cache", "CACHE_DB": "16"},
		"view tracking":      {"VIEW_TRACKING": "never"},
		"system theme":       {"SYSTEM_THEME": "cream"},
		"log level":          {"LOG_LEVEL": "loud"},
		"control address":    {"CONTROL_ADDRESS": "nowhere"},
	}
	for name, values := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := config.FromEnv(env(values))
			assert.Error(t, err)
		})
	}
}
