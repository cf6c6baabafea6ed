package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func env(vars map[string]string) func(string) string {
	return func(key string) string { return vars[key] }
}

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := loadConfig(nil, env(nil))
	require.NoError(t, err)

	assert.Equal(t, 4000, cfg.port)
	assert.Equal(t, "development", cfg.environment)
	assert.Equal(t, "text", cfg.logFormat)
	assert.Equal(t, 2.0, cfg.limiter.rps)
	assert.Equal(t, 4, cfg.limiter.burst)
	assert.True(t, cfg.limiter.enabled)
}

func TestLoadConfig_EnvironmentThenFlags(t *testing.T) {
	vars := env(map[string]string{
		"CATALOG_PORT":            "8080",
		"CATALOG_ENV":             "staging",
		"CATALOG_LOG_FORMAT":      "json",
		"CATALOG_LIMITER_ENABLED": "false",
	})

	cfg, err := loadConfig(nil, vars)
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.port)
	assert.Equal(t, "staging", cfg.environment)
	assert.Equal(t, "json", cfg.logFormat)
	assert.False(t, cfg.limiter.enabled)

	cfg, err = loadConfig([]string{"-port", "9090", "-env", "production", "-limiter-burst", "10"}, vars)
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.port)
	assert.Equal(t, "production", cfg.environment)
	assert.Equal(t, 10, cfg.limiter.burst)
}

func TestLoadConfig_Errors(t *testing.T) {
	_, err := loadConfig(nil, env(map[string]string{"CATALOG_PORT": "eighty"}))
	assert.ErrorContains(t, err, "CATALOG_PORT")

	_, err = loadConfig([]string{"-log-format", "xml"}, env(nil))
	assert.ErrorContains(t, err, "invalid log format")

	_, err = loadConfig([]string{"-no-such-flag"}, env(nil))
	assert.Error(t, err)
}
