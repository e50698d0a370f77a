package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skillbridge/internal/form"
)

// unsetenv removes k for the duration of the test.
func unsetenv(t *testing.T, k string) {
	t.Helper()
	t.Setenv(k, "")
	require.NoError(t, os.Unsetenv(k))
}

func TestNewConfigFromEnvironmentDefaults(t *testing.T) {
	for _, k := range []string{"ENV", "API_BASE_URL", "AUTH_BACKEND", "SESSION_STORAGE", "VALIDATION_RULESET"} {
		unsetenv(t, k)
	}

	cfg, err := NewConfigFromEnvironment(nil)
	require.NoError(t, err)
	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, "http://localhost:8000", cfg.APIBaseURL)
	assert.Equal(t, form.Strict, cfg.Rules)
	assert.True(t, cfg.EnableStackTrace)
	assert.False(t, cfg.CookieSecure)
}

func TestNewConfigFromEnvironmentProduction(t *testing.T) {
	t.Setenv("ENV", "production")
	t.Setenv("PORT", "8080")
	t.Setenv("HOST", "0.0.0.0")
	t.Setenv("VALIDATION_RULESET", "loose")

	cfg, err := NewConfigFromEnvironment(nil)
	require.NoError(t, err)
	assert.True(t, cfg.CookieSecure)
	assert.True(t, cfg.DisableLogColors)
	assert.False(t, cfg.EnableStackTrace)
	assert.Equal(t, form.Loose, cfg.Rules)
	assert.Equal(t, "0.0.0.0:8080", cfg.Addr())
}

func TestNewConfigFromEnvironmentRejectsIncompleteSettings(t *testing.T) {
	cases := map[string]map[string]string{
		"cognito without client": {"AUTH_BACKEND": "cognito", "COGNITO_CLIENT_ID": ""},
		"unknown backend":        {"AUTH_BACKEND": "ldap"},
		"postgres without url":   {"SESSION_STORAGE": "postgres", "DATABASE_URL": ""},
		"redis without url":      {"SESSION_STORAGE": "redis", "REDIS_URL": ""},
		"unknown ruleset":        {"VALIDATION_RULESET": "medium"},
	}
	for name, vars := range cases {
		t.Run(name, func(t *testing.T) {
			for k, v := range vars {
				t.Setenv(k, v)
			}
			_, err := NewConfigFromEnvironment(nil)
			assert.Error(t, err)
		})
	}
}

func TestNewTestConfig(t *testing.T) {
	cfg := NewTestConfig(nil)
	assert.True(t, cfg.DisableCSRF)
	assert.Equal(t, StorageMemory, cfg.SessionStorage)
	assert.NotNil(t, cfg.StaticFS)
}
