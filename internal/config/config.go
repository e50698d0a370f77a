package config

import (
	"fmt"
	"io/fs"
	"os"
	"testing/fstest"

	"github.com/caarlos0/env/v11"

	"skillbridge/internal/backend"
	"skillbridge/internal/constants"
	"skillbridge/internal/form"
)

const (
	BackendAPI     = "api"
	BackendCognito = "cognito"

	StorageMemory   = "memory"
	StoragePostgres = "postgres"
	StorageRedis    = "redis"
)

// Config is the global config for the app router. Host and Port are needed for absolute URL generation.
type Config struct {
	Env               string `env:"ENV" envDefault:"development"`
	Host              string `env:"HOST"`
	Port              string `env:"PORT" envDefault:"3000"`
	APIBaseURL        string `env:"API_BASE_URL" envDefault:"http://localhost:8000"`
	AuthBackend       string `env:"AUTH_BACKEND" envDefault:"api"`
	CognitoClientId   string `env:"COGNITO_CLIENT_ID"`
	SessionStorage    string `env:"SESSION_STORAGE" envDefault:"memory"`
	DatabaseUrl       string `env:"DATABASE_URL"`
	RedisUrl          string `env:"REDIS_URL"`
	ValidationRuleset string `env:"VALIDATION_RULESET" envDefault:"strict"`
	DisableCSRF       bool   `env:"DISABLE_CSRF"`

	// Derived from Env.
	CookieSecure     bool `env:"-"`
	DisableLogColors bool `env:"-"`
	EnableStackTrace bool `env:"-"`

	Rules    form.Ruleset   `env:"-"`
	Backend  backend.Client `env:"-"`
	StaticFS fs.FS          `env:"-"`
}

// NewConfigFromEnvironment reads the environment (load .env first). The
// backend client is left for the caller to build.
func NewConfigFromEnvironment(staticFS fs.FS) (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("parse env: %w", err)
	}
	if cfg.Env == constants.EnvTest && cfg.DatabaseUrl == "" {
		cfg.DatabaseUrl = os.Getenv("TEST_DATABASE_URL")
	}

	cfg.StaticFS = staticFS
	return cfg, cfg.finish()
}

// NewTestConfig returns a config suitable for driving the app with app.Test.
func NewTestConfig(client backend.Client) *Config {
	cfg := &Config{
		Env:               constants.EnvTest,
		Port:              "0",
		AuthBackend:       BackendAPI,
		SessionStorage:    StorageMemory,
		ValidationRuleset: string(form.Strict),
		DisableCSRF:       true,
		Backend:           client,
		StaticFS: fstest.MapFS{
			"static/app.css": &fstest.MapFile{Data: []byte("body{}")},
		},
	}
	if err := cfg.finish(); err != nil {
		panic(err)
	}
	return cfg
}

func (c *Config) finish() error {
	rules, err := form.ParseRuleset(c.ValidationRuleset)
	if err != nil {
		return err
	}
	c.Rules = rules

	switch c.AuthBackend {
	case BackendAPI:
	case BackendCognito:
		if c.CognitoClientId == "" {
			return fmt.Errorf("AUTH_BACKEND=%s requires COGNITO_CLIENT_ID", BackendCognito)
		}
	default:
		return fmt.Errorf("unknown AUTH_BACKEND %q", c.AuthBackend)
	}

	switch c.SessionStorage {
	case StorageMemory:
	case StoragePostgres:
		if c.DatabaseUrl == "" {
			return fmt.Errorf("SESSION_STORAGE=%s requires DATABASE_URL", StoragePostgres)
		}
	case StorageRedis:
		if c.RedisUrl == "" {
			return fmt.Errorf("SESSION_STORAGE=%s requires REDIS_URL", StorageRedis)
		}
	default:
		return fmt.Errorf("unknown SESSION_STORAGE %q", c.SessionStorage)
	}

	c.CookieSecure = c.Env == constants.EnvProduction
	c.DisableLogColors = c.Env == constants.EnvProduction
	c.EnableStackTrace = c.Env == constants.EnvDevelopment
	return nil
}

func (c *Config) Addr() string {
	return c.Host + ":" + c.Port
}
