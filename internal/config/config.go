package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds everything the harness needs to reach the stack under test.
// Values come from an optional YAML file, overridden by environment
// variables, with hardcoded local-development fallbacks.
type Config struct {
	App struct {
		// dev | prod
		Env      string `yaml:"env"`
		LogLevel string `yaml:"log_level"`
	} `yaml:"app"`

	Mongo struct {
		URI      string `yaml:"uri"`
		Database string `yaml:"database"`
	} `yaml:"mongo"`

	Backend struct {
		URL string `yaml:"url"`
	} `yaml:"backend"`

	Frontend struct {
		URL string `yaml:"url"`
	} `yaml:"frontend"`

	Wait struct {
		Timeout  time.Duration `yaml:"timeout"`
		Interval time.Duration `yaml:"interval"`
	} `yaml:"wait"`
}

// Defaults returns the local-development configuration.
func Defaults() *Config {
	c := &Config{}
	c.App.Env = "dev"
	c.App.LogLevel = "info"
	c.Mongo.URI = "mongodb://localhost:27017"
	c.Mongo.Database = "zenithbioscience"
	c.Backend.URL = "http://localhost:8080"
	c.Frontend.URL = "http://localhost:3000"
	c.Wait.Timeout = 120 * time.Second
	c.Wait.Interval = 2 * time.Second
	return c
}

// Load reads the YAML file at path (missing file is not an error) and then
// applies environment overrides on top of the defaults.
func Load(path string) (*Config, error) {
	cfg := Defaults()

	if path != "" {
		b, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(b, cfg); err != nil {
				return nil, fmt.Errorf("config: parse %s: %w", path, err)
			}
		case os.IsNotExist(err):
			// env-only setup, fine
		default:
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	}

	cfg.App.Env = strEnv("APP_ENV", cfg.App.Env)
	cfg.App.LogLevel = strEnv("LOG_LEVEL", cfg.App.LogLevel)
	cfg.Mongo.URI = strEnv("MONGODB_URI", cfg.Mongo.URI)
	cfg.Mongo.Database = strEnv("MONGODB_DATABASE", cfg.Mongo.Database)
	cfg.Backend.URL = strings.TrimRight(strEnv("BACKEND_URL", cfg.Backend.URL), "/")
	cfg.Frontend.URL = strings.TrimRight(strEnv("FRONTEND_URL", cfg.Frontend.URL), "/")
	cfg.Wait.Timeout = durEnv("WAIT_TIMEOUT", cfg.Wait.Timeout)
	cfg.Wait.Interval = durEnv("WAIT_INTERVAL", cfg.Wait.Interval)

	if cfg.Mongo.URI == "" {
		return nil, fmt.Errorf("config: mongo URI is empty")
	}
	if cfg.Mongo.Database == "" {
		return nil, fmt.Errorf("config: mongo database is empty")
	}
	return cfg, nil
}

func strEnv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

// durEnv accepts Go durations ("90s") and bare seconds ("90").
func durEnv(key string, def time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	if d, err := time.ParseDuration(v); err == nil {
		return d
	}
	if n, err := strconv.Atoi(v); err == nil {
		return time.Duration(n) * time.Second
	}
	return def
}
