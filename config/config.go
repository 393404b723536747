package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	API     APIConfig
	Session SessionConfig
	Cache   CacheConfig
	Serve   ServeConfig
	Logging LoggingConfig
}

type APIConfig struct {
	BaseURL string
	Timeout time.Duration
}

type SessionConfig struct {
	Path string
}

type CacheConfig struct {
	Path string
}

type ServeConfig struct {
	Addr         string
	Env          string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type LoggingConfig struct {
	Verbose bool
}

// fileConfig is the shape of ~/.pagos/config.yaml. Durations are strings
// ("30s") so the file stays human-writable.
type fileConfig struct {
	API struct {
		BaseURL string `yaml:"base_url"`
		Timeout string `yaml:"timeout"`
	} `yaml:"api"`
	Session struct {
		Path string `yaml:"path"`
	} `yaml:"session"`
	Cache struct {
		Path string `yaml:"path"`
	} `yaml:"cache"`
	Serve struct {
		Addr string `yaml:"addr"`
		Env  string `yaml:"env"`
	} `yaml:"serve"`
	Logging struct {
		Verbose bool `yaml:"verbose"`
	} `yaml:"logging"`
}

// Load builds the configuration from compiled defaults, then
// ~/.pagos/config.yaml when present, then PAGOS_* environment variables.
func Load() (*Config, error) {
	cfg := &Config{
		API: APIConfig{
			BaseURL: "https://api.pagos.example.com",
			Timeout: 30 * time.Second,
		},
		Session: SessionConfig{Path: filepath.Join(configDir(), "session.json")},
		Cache:   CacheConfig{Path: filepath.Join(configDir(), "payments.db")},
		Serve: ServeConfig{
			Addr:         "127.0.0.1:8099",
			Env:          "development",
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
		},
	}

	if err := loadFile(cfg, filepath.Join(configDir(), "config.yaml")); err != nil {
		return nil, err
	}
	if err := loadEnv(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func configDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".pagos"
	}
	return filepath.Join(home, ".pagos")
}

func loadFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read config %s: %w", path, err)
	}
	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	cfg.API.BaseURL = override(fc.API.BaseURL, cfg.API.BaseURL)
	cfg.Session.Path = override(fc.Session.Path, cfg.Session.Path)
	cfg.Cache.Path = override(fc.Cache.Path, cfg.Cache.Path)
	cfg.Serve.Addr = override(fc.Serve.Addr, cfg.Serve.Addr)
	cfg.Serve.Env = override(fc.Serve.Env, cfg.Serve.Env)
	if fc.Logging.Verbose {
		cfg.Logging.Verbose = true
	}
	if fc.API.Timeout != "" {
		d, err := time.ParseDuration(fc.API.Timeout)
		if err != nil {
			return fmt.Errorf("invalid api.timeout in %s: %w", path, err)
		}
		cfg.API.Timeout = d
	}
	return nil
}

func override(v, fallback string) string {
	if v != "" {
		return v
	}
	return fallback
}

func loadEnv(cfg *Config) error {
	cfg.API.BaseURL = valueOrDefault("PAGOS_API_URL", cfg.API.BaseURL)
	cfg.Session.Path = valueOrDefault("PAGOS_SESSION_PATH", cfg.Session.Path)
	cfg.Cache.Path = valueOrDefault("PAGOS_CACHE_PATH", cfg.Cache.Path)
	cfg.Serve.Addr = valueOrDefault("PAGOS_SERVE_ADDR", cfg.Serve.Addr)
	cfg.Serve.Env = valueOrDefault("PAGOS_ENV", cfg.Serve.Env)

	if v := os.Getenv("PAGOS_API_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid PAGOS_API_TIMEOUT: %w", err)
		}
		cfg.API.Timeout = d
	}
	if v := os.Getenv("PAGOS_VERBOSE"); v == "1" || v == "true" {
		cfg.Logging.Verbose = true
	}
	return nil
}

func valueOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
