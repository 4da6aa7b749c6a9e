package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

// Config holds application configuration loaded from environment variables,
// optionally seeded by a .env file and a YAML config file.
type Config struct {
	Addr            string        // PORTALDIFF_ADDR, default ":8080"
	DBPath          string        // PORTALDIFF_DB, default ":memory:"
	HubSpotBaseURL  string        // PORTALDIFF_HUBSPOT_BASE_URL, optional override
	SessionTTL      time.Duration // PORTALDIFF_SESSION_TTL, default 1h
	CacheTTL        time.Duration // PORTALDIFF_CACHE_TTL, default 15m
	CleanupInterval time.Duration // PORTALDIFF_CLEANUP_INTERVAL, default 5m
	RequestTimeout  time.Duration // PORTALDIFF_REQUEST_TIMEOUT, default 30s
}

// fileConfig mirrors Config for the optional YAML file named by
// PORTALDIFF_CONFIG. Values are strings; ${VAR} references are expanded
// before parsing.
type fileConfig struct {
	Addr            string `yaml:"addr"`
	DB              string `yaml:"db"`
	HubSpotBaseURL  string `yaml:"hubspot_base_url"`
	SessionTTL      string `yaml:"session_ttl"`
	CacheTTL        string `yaml:"cache_ttl"`
	CleanupInterval string `yaml:"cleanup_interval"`
	RequestTimeout  string `yaml:"request_timeout"`
}

// Load reads configuration with precedence: environment, then config file,
// then defaults. A .env file in the working directory seeds the environment
// for local runs; absence is fine.
func Load() (Config, error) {
	_ = godotenv.Load()

	var file fileConfig
	if path := os.Getenv("PORTALDIFF_CONFIG"); path != "" {
		loaded, err := loadFile(path)
		if err != nil {
			return Config{}, err
		}
		file = loaded
	}

	cfg := Config{
		Addr:           lookup("PORTALDIFF_ADDR", file.Addr, ":8080"),
		DBPath:         lookup("PORTALDIFF_DB", file.DB, ":memory:"),
		HubSpotBaseURL: lookup("PORTALDIFF_HUBSPOT_BASE_URL", file.HubSpotBaseURL, ""),
	}

	var err error
	if cfg.SessionTTL, err = duration("PORTALDIFF_SESSION_TTL", file.SessionTTL, time.Hour); err != nil {
		return Config{}, err
	}
	if cfg.CacheTTL, err = duration("PORTALDIFF_CACHE_TTL", file.CacheTTL, 15*time.Minute); err != nil {
		return Config{}, err
	}
	if cfg.CleanupInterval, err = duration("PORTALDIFF_CLEANUP_INTERVAL", file.CleanupInterval, 5*time.Minute); err != nil {
		return Config{}, err
	}
	if cfg.RequestTimeout, err = duration("PORTALDIFF_REQUEST_TIMEOUT", file.RequestTimeout, 30*time.Second); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func loadFile(path string) (fileConfig, error) {
	var fc fileConfig
	data, err := os.ReadFile(path)
	if err != nil {
		return fc, fmt.Errorf("read config file: %w", err)
	}
	expanded := os.ExpandEnv(string(data))
	if err := yaml.Unmarshal([]byte(expanded), &fc); err != nil {
		return fc, fmt.Errorf("parse config file %s: %w", path, err)
	}
	return fc, nil
}

func lookup(key, fileValue, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	if fileValue != "" {
		return fileValue
	}
	return fallback
}

func duration(key, fileValue string, fallback time.Duration) (time.Duration, error) {
	raw := lookup(key, fileValue, "")
	if raw == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", key, err)
	}
	return d, nil
}
