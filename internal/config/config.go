// Package config loads tripscout configuration from built-in defaults,
// an optional YAML file, and environment variables, in ascending
// precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists where a config file is searched, in order.
var DefaultConfigPaths = []string{
	"tripscout.yaml",
	"tripscout.yml",
}

// ConfigPathEnvVar overrides the config file location.
const ConfigPathEnvVar = "TRIPSCOUT_CONFIG"

// envPrefix namespaces tripscout environment overrides,
// e.g. TRIPSCOUT_PROVIDER_TIMEOUT=15s -> provider.timeout.
const envPrefix = "TRIPSCOUT_"

// apiKeyEnvVar is the conventional Google API key variable, honored
// without the TRIPSCOUT_ prefix.
const apiKeyEnvVar = "GOOGLE_API_KEY"

// ErrMissingAPIKey means no provider API key was supplied. Callers treat
// it as startup-fatal.
var ErrMissingAPIKey = errors.New("missing provider API key (set GOOGLE_API_KEY)")

// Config is the full tripscout configuration.
type Config struct {
	APIKey   string         `koanf:"api_key"`
	Provider ProviderConfig `koanf:"provider"`
	Search   SearchConfig   `koanf:"search"`
}

// ProviderConfig tunes the provider client and its resilience wrappers.
type ProviderConfig struct {
	GeocodeBaseURL  string        `koanf:"geocode_base_url"`
	PlacesBaseURL   string        `koanf:"places_base_url"`
	DistanceBaseURL string        `koanf:"distance_base_url"`
	Timeout         time.Duration `koanf:"timeout"`
	BatchSize       int           `koanf:"batch_size"`

	// Calls per second per logical operation, shared across workers.
	GeocodeRate  float64 `koanf:"geocode_rate"`
	SearchRate   float64 `koanf:"search_rate"`
	DetailsRate  float64 `koanf:"details_rate"`
	DistanceRate float64 `koanf:"distance_rate"`

	GeocodeRetries int           `koanf:"geocode_retries"`
	SearchRetries  int           `koanf:"search_retries"`
	RetryBaseDelay time.Duration `koanf:"retry_base_delay"`

	GeocodeCacheSize int `koanf:"geocode_cache_size"`
}

// SearchConfig holds the search defaults applied when the caller leaves
// a parameter unset.
type SearchConfig struct {
	RadiusMeters int      `koanf:"radius_meters"`
	MaxPerType   int      `koanf:"max_per_type"`
	Types        []string `koanf:"types"`
	SortBy       string   `koanf:"sort_by"`
	Concurrency  int      `koanf:"concurrency"`
}

func defaultConfig() *Config {
	return &Config{
		Provider: ProviderConfig{
			GeocodeBaseURL:   "https://maps.googleapis.com/maps/api/geocode/json",
			PlacesBaseURL:    "https://maps.googleapis.com/maps/api/place",
			DistanceBaseURL:  "https://maps.googleapis.com/maps/api/distancematrix/json",
			Timeout:          10 * time.Second,
			BatchSize:        25,
			GeocodeRate:      10,
			SearchRate:       10,
			DetailsRate:      5,
			DistanceRate:     10,
			GeocodeRetries:   3,
			SearchRetries:    2,
			RetryBaseDelay:   time.Second,
			GeocodeCacheSize: 100,
		},
		Search: SearchConfig{
			RadiusMeters: 5000,
			MaxPerType:   10,
			Types:        []string{"tourist_attraction"},
			SortBy:       "rating",
			Concurrency:  4,
		},
	}
}

// Load builds the configuration: defaults, then an optional YAML file,
// then environment variables.
func Load() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("loading defaults: %w", err)
	}

	if path := findConfigFile(); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("loading config file %s: %w", path, err)
		}
	}

	envProvider := env.Provider(envPrefix, ".", envTransform)
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("loading environment: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling configuration: %w", err)
	}

	if cfg.APIKey == "" {
		cfg.APIKey = os.Getenv(apiKeyEnvVar)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration for values the engine cannot run with.
func (c *Config) Validate() error {
	if c.APIKey == "" {
		return ErrMissingAPIKey
	}
	if c.Provider.BatchSize < 1 {
		return fmt.Errorf("provider.batch_size must be positive, got %d", c.Provider.BatchSize)
	}
	if c.Search.Concurrency < 1 {
		return fmt.Errorf("search.concurrency must be positive, got %d", c.Search.Concurrency)
	}
	switch c.Search.SortBy {
	case "rating", "distance", "reviews":
	default:
		return fmt.Errorf("search.sort_by must be rating, distance or reviews, got %q", c.Search.SortBy)
	}
	return nil
}

// envTransform maps TRIPSCOUT_* variables onto koanf paths. The section
// name is the first underscore-delimited token; the rest is the key,
// which may itself contain underscores:
// TRIPSCOUT_PROVIDER_RETRY_BASE_DELAY -> provider.retry_base_delay.
func envTransform(s string) string {
	s = strings.ToLower(strings.TrimPrefix(s, envPrefix))
	section, key, found := strings.Cut(s, "_")
	if !found {
		return s
	}
	switch section {
	case "provider", "search":
		return section + "." + key
	}
	return s
}

func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
		return ""
	}
	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}
