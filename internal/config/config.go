// Package config loads server configuration from YAML with sensible
// defaults for local development.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds everything the serve command needs.
type Config struct {
	// Addr is the listen address for the HTTP server.
	Addr string `yaml:"addr"`

	// MaxDepth bounds GraphQL operation nesting.
	MaxDepth int `yaml:"max_depth"`

	// Timeout is the default per-request deadline.
	Timeout time.Duration `yaml:"timeout"`

	// MaxBodyBytes caps the request body size. 0 means unlimited.
	MaxBodyBytes int64 `yaml:"max_body_bytes"`

	// Pretty enables indented JSON responses.
	Pretty bool `yaml:"pretty"`

	// CORSOrigins enables CORS for the listed origins when non-empty.
	CORSOrigins []string `yaml:"cors_origins"`

	// GraphiQL serves the in-browser IDE on GET requests.
	GraphiQL bool `yaml:"graphiql"`

	// Metrics exposes Prometheus metrics on /metrics when true.
	Metrics bool `yaml:"metrics"`

	Otel OtelConfig `yaml:"otel"`
}

// OtelConfig configures trace export. An empty endpoint disables it.
type OtelConfig struct {
	Endpoint string `yaml:"endpoint"`
	Service  string `yaml:"service"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Addr:         ":8080",
		MaxDepth:     5,
		Timeout:      10 * time.Second,
		MaxBodyBytes: 1 << 20,
		GraphiQL:     true,
		Metrics:      true,
		Otel:         OtelConfig{Service: "fernql"},
	}
}

// Load reads the YAML file at path over the defaults, rejecting unknown
// keys. An empty path returns the defaults unchanged.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	file, err := os.Open(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to open config: %w", err)
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil {
		return cfg, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}
