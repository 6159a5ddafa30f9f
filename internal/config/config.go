package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
	"go.opentelemetry.io/otel/attribute"
)

// Config holds all configuration for the CLI and client.
type Config struct {
	// Carrier
	APIKey          string        `envconfig:"NOVAPOSHTA_API_KEY"`
	BaseURL         string        `envconfig:"NOVAPOSHTA_BASE_URL" default:"https://api.novaposhta.ua/v2.0/json/"`
	DocumentBaseURL string        `envconfig:"NOVAPOSHTA_DOCUMENT_BASE_URL" default:"https://my.novaposhta.ua"`
	Timeout         time.Duration `envconfig:"NOVAPOSHTA_TIMEOUT" default:"20s"`
	UseMock         bool          `envconfig:"NOVAPOSHTA_USE_MOCK" default:"false"`

	// Telemetry
	LogLevel    string `envconfig:"LOG_LEVEL" default:"info"`
	ServiceName string `envconfig:"SERVICE_NAME" default:"nova-poshta-api"`
	Version     string `envconfig:"SERVICE_VERSION" default:"0.0.1"`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if !cfg.UseMock && cfg.APIKey == "" {
		return nil, fmt.Errorf("NOVAPOSHTA_API_KEY is required unless NOVAPOSHTA_USE_MOCK is set")
	}
	return &cfg, nil
}

// Attributes returns OpenTelemetry attributes for this configuration.
func (c *Config) Attributes() []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.String("service.name", c.ServiceName),
		attribute.String("service.version", c.Version),
		attribute.Bool("novaposhta.mock", c.UseMock),
	}
}
