package main

import (
	"encoding/base64"
	"encoding/json"
	"os"

	"github.com/avivitomchishen/nova-poshta-api/internal/config"
	"github.com/avivitomchishen/nova-poshta-api/internal/telemetry"
	"github.com/avivitomchishen/nova-poshta-api/pkg/novaposhta"
	"github.com/joho/godotenv"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
)

var logger = telemetry.NewNopLogger()

// buildClient wires config, logger and metrics into a ready client.
// A local .env file is honored when present.
func buildClient() (*novaposhta.Client, error) {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger, err = initLogger(cfg.LogLevel)
	if err != nil {
		return nil, err
	}

	client := novaposhta.New(novaposhta.Config{
		APIKey:          cfg.APIKey,
		BaseURL:         cfg.BaseURL,
		DocumentBaseURL: cfg.DocumentBaseURL,
		Timeout:         cfg.Timeout,
		UseMock:         cfg.UseMock,
	}, logger, nil)

	return client.WithRecorder(telemetry.NewMetrics()), nil
}

func initLogger(level string) (*otelzap.Logger, error) {
	return telemetry.NewLogger(level)
}

// printJSON renders an operation envelope to stdout.
func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

// writeDocument decodes a downloaded document and writes it to disk.
func writeDocument(path string, doc *novaposhta.Document) error {
	raw, err := base64.StdEncoding.DecodeString(doc.Base64)
	if err != nil {
		return err
	}
	return os.WriteFile(path, raw, 0o644)
}
