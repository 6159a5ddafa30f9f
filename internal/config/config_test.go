package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("NOVAPOSHTA_API_KEY", "test-key")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "test-key", cfg.APIKey)
	assert.Equal(t, "https://api.novaposhta.ua/v2.0/json/", cfg.BaseURL)
	assert.Equal(t, "https://my.novaposhta.ua", cfg.DocumentBaseURL)
	assert.Equal(t, 20*time.Second, cfg.Timeout)
	assert.False(t, cfg.UseMock)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "nova-poshta-api", cfg.ServiceName)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("NOVAPOSHTA_API_KEY", "test-key")
	t.Setenv("NOVAPOSHTA_BASE_URL", "http://localhost:8080/json/")
	t.Setenv("NOVAPOSHTA_TIMEOUT", "5s")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080/json/", cfg.BaseURL)
	assert.Equal(t, 5*time.Second, cfg.Timeout)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoad_MissingKeyFails(t *testing.T) {
	t.Setenv("NOVAPOSHTA_API_KEY", "")
	t.Setenv("NOVAPOSHTA_USE_MOCK", "false")

	_, err := Load()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "NOVAPOSHTA_API_KEY")
}

func TestLoad_MockModeNeedsNoKey(t *testing.T) {
	t.Setenv("NOVAPOSHTA_API_KEY", "")
	t.Setenv("NOVAPOSHTA_USE_MOCK", "true")

	cfg, err := Load()

	require.NoError(t, err)
	assert.True(t, cfg.UseMock)
}

func TestAttributes(t *testing.T) {
	cfg := &Config{ServiceName: "svc", Version: "1.2.3", UseMock: true}

	attrs := cfg.Attributes()

	assert.Len(t, attrs, 3)
}
