package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg := &Config{}
	cfg.LoadDefaults()

	assert.Equal(t, ":8080", cfg.EndpointAddr)
	assert.Equal(t, 24*time.Hour, cfg.PayRefValidity)
	assert.NotEmpty(t, cfg.DatabaseDSN)
}

func TestParseJsonOverlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "server.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"endpoint_addr": ":9000",
		"secret_key": "prod-secret",
		"pay_ref_validity": "48h"
	}`), 0o600))

	oldArgs := os.Args
	os.Args = []string{"server", "-c", path}
	defer func() { os.Args = oldArgs }()

	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)

	assert.Equal(t, ":9000", cfg.EndpointAddr)
	assert.Equal(t, "prod-secret", cfg.SecretKey)
	assert.Equal(t, 48*time.Hour, cfg.PayRefValidity)
	// untouched fields keep their defaults
	assert.Equal(t, "status-images", cfg.S3Bucket)
}

func TestParseFlagsOverride(t *testing.T) {
	oldArgs := os.Args
	os.Args = []string{"server", "-a", ":7070", "-d", "postgres://x", "-v", "12"}
	defer func() { os.Args = oldArgs }()

	cfg := &Config{}
	cfg.LoadDefaults()
	parseFlags(cfg)

	assert.Equal(t, ":7070", cfg.EndpointAddr)
	assert.Equal(t, "postgres://x", cfg.DatabaseDSN)
	assert.Equal(t, 12*time.Hour, cfg.PayRefValidity)
}
