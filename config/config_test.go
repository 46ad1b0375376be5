package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"NEWSDASH_BASE_URL", "NEWSDASH_PAGE_SIZE", "NEWSDASH_TIMEOUT",
		"NEWSDASH_LOG_LEVEL", "NEWSDASH_LOG_FILE",
		"S3_BUCKET", "S3_PREFIX", "S3_REGION", "S3_PROFILE", "S3_USE_PATH_STYLE",
	} {
		t.Setenv(k, "")
	}
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, DefaultBaseURL, cfg.BaseURL)
	assert.Equal(t, 50, cfg.PageSize)
	assert.Equal(t, DefaultTimeout, cfg.RequestTimeout())
	assert.NoError(t, cfg.Validate())
}

func TestLoadFromFile(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, `
base_url: https://news.example.com/api/news
page_size: 25
timeout: 3s
log_level: debug
s3:
  bucket: snapshots
  prefix: dash/
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "https://news.example.com/api/news", cfg.BaseURL)
	assert.Equal(t, 25, cfg.PageSize)
	assert.Equal(t, 3*time.Second, cfg.RequestTimeout())
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "snapshots", cfg.S3.Bucket)
	assert.Equal(t, "dash/", cfg.S3.Prefix)
	// untouched fields keep their defaults
	assert.Equal(t, DefaultRateBurst, cfg.RateBurst)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, "base_url: https://file.example.com/api/news\npage_size: 25\n")
	t.Setenv("NEWSDASH_BASE_URL", "http://env.example.com/api/news")
	t.Setenv("NEWSDASH_PAGE_SIZE", "10")
	t.Setenv("NEWSDASH_TIMEOUT", "1m")
	t.Setenv("S3_USE_PATH_STYLE", "TRUE")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "http://env.example.com/api/news", cfg.BaseURL)
	assert.Equal(t, 10, cfg.PageSize)
	assert.Equal(t, time.Minute, cfg.RequestTimeout())
	assert.True(t, cfg.S3.UsePathStyle)
}

func TestLoadInvalidEnvKeepsValue(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, "page_size: 30\n")
	t.Setenv("NEWSDASH_PAGE_SIZE", "lots")
	t.Setenv("NEWSDASH_TIMEOUT", "soon")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 30, cfg.PageSize)
	assert.Equal(t, DefaultTimeout, cfg.RequestTimeout())
}

func TestLoadMissingExplicitFile(t *testing.T) {
	clearEnv(t)
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestLoadMalformedFile(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, "timeout: [not a duration\n")
	_, err := Load(path)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty base url", func(c *Config) { c.BaseURL = "" }},
		{"relative base url", func(c *Config) { c.BaseURL = "/api/news" }},
		{"unsupported scheme", func(c *Config) { c.BaseURL = "ftp://example.com" }},
		{"zero page size", func(c *Config) { c.PageSize = 0 }},
		{"zero timeout", func(c *Config) { c.Timeout = 0 }},
		{"negative burst", func(c *Config) { c.RateBurst = -1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestGetEnvOrDefault(t *testing.T) {
	t.Setenv("NEWSDASH_TEST_KEY", "")
	assert.Equal(t, "fallback", GetEnvOrDefault("NEWSDASH_TEST_KEY", "fallback"))
	t.Setenv("NEWSDASH_TEST_KEY", "set")
	assert.Equal(t, "set", GetEnvOrDefault("NEWSDASH_TEST_KEY", "fallback"))
}
