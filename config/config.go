package config

import (
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is wrapped by every validation failure
var ErrInvalidConfig = errors.New("invalid config")

// S3Config selects where exported pages are written. An empty Bucket disables S3.
type S3Config struct {
	Bucket       string `yaml:"bucket"`
	Prefix       string `yaml:"prefix"`
	Region       string `yaml:"region"`
	Profile      string `yaml:"profile"`
	UsePathStyle bool   `yaml:"use_path_style"`
}

// Config is the resolved runtime configuration
type Config struct {
	BaseURL string `yaml:"base_url"`
	// PageSize must equal the page size of the backend at BaseURL: total
	// pages are derived from it. serve uses it as its own page size.
	PageSize  int      `yaml:"page_size"`
	Timeout   Duration `yaml:"timeout"`
	RateLimit float64  `yaml:"rate_limit"`
	RateBurst int      `yaml:"rate_burst"`
	LogLevel  string   `yaml:"log_level"`
	LogFile   string   `yaml:"log_file"`
	S3        S3Config `yaml:"s3"`
}

// Duration lets YAML carry values such as "10s" or "1m30s"
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("parse duration %q: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}

// Default returns the built-in configuration
func Default() Config {
	return Config{
		BaseURL:   DefaultBaseURL,
		PageSize:  DefaultPageSize,
		Timeout:   Duration(DefaultTimeout),
		RateLimit: DefaultRateLimit,
		RateBurst: DefaultRateBurst,
		LogLevel:  "info",
		LogFile:   DefaultLogPath(),
	}
}

// DefaultConfigPath is where Load looks when no path is given
func DefaultConfigPath() string {
	return filepath.Join(xdg.ConfigHome, "newsdash", "config.yaml")
}

// DefaultLogPath is where the TUI writes its log
func DefaultLogPath() string {
	return filepath.Join(xdg.StateHome, "newsdash", "newsdash.log")
}

// Load builds the configuration from defaults, the YAML file at path and the environment.
// A missing file is not an error; an unreadable or malformed one is.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultConfigPath()
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist) && !explicit:
		// defaults only
	default:
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}

	applyEnv(&cfg)
	return cfg, cfg.Validate()
}

// applyEnv overrides fields from environment variables
func applyEnv(cfg *Config) {
	cfg.BaseURL = GetEnvOrDefault("NEWSDASH_BASE_URL", cfg.BaseURL)
	cfg.LogLevel = GetEnvOrDefault("NEWSDASH_LOG_LEVEL", cfg.LogLevel)
	cfg.LogFile = GetEnvOrDefault("NEWSDASH_LOG_FILE", cfg.LogFile)

	if v := os.Getenv("NEWSDASH_PAGE_SIZE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.PageSize = n
		} else {
			slog.Warn("ignoring invalid NEWSDASH_PAGE_SIZE", slog.String("value", v))
		}
	}
	if v := os.Getenv("NEWSDASH_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Timeout = Duration(d)
		} else {
			slog.Warn("ignoring invalid NEWSDASH_TIMEOUT", slog.String("value", v))
		}
	}

	cfg.S3.Bucket = strings.TrimSpace(GetEnvOrDefault("S3_BUCKET", cfg.S3.Bucket))
	cfg.S3.Prefix = strings.TrimSpace(GetEnvOrDefault("S3_PREFIX", cfg.S3.Prefix))
	cfg.S3.Region = strings.TrimSpace(GetEnvOrDefault("S3_REGION", cfg.S3.Region))
	cfg.S3.Profile = strings.TrimSpace(GetEnvOrDefault("S3_PROFILE", cfg.S3.Profile))
	if v := os.Getenv("S3_USE_PATH_STYLE"); v != "" {
		cfg.S3.UsePathStyle = strings.EqualFold(strings.TrimSpace(v), "true")
	}
}

// Validate reports the first invalid field
func (c Config) Validate() error {
	u, err := url.Parse(c.BaseURL)
	if c.BaseURL == "" || err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: base_url %q must be an absolute http(s) URL", ErrInvalidConfig, c.BaseURL)
	}
	if c.PageSize <= 0 {
		return fmt.Errorf("%w: page_size must be positive, got %d", ErrInvalidConfig, c.PageSize)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("%w: timeout must be positive", ErrInvalidConfig)
	}
	if c.RateLimit < 0 || c.RateBurst < 0 {
		return fmt.Errorf("%w: rate_limit and rate_burst must not be negative", ErrInvalidConfig)
	}
	return nil
}

// RequestTimeout returns Timeout as a time.Duration
func (c Config) RequestTimeout() time.Duration {
	return time.Duration(c.Timeout)
}

// GetEnvOrDefault returns the value of an environment variable or a default value
func GetEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
