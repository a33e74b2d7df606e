// Package config loads hellod settings from a file and the environment.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"hellod/internal/common/fsutil"
)

// EnvPrefix prefixes every environment override, e.g. HELLOD_ADDR.
const EnvPrefix = "HELLOD_"

// DefaultAPIURL is the users API queried when none is configured.
const DefaultAPIURL = "https://reqres.in/api"

// Config holds runtime parameters for the service.
type Config struct {
	Addr             string  `json:"addr" yaml:"addr" toml:"addr" env:"ADDR"`
	APIURL           string  `json:"api_url" yaml:"api_url" toml:"api_url" env:"API_URL"`
	RequestTimeoutMS int     `json:"request_timeout_ms" yaml:"request_timeout_ms" toml:"request_timeout_ms" env:"REQUEST_TIMEOUT_MS"`
	DevTools         bool    `json:"dev_tools" yaml:"dev_tools" toml:"dev_tools" env:"DEV_TOOLS"`
	LogLevel         string  `json:"log_level" yaml:"log_level" toml:"log_level" env:"LOG_LEVEL"`
	MaxBodyBytes     int64   `json:"max_body_bytes" yaml:"max_body_bytes" toml:"max_body_bytes" env:"MAX_BODY_BYTES"`
	RateLimitRPS     float64 `json:"rate_limit_rps" yaml:"rate_limit_rps" toml:"rate_limit_rps" env:"RATE_LIMIT_RPS"`
	RateLimitBurst   int     `json:"rate_limit_burst" yaml:"rate_limit_burst" toml:"rate_limit_burst" env:"RATE_LIMIT_BURST"`
	// TrustProxy takes client addresses from X-Forwarded-For and friends.
	TrustProxy       bool    `json:"trust_proxy" yaml:"trust_proxy" toml:"trust_proxy" env:"TRUST_PROXY"`

	CORSEnabled        bool     `json:"cors_enabled" yaml:"cors_enabled" toml:"cors_enabled" env:"CORS_ENABLED"`
	CORSAllowedOrigins []string `json:"cors_allowed_origins" yaml:"cors_allowed_origins" toml:"cors_allowed_origins" env:"CORS_ALLOWED_ORIGINS"`
	CORSAllowedMethods []string `json:"cors_allowed_methods" yaml:"cors_allowed_methods" toml:"cors_allowed_methods" env:"CORS_ALLOWED_METHODS"`
	CORSAllowedHeaders []string `json:"cors_allowed_headers" yaml:"cors_allowed_headers" toml:"cors_allowed_headers" env:"CORS_ALLOWED_HEADERS"`
}

// Default returns the configuration used when nothing else is given.
func Default() Config {
	return Config{
		Addr:               ":8080",
		APIURL:             DefaultAPIURL,
		RequestTimeoutMS:   5000,
		LogLevel:           "info",
		MaxBodyBytes:       1 << 20,
		CORSAllowedMethods: []string{"GET", "POST", "OPTIONS"},
		CORSAllowedHeaders: []string{"Content-Type", "X-Log-Level"},
	}
}

// DefaultPaths lists where the CLI looks for a config file when none is given.
var DefaultPaths = []string{
	"hellod.yaml",
	"hellod.yml",
	"hellod.toml",
	"hellod.json",
	"~/.config/hellod/config.yaml",
	"~/.config/hellod/config.toml",
}

// RequestTimeout is the per-request timeout of the users API.
func (c Config) RequestTimeout() time.Duration {
	return time.Duration(c.RequestTimeoutMS) * time.Millisecond
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	u, err := url.Parse(c.APIURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("api_url must be an absolute http(s) URL, got %q", c.APIURL)
	}
	if c.RequestTimeoutMS < 0 {
		return errors.New("request_timeout_ms must not be negative")
	}
	if c.RateLimitRPS < 0 || c.RateLimitBurst < 0 {
		return errors.New("rate_limit_rps and rate_limit_burst must not be negative")
	}
	return nil
}

// Load reads a configuration file based on its extension, on top of
// Default(). Supports: .yaml/.yml, .json, .toml
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, fmt.Errorf("empty config path")
	}
	p, err := fsutil.CheckFile(path)
	if err != nil {
		return cfg, err
	}
	b, err := os.ReadFile(p)
	if err != nil {
		return cfg, err
	}
	switch ext := strings.ToLower(filepath.Ext(p)); ext {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(b, &cfg)
	case ".json":
		err = json.Unmarshal(b, &cfg)
	case ".toml":
		err = toml.Unmarshal(b, &cfg)
	default:
		return cfg, fmt.Errorf("unsupported config extension: %s", ext)
	}
	if err != nil {
		return cfg, fmt.Errorf("parse %s: %w", p, err)
	}
	return cfg, nil
}

// ApplyEnv overrides fields of cfg from HELLOD_* environment variables.
// Unset variables leave the field alone.
func ApplyEnv(cfg *Config) error {
	if err := env.ParseWithOptions(cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Resolve loads path (or the first of DefaultPaths that exists when path is
// empty), applies environment overrides and validates the result.
func Resolve(path string) (Config, string, error) {
	cfg := Default()
	if path == "" {
		path, _ = fsutil.FirstFile(DefaultPaths...)
	}
	if path != "" {
		var err error
		if cfg, err = Load(path); err != nil {
			return cfg, path, err
		}
	}
	if err := ApplyEnv(&cfg); err != nil {
		return cfg, path, err
	}
	return cfg, path, cfg.Validate()
}
