package config

import (
	"fmt"
	"net/url"
	"time"
)

// Config is the root application configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Upstream UpstreamConfig `yaml:"upstream"`
	Auth     AuthConfig     `yaml:"auth"`
	Log      LogConfig      `yaml:"log"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"30s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
}

// UpstreamConfig holds settings for the data operations backend.
type UpstreamConfig struct {
	BaseURL string        `yaml:"base_url" env:"UPSTREAM_BASE_URL" env-required:"true"`
	Timeout time.Duration `yaml:"timeout"  env:"UPSTREAM_TIMEOUT"  env-default:"20s"`
}

// AuthConfig holds session token settings.
type AuthConfig struct {
	JWTSecret string        `yaml:"jwt_secret" env:"AUTH_JWT_SECRET" env-required:"true"`
	JWTIssuer string        `yaml:"jwt_issuer" env:"AUTH_JWT_ISSUER" env-default:"hoteldash"`
	TokenTTL  time.Duration `yaml:"token_ttl"  env:"AUTH_TOKEN_TTL"  env-default:"12h"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level       string `yaml:"level"       env:"LOG_LEVEL"       env-default:"info"`
	Development bool   `yaml:"development" env:"LOG_DEVELOPMENT" env-default:"false"`
}

// Addr returns the host:port the HTTP server binds to.
func (c ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// Validate checks constraints cleanenv tags cannot express.
func (c *Config) Validate() error {
	u, err := url.Parse(c.Upstream.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("upstream base_url %q is not an absolute URL", c.Upstream.BaseURL)
	}
	if len(c.Auth.JWTSecret) < 16 {
		return fmt.Errorf("auth jwt_secret must be at least 16 bytes")
	}
	if c.Auth.TokenTTL <= 0 {
		return fmt.Errorf("auth token_ttl must be positive")
	}
	return nil
}
