package main

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/StricklySoft/stricklysoft-community/pkg/clients/postgres"
	"github.com/StricklySoft/stricklysoft-community/pkg/clients/redis"
)

// envPrefix prefixes every environment variable read by the service,
// e.g. COMMUNITY_POSTGRES_HOST.
const envPrefix = "COMMUNITY"

// ServiceConfig is the complete configuration of community-api.
type ServiceConfig struct {
	HTTPAddr        string        `yaml:"http_addr" env:"HTTP_ADDR" envDefault:":8080"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SHUTDOWN_TIMEOUT" envDefault:"15s"`
	// CacheTTL enables the Redis copy served when Postgres is unreachable,
	// and bounds how old that copy may get.
	CacheTTL time.Duration   `yaml:"cache_ttl" env:"CACHE_TTL"`
	LogLevel string          `yaml:"log_level" env:"LOG_LEVEL" envDefault:"info"`
	Postgres postgres.Config `yaml:"postgres" env:"POSTGRES"`
	Redis    redis.Config    `yaml:"redis" env:"REDIS"`
}

// Validate implements config.Validator.
func (c *ServiceConfig) Validate() error {
	if c.HTTPAddr == "" {
		return fmt.Errorf("http_addr must not be empty")
	}
	if c.ShutdownTimeout <= 0 {
		return fmt.Errorf("shutdown_timeout must be positive, got %v", c.ShutdownTimeout)
	}
	if _, err := c.level(); err != nil {
		return err
	}
	if err := c.Postgres.Validate(); err != nil {
		return err
	}
	if c.CacheTTL > 0 {
		if err := c.Redis.Validate(); err != nil {
			return err
		}
	}
	return nil
}

func (c *ServiceConfig) level() (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("log_level: %w", err)
	}
	return l, nil
}
