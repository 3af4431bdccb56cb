package redis

import (
	"fmt"
	"net/url"
	"time"
)

// Default connection settings for the aggregate cache.
const (
	// DefaultHost is the Kubernetes Service DNS name of the Redis
	// instance used as the aggregate cache.
	DefaultHost = "redis.databases.svc.cluster.local"

	// DefaultPort is the standard Redis port.
	DefaultPort = 6379

	// DefaultDB is the default Redis database index.
	DefaultDB = 0

	// DefaultPoolSize is the maximum number of connections in the pool.
	DefaultPoolSize = 25

	// DefaultDialTimeout is the maximum time to wait when establishing a
	// new connection.
	DefaultDialTimeout = 10 * time.Second
)

// Secret is a string that redacts itself in logs, fmt output, and
// serialized config. Use [Secret.Value] to obtain the actual value.
type Secret string

// redacted replaces a [Secret] in every rendering.
const redacted = "[REDACTED]"

// String implements fmt.Stringer, always returning the redacted
// placeholder.
func (s Secret) String() string { return redacted }

// GoString implements fmt.GoStringer so %#v is redacted too.
func (s Secret) GoString() string { return redacted }

// Value returns the unredacted secret.
func (s Secret) Value() string { return string(s) }

// MarshalText implements encoding.TextMarshaler, always emitting the
// redacted placeholder.
func (s Secret) MarshalText() ([]byte, error) {
	return []byte(redacted), nil
}

// Config holds connection settings for a Redis client. If URI is set it
// takes precedence over Host, Port, DB, and Password.
type Config struct {
	// URI is a redis:// or rediss:// URL, e.g. "redis://cache:6379/0".
	URI string `yaml:"uri" env:"URI"`

	// Host is the server hostname. Default: [DefaultHost].
	Host string `yaml:"host" env:"HOST"`

	// Port is the server port. Default: [DefaultPort].
	Port int `yaml:"port" env:"PORT"`

	// DB is the database index. Default: [DefaultDB].
	DB int `yaml:"db" env:"DB"`

	// Password is never read from files; set it through the environment.
	Password Secret `yaml:"-" env:"PASSWORD"`

	// PoolSize is the maximum number of connections. Default:
	// [DefaultPoolSize].
	PoolSize int `yaml:"pool_size" env:"POOL_SIZE"`

	// DialTimeout bounds connection setup. Default: [DefaultDialTimeout].
	DialTimeout time.Duration `yaml:"dial_timeout" env:"DIAL_TIMEOUT"`

	// TLSEnabled turns on TLS for Host/Port connections. URIs select TLS
	// with the rediss scheme.
	TLSEnabled bool `yaml:"tls_enabled" env:"TLS_ENABLED"`
}

// DefaultConfig returns a Config populated with the package defaults.
func DefaultConfig() *Config {
	return &Config{
		Host:        DefaultHost,
		Port:        DefaultPort,
		DB:          DefaultDB,
		PoolSize:    DefaultPoolSize,
		DialTimeout: DefaultDialTimeout,
	}
}

// Validate fills zero-valued settings with defaults and checks the rest.
func (c *Config) Validate() error {
	c.applyDefaults()

	if c.URI != "" {
		u, err := url.Parse(c.URI)
		if err != nil {
			return fmt.Errorf("redis: config URI is invalid: %w", err)
		}
		if u.Scheme != "redis" && u.Scheme != "rediss" {
			return fmt.Errorf("redis: config URI scheme must be redis:// or rediss://, got %q", u.Scheme)
		}
		return nil
	}

	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("redis: config port must be between 1 and 65535, got %d", c.Port)
	}
	if c.DB < 0 {
		return fmt.Errorf("redis: config db must be >= 0, got %d", c.DB)
	}
	if c.PoolSize < 1 {
		return fmt.Errorf("redis: config pool_size must be >= 1, got %d", c.PoolSize)
	}
	if c.DialTimeout < 0 {
		return fmt.Errorf("redis: config dial_timeout must not be negative, got %v", c.DialTimeout)
	}
	return nil
}

func (c *Config) applyDefaults() {
	if c.Host == "" {
		c.Host = DefaultHost
	}
	if c.Port == 0 {
		c.Port = DefaultPort
	}
	if c.PoolSize == 0 {
		c.PoolSize = DefaultPoolSize
	}
	if c.DialTimeout == 0 {
		c.DialTimeout = DefaultDialTimeout
	}
}
