package postgres

import (
	"errors"
	"fmt"
	"net/url"
	"time"
)

// maxSQLTruncateLen is the maximum length of SQL statements recorded in
// OpenTelemetry span attributes. Longer statements are truncated so literal
// values do not leak into telemetry.
const maxSQLTruncateLen = 100

// Default connection pool and timeout settings for the community
// services' PostgreSQL deployment.
const (
	// DefaultHost is the Kubernetes Service DNS name of the PostgreSQL
	// instance that holds the community tables.
	DefaultHost = "postgres.databases.svc.cluster.local"

	// DefaultPort is the standard PostgreSQL port.
	DefaultPort = 5432

	// DefaultDatabase is the database holding community_aggregates.
	DefaultDatabase = "community"

	// DefaultUser is the read role used by the community services.
	DefaultUser = "community"

	// DefaultMaxConns is the maximum number of connections in the pool.
	DefaultMaxConns int32 = 25

	// DefaultMinConns is the minimum number of idle connections kept open
	// to absorb bursts of aggregate reads.
	DefaultMinConns int32 = 2

	// DefaultMaxConnLifetime is the maximum lifetime of a connection before
	// it is closed and replaced. This keeps connections from going stale
	// after DNS or load balancer changes.
	DefaultMaxConnLifetime = time.Hour

	// DefaultMaxConnIdleTime is the maximum time a connection can remain
	// idle before being closed.
	DefaultMaxConnIdleTime = 30 * time.Minute

	// DefaultHealthCheckPeriod is the interval between automatic health
	// checks on idle connections. Failed connections are replaced.
	DefaultHealthCheckPeriod = time.Minute

	// DefaultConnectTimeout is the maximum time to wait when establishing
	// a new connection.
	DefaultConnectTimeout = 10 * time.Second

	// DefaultHealthTimeout is the maximum time for a health check ping
	// when the caller's context has no deadline.
	DefaultHealthTimeout = 5 * time.Second
)

// SSLMode is the SSL/TLS connection mode for PostgreSQL. It maps directly
// to the sslmode connection parameter.
type SSLMode string

const (
	// SSLModeDisable disables SSL entirely. Use only when the network
	// layer already encrypts traffic.
	SSLModeDisable SSLMode = "disable"

	// SSLModeAllow attempts SSL but falls back to an unencrypted connection.
	SSLModeAllow SSLMode = "allow"

	// SSLModePrefer attempts SSL first and falls back to unencrypted if the
	// server does not support SSL.
	SSLModePrefer SSLMode = "prefer"

	// SSLModeRequire requires SSL but does not verify the server
	// certificate. It is the default.
	SSLModeRequire SSLMode = "require"

	// SSLModeVerifyCA requires SSL and verifies the server certificate
	// against a trusted CA.
	SSLModeVerifyCA SSLMode = "verify-ca"

	// SSLModeVerifyFull requires SSL and verifies both the certificate
	// chain and the server hostname.
	SSLModeVerifyFull SSLMode = "verify-full"
)

// Valid reports whether m is a recognized SSL mode.
func (m SSLMode) Valid() bool {
	switch m {
	case SSLModeDisable, SSLModeAllow, SSLModePrefer,
		SSLModeRequire, SSLModeVerifyCA, SSLModeVerifyFull:
		return true
	default:
		return false
	}
}

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

// Config holds connection settings for a PostgreSQL client. Fields carry
// env tags for [config.Loader] and yaml tags for file-based loading.
//
// If URI is set it takes precedence over the individual connection fields.
type Config struct {
	// URI is a full connection string, e.g.
	// "postgres://community@db:5432/community?sslmode=disable".
	URI string `yaml:"uri" env:"URI"`

	// Host is the server hostname. Default: [DefaultHost].
	Host string `yaml:"host" env:"HOST"`

	// Port is the server port. Default: [DefaultPort].
	Port int `yaml:"port" env:"PORT"`

	// Database is the database name. Default: [DefaultDatabase].
	Database string `yaml:"database" env:"DATABASE"`

	// User is the role to connect as. Default: [DefaultUser].
	User string `yaml:"user" env:"USER"`

	// Password is never read from files; set it through the environment.
	Password Secret `yaml:"-" env:"PASSWORD"`

	// SSLMode is the sslmode parameter. Default: [SSLModeRequire].
	SSLMode SSLMode `yaml:"ssl_mode" env:"SSLMODE"`

	MaxConns          int32         `yaml:"max_conns" env:"MAX_CONNS"`
	MinConns          int32         `yaml:"min_conns" env:"MIN_CONNS"`
	MaxConnLifetime   time.Duration `yaml:"max_conn_lifetime" env:"MAX_CONN_LIFETIME"`
	MaxConnIdleTime   time.Duration `yaml:"max_conn_idle_time" env:"MAX_CONN_IDLE_TIME"`
	HealthCheckPeriod time.Duration `yaml:"health_check_period" env:"HEALTH_CHECK_PERIOD"`
	ConnectTimeout    time.Duration `yaml:"connect_timeout" env:"CONNECT_TIMEOUT"`
}

// DefaultConfig returns a Config populated with the package defaults.
func DefaultConfig() *Config {
	return &Config{
		Host:              DefaultHost,
		Port:              DefaultPort,
		Database:          DefaultDatabase,
		User:              DefaultUser,
		SSLMode:           SSLModeRequire,
		MaxConns:          DefaultMaxConns,
		MinConns:          DefaultMinConns,
		MaxConnLifetime:   DefaultMaxConnLifetime,
		MaxConnIdleTime:   DefaultMaxConnIdleTime,
		HealthCheckPeriod: DefaultHealthCheckPeriod,
		ConnectTimeout:    DefaultConnectTimeout,
	}
}

// Validate fills zero-valued pool settings with defaults and checks the
// connection settings.
func (c *Config) Validate() error {
	c.applyDefaults()

	if c.URI != "" {
		if _, err := url.Parse(c.URI); err != nil {
			return fmt.Errorf("postgres: config URI is invalid: %w", err)
		}
		return nil
	}

	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("postgres: config port must be between 1 and 65535, got %d", c.Port)
	}
	if c.Database == "" {
		return errors.New("postgres: config database must not be empty")
	}
	if c.User == "" {
		return errors.New("postgres: config user must not be empty")
	}
	if !c.SSLMode.Valid() {
		return fmt.Errorf("postgres: config ssl_mode %q is not valid", c.SSLMode)
	}
	if c.MaxConns < c.MinConns {
		return fmt.Errorf("postgres: config max_conns (%d) must be >= min_conns (%d)", c.MaxConns, c.MinConns)
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
	if c.SSLMode == "" {
		c.SSLMode = SSLModeRequire
	}
	if c.MaxConns == 0 {
		c.MaxConns = DefaultMaxConns
	}
	if c.MinConns == 0 {
		c.MinConns = DefaultMinConns
	}
	if c.MaxConnLifetime == 0 {
		c.MaxConnLifetime = DefaultMaxConnLifetime
	}
	if c.MaxConnIdleTime == 0 {
		c.MaxConnIdleTime = DefaultMaxConnIdleTime
	}
	if c.HealthCheckPeriod == 0 {
		c.HealthCheckPeriod = DefaultHealthCheckPeriod
	}
	if c.ConnectTimeout == 0 {
		c.ConnectTimeout = DefaultConnectTimeout
	}
}

// ConnectionString returns the pgx connection string. URI is returned
// verbatim when set.
func (c *Config) ConnectionString() string {
	if c.URI != "" {
		return c.URI
	}

	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(c.User, c.Password.Value()),
		Host:   fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:   c.Database,
	}
	q := u.Query()
	if c.SSLMode != "" {
		q.Set("sslmode", string(c.SSLMode))
	}
	if c.ConnectTimeout > 0 {
		q.Set("connect_timeout", fmt.Sprintf("%d", int(c.ConnectTimeout.Seconds())))
	}
	u.RawQuery = q.Encode()
	return u.String()
}

func truncateSQL(sql string) string {
	if len(sql) <= maxSQLTruncateLen {
		return sql
	}
	return sql[:maxSQLTruncateLen] + "..."
}
