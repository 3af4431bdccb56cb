package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/StricklySoft/stricklysoft-community/internal/testutil"
	"github.com/StricklySoft/stricklysoft-community/pkg/clients/postgres"
	"github.com/StricklySoft/stricklysoft-community/pkg/config"
	sserr "github.com/StricklySoft/stricklysoft-community/pkg/errors"
)

func loadWith(env map[string]string, file string) (ServiceConfig, error) {
	var cfg ServiceConfig
	err := config.New().
		WithEnvPrefix(envPrefix).
		WithFile(file).
		WithLookupEnv(func(k string) (string, bool) { v, ok := env[k]; return v, ok }).
		Load(&cfg)
	return cfg, err
}

func TestServiceConfig_Defaults(t *testing.T) {
	t.Parallel()
	cfg, err := loadWith(nil, "")
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, 15*time.Second, cfg.ShutdownTimeout)
	assert.Zero(t, cfg.CacheTTL)
	assert.Equal(t, postgres.DefaultHost, cfg.Postgres.Host)
	assert.Equal(t, postgres.SSLModeRequire, cfg.Postgres.SSLMode)
}

func TestServiceConfig_EnvAndFile(t *testing.T) {
	t.Parallel()
	file := testutil.TempConfigFile(t, `
http_addr: ":9000"
cache_ttl: 30s
postgres:
  host: pg.internal
  database: lemmy
redis:
  uri: redis://cache:6379/1
`, ".yaml")

	cfg, err := loadWith(map[string]string{
		"COMMUNITY_POSTGRES_PASSWORD": "pw",
		"COMMUNITY_POSTGRES_SSLMODE":  "disable",
		"COMMUNITY_LOG_LEVEL":         "debug",
	}, file)
	require.NoError(t, err)

	assert.Equal(t, ":9000", cfg.HTTPAddr)
	assert.Equal(t, 30*time.Second, cfg.CacheTTL)
	assert.Equal(t, "pg.internal", cfg.Postgres.Host)
	assert.Equal(t, "lemmy", cfg.Postgres.Database)
	assert.Equal(t, "pw", cfg.Postgres.Password.Value())
	assert.Equal(t, postgres.SSLModeDisable, cfg.Postgres.SSLMode)
	assert.Equal(t, "redis://cache:6379/1", cfg.Redis.URI)

	level, err := cfg.level()
	require.NoError(t, err)
	assert.Equal(t, "DEBUG", level.String())
}

func TestServiceConfig_Invalid(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"log level", map[string]string{"COMMUNITY_LOG_LEVEL": "chatty"}},
		{"shutdown timeout", map[string]string{"COMMUNITY_SHUTDOWN_TIMEOUT": "-1s"}},
		{"postgres ssl mode", map[string]string{"COMMUNITY_POSTGRES_SSLMODE": "sometimes"}},
		{"redis checked when cache enabled", map[string]string{"COMMUNITY_CACHE_TTL": "1m", "COMMUNITY_REDIS_URI": "http://cache"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := loadWith(tt.env, "")
			require.Error(t, err)
			assert.True(t, sserr.IsUnclassified(err))
		})
	}

	_, err := loadWith(map[string]string{"COMMUNITY_REDIS_URI": "http://cache"}, "")
	assert.NoError(t, err, "redis is not validated while the cache is off")
}
