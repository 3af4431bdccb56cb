// Package redis provides a Redis client with OpenTelemetry tracing for
// StricklySoft community services. It exposes the small set of string
// commands the community services use to keep fallback copies of reads.
//
// Create a client using [NewClient] with a [Config], or wrap an existing
// go-redis client with [NewFromClient] (useful with miniredis in tests):
//
//	client, err := redis.NewClient(ctx, redis.Config{URI: "redis://cache:6379/0"})
//	if err != nil {
//	    return err
//	}
//	defer client.Close()
//
// Every failure is returned as an unclassified [*sserr.Error]; a missing key
// is not a failure and is reported through the boolean result of
// [Client.Get].
package redis

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	sserr "github.com/StricklySoft/stricklysoft-community/pkg/errors"
)

// tracerName is the OpenTelemetry instrumentation scope name for this package.
const tracerName = "github.com/StricklySoft/stricklysoft-community/pkg/clients/redis"

// Cmdable is the subset of go-redis commands used by [Client]. It is
// satisfied by [*redis.Client].
type Cmdable interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
	Ping(ctx context.Context) *redis.StatusCmd
	Close() error
}

var _ Cmdable = (*redis.Client)(nil)

// Client is a Redis client with OpenTelemetry tracing. It is safe for
// concurrent use.
type Client struct {
	cmdable Cmdable
	tracer  trace.Tracer
	dbIndex int
}

// NewClient validates cfg, connects, and verifies connectivity with PING.
func NewClient(ctx context.Context, cfg Config) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, sserr.Unclassified(err)
	}

	var opts *redis.Options
	if cfg.URI != "" {
		var err error
		opts, err = redis.ParseURL(cfg.URI)
		if err != nil {
			return nil, sserr.Unclassified(err)
		}
		opts.PoolSize = cfg.PoolSize
		if cfg.DialTimeout > 0 {
			opts.DialTimeout = cfg.DialTimeout
		}
	} else {
		opts = &redis.Options{
			Addr:        fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
			Password:    cfg.Password.Value(),
			DB:          cfg.DB,
			PoolSize:    cfg.PoolSize,
			DialTimeout: cfg.DialTimeout,
		}
		if cfg.TLSEnabled {
			opts.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
		}
	}

	rdb := redis.NewClient(opts)
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, sserr.Unclassified(err)
	}

	return &Client{
		cmdable: rdb,
		tracer:  otel.Tracer(tracerName),
		dbIndex: opts.DB,
	}, nil
}

// NewFromClient wraps an existing [Cmdable].
func NewFromClient(cmdable Cmdable) *Client {
	return &Client{
		cmdable: cmdable,
		tracer:  otel.Tracer(tracerName),
	}
}

// Get returns the value stored at key. found is false when the key does
// not exist.
func (c *Client) Get(ctx context.Context, key string) (value string, found bool, err error) {
	ctx, span := c.startSpan(ctx, "Get", key)
	value, err = c.cmdable.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		span.SetAttributes(attribute.Bool("cache.hit", false))
		finishSpan(span, nil)
		return "", false, nil
	}
	finishSpan(span, err)
	if err != nil {
		return "", false, sserr.UnclassifiedContext(ctx, err)
	}
	return value, true, nil
}

// Set stores value at key with the given expiration (0 means no expiry).
func (c *Client) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	ctx, span := c.startSpan(ctx, "Set", key)
	err := c.cmdable.Set(ctx, key, value, expiration).Err()
	finishSpan(span, err)
	if err != nil {
		return sserr.UnclassifiedContext(ctx, err)
	}
	return nil
}

// Del deletes keys and returns how many existed.
func (c *Client) Del(ctx context.Context, keys ...string) (int64, error) {
	ctx, span := c.startSpan(ctx, "Del", fmt.Sprintf("%v", keys))
	n, err := c.cmdable.Del(ctx, keys...).Result()
	finishSpan(span, err)
	if err != nil {
		return 0, sserr.UnclassifiedContext(ctx, err)
	}
	return n, nil
}

// Health pings the server.
func (c *Client) Health(ctx context.Context) error {
	ctx, span := c.startSpan(ctx, "Ping", "")
	err := c.cmdable.Ping(ctx).Err()
	finishSpan(span, err)
	if err != nil {
		return sserr.UnclassifiedContext(ctx, err)
	}
	return nil
}

// Close closes the underlying connection.
func (c *Client) Close() error {
	if err := c.cmdable.Close(); err != nil {
		return sserr.Unclassified(err)
	}
	return nil
}

func (c *Client) startSpan(ctx context.Context, operation, key string) (context.Context, trace.Span) {
	ctx, span := c.tracer.Start(ctx, "redis."+operation,
		trace.WithSpanKind(trace.SpanKindClient),
	)
	span.SetAttributes(
		attribute.String("db.system", "redis"),
		attribute.Int("db.redis.database_index", c.dbIndex),
		attribute.String("db.operation", operation),
	)
	if key != "" {
		span.SetAttributes(attribute.String("db.redis.key", key))
	}
	return ctx, span
}

func finishSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}
