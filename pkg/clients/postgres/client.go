// Package postgres provides a PostgreSQL client with connection pooling and
// OpenTelemetry tracing for StricklySoft community services.
//
// # Connection Management
//
// The client uses pgxpool for connection pooling. Failed connections are
// replaced by the pool and the health check period keeps it healthy;
// callers do not retry.
//
// # Configuration
//
// Create a client using [NewClient] with a [Config]:
//
//	cfg := postgres.DefaultConfig()
//	cfg.Password = postgres.Secret("my-password")
//	client, err := postgres.NewClient(ctx, *cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Close()
//
// For testing, use [NewFromPool] to inject a mock pool:
//
//	mock, _ := pgxmock.NewPool()
//	client := postgres.NewFromPool(mock, &postgres.Config{Database: "testdb"})
//
// # Errors
//
// The client sits at a low-level boundary, so every failure is returned as
// an unclassified [*sserr.Error]. A single-row read that finds no row
// returns a cause of type [*NotFoundError], which carries the
// [sserr.RecordNotFound] marker; responders turn that into a not-found
// status. Callers reclassify with [sserr.Error.WithKind].
//
// # OpenTelemetry Tracing
//
// All database operations create OpenTelemetry spans with standard database
// semantic attributes (db.system, db.name, db.statement). SQL statements are
// truncated to 100 characters in spans.
package postgres

import (
	"context"
	"errors"
	"net/url"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	sserr "github.com/StricklySoft/stricklysoft-community/pkg/errors"
)

// tracerName is the OpenTelemetry instrumentation scope name for this package.
const tracerName = "github.com/StricklySoft/stricklysoft-community/pkg/clients/postgres"

// Pool defines the subset of [*pgxpool.Pool] the client uses. It is also
// satisfied by pgxmock pools for unit testing.
type Pool interface {
	// QueryRow executes a SQL query that returns at most one row.
	// Errors are deferred until the returned pgx.Row is scanned.
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row

	// Ping verifies the connection to the database is alive.
	Ping(ctx context.Context) error

	// Close releases all pool resources.
	Close()
}

var _ Pool = (*pgxpool.Pool)(nil)

// Client is a PostgreSQL client with connection pooling and OpenTelemetry
// tracing. A Client is safe for concurrent use by multiple goroutines.
type Client struct {
	pool         Pool
	config       *Config
	tracer       trace.Tracer
	databaseName string
}

// NewClient creates a new PostgreSQL client with the given configuration.
// It validates the configuration, creates a connection pool, and verifies
// connectivity with a ping.
func NewClient(ctx context.Context, cfg Config) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, sserr.Unclassified(err)
	}

	poolCfg, err := pgxpool.ParseConfig(cfg.ConnectionString())
	if err != nil {
		return nil, sserr.Unclassified(err)
	}

	poolCfg.MaxConns = cfg.MaxConns
	poolCfg.MinConns = cfg.MinConns
	poolCfg.MaxConnLifetime = cfg.MaxConnLifetime
	poolCfg.MaxConnIdleTime = cfg.MaxConnIdleTime
	poolCfg.HealthCheckPeriod = cfg.HealthCheckPeriod

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, sserr.Unclassified(err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, sserr.Unclassified(err)
	}

	dbName := cfg.Database
	if cfg.URI != "" {
		if u, parseErr := url.Parse(cfg.URI); parseErr == nil {
			dbName = strings.TrimPrefix(u.Path, "/")
		}
	}

	return &Client{
		pool:         pool,
		config:       &cfg,
		tracer:       otel.Tracer(tracerName),
		databaseName: dbName,
	}, nil
}

// NewFromPool creates a Client from an existing [Pool]. This is primarily
// used for testing with mock pools. If cfg is nil, an empty Config is used.
func NewFromPool(pool Pool, cfg *Config) *Client {
	if cfg == nil {
		cfg = &Config{}
	}
	return &Client{
		pool:         pool,
		config:       cfg,
		tracer:       otel.Tracer(tracerName),
		databaseName: cfg.Database,
	}
}

// QueryRowScan executes a query expected to return one row and scans it
// into dest. When the query returns no rows the error's cause is a
// [*NotFoundError]; other failures are wrapped unclassified.
//
// Example:
//
//	var name string
//	err := client.QueryRowScan(ctx, "SELECT name FROM community WHERE id = $1",
//	    []any{id}, &name)
//	if sserr.IsRecordNotFound(err) {
//	    // no such community
//	}
func (c *Client) QueryRowScan(ctx context.Context, sql string, args []any, dest ...any) error {
	ctx, span := c.startSpan(ctx, "QueryRow", sql)

	err := c.pool.QueryRow(ctx, sql, args...).Scan(dest...)
	if errors.Is(err, pgx.ErrNoRows) {
		// An empty result is an answer, not a failed call.
		span.SetStatus(codes.Ok, "")
		span.End()
		return sserr.UnclassifiedContext(ctx, &NotFoundError{err: err})
	}
	finishSpan(span, err)
	if err != nil {
		return sserr.UnclassifiedContext(ctx, err)
	}
	return nil
}

// Health performs a health check by pinging the database. If ctx has no
// deadline, [DefaultHealthTimeout] is applied.
func (c *Client) Health(ctx context.Context) error {
	ctx, span := c.startSpan(ctx, "Health", "SELECT 1")

	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, DefaultHealthTimeout)
		defer cancel()
	}

	err := c.pool.Ping(ctx)
	finishSpan(span, err)
	if err != nil {
		return sserr.UnclassifiedContext(ctx, err)
	}
	return nil
}

// Close closes the connection pool.
func (c *Client) Close() {
	c.pool.Close()
}

// Pool returns the underlying connection pool.
func (c *Client) Pool() Pool {
	return c.pool
}

func (c *Client) startSpan(ctx context.Context, operationName, sql string) (context.Context, trace.Span) {
	ctx, span := c.tracer.Start(ctx, "postgres."+operationName,
		trace.WithSpanKind(trace.SpanKindClient),
	)
	span.SetAttributes(
		attribute.String("db.system", "postgresql"),
		attribute.String("db.name", c.databaseName),
		attribute.String("db.statement", truncateSQL(sql)),
	)
	return ctx, span
}

// finishSpan records the error status on the span (if any) and ends it.
func finishSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}
