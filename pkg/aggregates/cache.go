package aggregates

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	sserr "github.com/StricklySoft/stricklysoft-community/pkg/errors"
)

// Cache is the key/value store behind [FallbackReader]. It is satisfied by
// [*redis.Client].
type Cache interface {
	Get(ctx context.Context, key string) (value string, found bool, err error)
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Del(ctx context.Context, keys ...string) (int64, error)
}

// FallbackReader keeps a copy of the last successful read of each
// community and serves it only when the underlying [Reader] fails.
//
// Every call reaches the underlying reader first, so a healthy store always
// answers with the current row, and a deleted community is reported as
// not found at once. The copy is used when the store fails with anything
// other than record-not-found; it is returned with Stale set and never
// stands in for a missing community. A not-found result deletes the copy.
// Cache failures are logged and never fail the read.
type FallbackReader struct {
	next   Reader
	cache  Cache
	ttl    time.Duration
	logger *slog.Logger
}

var _ Reader = (*FallbackReader)(nil)

// NewFallbackReader keeps copies of reads from next for ttl. A ttl <= 0
// disables the copy and every call is a plain read from next. If logger is
// nil, slog.Default() is used.
func NewFallbackReader(next Reader, cache Cache, ttl time.Duration, logger *slog.Logger) *FallbackReader {
	if logger == nil {
		logger = slog.Default()
	}
	return &FallbackReader{
		next:   next,
		cache:  cache,
		ttl:    ttl,
		logger: logger,
	}
}

// CacheKey returns the cache key holding the copy of id's aggregates.
func CacheKey(id CommunityID) string {
	return fmt.Sprintf("community:%d:aggregates", id)
}

// Read implements [Reader].
func (f *FallbackReader) Read(ctx context.Context, id CommunityID) (*CommunityAggregates, error) {
	if f.ttl <= 0 {
		return f.next.Read(ctx, id)
	}

	key := CacheKey(id)
	a, err := f.next.Read(ctx, id)
	switch {
	case err == nil:
		f.store(ctx, key, a)
		return a, nil
	case sserr.IsRecordNotFound(err):
		f.forget(ctx, key)
		return nil, err
	}

	stale, ok := f.lookup(ctx, key)
	if !ok {
		return nil, err
	}
	f.logger.WarnContext(ctx, "serving stale aggregates after store failure",
		"key", key,
		"error", err,
	)
	stale.Stale = true
	return stale, nil
}

func (f *FallbackReader) store(ctx context.Context, key string, a *CommunityAggregates) {
	data, err := json.Marshal(a)
	if err != nil {
		f.logger.WarnContext(ctx, "aggregate cache encode failed", "key", key, "error", err)
		return
	}
	if err := f.cache.Set(ctx, key, data, f.ttl); err != nil {
		f.logger.WarnContext(ctx, "aggregate cache write failed", "key", key, "error", err)
	}
}

func (f *FallbackReader) forget(ctx context.Context, key string) {
	if _, err := f.cache.Del(ctx, key); err != nil {
		f.logger.WarnContext(ctx, "aggregate cache delete failed", "key", key, "error", err)
	}
}

func (f *FallbackReader) lookup(ctx context.Context, key string) (*CommunityAggregates, bool) {
	raw, found, err := f.cache.Get(ctx, key)
	if err != nil {
		f.logger.WarnContext(ctx, "aggregate cache read failed", "key", key, "error", err)
		return nil, false
	}
	if !found {
		return nil, false
	}
	var a CommunityAggregates
	if err := json.Unmarshal([]byte(raw), &a); err != nil {
		f.logger.WarnContext(ctx, "discarding undecodable cache entry", "key", key)
		return nil, false
	}
	return &a, true
}
