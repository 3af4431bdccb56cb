package aggregates_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/StricklySoft/stricklysoft-community/internal/testutil/fixtures"
	"github.com/StricklySoft/stricklysoft-community/pkg/aggregates"
	"github.com/StricklySoft/stricklysoft-community/pkg/clients/redis"
	sserr "github.com/StricklySoft/stricklysoft-community/pkg/errors"
)

type goneRow struct{}

func (goneRow) Error() string   { return "no rows" }
func (goneRow) RecordNotFound() {}

func communityGone() error {
	return sserr.Unclassified(goneRow{}).WithKind(sserr.TagCouldntFindCommunity.Kind())
}

// countingReader serves whatever aggs/err currently hold and counts calls.
// Tests change the fields between reads to simulate the store changing.
type countingReader struct {
	calls atomic.Int32
	aggs  *aggregates.CommunityAggregates
	err   error
}

func (r *countingReader) Read(context.Context, aggregates.CommunityID) (*aggregates.CommunityAggregates, error) {
	r.calls.Add(1)
	if r.err != nil {
		return nil, r.err
	}
	cp := *r.aggs
	return &cp, nil
}

func newCache(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	t.Helper()
	mini := miniredis.RunT(t)
	client := redis.NewFromClient(goredis.NewClient(&goredis.Options{Addr: mini.Addr()}))
	t.Cleanup(func() { _ = client.Close() })
	return client, mini
}

func newFallbackReader(t *testing.T, next aggregates.Reader) (*aggregates.FallbackReader, *miniredis.Miniredis, *bytes.Buffer) {
	t.Helper()
	cache, mini := newCache(t)
	var logs bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&logs, nil))
	return aggregates.NewFallbackReader(next, cache, time.Minute, logger), mini, &logs
}

func TestFallbackReader_AlwaysReadsStore(t *testing.T) {
	t.Parallel()
	next := &countingReader{aggs: fixtures.Aggregates()}
	reader, mini, _ := newFallbackReader(t, next)
	ctx := context.Background()
	key := aggregates.CacheKey(fixtures.CommunityID)

	first, err := reader.Read(ctx, fixtures.CommunityID)
	require.NoError(t, err)
	assert.False(t, first.Stale)

	next.aggs = fixtures.Aggregates()
	next.aggs.Subscribers = 3
	second, err := reader.Read(ctx, fixtures.CommunityID)
	require.NoError(t, err)

	assert.Equal(t, int32(2), next.calls.Load())
	assert.Equal(t, int64(3), second.Subscribers)
	assert.False(t, second.Stale)
	assert.True(t, mini.Exists(key))
	assert.Equal(t, time.Minute, mini.TTL(key))

	raw, err := mini.Get(key)
	require.NoError(t, err)
	assert.Contains(t, raw, `"subscribers":3`)
}

func TestFallbackReader_NotFoundAfterDelete(t *testing.T) {
	t.Parallel()
	next := &countingReader{aggs: fixtures.Aggregates()}
	reader, mini, _ := newFallbackReader(t, next)
	ctx := context.Background()

	_, err := reader.Read(ctx, fixtures.CommunityID)
	require.NoError(t, err)
	require.True(t, mini.Exists(aggregates.CacheKey(fixtures.CommunityID)))

	next.err = communityGone()
	got, err := reader.Read(ctx, fixtures.CommunityID)

	assert.Nil(t, got)
	assert.True(t, aggregates.IsCommunityGone(err))
	assert.Equal(t, int32(2), next.calls.Load())
	assert.False(t, mini.Exists(aggregates.CacheKey(fixtures.CommunityID)))
}

func TestFallbackReader_NoCopyAfterDeleteWhenStoreFails(t *testing.T) {
	t.Parallel()
	next := &countingReader{aggs: fixtures.Aggregates()}
	reader, _, _ := newFallbackReader(t, next)
	ctx := context.Background()
	cause := errors.New("connection refused")

	_, err := reader.Read(ctx, fixtures.CommunityID)
	require.NoError(t, err)
	next.err = communityGone()
	_, err = reader.Read(ctx, fixtures.CommunityID)
	require.True(t, aggregates.IsCommunityGone(err))

	next.err = sserr.Unclassified(cause)
	got, err := reader.Read(ctx, fixtures.CommunityID)
	assert.Nil(t, got)
	assert.ErrorIs(t, err, cause)
}

func TestFallbackReader_ServesStaleCopyOnStoreFailure(t *testing.T) {
	t.Parallel()
	next := &countingReader{aggs: fixtures.Aggregates()}
	reader, mini, logs := newFallbackReader(t, next)
	ctx := context.Background()

	fresh, err := reader.Read(ctx, fixtures.CommunityID)
	require.NoError(t, err)

	next.err = sserr.Unclassified(errors.New("connection refused"))
	stale, err := reader.Read(ctx, fixtures.CommunityID)
	require.NoError(t, err)

	assert.True(t, stale.Stale)
	assert.Equal(t, fresh.Subscribers, stale.Subscribers)
	assert.True(t, stale.Published.Equal(fixtures.Published))
	assert.Contains(t, logs.String(), "serving stale aggregates after store failure")

	raw, err := mini.Get(aggregates.CacheKey(fixtures.CommunityID))
	require.NoError(t, err)
	assert.NotContains(t, raw, "stale")
}

func TestFallbackReader_StoreFailureWithoutCopy(t *testing.T) {
	t.Parallel()
	cause := errors.New("timeout")
	next := &countingReader{err: sserr.Unclassified(cause)}
	reader, mini, _ := newFallbackReader(t, next)

	got, err := reader.Read(context.Background(), fixtures.CommunityID)
	assert.Nil(t, got)
	assert.ErrorIs(t, err, cause)
	assert.True(t, sserr.IsUnclassified(err))
	assert.Empty(t, mini.Keys())
}

func TestFallbackReader_NeverStoresNotFound(t *testing.T) {
	t.Parallel()
	next := &countingReader{err: communityGone()}
	reader, mini, _ := newFallbackReader(t, next)

	for range 3 {
		_, err := reader.Read(context.Background(), fixtures.MissingID)
		assert.True(t, aggregates.IsCommunityGone(err))
	}
	assert.Equal(t, int32(3), next.calls.Load())
	assert.Empty(t, mini.Keys())
}

func TestFallbackReader_DisabledWithoutTTL(t *testing.T) {
	t.Parallel()
	cache, mini := newCache(t)
	next := &countingReader{aggs: fixtures.Aggregates()}
	reader := aggregates.NewFallbackReader(next, cache, 0, nil)

	_, err := reader.Read(context.Background(), fixtures.CommunityID)
	require.NoError(t, err)
	assert.Empty(t, mini.Keys())

	cause := errors.New("down")
	next.err = sserr.Unclassified(cause)
	_, err = reader.Read(context.Background(), fixtures.CommunityID)
	assert.ErrorIs(t, err, cause)
}

func TestFallbackReader_CacheDownDoesNotFailReads(t *testing.T) {
	t.Parallel()
	next := &countingReader{aggs: fixtures.Aggregates()}
	reader, mini, logs := newFallbackReader(t, next)
	mini.Close()
	ctx := context.Background()

	got, err := reader.Read(ctx, fixtures.CommunityID)
	require.NoError(t, err)
	assert.Equal(t, fixtures.Aggregates().Subscribers, got.Subscribers)
	assert.Contains(t, logs.String(), "aggregate cache write failed")

	next.err = communityGone()
	_, err = reader.Read(ctx, fixtures.CommunityID)
	assert.True(t, aggregates.IsCommunityGone(err))
	assert.Contains(t, logs.String(), "aggregate cache delete failed")

	cause := errors.New("store down too")
	next.err = sserr.Unclassified(cause)
	_, err = reader.Read(ctx, fixtures.CommunityID)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, logs.String(), "aggregate cache read failed")
}

func TestFallbackReader_DiscardsCorruptCopy(t *testing.T) {
	t.Parallel()
	cause := errors.New("timeout")
	next := &countingReader{err: sserr.Unclassified(cause)}
	reader, mini, logs := newFallbackReader(t, next)
	require.NoError(t, mini.Set(aggregates.CacheKey(fixtures.CommunityID), "{not json"))

	got, err := reader.Read(context.Background(), fixtures.CommunityID)
	assert.Nil(t, got)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, logs.String(), "discarding undecodable cache entry")
}
