package aggregates

import (
	"context"

	sserr "github.com/StricklySoft/stricklysoft-community/pkg/errors"
)

const selectAggregatesSQL = `SELECT id, community_id, subscribers, posts, comments, published,
	users_active_day, users_active_week, users_active_month, users_active_half_year, hot_rank
FROM community_aggregates
WHERE community_id = $1`

// RowScanner runs a single-row query. It is satisfied by
// [*postgres.Client].
type RowScanner interface {
	QueryRowScan(ctx context.Context, sql string, args []any, dest ...any) error
}

// PostgresReader reads aggregates straight from PostgreSQL.
type PostgresReader struct {
	db RowScanner
}

var _ Reader = (*PostgresReader)(nil)

// NewPostgresReader returns a reader over db.
func NewPostgresReader(db RowScanner) *PostgresReader {
	return &PostgresReader{db: db}
}

// Read returns the aggregates row for id. A missing row is classified as
// couldnt_find_community; other failures are returned unclassified.
func (r *PostgresReader) Read(ctx context.Context, id CommunityID) (*CommunityAggregates, error) {
	var a CommunityAggregates
	err := r.db.QueryRowScan(ctx, selectAggregatesSQL, []any{int32(id)},
		&a.ID, &a.CommunityID, &a.Subscribers, &a.Posts, &a.Comments, &a.Published,
		&a.UsersActiveDay, &a.UsersActiveWeek, &a.UsersActiveMonth, &a.UsersActiveHalfYear,
		&a.HotRank,
	)
	if err == nil {
		return &a, nil
	}

	if e, ok := sserr.AsError(err); ok && sserr.IsRecordNotFound(err) {
		return nil, e.WithKind(sserr.TagCouldntFindCommunity.Kind())
	}
	if _, ok := sserr.AsError(err); ok {
		return nil, err
	}
	return nil, sserr.UnclassifiedContext(ctx, err)
}
