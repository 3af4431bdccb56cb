package aggregates_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/StricklySoft/stricklysoft-community/internal/testutil"
	"github.com/StricklySoft/stricklysoft-community/internal/testutil/fixtures"
	"github.com/StricklySoft/stricklysoft-community/pkg/aggregates"
	"github.com/StricklySoft/stricklysoft-community/pkg/clients/postgres"
	sserr "github.com/StricklySoft/stricklysoft-community/pkg/errors"
)

var aggregateColumns = []string{
	"id", "community_id", "subscribers", "posts", "comments", "published",
	"users_active_day", "users_active_week", "users_active_month", "users_active_half_year", "hot_rank",
}

func aggregateRow(a *aggregates.CommunityAggregates) *pgxmock.Rows {
	return pgxmock.NewRows(aggregateColumns).AddRow(
		a.ID, a.CommunityID, a.Subscribers, a.Posts, a.Comments, a.Published,
		a.UsersActiveDay, a.UsersActiveWeek, a.UsersActiveMonth, a.UsersActiveHalfYear, a.HotRank,
	)
}

func newMockReader(t *testing.T) (*aggregates.PostgresReader, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return aggregates.NewPostgresReader(postgres.NewFromPool(mock, nil)), mock
}

func TestPostgresReader_Read(t *testing.T) {
	t.Parallel()
	reader, mock := newMockReader(t)
	want := fixtures.Aggregates()

	mock.ExpectQuery("FROM community_aggregates").
		WithArgs(int32(fixtures.CommunityID)).
		WillReturnRows(aggregateRow(want))

	got, err := reader.Read(context.Background(), fixtures.CommunityID)
	require.NoError(t, err)
	assert.Equal(t, want, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresReader_Read_NotFound(t *testing.T) {
	t.Parallel()
	reader, mock := newMockReader(t)

	mock.ExpectQuery("FROM community_aggregates").
		WithArgs(int32(fixtures.MissingID)).
		WillReturnRows(pgxmock.NewRows(aggregateColumns))

	got, err := reader.Read(context.Background(), fixtures.MissingID)
	assert.Nil(t, got)
	testutil.RequireKind(t, err, sserr.TagCouldntFindCommunity.Kind())
	testutil.RequireNotFound(t, err)
	assert.True(t, aggregates.IsCommunityGone(err))

	e, _ := sserr.AsError(err)
	assert.Equal(t, http.StatusNotFound, e.HTTPStatus())
	assert.JSONEq(t, `{"error":"couldnt_find_community"}`, string(e.Response().Body))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresReader_Read_QueryError(t *testing.T) {
	t.Parallel()
	reader, mock := newMockReader(t)
	cause := errors.New("relation \"community_aggregates\" does not exist")

	mock.ExpectQuery("FROM community_aggregates").
		WithArgs(int32(fixtures.CommunityID)).
		WillReturnError(cause)

	_, err := reader.Read(context.Background(), fixtures.CommunityID)
	testutil.RequireUnclassified(t, err)
	assert.ErrorIs(t, err, cause)
	assert.False(t, aggregates.IsCommunityGone(err))

	e, _ := sserr.AsError(err)
	resp := e.Response()
	assert.Equal(t, http.StatusBadRequest, resp.Status)
	assert.True(t, resp.Unclassified)
	assert.NoError(t, mock.ExpectationsWereMet())
}

type plainScanner struct{ err error }

func (s plainScanner) QueryRowScan(context.Context, string, []any, ...any) error { return s.err }

func TestPostgresReader_Read_PlainError(t *testing.T) {
	t.Parallel()
	reader := aggregates.NewPostgresReader(plainScanner{err: errors.New("conn closed")})

	_, err := reader.Read(context.Background(), 1)
	testutil.RequireUnclassified(t, err)
}
