// Package aggregates reads the denormalized per-community counters
// (subscribers, posts, comments, active users) maintained by database
// triggers.
//
// Reads never write: the counters are owned by triggers on the follow,
// post, comment, and person tables, so a [Reader] always observes
// whatever the last committed transaction left behind.
//
// A missing row is reported as an [*sserr.Error] classified as
// couldnt_find_community whose cause carries the record-not-found marker,
// so responders answer 404:
//
//	aggs, err := reader.Read(ctx, id)
//	if aggregates.IsCommunityGone(err) {
//	    // the community was deleted
//	}
package aggregates

import (
	"context"
	"strconv"
	"time"

	sserr "github.com/StricklySoft/stricklysoft-community/pkg/errors"
)

// CommunityID identifies a community.
type CommunityID int32

// ParseCommunityID parses a decimal path segment. Anything that is not a
// positive 32-bit integer yields a no_id_given error.
func ParseCommunityID(s string) (CommunityID, error) {
	n, err := strconv.ParseInt(s, 10, 32)
	if err != nil {
		return 0, sserr.Wrap(err, sserr.TagNoIDGiven.Kind())
	}
	if n <= 0 {
		return 0, sserr.FromKind(sserr.TagNoIDGiven.Kind())
	}
	return CommunityID(n), nil
}

func (id CommunityID) String() string {
	return strconv.FormatInt(int64(id), 10)
}

// CommunityAggregates is one row of community_aggregates.
type CommunityAggregates struct {
	ID                  int32       `json:"id"`
	CommunityID         CommunityID `json:"community_id"`
	Subscribers         int64       `json:"subscribers"`
	Posts               int64       `json:"posts"`
	Comments            int64       `json:"comments"`
	Published           time.Time   `json:"published"`
	UsersActiveDay      int64       `json:"users_active_day"`
	UsersActiveWeek     int64       `json:"users_active_week"`
	UsersActiveMonth    int64       `json:"users_active_month"`
	UsersActiveHalfYear int64       `json:"users_active_half_year"`
	HotRank             int32       `json:"hot_rank"`

	// Stale is set when the row was served by [FallbackReader] from its
	// copy because the store could not be read. It is never stored.
	Stale bool `json:"stale,omitempty"`
}

// Reader looks up the aggregates row of a community.
type Reader interface {
	Read(ctx context.Context, id CommunityID) (*CommunityAggregates, error)
}

// IsCommunityGone reports whether err says the community has no aggregates
// row, which happens once the community (or its creator) is deleted.
func IsCommunityGone(err error) bool {
	return sserr.HasTag(err, sserr.TagCouldntFindCommunity) && sserr.IsRecordNotFound(err)
}
