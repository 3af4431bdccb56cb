// Package fixtures provides shared test data for the community services
// test suite.
package fixtures

import (
	"time"

	"github.com/StricklySoft/stricklysoft-community/pkg/aggregates"
)

// Community identifiers used across reader and handler tests.
const (
	CommunityID    aggregates.CommunityID = 42
	AltCommunityID aggregates.CommunityID = 43
	MissingID      aggregates.CommunityID = 9999
)

// Published is the fixed creation time used by [Aggregates].
var Published = time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC)

// Aggregates returns a populated row for [CommunityID].
func Aggregates() *aggregates.CommunityAggregates {
	return &aggregates.CommunityAggregates{
		ID:                  7,
		CommunityID:         CommunityID,
		Subscribers:         2,
		Posts:               1,
		Comments:            2,
		Published:           Published,
		UsersActiveDay:      1,
		UsersActiveWeek:     1,
		UsersActiveMonth:    2,
		UsersActiveHalfYear: 2,
		HotRank:             1728,
	}
}

// Standard configuration values used in config loader tests.
const (
	TestEnvPrefix = "TESTAPP"

	TestConfigYAML = `host: localhost
port: 8080
database: testdb
`

	TestConfigJSON = `{
  "host": "localhost",
  "port": 8080,
  "database": "testdb"
}`
)

// TestCatalog is a translation catalog covering two tags.
const TestCatalog = `{
  "couldnt_find_community": "Couldn't find community.",
  "no_id_given": "No id given."
}`
