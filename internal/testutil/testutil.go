// Package testutil provides shared test helpers for the StricklySoft
// community services.
//
// All helpers accept [testing.TB] for compatibility with both tests and
// benchmarks. Functions that halt the test on failure use [require] from
// testify; functions that record failures without stopping use [assert].
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sserr "github.com/StricklySoft/stricklysoft-community/pkg/errors"
)

// RequireKind halts the test if err is nil, is not an *sserr.Error, or
// does not carry the expected kind.
//
// Example:
//
//	_, err := reader.Read(ctx, 42)
//	testutil.RequireKind(t, err, sserr.TagCouldntFindCommunity.Kind())
func RequireKind(t testing.TB, err error, want sserr.Kind, msgAndArgs ...any) {
	t.Helper()
	require.Error(t, err, msgAndArgs...)
	e, ok := sserr.AsError(err)
	require.True(t, ok, "expected *sserr.Error, got %T: %v", err, err)
	got, ok := e.Kind()
	require.True(t, ok, "expected a classified error, got unclassified: %v", err)
	require.Equal(t, want, got, "error kind mismatch (detail: %+v)", e)
}

// AssertTag records a test failure (without halting) unless err carries a
// kind with the given tag. Use this in table-driven tests.
func AssertTag(t testing.TB, err error, tag sserr.Tag, msgAndArgs ...any) bool {
	t.Helper()
	if !assert.Error(t, err, msgAndArgs...) {
		return false
	}
	k, ok := sserr.KindOf(err)
	if !assert.True(t, ok, "expected a classified *sserr.Error, got %T: %v", err, err) {
		return false
	}
	return assert.Equal(t, tag, k.Tag(), msgAndArgs...)
}

// RequireUnclassified halts the test unless err is an unclassified
// *sserr.Error.
func RequireUnclassified(t testing.TB, err error) {
	t.Helper()
	require.Error(t, err)
	require.True(t, sserr.IsUnclassified(err), "expected unclassified error, got %+v", err)
}

// RequireNotFound halts the test unless err carries the record-not-found
// marker somewhere in its chain.
func RequireNotFound(t testing.TB, err error) {
	t.Helper()
	require.Error(t, err)
	require.True(t, sserr.IsRecordNotFound(err), "expected record-not-found, got %+v", err)
}

// TempConfigFile creates a temporary file with the given content and
// extension (e.g., ".yaml", ".json") inside t.TempDir().
func TempConfigFile(t testing.TB, content, ext string) string {
	t.Helper()
	return TempFile(t, "config"+ext, content)
}

// TempFile creates a temporary file with the given name and content
// inside t.TempDir().
func TempFile(t testing.TB, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	err := os.WriteFile(path, []byte(content), 0o600)
	require.NoError(t, err, "failed to write temp file %s", path)
	return path
}

// SetEnv sets an environment variable and restores the previous value when
// the test completes. Tests that share a variable must not call
// t.Parallel().
func SetEnv(t testing.TB, key, value string) {
	t.Helper()
	prev, existed := os.LookupEnv(key)
	err := os.Setenv(key, value)
	require.NoError(t, err, "failed to set env var %s", key)
	t.Cleanup(func() {
		if existed {
			_ = os.Setenv(key, prev)
		} else {
			_ = os.Unsetenv(key)
		}
	})
}
