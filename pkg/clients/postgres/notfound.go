package postgres

import (
	sserr "github.com/StricklySoft/stricklysoft-community/pkg/errors"
)

// NotFoundError reports that a single-row query matched no row. It is the
// only type carrying the [sserr.RecordNotFound] marker.
type NotFoundError struct {
	err error
}

var _ sserr.RecordNotFound = (*NotFoundError)(nil)

func (e *NotFoundError) Error() string {
	return "postgres: record not found"
}

// Unwrap returns the driver's no-rows error (pgx.ErrNoRows).
func (e *NotFoundError) Unwrap() error {
	return e.err
}

// RecordNotFound marks the error for [sserr.IsRecordNotFound].
func (e *NotFoundError) RecordNotFound() {}
