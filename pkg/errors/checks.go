package errors

import (
	"errors"
)

// RecordNotFound is implemented by the persistence layer's "no such row"
// error and by nothing else. The classifier asks whether a cause carries
// this capability; it never inspects concrete driver error types.
type RecordNotFound interface {
	error
	RecordNotFound()
}

// AsError attempts to convert an error to an *Error.
// Returns the Error and true if successful, nil and false otherwise.
// This function traverses the error chain using errors.As.
//
// Example:
//
//	if e, ok := errors.AsError(err); ok {
//	    slog.Warn("request failed", "error", e)
//	}
func AsError(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// KindOf returns the kind of the first *Error in err's chain and whether it
// was classified.
func KindOf(err error) (Kind, bool) {
	if e, ok := AsError(err); ok {
		return e.Kind()
	}
	return Kind{}, false
}

// HasTag reports whether err is classified with the given tag.
//
// Example:
//
//	if errors.HasTag(err, errors.TagCouldntFindCommunity) {
//	    // the community is gone; nothing left to do
//	}
func HasTag(err error, tag Tag) bool {
	k, ok := KindOf(err)
	return ok && k.Tag() == tag
}

// IsRecordNotFound reports whether any error in err's chain carries the
// persistence layer's [RecordNotFound] marker.
func IsRecordNotFound(err error) bool {
	var marker RecordNotFound
	return errors.As(err, &marker)
}

// IsUnclassified reports whether err is an *Error without a kind, meaning
// a client would receive the plain-text fallback body.
func IsUnclassified(err error) bool {
	e, ok := AsError(err)
	return ok && !e.hasKind
}
