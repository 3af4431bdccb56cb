package errors

import "context"

// Unclassified wraps err without assigning a [Kind]. Use it at low-level
// boundaries (storage, serialization, I/O) where the failure has not been
// classified yet; business logic should reclassify with [Error.WithKind]
// before the error reaches a client. If err is nil, Unclassified returns nil.
//
// Example:
//
//	if err := rows.Err(); err != nil {
//	    return nil, errors.Unclassified(err)
//	}
func Unclassified(err error) *Error {
	if err == nil {
		return nil
	}
	return &Error{cause: err, trace: captureTrace(context.Background(), 1)}
}

// UnclassifiedContext is [Unclassified] that also records the span active
// in ctx.
func UnclassifiedContext(ctx context.Context, err error) *Error {
	if err == nil {
		return nil
	}
	return &Error{cause: err, trace: captureTrace(ctx, 1)}
}

// Wrap wraps err and classifies it as kind. If err is nil, Wrap returns nil.
// The zero Kind leaves the error unclassified, as with [Unclassified].
//
// Example:
//
//	if err := person.CheckBan(ctx, communityID); err != nil {
//	    return errors.Wrap(err, errors.TagBannedFromCommunity.Kind())
//	}
func Wrap(err error, kind Kind) *Error {
	if err == nil {
		return nil
	}
	return &Error{kind: kind, hasKind: !kind.IsZero(), cause: err, trace: captureTrace(context.Background(), 1)}
}

// WrapContext is [Wrap] that also records the span active in ctx.
func WrapContext(ctx context.Context, err error, kind Kind) *Error {
	if err == nil {
		return nil
	}
	return &Error{kind: kind, hasKind: !kind.IsZero(), cause: err, trace: captureTrace(ctx, 1)}
}

// FromKind builds an error for a failure that has no separate underlying
// error, such as a failed validation. The kind's own text becomes the
// cause. The zero Kind yields an unclassified error.
//
// Example:
//
//	if len(reason) == 0 {
//	    return errors.FromKind(errors.TagReportReasonRequired.Kind())
//	}
func FromKind(kind Kind) *Error {
	return &Error{kind: kind, hasKind: !kind.IsZero(), cause: kindError{kind: kind}, trace: captureTrace(context.Background(), 1)}
}

// FromKindContext is [FromKind] that also records the span active in ctx.
func FromKindContext(ctx context.Context, kind Kind) *Error {
	return &Error{kind: kind, hasKind: !kind.IsZero(), cause: kindError{kind: kind}, trace: captureTrace(ctx, 1)}
}
