package errors

import (
	"fmt"
	"log/slog"
)

// Error is the unified error container. It wraps exactly one underlying
// cause, optionally classifies it with a [Kind], and carries the [Trace]
// recorded when it was constructed.
//
// Error is immutable: the cause and trace never change after construction,
// and [Error.WithKind] returns a new container rather than modifying the
// receiver. A non-nil *Error always has a non-nil cause.
type Error struct {
	kind    Kind
	hasKind bool
	cause   error
	trace   Trace
}

// Kind returns the error's classification and whether one was set. It is
// absent only for errors built with [Unclassified] that were never
// reclassified.
func (e *Error) Kind() (Kind, bool) {
	return e.kind, e.hasKind
}

// Cause returns the underlying error.
func (e *Error) Cause() error {
	return e.cause
}

// Trace returns the call context recorded at construction.
func (e *Error) Trace() Trace {
	return e.trace
}

// Unwrap returns the underlying cause, supporting errors.Is and errors.As
// from the standard library.
func (e *Error) Unwrap() error {
	return e.cause
}

// Error implements the error interface with a single-line rendering:
// the kind name, when present, followed by the cause's message. Use the
// %+v verb or [Error.Detail] for the full operator rendering.
func (e *Error) Error() string {
	if e.hasKind {
		return e.kind.String() + ": " + e.cause.Error()
	}
	return e.cause.Error()
}

// Detail renders the error for operator logs: the kind (when present), the
// cause formatted with %+v so causes that expose a chain print it, and the
// recorded trace on the following lines. Detail is never sent to clients.
func (e *Error) Detail() string {
	return fmt.Sprintf("%+v", e)
}

// Format implements fmt.Formatter. %v and %s print [Error.Error]; %+v prints
// the operator rendering described by [Error.Detail]; %q quotes Error().
func (e *Error) Format(s fmt.State, verb rune) {
	switch verb {
	case 'v':
		if s.Flag('+') {
			if e.hasKind {
				fmt.Fprintf(s, "%s: ", e.kind)
			}
			fmt.Fprintf(s, "%+v\n", e.cause)
			fmt.Fprint(s, e.trace.String())
			return
		}
		fallthrough
	case 's':
		fmt.Fprint(s, e.Error())
	case 'q':
		fmt.Fprintf(s, "%q", e.Error())
	}
}

// LogValue implements slog.LogValuer so containers log as a group of
// structured attributes instead of one opaque string.
func (e *Error) LogValue() slog.Value {
	attrs := make([]slog.Attr, 0, 5)
	if e.hasKind {
		attrs = append(attrs, slog.String("kind", e.kind.Tag().String()))
		if msg := e.kind.Message(); msg != "" {
			attrs = append(attrs, slog.String("kind_message", msg))
		}
	}
	attrs = append(attrs, slog.String("cause", e.cause.Error()))
	if frames := e.trace.Frames(); len(frames) > 0 {
		attrs = append(attrs, slog.String("origin", frames[0].String()))
	}
	if sc := e.trace.SpanContext(); sc.IsValid() {
		attrs = append(attrs, slog.String("trace_id", sc.TraceID().String()))
	}
	return slog.GroupValue(attrs...)
}

// WithKind returns a copy of the error classified as kind. The cause and
// trace are carried over unchanged and the receiver is not modified. A nil
// receiver yields nil. The zero Kind removes the classification, so the
// copy renders the plain-text fallback.
func (e *Error) WithKind(kind Kind) *Error {
	if e == nil {
		return nil
	}
	return &Error{
		kind:    kind,
		hasKind: !kind.IsZero(),
		cause:   e.cause,
		trace:   e.trace,
	}
}

// kindError is the synthesized cause of errors built by [FromKind].
type kindError struct {
	kind Kind
}

func (k kindError) Error() string {
	if k.kind.IsZero() {
		return "unclassified error"
	}
	return k.kind.String()
}

var _ error = kindError{}
