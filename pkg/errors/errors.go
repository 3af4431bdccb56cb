// Package errors provides the unified error container used by every
// StricklySoft community service. A single [Error] type wraps an arbitrary
// underlying failure, optionally classifies it with a [Kind] from a closed,
// wire-stable taxonomy, records the call context in which it was built, and
// renders itself as a transport response.
//
// # Kinds
//
// Each [Kind] has a stable snake_case [Tag] (e.g. "couldnt_find_community")
// that API clients branch on and translate. A handful of kinds also carry a
// free-form message, for failure text produced by a third party such as the
// image host. Kinds serialize as:
//
//	{"error":"banned"}
//	{"error":"registration_denied","message":"reason"}
//
// Adding a tag is backward compatible; renaming or removing one is not.
// [Kinds] and [Tags] enumerate the taxonomy in declaration order, for
// example to check that every tag has a translation.
//
// # Construction
//
// There are three ways to build an error, each recording a [Trace]:
//
//   - [Unclassified] wraps a low-level failure that has no kind yet.
//   - [Wrap] wraps a failure whose reason is known.
//   - [FromKind] builds an error that has no separate cause.
//
// [Error.WithKind] reclassifies an existing error; it is the only way to
// derive a modified container and it preserves the cause and trace.
//
// # Responses
//
// [Error.HTTPStatus] is 404 when the cause carries the persistence layer's
// [RecordNotFound] marker and 400 otherwise. [Error.Response] renders the
// kind as JSON, or falls back to the cause's plain-text message for
// unclassified errors. The trace is for operator logs only:
//
//	slog.Warn("request failed", "error", err, "detail", fmt.Sprintf("%+v", err))
package errors
