// Package api turns [sserr.Error] containers into HTTP and gRPC responses
// for the community services.
//
// The [Responder] is the single place where an error leaves the process:
// it writes the public body (the kind's JSON or, for the unclassified
// fallback, the cause text), logs the operator detail including the
// captured trace, marks the request span, and counts the response.
//
//	rs := api.NewResponder(api.WithLogger(logger), api.WithMetrics(metrics))
//	mux.Handle("GET /api/v3/community/{id}/aggregates", rs.Handler(h.aggregates))
package api

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	sserr "github.com/StricklySoft/stricklysoft-community/pkg/errors"
)

// HeaderErrorReference carries the id that ties an error response to its
// log line.
const HeaderErrorReference = "X-Error-Reference"

// unclassifiedLabel is the metrics label for errors without a kind.
const unclassifiedLabel = "unclassified"

// Responder writes error responses. It is safe for concurrent use.
type Responder struct {
	logger  *slog.Logger
	metrics *Metrics
}

// Option configures a [Responder].
type Option func(*Responder)

// WithLogger sets the logger. The default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(rs *Responder) {
		if logger != nil {
			rs.logger = logger
		}
	}
}

// WithMetrics sets the counters updated for every error response. Without
// it the responder counts into an unregistered [Metrics].
func WithMetrics(m *Metrics) Option {
	return func(rs *Responder) {
		if m != nil {
			rs.metrics = m
		}
	}
}

// NewResponder returns a Responder configured by opts.
func NewResponder(opts ...Option) *Responder {
	rs := &Responder{
		logger:  slog.Default(),
		metrics: NewMetrics(),
	}
	for _, opt := range opts {
		opt(rs)
	}
	return rs
}

// WriteError writes err as an error response. Errors that are not
// containers are treated as unclassified. A nil err writes nothing.
func (rs *Responder) WriteError(w http.ResponseWriter, r *http.Request, err error) {
	if err == nil {
		return
	}
	ctx := r.Context()
	e := containerOf(ctx, err)
	resp := e.Response()

	ref := rs.report(ctx, e, resp, strconv.Itoa(resp.Status),
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
	)

	h := w.Header()
	h.Set("Content-Type", resp.ContentType)
	h.Set("X-Content-Type-Options", "nosniff")
	h.Set(HeaderErrorReference, ref)
	w.WriteHeader(resp.Status)
	_, _ = w.Write(resp.Body)
}

// HandlerFunc is an HTTP handler that reports failure by returning an
// error instead of writing it.
type HandlerFunc func(w http.ResponseWriter, r *http.Request) error

// Handler adapts fn to an [http.Handler]. A returned error is written with
// [Responder.WriteError]; fn must not have written a response in that case.
func (rs *Responder) Handler(fn HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := fn(w, r); err != nil {
			rs.WriteError(w, r, err)
		}
	})
}

// WriteJSON encodes v and writes it with the given status. Encoding happens
// before anything is written, so a failure leaves w untouched and is
// returned as an unclassified error.
func WriteJSON(w http.ResponseWriter, status int, v any) error {
	body, err := json.Marshal(v)
	if err != nil {
		return sserr.Unclassified(err)
	}
	w.Header().Set("Content-Type", sserr.ContentTypeJSON)
	w.WriteHeader(status)
	_, _ = w.Write(body)
	return nil
}

// report logs e, marks the active span, counts the response, and returns
// the error reference id.
func (rs *Responder) report(ctx context.Context, e *sserr.Error, resp sserr.Response, status string, attrs ...slog.Attr) string {
	ref := uuid.NewString()

	label := unclassifiedLabel
	if k, ok := e.Kind(); ok && !resp.Unclassified {
		label = string(k.Tag())
	}
	rs.metrics.observe(status, label, resp.Unclassified)

	span := trace.SpanFromContext(ctx)
	span.RecordError(e, trace.WithAttributes(
		attribute.String("error.reference", ref),
		attribute.String("error.tag", label),
	))
	span.SetStatus(codes.Error, label)

	level := slog.LevelWarn
	msg := "request failed"
	if resp.Unclassified {
		level = slog.LevelError
		msg = "request failed with unclassified error"
	}
	attrs = append(attrs,
		slog.String("reference", ref),
		slog.String("status", status),
		slog.Any("error", e),
		slog.String("detail", e.Detail()),
	)
	rs.logger.LogAttrs(ctx, level, msg, attrs...)
	return ref
}

func containerOf(ctx context.Context, err error) *sserr.Error {
	if e, ok := sserr.AsError(err); ok {
		return e
	}
	return sserr.UnclassifiedContext(ctx, err)
}
