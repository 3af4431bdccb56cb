package main

import (
	"context"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/StricklySoft/stricklysoft-community/pkg/aggregates"
	"github.com/StricklySoft/stricklysoft-community/pkg/api"
)

const tracerName = "github.com/StricklySoft/stricklysoft-community/cmd/community-api"

// healthReporter is satisfied by *lifecycle.Service.
type healthReporter interface {
	Report(ctx context.Context) (healthy bool, results map[string]string)
}

type server struct {
	reader    aggregates.Reader
	responder *api.Responder
	health    healthReporter
	tracer    trace.Tracer
}

func newServer(reader aggregates.Reader, responder *api.Responder, health healthReporter) *server {
	return &server{
		reader:    reader,
		responder: responder,
		health:    health,
		tracer:    otel.Tracer(tracerName),
	}
}

func (s *server) routes(gatherer prometheus.Gatherer) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("GET /api/v3/community/{id}/aggregates", s.traced(s.responder.Handler(s.getAggregates)))
	mux.Handle("GET /metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	mux.HandleFunc("GET /healthz", s.healthz)
	return mux
}

func (s *server) getAggregates(w http.ResponseWriter, r *http.Request) error {
	id, err := aggregates.ParseCommunityID(r.PathValue("id"))
	if err != nil {
		return err
	}
	aggs, err := s.reader.Read(r.Context(), id)
	if err != nil {
		return err
	}
	return api.WriteJSON(w, http.StatusOK, aggs)
}

func (s *server) healthz(w http.ResponseWriter, r *http.Request) {
	healthy, results := s.health.Report(r.Context())
	status := http.StatusOK
	if !healthy {
		status = http.StatusServiceUnavailable
	}
	if err := api.WriteJSON(w, status, results); err != nil {
		s.responder.WriteError(w, r, err)
	}
}

// traced runs next inside a server span so errors written by the
// responder land on it.
func (s *server) traced(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, span := s.tracer.Start(r.Context(), r.Method+" "+r.Pattern,
			trace.WithSpanKind(trace.SpanKindServer),
			trace.WithAttributes(
				attribute.String("http.request.method", r.Method),
				attribute.String("url.path", r.URL.Path),
			),
		)
		defer span.End()
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
