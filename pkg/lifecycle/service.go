// Package lifecycle runs the startup and shutdown of a long-lived service
// and answers health checks for it.
//
// Start hooks run in registration order and stop hooks in reverse order, so
// a resource opened by the first start hook is closed by the last stop hook:
//
//	svc, err := lifecycle.NewServiceBuilder("community-api", version).
//	    WithLogger(logger).
//	    WithOnStart(openDatabase).
//	    WithOnStop(closeDatabase).
//	    WithHealthCheck("postgres", db.Health).
//	    Build()
//
// Failures are returned as unclassified [*sserr.Error] values.
package lifecycle

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	sserr "github.com/StricklySoft/stricklysoft-community/pkg/errors"
)

const tracerName = "github.com/StricklySoft/stricklysoft-community/pkg/lifecycle"

// Hook runs during startup or shutdown.
type Hook func(ctx context.Context) error

// CheckFunc probes one dependency.
type CheckFunc func(ctx context.Context) error

// StateChangeHandler observes state transitions. Handlers run under the
// state lock and must not call back into the service.
type StateChangeHandler func(old, new State)

type healthCheck struct {
	name  string
	check CheckFunc
}

// Service tracks the lifecycle of one process. It is safe for concurrent
// use.
type Service struct {
	name    string
	version string

	mu        sync.RWMutex
	state     State
	startedAt time.Time

	tracer trace.Tracer
	logger *slog.Logger

	onStart       []Hook
	onStop        []Hook
	checks        []healthCheck
	stateHandlers []StateChangeHandler
}

// Info is a snapshot of a service, suitable for JSON.
type Info struct {
	Name      string        `json:"name"`
	Version   string        `json:"version"`
	State     State         `json:"state"`
	StartedAt *time.Time    `json:"started_at,omitempty"`
	Uptime    time.Duration `json:"uptime_ns,omitempty"`
}

// Name returns the service name.
func (s *Service) Name() string { return s.name }

// Version returns the service version.
func (s *Service) Version() string { return s.version }

// State returns the current state.
func (s *Service) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Info returns a snapshot of the service.
func (s *Service) Info() Info {
	s.mu.RLock()
	defer s.mu.RUnlock()

	info := Info{Name: s.name, Version: s.version, State: s.state}
	if s.state == StateRunning {
		t := s.startedAt
		info.StartedAt = &t
		info.Uptime = time.Since(t)
	}
	return info
}

func (s *Service) setState(new State) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	old := s.state
	if !ValidTransition(old, new) {
		return sserr.Unclassified(fmt.Errorf("lifecycle: invalid state transition from %q to %q", old, new))
	}
	s.state = new
	if new == StateRunning {
		s.startedAt = time.Now().UTC()
	}

	for _, h := range s.stateHandlers {
		func() {
			defer func() {
				if r := recover(); r != nil {
					s.logger.Error("lifecycle: state change handler panicked",
						"panic", r,
						"service", s.name,
						"old_state", string(old),
						"new_state", string(new),
					)
				}
			}()
			h(old, new)
		}()
	}
	return nil
}

// Start runs the start hooks and moves the service to [StateRunning]. If a
// hook fails, the stop hooks of the hooks that already ran are not
// executed; the caller decides whether to call [Service.Stop].
func (s *Service) Start(ctx context.Context) error {
	ctx, span := s.startSpan(ctx, "lifecycle.Start")
	defer span.End()

	if err := ctx.Err(); err != nil {
		return s.fail(ctx, span, "start canceled", sserr.UnclassifiedContext(ctx, err), false)
	}
	if err := s.setState(StateStarting); err != nil {
		return recordSpan(span, err)
	}

	s.logger.InfoContext(ctx, "lifecycle: starting service",
		"service", s.name,
		"version", s.version,
	)
	for i, hook := range s.onStart {
		if err := hook(ctx); err != nil {
			return s.fail(ctx, span, "start hook failed",
				wrapHook(ctx, fmt.Sprintf("start hook %d", i), err), true)
		}
	}

	if err := s.setState(StateRunning); err != nil {
		return recordSpan(span, err)
	}
	s.logger.InfoContext(ctx, "lifecycle: service started", "service", s.name)
	span.SetStatus(codes.Ok, "")
	return nil
}

// Stop runs the stop hooks in reverse order and moves the service to
// [StateStopped]. Every hook runs even if an earlier one fails; the
// failures are joined. Stopping a service in a terminal state is a no-op.
func (s *Service) Stop(ctx context.Context) error {
	ctx, span := s.startSpan(ctx, "lifecycle.Stop")
	defer span.End()

	if s.State().IsTerminal() || s.State() == StateNew {
		span.SetStatus(codes.Ok, "")
		return nil
	}
	if err := s.setState(StateStopping); err != nil {
		return recordSpan(span, err)
	}

	s.logger.InfoContext(ctx, "lifecycle: stopping service", "service", s.name)
	var errs []error
	for i, hook := range slices.Backward(s.onStop) {
		if err := hook(ctx); err != nil {
			errs = append(errs, fmt.Errorf("stop hook %d: %w", i, err))
		}
	}
	if len(errs) > 0 {
		return s.fail(ctx, span, "stop hooks failed", sserr.UnclassifiedContext(ctx, errors.Join(errs...)), true)
	}

	if err := s.setState(StateStopped); err != nil {
		return recordSpan(span, err)
	}
	s.logger.InfoContext(ctx, "lifecycle: service stopped", "service", s.name)
	span.SetStatus(codes.Ok, "")
	return nil
}

// Health returns nil when the service is running and every registered
// check passes. Checks run sequentially in registration order and the
// first failure is returned.
func (s *Service) Health(ctx context.Context) error {
	if state := s.State(); state != StateRunning {
		return sserr.UnclassifiedContext(ctx, fmt.Errorf("lifecycle: service is not running, current state is %q", state))
	}
	for _, c := range s.checks {
		if err := c.check(ctx); err != nil {
			return wrapHook(ctx, "health check "+c.name, err)
		}
	}
	return nil
}

// Report runs every check and returns a per-check result: "ok" or the
// error text. Unlike [Service.Health] it does not stop at the first
// failure.
func (s *Service) Report(ctx context.Context) (healthy bool, results map[string]string) {
	results = make(map[string]string, len(s.checks)+1)
	state := s.State()
	results["state"] = state.String()
	healthy = state == StateRunning

	for _, c := range s.checks {
		if err := c.check(ctx); err != nil {
			results[c.name] = err.Error()
			healthy = false
			continue
		}
		results[c.name] = "ok"
	}
	return healthy, results
}

func (s *Service) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.tracer.Start(ctx, name,
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(
			attribute.String("service.name", s.name),
			attribute.String("service.version", s.version),
		),
	)
}

// fail logs err, optionally moves the service to StateFailed, and records
// err on span.
func (s *Service) fail(ctx context.Context, span trace.Span, msg string, err error, markFailed bool) error {
	s.logger.ErrorContext(ctx, "lifecycle: "+msg, "service", s.name, "error", err)
	if markFailed {
		_ = s.setState(StateFailed)
	}
	return recordSpan(span, err)
}

func recordSpan(span trace.Span, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	return err
}

// wrapHook keeps containers returned by hooks and wraps anything else.
func wrapHook(ctx context.Context, what string, err error) error {
	if _, ok := sserr.AsError(err); ok {
		return err
	}
	return sserr.UnclassifiedContext(ctx, fmt.Errorf("lifecycle: %s: %w", what, err))
}

// ServiceBuilder configures a [Service].
type ServiceBuilder struct {
	name          string
	version       string
	logger        *slog.Logger
	onStart       []Hook
	onStop        []Hook
	checks        []healthCheck
	stateHandlers []StateChangeHandler
}

// NewServiceBuilder starts building a service.
func NewServiceBuilder(name, version string) *ServiceBuilder {
	return &ServiceBuilder{name: name, version: version}
}

// WithLogger sets the logger. The default is slog.Default().
func (b *ServiceBuilder) WithLogger(logger *slog.Logger) *ServiceBuilder {
	b.logger = logger
	return b
}

// WithOnStart appends a start hook.
func (b *ServiceBuilder) WithOnStart(hook Hook) *ServiceBuilder {
	b.onStart = append(b.onStart, hook)
	return b
}

// WithOnStop appends a stop hook. Stop hooks run in reverse order.
func (b *ServiceBuilder) WithOnStop(hook Hook) *ServiceBuilder {
	b.onStop = append(b.onStop, hook)
	return b
}

// WithHealthCheck registers a named dependency check.
func (b *ServiceBuilder) WithHealthCheck(name string, check CheckFunc) *ServiceBuilder {
	b.checks = append(b.checks, healthCheck{name: name, check: check})
	return b
}

// OnStateChange registers a state transition observer.
func (b *ServiceBuilder) OnStateChange(handler StateChangeHandler) *ServiceBuilder {
	b.stateHandlers = append(b.stateHandlers, handler)
	return b
}

// Build validates the configuration and returns the service.
func (b *ServiceBuilder) Build() (*Service, error) {
	if b.name == "" {
		return nil, sserr.Unclassified(errors.New("lifecycle: service name must not be empty"))
	}
	for _, c := range b.checks {
		if c.name == "" || c.name == "state" || c.check == nil {
			return nil, sserr.Unclassified(fmt.Errorf("lifecycle: invalid health check %q", c.name))
		}
	}
	for _, h := range append(slices.Clone(b.onStart), b.onStop...) {
		if h == nil {
			return nil, sserr.Unclassified(errors.New("lifecycle: hooks must not be nil"))
		}
	}

	logger := b.logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		name:          b.name,
		version:       b.version,
		state:         StateNew,
		tracer:        otel.Tracer(tracerName),
		logger:        logger,
		onStart:       slices.Clone(b.onStart),
		onStop:        slices.Clone(b.onStop),
		checks:        slices.Clone(b.checks),
		stateHandlers: slices.Clone(b.stateHandlers),
	}, nil
}
