package lifecycle

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sserr "github.com/StricklySoft/stricklysoft-community/pkg/errors"
)

func mustBuild(t *testing.T, b *ServiceBuilder) *Service {
	t.Helper()
	svc, err := b.Build()
	require.NoError(t, err)
	return svc
}

func TestService_StartStop_HookOrder(t *testing.T) {
	t.Parallel()
	var mu sync.Mutex
	var calls []string
	record := func(name string) Hook {
		return func(context.Context) error {
			mu.Lock()
			defer mu.Unlock()
			calls = append(calls, name)
			return nil
		}
	}

	svc := mustBuild(t, NewServiceBuilder("community-api", "1.2.3").
		WithOnStart(record("open db")).
		WithOnStart(record("open cache")).
		WithOnStop(record("close db")).
		WithOnStop(record("close cache")))

	ctx := context.Background()
	require.NoError(t, svc.Start(ctx))
	assert.Equal(t, StateRunning, svc.State())
	require.NoError(t, svc.Stop(ctx))
	assert.Equal(t, StateStopped, svc.State())

	assert.Equal(t, []string{"open db", "open cache", "close cache", "close db"}, calls)
}

func TestService_Start_Twice(t *testing.T) {
	t.Parallel()
	svc := mustBuild(t, NewServiceBuilder("svc", "1"))
	require.NoError(t, svc.Start(context.Background()))

	err := svc.Start(context.Background())
	require.Error(t, err)
	assert.True(t, sserr.IsUnclassified(err))
	assert.Contains(t, err.Error(), "invalid state transition")
	assert.Equal(t, StateRunning, svc.State())
}

func TestService_Start_HookFailure(t *testing.T) {
	t.Parallel()
	cause := errors.New("connection refused")
	attempts := 0
	svc := mustBuild(t, NewServiceBuilder("svc", "1").
		WithOnStart(func(context.Context) error {
			attempts++
			if attempts == 1 {
				return cause
			}
			return nil
		}))

	err := svc.Start(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "start hook 0")
	assert.Equal(t, StateFailed, svc.State())

	require.NoError(t, svc.Start(context.Background()))
	assert.Equal(t, StateRunning, svc.State())
}

func TestService_Start_KeepsContainerFromHook(t *testing.T) {
	t.Parallel()
	hookErr := sserr.FromKind(sserr.TagInvalidURL.Kind())
	svc := mustBuild(t, NewServiceBuilder("svc", "1").
		WithOnStart(func(context.Context) error { return hookErr }))

	err := svc.Start(context.Background())
	assert.Same(t, hookErr, err)
}

func TestService_Start_CanceledContext(t *testing.T) {
	t.Parallel()
	svc := mustBuild(t, NewServiceBuilder("svc", "1"))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := svc.Start(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, StateNew, svc.State())
}

func TestService_Stop_RunsAllHooksAndJoinsErrors(t *testing.T) {
	t.Parallel()
	errA, errB := errors.New("a"), errors.New("b")
	ran := 0
	svc := mustBuild(t, NewServiceBuilder("svc", "1").
		WithOnStop(func(context.Context) error { ran++; return errA }).
		WithOnStop(func(context.Context) error { ran++; return errB }))
	require.NoError(t, svc.Start(context.Background()))

	err := svc.Stop(context.Background())
	require.Error(t, err)
	assert.Equal(t, 2, ran)
	assert.ErrorIs(t, err, errA)
	assert.ErrorIs(t, err, errB)
	assert.Equal(t, StateFailed, svc.State())
}

func TestService_Stop_NoOp(t *testing.T) {
	t.Parallel()
	stops := 0
	svc := mustBuild(t, NewServiceBuilder("svc", "1").
		WithOnStop(func(context.Context) error { stops++; return nil }))

	require.NoError(t, svc.Stop(context.Background()), "never started")
	require.NoError(t, svc.Start(context.Background()))
	require.NoError(t, svc.Stop(context.Background()))
	require.NoError(t, svc.Stop(context.Background()), "already stopped")
	assert.Equal(t, 1, stops)
}

func TestService_Health(t *testing.T) {
	t.Parallel()
	dbErr := errors.New("db unreachable")
	var dbDown bool
	svc := mustBuild(t, NewServiceBuilder("svc", "1").
		WithHealthCheck("postgres", func(context.Context) error {
			if dbDown {
				return dbErr
			}
			return nil
		}).
		WithHealthCheck("redis", func(context.Context) error { return nil }))
	ctx := context.Background()

	err := svc.Health(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"new"`)

	require.NoError(t, svc.Start(ctx))
	require.NoError(t, svc.Health(ctx))

	healthy, report := svc.Report(ctx)
	assert.True(t, healthy)
	assert.Equal(t, map[string]string{"state": "running", "postgres": "ok", "redis": "ok"}, report)

	dbDown = true
	err = svc.Health(ctx)
	assert.ErrorIs(t, err, dbErr)
	assert.Contains(t, err.Error(), "health check postgres")

	healthy, report = svc.Report(ctx)
	assert.False(t, healthy)
	assert.Equal(t, "db unreachable", report["postgres"])
	assert.Equal(t, "ok", report["redis"])
}

func TestService_InfoAndStateHandlers(t *testing.T) {
	t.Parallel()
	var transitions []string
	svc := mustBuild(t, NewServiceBuilder("svc", "2.0.0").
		OnStateChange(func(old, new State) { transitions = append(transitions, old.String()+">"+new.String()) }).
		OnStateChange(func(State, State) { panic("observer bug") }))

	info := svc.Info()
	assert.Equal(t, "svc", info.Name)
	assert.Equal(t, "2.0.0", info.Version)
	assert.Nil(t, info.StartedAt)

	require.NoError(t, svc.Start(context.Background()))
	info = svc.Info()
	assert.Equal(t, StateRunning, info.State)
	require.NotNil(t, info.StartedAt)

	assert.Equal(t, []string{"new>starting", "starting>running"}, transitions)
}

func TestServiceBuilder_Validation(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		b    *ServiceBuilder
	}{
		{"empty name", NewServiceBuilder("", "1")},
		{"unnamed check", NewServiceBuilder("svc", "1").WithHealthCheck("", func(context.Context) error { return nil })},
		{"reserved check name", NewServiceBuilder("svc", "1").WithHealthCheck("state", func(context.Context) error { return nil })},
		{"nil check", NewServiceBuilder("svc", "1").WithHealthCheck("db", nil)},
		{"nil start hook", NewServiceBuilder("svc", "1").WithOnStart(nil)},
		{"nil stop hook", NewServiceBuilder("svc", "1").WithOnStop(nil)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := tt.b.Build()
			require.Error(t, err)
			assert.True(t, sserr.IsUnclassified(err))
		})
	}
}
