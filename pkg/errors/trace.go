package errors

import (
	"context"
	"fmt"
	"runtime"
	"strings"

	"go.opentelemetry.io/otel/trace"
)

// maxTraceDepth bounds the number of call frames recorded per error.
const maxTraceDepth = 32

// Trace is the diagnostic call context recorded when an [Error] is
// constructed. Recording stores only program counters and, when a context
// was supplied, the active span context; frames are symbolized only when
// the trace is rendered.
//
// A Trace is immutable once captured. It is intended for operator logs and
// must never be included in client responses.
type Trace struct {
	pcs  []uintptr
	span trace.SpanContext
}

// Frame is one symbolized call frame of a [Trace].
type Frame struct {
	Function string
	File     string
	Line     int
}

// String renders the frame as "function (file:line)".
func (f Frame) String() string {
	return fmt.Sprintf("%s (%s:%d)", f.Function, f.File, f.Line)
}

// captureTrace records the call stack starting at the caller of the
// exported constructor. skip counts the frames between captureTrace and
// that constructor, inclusive of the constructor.
func captureTrace(ctx context.Context, skip int) Trace {
	var buf [maxTraceDepth]uintptr
	// +2 skips runtime.Callers and captureTrace itself.
	n := runtime.Callers(skip+2, buf[:])
	t := Trace{pcs: make([]uintptr, n)}
	copy(t.pcs, buf[:n])
	t.span = trace.SpanContextFromContext(ctx)
	return t
}

// Frames symbolizes the recorded program counters. The first frame is the
// code that constructed the error.
func (t Trace) Frames() []Frame {
	if len(t.pcs) == 0 {
		return nil
	}
	frames := runtime.CallersFrames(t.pcs)
	out := make([]Frame, 0, len(t.pcs))
	for {
		f, more := frames.Next()
		if f.Function != "" {
			out = append(out, Frame{Function: f.Function, File: f.File, Line: f.Line})
		}
		if !more {
			break
		}
	}
	return out
}

// SpanContext returns the span that was active when the error was
// constructed. It is invalid when the error was built without a context or
// outside of a span.
func (t Trace) SpanContext() trace.SpanContext {
	return t.span
}

// IsZero reports whether nothing was recorded.
func (t Trace) IsZero() bool {
	return len(t.pcs) == 0 && !t.span.IsValid()
}

// String renders the trace for operator logs, one numbered frame per line
// followed by the trace and span ids when a span was active.
func (t Trace) String() string {
	var b strings.Builder
	for i, f := range t.Frames() {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "%4d: %s\n           at %s:%d", i, f.Function, f.File, f.Line)
	}
	if t.span.IsValid() {
		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "      trace_id=%s span_id=%s", t.span.TraceID(), t.span.SpanID())
	}
	return b.String()
}
