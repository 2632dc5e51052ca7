package rtsched

import (
	"context"
	"time"

	"github.com/zoobzio/hookz"
	"github.com/zoobzio/metricz"
	"github.com/zoobzio/tracez"
)

// Metric keys for the per-task metricz.Registry. These are ambient
// operational counters, independent of whatever feature vector the
// Predictor sees: they exist so a driver can watch a task's health without
// subscribing to the full capitan tracepoint catalog.
const (
	MetricJobsTotal           = metricz.Key("task.jobs.total")
	MetricQueueDepth          = metricz.Key("task.queue.depth")
	MetricPredictionCorrection = metricz.Key("task.prediction.correction_ns")
)

// Span keys for per-job tracez spans. These sit alongside the fixed
// capitan catalog in signals.go rather than replacing it: capitan gives a
// stable event contract for external tracing sinks, tracez gives
// finer-grained, timed spans for local diagnosis.
const (
	SpanRunJob = tracez.Key("task.run_job")
)

// Tags attached to the run-job span.
const (
	TagJobID     = tracez.Tag("job_id")
	TagRuntimeNs = tracez.Tag("runtime_ns")
)

// Event is delivered to hooks registered via Task.OnFinished / OnOverrun.
type Event struct {
	TaskID    int
	JobID     int
	RuntimeNs int64
	BudgetNs  int64
	At        time.Time
}

// EventFinished and EventOverrun identify the hookz event kinds in a task's
// Hooks[Event] registry.
const (
	EventFinished hookz.Key = "task.finished"
	EventOverrun  hookz.Key = "task.overrun"
)

// observability bundles the ambient instrumentation wired into every task,
// grounded on the teacher's identical bundle in timeout.go/backoff.go
// (a metricz.Registry, a tracez.Tracer, and a hookz.Hooks[Event] per
// connector instance).
type observability struct {
	metrics *metricz.Registry
	tracer  *tracez.Tracer
	hooks   *hookz.Hooks[Event]
}

func newObservability() *observability {
	metrics := metricz.New()
	metrics.Counter(MetricJobsTotal)
	metrics.Gauge(MetricQueueDepth)
	metrics.Gauge(MetricPredictionCorrection)

	return &observability{
		metrics: metrics,
		tracer:  tracez.New(),
		hooks:   hookz.New[Event](),
	}
}

func (o *observability) close() {
	o.tracer.Close()
	o.hooks.Close()
}

// emitOverrun notifies OnOverrun subscribers, best-effort: a hook error
// never affects job execution, matching spec.md §7's "over-run ... library
// records the actual CPU-time and continues".
func (o *observability) emitOverrun(ctx context.Context, ev Event) {
	_ = o.hooks.Emit(ctx, EventOverrun, ev) //nolint:errcheck
}

func (o *observability) emitFinished(ctx context.Context, ev Event) {
	_ = o.hooks.Emit(ctx, EventFinished, ev) //nolint:errcheck
}
