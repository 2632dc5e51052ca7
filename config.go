package rtsched

import (
	"time"

	"github.com/zoobzio/clockz"
)

// TaskOption customizes a Task[T] beyond what its flavour constructor
// requires, following the teacher's functional-options convention (see
// ratelimiter.go's `Option` pattern) rather than a mutable builder.
type TaskOption[T any] func(*Task[T])

// WithGenerateMetrics supplies the feature-vector extractor a Predictor
// sees for each job. Only meaningful on a predictive task; a no-op on
// best-effort and fixed-budget tasks since they never consult it.
func WithGenerateMetrics[T any](gen GenerateMetrics[T]) TaskOption[T] {
	return func(t *Task[T]) {
		t.generateMetrics = gen
	}
}

// WithFatalHandler overrides the process-wide default FatalHandler for a
// single task, the same per-instance override the teacher allows for its
// clockz.Clock dependency.
func WithFatalHandler[T any](h FatalHandler) TaskOption[T] {
	return func(t *Task[T]) {
		if h != nil {
			t.fatal = h
		}
	}
}

// WithExecutionTime supplies an explicit execution-time budget to a
// predictive task (spec.md §9 Open Question: predictive tasks may still
// declare a fixed budget alongside prediction, used as the SCHED_DEADLINE
// runtime until the first measurement lands, and as the budget OnOverrun
// compares each job's measured runtime against). Fixed-budget
// tasks take their budget as a required constructor argument instead.
func WithExecutionTime[T any](d time.Duration) TaskOption[T] {
	return func(t *Task[T]) {
		t.executionTime = &d
	}
}

// WithClock overrides the clockz.Clock used to timestamp OnFinished/
// OnOverrun events, the same per-instance override the teacher exposes as
// WithClock on every connector in timeout.go/backoff.go/workerpool.go.
// Tests inject a fake clock instead of asserting against wall-clock time.
func WithClock[T any](clock clockz.Clock) TaskOption[T] {
	return func(t *Task[T]) {
		if clock != nil {
			t.clock = clock
		}
	}
}
