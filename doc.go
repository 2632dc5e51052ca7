// Package rtsched provides a periodic real-time task runtime for decomposing
// an application into a small number of long-lived tasks, each a dedicated
// worker goroutine bound to a subset of CPUs and, optionally, attached to the
// Linux SCHED_DEADLINE policy.
//
// # Overview
//
// A Task[T] is a single-producer/single-consumer unit: a FIFO job queue, a
// counting semaphore, and one worker goroutine that drains the queue strictly
// in order. Jobs carry an opaque payload of type T; the worker hands each one
// to the task's Execute function exactly once.
//
// Three flavours share the same worker state machine:
//
//	NewBestEffortTask   - runs under the default scheduling policy
//	NewFixedBudgetTask  - enters SCHED_DEADLINE with a caller-supplied runtime budget
//	NewPredictiveTask   - enters SCHED_DEADLINE and reprograms its runtime budget
//	                      every job from a pluggable Predictor, fed by measured
//	                      per-job CPU time
//
// # Predictor
//
// Prediction is external to this package by design: Predictor is a two-method
// trait (Predict, Train) that the caller supplies. NoopPredictor and
// EWMAPredictor are provided as ready-to-use backends; tests typically install
// NoopPredictor or a fake that returns scripted predictions.
//
// # Observability
//
// Every worker transition emits a fixed-catalog event (see signals.go) through
// github.com/zoobzio/capitan, so the default behavior costs nothing until a
// subscriber is installed. Operational counters (jobs executed, queue depth,
// prediction correction) are exposed through github.com/zoobzio/metricz, and
// per-job spans through github.com/zoobzio/tracez for finer-grained timing
// breakdowns than the fixed catalog provides. Drivers that want callbacks
// instead of a subscriber can use the github.com/zoobzio/hookz-based
// OnFinished/OnOverrun hooks.
//
// # C ABI
//
// Command cmd/cabi exposes a handle-indexed C-callable facade
// (create_non_rt_task, add_job_to_task, join_task, ...) over this package's
// generic API, for non-Go drivers. Go drivers should use this package's
// generic constructors directly; cmd/cabi exists for the out-of-process
// boundary only.
package rtsched
