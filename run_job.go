package rtsched

import (
	"context"
	"runtime"
	"strconv"
	"time"

	"github.com/zoobzio/capitan"

	"github.com/rtsched/rtsched/kernel"
)

// yieldThread voluntarily hands the CPU back to the scheduler, step 8 of
// spec.md §4.2.
func yieldThread() { runtime.Gosched() }

// runJob executes exactly one job, implementing the eight-step protocol of
// spec.md §4.2 under a tracez span. It never returns an error: a syscall
// failure here is routed to the task's FatalHandler, matching the
// all-or-nothing fatal treatment spec.md §7 gives admission failures.
func (t *Task[T]) runJob(ctx context.Context, jobID int, payload T) {
	ctx, span := t.obs.tracer.StartSpan(ctx, SpanRunJob)
	span.SetTag(TagJobID, strconv.Itoa(jobID))
	defer span.Finish()

	var predictedNs int64
	if t.predictionEnabled {
		var ok bool
		predictedNs, ok = t.reprogramForJob(ctx, jobID, payload)
		if !ok {
			return
		}
	}

	capitan.Info(ctx, SignalBeginJob, FieldTaskID.Field(t.id), FieldJobID.Field(jobID))
	t.invokeExecute(payload)

	now, err := t.scheduler.ThreadCPUTime()
	if err != nil {
		t.fatal(&SyscallError{Task: t.id, Call: "clock_gettime", Errno: err})
		return
	}
	measured := now - t.lastCheckpoint
	t.lastCheckpoint = now

	completed := t.recordRuntime(measured)

	if t.predictionEnabled {
		t.predictor.Train(0, jobID, float64(measured)+0.5)
		correction := int64(measured) - predictedNs
		t.obs.metrics.Gauge(MetricPredictionCorrection).Set(float64(correction))
	}

	span.SetTag(TagRuntimeNs, strconv.FormatInt(int64(measured), 10))
	capitan.Info(ctx, SignalEndJob, FieldTaskID.Field(t.id), FieldJobID.Field(jobID), FieldRuntimeNs.Field(int(measured)))
	t.obs.metrics.Counter(MetricJobsTotal).Inc()

	ev := Event{TaskID: t.id, JobID: jobID, RuntimeNs: int64(measured), BudgetNs: int64(t.currentBudget()), At: t.clock.Now()}
	if ev.BudgetNs > 0 && ev.RuntimeNs > ev.BudgetNs {
		t.obs.emitOverrun(ctx, ev)
	}
	t.obs.emitFinished(ctx, ev)

	if t.predictionEnabled && completed == 1 {
		// step 8: yield once so the kernel observes the freshly trained
		// budget before the next period's deadline arrives.
		yieldThread()
	}
}

// reprogramForJob implements step 2 of spec.md §4.2: on the first job ever
// measured, simply baseline last_checkpoint; on every later job, predict
// the cost, clamp it to [0, period], and reprogram SCHED_DEADLINE's
// runtime via sched_getattr/sched_setattr before execution begins. Returns
// the (unclamped) predicted runtime and false if a syscall failed and the
// job must be abandoned.
func (t *Task[T]) reprogramForJob(ctx context.Context, jobID int, payload T) (int64, bool) {
	metrics := metricsFor(t.generateMetrics, payload)
	predictedNs := t.predictor.Predict(0, jobID, metrics)

	if t.firstMeasurement() {
		now, err := t.scheduler.ThreadCPUTime()
		if err != nil {
			t.fatal(&SyscallError{Task: t.id, Call: "clock_gettime", Errno: err})
			return 0, false
		}
		t.lastCheckpoint = now
		return predictedNs, true
	}

	capitan.Info(ctx, SignalPrediction, FieldTaskID.Field(t.id), FieldJobID.Field(jobID), FieldPredictNs.Field(int(predictedNs)))

	var attr kernel.SchedAttr
	if err := t.scheduler.GetAttr(0, &attr); err != nil {
		t.fatal(&SyscallError{Task: t.id, Call: "sched_getattr", Errno: err})
		return predictedNs, false
	}
	attr.Runtime = uint64(clampPrediction(predictedNs, int64(t.period)))
	if err := t.scheduler.SetAttr(0, &attr); err != nil {
		t.fatal(&SyscallError{Task: t.id, Call: "sched_setattr", Errno: err})
		return predictedNs, false
	}
	return predictedNs, true
}

func (t *Task[T]) firstMeasurement() bool {
	t.statsMu.Lock()
	defer t.statsMu.Unlock()
	return t.jobsCompleted == 0
}

// recordRuntime increments the completed-job count, stores measured as the
// last runtime, and returns the new total job count. Earlier runtimes are
// not retained.
func (t *Task[T]) recordRuntime(measured time.Duration) int {
	t.statsMu.Lock()
	defer t.statsMu.Unlock()
	t.jobsCompleted++
	t.lastRuntimeNs = int64(measured)
	return t.jobsCompleted
}

func (t *Task[T]) currentBudget() time.Duration {
	if t.executionTime != nil {
		return *t.executionTime
	}
	return 0
}

// invokeExecute calls the user callback, converting a panic into a fatal
// error instead of unwinding across the worker loop: spec.md §3 requires
// Execute not to throw, but a misbehaving callback must not take the
// worker goroutine down silently.
func (t *Task[T]) invokeExecute(payload T) {
	defer func() {
		if r := recover(); r != nil {
			t.fatal(&MisuseError{Task: t.id, Operation: "Execute", Reason: "panicked"})
		}
	}()
	t.execute(payload)
}
