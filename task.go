package rtsched

import (
	"context"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/zoobzio/capitan"
	"github.com/zoobzio/clockz"

	"github.com/rtsched/rtsched/kernel"
)

// TaskStats is a point-in-time snapshot of a task's observed history,
// exposed for drivers and tests that want to assert on progress without
// reaching into the tracing stream.
type TaskStats struct {
	JobsCompleted int
	LastRuntimeNs int64
	HasPredictor  bool
	Running       bool
}

// Task is a long-lived, period-bound unit of real-time work: one pinned
// worker goroutine draining one FIFO job queue, per spec.md §3/§4.1. T is
// the opaque payload type the task's Execute callback consumes.
//
// A Task is constructed via one of the three flavour constructors
// (NewBestEffortTask, NewFixedBudgetTask, NewPredictiveTask) and is not
// meant to be built directly: the zero value is not usable.
type Task[T any] struct {
	id     int
	period time.Duration

	// executionTime is the SCHED_DEADLINE runtime budget a fixed-budget
	// task always carries, and a predictive task may carry until its first
	// measurement lands. Nil means "derive a default from period".
	executionTime *time.Duration

	cpuMask           kernel.CPUMask
	realtimeEnabled   bool
	predictionEnabled bool

	execute         func(T)
	generateMetrics GenerateMetrics[T]
	predictor       Predictor

	queue *jobQueue[T]
	wg    sync.WaitGroup

	joinRequested atomic.Bool
	running       atomic.Bool

	// statsMu guards the fields the worker goroutine writes and Stats()
	// reads from another goroutine. last_checkpoint belongs exclusively to
	// the worker and is never read outside it, so it is not guarded here.
	statsMu        sync.Mutex
	jobsCompleted  int
	lastRuntimeNs  int64
	lastCheckpoint time.Duration

	scheduler kernelScheduler
	obs       *observability
	fatal     FatalHandler
	clock     clockz.Clock
}

// newTask builds the shared skeleton every flavour constructor configures
// further. Unexported: callers always go through a flavour constructor so
// the three combinations of (realtimeEnabled, predictionEnabled,
// executionTime) spec.md §3 names stay the only reachable states.
func newTask[T any](id int, cpuMask kernel.CPUMask, execute func(T), opts []TaskOption[T]) *Task[T] {
	t := &Task[T]{
		id:        id,
		cpuMask:   cpuMask,
		execute:   execute,
		queue:     newJobQueue[T](),
		scheduler: realScheduler{},
		obs:       newObservability(),
		fatal:     defaultFatalHandler,
		clock:     clockz.RealClock,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// NewBestEffortTask builds a task with no SCHED_DEADLINE involvement at
// all: the worker is pinned to cpuMask (if non-empty) but otherwise runs
// under the default scheduling policy, executing jobs strictly FIFO as
// they arrive. This is the "non-real-time" flavour of spec.md §3's data
// model and the C ABI's create_non_rt_task.
func NewBestEffortTask[T any](id int, cpuMask kernel.CPUMask, execute func(T), opts ...TaskOption[T]) *Task[T] {
	t := newTask(id, cpuMask, execute, opts)
	t.start()
	return t
}

// NewFixedBudgetTask builds a task admitted to SCHED_DEADLINE with a fixed
// runtime budget (executionTime) and period, and never consults a
// Predictor: the budget programmed at admission is the budget for the
// task's entire lifetime. This is the C ABI's create_task.
func NewFixedBudgetTask[T any](id int, cpuMask kernel.CPUMask, period, executionTime time.Duration, execute func(T), opts ...TaskOption[T]) *Task[T] {
	t := newTask(id, cpuMask, execute, opts)
	t.period = period
	t.executionTime = &executionTime
	t.realtimeEnabled = true
	t.start()
	return t
}

// NewPredictiveTask builds a task admitted to SCHED_DEADLINE whose runtime
// budget is re-programmed before every job (after the first) using
// predictor's estimate of that job's cost, per spec.md §4.2/§4.5. This is
// the C ABI's create_task_with_prediction. A nil predictor is misuse: the
// task is fatal at construction rather than silently behaving like a
// fixed-budget task.
func NewPredictiveTask[T any](id int, cpuMask kernel.CPUMask, period time.Duration, execute func(T), predictor Predictor, opts ...TaskOption[T]) *Task[T] {
	t := newTask(id, cpuMask, execute, opts)
	t.period = period
	t.realtimeEnabled = true
	t.predictionEnabled = true
	t.predictor = predictor
	if predictor == nil {
		t.fatal(&MisuseError{Task: id, Operation: "NewPredictiveTask", Reason: "predictor must not be nil"})
		return t
	}
	t.start()
	return t
}

// start launches the worker goroutine and registers it with t.wg so Join
// can wait on it. A negative period is misuse: it is reported to the
// FatalHandler and the worker is not started.
func (t *Task[T]) start() {
	if t.period < 0 {
		t.fatal(&MisuseError{Task: t.id, Operation: "start", Reason: "period must not be negative"})
		return
	}
	t.running.Store(true)
	t.wg.Add(1)
	go t.runWorker()
}

// ID returns the task's identifier, assigned by its creator.
func (t *Task[T]) ID() int { return t.id }

// Period returns the task's period, zero for a best-effort task.
func (t *Task[T]) Period() time.Duration { return t.period }

// Running reports whether the worker is believed to still be alive. This
// is advisory, per spec.md §3: it is only authoritative the instant after
// Join returns.
func (t *Task[T]) Running() bool { return t.running.Load() }

// Stats returns a snapshot of the task's observed job history.
func (t *Task[T]) Stats() TaskStats {
	t.statsMu.Lock()
	defer t.statsMu.Unlock()
	return TaskStats{
		JobsCompleted: t.jobsCompleted,
		LastRuntimeNs: t.lastRuntimeNs,
		HasPredictor:  t.predictor != nil,
		Running:       t.running.Load(),
	}
}

// AddJob enqueues payload for FIFO execution. Never blocks. Calling AddJob
// after Join has been requested is misuse, reported to the task's
// FatalHandler rather than returned as an error: spec.md §3 treats it the
// same as any other caller-contract violation.
func (t *Task[T]) AddJob(payload T) {
	if t.joinRequested.Load() {
		t.fatal(&MisuseError{Task: t.id, Operation: "AddJob", Reason: "called after join was requested"})
		return
	}
	t.queue.push(payload)
	t.obs.metrics.Gauge(MetricQueueDepth).Set(float64(t.queue.depth()))
}

// Release posts a bare wake token with nothing behind it: the worker's
// next wake observes an empty queue and treats it as the shutdown signal,
// per spec.md §4.4. A driver calls this (at least once) to terminate an
// otherwise idle worker before calling Join.
func (t *Task[T]) Release() {
	t.queue.sem.release()
}

// Join requests the worker's shutdown and blocks until it has exited.
// Join is idempotent but not re-entrant: concurrent callers must
// synchronize among themselves. Join does not itself post a wake token;
// the caller is responsible for an eventual Release (or a queue that
// drains naturally) so the worker actually wakes and observes the
// request.
func (t *Task[T]) Join() {
	t.joinRequested.Store(true)
	t.wg.Wait()
}

// OnFinished registers a hook invoked after every completed job.
func (t *Task[T]) OnFinished(handler func(context.Context, Event) error) error {
	_, err := t.obs.hooks.Hook(EventFinished, handler)
	return err
}

// OnOverrun registers a hook invoked when a job's measured runtime exceeds
// the task's declared execution-time budget (the fixed-budget constructor's
// argument, or the value given with WithExecutionTime). A task with no
// declared budget never reports an overrun, and a predictive task's
// reprogrammed per-job runtime is not used for the comparison.
func (t *Task[T]) OnOverrun(handler func(context.Context, Event) error) error {
	_, err := t.obs.hooks.Hook(EventOverrun, handler)
	return err
}

// runWorker is the worker goroutine body: PIN, POLICY, then LOOP/RUN_JOB
// until EXIT, the state machine spec.md §4.1 names. It owns the OS thread
// for its entire lifetime via runtime.LockOSThread(), since affinity,
// SCHED_DEADLINE admission, and CLOCK_THREAD_CPUTIME_ID readings are all
// scoped to one kernel thread, not to a goroutine that the Go scheduler is
// otherwise free to migrate.
func (t *Task[T]) runWorker() {
	defer t.wg.Done()
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	ctx := context.Background()
	tid := t.scheduler.Gettid()
	capitan.Info(ctx, SignalInitTask, FieldTaskID.Field(t.id), FieldPID.Field(tid))

	if !t.cpuMask.Empty() {
		if err := t.scheduler.SetAffinity(t.cpuMask); err != nil {
			t.fatal(&SyscallError{Task: t.id, Call: "sched_setaffinity", Errno: err})
			t.finish(ctx)
			return
		}
		capitan.Info(ctx, SignalMigratedTask, FieldTaskID.Field(t.id), FieldCPU.Field(t.cpuMask.CPUs()[0]))
	}

	if t.realtimeEnabled {
		attr := &kernel.SchedAttr{
			Size:     kernel.SizeOfSchedAttr,
			Policy:   kernel.SchedDeadline,
			Runtime:  uint64(t.initialRuntimeBudget()),
			Deadline: uint64(t.period),
			Period:   uint64(t.period),
		}
		if err := t.scheduler.SetAttr(0, attr); err != nil {
			t.fatal(&SyscallError{Task: t.id, Call: "sched_setattr", Errno: err})
			t.finish(ctx)
			return
		}
		capitan.Info(ctx, SignalStartedRealTimeTask, FieldTaskID.Field(t.id))
		runtime.Gosched()
	}

	// Baseline last_checkpoint before the first job ever runs, for every
	// flavour: spec.md §3 requires last_checkpoint captured before each
	// job's execute, and without this the first job's measured runtime
	// would be CLOCK_THREAD_CPUTIME_ID's reading since this OS thread's
	// clock baseline (possibly reused from earlier work), not since the
	// job started. The predictive flavour re-baselines again on its own
	// first job in reprogramForJob; doing it here too keeps best-effort
	// and fixed-budget tasks correct as well.
	now, err := t.scheduler.ThreadCPUTime()
	if err != nil {
		t.fatal(&SyscallError{Task: t.id, Call: "clock_gettime", Errno: err})
		t.finish(ctx)
		return
	}
	t.lastCheckpoint = now

	t.loop(ctx)
}

// initialRuntimeBudget derives the SCHED_DEADLINE runtime admitted at
// startup: an explicit executionTime if one was given and exceeds 1µs,
// otherwise 90% of the period, per spec.md §4.1/§4.3's threshold for
// falling back to a conservative default budget before any measurement
// exists.
func (t *Task[T]) initialRuntimeBudget() time.Duration {
	if t.executionTime != nil && *t.executionTime > time.Microsecond {
		return *t.executionTime
	}
	return time.Duration(float64(t.period) * 0.9)
}

// loop is the LOOP/RUN_JOB portion of the state machine: acquire-wait,
// pop, and either run a job or, on an empty pop, exit.
func (t *Task[T]) loop(ctx context.Context) {
	jobID := 0
	for {
		capitan.Info(ctx, SignalAcquireSem, FieldTaskID.Field(t.id))
		payload, ok := t.queue.waitAndPop()
		capitan.Info(ctx, SignalAcquiredSem, FieldTaskID.Field(t.id))
		t.obs.metrics.Gauge(MetricQueueDepth).Set(float64(t.queue.depth()))
		if !ok {
			t.finish(ctx)
			return
		}
		t.runJob(ctx, jobID, payload)
		jobID++
	}
}

func (t *Task[T]) finish(ctx context.Context) {
	t.running.Store(false)
	capitan.Info(ctx, SignalFinishedTask, FieldTaskID.Field(t.id))
	t.obs.close()
}
