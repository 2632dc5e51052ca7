package rtsched

import (
	"testing"
	"time"
)

// S1: a best-effort task executes jobs strictly FIFO and Join returns once
// the driver releases it after the queue drains.
func TestBestEffortTaskFIFOOrder(t *testing.T) {
	var got []int
	task := NewBestEffortTask(1, 0, func(job int) {
		got = append(got, job)
	}, withScheduler[int](newFakeScheduler()))

	for _, job := range []int{10, 20, 30} {
		task.AddJob(job)
	}
	task.Release()
	task.Join()

	want := []int{10, 20, 30}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

// S2: every completed job is reflected in Stats().
func TestTaskStatsTracksJobCount(t *testing.T) {
	task := NewBestEffortTask(2, 0, func(int) {}, withScheduler[int](newFakeScheduler()))

	for i := 0; i < 5; i++ {
		task.AddJob(i)
	}
	task.Release()
	task.Join()

	stats := task.Stats()
	if stats.JobsCompleted != 5 {
		t.Fatalf("JobsCompleted = %d, want 5", stats.JobsCompleted)
	}
	if stats.Running {
		t.Fatalf("Running = true after Join returned")
	}
}

// S3: a fixed-budget task programs SCHED_DEADLINE once at startup with the
// declared execution time and never reprograms it.
func TestFixedBudgetTaskProgramsOnce(t *testing.T) {
	fake := newFakeScheduler()
	task := NewFixedBudgetTask(3, 0, 10*time.Millisecond, 2*time.Millisecond, func(int) {},
		withScheduler[int](fake))

	task.AddJob(1)
	task.AddJob(2)
	task.Release()
	task.Join()

	if fake.setAttrCalls != 1 {
		t.Fatalf("setAttrCalls = %d, want 1 (fixed budget never reprograms)", fake.setAttrCalls)
	}
	if fake.attr.Runtime != uint64(2*time.Millisecond) {
		t.Fatalf("Runtime = %d, want %d", fake.attr.Runtime, uint64(2*time.Millisecond))
	}
}

// S4: a predictive task does not reprogram before its first job (no prior
// measurement exists to predict from), but does reprogram before the
// second.
func TestPredictiveTaskSkipsReprogramOnFirstJob(t *testing.T) {
	fake := newFakeScheduler()
	predictor := &EWMAPredictor{}
	task := NewPredictiveTask(4, 0, 10*time.Millisecond, func(int) {}, predictor,
		withScheduler[int](fake))

	task.AddJob(1) // first job: baseline only
	task.AddJob(2) // second job: predictor has one measurement to train on
	task.Release()
	task.Join()

	// One SetAttr call at admission plus one reprogram before job 2.
	if fake.setAttrCalls != 2 {
		t.Fatalf("setAttrCalls = %d, want 2", fake.setAttrCalls)
	}
	if fake.getAttrCalls != 1 {
		t.Fatalf("getAttrCalls = %d, want 1", fake.getAttrCalls)
	}
}

// S5: a predictor's excursion above the period is clamped, never handed to
// sched_setattr verbatim.
func TestPredictionClampedToPeriod(t *testing.T) {
	fake := newFakeScheduler()
	period := 5 * time.Millisecond
	predictor := constantPredictor{value: int64(period) * 10}
	task := NewPredictiveTask(5, 0, period, func(int) {}, predictor, withScheduler[int](fake))

	task.AddJob(1)
	task.AddJob(2)
	task.Release()
	task.Join()

	if fake.attr.Runtime > uint64(period) {
		t.Fatalf("Runtime = %d, exceeds period %d", fake.attr.Runtime, uint64(period))
	}
}

// S6: a nil predictor is misuse, reported to the FatalHandler instead of
// starting the worker.
func TestPredictiveTaskNilPredictorIsFatal(t *testing.T) {
	var reported error
	handler := func(err error) { reported = err }

	NewPredictiveTask[int](6, 0, time.Millisecond, func(int) {}, nil,
		withScheduler[int](newFakeScheduler()), WithFatalHandler[int](handler))

	if reported == nil {
		t.Fatal("expected a fatal error for a nil predictor")
	}
	if _, ok := reported.(*MisuseError); !ok {
		t.Fatalf("reported error = %T, want *MisuseError", reported)
	}
}

// AddJob after Join has been requested is misuse, reported rather than
// silently enqueued or panicking.
func TestAddJobAfterJoinRequestedIsMisuse(t *testing.T) {
	var reported error
	handler := func(err error) { reported = err }

	task := NewBestEffortTask(7, 0, func(int) {}, withScheduler[int](newFakeScheduler()),
		WithFatalHandler[int](handler))

	task.joinRequested.Store(true)
	task.AddJob(99)

	if reported == nil {
		t.Fatal("expected a misuse error")
	}
}

type constantPredictor struct{ value int64 }

func (p constantPredictor) Predict(int, int, []float64) int64 { return p.value }
func (constantPredictor) Train(int, int, float64)              {}
