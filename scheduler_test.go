package rtsched

import (
	"sync"
	"time"

	"github.com/rtsched/rtsched/kernel"
)

// fakeScheduler is the kernelScheduler test double SPEC_FULL.md's
// testability note calls for: it lets S1-S6-style scenario tests exercise
// the full worker state machine deterministically, without root
// privileges or a SCHED_DEADLINE-capable kernel.
type fakeScheduler struct {
	mu sync.Mutex

	tid int

	affinityCalls []kernel.CPUMask
	affinityErr   error

	attr    kernel.SchedAttr
	setErr  error
	getErr  error

	cpuTime       time.Duration
	cpuTimeStep   time.Duration
	cpuTimeErr    error
	setAttrCalls  int
	getAttrCalls  int
}

func newFakeScheduler() *fakeScheduler {
	return &fakeScheduler{tid: 42, cpuTimeStep: time.Microsecond}
}

func (f *fakeScheduler) Gettid() int { return f.tid }

func (f *fakeScheduler) SetAffinity(mask kernel.CPUMask) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.affinityCalls = append(f.affinityCalls, mask)
	return f.affinityErr
}

func (f *fakeScheduler) SetAttr(_ int, attr *kernel.SchedAttr) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.setAttrCalls++
	if f.setErr != nil {
		return f.setErr
	}
	f.attr = *attr
	return nil
}

func (f *fakeScheduler) GetAttr(_ int, attr *kernel.SchedAttr) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.getAttrCalls++
	if f.getErr != nil {
		return f.getErr
	}
	*attr = f.attr
	return nil
}

// withScheduler injects a kernelScheduler, overriding the production
// default. Test-only: exported TaskOptions never expose this, since
// swapping the platform shim is not a decision real drivers should make.
func withScheduler[T any](s kernelScheduler) TaskOption[T] {
	return func(t *Task[T]) {
		t.scheduler = s
	}
}

// ThreadCPUTime returns a monotonically increasing fake CPU-time reading,
// advancing by cpuTimeStep on every call so that each job "measures" a
// distinct, non-zero runtime.
func (f *fakeScheduler) ThreadCPUTime() (time.Duration, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.cpuTimeErr != nil {
		return 0, f.cpuTimeErr
	}
	f.cpuTime += f.cpuTimeStep
	return f.cpuTime, nil
}
