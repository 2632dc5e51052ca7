//go:build linux

package kernel

import (
	"time"

	"golang.org/x/sys/unix"
)

// ThreadCPUTime returns the calling OS thread's consumed CPU time, read from
// CLOCK_THREAD_CPUTIME_ID. spec.md §4.2 requires measuring with this clock
// rather than wall time: the SCHED_DEADLINE budget is CPU-time, not
// wall-time, so thread-CPU-time keeps the feedback loop consistent with what
// the kernel accounts, regardless of preemption.
func ThreadCPUTime() (time.Duration, error) {
	var ts unix.Timespec
	if err := unix.ClockGettime(unix.CLOCK_THREAD_CPUTIME_ID, &ts); err != nil {
		return 0, err
	}
	return time.Duration(ts.Nano()), nil
}

// MonotonicNow returns the current CLOCK_MONOTONIC reading, used outside
// jobs (e.g. logging wall-clock timestamps) where wall-time is appropriate.
func MonotonicNow() (time.Duration, error) {
	var ts unix.Timespec
	if err := unix.ClockGettime(unix.CLOCK_MONOTONIC, &ts); err != nil {
		return 0, err
	}
	return time.Duration(ts.Nano()), nil
}
