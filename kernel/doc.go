// Package kernel is the platform shim for rtsched: gettid, sched_setattr /
// sched_getattr via raw syscalls, CPU-affinity set construction, and the
// monotonic / thread-CPU clocks the task worker measures against.
//
// The real implementation is Linux-only, matching spec.md §6. Non-Linux
// builds get a stub that reports ErrUnsupported, so the rest of the module
// still compiles and its non-syscall logic (queueing, prediction, signals)
// remains testable on any platform.
package kernel
