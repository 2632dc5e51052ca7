package main

import (
	"sync"

	"github.com/rtsched/rtsched"
)

// registry is the C ABI's handle table: an append-only slice of tasks,
// indexed by the handle returned to the caller, directly grounded on
// original_source/ctask.cc's `std::vector<Task<void*>*> tasks` plus
// `int handle = tasks.size(); tasks.push_back(task);`. Handles are never
// reused even after a task has been joined, per spec.md §9's redesign
// note: a stale handle held by a caller must reliably fail lookups rather
// than silently addressing a different, later task.
type registry struct {
	mu    sync.Mutex
	tasks []*rtsched.Task[unsafePointerJob]
}

var globalRegistry = &registry{}

// unsafePointerJob is the payload type every C ABI task is built with: an
// opaque pointer the C caller owns, passed through untouched.
type unsafePointerJob = pointerJob

func (r *registry) register(t *rtsched.Task[unsafePointerJob]) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	handle := len(r.tasks)
	r.tasks = append(r.tasks, t)
	return handle
}

// lookup returns the task for handle, or nil if handle is out of range.
// Handles are never reused, so an out-of-range handle is always a caller
// bug rather than a race with a task being retired.
func (r *registry) lookup(handle int) *rtsched.Task[unsafePointerJob] {
	r.mu.Lock()
	defer r.mu.Unlock()
	if handle < 0 || handle >= len(r.tasks) {
		return nil
	}
	return r.tasks[handle]
}
