// Package main is the C ABI façade for rtsched, built with
// `go build -buildmode=c-shared` (or c-archive). It is out of scope for
// the native Go API: Go callers use package rtsched directly and never
// link this package. It exists only so a C driver — like the reference
// video pipeline this library is distilled from — can create and drive
// tasks across the cgo boundary, per spec.md §6.
package main

/*
#include <stdlib.h>

struct metrics {
    int size;
    double *data;
};

typedef void (*execute_fn)(void *);
typedef struct metrics (*generate_fn)(void *);

static inline void rtsched_call_execute(execute_fn fn, void *arg) {
    fn(arg);
}

static inline struct metrics rtsched_call_generate(generate_fn fn, void *arg) {
    return fn(arg);
}
*/
import "C"

import (
	"time"
	"unsafe"

	"github.com/rtsched/rtsched"
	"github.com/rtsched/rtsched/kernel"
)

// pointerJob is the payload every cabi task carries: an opaque pointer
// owned by the C caller, forwarded to the caller's execute callback
// untouched.
type pointerJob = unsafe.Pointer

// cpuMaskFromBits builds a kernel.CPUMask from the low 8 bits of cpus, per
// spec.md §6 ("reads the low 8 bits ... builds an affinity set").
func cpuMaskFromBits(cpus C.int) kernel.CPUMask {
	return kernel.CPUMask(uint8(cpus))
}

// cExecuteAdapter wraps a C function pointer so it satisfies the
// func(pointerJob) signature package rtsched's Execute callback requires.
func cExecuteAdapter(fn C.execute_fn) func(pointerJob) {
	return func(arg pointerJob) {
		C.rtsched_call_execute(fn, arg)
	}
}

// cGenerateMetricsAdapter wraps a C metrics-generator function pointer,
// copying its callee-allocated double* into a Go slice and freeing the C
// buffer, per the ownership contract original_source/ctask.cc establishes
// in generate_metrics: the C callback allocates `data`, the library frees
// it after copying.
func cGenerateMetricsAdapter(fn C.generate_fn) rtsched.GenerateMetrics[pointerJob] {
	if fn == nil {
		return nil
	}
	return func(arg pointerJob) []float64 {
		result := C.rtsched_call_generate(fn, arg)
		if result.data == nil {
			return nil
		}
		defer C.free(unsafe.Pointer(result.data))
		if result.size <= 0 {
			return nil
		}
		out := make([]float64, int(result.size))
		src := unsafe.Slice((*C.double)(unsafe.Pointer(result.data)), int(result.size))
		for i, v := range src {
			out[i] = float64(v)
		}
		return out
	}
}

//export create_non_rt_task
func create_non_rt_task(cpus C.int, id C.int, execute C.execute_fn) C.int {
	task := rtsched.NewBestEffortTask(int(id), cpuMaskFromBits(cpus), cExecuteAdapter(execute))
	return C.int(globalRegistry.register(task))
}

//export create_task
func create_task(cpus C.int, id C.int, period C.int, execute C.execute_fn, executionTime C.int) C.int {
	task := rtsched.NewFixedBudgetTask(
		int(id), cpuMaskFromBits(cpus),
		time.Duration(period), time.Duration(executionTime),
		cExecuteAdapter(execute),
	)
	return C.int(globalRegistry.register(task))
}

//export create_task_with_prediction
func create_task_with_prediction(cpus C.int, id C.int, period C.int, execute C.execute_fn, generate C.generate_fn) C.int {
	var opts []rtsched.TaskOption[pointerJob]
	if gen := cGenerateMetricsAdapter(generate); gen != nil {
		opts = append(opts, rtsched.WithGenerateMetrics(gen))
	}
	task := rtsched.NewPredictiveTask(
		int(id), cpuMaskFromBits(cpus),
		time.Duration(period),
		cExecuteAdapter(execute),
		&rtsched.EWMAPredictor{},
		opts...,
	)
	return C.int(globalRegistry.register(task))
}

//export add_job_to_task
func add_job_to_task(task C.int, arg unsafe.Pointer) {
	t := globalRegistry.lookup(int(task))
	if t == nil {
		return
	}
	t.AddJob(arg)
}

//export join_task
func join_task(task C.int) {
	t := globalRegistry.lookup(int(task))
	if t == nil {
		return
	}
	t.Join()
}

//export task_id
func task_id(task C.int) C.int {
	t := globalRegistry.lookup(int(task))
	if t == nil {
		return -1
	}
	return C.int(t.ID())
}

//export release_sem
func release_sem(task C.int) {
	t := globalRegistry.lookup(int(task))
	if t == nil {
		return
	}
	t.Release()
}

//export task_period
func task_period(task C.int) C.int {
	t := globalRegistry.lookup(int(task))
	if t == nil {
		return -1
	}
	return C.int(t.Period() / time.Nanosecond)
}

func main() {}
