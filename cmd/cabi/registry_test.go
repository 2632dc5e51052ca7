package main

import (
	"testing"

	"github.com/rtsched/rtsched"
)

func TestRegistryHandlesAreAppendOnlyAndNeverReused(t *testing.T) {
	r := &registry{}

	t1 := rtsched.NewBestEffortTask(1, 0, func(pointerJob) {})
	defer func() { t1.Release(); t1.Join() }()
	h1 := r.register(t1)

	t2 := rtsched.NewBestEffortTask(2, 0, func(pointerJob) {})
	defer func() { t2.Release(); t2.Join() }()
	h2 := r.register(t2)

	if h1 != 0 || h2 != 1 {
		t.Fatalf("handles = %d, %d, want 0, 1", h1, h2)
	}
	if r.lookup(h1) != t1 || r.lookup(h2) != t2 {
		t.Fatal("lookup did not return the registered task")
	}
}

func TestRegistryLookupOutOfRangeReturnsNil(t *testing.T) {
	r := &registry{}
	if r.lookup(0) != nil {
		t.Fatal("expected nil for an empty registry")
	}
	if r.lookup(-1) != nil {
		t.Fatal("expected nil for a negative handle")
	}
}
