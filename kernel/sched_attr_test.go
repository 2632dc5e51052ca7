//go:build linux

package kernel

import "testing"

// TestSizeOfSchedAttr pins the struct layout to the kernel ABI (48 bytes,
// no padding): Size+Policy (8) + Flags (8) + Nice+Priority (8) +
// Runtime+Deadline+Period (24). A change here almost certainly means a
// field was reordered or resized and sched_setattr will now misinterpret
// the buffer.
func TestSizeOfSchedAttr(t *testing.T) {
	if SizeOfSchedAttr != 48 {
		t.Errorf("SizeOfSchedAttr = %d, want 48", SizeOfSchedAttr)
	}
}

func TestSchedDeadlinePolicyNumber(t *testing.T) {
	if SchedDeadline != 6 {
		t.Errorf("SchedDeadline = %d, want 6", SchedDeadline)
	}
}
