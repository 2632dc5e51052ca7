//go:build !linux

package kernel

import (
	"errors"
	"time"
)

// ErrUnsupported is returned by every kernel operation on non-Linux
// platforms. spec.md §6 scopes the kernel interface to Linux only.
var ErrUnsupported = errors.New("kernel: SCHED_DEADLINE is Linux-only")

// SchedDeadline mirrors the Linux policy constant so callers can reference
// it without a build tag of their own.
const SchedDeadline = 6

// SizeOfSchedAttr mirrors the Linux struct size for API symmetry.
const SizeOfSchedAttr = uint32(48)

// SchedAttr mirrors struct sched_attr's field shape for API symmetry; its
// values are meaningless on this platform.
type SchedAttr struct {
	Size     uint32
	Policy   uint32
	Flags    uint64
	Nice     int32
	Priority uint32
	Runtime  uint64
	Deadline uint64
	Period   uint64
}

// CPUMask mirrors the Linux type for API symmetry.
type CPUMask uint8

// CPUs always returns nil on this platform.
func (CPUMask) CPUs() []int { return nil }

// Empty always reports true on this platform.
func (m CPUMask) Empty() bool { return m == 0 }

// SetAttr always fails with ErrUnsupported.
func SetAttr(int, *SchedAttr) error { return ErrUnsupported }

// GetAttr always fails with ErrUnsupported.
func GetAttr(int, *SchedAttr) error { return ErrUnsupported }

// Gettid always returns -1 on this platform.
func Gettid() int { return -1 }

// SetAffinity always fails with ErrUnsupported, unless mask is empty (a
// no-op on every platform per spec.md §3).
func SetAffinity(mask CPUMask) error {
	if mask.Empty() {
		return nil
	}
	return ErrUnsupported
}

// ThreadCPUTime always fails with ErrUnsupported.
func ThreadCPUTime() (time.Duration, error) { return 0, ErrUnsupported }

// MonotonicNow always returns zero and a nil error on this platform; it
// provides no clock reading.
func MonotonicNow() (time.Duration, error) { return time.Duration(0), nil }
