//go:build linux

package kernel

import (
	"unsafe"

	"golang.org/x/sys/unix"
)

// SchedDeadline is the numeric value of the SCHED_DEADLINE policy, per
// spec.md §6. The kernel has no symbolic constant for it in golang.org/x/sys
// at the time of writing, so it is defined here the same way the reference
// C sources do.
const SchedDeadline = 6

// SchedAttr mirrors struct sched_attr from the Linux kernel ABI exactly,
// field order and widths included, matching
// _examples/original_source/rt.h. sched_setattr/sched_getattr marshal this
// struct directly; reordering or resizing any field corrupts the syscall.
type SchedAttr struct {
	Size     uint32
	Policy   uint32
	Flags    uint64
	Nice     int32
	Priority uint32

	// SCHED_DEADLINE fields, all nanoseconds.
	Runtime  uint64
	Deadline uint64
	Period   uint64
}

// SizeOfSchedAttr is the byte size of the kernel struct, used as the Size
// field and as the size argument to sched_getattr.
const SizeOfSchedAttr = uint32(unsafe.Sizeof(SchedAttr{}))

// SetAttr applies attr to the thread identified by tid (0 means "calling
// thread") via the sched_setattr(2) syscall. It returns the raw errno on
// failure; callers map that to a fatal SyscallError per spec.md §7.
func SetAttr(tid int, attr *SchedAttr) error {
	attr.Size = SizeOfSchedAttr
	_, _, errno := unix.Syscall(unix.SYS_SCHED_SETATTR, uintptr(tid), uintptr(unsafe.Pointer(attr)), 0)
	if errno != 0 {
		return errno
	}
	return nil
}

// GetAttr reads the current scheduling attributes of tid into attr via the
// sched_getattr(2) syscall.
func GetAttr(tid int, attr *SchedAttr) error {
	_, _, errno := unix.Syscall6(unix.SYS_SCHED_GETATTR, uintptr(tid), uintptr(unsafe.Pointer(attr)), uintptr(SizeOfSchedAttr), 0, 0, 0)
	if errno != 0 {
		return errno
	}
	return nil
}

// Gettid returns the kernel thread ID of the calling OS thread. Callers must
// have already pinned their goroutine to its OS thread with
// runtime.LockOSThread, since a tid is only meaningful for the thread that
// observed it.
func Gettid() int {
	return unix.Gettid()
}
