//go:build linux

package kernel

import "golang.org/x/sys/unix"

// CPUMask is a bitmap where bit i means "CPU i is included". Matches
// spec.md §6: the library reads the low 8 bits and builds an affinity set
// of the positions whose bit is set.
type CPUMask uint8

// CPUs returns the sorted list of CPU indices set in m.
func (m CPUMask) CPUs() []int {
	var cpus []int
	for i := 0; i < 8; i++ {
		if m&(1<<uint(i)) != 0 {
			cpus = append(cpus, i)
		}
	}
	return cpus
}

// Empty reports whether no bits are set, meaning "do not set affinity".
func (m CPUMask) Empty() bool {
	return m == 0
}

// SetAffinity pins the calling OS thread to the CPUs named by mask via
// sched_setaffinity(2). An empty mask is a no-op, per spec.md §3's "empty
// means do not set affinity".
func SetAffinity(mask CPUMask) error {
	if mask.Empty() {
		return nil
	}
	var set unix.CPUSet
	set.Zero()
	for _, cpu := range mask.CPUs() {
		set.Set(cpu)
	}
	return unix.SchedSetaffinity(0, &set)
}
