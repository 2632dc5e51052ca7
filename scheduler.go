package rtsched

import (
	"time"

	"github.com/rtsched/rtsched/kernel"
)

// kernelScheduler is the seam between the task worker and the platform
// shim, mirroring the teacher's dependency-injected clockz.Clock: production
// tasks use realScheduler (a thin wrapper over package kernel's raw
// syscalls), tests use a fake that runs deterministically without root
// privileges or an actual SCHED_DEADLINE-capable kernel.
type kernelScheduler interface {
	Gettid() int
	SetAffinity(mask kernel.CPUMask) error
	SetAttr(tid int, attr *kernel.SchedAttr) error
	GetAttr(tid int, attr *kernel.SchedAttr) error
	ThreadCPUTime() (time.Duration, error)
}

// realScheduler is the production kernelScheduler: every method is a direct
// call into package kernel's raw syscalls.
type realScheduler struct{}

func (realScheduler) Gettid() int { return kernel.Gettid() }
func (realScheduler) SetAffinity(mask kernel.CPUMask) error {
	return kernel.SetAffinity(mask)
}
func (realScheduler) SetAttr(tid int, attr *kernel.SchedAttr) error {
	return kernel.SetAttr(tid, attr)
}
func (realScheduler) GetAttr(tid int, attr *kernel.SchedAttr) error {
	return kernel.GetAttr(tid, attr)
}
func (realScheduler) ThreadCPUTime() (time.Duration, error) { return kernel.ThreadCPUTime() }
