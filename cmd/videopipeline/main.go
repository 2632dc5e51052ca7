// Command videopipeline is a demo driver for rtsched, grounded on
// _examples/original_source/deadline_managed.c's two-task pipeline: two
// fixed-budget real-time tasks, each released once per period for a fixed
// number of iterations. Video decode and SDL rendering (the original demo's
// actual payload) are out of spec.md's scope; this driver uses a synthetic
// frame payload instead, existing only to exercise rtsched's scheduling and
// release cadence end to end.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/rtsched/rtsched"
	"github.com/rtsched/rtsched/kernel"
)

// frame is the synthetic payload each pipeline stage processes.
type frame struct {
	sequence int
}

func main() {
	root := &cobra.Command{
		Use:   "videopipeline",
		Short: "drive a two-stage synthetic video pipeline under SCHED_DEADLINE",
		RunE:  run,
	}
	root.Flags().Duration("period", 40*time.Millisecond, "task period")
	root.Flags().Duration("execution-time", 20*time.Millisecond, "task execution-time budget")
	root.Flags().Int("iterations", 5, "number of frames to release")

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, _ []string) error {
	period, _ := cmd.Flags().GetDuration("period")
	executionTime, _ := cmd.Flags().GetDuration("execution-time")
	iterations, _ := cmd.Flags().GetInt("iterations")

	capture := rtsched.NewFixedBudgetTask(0, kernel.CPUMask(0b01), period, executionTime,
		func(f frame) { busySpin(executionTime) })
	encode := rtsched.NewFixedBudgetTask(1, kernel.CPUMask(0b10), period, executionTime,
		func(f frame) { busySpin(executionTime) })

	ticker := time.NewTicker(period)
	defer ticker.Stop()

	for i := 0; i < iterations; i++ {
		capture.AddJob(frame{sequence: i})
		encode.AddJob(frame{sequence: i})
		<-ticker.C
	}

	capture.Release()
	encode.Release()
	capture.Join()
	encode.Join()
	return nil
}

// busySpin consumes d worth of CPU time, standing in for the original
// demo's actual frame-processing work (decode/render), which spec.md scopes
// out of this library.
func busySpin(d time.Duration) {
	start, err := kernel.ThreadCPUTime()
	if err != nil {
		time.Sleep(d)
		return
	}
	for {
		now, err := kernel.ThreadCPUTime()
		if err != nil || now-start >= d {
			return
		}
	}
}
