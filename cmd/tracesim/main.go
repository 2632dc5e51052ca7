// Command tracesim is a trace-driven demo driver for rtsched, grounded on
// _examples/original_source/sched_sim.cc: it reads a line-oriented trace
// describing tasks and jobs, builds one rtsched.Task per task line, and
// submits each job at its recorded submission time. Trace parsing and job
// scheduling are in scope; sched_sim.cc's own deadline-miss accounting and
// statistics output are not reproduced — spec.md's Non-goals exclude this
// driver's internals from the library itself, so this command exists only
// to exercise the library end to end.
package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/spf13/cobra"

	"github.com/rtsched/rtsched"
	"github.com/rtsched/rtsched/kernel"
)

// SimJob mirrors sched_sim.cc's Job: a trace-supplied unit of work with a
// declared CPU-time cost, submitted to its task at a recorded offset.
type SimJob struct {
	JobID          int
	ExecutionTime  time.Duration
	Deadline       time.Duration
	SubmissionTime time.Duration
	TaskID         int
}

// taskSpec is a parsed "S" trace line: one task definition.
type taskSpec struct {
	id            int
	executionTime time.Duration
	period        time.Duration
}

func main() {
	root := &cobra.Command{
		Use:   "tracesim",
		Short: "replay a trace file against rtsched tasks",
		RunE:  run,
	}
	root.Flags().String("trace", "", "path to a trace file (required)")
	root.Flags().Bool("prediction", false, "build tasks with prediction enabled")
	_ = root.MarkFlagRequired("trace")

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, _ []string) error {
	path, _ := cmd.Flags().GetString("trace")
	predictionEnabled, _ := cmd.Flags().GetBool("prediction")

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open trace: %w", err)
	}
	defer f.Close()

	specs, jobs, err := parseTrace(f)
	if err != nil {
		return err
	}
	assignDeadlines(specs, jobs)

	tasks := make(map[int]*rtsched.Task[SimJob])
	for _, spec := range specs {
		tasks[spec.id] = buildTask(spec, predictionEnabled)
	}

	start := time.Now()
	var wg sync.WaitGroup
	for _, job := range jobs {
		task, ok := tasks[job.TaskID]
		if !ok {
			fmt.Fprintf(os.Stderr, "unresolvable task id: %d\n", job.TaskID)
			continue
		}
		wg.Add(1)
		go func(job SimJob, task *rtsched.Task[SimJob]) {
			defer wg.Done()
			if delay := job.SubmissionTime - time.Since(start); delay > 0 {
				time.Sleep(delay)
			}
			task.AddJob(job)
		}(job, task)
	}
	wg.Wait()

	for _, task := range tasks {
		task.Release()
		task.Join()
	}
	return nil
}

// buildTask constructs a fixed-budget or predictive task for spec,
// executing jobs by busy-waiting for their declared CPU-time cost, exactly
// sched_sim.cc's wait_busily.
func buildTask(spec taskSpec, predictionEnabled bool) *rtsched.Task[SimJob] {
	execute := func(job SimJob) { waitBusily(job.ExecutionTime) }

	if predictionEnabled {
		return rtsched.NewPredictiveTask(spec.id, 0, spec.period, execute, &rtsched.EWMAPredictor{},
			rtsched.WithExecutionTime[SimJob](spec.executionTime))
	}
	return rtsched.NewFixedBudgetTask(spec.id, 0, spec.period, spec.executionTime, execute)
}

// waitBusily spins on the thread's CPU-time clock until d has elapsed, the
// same accounting sched_sim.cc's wait_busily uses so a simulated job
// actually consumes the CPU time it claims.
func waitBusily(d time.Duration) {
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

// parseTrace parses sched_sim.cc's line format: "c <n_cores>" (ignored,
// this driver does not model core count), "S <id> <execution_time_us>
// <period_us>" (task definitions), and "j <id> <execution_time_us>
// <submission_time_us> <task_id>" (job submissions).
func parseTrace(f *os.File) ([]taskSpec, []SimJob, error) {
	var specs []taskSpec
	var jobs []SimJob

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		switch fields[0] {
		case "S":
			spec, err := parseTaskLine(fields[1:])
			if err != nil {
				return nil, nil, err
			}
			specs = append(specs, spec)
		case "j":
			job, err := parseJobLine(fields[1:])
			if err != nil {
				return nil, nil, err
			}
			jobs = append(jobs, job)
		case "c":
			// core count: not modeled by this driver.
		default:
			return nil, nil, fmt.Errorf("unrecognized trace line type %q", fields[0])
		}
	}
	return specs, jobs, scanner.Err()
}

// assignDeadlines computes each job's Deadline in place, mirroring
// sched_sim.cc's calculate_deadlines(): within a task, the i-th job (1-based,
// in trace order) gets deadline i*period. Unlike the original, the
// trace-supplied JobID is left untouched rather than renumbered — SimJob's
// shape has no reason to discard an ID the trace already assigned.
func assignDeadlines(specs []taskSpec, jobs []SimJob) {
	periods := make(map[int]time.Duration, len(specs))
	for _, spec := range specs {
		periods[spec.id] = spec.period
	}
	counts := make(map[int]int, len(specs))
	for i := range jobs {
		counts[jobs[i].TaskID]++
		jobs[i].Deadline = periods[jobs[i].TaskID] * time.Duration(counts[jobs[i].TaskID])
	}
}

func parseTaskLine(fields []string) (taskSpec, error) {
	if len(fields) != 3 {
		return taskSpec{}, fmt.Errorf("task line: want 3 fields, got %d", len(fields))
	}
	id, err1 := strconv.Atoi(fields[0])
	execUs, err2 := strconv.Atoi(fields[1])
	periodUs, err3 := strconv.Atoi(fields[2])
	if err := firstErr(err1, err2, err3); err != nil {
		return taskSpec{}, fmt.Errorf("task line: %w", err)
	}
	return taskSpec{
		id:            id,
		executionTime: time.Duration(execUs) * time.Microsecond,
		period:        time.Duration(periodUs) * time.Microsecond,
	}, nil
}

func parseJobLine(fields []string) (SimJob, error) {
	if len(fields) != 4 {
		return SimJob{}, fmt.Errorf("job line: want 4 fields, got %d", len(fields))
	}
	id, err1 := strconv.Atoi(fields[0])
	execUs, err2 := strconv.Atoi(fields[1])
	submissionUs, err3 := strconv.Atoi(fields[2])
	taskID, err4 := strconv.Atoi(fields[3])
	if err := firstErr(err1, err2, err3, err4); err != nil {
		return SimJob{}, fmt.Errorf("job line: %w", err)
	}
	return SimJob{
		JobID:          id,
		ExecutionTime:  time.Duration(execUs) * time.Microsecond,
		SubmissionTime: time.Duration(submissionUs) * time.Microsecond,
		TaskID:         taskID,
	}, nil
}

func firstErr(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
