package rtsched

import "github.com/zoobzio/capitan"

// Signal constants for the task worker's fixed tracepoint catalog.
// Names and field shapes are part of the library's contract: a tracing
// sink subscribes to these signals instead of the library exposing a
// logging API of its own. The default behavior, with no subscriber
// installed, costs nothing on the critical path.
const (
	SignalInitTask            capitan.Signal = "init_task"
	SignalMigratedTask        capitan.Signal = "migrated_task"
	SignalStartedRealTimeTask capitan.Signal = "started_real_time_task"
	SignalAcquireSem          capitan.Signal = "acquire_sem"
	SignalAcquiredSem         capitan.Signal = "acquired_sem"
	SignalBeginJob            capitan.Signal = "begin_job"
	SignalEndJob              capitan.Signal = "end_job"
	SignalPrediction          capitan.Signal = "prediction"
	SignalFinishedTask        capitan.Signal = "finished_task"
)

// Field keys using capitan's primitive typed keys, avoiding custom struct
// serialization on the tracing path.
var (
	FieldTaskID    = capitan.NewIntKey("id")
	FieldPID       = capitan.NewIntKey("pid")
	FieldCPU       = capitan.NewIntKey("cpu")
	FieldJobID     = capitan.NewIntKey("job_id")
	FieldRuntimeNs = capitan.NewIntKey("runtime_ns")
	FieldPredictNs = capitan.NewIntKey("predicted_ns")
)
