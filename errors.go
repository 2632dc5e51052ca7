package rtsched

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
)

// MisuseError reports a caller error detected at the call site: enqueuing to
// a task that has already been asked to join, a negative period, or a
// prediction-enabled flavour with no Predictor supplied. Per spec, misuse is
// fatal at the site; MisuseError is the value handed to the task's
// FatalHandler so tests can observe it instead of exiting.
type MisuseError struct {
	Task      int
	Operation string
	Reason    string
}

func (e *MisuseError) Error() string {
	return fmt.Sprintf("task %d: misuse in %s: %s", e.Task, e.Operation, e.Reason)
}

// SyscallError wraps a failed sched_setaffinity/sched_setattr/sched_getattr
// call. Per spec, a real-time task that cannot be admitted to the requested
// policy cannot meet its contract, so syscall failures are fatal.
type SyscallError struct {
	Task  int
	Call  string
	Errno error
}

func (e *SyscallError) Error() string {
	return fmt.Sprintf("task %d: %s failed: %v", e.Task, e.Call, e.Errno)
}

func (e *SyscallError) Unwrap() error { return e.Errno }

// FatalHandler is invoked for syscall failures and misuse, the two error
// classes spec.md §7 treats as fatal. The default handler logs a structured
// diagnostic and terminates the process; tests inject a handler that records
// the error and returns instead, the same dependency-injection shape the
// teacher uses for clockz.Clock.
type FatalHandler func(err error)

// NewLoggingFatalHandler returns a FatalHandler that logs err at Error level
// through logger and then exits the process with status 1. logger is
// typically a component-scoped github.com/rs/zerolog.Logger so the caller
// controls output format and destination.
func NewLoggingFatalHandler(logger zerolog.Logger) FatalHandler {
	return func(err error) {
		logger.Error().Err(err).Msg("fatal task error")
		os.Exit(1)
	}
}

// defaultFatalHandler logs to a process-wide zerolog logger writing to
// stderr. Tasks created without an explicit FatalHandler use this.
var defaultFatalHandler FatalHandler = NewLoggingFatalHandler(
	zerolog.New(os.Stderr).With().Timestamp().Str("component", "rtsched").Logger(),
)
