package rtsched

import (
	"errors"
	"testing"
)

func TestMisuseErrorMessage(t *testing.T) {
	err := &MisuseError{Task: 3, Operation: "AddJob", Reason: "join requested"}
	if got := err.Error(); got == "" {
		t.Fatal("Error() returned empty string")
	}
}

func TestSyscallErrorUnwraps(t *testing.T) {
	inner := errors.New("EINVAL")
	err := &SyscallError{Task: 1, Call: "sched_setattr", Errno: inner}
	if !errors.Is(err, inner) {
		t.Fatal("errors.Is did not see through SyscallError.Unwrap")
	}
}
