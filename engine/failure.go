package engine

import "fmt"

// Failure records one fault reported by a test. The Test reference is
// non-owning (the node outlives the record for the duration of
// reporting); Fault is an owned error value.
type Failure struct {
	// Test is the node that reported the fault.
	Test Test

	// Fault is the captured fault: the error returned by the test body,
	// or a PanicError for an unexpected fault.
	Fault error

	// IsError is true for unexpected faults (panics), false for
	// assertion violations reported through the body's error return.
	IsError bool
}

// Kind returns "Error" for unexpected faults and "Assertion" otherwise.
func (f Failure) Kind() string {
	if f.IsError {
		return "Error"
	}
	return "Assertion"
}

// Message returns the fault's message, or "" if no fault was captured.
func (f Failure) Message() string {
	if f.Fault == nil {
		return ""
	}
	return f.Fault.Error()
}

// PanicError wraps a value recovered from a panicking test body, with a
// copy of the stack at the point of recovery.
type PanicError struct {
	Value any
	Stack []byte
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("panic: %v", e.Value)
}

// SourceLocator is implemented by fault values that know where they were
// raised. The compiler-diagnostic outputter uses it to emit file:line
// locations; faults without one are reported by test name only.
type SourceLocator interface {
	SourceLine() (file string, line int)
}
