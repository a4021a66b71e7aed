// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package dd

import (
	"fmt"

	"github.com/pkg/errors"
)

// errMemoryOut is returned internally by the arena allocator when neither a
// garbage collection nor a resize freed a slot; it is always wrapped into a
// DDError via seterror before reaching a caller.
var errMemoryOut = fmt.Errorf("out of memory")

// ErrorCode classifies the errors reported by a Manager, matching the error
// taxonomy the engine is modeled after: resource exhaustion, time budget
// exhaustion, invalid input, and internal invariant violations. Reordering
// never surfaces as an ErrorCode: automatic reordering runs only at the entry
// of a top-level operator, never in the middle of one (see reorder.go).
type ErrorCode int

const (
	// NoError means the manager has no pending error.
	NoError ErrorCode = iota
	// MemoryOut means the allocator could not grow the node arena.
	MemoryOut
	// TooManyNodes means an operation crossed its configured maxLive budget.
	TooManyNodes
	// MaxMemExceeded means the hard memory cap was crossed.
	MaxMemExceeded
	// TimeoutExpired means the manager's time limit elapsed mid-operation.
	TimeoutExpired
	// InvalidArg means a precondition on an operator's arguments failed.
	InvalidArg
	// InternalError means an invariant we rely on was violated.
	InternalError
)

func (c ErrorCode) String() string {
	switch c {
	case NoError:
		return "no error"
	case MemoryOut:
		return "memory out"
	case TooManyNodes:
		return "too many nodes"
	case MaxMemExceeded:
		return "max memory exceeded"
	case TimeoutExpired:
		return "timeout expired"
	case InvalidArg:
		return "invalid argument"
	case InternalError:
		return "internal error"
	}
	return "unknown error"
}

// DDError is the concrete error type stored on a Manager. It carries a
// machine-checkable Code alongside a human-readable, possibly wrapped,
// message chain built with github.com/pkg/errors.
type DDError struct {
	Code  ErrorCode
	cause error
}

func (e *DDError) Error() string {
	if e.cause == nil {
		return e.Code.String()
	}
	return fmt.Sprintf("%s: %s", e.Code, e.cause.Error())
}

// Cause lets github.com/pkg/errors.Cause unwrap the chain.
func (e *DDError) Cause() error { return e.cause }

// Unwrap supports the standard errors.Is/As protocol.
func (e *DDError) Unwrap() error { return e.cause }

// Error returns the error status of the manager, or the empty string when
// there is no pending error.
func (m *Manager) Error() string {
	if m.err == nil {
		return ""
	}
	return m.err.Error()
}

// Errored reports whether the manager currently has a pending error.
func (m *Manager) Errored() bool {
	return m.err != nil
}

// ErrorCode returns the code of the manager's pending error, or NoError.
func (m *Manager) ErrorCode() ErrorCode {
	if m.err == nil {
		return NoError
	}
	return m.err.Code
}

// ClearError resets the manager's pending error.
func (m *Manager) ClearError() {
	m.err = nil
}

func (m *Manager) seterror(code ErrorCode, format string, a ...interface{}) Handle {
	wrapped := errors.Wrap(fmt.Errorf(format, a...), "dd")
	if m.err != nil {
		wrapped = errors.Wrap(wrapped, m.err.Error())
	}
	m.err = &DDError{Code: code, cause: wrapped}
	m.log.WithField("code", code).Debug(m.err.cause)
	return handleInvalid
}
