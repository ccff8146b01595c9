// File: errors.go
// Title: Error Signal for Safe String Operations
// Description: Defines the closed set of failure kinds returned by every
//              fallible String operation, the structured Error type carrying
//              the failing operation and its details, and the total
//              code-to-message lookup.
// Author: msto63
// Version: v0.1.0
// Created: 2025-08-02
// Modified: 2025-08-02
//
// Change History:
// - 2025-08-02 v0.1.0: Initial implementation

package safestr

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Code classifies the outcome of a String operation.
// Success is the zero value, so an unset Code reads as "it worked".
type Code int

const (
	// Success means the operation completed without error.
	Success Code = iota

	// NullReference means a required argument or the String itself was absent,
	// or a borrowed String was asked to reallocate.
	NullReference

	// OutOfMemory means the allocator refused a (re)allocation.
	OutOfMemory

	// InvalidIndex means a position argument was outside the valid range.
	InvalidIndex

	// BufferTooSmall means a caller-supplied buffer could not hold the result.
	BufferTooSmall

	// InvalidArgument means malformed input, such as a length larger than the
	// supplied buffer or a broken format template.
	InvalidArgument
)

// String returns the constant name of the code
func (c Code) String() string {
	switch c {
	case Success:
		return "Success"
	case NullReference:
		return "NullReference"
	case OutOfMemory:
		return "OutOfMemory"
	case InvalidIndex:
		return "InvalidIndex"
	case BufferTooSmall:
		return "BufferTooSmall"
	case InvalidArgument:
		return "InvalidArgument"
	default:
		return fmt.Sprintf("Code(%d)", int(c))
	}
}

// Message returns the human-readable message for the code.
// Unknown codes map to "Unknown error".
func (c Code) Message() string {
	switch c {
	case Success:
		return "Success"
	case NullReference:
		return "Null pointer error"
	case OutOfMemory:
		return "Out of memory"
	case InvalidIndex:
		return "Invalid index"
	case BufferTooSmall:
		return "Buffer too small"
	case InvalidArgument:
		return "Invalid argument"
	default:
		return "Unknown error"
	}
}

// ParseCode converts a constant name (as returned by Code.String) back into a Code.
func ParseCode(name string) (Code, error) {
	for c := Success; c <= InvalidArgument; c++ {
		if strings.EqualFold(c.String(), name) {
			return c, nil
		}
	}
	return Success, fmt.Errorf("unknown result code %q", name)
}

// Error is the failure value returned by String operations
type Error struct {
	code    Code
	op      string
	details map[string]interface{}
}

// Sentinel errors, one per failure code. They match any *Error of the same
// code through errors.Is.
var (
	ErrNullReference   = &Error{code: NullReference}
	ErrOutOfMemory     = &Error{code: OutOfMemory}
	ErrInvalidIndex    = &Error{code: InvalidIndex}
	ErrBufferTooSmall  = &Error{code: BufferTooSmall}
	ErrInvalidArgument = &Error{code: InvalidArgument}
)

// newError creates an error for the given code and operation
func newError(code Code, op string) *Error {
	return &Error{
		code:    code,
		op:      op,
		details: make(map[string]interface{}),
	}
}

// WithDetail adds a key-value detail to the error
func (e *Error) WithDetail(key string, value interface{}) *Error {
	if e.details == nil {
		e.details = make(map[string]interface{})
	}
	e.details[key] = value
	return e
}

// Code returns the failure code
func (e *Error) Code() Code {
	return e.code
}

// Operation returns the name of the operation that failed
func (e *Error) Operation() string {
	return e.op
}

// Details returns a copy of the error details
func (e *Error) Details() map[string]interface{} {
	result := make(map[string]interface{}, len(e.details))
	for k, v := range e.details {
		result[k] = v
	}
	return result
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder
	if e.op != "" {
		b.WriteString("safestr.")
		b.WriteString(e.op)
		b.WriteString(": ")
	}
	b.WriteString(strings.ToLower(e.code.Message()))

	if len(e.details) > 0 {
		keys := make([]string, 0, len(e.details))
		for k := range e.details {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		b.WriteString(" (")
		for i, k := range keys {
			if i > 0 {
				b.WriteString(", ")
			}
			fmt.Fprintf(&b, "%s=%v", k, e.details[k])
		}
		b.WriteString(")")
	}
	return b.String()
}

// Is reports whether target is an *Error with the same code
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.code == t.code
}

// CodeOf extracts the Code from an error returned by this package.
// A nil error is Success; foreign errors read as InvalidArgument.
func CodeOf(err error) Code {
	if err == nil {
		return Success
	}
	var e *Error
	if errors.As(err, &e) {
		return e.code
	}
	return InvalidArgument
}

// ErrorMessage returns the human-readable message for an error's code
func ErrorMessage(err error) string {
	return CodeOf(err).Message()
}
