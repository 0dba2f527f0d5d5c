// Package inspecterr defines the single error taxonomy shared by every
// sub-inspection (spec.md §7): InvariantViolation, MalformedInput,
// UnknownOperator, and UnknownFormat. Each constructed [Error] is stamped
// with a correlation id so a host running many inspections concurrently
// can tie a user bug report back to one specific failure.
package inspecterr

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/flowlang/inspect/token"
)

// Code is the closed error taxonomy.
type Code int

const (
	// InvariantViolation is a condition the design guarantees cannot
	// happen (an attribute index outside a known range, a node id absent
	// from every NodeIdMap table). Fatal to the inspection that raised
	// it; sibling inspections still run.
	InvariantViolation Code = iota
	// MalformedInput is an ancestry shorter than expected, or a missing
	// child where a kind guarantees one.
	MalformedInput
	// UnknownOperator is a lookup miss in the binary/unary operator
	// table. Surfaced as an InvariantViolation-shaped error per spec.md
	// §7 ("Surfaced as InvariantViolation").
	UnknownOperator
	// UnknownFormat is a lookup miss in any other closed, expected table.
	// Also surfaced as an InvariantViolation-shaped error.
	UnknownFormat
)

func (c Code) String() string {
	switch c {
	case InvariantViolation:
		return "InvariantViolation"
	case MalformedInput:
		return "MalformedInput"
	case UnknownOperator:
		return "UnknownOperator"
	case UnknownFormat:
		return "UnknownFormat"
	default:
		return "Code(?)"
	}
}

// Error is the carrier type for every inspection failure.
type Error struct {
	Code        Code
	Pos         token.Position
	Message     string
	Context     map[string]any
	Correlation uuid.UUID
	cause       error
}

// New constructs an Error. pos is the zero Position when the failure has
// no single associated location (e.g. a missing table entry unrelated to
// any one node).
func New(code Code, pos token.Position, message string, context map[string]any) *Error {
	return &Error{
		Code:        code,
		Pos:         pos,
		Message:     message,
		Context:     context,
		Correlation: uuid.New(),
	}
}

// Wrap constructs an Error that chains cause via Unwrap.
func Wrap(code Code, pos token.Position, message string, cause error) *Error {
	e := New(code, pos, message, nil)
	e.cause = cause
	return e
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("[%s] %s (line %d, unit %d)", e.Code, e.Message, e.Pos.LineNumber, e.Pos.LineCodeUnit)
}

// Unwrap supports errors.Is/errors.As over the wrapped cause.
func (e *Error) Unwrap() error { return e.cause }

// Invariant is a convenience constructor for the common
// "table/map lookup missed an entry the design guarantees exists" shape.
func Invariant(pos token.Position, format string, args ...any) *Error {
	return New(InvariantViolation, pos, fmt.Sprintf(format, args...), nil)
}

// Malformed is a convenience constructor for ancestry/shape violations.
func Malformed(pos token.Position, format string, args ...any) *Error {
	return New(MalformedInput, pos, fmt.Sprintf(format, args...), nil)
}
