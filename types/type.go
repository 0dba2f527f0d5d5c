// Package types implements the type-inference core (spec.md §4.4): a
// two-level Type model (a primitive [Kind] plus an optional structural
// [ExtendedKind] refinement), built bottom-up over a node tree with
// per-call memoization.
package types

import (
	"fmt"

	"github.com/flowlang/inspect/debugutil"
)

// Kind is the closed set of primitive type kinds.
type Kind int

const (
	Unknown Kind = iota
	Any
	AnyNonNull
	Binary
	Date
	DateTime
	DateTimeZone
	Duration
	Function
	List
	Logical
	None
	Null
	Number
	Record
	Table
	Text
	Time
	TypeValue // the "type" primitive itself, e.g. `type number`
)

var kindNames = map[Kind]string{
	Unknown:       "Unknown",
	Any:           "Any",
	AnyNonNull:    "AnyNonNull",
	Binary:        "Binary",
	Date:          "Date",
	DateTime:      "DateTime",
	DateTimeZone:  "DateTimeZone",
	Duration:      "Duration",
	Function:      "Function",
	List:          "List",
	Logical:       "Logical",
	None:          "None",
	Null:          "Null",
	Number:        "Number",
	Record:        "Record",
	Table:         "Table",
	Text:          "Text",
	Time:          "Time",
	TypeValue:     "Type",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "Kind(?)"
}

// ExtendedKind distinguishes the structural refinements a primitive Kind
// can carry, per spec.md §3's "two-level Type model".
type ExtendedKind int

const (
	NoExtension ExtendedKind = iota
	AnyUnionExtension
	DefinedFunctionExtension
	DefinedListExtension
	DefinedRecordExtension
	DefinedTableExtension
	DefinedTypeExtension
	ListTypeExtension
	PrimaryExpressionTableExtension
)

// ParameterType is one FunctionType parameter's declared shape.
type ParameterType struct {
	Name       string
	IsOptional bool
	IsNullable bool
	Kind       Kind
}

// FunctionType is the DefinedFunction payload.
type FunctionType struct {
	Parameters []ParameterType
	ReturnType Type
}

// ListInfo is the DefinedList payload.
type ListInfo struct {
	Elements []Type
}

// RecordInfo is the shared DefinedRecord/DefinedTable payload — which one
// applies is carried by Type.Extended, not by a separate struct, since
// both share exactly the field-map-plus-openness shape (spec.md §4.4's
// record/table merge treats them identically).
type RecordInfo struct {
	Fields map[string]Type
	IsOpen bool
}

// Type is the inference result for one node: a primitive Kind, whether it
// admits null, and — for the kinds that need it — a structural extension.
// Only the field selected by Extended is meaningful, mirroring the same
// "kind-specific fields on one struct" convention package ast uses for
// AstNode.
type Type struct {
	Kind       Kind
	IsNullable bool
	Extended   ExtendedKind

	Union       []Type        // AnyUnionExtension
	Function    *FunctionType // DefinedFunctionExtension
	List        *ListInfo     // DefinedListExtension, ListTypeExtension (single-element Elements)
	Record      *RecordInfo   // DefinedRecordExtension, DefinedTableExtension, PrimaryExpressionTableExtension
	DefinedType *Type         // DefinedTypeExtension
}

// Primitive constructs an unrefined Type of kind k.
func Primitive(k Kind, nullable bool) Type {
	return Type{Kind: k, IsNullable: nullable}
}

var (
	UnknownType = Primitive(Unknown, false)
	NullType    = Primitive(Null, true)
	NoneType    = Primitive(None, false)
	AnyType     = Primitive(Any, true)
	LogicalType = Primitive(Logical, false)
	NumberType  = Primitive(Number, false)
	TextType    = Primitive(Text, false)
)

// String renders a short diagnostic form: the primitive kind, a "?" suffix
// when nullable, and — for an extended/structural Type — a kr/pretty dump
// of the structural payload, the way the teacher's own test failures lean
// on kr/pretty rather than a hand-rolled recursive printer.
func (t Type) String() string {
	s := t.Kind.String()
	if t.IsNullable {
		s += "?"
	}
	if t.Extended == NoExtension {
		return s
	}
	switch t.Extended {
	case AnyUnionExtension:
		return fmt.Sprintf("%s(%s)", s, debugutil.Sdump(t.Union))
	case DefinedFunctionExtension:
		return fmt.Sprintf("%s(%s)", s, debugutil.Sdump(t.Function))
	case DefinedListExtension, ListTypeExtension:
		return fmt.Sprintf("%s(%s)", s, debugutil.Sdump(t.List))
	case DefinedRecordExtension, DefinedTableExtension, PrimaryExpressionTableExtension:
		return fmt.Sprintf("%s(%s)", s, debugutil.Sdump(t.Record))
	case DefinedTypeExtension:
		return fmt.Sprintf("%s(%s)", s, debugutil.Sdump(t.DefinedType))
	default:
		return s
	}
}
