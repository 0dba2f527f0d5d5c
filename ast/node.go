package ast

import (
	"strconv"

	"github.com/flowlang/inspect/debugutil"
	"github.com/flowlang/inspect/token"
)

// TokenRange bounds a fully-parsed node's span in both token and position
// space.
type TokenRange struct {
	TokenIndexStart int
	TokenIndexEnd   int
	PositionStart   token.AbsolutePosition
	PositionEnd     token.AbsolutePosition
}

// AstNode is a fully parsed node. Every AstNode has a complete TokenRange;
// ContextNode is the partial counterpart produced mid-parse-error.
type AstNode struct {
	ID                  uint32
	NodeKind            Kind
	MaybeAttributeIndex *uint32
	TokenRange          TokenRange
	IsLeaf              bool

	// Payload is kind-specific. Only one of these is meaningful, selected
	// by NodeKind; it mirrors the teacher's own practice of keeping
	// kind-specific fields on one struct rather than one interface type
	// per AST node (cue/ast.Ident, cue/ast.BasicLit, etc. are distinct
	// Go types instead).
	IdentifierLiteral string
	ConstantKind      ConstantKind
	LiteralKind       LiteralKind
	PrimitiveTypeKind PrimitiveTypeKind
	// OperatorLiteral holds the spelling ("+", "and", "<>"...) of a
	// Constant node that plays the operator role in a binary or unary
	// expression.
	OperatorLiteral string
}

// PrimitiveTypeKind names the primitive type spelled by a
// PrimitiveTypeConstantKind constant (e.g. "number", "text", "any").
type PrimitiveTypeKind int

const (
	PrimitiveTypeUnset PrimitiveTypeKind = iota
	PrimitiveAny
	PrimitiveAnyNonNull
	PrimitiveBinary
	PrimitiveDate
	PrimitiveDateTime
	PrimitiveDateTimeZone
	PrimitiveDuration
	PrimitiveFunction
	PrimitiveList
	PrimitiveLogical
	PrimitiveNone
	PrimitiveNull
	PrimitiveNumber
	PrimitiveRecord
	PrimitiveTable
	PrimitiveText
	PrimitiveTime
	PrimitiveType
)

// ContextNode is a partially parsed node produced when a parse error
// truncates a construct mid-way. Unlike AstNode it has no
// TokenIndexEnd — that must be computed on demand from the right-most
// completed descendant (package nodeid does this).
type ContextNode struct {
	ID                  uint32
	NodeKind            Kind
	MaybeAttributeIndex *uint32
	TokenIndexStart     int
	MaybeTokenStart     *token.Token
}

// XorNode is the tagged union of AstNode and ContextNode that the rest of
// the inspection core dispatches on. Exactly one of Ast/Context is set.
type XorNode struct {
	ast     *AstNode
	context *ContextNode
}

// FromAst wraps a fully-parsed node.
func FromAst(n *AstNode) XorNode { return XorNode{ast: n} }

// FromContext wraps a partially-parsed node.
func FromContext(n *ContextNode) XorNode { return XorNode{context: n} }

// IsAst reports whether this node is fully parsed.
func (x XorNode) IsAst() bool { return x.ast != nil }

// IsContext reports whether this node is a parse-error context node.
func (x XorNode) IsContext() bool { return x.context != nil }

// Ast returns the underlying AstNode and true, or (nil, false) if x wraps a
// ContextNode.
func (x XorNode) Ast() (*AstNode, bool) { return x.ast, x.ast != nil }

// Context returns the underlying ContextNode and true, or (nil, false) if
// x wraps an AstNode.
func (x XorNode) Context() (*ContextNode, bool) { return x.context, x.context != nil }

// ID returns the node's identifier regardless of which variant x wraps.
func (x XorNode) ID() uint32 {
	if x.ast != nil {
		return x.ast.ID
	}
	return x.context.ID
}

// Kind returns the node's syntactic kind regardless of which variant x
// wraps.
func (x XorNode) Kind() Kind {
	if x.ast != nil {
		return x.ast.NodeKind
	}
	return x.context.NodeKind
}

// AttributeIndex returns the node's role index under its parent, and
// whether one is set at all (spec.md §3 invariant 2: absent for an
// unparsed earlier sibling, but later siblings still report their
// kind-defined index).
func (x XorNode) AttributeIndex() (uint32, bool) {
	var p *uint32
	if x.ast != nil {
		p = x.ast.MaybeAttributeIndex
	} else {
		p = x.context.MaybeAttributeIndex
	}
	if p == nil {
		return 0, false
	}
	return *p, true
}

// TokenRange returns the node's token/position span and true, for a
// fully-parsed node. A ContextNode has no complete range — its end is only
// computable on demand from its right-most descendant (package nodeid's
// EndPosition does this, since it needs the full Collection to walk
// children) — so the second return is false.
func (x XorNode) TokenRange() (TokenRange, bool) {
	if a, ok := x.Ast(); ok {
		return a.TokenRange, true
	}
	return TokenRange{}, false
}

// IsZero reports whether x wraps neither variant (the zero value).
func (x XorNode) IsZero() bool { return x.ast == nil && x.context == nil }

// String renders a short diagnostic label, never used for anything
// semantic — only for test failure messages and debug dumps.
func (x XorNode) String() string {
	if x.IsZero() {
		return "XorNode(<zero>)"
	}
	variant := "Ast"
	if x.IsContext() {
		variant = "Context"
	}
	return variant + "(" + x.Kind().String() + "#" + strconv.FormatUint(uint64(x.ID()), 10) + ")"
}

// DumpPayload renders x's kind-specific payload (AstNode or ContextNode)
// as a structural dump, for test failure messages that need more than
// String()'s one-line label.
func (x XorNode) DumpPayload() string {
	if a, ok := x.Ast(); ok {
		return debugutil.Sdump(a)
	}
	if c, ok := x.Context(); ok {
		return debugutil.Sdump(c)
	}
	return "<zero>"
}
