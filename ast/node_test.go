package ast_test

import (
	"strings"
	"testing"

	"github.com/go-quicktest/qt"

	"github.com/flowlang/inspect/ast"
	"github.com/flowlang/inspect/token"
)

func TestXorNodeAstAccessors(t *testing.T) {
	idx := uint32(2)
	n := ast.FromAst(&ast.AstNode{
		ID: 7, NodeKind: ast.Identifier, MaybeAttributeIndex: &idx,
		IdentifierLiteral: "foo",
		TokenRange: ast.TokenRange{
			PositionStart: token.AbsolutePosition{Position: token.Position{LineNumber: 1, LineCodeUnit: 0}},
			PositionEnd:   token.AbsolutePosition{Position: token.Position{LineNumber: 1, LineCodeUnit: 3}},
		},
	})

	qt.Assert(t, qt.Equals(n.ID(), uint32(7)))
	qt.Assert(t, qt.Equals(n.Kind(), ast.Identifier))

	gotIdx, has := n.AttributeIndex()
	qt.Assert(t, qt.IsTrue(has))
	qt.Assert(t, qt.Equals(gotIdx, idx))

	tr, ok := n.TokenRange()
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.Equals(tr.PositionEnd.Position.LineCodeUnit, uint32(3)))

	qt.Assert(t, qt.IsTrue(strings.Contains(n.DumpPayload(), "foo")))
}

func TestXorNodeContextHasNoTokenRange(t *testing.T) {
	n := ast.FromContext(&ast.ContextNode{ID: 9, NodeKind: ast.FieldSelector})

	qt.Assert(t, qt.IsTrue(n.IsContext()))
	_, ok := n.TokenRange()
	qt.Assert(t, qt.IsFalse(ok))
}

func TestXorNodeZeroValue(t *testing.T) {
	var n ast.XorNode
	qt.Assert(t, qt.IsTrue(n.IsZero()))
	qt.Assert(t, qt.Equals(n.String(), "XorNode(<zero>)"))
}
