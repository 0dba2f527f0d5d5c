package inspect_test

import (
	"testing"

	"github.com/go-quicktest/qt"

	"github.com/flowlang/inspect/activenode"
	"github.com/flowlang/inspect/ast"
	"github.com/flowlang/inspect/inspect"
	"github.com/flowlang/inspect/keyword"
	"github.com/flowlang/inspect/nodeid"
	"github.com/flowlang/inspect/token"
	"github.com/flowlang/inspect/types"
)

func idx(v uint32) *uint32 { return &v }

func pos(line, unit uint32) token.Position {
	return token.Position{LineNumber: line, LineCodeUnit: unit}
}

func abs(line, unit, codeUnit uint32) token.AbsolutePosition {
	return token.AbsolutePosition{Position: pos(line, unit), CodeUnit: codeUnit}
}

// buildIfFixture constructs: if true then 1 |  (caret right after the
// then-branch, "else" not yet typed, IfExpression is the document root).
func buildIfFixture() (*nodeid.Collection, *activenode.ActiveNode) {
	c := nodeid.NewCollection()
	ifID, condID, thenID := uint32(1), uint32(2), uint32(3)

	c.AddAst(&ast.AstNode{ID: ifID, NodeKind: ast.IfExpression})
	c.AddAst(&ast.AstNode{
		ID: condID, NodeKind: ast.LiteralExpression, LiteralKind: ast.LiteralLogical, IsLeaf: true,
		MaybeAttributeIndex: idx(ast.IfExpressionConditionIndex),
		TokenRange:          ast.TokenRange{PositionStart: abs(1, 3, 3), PositionEnd: abs(1, 7, 7)},
	})
	c.Link(ifID, condID)
	c.AddAst(&ast.AstNode{
		ID: thenID, NodeKind: ast.LiteralExpression, LiteralKind: ast.LiteralNumeric, IsLeaf: true,
		MaybeAttributeIndex: idx(ast.IfExpressionThenIndex),
		TokenRange:          ast.TokenRange{PositionStart: abs(1, 13, 13), PositionEnd: abs(1, 14, 14)},
	})
	c.Link(ifID, thenID)

	thenNode, _ := c.XorNode(thenID)
	ifNode, _ := c.XorNode(ifID)
	active := &activenode.ActiveNode{
		Position: pos(1, 14),
		Ancestry: []ast.XorNode{thenNode, ifNode},
	}
	return c, active
}

func TestInspectComposesIndependentResults(t *testing.T) {
	c, active := buildIfFixture()
	settings := inspect.Settings{}

	got := inspect.Inspect(settings, c, c.LeafNodeIDs(), active, nil)

	qt.Assert(t, qt.IsNil(got.TriedKeyword.Err))
	qt.Assert(t, qt.DeepEquals(got.TriedKeyword.Keywords, []keyword.Kind{keyword.Else}))

	qt.Assert(t, qt.IsNil(got.TriedScope.Err))
	qt.Assert(t, qt.Equals(len(got.TriedScope.Scope), 0))

	qt.Assert(t, qt.IsNil(got.TriedType.Err))
	qt.Assert(t, qt.IsTrue(types.Equal(got.TriedType.Type, types.Primitive(types.Number, false))))

	qt.Assert(t, qt.IsNil(got.TriedFieldAccess))
}

func TestInspectNilActiveNodeReturnsZeroValue(t *testing.T) {
	c := nodeid.NewCollection()
	got := inspect.Inspect(inspect.Settings{}, c, nil, nil, nil)
	qt.Assert(t, qt.IsNil(got.TriedKeyword))
	qt.Assert(t, qt.IsNil(got.TriedScope))
	qt.Assert(t, qt.IsNil(got.TriedType))
	qt.Assert(t, qt.IsNil(got.TriedFieldAccess))
}

// buildFieldSelectorFixture constructs: [a = 1, b = "x"][a|] — the caret
// sits on the already-typed key "a" of a FieldSelector over a two-field
// record literal.
func buildFieldSelectorFixture() (*nodeid.Collection, *activenode.ActiveNode) {
	c := nodeid.NewCollection()
	selectorID, recordID, contentID := uint32(1), uint32(2), uint32(3)
	pairAID, nameAID, valueAID := uint32(4), uint32(5), uint32(6)
	pairBID, nameBID, valueBID := uint32(7), uint32(8), uint32(9)
	keyID := uint32(10)

	c.AddAst(&ast.AstNode{ID: selectorID, NodeKind: ast.FieldSelector})

	c.AddAst(&ast.AstNode{ID: recordID, NodeKind: ast.RecordExpression, MaybeAttributeIndex: idx(ast.InvokeExpressionCalleeIndex)})
	c.Link(selectorID, recordID)

	c.AddAst(&ast.AstNode{ID: contentID, NodeKind: ast.Unknown, MaybeAttributeIndex: idx(ast.RecordExpressionContentIndex)})
	c.Link(recordID, contentID)

	c.AddAst(&ast.AstNode{ID: pairAID, NodeKind: ast.GeneralizedIdentifierPairedExpression})
	c.Link(contentID, pairAID)
	c.AddAst(&ast.AstNode{ID: nameAID, NodeKind: ast.GeneralizedIdentifier, IsLeaf: true, IdentifierLiteral: "a", MaybeAttributeIndex: idx(ast.GeneralizedIdentifierPairedExpressionNameIndex)})
	c.Link(pairAID, nameAID)
	c.AddAst(&ast.AstNode{ID: valueAID, NodeKind: ast.LiteralExpression, LiteralKind: ast.LiteralNumeric, IsLeaf: true, MaybeAttributeIndex: idx(ast.GeneralizedIdentifierPairedExpressionValueIndex)})
	c.Link(pairAID, valueAID)

	c.AddAst(&ast.AstNode{ID: pairBID, NodeKind: ast.GeneralizedIdentifierPairedExpression})
	c.Link(contentID, pairBID)
	c.AddAst(&ast.AstNode{ID: nameBID, NodeKind: ast.GeneralizedIdentifier, IsLeaf: true, IdentifierLiteral: "b", MaybeAttributeIndex: idx(ast.GeneralizedIdentifierPairedExpressionNameIndex)})
	c.Link(pairBID, nameBID)
	c.AddAst(&ast.AstNode{ID: valueBID, NodeKind: ast.LiteralExpression, LiteralKind: ast.LiteralText, IsLeaf: true, MaybeAttributeIndex: idx(ast.GeneralizedIdentifierPairedExpressionValueIndex)})
	c.Link(pairBID, valueBID)

	c.AddAst(&ast.AstNode{ID: keyID, NodeKind: ast.GeneralizedIdentifier, IsLeaf: true, IdentifierLiteral: "a", MaybeAttributeIndex: idx(ast.FieldSelectorKeyIndex)})
	c.Link(selectorID, keyID)

	keyNode, _ := c.XorNode(keyID)
	selectorNode, _ := c.XorNode(selectorID)
	active := &activenode.ActiveNode{
		Position:                     pos(1, 3),
		Ancestry:                     []ast.XorNode{keyNode, selectorNode},
		MaybeIdentifierUnderPosition: &keyNode,
	}
	return c, active
}

func TestInspectFieldAccessFiltersByIdentifierPrefix(t *testing.T) {
	c, active := buildFieldSelectorFixture()

	got := inspect.Inspect(inspect.Settings{}, c, c.LeafNodeIDs(), active, nil)

	qt.Assert(t, qt.Not(qt.IsNil(got.TriedFieldAccess)))
	qt.Assert(t, qt.IsNil(got.TriedFieldAccess.Err))
	qt.Assert(t, qt.DeepEquals(got.TriedFieldAccess.Fields, []string{"a"}))
}

func TestInspectFieldAccessWithoutPrefixListsAllFields(t *testing.T) {
	c, active := buildFieldSelectorFixture()
	active.MaybeIdentifierUnderPosition = nil

	got := inspect.Inspect(inspect.Settings{}, c, c.LeafNodeIDs(), active, nil)

	qt.Assert(t, qt.Not(qt.IsNil(got.TriedFieldAccess)))
	qt.Assert(t, qt.DeepEquals(got.TriedFieldAccess.Fields, []string{"a", "b"}))
}
