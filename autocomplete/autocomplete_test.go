package autocomplete_test

import (
	"testing"

	"github.com/go-quicktest/qt"

	"github.com/flowlang/inspect/activenode"
	"github.com/flowlang/inspect/ast"
	"github.com/flowlang/inspect/autocomplete"
	"github.com/flowlang/inspect/keyword"
	"github.com/flowlang/inspect/nodeid"
	"github.com/flowlang/inspect/token"
)

func idx(v uint32) *uint32 { return &v }

func pos(line, unit uint32) token.Position {
	return token.Position{LineNumber: line, LineCodeUnit: unit}
}

func abs(line, unit, codeUnit uint32) token.AbsolutePosition {
	return token.AbsolutePosition{Position: pos(line, unit), CodeUnit: codeUnit}
}

func TestSuggestFreshDocumentFiltersByPrefix(t *testing.T) {
	c := nodeid.NewCollection()
	exprID, identID := uint32(1), uint32(2)
	c.AddAst(&ast.AstNode{
		ID: exprID, NodeKind: ast.IdentifierExpression,
		TokenRange: ast.TokenRange{PositionStart: abs(1, 0, 0), PositionEnd: abs(1, 1, 1)},
	})
	c.AddAst(&ast.AstNode{
		ID: identID, NodeKind: ast.Identifier, IsLeaf: true,
		IdentifierLiteral:  "e",
		MaybeAttributeIndex: idx(ast.IdentifierExpressionIdentifierIndex),
		TokenRange:          ast.TokenRange{PositionStart: abs(1, 0, 0), PositionEnd: abs(1, 1, 1)},
	})
	c.Link(exprID, identID)

	identNode, _ := c.XorNode(identID)
	exprNode, _ := c.XorNode(exprID)
	active := &activenode.ActiveNode{
		Position:                     pos(1, 1),
		Ancestry:                     []ast.XorNode{identNode, exprNode},
		MaybeIdentifierUnderPosition: &identNode,
	}

	got, err := autocomplete.Suggest(c, active, nil)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.DeepEquals(got, []keyword.Kind{keyword.Each, keyword.Error}))
}

// buildIfFixture constructs: if true then 1 |  (caret right after the
// then-branch, "else" not yet typed).
func buildIfFixture() (*nodeid.Collection, *activenode.ActiveNode) {
	c := nodeid.NewCollection()
	ifID, condID, thenID := uint32(1), uint32(2), uint32(3)

	c.AddAst(&ast.AstNode{ID: ifID, NodeKind: ast.IfExpression})
	c.AddAst(&ast.AstNode{
		ID: condID, NodeKind: ast.LiteralExpression, LiteralKind: ast.LiteralLogical, IsLeaf: true,
		MaybeAttributeIndex: idx(ast.IfExpressionConditionIndex),
		TokenRange:           ast.TokenRange{PositionStart: abs(1, 3, 3), PositionEnd: abs(1, 7, 7)},
	})
	c.Link(ifID, condID)
	c.AddAst(&ast.AstNode{
		ID: thenID, NodeKind: ast.LiteralExpression, LiteralKind: ast.LiteralNumeric, IsLeaf: true,
		MaybeAttributeIndex: idx(ast.IfExpressionThenIndex),
		TokenRange:           ast.TokenRange{PositionStart: abs(1, 13, 13), PositionEnd: abs(1, 14, 14)},
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

func TestSuggestIfExpressionAfterThenBranchSuggestsElse(t *testing.T) {
	c, active := buildIfFixture()
	got, err := autocomplete.Suggest(c, active, nil)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.DeepEquals(got, []keyword.Kind{keyword.Else}))
}

func TestSuggestNilActiveNodeReturnsNil(t *testing.T) {
	c := nodeid.NewCollection()
	got, err := autocomplete.Suggest(c, nil, nil)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.IsNil(got))
}

func TestSuggestErrorHandlingTrailingTokenPrefersOtherwise(t *testing.T) {
	c := nodeid.NewCollection()
	ehID, bodyID := uint32(1), uint32(2)
	c.AddAst(&ast.AstNode{ID: ehID, NodeKind: ast.ErrorHandlingExpression})
	c.AddAst(&ast.AstNode{
		ID: bodyID, NodeKind: ast.LiteralExpression, LiteralKind: ast.LiteralNumeric, IsLeaf: true,
		MaybeAttributeIndex: idx(ast.ErrorHandlingExpressionBodyIndex),
		TokenRange:           ast.TokenRange{PositionStart: abs(1, 4, 4), PositionEnd: abs(1, 5, 5)},
	})
	c.Link(ehID, bodyID)

	bodyNode, _ := c.XorNode(bodyID)
	ehNode, _ := c.XorNode(ehID)
	active := &activenode.ActiveNode{
		Position: pos(1, 7),
		Ancestry: []ast.XorNode{bodyNode, ehNode},
	}
	parseErr := &token.ParseError{Trailing: &token.Token{Kind: token.Identifier, Data: "oth"}}

	got, err := autocomplete.Suggest(c, active, parseErr)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.DeepEquals(got, []keyword.Kind{keyword.Otherwise}))
}
