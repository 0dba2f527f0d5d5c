package types_test

import (
	"testing"

	"github.com/go-quicktest/qt"

	"github.com/flowlang/inspect/ast"
	"github.com/flowlang/inspect/nodeid"
	"github.com/flowlang/inspect/types"
)

func idx(v uint32) *uint32 { return &v }

// buildArithmeticFixture constructs the node tree for: 1 + 2
func buildArithmeticFixture() (*nodeid.Collection, ast.XorNode) {
	c := nodeid.NewCollection()

	exprID, leftID, opID, rightID := uint32(1), uint32(2), uint32(3), uint32(4)

	c.AddAst(&ast.AstNode{ID: exprID, NodeKind: ast.ArithmeticExpression})
	c.AddAst(&ast.AstNode{ID: leftID, NodeKind: ast.LiteralExpression, LiteralKind: ast.LiteralNumeric, IsLeaf: true, MaybeAttributeIndex: idx(ast.BinaryExpressionLeftIndex)})
	c.Link(exprID, leftID)
	c.AddAst(&ast.AstNode{ID: opID, NodeKind: ast.Constant, ConstantKind: ast.ConstantSyntax, OperatorLiteral: "+", IsLeaf: true, MaybeAttributeIndex: idx(ast.BinaryExpressionOperatorIndex)})
	c.Link(exprID, opID)
	c.AddAst(&ast.AstNode{ID: rightID, NodeKind: ast.LiteralExpression, LiteralKind: ast.LiteralNumeric, IsLeaf: true, MaybeAttributeIndex: idx(ast.BinaryExpressionRightIndex)})
	c.Link(exprID, rightID)

	exprNode, _ := c.XorNode(exprID)
	return c, exprNode
}

func TestEvaluateArithmeticAddition(t *testing.T) {
	c, expr := buildArithmeticFixture()
	got, err := types.Evaluate(c, expr)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.IsTrue(types.Equal(got, types.Primitive(types.Number, false))))
}

func TestEvaluateLiteralNull(t *testing.T) {
	c := nodeid.NewCollection()
	c.AddAst(&ast.AstNode{ID: 1, NodeKind: ast.LiteralExpression, LiteralKind: ast.LiteralNull, IsLeaf: true})
	n, _ := c.XorNode(1)
	got, err := types.Evaluate(c, n)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.IsTrue(types.Equal(got, types.Primitive(types.Null, true))))
}

func TestEvaluateIfBranchUnion(t *testing.T) {
	c := nodeid.NewCollection()
	ifID, condID, thenID, elseID := uint32(1), uint32(2), uint32(3), uint32(4)

	c.AddAst(&ast.AstNode{ID: ifID, NodeKind: ast.IfExpression})
	c.AddAst(&ast.AstNode{ID: condID, NodeKind: ast.LiteralExpression, LiteralKind: ast.LiteralLogical, IsLeaf: true, MaybeAttributeIndex: idx(ast.IfExpressionConditionIndex)})
	c.Link(ifID, condID)
	c.AddAst(&ast.AstNode{ID: thenID, NodeKind: ast.LiteralExpression, LiteralKind: ast.LiteralNumeric, IsLeaf: true, MaybeAttributeIndex: idx(ast.IfExpressionThenIndex)})
	c.Link(ifID, thenID)
	c.AddAst(&ast.AstNode{ID: elseID, NodeKind: ast.LiteralExpression, LiteralKind: ast.LiteralText, IsLeaf: true, MaybeAttributeIndex: idx(ast.IfExpressionElseIndex)})
	c.Link(ifID, elseID)

	n, _ := c.XorNode(ifID)
	got, err := types.Evaluate(c, n)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(got.Extended, types.AnyUnionExtension))
	qt.Assert(t, qt.Equals(len(got.Union), 2))
}

func TestEvaluateIfNonLogicalConditionIsNone(t *testing.T) {
	c := nodeid.NewCollection()
	ifID, condID := uint32(1), uint32(2)
	c.AddAst(&ast.AstNode{ID: ifID, NodeKind: ast.IfExpression})
	c.AddAst(&ast.AstNode{ID: condID, NodeKind: ast.LiteralExpression, LiteralKind: ast.LiteralNumeric, IsLeaf: true, MaybeAttributeIndex: idx(ast.IfExpressionConditionIndex)})
	c.Link(ifID, condID)

	n, _ := c.XorNode(ifID)
	got, err := types.Evaluate(c, n)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.IsTrue(types.Equal(got, types.Primitive(types.None, false))))
}
