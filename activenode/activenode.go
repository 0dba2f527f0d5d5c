// Package activenode resolves a caret [token.Position] to the ancestry of
// nodes that surround it, per spec.md §4.1. It is the shared entry point
// every sub-inspection (autocomplete, scope, type) starts from.
package activenode

import (
	"github.com/flowlang/inspect/ast"
	"github.com/flowlang/inspect/inspecterr"
	"github.com/flowlang/inspect/token"
)

// Source is the minimal view of a NodeIdMap.Collection this package needs.
// Defined locally (rather than importing package nodeid) to keep the
// dependency direction leaf-ward, matching package traverse's Source.
type Source interface {
	XorNode(id uint32) (ast.XorNode, bool)
	ParentID(id uint32) (uint32, bool)
	StartPosition(n ast.XorNode) (token.AbsolutePosition, bool)
	EndPosition(n ast.XorNode) (token.AbsolutePosition, bool)
}

// ActiveNode is the caret's resolved context: the leaf-first ancestry chain
// from the smallest enclosing node to the document root, plus the
// identifier (if any) the caret sits inside or immediately after.
type ActiveNode struct {
	Position token.Position
	// Ancestry is leaf-first: Ancestry[0] is the smallest enclosing node,
	// Ancestry[len-1] is the root.
	Ancestry []ast.XorNode
	// MaybeIdentifierUnderPosition holds Ancestry[0] when it qualifies:
	// an Identifier/GeneralizedIdentifier leaf, or a LiteralExpression
	// leaf of kind Logical or Null (completing true/false/null).
	MaybeIdentifierUnderPosition *ast.XorNode
}

// Leaf describes one candidate leaf node together with the position
// information needed to run the tie-break rule in Find.
type Leaf struct {
	Node  ast.XorNode
	Range token.Range
}

// Find constructs the ActiveNode for position p, given the leaves in
// document order. It returns (nil, nil) when leaves is empty — spec.md
// §4.1 step 1's "no active node" case is not an error.
func Find(source Source, leaves []Leaf, p token.Position) (*ActiveNode, error) {
	if len(leaves) == 0 {
		return nil, nil
	}

	leaf, err := selectLeaf(leaves, p)
	if err != nil {
		return nil, err
	}

	ancestry, err := walkAncestry(source, leaf)
	if err != nil {
		return nil, err
	}

	active := &ActiveNode{
		Position: p,
		Ancestry: ancestry,
	}
	if qualifiesAsIdentifierUnderPosition(leaf, p, source) {
		n := ancestry[0]
		active.MaybeIdentifierUnderPosition = &n
	}
	return active, nil
}

// selectLeaf picks the leaf whose range contains p, falling back to the
// last leaf when p lies past every leaf's range. Exactly-on-a-boundary
// ties prefer the left leaf, unless that leaf is a closing constant
// immediately followed by an identifier or literal — in which case the
// following leaf is the more useful completion target.
func selectLeaf(leaves []Leaf, p token.Position) (Leaf, error) {
	for i, l := range leaves {
		rel := token.Relation(p, l.Range, false)
		switch rel {
		case token.RelationBefore:
			if i == 0 {
				return l, nil
			}
			// p is strictly before this leaf but was not "on" the
			// previous one either (that case returns from the On
			// branch below) — p falls in the gap between tokens.
			// Prefer the left (previous) leaf, matching the
			// "prefer left unless closing-constant-before-identifier"
			// tie-break.
			prev := leaves[i-1]
			if isClosingConstant(prev.Node) && leafStartsIdentifierLike(l.Node) {
				return l, nil
			}
			return prev, nil
		case token.RelationOn:
			if i+1 < len(leaves) {
				next := leaves[i+1]
				if p.Compare(l.Range.End.Position) == 0 && isClosingConstant(l.Node) && leafStartsIdentifierLike(next.Node) {
					return next, nil
				}
			}
			return l, nil
		}
	}
	return leaves[len(leaves)-1], nil
}

func isClosingConstant(n ast.XorNode) bool {
	a, ok := n.Ast()
	if !ok {
		return false
	}
	return a.NodeKind == ast.Constant && a.ConstantKind == ast.ConstantSyntax
}

func leafStartsIdentifierLike(n ast.XorNode) bool {
	a, ok := n.Ast()
	if !ok {
		return true // a context node might resolve to anything; don't exclude it
	}
	switch a.NodeKind {
	case ast.Identifier, ast.GeneralizedIdentifier:
		return true
	case ast.LiteralExpression:
		return a.LiteralKind == ast.LiteralLogical || a.LiteralKind == ast.LiteralNull || a.LiteralKind == ast.LiteralNumeric || a.LiteralKind == ast.LiteralText
	default:
		return false
	}
}

// walkAncestry climbs parentIDByID from leaf to the root, returning the
// leaf-first chain (spec.md §4.1 step 3).
func walkAncestry(source Source, leaf Leaf) ([]ast.XorNode, error) {
	var out []ast.XorNode
	cur := leaf.Node
	for {
		out = append(out, cur)
		parentID, ok := source.ParentID(cur.ID())
		if !ok {
			return out, nil
		}
		parent, ok := source.XorNode(parentID)
		if !ok {
			return nil, inspecterr.Invariant(token.Position{}, "activenode: parent id %d of %d missing from collection", parentID, cur.ID())
		}
		cur = parent
	}
}

// qualifiesAsIdentifierUnderPosition implements step 4: p lies inside (or,
// per the caret-at-end rule, immediately after) an identifier-shaped leaf.
func qualifiesAsIdentifierUnderPosition(leaf Leaf, p token.Position, source Source) bool {
	a, ok := leaf.Node.Ast()
	if !ok {
		return false
	}
	switch a.NodeKind {
	case ast.Identifier, ast.GeneralizedIdentifier:
		return withinInclusiveEnd(p, leaf.Range)
	case ast.LiteralExpression:
		if a.LiteralKind == ast.LiteralLogical || a.LiteralKind == ast.LiteralNull {
			return withinInclusiveEnd(p, leaf.Range)
		}
	}
	return false
}

func withinInclusiveEnd(p token.Position, r token.Range) bool {
	return token.Relation(p, r, false) == token.RelationOn
}
