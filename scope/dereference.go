package scope

import (
	"strings"

	"github.com/flowlang/inspect/ast"
	"github.com/flowlang/inspect/internal/u32set"
)

// Dereference follows start through a chain of identifier references that
// resolve within m, stopping at the first node that isn't itself an
// IdentifierExpression reference, or at a cycle (spec.md §4.3's
// "a node may be visited at most once per dereference chain"). It always
// returns the last resolvable node, never an error — a cycle or dead end
// is a normal terminal condition, not a failure.
//
// An identifier spelled with the inclusive prefix ("@foo") only follows a
// binding whose Item.IsRecursive is true; a bare identifier only follows a
// non-recursive one, per the recursion-class rule in spec.md §4.3.
func Dereference(source Source, m Map, start ast.XorNode) ast.XorNode {
	visited := u32set.New(8)
	current := start

	for {
		if !visited.Add(current.ID()) {
			return current
		}
		name, wantsRecursive, ok := identifierRef(source, current)
		if !ok {
			return current
		}
		item, ok := m[name]
		if !ok || item.IsRecursive != wantsRecursive || item.Value.IsZero() {
			return current
		}
		current = item.Value
	}
}

// identifierRef reports the binding name n refers to, if n is an
// IdentifierExpression, and whether that reference uses the inclusive
// ("@name") recursive form.
func identifierRef(source Source, n ast.XorNode) (name string, recursive bool, ok bool) {
	a, isAst := n.Ast()
	if !isAst || a.NodeKind != ast.IdentifierExpression {
		return "", false, false
	}
	identNode, found := source.ChildXorNode(n.ID(), ast.IdentifierExpressionIdentifierIndex)
	if !found {
		return "", false, false
	}
	ia, isAst := identNode.Ast()
	if !isAst || ia.NodeKind != ast.Identifier {
		return "", false, false
	}
	lit := ia.IdentifierLiteral
	if rest, isRecursive := strings.CutPrefix(lit, "@"); isRecursive {
		return rest, true, true
	}
	return lit, false, true
}
