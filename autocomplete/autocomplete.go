// Package autocomplete implements spec.md §4.2's keyword-autocomplete
// pipeline: a three-stage dispatch (edge cases, ancestor walk, prefix
// filter) that turns a caret's [activenode.ActiveNode] into an ordered,
// deduplicated set of admissible [keyword.Kind] suggestions.
package autocomplete

import (
	"github.com/flowlang/inspect/activenode"
	"github.com/flowlang/inspect/ast"
	"github.com/flowlang/inspect/inspecterr"
	"github.com/flowlang/inspect/keyword"
	"github.com/flowlang/inspect/token"
)

// Source is the minimal view of a NodeIdMap.Collection the ancestor walk
// needs. Defined locally, matching the convention in packages activenode,
// scope, and types, so this package never imports package nodeid directly.
type Source interface {
	XorNode(id uint32) (ast.XorNode, bool)
	ChildIDs(id uint32) []uint32
	ChildXorNode(parentID uint32, attributeIndex uint32) (ast.XorNode, bool)
	StartPosition(n ast.XorNode) (token.AbsolutePosition, bool)
	EndPosition(n ast.XorNode) (token.AbsolutePosition, bool)
}

// Suggest runs the three-stage pipeline and returns the admissible keyword
// set for active, in keyword.All's static order. parseErr may be nil (no
// trailing parse error to consult).
func Suggest(source Source, active *activenode.ActiveNode, parseErr *token.ParseError) ([]keyword.Kind, error) {
	if active == nil {
		return nil, nil
	}
	if len(active.Ancestry) == 0 {
		return nil, inspecterr.Invariant(active.Position, "autocomplete: active node has empty ancestry")
	}

	ks, fired, err := stage1(source, active, parseErr)
	if err != nil {
		return nil, err
	}
	if !fired {
		ks, err = stage2(source, active, parseErr)
		if err != nil {
			return nil, err
		}
	}
	return filterByIdentifier(ks, active), nil
}

func filterByIdentifier(ks []keyword.Kind, active *activenode.ActiveNode) []keyword.Kind {
	deduped := keyword.Dedupe(ks)
	if active.MaybeIdentifierUnderPosition == nil {
		return deduped
	}
	return keyword.FilterByPrefix(deduped, identifierLiteral(*active.MaybeIdentifierUnderPosition))
}

func identifierLiteral(n ast.XorNode) string {
	a, ok := n.Ast()
	if !ok {
		return ""
	}
	return a.IdentifierLiteral
}
