package inspect

import (
	"sort"

	"github.com/flowlang/inspect/activenode"
	"github.com/flowlang/inspect/ast"
	"github.com/flowlang/inspect/inspecterr"
	"github.com/flowlang/inspect/nodeid"
	"github.com/flowlang/inspect/types"
)

// TriedFieldAccess is the fourth sub-inspection's result: the type of the
// selector's container expression, and the field names it offers for
// completion at the caret, already filtered by any identifier prefix
// under the caret. tryFieldAccess returns a nil *TriedFieldAccess when no
// field-access context was detected at this position — distinct from an
// attempted, failed lookup (Err set). Fields is nil when the container's
// type carries no record fields.
type TriedFieldAccess struct {
	ContainerType types.Type
	Fields        []string
	Err           error
}

// tryFieldAccess detects a caret sitting inside a FieldSelector's key
// (`record[k|]`) and, when found, evaluates the container's type to offer
// the field names it carries (spec.md §4.4's field-selection rules, and
// §8's field-selection-exhaustiveness property) as a fourth, independent
// result alongside keyword, scope, and type — matching §6's `inspect()`
// returning `{triedKeyword, triedScope, triedType, triedFieldAccess}`.
func tryFieldAccess(c *nodeid.Collection, active *activenode.ActiveNode) *TriedFieldAccess {
	if active == nil || len(active.Ancestry) == 0 {
		return nil
	}
	selector, ok := fieldSelectorAncestor(active.Ancestry)
	if !ok {
		return nil
	}

	container, ok := c.ChildXorNode(selector.ID(), ast.InvokeExpressionCalleeIndex)
	if !ok {
		return &TriedFieldAccess{Err: inspecterr.Invariant(active.Position, "FieldSelector %d has no container child", selector.ID())}
	}
	containerType, err := types.Evaluate(c, container)
	if err != nil {
		return &TriedFieldAccess{Err: err}
	}

	fields := fieldNames(containerType)
	if active.MaybeIdentifierUnderPosition != nil {
		fields = filterByPrefix(fields, identifierLiteral(*active.MaybeIdentifierUnderPosition))
	}
	return &TriedFieldAccess{ContainerType: containerType, Fields: fields}
}

// fieldSelectorAncestor walks active's ancestry looking for a FieldSelector
// whose key child is either not yet parsed (a context node — the caret
// sits in an empty or in-progress `[...]`) or is the attribute at
// FieldSelectorKeyIndex, matching the ancestor arc the leaf actually sits
// under.
func fieldSelectorAncestor(ancestry []ast.XorNode) (ast.XorNode, bool) {
	if ancestry[0].Kind() == ast.FieldSelector {
		return ancestry[0], true
	}
	for i := 1; i < len(ancestry); i++ {
		parent := ancestry[i]
		if parent.Kind() != ast.FieldSelector {
			continue
		}
		child := ancestry[i-1]
		if child.IsContext() {
			return parent, true
		}
		idx, has := child.AttributeIndex()
		if has && idx == ast.FieldSelectorKeyIndex {
			return parent, true
		}
	}
	return ast.XorNode{}, false
}

func fieldNames(t types.Type) []string {
	if t.Record == nil {
		return nil
	}
	names := make([]string, 0, len(t.Record.Fields))
	for name := range t.Record.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func filterByPrefix(names []string, prefix string) []string {
	if prefix == "" {
		return names
	}
	out := make([]string, 0, len(names))
	for _, n := range names {
		if len(n) >= len(prefix) && n[:len(prefix)] == prefix {
			out = append(out, n)
		}
	}
	return out
}

func identifierLiteral(n ast.XorNode) string {
	a, ok := n.Ast()
	if !ok {
		return ""
	}
	return a.IdentifierLiteral
}
