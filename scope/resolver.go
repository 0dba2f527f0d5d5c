package scope

import (
	"github.com/flowlang/inspect/ast"
	"github.com/flowlang/inspect/traverse"
)

// Source is the minimal view of a NodeIdMap.Collection this package needs:
// node lookup, ordered children, role-indexed child lookup, and parent
// lookup. It doubles as a traverse.Source, since both share the
// XorNode/ChildIDs shape.
type Source interface {
	XorNode(id uint32) (ast.XorNode, bool)
	ChildIDs(id uint32) []uint32
	ChildXorNode(parentID uint32, attributeIndex uint32) (ast.XorNode, bool)
	ParentID(id uint32) (uint32, bool)
}

// ForAncestry resolves the scope in force at the leaf of a caret's ancestry
// (spec.md §4.3): a top-down walk from the root (ancestry[len-1]) down to
// the leaf (ancestry[0]), applying each ancestor's extension rule in turn.
// given is read-only; ForAncestry never mutates it.
func ForAncestry(source Source, ancestry []ast.XorNode, given *Cache) (Map, error) {
	if len(ancestry) == 0 {
		return Map{}, nil
	}
	delta := make(map[uint32]Map)
	rootID := ancestry[len(ancestry)-1].ID()
	current := getOrCreateScope(source, given, delta, rootID, nil)

	for i := len(ancestry) - 1; i > 0; i-- {
		parent := ancestry[i]
		child := ancestry[i-1]
		ext := extendChildren(source, parent, current)
		// Keep every extended scope, not only the direct child's: a
		// Let/Record value sits below its pair node, so the ancestry reaches
		// it a few steps later and finds it in delta.
		for id, m := range ext {
			delta[id] = m
		}
		if childScope, ok := ext[child.ID()]; ok {
			delta[child.ID()] = childScope
			current = childScope
			continue
		}
		current = getOrCreateScope(source, given, delta, child.ID(), current)
	}
	return current, nil
}

// InspectTree resolves the scope in force at every node reachable from
// root, applying the same extension rules as ForAncestry but over the
// whole subtree rather than a single ancestry chain. The returned map is
// the new delta layer; given is never mutated.
func InspectTree(source Source, root ast.XorNode, given *Cache) (map[uint32]Map, error) {
	delta := make(map[uint32]Map)
	err := traverse.WalkXorNode(source, root, traverse.BreadthFirst, func(n ast.XorNode) error {
		current, ok := delta[n.ID()]
		if !ok {
			current = inheritedScope(source, given, delta, n.ID())
			delta[n.ID()] = current
		}
		for childID, childScope := range extendChildren(source, n, current) {
			delta[childID] = childScope
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return delta, nil
}

// inheritedScope implements the "any other kind: inherit the parent's
// scope unchanged" fallback, reading from delta first and given second.
func inheritedScope(source Source, given *Cache, delta map[uint32]Map, nodeID uint32) Map {
	parentID, ok := source.ParentID(nodeID)
	if !ok {
		if given != nil {
			if m, ok := given.Get(nodeID); ok {
				return m.clone()
			}
		}
		return Map{}
	}
	if m, ok := delta[parentID]; ok {
		return m.clone()
	}
	if given != nil {
		if m, ok := given.Get(parentID); ok {
			return m.clone()
		}
	}
	return Map{}
}

// getOrCreateScope implements the lookup rule from spec.md §4.3:
// delta first, then given (copy-on-read), then defaultScope, then
// parent inheritance, then an empty map.
func getOrCreateScope(source Source, given *Cache, delta map[uint32]Map, nodeID uint32, defaultScope Map) Map {
	if m, ok := delta[nodeID]; ok {
		return m
	}
	if given != nil {
		if m, ok := given.Get(nodeID); ok {
			cp := m.clone()
			delta[nodeID] = cp
			return cp
		}
	}
	if defaultScope != nil {
		cp := defaultScope.clone()
		delta[nodeID] = cp
		return cp
	}
	cp := inheritedScope(source, given, delta, nodeID)
	delta[nodeID] = cp
	return cp
}

// extendChildren applies parent's per-kind extension rule and returns the
// scopes it assigns to specific children, keyed by child id. A kind with
// no rule (the "inherit unchanged" default) returns nil.
func extendChildren(source Source, parent ast.XorNode, parentScope Map) map[uint32]Map {
	switch parent.Kind() {
	case ast.EachExpression:
		return extendEach(source, parent, parentScope)
	case ast.FunctionExpression:
		return extendFunction(source, parent, parentScope)
	case ast.LetExpression:
		return extendLet(source, parent, parentScope)
	case ast.RecordExpression, ast.RecordLiteral:
		return extendRecord(source, parent, parentScope)
	case ast.Section:
		return extendSection(source, parent, parentScope)
	default:
		return nil
	}
}

func extendEach(source Source, parent ast.XorNode, parentScope Map) map[uint32]Map {
	body, ok := source.ChildXorNode(parent.ID(), ast.EachExpressionBodyIndex)
	if !ok {
		return nil
	}
	m := parentScope.clone()
	m["_"] = Item{Kind: Each}
	return map[uint32]Map{body.ID(): m}
}

func extendFunction(source Source, parent ast.XorNode, parentScope Map) map[uint32]Map {
	paramList, ok := source.ChildXorNode(parent.ID(), ast.FunctionExpressionParametersIndex)
	if !ok {
		return nil
	}
	body, ok := source.ChildXorNode(parent.ID(), ast.FunctionExpressionBodyIndex)
	if !ok {
		return nil
	}
	items := make(map[string]Item)
	for _, paramID := range source.ChildIDs(paramList.ID()) {
		nameNode, ok := source.ChildXorNode(paramID, ast.ParameterNameIndex)
		if !ok {
			continue
		}
		name := identifierLiteral(nameNode)
		if name == "" {
			continue
		}
		paramNode, _ := source.XorNode(paramID)
		item := Item{Kind: Parameter, Value: paramNode}
		if typeNode, ok := source.ChildXorNode(paramID, ast.ParameterTypeIndex); ok {
			if constNode, ok := source.ChildXorNode(typeNode.ID(), ast.AsNullablePrimitiveTypeTypeIndex); ok {
				if ca, isAst := constNode.Ast(); isAst && ca.ConstantKind == ast.ConstantPrimitiveType {
					item.PrimitiveKind = ca.PrimitiveTypeKind
				}
			}
		}
		items[name] = item
	}
	m := parentScope.clone()
	for name, item := range items {
		m[name] = item
	}
	return map[uint32]Map{body.ID(): m}
}

func extendLet(source Source, parent ast.XorNode, parentScope Map) map[uint32]Map {
	container, ok := source.ChildXorNode(parent.ID(), ast.LetExpressionAssignmentsIndex)
	if !ok {
		return nil
	}
	pairIDs := source.ChildIDs(container.ID())
	result, baseItems := extendBindingGroup(source, pairIDs, parentScope,
		ast.IdentifierPairedExpressionNameIndex, ast.IdentifierPairedExpressionValueIndex, KeyValuePair)

	if inNode, ok := source.ChildXorNode(parent.ID(), ast.LetExpressionInIndex); ok {
		m := parentScope.clone()
		for name, item := range baseItems {
			m[name] = item
		}
		result[inNode.ID()] = m
	}
	return result
}

func extendRecord(source Source, parent ast.XorNode, parentScope Map) map[uint32]Map {
	container, ok := source.ChildXorNode(parent.ID(), ast.RecordExpressionContentIndex)
	if !ok {
		return nil
	}
	pairIDs := source.ChildIDs(container.ID())
	result, _ := extendBindingGroup(source, pairIDs, parentScope,
		ast.GeneralizedIdentifierPairedExpressionNameIndex, ast.GeneralizedIdentifierPairedExpressionValueIndex, KeyValuePair)
	return result
}

func extendSection(source Source, parent ast.XorNode, parentScope Map) map[uint32]Map {
	pairIDs := source.ChildIDs(parent.ID())
	result, _ := extendBindingGroup(source, pairIDs, parentScope,
		ast.SectionMemberNameIndex, ast.SectionMemberValueIndex, SectionMember)
	return result
}

// extendBindingGroup is the shared "mutually recursive bindings" shape
// behind Let, Record/RecordLiteral, and Section: every pair sees every
// other pair non-recursively, plus itself marked IsRecursive within its
// own value subtree. It returns the per-value-subtree scopes (keyed by
// value node id) and the flat non-recursive item set, which LetExpression
// additionally applies to its `in` clause.
func extendBindingGroup(source Source, pairIDs []uint32, parentScope Map, nameIdx, valueIdx uint32, kind Kind) (map[uint32]Map, map[string]Item) {
	type pair struct {
		name    string
		valueID uint32
	}
	baseItems := make(map[string]Item)
	var pairs []pair

	for _, pid := range pairIDs {
		nameNode, ok := source.ChildXorNode(pid, nameIdx)
		if !ok {
			continue
		}
		name := identifierLiteral(nameNode)
		if name == "" {
			continue
		}
		valueNode, hasValue := source.ChildXorNode(pid, valueIdx)
		baseItems[name] = Item{Kind: kind, Value: valueNode}
		if hasValue {
			pairs = append(pairs, pair{name: name, valueID: valueNode.ID()})
		}
	}

	result := make(map[uint32]Map, len(pairs))
	for _, p := range pairs {
		m := parentScope.clone()
		for name, item := range baseItems {
			m[name] = item
		}
		self := baseItems[p.name]
		self.IsRecursive = true
		m[p.name] = self
		result[p.valueID] = m
	}
	return result, baseItems
}

func identifierLiteral(n ast.XorNode) string {
	a, ok := n.Ast()
	if !ok {
		return ""
	}
	return a.IdentifierLiteral
}
