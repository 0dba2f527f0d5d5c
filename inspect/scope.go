package inspect

import (
	"sort"

	"github.com/flowlang/inspect/ast"
	"github.com/flowlang/inspect/inspecterr"
	"github.com/flowlang/inspect/nodeid"
	"github.com/flowlang/inspect/scope"
	"github.com/flowlang/inspect/token"
	"github.com/flowlang/inspect/types"
)

// TryScopeForRoot resolves the scope in force at ancestry's leaf (spec.md
// §4.3). leafNodeIds is part of the external interface per spec.md §6 but
// unused here: the ancestry chain is already leaf-to-root.
func TryScopeForRoot(settings Settings, c *nodeid.Collection, leafNodeIds []uint32, ancestry []ast.XorNode, given *scope.Cache) (scope.Map, error) {
	return scope.ForAncestry(c, ancestry, given)
}

// TryInspectScope resolves the scope in force at every node reachable from
// rootID. leafNodeIds is part of the external interface per spec.md §6 but
// unused here: InspectTree walks the tree itself.
func TryInspectScope(settings Settings, c *nodeid.Collection, leafNodeIds []uint32, rootID uint32, given *scope.Cache) (map[uint32]scope.Map, error) {
	root, ok := c.XorNode(rootID)
	if !ok {
		return nil, inspecterr.Invariant(token.Position{}, "TryInspectScope: node id %d is absent from the collection", rootID)
	}
	return scope.InspectTree(c, root, given)
}

// TryInspectScopeType resolves the [types.Type] of every binding reachable
// across inspected — the full per-node scope produced by TryInspectScope —
// flattened into one identifier → Type map. Node ids are visited in
// ascending order so that an identifier re-bound at more than one node
// resolves deterministically to its last (innermost, by id order) binding;
// bindings with no syntactic value (Kind == scope.Each) are skipped.
func TryInspectScopeType(settings Settings, inspected map[uint32]scope.Map, c *nodeid.Collection) (map[string]types.Type, error) {
	ids := make([]uint32, 0, len(inspected))
	for id := range inspected {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	result := make(map[string]types.Type)
	for _, id := range ids {
		for identifier, item := range inspected[id] {
			if item.Kind == scope.Each || item.Value.IsZero() {
				continue
			}
			t, err := types.Evaluate(c, item.Value)
			if err != nil {
				return nil, err
			}
			result[identifier] = t
		}
	}
	return result, nil
}
