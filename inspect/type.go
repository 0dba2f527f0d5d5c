package inspect

import (
	"github.com/flowlang/inspect/inspecterr"
	"github.com/flowlang/inspect/nodeid"
	"github.com/flowlang/inspect/token"
	"github.com/flowlang/inspect/types"
)

// TryType infers the [types.Type] of nodeID. leafNodeIds is part of the
// external interface per spec.md §6 but unused here: type inference walks
// down from nodeID, not across the leaf list.
func TryType(settings Settings, c *nodeid.Collection, leafNodeIds []uint32, nodeID uint32) (types.Type, error) {
	n, ok := c.XorNode(nodeID)
	if !ok {
		return types.Type{}, inspecterr.Invariant(token.Position{}, "TryType: node id %d is absent from the collection", nodeID)
	}
	return types.Evaluate(c, n)
}
