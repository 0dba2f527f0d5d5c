package traverse

import "github.com/flowlang/inspect/ast"

// Source is the minimal view of a NodeIdMap.Collection that this package
// needs to expand a XorNode's children without importing package nodeid
// (which would create an import cycle, since nodeid's range resolution
// could otherwise want to reuse this walker).
type Source interface {
	XorNode(id uint32) (ast.XorNode, bool)
	ChildIDs(id uint32) []uint32
}

// Children adapts a Source into the Children function Request needs.
func Children(source Source) func(struct{}, ast.XorNode) []ast.XorNode {
	return func(_ struct{}, n ast.XorNode) []ast.XorNode {
		ids := source.ChildIDs(n.ID())
		out := make([]ast.XorNode, 0, len(ids))
		for _, id := range ids {
			if child, ok := source.XorNode(id); ok {
				out = append(out, child)
			}
		}
		return out
	}
}

// WalkXorNode walks the subtree rooted at root, calling visit on each
// node exactly once, in the given strategy's order.
func WalkXorNode(source Source, root ast.XorNode, strategy Strategy, visit func(ast.XorNode) error) error {
	return Walk(Request[ast.XorNode, struct{}]{
		Root:     root,
		Strategy: strategy,
		Children: Children(source),
		Visit: func(_ struct{}, n ast.XorNode) error {
			return visit(n)
		},
	})
}
