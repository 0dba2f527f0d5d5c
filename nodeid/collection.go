// Package nodeid implements the NodeIdMap forest: a Collection of AST and
// parse-context nodes indexed by integer id, as described in spec.md §3.
// The collection is produced by the parser collaborator and treated as
// immutable by every inspection in this module.
package nodeid

import (
	"fmt"

	"github.com/flowlang/inspect/ast"
)

// Collection is the five-parallel-map forest described in spec.md §3:
//
//  1. every id appears in exactly one of astNodeByID/contextNodeByID.
//  2. childIDsByID lists children in source order; a child's
//     MaybeAttributeIndex equals its role index under its parent's kind,
//     not its position in this list.
//  3. parentIDByID is the transpose of childIDsByID.
//  4. a node's token-range contains every descendant's token-range.
//
// Collection does not enforce these invariants at construction time (the
// parser collaborator is responsible for them); [Collection.Validate]
// checks invariants 1 and 3 for tests and defensive assertions.
type Collection struct {
	astNodeByID    map[uint32]*ast.AstNode
	contextNodeByID map[uint32]*ast.ContextNode
	childIDsByID   map[uint32][]uint32
	parentIDByID   map[uint32]uint32
	leafNodeIDs    []uint32
}

// NewCollection returns an empty Collection ready for incremental
// construction via Add*/Link, the way a parser collaborator would build one
// node at a time while it parses.
func NewCollection() *Collection {
	return &Collection{
		astNodeByID:     make(map[uint32]*ast.AstNode),
		contextNodeByID: make(map[uint32]*ast.ContextNode),
		childIDsByID:    make(map[uint32][]uint32),
		parentIDByID:    make(map[uint32]uint32),
	}
}

// AddAst registers a fully-parsed node.
func (c *Collection) AddAst(n *ast.AstNode) {
	c.astNodeByID[n.ID] = n
	if n.IsLeaf {
		c.leafNodeIDs = append(c.leafNodeIDs, n.ID)
	}
}

// AddContext registers a partially-parsed node.
func (c *Collection) AddContext(n *ast.ContextNode) {
	c.contextNodeByID[n.ID] = n
}

// Link records that childID is a (left-to-right, next) child of parentID.
func (c *Collection) Link(parentID, childID uint32) {
	c.childIDsByID[parentID] = append(c.childIDsByID[parentID], childID)
	c.parentIDByID[childID] = parentID
}

// LeafNodeIDs returns the leaves in document order.
func (c *Collection) LeafNodeIDs() []uint32 { return c.leafNodeIDs }

// XorNode looks up id in both tables and returns the tagged view, or the
// zero XorNode and false if id is unknown.
func (c *Collection) XorNode(id uint32) (ast.XorNode, bool) {
	if n, ok := c.astNodeByID[id]; ok {
		return ast.FromAst(n), true
	}
	if n, ok := c.contextNodeByID[id]; ok {
		return ast.FromContext(n), true
	}
	return ast.XorNode{}, false
}

// MustXorNode is XorNode but panics on a missing id. It is used in code
// paths where a missing id is an invariant violation the caller has
// already ruled out (spec.md §7's InvariantViolation), not a condition to
// report as a normal error.
func (c *Collection) MustXorNode(id uint32) ast.XorNode {
	n, ok := c.XorNode(id)
	if !ok {
		panic(fmt.Sprintf("nodeid: id %d present in no table", id))
	}
	return n
}

// ParentID returns the parent of id and true, or (0, false) if id is the
// root (or unknown).
func (c *Collection) ParentID(id uint32) (uint32, bool) {
	p, ok := c.parentIDByID[id]
	return p, ok
}

// ChildIDs returns the ordered child ids of id (possibly empty).
func (c *Collection) ChildIDs(id uint32) []uint32 {
	return c.childIDsByID[id]
}

// ChildXorNode returns the child of parentID whose AttributeIndex equals
// attributeIndex, or the zero node and false. This is the primary way
// scope/autocomplete/types code reach "the Nth attribute of a kind"
// without caring whether an earlier sibling was dropped by a parse error
// (spec.md §3 invariant 2).
func (c *Collection) ChildXorNode(parentID uint32, attributeIndex uint32) (ast.XorNode, bool) {
	for _, childID := range c.childIDsByID[parentID] {
		child, ok := c.XorNode(childID)
		if !ok {
			continue
		}
		if idx, has := child.AttributeIndex(); has && idx == attributeIndex {
			return child, true
		}
	}
	return ast.XorNode{}, false
}

// Ancestry walks parentIDByID from id to the root, returning a leaf-first
// slice (ancestry[0] is id itself, ancestry[len-1] is the root). It is the
// same walk package activenode performs through its own Source interface
// during ActiveNode construction (spec.md §4.1 step 3), offered here for
// callers that hold a Collection directly.
func (c *Collection) Ancestry(id uint32) ([]ast.XorNode, error) {
	var out []ast.XorNode
	cur := id
	for {
		n, ok := c.XorNode(cur)
		if !ok {
			return nil, fmt.Errorf("nodeid: ancestry walk hit unknown id %d", cur)
		}
		out = append(out, n)
		parent, ok := c.ParentID(cur)
		if !ok {
			return out, nil
		}
		cur = parent
	}
}

// RootID returns the id of the ultimate ancestor of id.
func (c *Collection) RootID(id uint32) uint32 {
	cur := id
	for {
		parent, ok := c.ParentID(cur)
		if !ok {
			return cur
		}
		cur = parent
	}
}

// Validate checks invariants 1 and 3 from the Collection doc comment: that
// every id is registered in exactly one table, and that parentIDByID is
// the exact transpose of childIDsByID. It is a defensive/test helper, not
// used by the inspection hot paths.
func (c *Collection) Validate() error {
	for id := range c.astNodeByID {
		if _, dup := c.contextNodeByID[id]; dup {
			return fmt.Errorf("nodeid: id %d present in both ast and context tables", id)
		}
	}
	for parentID, children := range c.childIDsByID {
		for _, childID := range children {
			p, ok := c.parentIDByID[childID]
			if !ok || p != parentID {
				return fmt.Errorf("nodeid: child %d of parent %d missing matching parentIDByID entry", childID, parentID)
			}
		}
	}
	for childID, parentID := range c.parentIDByID {
		listed := false
		for _, id := range c.childIDsByID[parentID] {
			if id == childID {
				listed = true
				break
			}
		}
		if !listed {
			return fmt.Errorf("nodeid: parentIDByID maps %d to %d, but %d is not among its children", childID, parentID, childID)
		}
	}
	return nil
}
