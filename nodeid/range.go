package nodeid

import (
	"github.com/flowlang/inspect/ast"
	"github.com/flowlang/inspect/internal/u32set"
	"github.com/flowlang/inspect/token"
)

// StartPosition returns the start of n's range: an AstNode's
// TokenRange.PositionStart, or a ContextNode's MaybeTokenStart.PositionStart
// when a start token has been recorded. The second return is false when a
// ContextNode has not yet consumed any token.
func (c *Collection) StartPosition(n ast.XorNode) (token.AbsolutePosition, bool) {
	if a, ok := n.Ast(); ok {
		return a.TokenRange.PositionStart, true
	}
	cn, _ := n.Context()
	if cn.MaybeTokenStart == nil {
		return token.AbsolutePosition{}, false
	}
	return cn.MaybeTokenStart.PositionStart, true
}

// EndPosition returns the end of n's range. For an AstNode this is simply
// TokenRange.PositionEnd. For a ContextNode — which has no recorded end,
// since the construct was never completed — this walks childIDsByID to
// find the right-most fully-parsed descendant, using a reverse
// breadth-first scan so that subtrees whose own tokenIndexEnd cannot beat
// the best candidate found so far are culled without being visited
// (spec.md §4.1). The second return is false if no descendant (or the
// node itself) has ever consumed a token.
func (c *Collection) EndPosition(n ast.XorNode) (token.AbsolutePosition, bool) {
	if a, ok := n.Ast(); ok {
		return a.TokenRange.PositionEnd, true
	}

	visited := u32set.New(16)
	bestTokenIndexEnd := -1
	var bestPos token.AbsolutePosition
	found := false

	worklist := []uint32{n.ID()}
	for len(worklist) > 0 {
		id := worklist[0]
		worklist = worklist[1:]
		if !visited.Add(id) {
			continue
		}

		children := c.ChildIDs(id)
		// Reverse order: the right-most child is the one most likely to
		// extend bestTokenIndexEnd, so visit it first and let the
		// tokenIndexEnd-based cull below skip the rest early.
		for i := len(children) - 1; i >= 0; i-- {
			childID := children[i]
			child, ok := c.XorNode(childID)
			if !ok {
				continue
			}
			if a, ok := child.Ast(); ok {
				if a.TokenRange.TokenIndexEnd <= bestTokenIndexEnd {
					continue // cannot beat the best candidate; cull subtree
				}
				if a.TokenRange.TokenIndexEnd > bestTokenIndexEnd {
					bestTokenIndexEnd = a.TokenRange.TokenIndexEnd
					bestPos = a.TokenRange.PositionEnd
					found = true
				}
				continue // an AstNode is fully resolved; no need to descend
			}
			// Still a context node: its own end is unknown, so it might
			// contain a completed descendant further down. Keep exploring.
			worklist = append(worklist, childID)
		}
	}

	if !found {
		return c.StartPosition(n)
	}
	return bestPos, true
}

// Range returns n's full [Start, End) token.Range, or false if either
// bound is unavailable (an empty ContextNode with no descendants at all).
func (c *Collection) Range(n ast.XorNode) (token.Range, bool) {
	start, ok := c.StartPosition(n)
	if !ok {
		return token.Range{}, false
	}
	end, ok := c.EndPosition(n)
	if !ok {
		return token.Range{}, false
	}
	return token.Range{Start: start, End: end}, true
}
