package autocomplete

import (
	"strings"

	"github.com/flowlang/inspect/activenode"
	"github.com/flowlang/inspect/ast"
	"github.com/flowlang/inspect/keyword"
	"github.com/flowlang/inspect/token"
)

type ancestorKey struct {
	parent              ast.Kind
	childAttributeIndex uint32
}

// mandatoryKeyword is the constant map of spec.md §4.2 stage 2 bullet 1:
// completing the child at this attribute index under this parent kind
// makes the mapped keyword the only legal continuation. Section and
// ErrorRaisingExpression dispatch through the same walk for structural
// symmetry but contribute no entries: Section's only keyword ("section")
// precedes every child and is covered by stage 1's fresh-document case,
// and nothing mandatory follows an ErrorRaisingExpression's value.
var mandatoryKeyword = map[ancestorKey]keyword.Kind{
	{ast.IfExpression, ast.IfExpressionConditionIndex}:           keyword.Then,
	{ast.IfExpression, ast.IfExpressionThenIndex}:                keyword.Else,
	{ast.OtherwiseExpression, ast.OtherwiseExpressionValueIndex}: keyword.Otherwise,
	{ast.LetExpression, ast.LetExpressionAssignmentsIndex}:       keyword.In,
}

// expressionKeywordPositions are the (parentKind, childAttributeIndex)
// pairs of stage 2 bullet 3: positions where, if the child hasn't started
// yet, any expression keyword is a legal continuation.
var expressionKeywordPositions = map[ancestorKey]bool{
	{ast.LetExpression, ast.LetExpressionInIndex}:     true,
	{ast.ListExpression, ast.ListExpressionItemIndex}: true,
	{ast.SectionMember, ast.SectionMemberValueIndex}:  true,
}

// stage2 walks the ancestry from the leaf upward, dispatching each
// (parent, child) pair on parent.kind, and returns the first non-empty
// result (spec.md §4.2: "the first non-empty result terminates the walk").
func stage2(source Source, active *activenode.ActiveNode, parseErr *token.ParseError) ([]keyword.Kind, error) {
	ancestry := active.Ancestry
	for i := 1; i < len(ancestry); i++ {
		parent := ancestry[i]
		child := ancestry[i-1]
		idx, has := child.AttributeIndex()
		if !has {
			continue
		}
		key := ancestorKey{parent.Kind(), idx}

		if parent.Kind() == ast.ErrorHandlingExpression && idx == ast.ErrorHandlingExpressionBodyIndex {
			if ks := errorHandlingSuggestion(source, active, parseErr, child); len(ks) > 0 {
				return ks, nil
			}
			continue
		}

		if k, ok := mandatoryKeyword[key]; ok {
			return []keyword.Kind{k}, nil
		}

		if expressionKeywordPositions[key] {
			if childNeedsExpressionKeywords(source, active.Position, child) {
				return append([]keyword.Kind{}, keyword.ExpressionKeywords...), nil
			}
			continue
		}

		if parent.Kind() == ast.SectionMember && idx == ast.SectionMemberNameIndex {
			if ks := sharedSuggestion(source, parent, child); len(ks) > 0 {
				return ks, nil
			}
		}
	}
	return nil, nil
}

func childNeedsExpressionKeywords(source Source, p token.Position, child ast.XorNode) bool {
	if child.IsContext() {
		return true
	}
	start, ok := source.StartPosition(child)
	if !ok {
		return false
	}
	return p.IsBefore(start.Position)
}

// errorHandlingSuggestion implements spec.md §4.2 stage 2 bullet 2 and the
// per-ErrorHandlingExpression state machine's "body -> otherwise?"
// disambiguation.
func errorHandlingSuggestion(source Source, active *activenode.ActiveNode, parseErr *token.ParseError, body ast.XorNode) []keyword.Kind {
	trailing, hasTrailing := parseErr.MaybeTrailingToken()
	if hasTrailing {
		if keyword.Otherwise.HasPrefix(trailing.Data) && !keyword.Or.HasPrefix(trailing.Data) {
			return []keyword.Kind{keyword.Otherwise}
		}
		return []keyword.Kind{keyword.Or, keyword.Otherwise}
	}

	end, hasEnd := source.EndPosition(body)
	if hasEnd && active.Position.IsOnOrAfter(end.Position) {
		return []keyword.Kind{keyword.Otherwise}
	}
	if body.IsContext() || (hasEnd && active.Position.IsBefore(end.Position)) {
		return append([]keyword.Kind{}, keyword.ExpressionKeywords...)
	}
	return nil
}

// sharedSuggestion implements stage 2 bullet 4: while a SectionMember's
// name is still a partially-parsed context node starting with "s", and no
// "shared" constant has been parsed as an earlier sibling, "shared" is the
// only admissible completion.
func sharedSuggestion(source Source, parent, nameChild ast.XorNode) []keyword.Kind {
	if !nameChild.IsContext() {
		return nil
	}
	cn, _ := nameChild.Context()
	if cn.MaybeTokenStart == nil || !strings.HasPrefix(cn.MaybeTokenStart.Data, "s") {
		return nil
	}
	for _, siblingID := range source.ChildIDs(parent.ID()) {
		sibling, ok := source.XorNode(siblingID)
		if !ok {
			continue
		}
		if a, isAst := sibling.Ast(); isAst && a.NodeKind == ast.Constant && a.OperatorLiteral == "shared" {
			return nil
		}
	}
	return []keyword.Kind{keyword.Shared}
}
