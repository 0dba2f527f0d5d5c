package autocomplete

import (
	"github.com/flowlang/inspect/activenode"
	"github.com/flowlang/inspect/ast"
	"github.com/flowlang/inspect/keyword"
	"github.com/flowlang/inspect/token"
)

// conjunctionPrefixes implements spec.md §4.2 stage 1's trailing-identifier
// table: a single-letter trailing token that could be the start of one of
// these keywords suggests all of them.
var conjunctionPrefixes = map[string][]keyword.Kind{
	"a": {keyword.And, keyword.As},
	"o": {keyword.Or},
	"m": {keyword.Meta},
}

// stage1 detects the edge cases that short-circuit the generic ancestor
// walk. The second return reports whether a stage-1 rule fired at all —
// including to an empty result — distinguishing "no suggestion" from
// "fall through to stage 2".
func stage1(source Source, active *activenode.ActiveNode, parseErr *token.ParseError) ([]keyword.Kind, bool, error) {
	trailing, hasTrailing := parseErr.MaybeTrailingToken()

	if !hasTrailing && isFreshDocument(active.Ancestry) {
		return freshDocumentKeywords(), true, nil
	}

	if isParameterAsContext(source, active) {
		return []keyword.Kind{keyword.As}, true, nil
	}

	if hasTrailing && trailing.Kind == token.Identifier {
		if ks, matched := conjunctionPrefixes[trailing.Data]; matched {
			if !isNamedExclusion(active.Ancestry, trailing.Data) && withinExpression(active.Ancestry) {
				return ks, true, nil
			}
		}
	}

	return nil, false, nil
}

func isFreshDocument(ancestry []ast.XorNode) bool {
	return len(ancestry) == 2 &&
		ancestry[0].Kind() == ast.Identifier &&
		ancestry[1].Kind() == ast.IdentifierExpression
}

func freshDocumentKeywords() []keyword.Kind {
	ks := append([]keyword.Kind{}, keyword.ExpressionKeywords...)
	return append(ks, keyword.Section)
}

// isParameterAsContext detects "(_ |)": the caret positioned on or after a
// parameter's name identifier, with the optional "as Type" annotation not
// yet begun.
func isParameterAsContext(source Source, active *activenode.ActiveNode) bool {
	if len(active.Ancestry) < 2 {
		return false
	}
	leaf := active.Ancestry[0]
	a, ok := leaf.Ast()
	if !ok || a.NodeKind != ast.Identifier {
		return false
	}
	idx, has := leaf.AttributeIndex()
	if !has || idx != ast.ParameterNameIndex {
		return false
	}
	if active.Ancestry[1].Kind() != ast.Parameter {
		return false
	}
	end, ok := source.EndPosition(leaf)
	if !ok {
		return false
	}
	return active.Position.IsOnOrAfter(end.Position)
}

// isNamedExclusion recognizes the three positions spec.md §4.2 calls out
// as looking like a conjunction-prefix match but actually belonging to a
// more specific continuation handled elsewhere: "if … then |e" (else, via
// the stage 2 IfExpression map), "try x |o" (or/otherwise, via stage 2's
// ErrorHandlingExpression state machine), and a trailing "let" "in" with
// nothing typed yet (in, via the stage 2 LetExpression map).
func isNamedExclusion(ancestry []ast.XorNode, trailing string) bool {
	switch trailing {
	case "e":
		return ancestorIsKind(ancestry, ast.IfExpression)
	case "o":
		return ancestorIsKind(ancestry, ast.ErrorHandlingExpression)
	case "i":
		return ancestorIsKind(ancestry, ast.LetExpression)
	}
	return false
}

func ancestorIsKind(ancestry []ast.XorNode, k ast.Kind) bool {
	for _, n := range ancestry {
		if n.Kind() == k {
			return true
		}
	}
	return false
}

// expressionProducingKinds are ancestor kinds under which the caret sits
// inside a value-producing expression — spec.md §4.2's "some enclosing
// ancestor is a unary-type-producing expression": a context where "and",
// "or", "as", or "meta" would extend the expression rather than appear at
// statement level.
var expressionProducingKinds = map[ast.Kind]bool{
	ast.ArithmeticExpression:    true,
	ast.EqualityExpression:      true,
	ast.LogicalExpression:       true,
	ast.RelationalExpression:    true,
	ast.IsExpression:            true,
	ast.AsExpression:            true,
	ast.UnaryExpression:         true,
	ast.MetadataExpression:      true,
	ast.IdentifierExpression:    true,
	ast.LiteralExpression:       true,
	ast.InvokeExpression:        true,
	ast.FieldSelector:           true,
	ast.FieldProjection:         true,
	ast.ParenthesizedExpression: true,
	ast.ListExpression:          true,
	ast.RecordExpression:        true,
	ast.ItemAccessExpression:    true,
}

func withinExpression(ancestry []ast.XorNode) bool {
	for _, n := range ancestry {
		if expressionProducingKinds[n.Kind()] {
			return true
		}
	}
	return false
}
