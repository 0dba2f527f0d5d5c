package inspect

import (
	"github.com/flowlang/inspect/activenode"
	"github.com/flowlang/inspect/keyword"
	"github.com/flowlang/inspect/nodeid"
	"github.com/flowlang/inspect/scope"
	"github.com/flowlang/inspect/types"
)

// TriedKeyword is the keyword-autocomplete sub-inspection's result.
type TriedKeyword struct {
	Keywords []keyword.Kind
	Err      error
}

// TriedScope is the scope-resolution sub-inspection's result: the scope in
// force at the active node's leaf.
type TriedScope struct {
	Scope scope.Map
	Err   error
}

// TriedType is the type-inference sub-inspection's result: the type of the
// active node's leaf.
type TriedType struct {
	Type types.Type
	Err  error
}

// Autocomplete is the composite result spec.md §6's `inspect()` returns:
// `{triedKeyword, triedScope, triedType, triedFieldAccess}`. Each field is
// independently nil — "this sub-inspection did not apply at this
// position" — or set, carrying its own (value, error) pair; one
// sub-inspection's failure never prevents another from running or being
// reported (spec.md §7's propagation policy).
type Autocomplete struct {
	TriedKeyword     *TriedKeyword
	TriedScope       *TriedScope
	TriedType        *TriedType
	TriedFieldAccess *TriedFieldAccess
}

// Inspect drives all four sub-inspections for active and composes their
// independent results. It returns the zero Autocomplete (all fields nil)
// when active is nil, matching spec.md §4.1's "no active node" case: there
// is nothing to inspect.
func Inspect(settings Settings, c *nodeid.Collection, leafNodeIds []uint32, active *activenode.ActiveNode, parseErr *ParseError) Autocomplete {
	if active == nil {
		return Autocomplete{}
	}

	var result Autocomplete

	keywords, err := TryAutocomplete(settings, c, leafNodeIds, active, parseErr)
	result.TriedKeyword = &TriedKeyword{Keywords: keywords, Err: err}

	scopeMap, err := TryScopeForRoot(settings, c, leafNodeIds, active.Ancestry, nil)
	result.TriedScope = &TriedScope{Scope: scopeMap, Err: err}

	leafID := active.Ancestry[0].ID()
	t, err := TryType(settings, c, leafNodeIds, leafID)
	result.TriedType = &TriedType{Type: t, Err: err}

	result.TriedFieldAccess = tryFieldAccess(c, active)

	return result
}
