package inspect

import (
	"github.com/flowlang/inspect/activenode"
	"github.com/flowlang/inspect/autocomplete"
	"github.com/flowlang/inspect/keyword"
	"github.com/flowlang/inspect/nodeid"
)

// TryAutocomplete runs the keyword-autocomplete pipeline over active,
// consulting parseErr's trailing token when present. leafNodeIds is part
// of the external interface per spec.md §6 but unused here: active's
// ancestry already anchors every lookup the pipeline needs.
func TryAutocomplete(settings Settings, c *nodeid.Collection, leafNodeIds []uint32, active *activenode.ActiveNode, parseErr *ParseError) ([]keyword.Kind, error) {
	return autocomplete.Suggest(c, active, parseErr)
}
