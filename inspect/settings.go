// Package inspect is the top-level glue: it drives the three independent
// sub-inspections (keyword autocomplete, scope resolution, type inference)
// plus the field-access lookup they jointly enable, and composes the
// results into one [Autocomplete] value that never aborts a sibling
// sub-inspection on another's failure (spec.md §6, §7).
package inspect

import (
	"github.com/flowlang/inspect/localization"
	"github.com/flowlang/inspect/token"
)

// ParseError is the parse-context collaborator every sub-inspection may
// consult for a trailing, not-yet-resolved token. It is a straight alias
// for [token.ParseError] — package token already hosts the type (to avoid
// an import cycle between package autocomplete, which consumes it, and
// this package, which would otherwise originate it) and this package's
// external interface names it as its own per spec.md §6.
type ParseError = token.ParseError

// Settings bundles the collaborators spec.md §6 lists: `{locale,
// localizationTemplates, parser, newParserState}`. Only LocalizationTemplates
// is read by the core; Parser and NewParserState are carried through for a
// host's own use (re-parsing a document fragment to refresh a NodeIdMap)
// and are declared as `any` since this package never calls them.
type Settings struct {
	Locale                string
	LocalizationTemplates *localization.Bundle
	Parser                any
	NewParserState        any
}
