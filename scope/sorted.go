package scope

import (
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// SortedIdentifiers returns m's identifiers in locale-stable order, for
// hosts that render a scope to a user (completion lists, hover panels)
// and want a consistent ordering across runs rather than Go's randomized
// map iteration order.
func SortedIdentifiers(m Map, locale language.Tag) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	c := collate.New(locale)
	sort.Slice(names, func(i, j int) bool {
		return c.CompareString(names[i], names[j]) < 0
	})
	return names
}
