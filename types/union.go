package types

import (
	"fmt"
	"sort"
	"strings"

	"github.com/mpvl/unique"
)

// AnyUnion constructs the dedupe'd union of members, per spec.md §4.4's
// "dedupe" procedure: flatten nested unions, remove structural duplicates,
// and collapse a singleton result back to its one member.
func AnyUnion(members ...Type) Type {
	flat := flatten(members)
	if len(flat) == 0 {
		return UnknownType
	}

	sortable := newTypeSortable(flat)
	// unique.Sort reorders sortable in place, grouping structurally equal
	// elements (equal canonical key) together and reports how many
	// leading elements are distinct. This is the canonical-sort-before-
	// comparison resolution of the AnyUnion order-independence question
	// (spec.md §9 Open Question 1): two unions with the same members in
	// different source order produce the same sorted, deduped slice.
	n := unique.Sort(sortable)
	deduped := sortable.items[:n]

	if len(deduped) == 1 {
		return deduped[0]
	}

	isNullable := false
	for _, t := range deduped {
		isNullable = isNullable || t.IsNullable
	}
	return Type{
		Kind:       Any,
		IsNullable: isNullable,
		Extended:   AnyUnionExtension,
		Union:      deduped,
	}
}

func flatten(members []Type) []Type {
	var out []Type
	for _, m := range members {
		if m.Extended == AnyUnionExtension {
			out = append(out, flatten(m.Union)...)
			continue
		}
		out = append(out, m)
	}
	return out
}

// typeSortable adapts a []Type to sort.Interface, ordered by a canonical
// structural key so that unique.Sort's adjacent-duplicate removal doubles
// as full structural-equality deduplication.
type typeSortable struct {
	items []Type
	keys  []string
}

func newTypeSortable(items []Type) *typeSortable {
	keys := make([]string, len(items))
	for i, t := range items {
		keys[i] = canonicalKey(t)
	}
	return &typeSortable{items: items, keys: keys}
}

func (s *typeSortable) Len() int { return len(s.items) }
func (s *typeSortable) Less(i, j int) bool {
	return s.keys[i] < s.keys[j]
}
func (s *typeSortable) Swap(i, j int) {
	s.items[i], s.items[j] = s.items[j], s.items[i]
	s.keys[i], s.keys[j] = s.keys[j], s.keys[i]
}

// canonicalKey renders t into a deterministic string such that two types
// produce the same key iff Equal(t1, t2) holds (see equality.go). Field
// names and nested union members are sorted first so that member order
// never affects the key.
func canonicalKey(t Type) string {
	var b strings.Builder
	writeCanonicalKey(&b, t)
	return b.String()
}

func writeCanonicalKey(b *strings.Builder, t Type) {
	fmt.Fprintf(b, "%d|%t|%d", t.Kind, t.IsNullable, t.Extended)
	switch t.Extended {
	case AnyUnionExtension:
		keys := make([]string, len(t.Union))
		for i, m := range t.Union {
			keys[i] = canonicalKey(m)
		}
		sort.Strings(keys)
		b.WriteByte('[')
		b.WriteString(strings.Join(keys, ","))
		b.WriteByte(']')
	case DefinedFunctionExtension:
		if t.Function != nil {
			for _, p := range t.Function.Parameters {
				fmt.Fprintf(b, "(%s,%t,%t,%d)", p.Name, p.IsOptional, p.IsNullable, p.Kind)
			}
			b.WriteByte('=')
			writeCanonicalKey(b, t.Function.ReturnType)
		}
	case DefinedListExtension, ListTypeExtension:
		if t.List != nil {
			for _, e := range t.List.Elements {
				writeCanonicalKey(b, e)
				b.WriteByte(';')
			}
		}
	case DefinedRecordExtension, DefinedTableExtension, PrimaryExpressionTableExtension:
		if t.Record != nil {
			names := make([]string, 0, len(t.Record.Fields))
			for name := range t.Record.Fields {
				names = append(names, name)
			}
			sort.Strings(names)
			fmt.Fprintf(b, "{open=%t}", t.Record.IsOpen)
			for _, name := range names {
				b.WriteString(name)
				b.WriteByte(':')
				writeCanonicalKey(b, t.Record.Fields[name])
				b.WriteByte(';')
			}
		}
	case DefinedTypeExtension:
		if t.DefinedType != nil {
			writeCanonicalKey(b, *t.DefinedType)
		}
	}
}
