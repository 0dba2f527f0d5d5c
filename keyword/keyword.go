// Package keyword defines the closed set of language keywords that the
// autocomplete engine can suggest, in their static declaration order.
// Declaration order is significant: spec.md §4.2 requires autocomplete
// results to be emitted "in the static order of the keyword enumeration".
package keyword

// Kind identifies one keyword.
type Kind int

const (
	And Kind = iota
	As
	Each
	Else
	Error
	False
	If
	In
	Is
	Let
	Meta
	NotImplemented
	Null
	Or
	Otherwise
	Section
	Shared
	Then
	True
	Try
	Type
	HashBinary
	HashDate
	HashDateTime
	HashDateTimeZone
	HashDuration
	HashInfinity
	HashNan
	HashShared
	HashTable
	HashTime
)

var spellings = map[Kind]string{
	And:              "and",
	As:               "as",
	Each:             "each",
	Else:             "else",
	Error:            "error",
	False:            "false",
	If:               "if",
	In:               "in",
	Is:               "is",
	Let:              "let",
	Meta:             "meta",
	NotImplemented:   "...",
	Null:             "null",
	Or:               "or",
	Otherwise:        "otherwise",
	Section:          "section",
	Shared:           "shared",
	Then:             "then",
	True:             "true",
	Try:              "try",
	Type:             "type",
	HashBinary:       "#binary",
	HashDate:         "#date",
	HashDateTime:     "#datetime",
	HashDateTimeZone: "#datetimezone",
	HashDuration:     "#duration",
	HashInfinity:     "#infinity",
	HashNan:          "#nan",
	HashShared:       "#shared",
	HashTable:        "#table",
	HashTime:         "#time",
}

// All lists every keyword in static declaration order. It is the order
// autocomplete results must follow after deduplication.
var All = []Kind{
	And, As, Each, Else, Error, False, If, In, Is, Let, Meta, NotImplemented,
	Null, Or, Otherwise, Section, Shared, Then, True, Try, Type,
	HashBinary, HashDate, HashDateTime, HashDateTimeZone, HashDuration,
	HashInfinity, HashNan, HashShared, HashTable, HashTime,
}

// ExpressionKeywords is the set of keywords legal at the start of an
// expression (spec.md §4.2's "expression keyword set").
var ExpressionKeywords = []Kind{
	Each, Error, False, If, Let, NotImplemented, Null, True, Try, Type,
	HashBinary, HashDate, HashDateTime, HashDateTimeZone, HashDuration,
	HashInfinity, HashNan, HashTable, HashTime,
}

// Spelling returns the literal spelling of k.
func (k Kind) Spelling() string { return spellings[k] }

// String implements fmt.Stringer.
func (k Kind) String() string { return k.Spelling() }

// HasPrefix reports whether k's spelling begins with prefix. An empty
// prefix matches every keyword (no identifier is under the caret).
func (k Kind) HasPrefix(prefix string) bool {
	s := k.Spelling()
	if len(prefix) > len(s) {
		return false
	}
	return s[:len(prefix)] == prefix
}

// Dedupe removes duplicate kinds from ks and returns the remaining kinds
// in the static declaration order recorded in [All]; the order of ks
// itself is not kept. This is the mechanism spec.md
// §4.2's "Determinism" paragraph refers to.
func Dedupe(ks []Kind) []Kind {
	seen := make(map[Kind]bool, len(ks))
	for _, k := range ks {
		seen[k] = true
	}
	out := make([]Kind, 0, len(seen))
	for _, k := range All {
		if seen[k] {
			out = append(out, k)
		}
	}
	return out
}

// FilterByPrefix keeps only the keywords in ks whose spelling begins with
// prefix (spec.md §4.2 stage 3).
func FilterByPrefix(ks []Kind, prefix string) []Kind {
	if prefix == "" {
		return ks
	}
	out := make([]Kind, 0, len(ks))
	for _, k := range ks {
		if k.HasPrefix(prefix) {
			out = append(out, k)
		}
	}
	return out
}
