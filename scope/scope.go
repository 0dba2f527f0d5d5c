// Package scope resolves, per node id, which identifiers are bound and
// what produced each binding (spec.md §4.3). It implements a top-down walk
// over the ancestry that a caret resolves to, with a read-only caller cache
// and a discardable delta layer written during one call.
package scope

import "github.com/flowlang/inspect/ast"

// Kind tags the five shapes a binding can take.
type Kind int

const (
	Undefined Kind = iota
	Each
	KeyValuePair
	Parameter
	SectionMember
)

func (k Kind) String() string {
	switch k {
	case Each:
		return "Each"
	case KeyValuePair:
		return "KeyValuePair"
	case Parameter:
		return "Parameter"
	case SectionMember:
		return "SectionMember"
	default:
		return "Undefined"
	}
}

// Item is a single binding: what produced it, and (for parameters) the
// declared shape of the value it will eventually hold.
type Item struct {
	Kind Kind
	// Value is the node the identifier resolves to. Zero for Each, which
	// binds "_" to the iteration value without a syntactic node of its
	// own.
	Value ast.XorNode
	// IsRecursive is true for a Let/Record/Section pair whose own value
	// subtree is the one currently being resolved — see dereference.go.
	IsRecursive bool
	// The remaining fields apply only to Kind == Parameter. The resolver
	// sets PrimitiveKind from a declared `as <primitive>` type
	// (PrimitiveTypeUnset when none is declared); it does not set
	// IsOptional or IsNullable, which stay false.
	IsOptional    bool
	IsNullable    bool
	PrimitiveKind ast.PrimitiveTypeKind
}

// Map is the identifier → Item view in force at one node.
type Map map[string]Item

func (m Map) clone() Map {
	out := make(Map, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// Cache is the caller-supplied, read-only scope cache keyed by node id
// (spec.md's ScopeById). Inspection never mutates a Cache; it only reads
// from it while building its own delta layer.
type Cache struct {
	byID map[uint32]Map
}

// NewCache wraps an existing nodeID → Map view as a read-only Cache.
func NewCache(byID map[uint32]Map) *Cache {
	return &Cache{byID: byID}
}

// Get returns the cached scope for id, if any.
func (c *Cache) Get(id uint32) (Map, bool) {
	if c == nil {
		return nil, false
	}
	m, ok := c.byID[id]
	return m, ok
}

// Merge returns a new Cache combining c with delta, delta's entries taking
// precedence. Used to hand the caller back a cache that includes the
// results of one more inspection without mutating the cache they passed
// in.
func Merge(c *Cache, delta map[uint32]Map) *Cache {
	merged := make(map[uint32]Map, len(delta))
	if c != nil {
		for id, m := range c.byID {
			merged[id] = m
		}
	}
	for id, m := range delta {
		merged[id] = m
	}
	return NewCache(merged)
}
