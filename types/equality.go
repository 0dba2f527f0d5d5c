package types

// Equal reports whether a and b are structurally identical: same Kind,
// same nullability, and — for extended kinds — recursively equal payloads.
// Record/table field maps compare key-for-key; AnyUnion members compare
// pairwise in order. Unions built by AnyUnion are already in canonical
// sorted order, so for them member order does not affect the result
// (spec.md §9 Open Question 1).
//
// Implemented on the standard library: this is a small recursive struct
// comparison with no cyclic or unexported-field concerns, so go-cmp (used
// elsewhere in this codebase's tests, never in its production code — the
// pack's own repos follow the same split) would add a dependency without
// adding capability here.
func Equal(a, b Type) bool {
	if a.Kind != b.Kind || a.IsNullable != b.IsNullable || a.Extended != b.Extended {
		return false
	}
	switch a.Extended {
	case NoExtension:
		return true
	case AnyUnionExtension:
		return equalUnions(a.Union, b.Union)
	case DefinedFunctionExtension:
		return equalFunctions(a.Function, b.Function)
	case DefinedListExtension, ListTypeExtension:
		return equalLists(a.List, b.List)
	case DefinedRecordExtension, DefinedTableExtension, PrimaryExpressionTableExtension:
		return equalRecords(a.Record, b.Record)
	case DefinedTypeExtension:
		return equalTypePointers(a.DefinedType, b.DefinedType)
	default:
		return true
	}
}

func equalUnions(a, b []Type) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !Equal(a[i], b[i]) {
			return false
		}
	}
	return true
}

func equalFunctions(a, b *FunctionType) bool {
	if a == nil || b == nil {
		return a == b
	}
	if len(a.Parameters) != len(b.Parameters) {
		return false
	}
	for i := range a.Parameters {
		pa, pb := a.Parameters[i], b.Parameters[i]
		if pa.Name != pb.Name || pa.IsOptional != pb.IsOptional || pa.IsNullable != pb.IsNullable || pa.Kind != pb.Kind {
			return false
		}
	}
	return Equal(a.ReturnType, b.ReturnType)
}

func equalLists(a, b *ListInfo) bool {
	if a == nil || b == nil {
		return a == b
	}
	if len(a.Elements) != len(b.Elements) {
		return false
	}
	for i := range a.Elements {
		if !Equal(a.Elements[i], b.Elements[i]) {
			return false
		}
	}
	return true
}

func equalRecords(a, b *RecordInfo) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.IsOpen != b.IsOpen || len(a.Fields) != len(b.Fields) {
		return false
	}
	for name, at := range a.Fields {
		bt, ok := b.Fields[name]
		if !ok || !Equal(at, bt) {
			return false
		}
	}
	return true
}

func equalTypePointers(a, b *Type) bool {
	if a == nil || b == nil {
		return a == b
	}
	return Equal(*a, *b)
}
