package types

// Merge implements the `&` combine rule for two record/table-shaped types
// (spec.md §4.4's "Record/Table merge"): right-wins on field name
// collision, isOpen/isNullable are conservative disjunctions. left and
// right must share the same Kind (Record or Table) — the caller (the
// Ampersand entry in BinOpLookup already enforces same-kind operands, so
// this is not re-validated here.
func Merge(left, right Type) Type {
	leftOpen, leftFields := openAndFields(left)
	rightOpen, rightFields := openAndFields(right)

	result := Type{
		Kind:       left.Kind,
		IsNullable: left.IsNullable || right.IsNullable,
	}

	if left.Record == nil && right.Record == nil {
		// Neither side is structurally defined: both primitive, meaning
		// "open, unknown fields" (spec.md: "both primitive (no extended
		// kind) → primitive result with propagated nullability").
		return result
	}

	merged := make(map[string]Type, len(leftFields)+len(rightFields))
	for name, t := range leftFields {
		merged[name] = t
	}
	for name, t := range rightFields {
		merged[name] = t // right-wins
	}

	result.Extended = extensionForKind(left.Kind)
	result.Record = &RecordInfo{
		Fields: merged,
		IsOpen: leftOpen || rightOpen,
	}
	return result
}

// openAndFields reports a side's openness and field map. A primitive
// (unrefined) record/table is treated as open with no declared fields.
func openAndFields(t Type) (bool, map[string]Type) {
	if t.Record == nil {
		return true, nil
	}
	return t.Record.IsOpen, t.Record.Fields
}

func extensionForKind(k Kind) ExtendedKind {
	if k == Table {
		return DefinedTableExtension
	}
	return DefinedRecordExtension
}
