package types

// Select implements field-selector semantics ([a=1][a]), per spec.md
// §4.4's "Field selection". source is the type being indexed; key is the
// field name; optional marks a `?`-suffixed selector.
func Select(source Type, key string, optional bool) Type {
	if source.Record == nil {
		// Open/primitive record: any field is conceivably present.
		if optional {
			return Primitive(Null, true)
		}
		return Primitive(Any, true)
	}
	if t, ok := source.Record.Fields[key]; ok {
		return t
	}
	if source.Record.IsOpen {
		if optional {
			return Primitive(Null, true)
		}
		return Primitive(Any, true)
	}
	if optional {
		return Primitive(Null, true)
	}
	return Primitive(None, false)
}

// Project implements field-projection semantics ([[a, b]]): a new
// DefinedRecord/DefinedTable containing only the selected keys. Projecting
// from an unrefined Any yields the union of both possible shapes, since
// the caller cannot know at this point whether the projected value will
// behave as a record or a table.
func Project(source Type, keys []string) Type {
	if source.Kind == Any && source.Record == nil {
		return AnyUnion(
			projectInto(Record, keys, nil),
			projectInto(Table, keys, nil),
		)
	}
	var fields map[string]Type
	if source.Record != nil {
		fields = source.Record.Fields
	}
	return projectInto(source.Kind, keys, fields)
}

func projectInto(kind Kind, keys []string, fields map[string]Type) Type {
	selected := make(map[string]Type, len(keys))
	for _, key := range keys {
		if t, ok := fields[key]; ok {
			selected[key] = t
		} else {
			selected[key] = Primitive(Any, true)
		}
	}
	return Type{
		Kind:     kind,
		Extended: extensionForKind(kind),
		Record:   &RecordInfo{Fields: selected, IsOpen: false},
	}
}
