package types_test

import (
	"testing"

	"github.com/go-quicktest/qt"

	"github.com/flowlang/inspect/types"
)

func recordOf(fields map[string]types.Type, open bool) types.Type {
	return types.Type{
		Kind:     types.Record,
		Extended: types.DefinedRecordExtension,
		Record:   &types.RecordInfo{Fields: fields, IsOpen: open},
	}
}

func TestMergeRightWinsOnCollision(t *testing.T) {
	left := recordOf(map[string]types.Type{"a": types.Primitive(types.Number, false)}, false)
	right := recordOf(map[string]types.Type{"a": types.Primitive(types.Text, false), "b": types.Primitive(types.Logical, false)}, false)

	merged := types.Merge(left, right)
	qt.Assert(t, qt.IsTrue(types.Equal(merged.Record.Fields["a"], types.Primitive(types.Text, false))))
	qt.Assert(t, qt.IsTrue(types.Equal(merged.Record.Fields["b"], types.Primitive(types.Logical, false))))
}

func TestMergeOpennessIsDisjunction(t *testing.T) {
	left := recordOf(nil, true)
	right := recordOf(nil, false)
	merged := types.Merge(left, right)
	qt.Assert(t, qt.IsTrue(merged.Record.IsOpen))
}

func TestMergeBothPrimitiveStaysPrimitive(t *testing.T) {
	left := types.Primitive(types.Record, false)
	right := types.Primitive(types.Record, true)
	merged := types.Merge(left, right)
	qt.Assert(t, qt.Equals(merged.Extended, types.NoExtension))
	qt.Assert(t, qt.IsTrue(merged.IsNullable))
}

func TestSelectMissingKeyOptionalIsNull(t *testing.T) {
	r := recordOf(map[string]types.Type{"a": types.Primitive(types.Number, false)}, false)
	got := types.Select(r, "missing", true)
	qt.Assert(t, qt.IsTrue(types.Equal(got, types.Primitive(types.Null, true))))
}

func TestSelectMissingKeyRequiredIsNone(t *testing.T) {
	r := recordOf(map[string]types.Type{"a": types.Primitive(types.Number, false)}, false)
	got := types.Select(r, "missing", false)
	qt.Assert(t, qt.IsTrue(types.Equal(got, types.Primitive(types.None, false))))
}

func TestSelectAgainstOpenRecordIsAny(t *testing.T) {
	r := recordOf(nil, true)
	got := types.Select(r, "whatever", false)
	qt.Assert(t, qt.IsTrue(types.Equal(got, types.Primitive(types.Any, true))))
}

func TestProjectFromAnyYieldsRecordTableUnion(t *testing.T) {
	got := types.Project(types.Primitive(types.Any, true), []string{"a"})
	qt.Assert(t, qt.Equals(got.Extended, types.AnyUnionExtension))
	qt.Assert(t, qt.Equals(len(got.Union), 2))
}
