package inspecterr_test

import (
	"errors"
	"testing"

	"github.com/go-quicktest/qt"

	"github.com/flowlang/inspect/inspecterr"
	"github.com/flowlang/inspect/token"
)

func TestInvariantFormatsMessage(t *testing.T) {
	err := inspecterr.Invariant(token.Position{LineNumber: 2, LineCodeUnit: 5}, "missing %s", "entry")
	qt.Assert(t, qt.Equals(err.Code, inspecterr.InvariantViolation))
	qt.Assert(t, qt.Equals(err.Message, "missing entry"))
	qt.Assert(t, qt.Not(qt.Equals(err.Correlation.String(), "")))
}

func TestWrapUnwraps(t *testing.T) {
	cause := errors.New("boom")
	err := inspecterr.Wrap(inspecterr.MalformedInput, token.Position{}, "wrapped", cause)
	qt.Assert(t, qt.ErrorIs(err, cause))
}

func TestCodeString(t *testing.T) {
	qt.Assert(t, qt.Equals(inspecterr.UnknownOperator.String(), "UnknownOperator"))
	qt.Assert(t, qt.Equals(inspecterr.UnknownFormat.String(), "UnknownFormat"))
}

func TestNilErrorString(t *testing.T) {
	var err *inspecterr.Error
	qt.Assert(t, qt.Equals(err.Error(), "<nil>"))
}
