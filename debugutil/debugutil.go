// Package debugutil wraps github.com/kr/pretty for the structural dumps
// used by diagnostic String() methods and test failure messages across
// this module, the way the teacher reaches for kr/pretty in its own test
// and encoding packages.
package debugutil

import "github.com/kr/pretty"

// Sdump renders v as a multi-line, field-labeled structural dump, the same
// shape kr/pretty.Sprint produces — suitable for a String() method body or
// a qt.Commentf diagnostic that needs more than a one-line %v.
func Sdump(v any) string {
	return pretty.Sprint(v)
}

// SdumpAll renders each value in vs, joined by blank lines, for dumping
// several related values (e.g. a failed assertion's got and want) in one
// call.
func SdumpAll(vs ...any) string {
	out := ""
	for i, v := range vs {
		if i > 0 {
			out += "\n\n"
		}
		out += Sdump(v)
	}
	return out
}
