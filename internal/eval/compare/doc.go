// Package compare provides value comparators used as pattern leaves.
//
// A comparator exposes a single Test(value) bool method. Two are built in:
//
//	n, err := compare.NewNumber(compare.NumberOptions{Min: compare.Bound(37), Integer: true})
//	n.Test(42)   // true
//	n.Test(36.5) // false
//
//	s, err := compare.NewString(compare.StringOptions{MaxLen: compare.Length(8), Pattern: "^[a-z]+$"})
//	s.Test("router") // true
//	s.Test(42)       // false, not a string
//
// Options are checked when the comparator is built; Test never fails and
// simply rejects values of the wrong kind.
package compare
