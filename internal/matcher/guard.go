package matcher

// Guard is the condition attached to a candidate case.
//
// The set of guards is closed: Bool, Predicate and Pattern. GuardOf converts
// loosely typed values into one of them.
type Guard interface {
	matches(ctx Context) bool
	kind() string
}

// Comparator is a pattern leaf that decides for itself whether a context
// value is acceptable.
type Comparator interface {
	Test(value any) bool
}

// Bool is a constant guard.
type Bool bool

func (b Bool) matches(Context) bool { return bool(b) }
func (Bool) kind() string          { return "bool" }

// Predicate is a guard computed from the current context.
// A nil Predicate never matches.
type Predicate func(ctx Context) bool

func (p Predicate) matches(ctx Context) bool {
	return p != nil && p(ctx)
}

func (Predicate) kind() string { return "predicate" }

// Pattern is a structural guard. Every declared key must be present in the
// context and its value must match the leaf:
//   - a Comparator leaf passes when Test accepts the context value
//   - a nested Pattern leaf matches a nested record recursively
//   - any other leaf must be identical to the context value (see sameValue)
//
// A nil Pattern never matches; an empty Pattern always matches.
type Pattern map[string]any

func (p Pattern) matches(ctx Context) bool {
	if p == nil {
		return false
	}

	for key, want := range p {
		got, ok := ctx[key]
		if !ok {
			return false
		}
		if !leafMatches(want, got) {
			return false
		}
	}
	return true
}

func (Pattern) kind() string { return "pattern" }

type never struct{}

func (never) matches(Context) bool { return false }
func (never) kind() string         { return "never" }

// GuardOf converts a value of unknown shape into a Guard. Shapes are tried
// in order: Guard, bool, predicate function, record. nil is treated as a nil
// pattern and, like any unrecognised shape, never matches.
func GuardOf(value any) Guard {
	switch g := value.(type) {
	case Guard:
		return g
	case bool:
		return Bool(g)
	case func(Context) bool:
		return Predicate(g)
	case func(map[string]any) bool:
		return Predicate(func(ctx Context) bool { return g(ctx) })
	case Context:
		return Pattern(g)
	case map[string]any:
		return Pattern(g)
	case nil:
		return Pattern(nil)
	default:
		return never{}
	}
}

func leafMatches(want, got any) bool {
	switch leaf := want.(type) {
	case Comparator:
		return leaf.Test(got)
	case Pattern:
		nested, ok := asContext(got)
		return ok && leaf.matches(nested)
	}
	return sameValue(want, got)
}

func asContext(value any) (Context, bool) {
	switch record := value.(type) {
	case Context:
		return record, record != nil
	case map[string]any:
		return Context(record), record != nil
	default:
		return nil, false
	}
}
