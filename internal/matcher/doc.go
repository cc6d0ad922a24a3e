// Package matcher implements a fluent, first-match-wins decision evaluator.
//
// A Matcher holds a context (a map of arbitrary values) and an ordered chain
// of candidate cases. Each case is guarded by a Bool, a Predicate over the
// context, or a structural Pattern; the first guard that succeeds commits its
// case key and every later declaration becomes a no-op. Otherwise supplies
// the default.
//
//	decision, ok := matcher.New[string](matcher.Context{"kind": "bug", "severity": 8}).
//	    MatchCase(matcher.Pattern{"kind": "feature"}, "roadmap").
//	    MatchCase(matcher.Pattern{
//	        "kind":     "bug",
//	        "severity": matcher.Number(compare.NumberOptions{Min: compare.Bound(7)}),
//	    }, "hotfix").
//	    Otherwise("backlog").
//	    Resolve()
//	// decision == "hotfix", ok == true
//
// Pattern leaves are compared with identity semantics: NaN equals itself,
// +0 and -0 differ, numbers compare across Go numeric kinds, maps and slices
// compare by reference. Leaves implementing Comparator are tested instead,
// and nested Patterns match nested records.
//
// Branches:
//
// Forward and MatchBranch run a Delegate against a branch scope. The branch
// gets its own copy of the context but shares the case slot, so a case
// committed inside a branch is the decision of the whole evaluation. Context
// changes made in a branch are discarded unless the branch calls Unwrap:
//
//	m := matcher.New[string](matcher.Context{"type": "ticket", "queue": "billing"})
//	m.MatchBranch(matcher.Pattern{"type": "ticket"}, func(b *matcher.Matcher[string]) {
//	    b.WithContext(matcher.Context{"tier": 2}).
//	        MatchCase(matcher.Pattern{"queue": "billing"}, "billing-t2").
//	        Unwrap(nil) // the parent now sees tier=2
//	})
//
// Resolution:
//
// Resolve returns the committed key. ResolveValue, ResolveValueOr, ResolveWith
// and ResolveWithOr map the key to a value, either a constant or computed by
// a Resolver from the context and the key.
//
// The engine never returns errors: nil patterns, zero selector results and
// unmatched chains are ordinary non-matching inputs.
package matcher
