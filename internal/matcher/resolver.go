package matcher

// Target is the outcome attached to a selection result: either a case key
// (To) or a branch (Via). The zero Target selects nothing.
type Target[K comparable] struct {
	key    K
	branch Delegate[K]
}

// To returns a Target committing key.
func To[K comparable](key K) Target[K] {
	return Target[K]{key: key}
}

// Via returns a Target that evaluates delegate in a nested branch.
func Via[K comparable](delegate Delegate[K]) Target[K] {
	return Target[K]{branch: delegate}
}

func (t Target[K]) empty() bool {
	return t.branch == nil && !truthy(t.key)
}

// MatchCase commits key when guard matches the current context.
// It does nothing once a case has been committed.
func (m *Matcher[K]) MatchCase(guard Guard, key K) *Matcher[K] {
	if m.cell.done || guard == nil || !guard.matches(m.Context()) {
		return m
	}
	m.commit(key, guard.kind())
	return m
}

// MatchBranch evaluates delegate in a nested branch when guard matches.
// The delegate decides whether and what to commit.
func (m *Matcher[K]) MatchBranch(guard Guard, delegate Delegate[K]) *Matcher[K] {
	if m.cell.done || guard == nil || !guard.matches(m.Context()) {
		return m
	}
	return m.Forward(delegate)
}

// SelectCase commits the selector's result as the case key, unless it is
// the zero value.
func (m *Matcher[K]) SelectCase(selector func(Context) K) *Matcher[K] {
	if m.cell.done || selector == nil {
		return m
	}

	selected := selector(m.Context())
	if !truthy(selected) {
		return m
	}
	m.commit(selected, "selector")
	return m
}

// SelectCaseIn looks the selector's result up in cases and applies the
// Target found there. Zero results, missing entries and empty targets
// commit nothing.
func (m *Matcher[K]) SelectCaseIn(selector func(Context) K, cases map[K]Target[K]) *Matcher[K] {
	if m.cell.done || selector == nil {
		return m
	}

	selected := selector(m.Context())
	if !truthy(selected) {
		return m
	}

	target, ok := cases[selected]
	if !ok || target.empty() {
		return m
	}
	if target.branch != nil {
		return m.Forward(target.branch)
	}
	m.commit(target.key, "selector")
	return m
}

// Otherwise commits key if no case has been committed yet.
func (m *Matcher[K]) Otherwise(key K) *Matcher[K] {
	m.commit(key, "otherwise")
	return m
}
