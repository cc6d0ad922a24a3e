package matcher

// Forward runs delegate in a branch: a new context layer seeded with a copy
// of the current context, sharing this Matcher's case slot. Context changes
// made by the branch are discarded when it returns unless the branch calls
// Unwrap. Forward does nothing once a case has been committed.
func (m *Matcher[K]) Forward(delegate Delegate[K]) *Matcher[K] {
	if m.cell.done || delegate == nil {
		return m
	}

	m.stack.push(nil)
	branch := newScope(m.stack, m.cell, m.stack.top(), m.logger)

	delegate(branch)

	final := m.stack.pop(nil)
	branch.detach(final)
	return m
}

// Unwrap promotes this scope's context to its parent and returns it.
//
// merge, when non-nil, receives the scope's current context and the parent's
// context as they are at the time of the call, and its result is what gets
// promoted. At the root there is no parent layer: the result is only returned,
// and merge receives the context originally passed to New as the parent.
func (m *Matcher[K]) Unwrap(merge MergeFunc) Context {
	current := m.Context()

	parent := m.stack.root
	if m.layer > 0 {
		parent = m.stack.at(m.layer - 1)
	}

	promoted := current
	if merge != nil {
		promoted = merge(current, parent)
	}
	// A nil merge result is promoted as an empty context
	if promoted == nil {
		promoted = Context{}
	}

	if m.layer > 0 {
		m.stack.replace(m.layer-1, promoted)
	}
	return promoted
}

// detach moves a finished branch onto a private stack holding its final
// context so that later calls on it cannot reach layers it no longer owns.
func (m *Matcher[K]) detach(final Context) {
	m.stack = newContextStack(final)
	m.layer = 0
}
