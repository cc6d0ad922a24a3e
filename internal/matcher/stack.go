package matcher

import "maps"

// MergeFunc combines a branch context with its parent when the branch is
// promoted. The returned context becomes the parent's new context.
type MergeFunc func(current, parent Context) Context

// contextStack owns the context layers of one evaluation.
//
// Layer 0 is the root (the caller-supplied context, or an empty one); every
// active branch adds one layer above it. Layers are never mutated in place:
// extend and replace store new maps, so a context handed out earlier keeps
// its contents.
type contextStack struct {
	root   Context
	layers []Context
}

// newContextStack creates a stack holding a single root layer
func newContextStack(initial Context) *contextStack {
	if initial == nil {
		initial = Context{}
	}
	return &contextStack{
		root:   initial,
		layers: []Context{initial},
	}
}

// depth returns the number of layers
func (s *contextStack) depth() int {
	return len(s.layers)
}

// top returns the index of the topmost layer
func (s *contextStack) top() int {
	return len(s.layers) - 1
}

// current returns the topmost layer
func (s *contextStack) current() Context {
	return s.layers[s.top()]
}

// at returns layer i, clamped to the top of the stack
func (s *contextStack) at(i int) Context {
	if i > s.top() {
		i = s.top()
	}
	return s.layers[i]
}

// extend merges delta over layer i. Keys in delta win; a nil delta is a no-op.
func (s *contextStack) extend(i int, delta Context) {
	if delta == nil || i > s.top() {
		return
	}
	merged := make(Context, len(s.layers[i])+len(delta))
	maps.Copy(merged, s.layers[i])
	maps.Copy(merged, delta)
	s.layers[i] = merged
}

// replace stores next verbatim as layer i. A nil context is stored as empty.
func (s *contextStack) replace(i int, next Context) {
	if i > s.top() {
		return
	}
	if next == nil {
		next = Context{}
	}
	s.layers[i] = next
}

// push adds a layer seeded with initial, or with a copy of the current top
// when initial is nil. It returns the index of the new layer.
func (s *contextStack) push(initial Context) int {
	if initial == nil {
		initial = maps.Clone(s.current())
	}
	s.layers = append(s.layers, initial)
	return s.top()
}

// pop removes the top layer. When merge is non-nil it receives the removed
// layer and the newly exposed parent, and its result replaces the parent.
// The root layer is never removed.
func (s *contextStack) pop(merge MergeFunc) Context {
	if len(s.layers) == 1 {
		return s.layers[0]
	}

	removed := s.current()
	s.layers[s.top()] = nil
	s.layers = s.layers[:s.top()]

	if merge != nil {
		s.replace(s.top(), merge(removed, s.current()))
	}
	return removed
}
