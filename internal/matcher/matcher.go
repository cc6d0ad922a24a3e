package matcher

import (
	"go.uber.org/zap"
)

// Context is the structured value a Matcher evaluates. The engine never
// modifies a Context it was given; extensions produce new maps.
type Context map[string]any

// Delegate is the body of a branch. It receives a Matcher scoped to the
// branch's own context layer.
type Delegate[K comparable] func(branch *Matcher[K])

// Option configures a Matcher.
type Option func(*options)

type options struct {
	logger *zap.Logger
}

// WithLogger sets the logger used to report commitments at debug level.
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// resolution is the write-once case slot shared by a Matcher and all of
// its branches.
type resolution[K comparable] struct {
	key  K
	done bool
}

func (r *resolution[K]) commit(key K) bool {
	if r.done {
		return false
	}
	r.key = key
	r.done = true
	return true
}

// Matcher is a first-match-wins decision evaluator.
//
// Methods that declare cases or change the context return the receiver so
// calls can be chained; Resolve and Unwrap end a chain. A Matcher is not safe
// for concurrent use.
type Matcher[K comparable] struct {
	stack  *contextStack
	cell   *resolution[K]
	layer  int
	logger *zap.Logger
}

// New creates a Matcher over initial. A nil context is treated as empty.
func New[K comparable](initial Context, opts ...Option) *Matcher[K] {
	o := options{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}

	return newScope(newContextStack(initial), &resolution[K]{}, 0, o.logger)
}

// newScope builds a Matcher view over a shared resolution cell and one layer
// of a context stack.
func newScope[K comparable](stack *contextStack, cell *resolution[K], layer int, logger *zap.Logger) *Matcher[K] {
	return &Matcher[K]{
		stack:  stack,
		cell:   cell,
		layer:  layer,
		logger: logger,
	}
}

// Context returns the context of this scope. The returned map must not be
// modified.
func (m *Matcher[K]) Context() Context {
	return m.stack.at(m.layer)
}

// Resolved reports whether a case has been committed.
func (m *Matcher[K]) Resolved() bool {
	return m.cell.done
}

// WithContext merges delta over the current context; keys in delta win.
// A nil delta leaves the context unchanged.
func (m *Matcher[K]) WithContext(delta Context) *Matcher[K] {
	m.stack.extend(m.layer, delta)
	return m
}

// MapContext replaces the current context with mapper's result.
func (m *Matcher[K]) MapContext(mapper func(Context) Context) *Matcher[K] {
	if mapper == nil {
		return m
	}
	m.stack.replace(m.layer, mapper(m.Context()))
	return m
}

func (m *Matcher[K]) commit(key K, guard string) {
	if !m.cell.commit(key) {
		return
	}
	m.logger.Debug("case committed",
		zap.Any("case", key),
		zap.String("guard", guard),
		zap.Int("layer", m.layer),
	)
}
