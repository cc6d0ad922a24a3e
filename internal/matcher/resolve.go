package matcher

// Resolver computes a result for a committed case from the context that was
// current when resolution happened.
type Resolver[K comparable, V any] func(ctx Context, key K) V

// Value lifts a constant into a Resolver.
func Value[K comparable, V any](v V) Resolver[K, V] {
	return func(Context, K) V { return v }
}

// Resolve returns the committed case key. ok is false when nothing matched
// and no Otherwise was declared.
func (m *Matcher[K]) Resolve() (key K, ok bool) {
	return m.cell.key, m.cell.done
}

// ResolveValue returns results[key] for the committed key. ok is false when
// nothing was committed or the key has no entry.
func ResolveValue[K comparable, V any](m *Matcher[K], results map[K]V) (V, bool) {
	key, ok := m.Resolve()
	if !ok {
		var zero V
		return zero, false
	}
	v, ok := results[key]
	return v, ok
}

// ResolveValueOr returns results[key] for the committed key, or fallback when
// nothing was committed or the entry is missing or falsy.
func ResolveValueOr[K comparable, V any](m *Matcher[K], results map[K]V, fallback V) V {
	key, ok := m.Resolve()
	if !ok {
		return fallback
	}
	if v, ok := results[key]; ok && truthy(v) {
		return v
	}
	return fallback
}

// ResolveWith invokes the resolver registered for the committed key with the
// current context. ok is false when nothing was committed or no resolver is
// registered for the key.
func ResolveWith[K comparable, V any](m *Matcher[K], resolvers map[K]Resolver[K, V]) (V, bool) {
	key, ok := m.Resolve()
	if !ok {
		var zero V
		return zero, false
	}
	resolver := resolvers[key]
	if resolver == nil {
		var zero V
		return zero, false
	}
	return resolver(m.Context(), key), true
}

// ResolveWithOr is ResolveWith with a fallback resolver, invoked the same
// way when nothing was committed or no resolver is registered for the key.
// When nothing was committed the fallback receives the zero key.
func ResolveWithOr[K comparable, V any](m *Matcher[K], resolvers map[K]Resolver[K, V], fallback Resolver[K, V]) V {
	key, ok := m.Resolve()
	if ok {
		if resolver := resolvers[key]; resolver != nil {
			return resolver(m.Context(), key)
		}
	}
	if fallback == nil {
		var zero V
		return zero
	}
	return fallback(m.Context(), key)
}
