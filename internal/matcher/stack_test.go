package matcher

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContextStack_Root(t *testing.T) {
	s := newContextStack(nil)

	require.Equal(t, 1, s.depth())
	assert.NotNil(t, s.current())
	assert.Empty(t, s.current())
}

func TestContextStack_ExtendAndReplace(t *testing.T) {
	initial := Context{"a": 1}
	s := newContextStack(initial)

	s.extend(0, Context{"b": 2})
	assert.Equal(t, Context{"a": 1, "b": 2}, s.current())
	assert.Equal(t, Context{"a": 1}, initial)

	s.extend(0, nil)
	assert.Equal(t, Context{"a": 1, "b": 2}, s.current())

	s.replace(0, Context{"c": 3})
	assert.Equal(t, Context{"c": 3}, s.current())

	s.replace(0, nil)
	assert.Equal(t, Context{}, s.current())
}

func TestContextStack_PushPop(t *testing.T) {
	s := newContextStack(Context{"a": 1})

	idx := s.push(nil)
	require.Equal(t, 1, idx)
	assert.Equal(t, Context{"a": 1}, s.current())

	s.extend(idx, Context{"a": 2})
	assert.Equal(t, Context{"a": 1}, s.at(0), "parent layer must not change while branch extends")

	removed := s.pop(nil)
	assert.Equal(t, Context{"a": 2}, removed)
	assert.Equal(t, Context{"a": 1}, s.current())
	assert.Equal(t, 1, s.depth())
}

func TestContextStack_PushSeeded(t *testing.T) {
	s := newContextStack(Context{"a": 1})

	s.push(Context{"z": 26})
	assert.Equal(t, Context{"z": 26}, s.current())
}

func TestContextStack_PopWithMerge(t *testing.T) {
	s := newContextStack(Context{"a": 1})
	s.push(Context{"b": 2})

	s.pop(func(current, parent Context) Context {
		assert.Equal(t, Context{"b": 2}, current)
		assert.Equal(t, Context{"a": 1}, parent)
		return Context{"a": parent["a"], "b": current["b"]}
	})

	assert.Equal(t, Context{"a": 1, "b": 2}, s.current())
}

func TestContextStack_PopRootIsNoop(t *testing.T) {
	s := newContextStack(Context{"a": 1})

	got := s.pop(func(Context, Context) Context {
		t.Fatal("merge must not run when popping the root")
		return nil
	})

	assert.Equal(t, Context{"a": 1}, got)
	assert.Equal(t, 1, s.depth())
}

func TestContextStack_AtClampsToTop(t *testing.T) {
	s := newContextStack(Context{"a": 1})

	assert.Equal(t, Context{"a": 1}, s.at(5))

	s.extend(5, Context{"b": 2})
	s.replace(5, Context{"c": 3})
	assert.Equal(t, Context{"a": 1}, s.current())
}
