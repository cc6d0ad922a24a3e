package template

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEngine_Render(t *testing.T) {
	engine := NewEngine()

	tests := []struct {
		name string
		tmpl string
		data map[string]any
		want string
	}{
		{name: "plain field", tmpl: "Hello {{name}}", data: map[string]any{"name": "ada"}, want: "Hello ada"},
		{name: "uppercase", tmpl: "{{uppercase name}}", data: map[string]any{"name": "ada"}, want: "ADA"},
		{name: "lowercase", tmpl: "{{lowercase name}}", data: map[string]any{"name": "ADA"}, want: "ada"},
		{name: "trim", tmpl: "[{{trim name}}]", data: map[string]any{"name": "  ada "}, want: "[ada]"},
		{name: "default on empty", tmpl: "{{default owner \"none\"}}", data: map[string]any{"owner": ""}, want: "none"},
		{name: "default keeps value", tmpl: "{{default owner \"none\"}}", data: map[string]any{"owner": "bob"}, want: "bob"},
		{name: "eq in if", tmpl: "{{#if (eq status \"open\")}}yes{{else}}no{{/if}}", data: map[string]any{"status": "open"}, want: "yes"},
		{name: "join", tmpl: "{{join tags \", \"}}", data: map[string]any{"tags": []any{"a", "b"}}, want: "a, b"},
		{name: "len", tmpl: "{{len tags}}", data: map[string]any{"tags": []any{"a", "b", "c"}}, want: "3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := engine.Render(tt.tmpl, tt.data)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEngine_RenderCase(t *testing.T) {
	engine := NewEngine()
	ctx := map[string]any{"customer": "ada", "priority": "high"}

	got, err := engine.RenderCase("{{case}}: {{customer}} ({{uppercase ctx.priority}})", ctx, "escalate")
	require.NoError(t, err)
	assert.Equal(t, "escalate: ada (HIGH)", got)
	assert.Len(t, ctx, 2, "RenderCase must not modify the context")
}

func TestEngine_RenderCase_ReservedKeys(t *testing.T) {
	engine := NewEngine()

	got, err := engine.RenderCase("{{case}}", map[string]any{"case": "shadowed"}, "winner")
	require.NoError(t, err)
	assert.Equal(t, "winner", got)
}

func TestEngine_ParseError(t *testing.T) {
	engine := NewEngine()

	_, err := engine.Render("{{#if}}", nil)
	assert.ErrorContains(t, err, "failed to compile template")
	assert.Error(t, engine.ValidateTemplate("{{#each items}}"))
	assert.NoError(t, engine.ValidateTemplate("{{name}}"))
}

func TestEngine_MultipleInstances(t *testing.T) {
	first := NewEngine()
	second := NewEngine()

	a, err := first.Render("{{uppercase x}}", map[string]any{"x": "a"})
	require.NoError(t, err)
	b, err := second.Render("{{uppercase x}}", map[string]any{"x": "b"})
	require.NoError(t, err)

	assert.Equal(t, "A", a)
	assert.Equal(t, "B", b)
}

func TestEngine_Cache(t *testing.T) {
	engine := NewEngine()

	_, err := engine.Render("{{a}}", map[string]any{"a": 1})
	require.NoError(t, err)
	_, err = engine.Render("{{a}}", map[string]any{"a": 2})
	require.NoError(t, err)
	assert.Len(t, engine.cache, 1)

	engine.ClearCache()
	assert.Empty(t, engine.cache)
}
