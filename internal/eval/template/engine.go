package template

import (
	"fmt"
	"maps"
	"strings"
	"sync"

	"github.com/aymerick/raymond"
)

// Keys under which RenderCase exposes the evaluation to a template
const (
	ContextKey = "ctx"
	CaseKey    = "case"
)

// raymond keeps helpers in a process-wide registry and panics on duplicates
var registerOnce sync.Once

// Engine renders Handlebars templates
type Engine struct {
	cache map[string]*raymond.Template
	mu    sync.RWMutex
}

// NewEngine creates a new template engine
func NewEngine() *Engine {
	// Register custom helpers
	registerOnce.Do(registerHelpers)

	return &Engine{
		cache: make(map[string]*raymond.Template),
	}
}

// Render renders a template with the given data
func (e *Engine) Render(templateStr string, data any) (string, error) {
	// Get or compile template
	tmpl, err := e.getTemplate(templateStr)
	if err != nil {
		return "", fmt.Errorf("failed to compile template: %w", err)
	}

	// Execute the template
	result, err := tmpl.Exec(data)
	if err != nil {
		return "", fmt.Errorf("template execution failed: %w", err)
	}

	return result, nil
}

// RenderCase renders a result template for a committed case. The context keys
// are available at the top level and again under ctx; the case key is
// available as case. A context key named ctx or case is only reachable at
// the top level through those reserved names.
func (e *Engine) RenderCase(templateStr string, ctx map[string]any, caseKey string) (string, error) {
	data := make(map[string]any, len(ctx)+2)
	maps.Copy(data, ctx)
	data[ContextKey] = ctx
	data[CaseKey] = caseKey

	return e.Render(templateStr, data)
}

// getTemplate gets a compiled template from cache or compiles it
func (e *Engine) getTemplate(templateStr string) (*raymond.Template, error) {
	// Check cache first (read lock)
	e.mu.RLock()
	if tmpl, ok := e.cache[templateStr]; ok {
		e.mu.RUnlock()
		return tmpl, nil
	}
	e.mu.RUnlock()

	// Compile the template (write lock)
	e.mu.Lock()
	defer e.mu.Unlock()

	// Check again in case another goroutine compiled it
	if tmpl, ok := e.cache[templateStr]; ok {
		return tmpl, nil
	}

	// Parse and compile the template
	tmpl, err := raymond.Parse(templateStr)
	if err != nil {
		return nil, fmt.Errorf("parse error: %w", err)
	}

	// Cache the template
	e.cache[templateStr] = tmpl

	return tmpl, nil
}

// ValidateTemplate validates a template without rendering it
func (e *Engine) ValidateTemplate(templateStr string) error {
	_, err := raymond.Parse(templateStr)
	return err
}

// ClearCache clears the compiled template cache
func (e *Engine) ClearCache() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.cache = make(map[string]*raymond.Template)
}

// registerHelpers registers custom Handlebars helpers
func registerHelpers() {
	// uppercase helper
	raymond.RegisterHelper("uppercase", func(str string) string {
		return strings.ToUpper(str)
	})

	// lowercase helper
	raymond.RegisterHelper("lowercase", func(str string) string {
		return strings.ToLower(str)
	})

	// trim helper
	raymond.RegisterHelper("trim", func(str string) string {
		return strings.TrimSpace(str)
	})

	// default helper - return default value if first arg is empty
	raymond.RegisterHelper("default", func(value any, defaultValue any) any {
		if value == nil || value == "" {
			return defaultValue
		}
		return value
	})

	// eq helper - equality comparison
	raymond.RegisterHelper("eq", func(a, b any) bool {
		return a == b
	})

	// ne helper - inequality comparison
	raymond.RegisterHelper("ne", func(a, b any) bool {
		return a != b
	})

	// gt helper - greater than (for numbers)
	raymond.RegisterHelper("gt", func(a, b float64) bool {
		return a > b
	})

	// lt helper - less than (for numbers)
	raymond.RegisterHelper("lt", func(a, b float64) bool {
		return a < b
	})

	// contains helper - check if string contains substring
	raymond.RegisterHelper("contains", func(str, substr string) bool {
		return strings.Contains(str, substr)
	})

	// join helper - join array elements with separator
	raymond.RegisterHelper("join", func(arr []any, sep string) string {
		strs := make([]string, len(arr))
		for i, v := range arr {
			strs[i] = fmt.Sprint(v)
		}
		return strings.Join(strs, sep)
	})

	// len helper - get length of array/string
	raymond.RegisterHelper("len", func(value any) int {
		switch v := value.(type) {
		case string:
			return len(v)
		case []any:
			return len(v)
		case map[string]any:
			return len(v)
		default:
			return 0
		}
	})
}
