package template

import (
	"fmt"
	"strings"
	"sync"

	"github.com/aymerick/raymond"

	"github.com/clinassist/decision-worker/internal/tree"
)

// DefaultReport is the built-in audit-report template applied to evaluation
// results when no override is configured. Raw placeholders keep comparison
// symbols in trace entries from being HTML-escaped.
const DefaultReport = `Decision: {{{decision}}}
Reason: {{{reason}}}
{{#if path_taken}}Checks performed:
{{#each path_taken}}{{inc @index}}. {{{this}}}
{{/each}}{{else}}No checks were performed.
{{/if}}`

// Engine renders Handlebars templates for decision reports.
type Engine struct {
	cache map[string]*raymond.Template
	mu    sync.RWMutex
}

// helpersOnce guards helper registration; raymond keeps helpers in a global
// table and rejects duplicates.
var helpersOnce sync.Once

// NewEngine creates a new template engine.
func NewEngine() *Engine {
	helpersOnce.Do(registerHelpers)

	return &Engine{
		cache: make(map[string]*raymond.Template),
	}
}

// RenderResult renders an evaluation result into a report. An empty
// template string selects DefaultReport.
func (e *Engine) RenderResult(templateStr string, result *tree.Result) (string, error) {
	if templateStr == "" {
		templateStr = DefaultReport
	}
	return e.Render(templateStr, map[string]interface{}{
		"decision":   result.Decision,
		"reason":     result.Reason,
		"path_taken": result.PathTaken,
	})
}

// Render renders a template with the given data.
func (e *Engine) Render(templateStr string, data interface{}) (string, error) {
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

// getTemplate gets a compiled template from cache or compiles it.
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

	tmpl, err := raymond.Parse(templateStr)
	if err != nil {
		return nil, fmt.Errorf("parse error: %w", err)
	}

	e.cache[templateStr] = tmpl

	return tmpl, nil
}

// ValidateTemplate validates a template without rendering it.
func (e *Engine) ValidateTemplate(templateStr string) error {
	_, err := raymond.Parse(templateStr)
	return err
}

// ClearCache clears the compiled template cache.
func (e *Engine) ClearCache() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.cache = make(map[string]*raymond.Template)
}

// registerHelpers registers custom Handlebars helpers.
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
	raymond.RegisterHelper("default", func(value interface{}, defaultValue interface{}) interface{} {
		if value == nil || value == "" {
			return defaultValue
		}
		return value
	})

	// inc helper - 1-based numbering for check lists
	raymond.RegisterHelper("inc", func(i int) int {
		return i + 1
	})

	// join helper - join path entries with separator
	raymond.RegisterHelper("join", func(arr []string, sep string) string {
		return strings.Join(arr, sep)
	})

	// len helper - get length of array/string
	raymond.RegisterHelper("len", func(value interface{}) int {
		switch v := value.(type) {
		case string:
			return len(v)
		case []string:
			return len(v)
		case []interface{}:
			return len(v)
		case map[string]interface{}:
			return len(v)
		default:
			return 0
		}
	})
}
