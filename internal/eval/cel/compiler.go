package cel

import (
	"fmt"
	"sync"

	"github.com/google/cel-go/cel"
	"github.com/google/cel-go/checker/decls"

	"github.com/clinassist/decision-worker/internal/tree"
)

// Compiler compiles CEL predicate expressions into decision-tree branch
// predicates. Expressions see a single dynamic variable named "value", the
// resolved input under test.
type Compiler struct {
	env   *cel.Env
	cache map[string]cel.Program
	mu    sync.RWMutex
}

// NewCompiler creates a new CEL predicate compiler.
func NewCompiler() *Compiler {
	env, err := cel.NewEnv(
		cel.Declarations(
			decls.NewVar("value", decls.Dyn),
		),
	)
	if err != nil {
		panic(fmt.Sprintf("failed to create CEL environment: %v", err))
	}

	return &Compiler{
		env:   env,
		cache: make(map[string]cel.Program),
	}
}

// CompilePredicate compiles an expression into a predicate. The returned
// predicate errors when the expression fails at evaluation or does not
// produce a boolean; those errors are fatal to the evaluation that hits
// them.
func (c *Compiler) CompilePredicate(expr string) (tree.Predicate, error) {
	program, err := c.getProgram(expr)
	if err != nil {
		return nil, fmt.Errorf("failed to compile expression: %w", err)
	}

	return func(value any) (bool, error) {
		out, _, err := program.Eval(map[string]interface{}{"value": value})
		if err != nil {
			return false, fmt.Errorf("evaluation failed: %w", err)
		}
		matched, ok := out.Value().(bool)
		if !ok {
			return false, fmt.Errorf("expression %q did not return a boolean", expr)
		}
		return matched, nil
	}, nil
}

// getProgram gets a compiled program from cache or compiles it.
func (c *Compiler) getProgram(expr string) (cel.Program, error) {
	// Check cache first (read lock)
	c.mu.RLock()
	if program, ok := c.cache[expr]; ok {
		c.mu.RUnlock()
		return program, nil
	}
	c.mu.RUnlock()

	// Compile the expression (write lock)
	c.mu.Lock()
	defer c.mu.Unlock()

	// Check again in case another goroutine compiled it
	if program, ok := c.cache[expr]; ok {
		return program, nil
	}

	ast, issues := c.env.Compile(expr)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("parse error: %w", issues.Err())
	}

	program, err := c.env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("program generation error: %w", err)
	}

	c.cache[expr] = program

	return program, nil
}

// ValidateExpression validates an expression without building a predicate.
func (c *Compiler) ValidateExpression(expr string) error {
	ast, issues := c.env.Compile(expr)
	if issues != nil && issues.Err() != nil {
		return issues.Err()
	}
	_ = ast
	return nil
}

// ClearCache clears the compiled program cache.
func (c *Compiler) ClearCache() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cache = make(map[string]cel.Program)
}
