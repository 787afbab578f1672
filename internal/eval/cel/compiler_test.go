package cel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompilePredicate(t *testing.T) {
	c := NewCompiler()

	tests := []struct {
		name  string
		expr  string
		value any
		want  bool
	}{
		{"numeric_comparison_true", "value > 10.0", 12.5, true},
		{"numeric_comparison_false", "value > 10.0", 9.5, false},
		{"string_method", "value.startsWith('AV')", "AV Block", true},
		{"compound_expression", "value >= 130.0 && value < 140.0", 135.0, true},
		{"compound_expression_boundary", "value >= 130.0 && value < 140.0", 140.0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			predicate, err := c.CompilePredicate(tt.expr)
			require.NoError(t, err)

			got, err := predicate(tt.value)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCompilePredicateParseError(t *testing.T) {
	c := NewCompiler()

	_, err := c.CompilePredicate("value >")
	assert.Error(t, err)
}

func TestPredicateNonBooleanResult(t *testing.T) {
	c := NewCompiler()

	predicate, err := c.CompilePredicate("value + 1")
	require.NoError(t, err)

	_, err = predicate(5)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "did not return a boolean")
}

func TestPredicateEvaluationError(t *testing.T) {
	c := NewCompiler()

	// A type mismatch at evaluation is fatal, not a no-match.
	predicate, err := c.CompilePredicate("value.startsWith('x')")
	require.NoError(t, err)

	_, err = predicate(42)
	assert.Error(t, err)
}

func TestProgramCache(t *testing.T) {
	c := NewCompiler()

	first, err := c.CompilePredicate("value > 1.0")
	require.NoError(t, err)
	second, err := c.CompilePredicate("value > 1.0")
	require.NoError(t, err)

	// Both predicates share one cached program.
	assert.Len(t, c.cache, 1)

	got, err := first(2.0)
	require.NoError(t, err)
	assert.True(t, got)
	got, err = second(0.5)
	require.NoError(t, err)
	assert.False(t, got)

	c.ClearCache()
	assert.Len(t, c.cache, 0)
}

func TestValidateExpression(t *testing.T) {
	c := NewCompiler()

	assert.NoError(t, c.ValidateExpression("value == 'gold'"))
	assert.Error(t, c.ValidateExpression("value =="))
}
