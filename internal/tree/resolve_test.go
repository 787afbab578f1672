package tree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveDeclaredVariable(t *testing.T) {
	q := Ask("What is your credit score?", "credit_score")

	value, subject, err := resolveInput(q, Inputs{"credit_score": 720}, false)
	require.NoError(t, err)
	assert.Equal(t, 720, value)
	assert.Equal(t, "credit score", subject)
}

func TestResolveDeclaredVariableMissing(t *testing.T) {
	q := Ask("What is your credit score?", "credit_score")

	// A declared binding never falls back to the heuristic.
	_, _, err := resolveInput(q, Inputs{"score": 720}, true)
	require.Error(t, err)

	var ie *InputError
	require.ErrorAs(t, err, &ie)
}

func TestResolveHeuristicDisabledByDefault(t *testing.T) {
	q := Ask("What is your credit score?", "")

	_, _, err := resolveInput(q, Inputs{"credit_score": 720}, false)
	require.Error(t, err)

	var ie *InputError
	require.ErrorAs(t, err, &ie)
}

func TestResolveHeuristicSubstring(t *testing.T) {
	q := Ask("What is your credit score?", "")

	value, subject, err := resolveInput(q, Inputs{
		"credit_score": 720,
		"income":       50000,
	}, true)
	require.NoError(t, err)
	assert.Equal(t, 720, value)
	assert.Equal(t, "credit score", subject)
}

func TestResolveHeuristicAmbiguityIsDeterministic(t *testing.T) {
	// Both names occur in the question text; sorted order picks "score".
	q := Ask("What is the score of the credit score check?", "")
	inputs := Inputs{"score": 1, "credit_score": 2}

	for i := 0; i < 10; i++ {
		value, subject, err := resolveInput(q, inputs, true)
		require.NoError(t, err)
		assert.Equal(t, 2, value)
		assert.Equal(t, "credit score", subject)
	}
}

func TestResolveHeuristicNoMatch(t *testing.T) {
	q := Ask("What is the requested loan amount?", "")

	_, _, err := resolveInput(q, Inputs{"income": 50000}, true)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "could not be answered")
}
