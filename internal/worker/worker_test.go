package worker

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/clinassist/decision-worker/internal/catalog"
	"github.com/clinassist/decision-worker/internal/config"
	"github.com/clinassist/decision-worker/internal/eval/template"
	"github.com/clinassist/decision-worker/internal/tree"
)

func testWorker(t *testing.T) *Worker {
	t.Helper()
	cfg := &config.Config{WorkerID: "test-worker"}
	evaluator := tree.NewEvaluator(nil)
	return NewWorker(cfg, nil, evaluator, catalog.Builtin(), template.NewEngine(), zap.NewNop())
}

func TestParseWorkRequest(t *testing.T) {
	w := testWorker(t)

	tests := []struct {
		name    string
		values  map[string]interface{}
		wantErr string
	}{
		{
			name:   "valid_request",
			values: map[string]interface{}{"data": `{"request_id":"r-1","tool":"loan_decision","inputs":{"credit_score":700}}`},
		},
		{
			name:    "missing_data_field",
			values:  map[string]interface{}{"payload": "{}"},
			wantErr: "missing or invalid 'data' field",
		},
		{
			name:    "invalid_json",
			values:  map[string]interface{}{"data": "{not json"},
			wantErr: "failed to unmarshal",
		},
		{
			name:    "missing_tool",
			values:  map[string]interface{}{"data": `{"request_id":"r-1","inputs":{}}`},
			wantErr: "no tool name",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			request, err := w.parseWorkRequest(tt.values)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "r-1", request.RequestID)
			assert.Equal(t, "loan_decision", request.Tool)
			assert.Equal(t, float64(700), request.Inputs["credit_score"])
		})
	}
}

func TestProcessRequestLoanDeclined(t *testing.T) {
	w := testWorker(t)

	decision, err := w.processRequest(&WorkRequest{
		RequestID: "r-1",
		Tool:      "loan_decision",
		Inputs: map[string]any{
			"credit_score":     float64(600),
			"income":           float64(40000),
			"requested_amount": float64(9000),
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "r-1", decision.RequestID)
	assert.Equal(t, "loan_decision", decision.Tool)
	assert.Equal(t, "Declined", decision.Decision)
	assert.Equal(t, "Credit score too low", decision.Reason)
	assert.Equal(t, []string{
		"Checked credit score: 600 < 640 -> matched",
	}, decision.PathTaken)
	assert.Contains(t, decision.Report, "Decision: Declined")
	assert.False(t, decision.Timestamp.IsZero())
}

func TestProcessRequestUnknownTool(t *testing.T) {
	w := testWorker(t)

	_, err := w.processRequest(&WorkRequest{Tool: "horoscope"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown tool "horoscope"`)
}

func TestProcessRequestMissingInputs(t *testing.T) {
	w := testWorker(t)

	decision, err := w.processRequest(&WorkRequest{
		RequestID: "r-2",
		Tool:      "loan_decision",
		Inputs:    map[string]any{"credit_score": float64(700)},
	})
	require.NoError(t, err)

	assert.Equal(t, tree.ErrorDecision, decision.Decision)
	assert.Contains(t, decision.Reason, "missing required inputs")
	assert.Contains(t, decision.Reason, "income")
	assert.Contains(t, decision.Reason, "requested_amount")
	assert.Empty(t, decision.PathTaken)
}

func TestProcessRequestDerivationFailure(t *testing.T) {
	w := testWorker(t)

	decision, err := w.processRequest(&WorkRequest{
		RequestID: "r-3",
		Tool:      "loan_purpose_decision",
		Inputs: map[string]any{
			"purpose":      "yacht",
			"credit_score": float64(700),
			"country":      "US",
		},
	})
	require.NoError(t, err)

	assert.Equal(t, tree.ErrorDecision, decision.Decision)
	assert.Contains(t, decision.Reason, "yacht")
}

func TestProcessRequestDerivedEvaluation(t *testing.T) {
	w := testWorker(t)

	decision, err := w.processRequest(&WorkRequest{
		RequestID: "r-4",
		Tool:      "atrial_fibrillation_management",
		Inputs: map[string]any{
			"systolic_blood_pressure":       float64(80),
			"diastolic_blood_pressure":      float64(50),
			"heart_rate":                    float64(130),
			"decompensated_heart_failure":   false,
			"beta_blockers_contraindicated": false,
			"digoxin_contraindicated":       false,
			"amiodarone_contraindicated":    false,
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "Direct current cardioversion (1)", decision.Decision)
}

func TestProcessRequestAuthoringDefectIsFatal(t *testing.T) {
	w := testWorker(t)

	broken := &catalog.Entry{
		Name: "broken_tool",
		Inputs: []catalog.Input{
			{Name: "x", Type: "integer", Required: true},
		},
		Tree: tree.New(tree.Ask("What is x?", "x",
			tree.On(tree.Op("between", 10), tree.Outcome("Mid")),
		)),
	}
	require.NoError(t, w.catalog.Register(broken))

	_, err := w.processRequest(&WorkRequest{
		RequestID: "r-5",
		Tool:      "broken_tool",
		Inputs:    map[string]any{"x": float64(5)},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "evaluation failed")
}
