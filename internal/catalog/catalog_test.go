package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clinassist/decision-worker/internal/tree"
)

func TestBuiltinCatalog(t *testing.T) {
	c := Builtin()

	assert.Equal(t, []string{
		"loan_decision",
		"loan_purpose_decision",
		"blood_pressure_classification",
		"atrial_fibrillation_management",
		"bradycardia_diagnostic",
		"bradycardia_monitoring",
	}, c.Names())
	assert.Equal(t, 6, c.Len())

	for _, name := range c.Names() {
		entry, ok := c.Get(name)
		require.True(t, ok)
		assert.NotNil(t, entry.Tree)
		assert.NotEmpty(t, entry.Description)
		assert.NotEmpty(t, entry.Inputs)
	}
}

func TestRegisterRejectsDuplicatesAndEmptyEntries(t *testing.T) {
	c := New()

	entry := &Entry{
		Name: "demo",
		Tree: tree.New(tree.Outcome("Done")),
	}
	require.NoError(t, c.Register(entry))

	assert.Error(t, c.Register(entry))
	assert.Error(t, c.Register(nil))
	assert.Error(t, c.Register(&Entry{Name: "treeless"}))
	assert.Error(t, c.Register(&Entry{Tree: entry.Tree}))
}

func TestMissingInputs(t *testing.T) {
	entry, ok := Builtin().Get("loan_decision")
	require.True(t, ok)

	missing := entry.MissingInputs(tree.Inputs{"credit_score": 700})
	assert.Equal(t, []string{"income", "requested_amount"}, missing)

	missing = entry.MissingInputs(tree.Inputs{
		"credit_score":     700,
		"income":           60000,
		"requested_amount": 20000,
	})
	assert.Empty(t, missing)
}

func TestOptionalInputsNotRequired(t *testing.T) {
	entry, ok := Builtin().Get("bradycardia_diagnostic")
	require.True(t, ok)

	// Only "symptomatic" is required; the follow-up inputs are optional.
	missing := entry.MissingInputs(tree.Inputs{"symptomatic": false})
	assert.Empty(t, missing)
}

func TestLoanDecision(t *testing.T) {
	entry, ok := Builtin().Get("loan_decision")
	require.True(t, ok)

	e := tree.NewEvaluator(nil)

	tests := []struct {
		name     string
		inputs   tree.Inputs
		decision string
	}{
		{"declined_low_score", tree.Inputs{"credit_score": 600, "income": 80000, "requested_amount": 5000}, "Declined"},
		{"approved_strong_profile", tree.Inputs{"credit_score": 700, "income": 60000, "requested_amount": 20000}, "Approved"},
		{"approved_small_loan", tree.Inputs{"credit_score": 650, "income": 40000, "requested_amount": 10000}, "Approved"},
		{"declined_amount_too_high", tree.Inputs{"credit_score": 650, "income": 40000, "requested_amount": 10001}, "Declined"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := e.Evaluate(entry.Tree, tt.inputs)
			require.NoError(t, err)
			assert.Equal(t, tt.decision, result.Decision)
		})
	}
}

func TestLoanPurposeDecision(t *testing.T) {
	entry, ok := Builtin().Get("loan_purpose_decision")
	require.True(t, ok)

	e := tree.NewEvaluator(nil)

	prepared, err := entry.Prepare(tree.Inputs{
		"purpose":      "CAR",
		"credit_score": 650,
		"country":      "US",
	})
	require.NoError(t, err)

	result, err := e.Evaluate(entry.Tree, prepared)
	require.NoError(t, err)
	assert.Equal(t, "Approved", result.Decision)
	assert.Equal(t, "Auto loan", result.Reason)

	prepared, err = entry.Prepare(tree.Inputs{
		"purpose":      "education",
		"credit_score": 650,
		"country":      "Germany",
	})
	require.NoError(t, err)

	result, err = e.Evaluate(entry.Tree, prepared)
	require.NoError(t, err)
	assert.Equal(t, "Declined", result.Decision)
	assert.Equal(t, "Foreign study", result.Reason)
}

func TestDerivePurposeRejectsUnknownValues(t *testing.T) {
	entry, ok := Builtin().Get("loan_purpose_decision")
	require.True(t, ok)

	_, err := entry.Prepare(tree.Inputs{"purpose": "yacht"})
	assert.Error(t, err)

	_, err = entry.Prepare(tree.Inputs{"purpose": 42})
	assert.Error(t, err)
}

func TestBloodPressureClassification(t *testing.T) {
	entry, ok := Builtin().Get("blood_pressure_classification")
	require.True(t, ok)

	e := tree.NewEvaluator(nil)

	tests := []struct {
		name      string
		systolic  int
		diastolic int
		decision  string
	}{
		{"crisis_on_diastolic_alone", 110, 125, "Hypertensive crisis"},
		{"crisis_on_systolic", 185, 80, "Hypertensive crisis"},
		{"stage_2", 150, 85, "Hypertension Stage 2"},
		{"stage_1", 135, 85, "Hypertension Stage 1"},
		{"elevated", 125, 75, "Elevated blood pressure"},
		{"normal", 115, 75, "Normal blood pressure"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := e.Evaluate(entry.Tree, tree.Inputs{
				"systolic_blood_pressure":  tt.systolic,
				"diastolic_blood_pressure": tt.diastolic,
			})
			require.NoError(t, err)
			assert.Equal(t, tt.decision, result.Decision)
		})
	}
}

func TestBloodPressureCrisisSkipsSystolic(t *testing.T) {
	entry, ok := Builtin().Get("blood_pressure_classification")
	require.True(t, ok)

	e := tree.NewEvaluator(nil)
	result, err := e.Evaluate(entry.Tree, tree.Inputs{
		"systolic_blood_pressure":  110,
		"diastolic_blood_pressure": 125,
	})
	require.NoError(t, err)

	// A diastolic crisis decides without consulting the systolic reading.
	assert.Equal(t, []string{
		"Checked diastolic blood pressure: 125 >= 120 -> matched",
	}, result.PathTaken)
}

func TestAtrialFibrillationManagement(t *testing.T) {
	entry, ok := Builtin().Get("atrial_fibrillation_management")
	require.True(t, ok)

	e := tree.NewEvaluator(nil)

	tests := []struct {
		name     string
		inputs   tree.Inputs
		decision string
	}{
		{
			name: "unstable_goes_to_cardioversion",
			inputs: tree.Inputs{
				"systolic_blood_pressure":       80,
				"diastolic_blood_pressure":      50,
				"heart_rate":                    130,
				"decompensated_heart_failure":   false,
				"beta_blockers_contraindicated": false,
				"digoxin_contraindicated":       false,
				"amiodarone_contraindicated":    false,
			},
			decision: "Direct current cardioversion (1)",
		},
		{
			name: "stable_no_contraindications",
			inputs: tree.Inputs{
				"systolic_blood_pressure":       130,
				"diastolic_blood_pressure":      85,
				"heart_rate":                    72,
				"decompensated_heart_failure":   false,
				"beta_blockers_contraindicated": false,
				"digoxin_contraindicated":       false,
				"amiodarone_contraindicated":    false,
			},
			decision: "Continue current medications.",
		},
		{
			name: "stable_beta_blockers_contraindicated",
			inputs: tree.Inputs{
				"systolic_blood_pressure":       130,
				"diastolic_blood_pressure":      85,
				"heart_rate":                    72,
				"decompensated_heart_failure":   false,
				"beta_blockers_contraindicated": true,
				"digoxin_contraindicated":       false,
				"amiodarone_contraindicated":    false,
			},
			decision: "Digoxin",
		},
		{
			name: "decompensated_iv_amiodarone",
			inputs: tree.Inputs{
				"systolic_blood_pressure":       130,
				"diastolic_blood_pressure":      85,
				"heart_rate":                    72,
				"decompensated_heart_failure":   true,
				"beta_blockers_contraindicated": false,
				"digoxin_contraindicated":       false,
				"amiodarone_contraindicated":    false,
			},
			decision: "IV Amiodarone",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prepared, err := entry.Prepare(tt.inputs)
			require.NoError(t, err)

			result, err := e.Evaluate(entry.Tree, prepared)
			require.NoError(t, err)
			assert.Equal(t, tt.decision, result.Decision)
		})
	}
}

func TestBradycardiaDiagnostic(t *testing.T) {
	entry, ok := Builtin().Get("bradycardia_diagnostic")
	require.True(t, ok)

	e := tree.NewEvaluator(nil)

	result, err := e.Evaluate(entry.Tree, tree.Inputs{"symptomatic": false})
	require.NoError(t, err)
	assert.Equal(t, "This diagnostic algorithm is not applicable", result.Decision)

	result, err = e.Evaluate(entry.Tree, tree.Inputs{
		"symptomatic":                        true,
		"primary_ecg_finding":                "Nondiagnostic",
		"structural_heart_disease_suspected": true,
	})
	require.NoError(t, err)
	assert.Equal(t, "Perform Echocardiography", result.Decision)
}

func TestBradycardiaMonitoring(t *testing.T) {
	entry, ok := Builtin().Get("bradycardia_monitoring")
	require.True(t, ok)

	e := tree.NewEvaluator(nil)

	result, err := e.Evaluate(entry.Tree, tree.Inputs{
		"exercise_related_symptoms": true,
		"exercise_ecg_result":       "Abnormal",
		"arrhythmia_type":           "AV Block",
	})
	require.NoError(t, err)
	assert.Equal(t, "Proceed with the AV Block Diagnostic algorithm", result.Decision)

	result, err = e.Evaluate(entry.Tree, tree.Inputs{
		"exercise_related_symptoms": false,
		"infrequent_symptoms":       true,
		"monitoring_findings":       "No significant arrhythmias",
	})
	require.NoError(t, err)
	assert.Equal(t, "Observation", result.Decision)
}
