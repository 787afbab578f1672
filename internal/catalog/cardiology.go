package catalog

import "github.com/clinassist/decision-worker/internal/tree"

// bpTree classifies blood pressure per the ACC/AHA 2017 guideline levels.
// Diastolic pressure is checked first: a DBP >= 120 is a crisis regardless
// of the systolic reading.
var bpTree = tree.New(tree.Ask("What is your diastolic blood pressure?", "diastolic_blood_pressure",
	tree.On(tree.Op(">=", 120), tree.Outcome("Hypertensive crisis - Seek emergency care immediately")),
	tree.On(tree.Op("<", 120), tree.Ask("What is your systolic blood pressure?", "systolic_blood_pressure",
		tree.On(tree.Op(">=", 180), tree.Outcome("Hypertensive crisis - Seek emergency care immediately")),
		tree.On(tree.Op(">=", 140), tree.Outcome("Hypertension Stage 2 - Discuss medication and lifestyle changes with a clinician")),
		tree.On(tree.Op("in", tree.Span{Lo: 130, Hi: 140}), tree.Outcome("Hypertension Stage 1 - Lifestyle changes and possible medication (clinician-guided)")),
		tree.On(tree.Op("in", tree.Span{Lo: 120, Hi: 130}), tree.Outcome("Elevated blood pressure - Adopt heart-healthy lifestyle")),
		tree.On(tree.Op("<", 120), tree.Outcome("Normal blood pressure - Maintain current healthy habits")),
	)),
))

// afibTree selects a rate-control strategy for atrial fibrillation, adapted
// from the 2023 AHA/ACC/ACCP/HRS guideline.
var afibTree = tree.New(tree.Ask("Hemodynamically stable?", "hemodynamically_stable",
	tree.On(tree.Is(false), tree.Outcome("Direct current cardioversion (1)")),
	tree.On(tree.Is(true), tree.Ask("Decompensated heart failure?", "decompensated_heart_failure",
		tree.On(tree.Is(false), tree.Ask("Are beta blockers, verapamil, or diltiazem contraindicated?", "beta_blockers_contraindicated",
			tree.On(tree.Is(false), tree.Outcome("Continue current medications.")),
			tree.On(tree.Is(true), tree.Ask("Is Digoxin contraindicated?", "digoxin_contraindicated",
				tree.On(tree.Is(false), tree.Outcome("Digoxin")),
				tree.On(tree.Is(true), tree.Ask("Is Amiodarone contraindicated?", "amiodarone_contraindicated",
					tree.On(tree.Is(false), tree.Outcome("Amiodarone")),
					tree.On(tree.Is(true), tree.Outcome("Consider alternative therapies.")),
				)),
			)),
		)),
		tree.On(tree.Is(true), tree.Ask("Is IV Amiodarone contraindicated?", "amiodarone_contraindicated",
			tree.On(tree.Is(false), tree.Outcome("IV Amiodarone")),
			tree.On(tree.Is(true), tree.Outcome("That leaves Verapamil, diltiazem (3: Harm)")),
		)),
	)),
))

func cardiologyEntries() []*Entry {
	entries := []*Entry{
		{
			Name:        "blood_pressure_classification",
			Description: "Classifies blood pressure levels and provides recommendations based on systolic and diastolic values.",
			Inputs: []Input{
				{Name: "systolic_blood_pressure", Type: "integer", Description: "The patient's systolic blood pressure, e.g., 128", Required: true},
				{Name: "diastolic_blood_pressure", Type: "integer", Description: "The patient's diastolic blood pressure, e.g., 78", Required: true},
			},
			Tree: bpTree,
		},
		{
			Name:        "atrial_fibrillation_management",
			Description: "Looks up a treatment recommendation for atrial fibrillation from a decision tree.",
			Inputs: []Input{
				{Name: "systolic_blood_pressure", Type: "integer", Description: "The patient's systolic blood pressure, e.g., 128", Required: true},
				{Name: "diastolic_blood_pressure", Type: "integer", Description: "The patient's diastolic blood pressure, e.g., 78", Required: true},
				{Name: "heart_rate", Type: "integer", Description: "The patient's heart rate, e.g., 75", Required: true},
				{Name: "decompensated_heart_failure", Type: "boolean", Description: "Is the patient in decompensated heart failure?", Required: true},
				{Name: "beta_blockers_contraindicated", Type: "boolean", Description: "Are beta blockers, verapamil, or diltiazem contraindicated?", Required: true},
				{Name: "digoxin_contraindicated", Type: "boolean", Description: "Is Digoxin contraindicated?", Required: true},
				{Name: "amiodarone_contraindicated", Type: "boolean", Description: "Is Amiodarone contraindicated?", Required: true},
			},
			Tree:   afibTree,
			Derive: deriveHemodynamics,
		},
	}
	return append(entries, bradycardiaEntries()...)
}

// deriveHemodynamics computes the stability input the AFib tree branches on
// from the raw vitals.
func deriveHemodynamics(inputs tree.Inputs) (tree.Inputs, error) {
	systolic, err := numericInput(inputs, "systolic_blood_pressure")
	if err != nil {
		return nil, err
	}
	diastolic, err := numericInput(inputs, "diastolic_blood_pressure")
	if err != nil {
		return nil, err
	}
	heartRate, err := numericInput(inputs, "heart_rate")
	if err != nil {
		return nil, err
	}

	out := inputs.Clone()
	out["hemodynamically_stable"] = HemodynamicallyStable(systolic, diastolic, heartRate)
	return out, nil
}
