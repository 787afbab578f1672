package catalog

import "github.com/clinassist/decision-worker/internal/tree"

// arrhythmiaRouting is the shared terminal step of both bradycardia trees:
// the nature of the arrhythmia selects the follow-on diagnostic algorithm.
func arrhythmiaRouting(variable string) *tree.Question {
	return tree.Ask("What is the nature of the arrhythmia?", variable,
		tree.On(tree.Op("==", "SND"), tree.Outcome("Proceed with the SND Diagnostic algorithm")),
		tree.On(tree.Op("==", "AV Block"), tree.Outcome("Proceed with the AV Block Diagnostic algorithm")),
		tree.On(tree.Op("==", "Conduction disorder with 1:1 AV conduction"), tree.Outcome("Proceed with the Conduction disorder Diagnostic algorithm")),
	)
}

// bradyDiagnosticTree is the initial diagnostic pathway for suspected
// bradycardia or conduction disorders.
var bradyDiagnosticTree = tree.New(tree.Ask(
	"Does the patient present with symptoms suggestive of or consistent with bradycardia or a conduction disorder?",
	"symptomatic",
	tree.On(tree.Is(true), tree.Ask(
		"After history, physical examination, ECG, and directed blood testing, what is the primary finding on the ECG?",
		"primary_ecg_finding",
		tree.On(tree.Op("==", "SND"), tree.Outcome("Proceed with the SND Diagnostic algorithm")),
		tree.On(tree.Op("==", "AV Block"), tree.Outcome("Proceed with the AV Block Diagnostic algorithm")),
		tree.On(tree.Op("==", "Conduction disorder with 1:1 AV conduction"), tree.Outcome("Proceed with the Conduction disorder Diagnostic algorithm")),
		tree.On(tree.Op("==", "Nondiagnostic"), tree.Ask(
			"Is structural heart disease suspected based on history and physical examination?",
			"structural_heart_disease_suspected",
			tree.On(tree.Is(true), tree.Outcome("Perform Echocardiography")),
			tree.On(tree.Is(false), tree.Outcome("Further clinical evaluation is required - ECG nondiagnostic and structural heart disease not suspected")),
		)),
	)),
	tree.On(tree.Is(false), tree.Outcome("This diagnostic algorithm is not applicable")),
))

// bradyMonitoringTree selects the monitoring strategy for bradycardia
// work-up based on symptom pattern and monitoring findings.
var bradyMonitoringTree = tree.New(tree.Ask(
	"Does the patient have exercise-related symptoms?",
	"exercise_related_symptoms",
	tree.On(tree.Is(true), tree.Ask(
		"What is the result of the Exercise ECG testing?",
		"exercise_ecg_result",
		tree.On(tree.Op("==", "Normal"), tree.Ask(
			"What are the findings from subsequent Ambulatory ECG monitoring?",
			"monitoring_findings",
			tree.On(tree.Op("==", "Significant arrhythmias"), arrhythmiaRouting("arrhythmia_type")),
			tree.On(tree.Op("==", "No significant arrhythmias"), tree.Outcome("Observation - If concern for bradycardia continues, consider an Implantable Cardiac Monitor")),
		)),
		tree.On(tree.Op("==", "Abnormal"), arrhythmiaRouting("arrhythmia_type")),
	)),
	tree.On(tree.Is(false), tree.Ask(
		"Are the symptoms infrequent (e.g., occurring less than once every 30 days)?",
		"infrequent_symptoms",
		tree.On(tree.Is(true), tree.Ask(
			"What are the findings from the Implantable Cardiac Monitor?",
			"monitoring_findings",
			tree.On(tree.Op("==", "Significant arrhythmias"), arrhythmiaRouting("arrhythmia_type")),
			tree.On(tree.Op("==", "No significant arrhythmias"), tree.Outcome("Observation - If concern for bradycardia continues, continue monitoring with ICM")),
		)),
		tree.On(tree.Is(false), tree.Ask(
			"What are the findings from Ambulatory ECG monitoring?",
			"monitoring_findings",
			tree.On(tree.Op("==", "Significant arrhythmias"), arrhythmiaRouting("arrhythmia_type")),
			tree.On(tree.Op("==", "No significant arrhythmias"), tree.Outcome("Observation - If concern for bradycardia continues, consider an Implantable Cardiac Monitor")),
		)),
	)),
))

func bradycardiaEntries() []*Entry {
	return []*Entry{
		{
			Name:        "bradycardia_diagnostic",
			Description: "Initial diagnostic pathway for suspected bradycardia or conduction disorders.",
			Inputs: []Input{
				{Name: "symptomatic", Type: "boolean", Description: "Does the patient present with symptoms consistent with bradycardia or a conduction disorder?", Required: true},
				{Name: "primary_ecg_finding", Type: "string", Description: "Primary ECG finding: 'SND', 'AV Block', 'Conduction disorder with 1:1 AV conduction' or 'Nondiagnostic'", Required: false},
				{Name: "structural_heart_disease_suspected", Type: "boolean", Description: "Is structural heart disease suspected?", Required: false},
			},
			Tree: bradyDiagnosticTree,
		},
		{
			Name:        "bradycardia_monitoring",
			Description: "Selects the monitoring strategy for bradycardia work-up.",
			Inputs: []Input{
				{Name: "exercise_related_symptoms", Type: "boolean", Description: "Does the patient have exercise-related symptoms?", Required: true},
				{Name: "exercise_ecg_result", Type: "string", Description: "Exercise ECG result: 'Normal' or 'Abnormal'", Required: false},
				{Name: "infrequent_symptoms", Type: "boolean", Description: "Do symptoms occur less than once every 30 days?", Required: false},
				{Name: "monitoring_findings", Type: "string", Description: "Monitoring findings: 'Significant arrhythmias' or 'No significant arrhythmias'", Required: false},
				{Name: "arrhythmia_type", Type: "string", Description: "Nature of the arrhythmia, when significant arrhythmias were found", Required: false},
			},
			Tree: bradyMonitoringTree,
		},
	}
}
