// Package catalog holds the named decision trees the worker serves.
//
// Each entry pairs a tree with a caller-facing schema (input names, types,
// descriptions) and an optional derivation hook that computes inputs the
// tree branches on from the raw values callers supply - for example the
// atrial-fibrillation entry derives hemodynamic stability from blood
// pressure and heart rate.
//
// Built-in entries cover loan underwriting, blood-pressure classification,
// atrial-fibrillation management and the bradycardia diagnostic pair.
// Additional entries can be shipped as YAML files and loaded with LoadDir:
//
//	name: pet_insurance
//	description: Pet insurance eligibility.
//	inputs:
//	  - name: pet_age
//	    type: integer
//	    required: true
//	tree:
//	  question: What is the pet age?
//	  variable: pet_age
//	  branches:
//	    "< 1": Declined - Too young
//	    ">= 1": Approved - Standard policy
//
// The catalog must be fully populated before serving begins; after that,
// lookups are read-only and safe for concurrent use.
package catalog
