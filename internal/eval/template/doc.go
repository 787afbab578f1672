// Package template provides a Handlebars template engine for rendering
// decision audit reports.
//
// The conversational layer consuming evaluation results wants prose, not
// JSON; this engine turns a decision, its reason and the path taken into a
// readable report. Deployments can override the built-in template through
// configuration.
//
// Example usage:
//
//	engine := template.NewEngine()
//
//	report, err := engine.RenderResult("", result)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	// Output: Decision: Declined
//	//         Reason: Credit score too low
//	//         Checks performed:
//	//         1. Checked credit score: 600 < 640 -> matched
//
// Built-in helpers:
//   - uppercase - Convert string to uppercase
//   - lowercase - Convert string to lowercase
//   - trim - Trim whitespace from string
//   - default - Return default value if first arg is empty
//   - inc - Increment a number (1-based check numbering)
//   - join - Join path entries with separator
//   - len - Get length of array/string
//
// Example with helpers:
//
//	{{uppercase decision}}        # "DECLINED"
//	{{join path_taken "; "}}      # one-line audit trail
//	{{default reason "n/a"}}      # fallback text
package template
