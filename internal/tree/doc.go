// Package tree implements a generic decision-tree evaluation engine.
//
// A tree encodes branching decision logic as data: question nodes bind an
// input by name, branches carry a matching criterion, and leaves carry the
// terminal decision with its justification. Evaluation walks root to leaf,
// selecting at each question the first branch in authoring order whose key
// accepts the resolved input, and records every check performed so the
// decision path is returned alongside the decision itself.
//
// Example:
//
//	loan := tree.New(tree.Ask("What is your credit score?", "credit_score",
//	    tree.On(tree.Op("<", 640), tree.Outcome("Declined - Credit score too low")),
//	    tree.On(tree.Op(">=", 640), tree.Outcome("Approved - Good credit")),
//	))
//
//	eval := tree.NewEvaluator(logger)
//	result, err := eval.Evaluate(loan, tree.Inputs{"credit_score": 600})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	// result.Decision  = "Declined"
//	// result.Reason    = "Credit score too low"
//	// result.PathTaken = ["Checked credit score: 600 < 640 -> matched"]
//
// Branch keys come in three kinds, classified once when the tree is built:
//   - tree.If   - a single-argument boolean predicate
//   - tree.Op   - an (operator symbol, reference) pair resolved through the
//     operator registry
//   - tree.Is   - a literal compared by equality, including enumerated
//     constants
//
// The registry ships with ==, !=, >, >=, <, <=, in, not in and regex, and
// can be extended:
//
//	eval.Registry().Register("divisible by", func(v, ref any) (bool, error) {
//	    ...
//	})
//
// Registration must finish before evaluations that use the new symbol start;
// the registry is not synchronized for concurrent writes. Everything else is
// immutable per call, so any number of evaluations may run in parallel.
//
// Error handling follows a strict split: conditions caused by the supplied
// inputs (unanswerable question, no matching branch) are returned as a
// Result with Decision "Error", while authoring defects (unregistered
// operator, malformed node) and predicate failures are returned as Go
// errors.
//
// Serialized trees are ingested with Parser, which preserves authored branch
// order and applies the same key classification to string-encoded keys like
// ">= 640", "in [US, Canada]" or "cel: value % 2 == 0".
package tree
