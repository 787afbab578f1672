package tree

import "fmt"

// matchBranch scans branches in authoring order and returns the first whose
// key accepts the value, together with one trace entry per key tested up to
// and including the match. A nil branch with a nil error means no key
// matched; the evaluator converts that into an Error result rather than a
// failure.
func matchBranch(reg *Registry, branches []Branch, value any, subject string) (*Branch, []string, error) {
	var trace []string
	for i := range branches {
		b := &branches[i]
		ok, err := testKey(reg, b.Key, value)
		if err != nil {
			return nil, trace, fmt.Errorf("branch %s: %w", b.Key, err)
		}
		trace = append(trace, checkEntry(subject, value, b.Key, ok))
		if ok {
			return b, trace, nil
		}
	}
	return nil, trace, nil
}

// testKey applies one classified key to the value. Predicate and operator
// errors are not caught here; they propagate as fatal.
func testKey(reg *Registry, key Key, value any) (bool, error) {
	switch k := key.(type) {
	case PredicateKey:
		return k.Fn(value)
	case OperatorKey:
		op, err := reg.Lookup(k.Symbol)
		if err != nil {
			return false, err
		}
		return op(value, k.Reference)
	case LiteralKey:
		return equal(value, k.Value), nil
	}
	return false, authoringErrorf("unknown branch key kind %T", key)
}

// checkEntry renders one audit-trail line naming the subject, the
// comparison performed and its outcome.
func checkEntry(subject string, value any, key Key, matched bool) string {
	outcome := "no match"
	if matched {
		outcome = "matched"
	}
	switch k := key.(type) {
	case PredicateKey:
		return fmt.Sprintf("Checked %s: predicate %s -> %s", subject, k.Name, outcome)
	case OperatorKey:
		return fmt.Sprintf("Checked %s: %s %s %s -> %s", subject, display(value), k.Symbol, display(k.Reference), outcome)
	case LiteralKey:
		return fmt.Sprintf("Checked %s: %s == %s -> %s", subject, display(value), display(k.Value), outcome)
	}
	return fmt.Sprintf("Checked %s: %s -> %s", subject, key, outcome)
}
