package tree

import (
	"sort"
	"strings"
)

// resolveInput binds a question to one of the supplied inputs and returns
// the value to test plus the subject term used in trace entries.
//
// A declared Variable binding is authoritative. The substring heuristic is a
// legacy fallback for trees authored without bindings: an input answers a
// question when its normalized name occurs in the question text. Two
// differently named inputs can both match one question; names are visited in
// sorted order so the ambiguity at least resolves the same way every time.
func resolveInput(q *Question, inputs Inputs, heuristic bool) (any, string, error) {
	if q.Variable != "" {
		v, ok := inputs[q.Variable]
		if !ok {
			return nil, "", inputErrorf("no input named %q answers question %q", q.Variable, q.Text)
		}
		return v, normalize(q.Variable), nil
	}

	if heuristic {
		names := make([]string, 0, len(inputs))
		for name := range inputs {
			names = append(names, name)
		}
		sort.Strings(names)

		for _, name := range names {
			subterm := normalize(name)
			if strings.Contains(q.Text, subterm) {
				return inputs[name], subterm, nil
			}
		}
	}

	return nil, "", inputErrorf("question %q could not be answered with the supplied inputs", q.Text)
}

// normalize maps declared input names onto question wording, e.g.
// credit_score -> "credit score".
func normalize(name string) string {
	return strings.ReplaceAll(name, "_", " ")
}
