package tree

import "strings"

// DefaultReason is used for leaves authored without a " - " separated
// justification.
const DefaultReason = "No specific reason provided."

// leafSeparator splits a leaf text into decision label and reason.
const leafSeparator = " - "

// Inputs maps declared input names to the values supplied by the caller.
// Inputs are read-only during evaluation.
type Inputs map[string]any

// Clone returns a shallow copy, for derivation hooks that add inputs without
// mutating the caller's map.
func (in Inputs) Clone() Inputs {
	out := make(Inputs, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

// Node is one node of a decision tree: either a *Question or a Leaf.
type Node interface {
	isNode()
}

// Question is an inner node. Branches are tested in authoring order and the
// first matching key wins, even if a later key would also match.
type Question struct {
	// Text is the question as presented to the caller.
	Text string

	// Variable, when set, is the declared name of the input answering this
	// question. When empty, resolution falls back to the substring
	// heuristic, if enabled.
	Variable string

	Branches []Branch
}

func (*Question) isNode() {}

// Leaf is a terminal decision with its justification.
type Leaf struct {
	Decision string
	Reason   string
}

func (Leaf) isNode() {}

// Branch attaches a matching criterion to a child node.
type Branch struct {
	Key    Key
	Target Node
}

// Tree is a rooted decision tree. Trees are immutable once authored; build
// them at process start and never mutate them during evaluation.
type Tree struct {
	Root Node
}

// New returns a tree rooted at the given node.
func New(root Node) *Tree {
	return &Tree{Root: root}
}

// Ask builds a question node with a declared input binding. Pass an empty
// variable only for legacy trees that rely on the substring heuristic.
func Ask(text, variable string, branches ...Branch) *Question {
	return &Question{Text: text, Variable: variable, Branches: branches}
}

// On attaches a branch key to its target node.
func On(key Key, target Node) Branch {
	return Branch{Key: key, Target: target}
}

// Outcome parses a leaf from the conventional "<decision> - <reason>"
// encoding. Text without the separator becomes a decision with
// DefaultReason. The split happens here, once, at authoring time.
func Outcome(text string) Leaf {
	decision, reason, found := strings.Cut(text, leafSeparator)
	if !found {
		return Leaf{Decision: text, Reason: DefaultReason}
	}
	return Leaf{Decision: decision, Reason: reason}
}
