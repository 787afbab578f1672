package tree

import (
	"strings"

	"gopkg.in/yaml.v3"
)

// PredicateCompiler turns a serialized predicate expression into a
// Predicate. The CEL compiler in internal/eval/cel satisfies this.
type PredicateCompiler interface {
	CompilePredicate(expr string) (Predicate, error)
}

// celPrefix marks predicate branch keys in serialized trees.
const celPrefix = "cel:"

// Parser ingests serialized YAML trees, preserving authored branch order.
// Branch keys are classified here, once, at load time; evaluation never
// re-inspects key shapes.
//
// A node is either a scalar (a leaf, in the "<decision> - <reason>"
// convention) or a mapping with "question", optional "variable" and
// "branches". Branch keys are one of:
//
//   - "cel: <expr>"        a predicate over a single value variable
//   - "<symbol> <ref>"     an operator key, when <symbol> is registered
//   - anything else        a literal, with YAML scalar typing
type Parser struct {
	registry *Registry
	compiler PredicateCompiler
}

// NewParser creates a parser against the given registry. A nil registry
// uses the defaults; the compiler may be nil when trees carry no predicate
// keys.
func NewParser(registry *Registry, compiler PredicateCompiler) *Parser {
	if registry == nil {
		registry = NewRegistry()
	}
	return &Parser{registry: registry, compiler: compiler}
}

// ParseTree decodes a YAML document into a Tree.
func (p *Parser) ParseTree(data []byte) (*Tree, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, authoringErrorf("tree is not valid yaml: %v", err)
	}
	if len(doc.Content) == 0 {
		return nil, authoringErrorf("tree document is empty")
	}
	root, err := p.ParseNode(doc.Content[0])
	if err != nil {
		return nil, err
	}
	return &Tree{Root: root}, nil
}

// ParseNode converts one decoded YAML node into a tree node.
func (p *Parser) ParseNode(n *yaml.Node) (Node, error) {
	switch n.Kind {
	case yaml.ScalarNode:
		return Outcome(n.Value), nil
	case yaml.MappingNode:
		return p.parseQuestion(n)
	}
	return nil, authoringErrorf("line %d: node must be a leaf text or a question mapping", n.Line)
}

func (p *Parser) parseQuestion(n *yaml.Node) (Node, error) {
	var (
		text     string
		variable string
		branches *yaml.Node
	)
	for i := 0; i+1 < len(n.Content); i += 2 {
		field := n.Content[i].Value
		value := n.Content[i+1]
		switch field {
		case "question":
			text = value.Value
		case "variable":
			variable = value.Value
		case "branches":
			branches = value
		default:
			return nil, authoringErrorf("line %d: unknown node field %q", n.Content[i].Line, field)
		}
	}

	if text == "" {
		return nil, authoringErrorf("line %d: question node missing question text", n.Line)
	}
	if branches == nil {
		return nil, authoringErrorf("line %d: question %q has no branches", n.Line, text)
	}
	if branches.Kind != yaml.MappingNode || len(branches.Content) == 0 {
		return nil, authoringErrorf("line %d: branches of %q must be a non-empty mapping", branches.Line, text)
	}

	q := &Question{Text: text, Variable: variable}
	for i := 0; i+1 < len(branches.Content); i += 2 {
		key, err := p.parseKey(branches.Content[i])
		if err != nil {
			return nil, err
		}
		target, err := p.ParseNode(branches.Content[i+1])
		if err != nil {
			return nil, err
		}
		q.Branches = append(q.Branches, Branch{Key: key, Target: target})
	}
	return q, nil
}

// parseKey classifies one serialized branch key.
func (p *Parser) parseKey(n *yaml.Node) (Key, error) {
	raw := n.Value

	if strings.HasPrefix(raw, celPrefix) {
		if p.compiler == nil {
			return nil, authoringErrorf("line %d: predicate key %q but no predicate compiler configured", n.Line, raw)
		}
		expr := strings.TrimSpace(strings.TrimPrefix(raw, celPrefix))
		fn, err := p.compiler.CompilePredicate(expr)
		if err != nil {
			return nil, authoringErrorf("line %d: predicate %q: %v", n.Line, expr, err)
		}
		return PredicateKey{Name: expr, Fn: fn}, nil
	}

	if symbol, rest, ok := p.splitOperator(raw); ok {
		var ref any
		if err := yaml.Unmarshal([]byte(rest), &ref); err != nil {
			return nil, authoringErrorf("line %d: reference of %q: %v", n.Line, raw, err)
		}
		return OperatorKey{Symbol: symbol, Reference: ref}, nil
	}

	var value any
	if err := n.Decode(&value); err != nil {
		return nil, authoringErrorf("line %d: branch key %q: %v", n.Line, raw, err)
	}
	return LiteralKey{Value: value}, nil
}

// splitOperator detaches a leading registered operator symbol from its
// reference text. Two-word symbols ("not in") are tried before single
// words.
func (p *Parser) splitOperator(raw string) (string, string, bool) {
	for _, words := range []int{2, 1} {
		parts := strings.SplitN(raw, " ", words+1)
		if len(parts) != words+1 {
			continue
		}
		symbol := strings.Join(parts[:words], " ")
		if p.registry.Has(symbol) {
			return symbol, parts[words], true
		}
	}
	return "", "", false
}
