package tree

import (
	"errors"
	"fmt"

	"go.uber.org/zap"
)

// ErrorDecision is the decision label of results produced from conditions
// attributable to caller-supplied inputs.
const ErrorDecision = "Error"

// Result is the outcome of one evaluation. A Decision of ErrorDecision
// carries the reason the supplied inputs could not drive the tree to a leaf;
// the accumulated path is returned either way for audit review.
type Result struct {
	Decision  string   `json:"decision"`
	Reason    string   `json:"reason"`
	PathTaken []string `json:"path_taken"`
}

// IsError reports whether the result is an Error decision. Callers should
// treat it as a cue to request clarification, not as a system failure.
func (r *Result) IsError() bool {
	return r.Decision == ErrorDecision
}

// Option configures an Evaluator.
type Option func(*Evaluator)

// WithRegistry replaces the default operator registry.
func WithRegistry(r *Registry) Option {
	return func(e *Evaluator) { e.registry = r }
}

// WithHeuristicBinding enables the legacy substring binding for trees
// authored without declared variables. Keep it off unless such trees are in
// service; see resolveInput for the ambiguity caveat.
func WithHeuristicBinding(enabled bool) Option {
	return func(e *Evaluator) { e.heuristic = enabled }
}

// Evaluator drives root-to-leaf descent over decision trees. It is safe for
// concurrent use once operator registration has finished.
type Evaluator struct {
	registry  *Registry
	logger    *zap.Logger
	heuristic bool
}

// NewEvaluator creates an evaluator with the default operator registry. A
// nil logger disables logging.
func NewEvaluator(logger *zap.Logger, opts ...Option) *Evaluator {
	if logger == nil {
		logger = zap.NewNop()
	}
	e := &Evaluator{
		registry: NewRegistry(),
		logger:   logger,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Registry exposes the evaluator's operator registry so callers can register
// additional operators. Registration must complete before any evaluation
// that depends on the new symbol begins.
func (e *Evaluator) Registry() *Registry {
	return e.registry
}

// Evaluate descends from the root to a leaf, resolving one input per
// question and selecting the first branch in authoring order that accepts
// it. It is a pure function of (tree, inputs, registry state): repeated
// calls yield identical results.
//
// Conditions attributable to the supplied inputs (unanswerable question, no
// matching branch) come back as a Result with Decision ErrorDecision.
// Authoring defects and operator failures are returned as errors.
//
// Traversal depth is bounded by the authored tree; a cyclic tree is an
// authoring defect the engine does not guard against.
func (e *Evaluator) Evaluate(t *Tree, inputs Inputs) (*Result, error) {
	if t == nil || t.Root == nil {
		return nil, authoringErrorf("evaluate: tree has no root")
	}

	path := []string{}
	current := t.Root

	for {
		q, ok := current.(*Question)
		if !ok {
			break
		}

		value, subject, err := resolveInput(q, inputs, e.heuristic)
		if err != nil {
			var ie *InputError
			if !errors.As(err, &ie) {
				return nil, err
			}
			e.logger.Warn("question unanswered",
				zap.String("question", q.Text),
				zap.Error(err),
			)
			return &Result{
				Decision:  ErrorDecision,
				Reason:    ie.Error(),
				PathTaken: path,
			}, nil
		}

		e.logger.Debug("resolved input",
			zap.String("question", q.Text),
			zap.String("subject", subject),
			zap.Any("value", value),
		)

		branch, checks, err := matchBranch(e.registry, q.Branches, value, subject)
		path = append(path, checks...)
		if err != nil {
			return nil, fmt.Errorf("question %q: %w", q.Text, err)
		}
		if branch == nil {
			e.logger.Warn("no branch matched",
				zap.String("question", q.Text),
				zap.String("subject", subject),
				zap.Any("value", value),
			)
			return &Result{
				Decision:  ErrorDecision,
				Reason:    fmt.Sprintf("Invalid value for %s: %s", subject, display(value)),
				PathTaken: path,
			}, nil
		}

		current = branch.Target
	}

	leaf, ok := current.(Leaf)
	if !ok {
		return nil, authoringErrorf("malformed node %T reached during descent", current)
	}

	e.logger.Info("decision reached",
		zap.String("decision", leaf.Decision),
		zap.Int("checks", len(path)),
	)

	return &Result{
		Decision:  leaf.Decision,
		Reason:    leaf.Reason,
		PathTaken: path,
	}, nil
}
