package tree

import "fmt"

// Predicate is a single-argument boolean test over a resolved input value.
// Predicates are trusted code: a returned error aborts the evaluation and
// propagates to the caller unmodified.
type Predicate func(value any) (bool, error)

// Key is the matching criterion of one branch. It is a closed union of
// PredicateKey, OperatorKey and LiteralKey; classification happens once,
// when the tree is authored or ingested, never per evaluation.
type Key interface {
	isKey()
	fmt.Stringer
}

// PredicateKey matches when its function accepts the value.
type PredicateKey struct {
	// Name identifies the predicate in trace entries.
	Name string
	Fn   Predicate
}

func (PredicateKey) isKey() {}

func (k PredicateKey) String() string {
	return fmt.Sprintf("predicate %s", k.Name)
}

// OperatorKey matches when the registered operator named by Symbol accepts
// (value, Reference). Referencing an unregistered symbol is an authoring
// defect surfaced at evaluation.
type OperatorKey struct {
	Symbol    string
	Reference any
}

func (OperatorKey) isKey() {}

func (k OperatorKey) String() string {
	return fmt.Sprintf("%s %s", k.Symbol, display(k.Reference))
}

// LiteralKey matches on equality with the value. Enumerated constants and
// plain scalars both land here.
type LiteralKey struct {
	Value any
}

func (LiteralKey) isKey() {}

func (k LiteralKey) String() string {
	return fmt.Sprintf("== %s", display(k.Value))
}

// If builds a predicate branch key. The name appears in trace entries.
func If(name string, fn Predicate) Key {
	return PredicateKey{Name: name, Fn: fn}
}

// Op builds an operator branch key, resolved through the registry at match
// time.
func Op(symbol string, reference any) Key {
	return OperatorKey{Symbol: symbol, Reference: reference}
}

// Is builds a literal branch key compared by equality.
func Is(value any) Key {
	return LiteralKey{Value: value}
}
