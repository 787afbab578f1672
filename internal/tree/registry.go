package tree

import (
	"fmt"
	"reflect"
	"regexp"
	"strconv"
	"strings"
)

// Operator is a binary comparison predicate applied as (value, reference).
// Operators are trusted code: a returned error aborts the evaluation and
// propagates to the caller unmodified.
type Operator func(value, reference any) (bool, error)

// Registry maps operator symbols to comparison predicates. Treat it as
// write-once-then-read-many: finish all Register calls before starting
// evaluations that may run concurrently.
type Registry struct {
	ops map[string]Operator
}

// NewRegistry returns a registry populated with the default operators:
// ==, !=, >, >=, <, <=, in, not in and regex (full-string match).
func NewRegistry() *Registry {
	r := &Registry{ops: make(map[string]Operator)}
	r.Register("==", func(v, ref any) (bool, error) { return equal(v, ref), nil })
	r.Register("!=", func(v, ref any) (bool, error) { return !equal(v, ref), nil })
	r.Register(">", ordering(func(c int) bool { return c > 0 }))
	r.Register(">=", ordering(func(c int) bool { return c >= 0 }))
	r.Register("<", ordering(func(c int) bool { return c < 0 }))
	r.Register("<=", ordering(func(c int) bool { return c <= 0 }))
	r.Register("in", contains)
	r.Register("not in", func(v, ref any) (bool, error) {
		ok, err := contains(v, ref)
		if err != nil {
			return false, err
		}
		return !ok, nil
	})
	r.Register("regex", regexMatch)
	return r
}

// Register inserts or overwrites an operator. No arity or type checking is
// performed; the predicate is trusted.
func (r *Registry) Register(symbol string, op Operator) {
	r.ops[symbol] = op
}

// Lookup resolves a symbol. An absent symbol is an authoring defect, not a
// data error.
func (r *Registry) Lookup(symbol string) (Operator, error) {
	op, ok := r.ops[symbol]
	if !ok {
		return nil, authoringErrorf("unsupported operator %q: register it first", symbol)
	}
	return op, nil
}

// Has reports whether a symbol is registered. The serialized-tree parser
// uses it to tell operator keys from literals.
func (r *Registry) Has(symbol string) bool {
	_, ok := r.ops[symbol]
	return ok
}

// Span is a half-open integer interval [Lo, Hi), usable as the reference of
// an "in" or "not in" operator key.
type Span struct {
	Lo, Hi int
}

func (s Span) String() string {
	return fmt.Sprintf("[%d, %d)", s.Lo, s.Hi)
}

func (s Span) covers(v float64) bool {
	return v >= float64(s.Lo) && v < float64(s.Hi)
}

// equal compares with numeric widening, so authored integer references
// match JSON-decoded float64 inputs. Non-numeric values fall back to deep
// equality, which keeps enumerated constants type-strict.
func equal(v, ref any) bool {
	if vf, ok := toFloat(v); ok {
		if rf, ok := toFloat(ref); ok {
			return vf == rf
		}
	}
	return reflect.DeepEqual(v, ref)
}

// ordering builds the strict and inclusive comparison operators from a
// three-way compare.
func ordering(accept func(int) bool) Operator {
	return func(v, ref any) (bool, error) {
		c, err := compare(v, ref)
		if err != nil {
			return false, err
		}
		return accept(c), nil
	}
}

// compare orders numbers numerically and strings lexically. Anything else
// is an operator runtime error.
func compare(v, ref any) (int, error) {
	if vf, ok := toFloat(v); ok {
		if rf, ok := toFloat(ref); ok {
			switch {
			case vf < rf:
				return -1, nil
			case vf > rf:
				return 1, nil
			}
			return 0, nil
		}
	}
	if vs, ok := v.(string); ok {
		if rs, ok := ref.(string); ok {
			return strings.Compare(vs, rs), nil
		}
	}
	return 0, fmt.Errorf("cannot order %T against %T", v, ref)
}

// contains implements membership: slices and arrays by element equality,
// maps by key, strings by substring, Span by numeric interval.
func contains(v, ref any) (bool, error) {
	switch coll := ref.(type) {
	case Span:
		f, ok := toFloat(v)
		if !ok {
			return false, fmt.Errorf("cannot test %T against span %s", v, coll)
		}
		return coll.covers(f), nil
	case string:
		s, ok := v.(string)
		if !ok {
			s = fmt.Sprint(v)
		}
		return strings.Contains(coll, s), nil
	}

	rv := reflect.ValueOf(ref)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		for i := 0; i < rv.Len(); i++ {
			if equal(v, rv.Index(i).Interface()) {
				return true, nil
			}
		}
		return false, nil
	case reflect.Map:
		for _, k := range rv.MapKeys() {
			if equal(v, k.Interface()) {
				return true, nil
			}
		}
		return false, nil
	}
	return false, fmt.Errorf("cannot test membership in %T", ref)
}

// regexMatch tests the whole input text against the reference pattern. The
// input is coerced to text; partial matches do not count.
func regexMatch(v, ref any) (bool, error) {
	pattern, ok := ref.(string)
	if !ok {
		return false, fmt.Errorf("regex reference must be a string, got %T", ref)
	}
	re, err := regexp.Compile("^(?:" + pattern + ")$")
	if err != nil {
		return false, fmt.Errorf("invalid regex %q: %w", pattern, err)
	}
	return re.MatchString(fmt.Sprint(v)), nil
}

// toFloat widens any Go numeric kind for cross-type comparison.
func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}

// display formats a value for trace entries and key descriptions: strings
// quoted, numbers plain.
func display(v any) string {
	switch s := v.(type) {
	case string:
		return strconv.Quote(s)
	case fmt.Stringer:
		return s.String()
	}
	return fmt.Sprint(v)
}
