// Package cel compiles CEL (Common Expression Language) predicates for
// serialized decision-tree branch keys.
//
// CEL is a non-Turing complete expression language that provides fast, safe
// evaluation. Serialized trees use it for predicate branch keys that plain
// operator keys cannot express; the expression sees the resolved input as a
// single dynamic variable named "value".
//
// Example usage:
//
//	compiler := cel.NewCompiler()
//
//	pred, err := compiler.CompilePredicate("value > 100 && value < 200")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	matched, err := pred(150) // true, nil
//
// Compiled programs are cached by expression source, so trees that repeat a
// predicate pay compilation once.
//
// Supported operations:
//   - Comparisons: ==, !=, <, <=, >, >=
//   - Boolean logic: &&, ||, !
//   - String operations: contains, startsWith, endsWith, matches
//   - Arithmetic: +, -, *, /, %
//   - List operations: in, size
package cel
