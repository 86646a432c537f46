// Package symb provides the numeric type underlying every bit-width and
// gate-count computation in swapnet: a Value that is either a concrete
// integer or a symbolic expression over named positive integer parameters.
//
// Values are canonical multilinear polynomials. Arithmetic (Add, Sub, Mul)
// always folds into canonical form, so structural equality (Equal) and the
// deterministic String rendering double as identity for caching and
// memoization keys.
//
// Symbols are assumed to stand for integers ≥ 1. KnownPositive and
// KnownNonNegative answer sign questions under that assumption and report
// "unknown" (false) rather than guessing when the sign genuinely depends on
// symbol values.
//
// Complexity:
//
//   - Add/Sub: O(t) in the number of polynomial terms
//   - Mul:     O(t1*t2)
//   - String:  O(t log t) (sorted monomials)
package symb
