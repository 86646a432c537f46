// SPDX-License-Identifier: MIT
//
// File: value.go
// Role: canonical symbolic-or-concrete integer values and their arithmetic.

package symb

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"fortio.org/safecast"
)

// ErrNotConcrete indicates a symbolic Value was used where a concrete
// integer is required (e.g. when wiring a concrete decomposition).
// Usage: if errors.Is(err, symb.ErrNotConcrete) { /* keep costs symbolic */ }.
var ErrNotConcrete = errors.New("symb: value is not concrete")

// ErrInexactDivision indicates DivExact was asked to divide a polynomial
// whose coefficients are not all divisible by the divisor.
var ErrInexactDivision = errors.New("symb: inexact division")

// Value is an immutable integer-valued expression: a polynomial over named
// symbols, held in canonical form. Symbols may repeat within a monomial, so
// products of arbitrary degree stay exact (Sym("n").Mul(Sym("n")) is the
// monomial "n*n"). The zero Value is the constant 0 and is ready to use.
//
// The map key is the monomial: "" for the constant term, otherwise the
// sorted symbol names joined by "*" (e.g. "L*n_b"). Maps are never mutated
// after construction; all operators return fresh Values.
type Value struct {
	terms map[string]int64
}

// I returns the concrete Value n.
func I(n int64) Value {
	if n == 0 {
		return Value{}
	}

	return Value{terms: map[string]int64{"": n}}
}

// Sym returns the symbolic Value standing for the named parameter.
// Symbols are assumed to denote integers ≥ 1. The name must be non-empty
// and must not contain '*' (reserved for monomial keys); violations panic,
// mirroring option-constructor validation policy.
func Sym(name string) Value {
	if name == "" || strings.Contains(name, "*") {
		panic(fmt.Sprintf("symb: invalid symbol name %q", name))
	}

	return Value{terms: map[string]int64{name: 1}}
}

// Zero is the constant 0.
func Zero() Value { return Value{} }

// One is the constant 1.
func One() Value { return I(1) }

// clone copies the term map, dropping zero coefficients.
func clone(src map[string]int64) map[string]int64 {
	dst := make(map[string]int64, len(src))
	for m, c := range src {
		if c != 0 {
			dst[m] = c
		}
	}

	return dst
}

// Add returns v + o.
func (v Value) Add(o Value) Value {
	sum := clone(v.terms)
	for m, c := range o.terms {
		sum[m] += c
		if sum[m] == 0 {
			delete(sum, m)
		}
	}
	if len(sum) == 0 {
		return Value{}
	}

	return Value{terms: sum}
}

// Sub returns v - o.
func (v Value) Sub(o Value) Value {
	return v.Add(o.MulInt(-1))
}

// MulInt returns v scaled by the concrete factor k.
func (v Value) MulInt(k int64) Value {
	if k == 0 {
		return Value{}
	}
	prod := make(map[string]int64, len(v.terms))
	for m, c := range v.terms {
		prod[m] = c * k
	}

	return Value{terms: prod}
}

// Mul returns the polynomial product v * o.
func (v Value) Mul(o Value) Value {
	prod := make(map[string]int64)
	for m1, c1 := range v.terms {
		for m2, c2 := range o.terms {
			m := mergeMonomials(m1, m2)
			prod[m] += c1 * c2
			if prod[m] == 0 {
				delete(prod, m)
			}
		}
	}
	if len(prod) == 0 {
		return Value{}
	}

	return Value{terms: prod}
}

// DivExact returns v / k, failing with ErrInexactDivision unless every
// coefficient is divisible by k.
func (v Value) DivExact(k int64) (Value, error) {
	if k == 0 {
		return Value{}, fmt.Errorf("%w: division by zero", ErrInexactDivision)
	}
	quot := make(map[string]int64, len(v.terms))
	for m, c := range v.terms {
		if c%k != 0 {
			return Value{}, fmt.Errorf("%w: %s not divisible by %d", ErrInexactDivision, v, k)
		}
		if q := c / k; q != 0 {
			quot[m] = q
		}
	}
	if len(quot) == 0 {
		return Value{}, nil
	}

	return Value{terms: quot}, nil
}

// mergeMonomials multiplies two monomial keys, keeping symbol factors sorted.
func mergeMonomials(a, b string) string {
	switch {
	case a == "":
		return b
	case b == "":
		return a
	}
	parts := append(strings.Split(a, "*"), strings.Split(b, "*")...)
	sort.Strings(parts)

	return strings.Join(parts, "*")
}

// IsConcrete reports whether v carries no symbolic terms.
func (v Value) IsConcrete() bool {
	for m := range v.terms {
		if m != "" {
			return false
		}
	}

	return true
}

// Int returns the concrete integer value, or ErrNotConcrete if any symbolic
// term remains.
func (v Value) Int() (int64, error) {
	if !v.IsConcrete() {
		return 0, fmt.Errorf("%w: %s", ErrNotConcrete, v)
	}

	return v.terms[""], nil
}

// AsInt returns the concrete value narrowed to the platform int.
// Narrowing is checked via safecast; symbolic values yield ErrNotConcrete.
func (v Value) AsInt() (int, error) {
	n, err := v.Int()
	if err != nil {
		return 0, err
	}
	i, err := safecast.Conv[int](n)
	if err != nil {
		return 0, fmt.Errorf("symb: %s overflows int: %w", v, err)
	}

	return i, nil
}

// KnownPositive reports whether v is provably > 0 assuming every symbol ≥ 1.
// A polynomial with non-negative coefficients is bounded below by the sum of
// its coefficients, so it suffices that no coefficient is negative and the
// coefficient sum is positive.
func (v Value) KnownPositive() bool {
	var sum int64
	for _, c := range v.terms {
		if c < 0 {
			return false
		}
		sum += c
	}

	return sum > 0
}

// KnownNonNegative reports whether v is provably ≥ 0 assuming every
// symbol ≥ 1.
func (v Value) KnownNonNegative() bool {
	for _, c := range v.terms {
		if c < 0 {
			return false
		}
	}

	return true
}

// Equal reports structural equality of the canonical forms.
func (v Value) Equal(o Value) bool {
	if len(v.terms) != len(o.terms) {
		return false
	}
	for m, c := range v.terms {
		if o.terms[m] != c {
			return false
		}
	}

	return true
}

// String renders the canonical form with monomials sorted by (degree, name),
// e.g. "L*n_b + L + n_c - 2". The rendering is deterministic and is safe to
// use as cache-key material.
func (v Value) String() string {
	if len(v.terms) == 0 {
		return "0"
	}

	monomials := make([]string, 0, len(v.terms))
	for m := range v.terms {
		monomials = append(monomials, m)
	}
	sort.Slice(monomials, func(i, j int) bool {
		di, dj := degree(monomials[i]), degree(monomials[j])
		if di != dj {
			return di > dj
		}

		return monomials[i] < monomials[j]
	})

	var sb strings.Builder
	for i, m := range monomials {
		c := v.terms[m]
		switch {
		case i == 0 && c < 0:
			sb.WriteString("-")
			c = -c
		case i > 0 && c < 0:
			sb.WriteString(" - ")
			c = -c
		case i > 0:
			sb.WriteString(" + ")
		}
		switch {
		case m == "":
			fmt.Fprintf(&sb, "%d", c)
		case c == 1:
			sb.WriteString(m)
		default:
			fmt.Fprintf(&sb, "%d*%s", c, m)
		}
	}

	return sb.String()
}

// degree counts the symbol factors of a monomial key.
func degree(m string) int {
	if m == "" {
		return 0
	}

	return strings.Count(m, "*") + 1
}
