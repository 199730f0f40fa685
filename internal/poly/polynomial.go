package poly

import (
	"fmt"
	"sort"
)

// Polynomial is a single-variable polynomial in canonical dense form.
//
// Coefficients are stored highest degree first. A Polynomial produced by Div
// may also carry the remainder of that division, see Rest.
type Polynomial struct {
	coeffs []float64
	rest   []float64
}

// New builds a polynomial from coefficients ordered highest degree first.
// Every power must be supplied, so New(1, 0, -4) is x^2 - 4. Leading zeros
// are dropped and no arguments yields the zero polynomial.
func New(coefficients ...float64) Polynomial {
	return Polynomial{coeffs: canonical(coefficients)}
}

// FromTerms builds a polynomial from terms in any order. Terms sharing an
// exponent are summed and missing exponents are filled with zeros.
func FromTerms(terms ...Term) (Polynomial, error) {
	for _, t := range terms {
		if t.Exponent < 0 {
			return Polynomial{}, newError(CodeNegativeExponent, "FromTerms",
				"term %s has negative exponent %d", t, t.Exponent)
		}
	}
	dense := InterpolateTerms(CombineTerms(terms))
	coeffs := make([]float64, len(dense))
	for i, t := range dense {
		coeffs[i] = t.Coefficient
	}
	return Polynomial{coeffs: coeffs}, nil
}

// MustFromTerms is like FromTerms but panics on error.
// Use only with literal terms known to be valid.
func MustFromTerms(terms ...Term) Polynomial {
	p, err := FromTerms(terms...)
	if err != nil {
		panic(fmt.Sprintf("MustFromTerms: %v", err))
	}
	return p
}

// CombineTerms groups terms by exponent and sums each group. The result is
// sorted by descending exponent and does not depend on input order beyond
// floating-point summation order.
func CombineTerms(terms []Term) []Term {
	sums := make(map[int]float64, len(terms))
	order := make([]int, 0, len(terms))
	for _, t := range terms {
		if _, seen := sums[t.Exponent]; !seen {
			order = append(order, t.Exponent)
		}
		sums[t.Exponent] += t.Coefficient
	}
	sort.Sort(sort.Reverse(sort.IntSlice(order)))

	out := make([]Term, len(order))
	for i, e := range order {
		out[i] = Term{Coefficient: sums[e], Exponent: e}
	}
	return out
}

// InterpolateTerms pads a combined, descending term list with zero terms for
// every missing exponent down to 0, then strips leading zero terms while more
// than one term remains. An empty input yields the zero term.
func InterpolateTerms(terms []Term) []Term {
	if len(terms) == 0 {
		return []Term{{}}
	}
	highest := terms[0].Exponent
	for _, t := range terms {
		if t.Exponent > highest {
			highest = t.Exponent
		}
	}

	byExp := make(map[int]float64, len(terms))
	for _, t := range terms {
		byExp[t.Exponent] += t.Coefficient
	}

	out := make([]Term, 0, highest+1)
	for e := highest; e >= 0; e-- {
		out = append(out, Term{Coefficient: byExp[e], Exponent: e})
	}
	for len(out) > 1 && out[0].Coefficient == 0 {
		out = out[1:]
	}
	return out
}

// canonical copies coefficients and strips leading zeros.
func canonical(coefficients []float64) []float64 {
	i := 0
	for i < len(coefficients)-1 && coefficients[i] == 0 {
		i++
	}
	if i >= len(coefficients) {
		return []float64{0}
	}
	out := make([]float64, len(coefficients)-i)
	copy(out, coefficients[i:])
	return out
}

// dense returns the coefficient slice, treating the zero value as {0}.
// Callers must not modify the result.
func (p Polynomial) dense() []float64 {
	if len(p.coeffs) == 0 {
		return []float64{0}
	}
	return p.coeffs
}

// Order returns the degree. The zero polynomial has order 0.
func (p Polynomial) Order() int {
	return len(p.dense()) - 1
}

// Len returns the number of terms, which is always Order()+1.
func (p Polynomial) Len() int {
	return len(p.dense())
}

// IsZero reports whether p is the zero polynomial.
func (p Polynomial) IsZero() bool {
	c := p.dense()
	return len(c) == 1 && c[0] == 0
}

// At returns the i-th term in canonical order, so At(0) is the leading term.
// It panics if i is out of range, like a slice index.
func (p Polynomial) At(i int) Term {
	c := p.dense()
	return Term{Coefficient: c[i], Exponent: len(c) - 1 - i}
}

// WithTerm returns a copy of p with the i-th term replaced by t and the
// result canonicalized again. The remainder is not carried over.
func (p Polynomial) WithTerm(i int, t Term) (Polynomial, error) {
	terms := p.Terms()
	if i < 0 || i >= len(terms) {
		return Polynomial{}, newError(CodeWrongShape, "WithTerm",
			"index %d out of range [0,%d)", i, len(terms))
	}
	terms[i] = t
	return FromTerms(terms...)
}

// Terms returns a copy of the canonical term list.
func (p Polynomial) Terms() []Term {
	c := p.dense()
	out := make([]Term, len(c))
	for i, v := range c {
		out[i] = Term{Coefficient: v, Exponent: len(c) - 1 - i}
	}
	return out
}

// Coefficients returns a copy of the coefficients, highest degree first.
func (p Polynomial) Coefficients() []float64 {
	c := p.dense()
	out := make([]float64, len(c))
	copy(out, c)
	return out
}

// Coefficient returns the coefficient of x^exp, or 0 if exp is out of range.
func (p Polynomial) Coefficient(exp int) float64 {
	c := p.dense()
	if exp < 0 || exp >= len(c) {
		return 0
	}
	return c[len(c)-1-exp]
}

// Rest returns the remainder left by the Div call that produced p.
// The second result is false when that division was exact or p did not come
// from a division.
func (p Polynomial) Rest() (Polynomial, bool) {
	if p.rest == nil {
		return Polynomial{}, false
	}
	return New(p.rest...), true
}

// Clone returns a deep copy, remainder included.
func (p Polynomial) Clone() Polynomial {
	out := Polynomial{coeffs: p.Coefficients()}
	if p.rest != nil {
		out.rest = append([]float64(nil), p.rest...)
	}
	return out
}

// Equal compares order, term count and each term within Epsilon.
// Rest is not compared.
func (p Polynomial) Equal(q Polynomial) bool {
	a, b := p.dense(), q.dense()
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !p.At(i).Equal(q.At(i)) {
			return false
		}
	}
	return true
}

// Equal is the nil-safe comparison: a nil operand is never equal to anything,
// including another nil.
func Equal(a, b *Polynomial) bool {
	if a == nil || b == nil {
		return false
	}
	return a.Equal(*b)
}

// Add returns p + q.
func (p Polynomial) Add(q Polynomial) Polynomial {
	a, b := p.dense(), q.dense()
	if len(a) < len(b) {
		a, b = b, a
	}
	out := make([]float64, len(a))
	copy(out, a)
	off := len(a) - len(b)
	for i, v := range b {
		out[off+i] += v
	}
	return New(out...)
}

// Sub returns p - q.
func (p Polynomial) Sub(q Polynomial) Polynomial {
	return p.Add(q.Negate())
}

// Negate returns -p.
func (p Polynomial) Negate() Polynomial {
	return p.Scale(-1)
}

// AddTerm returns p + t.
func (p Polynomial) AddTerm(t Term) (Polynomial, error) {
	q, err := FromTerms(t)
	if err != nil {
		return Polynomial{}, err
	}
	return p.Add(q), nil
}

// SubTerm returns p - t.
func (p Polynomial) SubTerm(t Term) (Polynomial, error) {
	return p.AddTerm(t.Negate())
}

// MulTerm returns p · t.
func (p Polynomial) MulTerm(t Term) (Polynomial, error) {
	q, err := FromTerms(t)
	if err != nil {
		return Polynomial{}, err
	}
	return p.Mul(q), nil
}

// AddScalar returns p + k.
func (p Polynomial) AddScalar(k float64) Polynomial {
	return p.Add(New(k))
}

// SubScalar returns p - k.
func (p Polynomial) SubScalar(k float64) Polynomial {
	return p.Add(New(-k))
}

// Mul returns the full distributive product p · q.
func (p Polynomial) Mul(q Polynomial) Polynomial {
	a, b := p.dense(), q.dense()
	out := make([]float64, len(a)+len(b)-1)
	for i, x := range a {
		for j, y := range b {
			out[i+j] += x * y
		}
	}
	return New(out...)
}

// Scale multiplies every coefficient by k.
func (p Polynomial) Scale(k float64) Polynomial {
	c := p.dense()
	out := make([]float64, len(c))
	for i, v := range c {
		out[i] = v * k
	}
	return New(out...)
}

// DivScalar divides every coefficient by k.
func (p Polynomial) DivScalar(k float64) (Polynomial, error) {
	if k == 0 {
		return Polynomial{}, newError(CodeDivideByZero, "DivScalar", "scalar is zero")
	}
	c := p.dense()
	out := make([]float64, len(c))
	for i, v := range c {
		out[i] = v / k
	}
	return New(out...), nil
}
