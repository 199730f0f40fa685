// Package rational provides functions of the form u(x)/v(x) built on
// poly.Polynomial, with quotient-rule differentiation and cancellation of
// common linear factors.
package rational

import (
	"fmt"
	"math"

	"github.com/roach88/polykit/internal/poly"
)

// Function is the quotient Numerator / Denominator. A nil Denominator means
// the constant 1. No reduced form is maintained.
type Function struct {
	Numerator   poly.Polynomial  `json:"numerator"`
	Denominator *poly.Polynomial `json:"denominator,omitempty"`
}

// New returns u / v.
func New(u, v poly.Polynomial) Function {
	return Function{Numerator: u, Denominator: &v}
}

// FromPolynomial returns u / 1.
func FromPolynomial(u poly.Polynomial) Function {
	return Function{Numerator: u}
}

// Den returns the denominator, substituting 1 for nil.
func (f Function) Den() poly.Polynomial {
	if f.Denominator == nil {
		return poly.New(1)
	}
	return *f.Denominator
}

// IsPolynomial reports whether the denominator is a non-zero constant.
func (f Function) IsPolynomial() bool {
	d := f.Den()
	return d.Order() == 0 && !d.IsZero()
}

// Polynomial returns the function as a single polynomial when the
// denominator is a non-zero constant.
func (f Function) Polynomial() (poly.Polynomial, bool) {
	if !f.IsPolynomial() {
		return poly.Polynomial{}, false
	}
	p, err := f.Numerator.DivScalar(f.Den().At(0).Coefficient)
	if err != nil {
		return poly.Polynomial{}, false
	}
	return p, true
}

// EvaluateAt returns u(x)/v(x). Poles evaluate to ±Inf or NaN.
func (f Function) EvaluateAt(x float64) float64 {
	return f.Numerator.EvaluateAt(x) / f.Den().EvaluateAt(x)
}

// Differentiate applies the quotient rule and returns (u'v - v'u) / v².
// The result is not simplified.
func Differentiate(f Function) Function {
	u, v := f.Numerator, f.Den()
	num := u.Differentiate().Mul(v).Sub(v.Differentiate().Mul(u))
	return New(num, v.Mul(v))
}

// Equal compares numerators and denominators term by term. It does not
// detect equivalent but unreduced forms.
func (f Function) Equal(g Function) bool {
	return f.Numerator.Equal(g.Numerator) && f.Den().Equal(g.Den())
}

func (f Function) String() string {
	if f.Denominator == nil {
		return f.Numerator.String()
	}
	return fmt.Sprintf("(%s) / (%s)", f.Numerator, f.Den())
}

// nearlyZero reports |v| <= tol.
func nearlyZero(v, tol float64) bool {
	return math.Abs(v) <= tol
}
