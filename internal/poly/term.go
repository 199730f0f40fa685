package poly

import (
	"math"
	"strconv"
)

// Epsilon is the absolute tolerance used when comparing coefficients.
const Epsilon = 1e-14

// Term is a single monomial c·x^e.
type Term struct {
	Coefficient float64 `json:"coefficient"`
	Exponent    int     `json:"exponent"`
}

// Equal reports whether both terms share an exponent and their coefficients
// differ by less than Epsilon.
func (t Term) Equal(o Term) bool {
	return t.Exponent == o.Exponent && math.Abs(t.Coefficient-o.Coefficient) < Epsilon
}

// Mul multiplies coefficients and adds exponents.
func (t Term) Mul(o Term) Term {
	return Term{Coefficient: t.Coefficient * o.Coefficient, Exponent: t.Exponent + o.Exponent}
}

// Div divides coefficients and subtracts exponents. The result may carry a
// negative exponent; FromTerms rejects such terms.
func (t Term) Div(o Term) (Term, error) {
	if o.Coefficient == 0 {
		return Term{}, newError(CodeDivideByZero, "Term.Div", "divisor coefficient is zero")
	}
	return Term{Coefficient: t.Coefficient / o.Coefficient, Exponent: t.Exponent - o.Exponent}, nil
}

// Scale multiplies the coefficient by k.
func (t Term) Scale(k float64) Term {
	return Term{Coefficient: t.Coefficient * k, Exponent: t.Exponent}
}

// DivScalar divides the coefficient by k.
func (t Term) DivScalar(k float64) (Term, error) {
	if k == 0 {
		return Term{}, newError(CodeDivideByZero, "Term.DivScalar", "scalar is zero")
	}
	return Term{Coefficient: t.Coefficient / k, Exponent: t.Exponent}, nil
}

// Negate flips the sign of the coefficient.
func (t Term) Negate() Term {
	return Term{Coefficient: -t.Coefficient, Exponent: t.Exponent}
}

// Add returns t + o as a polynomial: one term for equal exponents, two
// otherwise.
func (t Term) Add(o Term) (Polynomial, error) {
	if t.Exponent == o.Exponent {
		return FromTerms(Term{Coefficient: t.Coefficient + o.Coefficient, Exponent: t.Exponent})
	}
	return FromTerms(t, o)
}

// Sub returns t - o as a polynomial.
func (t Term) Sub(o Term) (Polynomial, error) {
	return t.Add(o.Negate())
}

// Differentiate applies the power rule. Constants become the zero term.
func (t Term) Differentiate() Term {
	if t.Exponent == 0 {
		return Term{}
	}
	return Term{Coefficient: t.Coefficient * float64(t.Exponent), Exponent: t.Exponent - 1}
}

// Integrate returns the antiderivative without an integration constant.
func (t Term) Integrate() Term {
	return Term{Coefficient: t.Coefficient / float64(t.Exponent+1), Exponent: t.Exponent + 1}
}

func (t Term) String() string {
	c := strconv.FormatFloat(t.Coefficient, 'g', -1, 64)
	switch t.Exponent {
	case 0:
		return c
	case 1:
		return c + "x"
	default:
		return c + "x^" + strconv.Itoa(t.Exponent)
	}
}
