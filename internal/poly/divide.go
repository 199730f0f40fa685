package poly

import "math"

// Div performs polynomial long division p / divisor.
//
// The quotient is returned; a non-negligible remainder (any coefficient with
// magnitude of at least Epsilon) is attached to it and available through Rest.
// Remainder coefficients below Epsilon are round-off and read as zero.
// Dividing by the zero polynomial fails with ErrDivideByZero and dividing by a
// polynomial of higher degree fails with ErrNotDivisible.
func (p Polynomial) Div(divisor Polynomial) (Polynomial, error) {
	if divisor.IsZero() {
		return Polynomial{}, newError(CodeDivideByZero, "Div", "divisor is the zero polynomial")
	}
	if p.Order() < divisor.Order() {
		return Polynomial{}, newError(CodeNotDivisible, "Div",
			"dividend order %d is lower than divisor order %d", p.Order(), divisor.Order())
	}

	work := p.Coefficients()
	d := divisor.dense()
	n, m := len(work)-1, len(d)-1

	quot := make([]float64, n-m+1)
	for i := range quot {
		c := work[i] / d[0]
		quot[i] = c
		work[i] = 0
		for j := 1; j <= m; j++ {
			work[i+j] -= float64(c * d[j])
		}
	}

	out := New(quot...)
	rem := work[n-m+1:]
	for i, v := range rem {
		if math.Abs(v) < Epsilon {
			rem[i] = 0
		}
	}
	if rest := canonical(rem); len(rest) > 1 || rest[0] != 0 {
		out.rest = rest
	}
	return out, nil
}

// Deflate divides p by (x - root) using synthetic division and returns the
// quotient together with the remainder, which equals p(root).
func (p Polynomial) Deflate(root float64) (Polynomial, float64) {
	c := p.dense()
	if len(c) == 1 {
		return Polynomial{}, c[0]
	}
	quot := make([]float64, len(c)-1)
	acc := 0.0
	for i, v := range c {
		acc = float64(acc*root) + v
		if i < len(quot) {
			quot[i] = acc
		}
	}
	return New(quot...), acc
}
