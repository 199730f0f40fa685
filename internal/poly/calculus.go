package poly

// float64 conversions around products below stop the compiler from fusing
// multiply-add, so results are identical on every GOARCH.

// EvaluateAt returns p(x) using Horner's scheme.
func (p Polynomial) EvaluateAt(x float64) float64 {
	acc := 0.0
	for _, c := range p.dense() {
		acc = float64(acc*x) + c
	}
	return acc
}

// EvaluateComplex returns p(z) using Horner's scheme.
func (p Polynomial) EvaluateComplex(z complex128) complex128 {
	var acc complex128
	for _, c := range p.dense() {
		acc = acc*z + complex(c, 0)
	}
	return acc
}

// Differentiate returns dp/dx.
func (p Polynomial) Differentiate() Polynomial {
	c := p.dense()
	if len(c) == 1 {
		return Polynomial{}
	}
	out := make([]float64, len(c)-1)
	for i := range out {
		out[i] = c[i] * float64(len(c)-1-i)
	}
	return New(out...)
}

// Integrate returns an antiderivative of p. The integration constant is
// always zero, so Integrate(Differentiate(p)) loses p's constant term.
func (p Polynomial) Integrate() Polynomial {
	c := p.dense()
	out := make([]float64, len(c)+1)
	for i, v := range c {
		out[i] = v / float64(len(c)-i)
	}
	return New(out...)
}
