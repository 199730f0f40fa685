package rational

import (
	"fmt"
	"io"
	"log/slog"
	"math"

	"github.com/roach88/polykit/internal/poly"
)

// DefaultCancelTolerance bounds both the distance between a zero and a pole
// that cancel and the relative residual a cancelled factor may leave.
const DefaultCancelTolerance = 1e-9

// Simplifier cancels linear factors shared by numerator and denominator.
type Simplifier struct {
	finder    *poly.RootFinder
	tolerance float64
	logger    *slog.Logger
}

// NewSimplifier returns a Simplifier. A nil finder uses the default root
// configuration and a nil logger discards.
func NewSimplifier(finder *poly.RootFinder, tolerance float64, logger *slog.Logger) (*Simplifier, error) {
	if tolerance < 0 || math.IsNaN(tolerance) {
		return nil, fmt.Errorf("cancel tolerance must be non-negative, got %g", tolerance)
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if finder == nil {
		f, err := poly.NewRootFinder(poly.DefaultRootConfig(), logger)
		if err != nil {
			return nil, err
		}
		finder = f
	}
	return &Simplifier{finder: finder, tolerance: tolerance, logger: logger}, nil
}

var defaultSimplifier = &Simplifier{
	finder:    poly.DefaultRootFinder(),
	tolerance: DefaultCancelTolerance,
	logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
}

// Simplify cancels common linear factors with the default settings.
func Simplify(f Function) Function {
	return defaultSimplifier.Simplify(f)
}

// Simplify repeatedly finds a real zero of the numerator that is also a
// root of the denominator, divides both sides by (x - value), and drops the
// value from both candidate sets. It stops when no common value remains.
//
// Poles come from the real roots of the denominator. Repeated denominator
// roots usually escape the numeric finder, so a numerator zero also counts as
// a pole when the denominator vanishes there. "Vanishes" is relative: |v(z)|
// must be within the cancel tolerance of sum |c_i|·|z|^i, the size of the
// terms being added up, so a small-coefficient denominator is not mistaken
// for one with a root. A factor is only cancelled when both divisions leave
// such a negligible remainder. A failed root search keeps whatever roots it
// found before failing. The result may still share complex or unfound
// factors.
func (s *Simplifier) Simplify(f Function) Function {
	u, v := f.Numerator, f.Den()
	if u.IsZero() || v.IsZero() {
		return Function{Numerator: u, Denominator: f.Denominator}
	}

	zeros := s.roots(u, "numerator")
	poles := s.roots(v, "denominator")

	cancelled := 0
	for {
		zi, pi, ok := s.common(zeros, poles, u, v)
		if !ok {
			break
		}
		value := zeros[zi]

		nu, okU := s.divide(u, value)
		nv, okV := s.divide(v, value)
		if !okU || !okV {
			s.logger.Debug("cancellation refused, inexact division", "value", value)
			break
		}
		u, v = nu, nv
		cancelled++

		s.logger.Debug("cancelled common factor", "value", value, "numerator", u.String(), "denominator", v.String())

		zeros = remove(zeros, zi)
		if pi >= 0 {
			poles = remove(poles, pi)
		}
	}

	if cancelled == 0 {
		return f
	}
	return New(u, v)
}

// common returns the first zero that matches a pole, with the pole's index,
// or -1 for the pole index when the match came from evaluating v. Either way
// both u and v must vanish at the zero.
func (s *Simplifier) common(zeros, poles []float64, u, v poly.Polynomial) (int, int, bool) {
	for zi, z := range zeros {
		if !s.vanishes(u, z) || !s.vanishes(v, z) {
			continue
		}
		for pi, p := range poles {
			if math.Abs(z-p) <= s.tolerance {
				return zi, pi, true
			}
		}
		return zi, -1, true
	}
	return 0, 0, false
}

// vanishes reports whether p(x) is negligible next to the terms of p at x.
func (s *Simplifier) vanishes(p poly.Polynomial, x float64) bool {
	return nearlyZero(p.EvaluateAt(x), s.tolerance*magnitude(p, x))
}

// divide returns p / (x - value) when the remainder is negligible.
func (s *Simplifier) divide(p poly.Polynomial, value float64) (poly.Polynomial, bool) {
	q, err := p.Div(poly.New(1, -value))
	if err != nil {
		return poly.Polynomial{}, false
	}
	if rest, ok := q.Rest(); ok && !nearlyZero(rest.At(0).Coefficient, s.tolerance*magnitude(p, value)) {
		return poly.Polynomial{}, false
	}
	return poly.New(q.Coefficients()...), true
}

func (s *Simplifier) roots(p poly.Polynomial, side string) []float64 {
	roots, err := s.finder.FindZeros(p)
	if err != nil {
		s.logger.Debug("incomplete candidates", "side", side, "polynomial", p.String(), "found", len(roots), "error", err)
	}
	return roots
}

// magnitude returns sum |c_i|·|x|^i.
func magnitude(p poly.Polynomial, x float64) float64 {
	ax, acc := math.Abs(x), 0.0
	for _, c := range p.Coefficients() {
		acc = float64(acc*ax) + math.Abs(c)
	}
	return acc
}

func remove(xs []float64, i int) []float64 {
	out := make([]float64, 0, len(xs)-1)
	out = append(out, xs[:i]...)
	return append(out, xs[i+1:]...)
}
