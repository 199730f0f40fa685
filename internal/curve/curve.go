package curve

import (
	"fmt"
	"io"
	"log/slog"
	"math"
	"sort"

	"github.com/roach88/polykit/internal/poly"
	"github.com/roach88/polykit/internal/rational"
)

// Symmetry classifies a graph's symmetry about the origin.
type Symmetry string

const (
	// SymmetryAxial means f(-x) == f(x), mirror symmetry about the y-axis.
	SymmetryAxial Symmetry = "axial"

	// SymmetryPoint means f(-x) == -f(x), point symmetry about the origin.
	SymmetryPoint Symmetry = "point"

	// SymmetryNone means neither holds.
	SymmetryNone Symmetry = "none"
)

// Point is a location on the graph.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Report is the result of Analyze.
type Report struct {
	Function    string    `json:"function"`
	Simplified  string    `json:"simplified"`
	Zeros       []float64 `json:"zeros"`
	Poles       []float64 `json:"poles"`
	YIntercept  *float64  `json:"y_intercept,omitempty"`
	Symmetry    Symmetry  `json:"symmetry"`
	Maxima      []Point   `json:"maxima"`
	Minima      []Point   `json:"minima"`
	Inflections []Point   `json:"inflections"`
	Warnings    []string  `json:"warnings,omitempty"`
}

func (r *Report) warn(format string, args ...any) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

// Analyzer runs curve analysis with a shared finder and simplifier.
type Analyzer struct {
	finder     *poly.RootFinder
	simplifier *rational.Simplifier
	tolerance  float64
	logger     *slog.Logger
}

// NewAnalyzer returns an Analyzer. tolerance is used both to merge nearby
// roots and to decide whether a value is zero.
func NewAnalyzer(finder *poly.RootFinder, tolerance float64, logger *slog.Logger) (*Analyzer, error) {
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
	simplifier, err := rational.NewSimplifier(finder, tolerance, logger)
	if err != nil {
		return nil, err
	}
	return &Analyzer{finder: finder, simplifier: simplifier, tolerance: tolerance, logger: logger}, nil
}

// Analyze reports the features of f's graph. It fails only when f has the
// zero polynomial as denominator.
func (a *Analyzer) Analyze(f rational.Function) (*Report, error) {
	if f.Den().IsZero() {
		return nil, fmt.Errorf("analyze %s: %w", f, poly.ErrDivideByZero)
	}

	g := a.simplifier.Simplify(f)
	r := &Report{
		Function:    f.String(),
		Simplified:  g.String(),
		Zeros:       []float64{},
		Poles:       []float64{},
		Maxima:      []Point{},
		Minima:      []Point{},
		Inflections: []Point{},
	}

	r.Poles = a.roots(r, g.Den(), "poles")
	for _, z := range a.roots(r, g.Numerator, "zeros") {
		if !a.isPole(g, z) {
			r.Zeros = append(r.Zeros, z)
		}
	}

	if !a.isPole(g, 0) {
		y := g.EvaluateAt(0)
		r.YIntercept = &y
	}
	r.Symmetry = symmetryOf(g)

	d1 := a.simplifier.Simplify(rational.Differentiate(g))
	d2 := a.simplifier.Simplify(rational.Differentiate(d1))

	for _, x := range a.roots(r, d1.Numerator, "extrema") {
		if a.isPole(g, x) {
			continue
		}
		pt := Point{X: x, Y: g.EvaluateAt(x)}
		switch a.curvature(d1, d2, x) {
		case 1:
			r.Minima = append(r.Minima, pt)
		case -1:
			r.Maxima = append(r.Maxima, pt)
		}
	}

	for _, x := range a.roots(r, d2.Numerator, "inflections") {
		if a.isPole(g, x) {
			continue
		}
		if a.signChanges(d2, x) {
			r.Inflections = append(r.Inflections, Point{X: x, Y: g.EvaluateAt(x)})
		}
	}

	a.logger.Debug("analysis complete",
		"function", r.Function,
		"zeros", len(r.Zeros),
		"poles", len(r.Poles),
		"warnings", len(r.Warnings))
	return r, nil
}

// roots returns the sorted, de-duplicated real roots of p. Partial results
// from a failed search are kept and the failure becomes a warning.
func (a *Analyzer) roots(r *Report, p poly.Polynomial, what string) []float64 {
	if p.Order() == 0 {
		return []float64{}
	}
	found, err := a.finder.FindZeros(p)
	if err != nil {
		r.warn("%s: search in %s incomplete: %v", what, p, err)
	}
	sort.Float64s(found)

	out := []float64{}
	for _, x := range found {
		if x == 0 {
			x = 0 // drop the sign of -0
		}
		if len(out) > 0 && math.Abs(out[len(out)-1]-x) <= a.tolerance {
			continue
		}
		out = append(out, x)
	}
	return out
}

func (a *Analyzer) isPole(f rational.Function, x float64) bool {
	return math.Abs(f.Den().EvaluateAt(x)) <= a.tolerance
}

// curvature returns +1 for a local minimum at x, -1 for a maximum and 0 for
// neither. The second derivative decides; if it vanishes, the sign change of
// the first derivative around x does.
func (a *Analyzer) curvature(d1, d2 rational.Function, x float64) int {
	s := d2.EvaluateAt(x)
	switch {
	case s > a.tolerance:
		return 1
	case s < -a.tolerance:
		return -1
	}
	left, right := d1.EvaluateAt(x-probe(x)), d1.EvaluateAt(x+probe(x))
	switch {
	case left < 0 && right > 0:
		return 1
	case left > 0 && right < 0:
		return -1
	}
	return 0
}

// signChanges reports whether f changes sign across x.
func (a *Analyzer) signChanges(f rational.Function, x float64) bool {
	left, right := f.EvaluateAt(x-probe(x)), f.EvaluateAt(x+probe(x))
	return (left < 0 && right > 0) || (left > 0 && right < 0)
}

func probe(x float64) float64 {
	return 1e-6 * math.Max(1, math.Abs(x))
}

// parity is +1 for even, -1 for odd, 0 for mixed. The zero polynomial is even.
func parity(p poly.Polynomial) int {
	even, odd := true, true
	for _, t := range p.Terms() {
		if t.Coefficient == 0 {
			continue
		}
		if t.Exponent%2 == 0 {
			odd = false
		} else {
			even = false
		}
	}
	switch {
	case even:
		return 1
	case odd:
		return -1
	}
	return 0
}

func symmetryOf(f rational.Function) Symmetry {
	pn, pd := parity(f.Numerator), parity(f.Den())
	switch {
	case pn == 0 || pd == 0:
		return SymmetryNone
	case pn == pd:
		return SymmetryAxial
	default:
		return SymmetryPoint
	}
}
