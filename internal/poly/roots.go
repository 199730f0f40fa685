package poly

import (
	"fmt"
	"io"
	"log/slog"
	"math"
)

// RootConfig tunes the numeric root finder.
type RootConfig struct {
	// ScanFrom and ScanTo bound the coarse bracket scan.
	ScanFrom float64 `json:"scan_from"`
	ScanTo   float64 `json:"scan_to"`

	// ScanStep is the distance between scan samples.
	ScanStep float64 `json:"scan_step"`

	// Tolerance is the |f(x)| at which Halley refinement stops.
	Tolerance float64 `json:"tolerance"`

	// MaxIterations caps Halley refinement per bracket.
	MaxIterations int `json:"max_iterations"`

	// DeflationTolerance is the largest synthetic-division remainder for which
	// a refined root is still recorded. Zero demands an exact deflation.
	DeflationTolerance float64 `json:"deflation_tolerance"`
}

// DefaultRootConfig returns the scan over [-40, 40] in steps of 0.4 with
// Halley refinement to 1e-20 or 1000 iterations.
func DefaultRootConfig() RootConfig {
	return RootConfig{
		ScanFrom:           -40,
		ScanTo:             40,
		ScanStep:           0.4,
		Tolerance:          1e-20,
		MaxIterations:      1000,
		DeflationTolerance: 0,
	}
}

// Validate checks the configuration for internal consistency.
func (c RootConfig) Validate() error {
	if c.ScanStep <= 0 {
		return fmt.Errorf("scan step must be positive, got %g", c.ScanStep)
	}
	if c.ScanTo <= c.ScanFrom {
		return fmt.Errorf("scan range [%g, %g] is empty", c.ScanFrom, c.ScanTo)
	}
	if c.Tolerance < 0 {
		return fmt.Errorf("tolerance must be non-negative, got %g", c.Tolerance)
	}
	if c.MaxIterations < 1 {
		return fmt.Errorf("max iterations must be at least 1, got %d", c.MaxIterations)
	}
	if c.DeflationTolerance < 0 {
		return fmt.Errorf("deflation tolerance must be non-negative, got %g", c.DeflationTolerance)
	}
	return nil
}

// samples returns the index of the last scan sample.
func (c RootConfig) samples() int {
	return int(math.Floor((c.ScanTo-c.ScanFrom)/c.ScanStep + 1e-9))
}

// RootFinder locates real roots by degree reduction: bracket, refine with
// Halley's method, deflate, and finish with the closed forms for degree 2
// and 1.
type RootFinder struct {
	cfg    RootConfig
	logger *slog.Logger
}

// NewRootFinder validates cfg and returns a finder. A nil logger discards.
func NewRootFinder(cfg RootConfig, logger *slog.Logger) (*RootFinder, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid root config: %w", err)
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &RootFinder{cfg: cfg, logger: logger}, nil
}

// Config returns the finder's configuration.
func (f *RootFinder) Config() RootConfig {
	return f.cfg
}

var defaultFinder = &RootFinder{cfg: DefaultRootConfig()}

// DefaultRootFinder returns the finder used by the package-level functions.
// It logs through slog.Default.
func DefaultRootFinder() *RootFinder {
	return defaultFinder
}

func (f *RootFinder) log() *slog.Logger {
	if f.logger == nil {
		return slog.Default()
	}
	return f.logger
}

// FindZeros returns the real roots of p found with the default configuration.
func FindZeros(p Polynomial) ([]float64, error) {
	return defaultFinder.FindZeros(p)
}

// Zeros is shorthand for FindZeros(p).
func (p Polynomial) Zeros() ([]float64, error) {
	return FindZeros(p)
}

// SolveQuadratic solves a degree-2 polynomial with the pq-formula.
func SolveQuadratic(p Polynomial) ([]float64, error) {
	return defaultFinder.SolveQuadratic(p)
}

// SolveLinear solves a degree-1 polynomial.
func SolveLinear(p Polynomial) (float64, error) {
	return defaultFinder.SolveLinear(p)
}

// RefineHalley runs Halley's method from x0 with the default configuration.
func RefineHalley(p Polynomial, x0 float64) float64 {
	return defaultFinder.RefineHalley(p, x0)
}

// FindZeros returns the real roots of p.
//
// While the working polynomial has order 3 or more, a root is bracketed,
// refined and divided out. The root is recorded only if the deflation
// remainder is within DeflationTolerance; reduction continues either way.
// Orders 2 and 1 are solved in closed form. Constant polynomials, the zero
// polynomial included, have no reported roots. Roots are not sorted and
// repeated roots appear once per multiplicity found. On error the roots
// recorded before the failure are returned alongside it.
func (f *RootFinder) FindZeros(p Polynomial) ([]float64, error) {
	roots := []float64{}
	work := p
	for work.Order() >= 3 {
		x, exact, ok := f.bracket(work)
		if !ok {
			return roots, newError(CodeNoZeroInInterval, "FindZeros",
				"no zero between %g and %g for %s", f.cfg.ScanFrom, f.cfg.ScanTo, work)
		}

		root := x
		if !exact {
			root = f.RefineHalley(work, x)
		}

		quot, rem := work.Deflate(root)
		if math.Abs(rem) <= f.cfg.DeflationTolerance {
			roots = append(roots, root)
		} else {
			f.log().Debug("inexact deflation, root dropped",
				"root", root,
				"remainder", rem,
				"order", work.Order())
		}
		work = quot
	}

	switch work.Order() {
	case 2:
		z, err := f.SolveQuadratic(work)
		if err != nil {
			return roots, err
		}
		roots = append(roots, z...)
	case 1:
		z, err := f.SolveLinear(work)
		if err != nil {
			return roots, err
		}
		roots = append(roots, z)
	}
	return roots, nil
}

// bracket scans p and p' for the first sample where p changes sign
// (<0 to >=0, or >=0 to <0) or p' changes sign strictly. An exact zero of p at
// a sample is reported with exact set.
func (f *RootFinder) bracket(p Polynomial) (float64, bool, bool) {
	dp := p.Differentiate()
	var prevF, prevD float64
	for k := 0; k <= f.cfg.samples(); k++ {
		x := f.cfg.ScanFrom + float64(k)*f.cfg.ScanStep
		fx, dx := p.EvaluateAt(x), dp.EvaluateAt(x)
		if k > 0 && (crosses(prevF, fx) || crossesStrict(prevD, dx)) {
			f.log().Debug("bracket found", "x", x, "f", fx, "df", dx)
			return x, false, true
		}
		if fx == 0 {
			return x, true, true
		}
		prevF, prevD = fx, dx
	}
	return 0, false, false
}

func crosses(prev, cur float64) bool {
	return (prev < 0 && cur >= 0) || (prev >= 0 && cur < 0)
}

func crossesStrict(prev, cur float64) bool {
	return (prev < 0 && cur > 0) || (prev > 0 && cur < 0)
}

// RefineHalley improves the root estimate x0 of p with the iteration
//
//	h = -f/f', r = f''/f'
//	x' = x + h(1 + rh/2) / (1 + rh + rh²/6)
//
// It stops when |p(x)| <= Tolerance, after MaxIterations, when the iterate no
// longer changes, or when f' vanishes or the step is not finite. The best
// iterate so far is returned; non-convergence is not an error.
func (f *RootFinder) RefineHalley(p Polynomial, x0 float64) float64 {
	d1 := p.Differentiate()
	d2 := d1.Differentiate()

	x := x0
	iter := 1
	for ; iter < f.cfg.MaxIterations && math.Abs(p.EvaluateAt(x)) > f.cfg.Tolerance; iter++ {
		fp := d1.EvaluateAt(x)
		if fp == 0 {
			f.log().Debug("halley stopped: vanishing derivative", "x", x, "iterations", iter)
			break
		}
		h := -p.EvaluateAt(x) / fp
		r := d2.EvaluateAt(x) / fp
		next := x + h*(1+r*h/2)/(1+r*h+r*h*h/6)
		if math.IsNaN(next) || math.IsInf(next, 0) {
			f.log().Debug("halley stopped: non-finite step", "x", x, "iterations", iter)
			break
		}
		if next == x {
			break
		}
		x = next
	}
	if iter >= f.cfg.MaxIterations && math.Abs(p.EvaluateAt(x)) > f.cfg.Tolerance {
		f.log().Debug("halley hit iteration cap", "x", x, "residual", p.EvaluateAt(x))
	}
	return x
}

// SolveQuadratic solves a degree-2 polynomial with the pq-formula after
// normalizing to monic form. The roots are returned as {-p/2+√D, -p/2-√D}
// with D = p²/4 - q; a negative D fails with ErrNegativeDiscriminant.
func (f *RootFinder) SolveQuadratic(in Polynomial) ([]float64, error) {
	if in.Order() != 2 || in.Len() != 3 {
		return nil, newError(CodeWrongShape, "SolveQuadratic", "%s is not of order 2", in)
	}
	a := in.At(0).Coefficient
	if a == 0 {
		return nil, newError(CodeWrongShape, "SolveQuadratic", "leading coefficient is zero")
	}
	p := in.At(1).Coefficient / a
	q := in.At(2).Coefficient / a
	d := p*p/4 - q
	if d < 0 {
		return nil, newError(CodeNegativeDiscriminant, "SolveQuadratic",
			"discriminant %g of %s is negative", d, in)
	}
	root := math.Sqrt(d)
	return []float64{-p/2 + root, -p/2 - root}, nil
}

// SolveLinear returns -c/b for bx + c.
func (f *RootFinder) SolveLinear(in Polynomial) (float64, error) {
	if in.Order() != 1 || in.Len() != 2 {
		return 0, newError(CodeWrongShape, "SolveLinear", "%s is not linear", in)
	}
	return -(in.At(1).Coefficient / in.At(0).Coefficient), nil
}
