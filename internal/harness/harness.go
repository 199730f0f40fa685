package harness

import (
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strconv"
	"strings"

	"github.com/roach88/polykit/internal/config"
	"github.com/roach88/polykit/internal/curve"
	"github.com/roach88/polykit/internal/poly"
	"github.com/roach88/polykit/internal/rational"
)

// Harness executes scenarios against one root-finder configuration.
type Harness struct {
	finder     *poly.RootFinder
	simplifier *rational.Simplifier
	analyzer   *curve.Analyzer
	logger     *slog.Logger
}

// New builds a harness from cfg. A nil logger discards.
func New(cfg *config.Config, logger *slog.Logger) (*Harness, error) {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil)) // Suppress logs in tests
	}
	finder, err := poly.NewRootFinder(cfg.RootConfig(), logger)
	if err != nil {
		return nil, err
	}
	simplifier, err := rational.NewSimplifier(finder, cfg.CancelTolerance, logger)
	if err != nil {
		return nil, err
	}
	analyzer, err := curve.NewAnalyzer(finder, cfg.CancelTolerance, logger)
	if err != nil {
		return nil, err
	}
	return &Harness{
		finder:     finder,
		simplifier: simplifier,
		analyzer:   analyzer,
		logger:     logger,
	}, nil
}

// Run executes a scenario with the default configuration.
func Run(scenario *Scenario) (*Result, error) {
	h, err := New(config.Default(), nil)
	if err != nil {
		return nil, err
	}
	return h.Run(scenario), nil
}

// Run executes every step in order and checks each expect clause.
// Step failures are recorded in the result; they never abort the run.
func (h *Harness) Run(scenario *Scenario) *Result {
	result := NewResult()
	for i, step := range scenario.Steps {
		out, err := h.execute(step)
		rec := record(i, step, out, err)
		result.AddStep(rec)

		for _, msg := range checkExpect(step.Expect, out, err) {
			result.AddError(fmt.Sprintf("step %d (%s): %s", i, step.Op, msg))
		}

		h.logger.Debug("step executed",
			"scenario", scenario.Name,
			"step", i,
			"op", step.Op,
			"output", rec.Output,
			"error", rec.Error)
	}
	return result
}

// outcome holds whatever a step produced. Rational results store the
// numerator in poly and the denominator in rest.
type outcome struct {
	value *float64
	poly  *poly.Polynomial
	rest  *poly.Polynomial
	roots []float64
	text  string
}

func (h *Harness) execute(step Step) (outcome, error) {
	p := step.Poly.Polynomial
	var other poly.Polynomial
	if step.Other != nil {
		other = step.Other.Polynomial
	}

	switch step.Op {
	case OpEvaluate:
		if step.Imag != 0 {
			z := p.EvaluateComplex(complex(step.At, step.Imag))
			re := real(z)
			return outcome{value: &re, text: strconv.FormatComplex(z, 'g', -1, 128)}, nil
		}
		v := p.EvaluateAt(step.At)
		return outcome{value: &v}, nil
	case OpAdd:
		return polyOutcome(p.Add(other)), nil
	case OpSubtract:
		return polyOutcome(p.Sub(other)), nil
	case OpMultiply:
		return polyOutcome(p.Mul(other)), nil
	case OpDivide:
		q, err := p.Div(other)
		if err != nil {
			return outcome{}, err
		}
		out := polyOutcome(q)
		if rest, ok := q.Rest(); ok {
			out.rest = &rest
		}
		return out, nil
	case OpScale:
		return polyOutcome(p.Scale(step.Factor)), nil
	case OpDifferentiate:
		return polyOutcome(p.Differentiate()), nil
	case OpIntegrate:
		return polyOutcome(p.Integrate()), nil
	case OpRoots:
		roots, err := h.finder.FindZeros(p)
		return outcome{roots: roots}, err
	case OpQuadratic:
		roots, err := h.finder.SolveQuadratic(p)
		return outcome{roots: roots}, err
	case OpLinear:
		v, err := h.finder.SolveLinear(p)
		if err != nil {
			return outcome{}, err
		}
		return outcome{value: &v}, nil
	case OpRationalDiff:
		return rationalOutcome(rational.Differentiate(h.function(step))), nil
	case OpSimplify:
		return rationalOutcome(h.simplifier.Simplify(h.function(step))), nil
	case OpAnalyze:
		report, err := h.analyzer.Analyze(h.function(step))
		if err != nil {
			return outcome{}, err
		}
		return outcome{
			roots: report.Zeros,
			text: fmt.Sprintf("zeros=%s poles=%s symmetry=%s",
				formatRoots(report.Zeros), formatRoots(report.Poles), report.Symmetry),
		}, nil
	}
	return outcome{}, fmt.Errorf("unknown op %q", step.Op)
}

// function reads poly / other as a rational function; other defaults to 1.
func (h *Harness) function(step Step) rational.Function {
	if step.Other == nil {
		return rational.FromPolynomial(step.Poly.Polynomial)
	}
	return rational.New(step.Poly.Polynomial, step.Other.Polynomial)
}

func polyOutcome(p poly.Polynomial) outcome {
	return outcome{poly: &p}
}

func rationalOutcome(f rational.Function) outcome {
	num, den := f.Numerator, f.Den()
	return outcome{poly: &num, rest: &den, text: f.String()}
}

func record(i int, step Step, out outcome, err error) StepRecord {
	rec := StepRecord{Step: i, Op: step.Op, Input: step.Poly.String()}
	if step.Other != nil {
		rec.Input += " ; " + step.Other.String()
	}
	switch step.Op {
	case OpEvaluate:
		rec.Input += " @ " + formatFloat(step.At)
		if step.Imag > 0 {
			rec.Input += "+" + formatFloat(step.Imag) + "i"
		} else if step.Imag < 0 {
			rec.Input += formatFloat(step.Imag) + "i"
		}
	case OpScale:
		rec.Input += " * " + formatFloat(step.Factor)
	}

	switch {
	case out.text != "":
		rec.Output = out.text
	case out.poly != nil:
		rec.Output = out.poly.String()
		if out.rest != nil {
			rec.Rest = out.rest.String()
		}
	case out.value != nil:
		rec.Output = formatFloat(*out.value)
	case out.roots != nil:
		rec.Output = formatRoots(out.roots)
	}

	if err != nil {
		rec.Error = errorCode(err)
	}
	return rec
}

// errorCode renders poly errors by code and anything else by message.
func errorCode(err error) string {
	if code := poly.CodeOf(err); code != "" {
		return string(code)
	}
	return err.Error()
}

func formatFloat(v float64) string {
	if v == 0 {
		v = 0 // -0
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// formatRoots renders roots sorted ascending, e.g. "[-3, -2, -1]".
func formatRoots(roots []float64) string {
	sorted := append([]float64(nil), roots...)
	sort.Float64s(sorted)
	parts := make([]string, len(sorted))
	for i, r := range sorted {
		parts[i] = formatFloat(r)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
