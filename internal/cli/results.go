package cli

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/roach88/polykit/internal/poly"
	"github.com/roach88/polykit/internal/rational"
)

// PolyResult is the output of arithmetic and calculus commands.
type PolyResult struct {
	Op     string            `json:"op"`
	Inputs []poly.Polynomial `json:"inputs"`
	Result poly.Polynomial   `json:"result"`
	Rest   *poly.Polynomial  `json:"rest,omitempty"`
}

func (r PolyResult) Text() string {
	if r.Rest != nil {
		return fmt.Sprintf("%s\nrest: %s", r.Result, r.Rest)
	}
	return r.Result.String()
}

// EvalResult is the output of eval. Imag fields are set for complex points.
type EvalResult struct {
	Polynomial poly.Polynomial `json:"polynomial"`
	At         float64         `json:"at"`
	AtImag     float64         `json:"at_imag,omitempty"`
	Value      float64         `json:"value"`
	ValueImag  *float64        `json:"value_imag,omitempty"`
}

func (r EvalResult) Text() string {
	if r.ValueImag != nil {
		return strconv.FormatComplex(complex(r.Value, *r.ValueImag), 'g', -1, 128)
	}
	return formatFloat(r.Value)
}

// RootsResult lists real roots in the order they were found.
type RootsResult struct {
	Polynomial poly.Polynomial `json:"polynomial"`
	Roots      []float64       `json:"roots"`
}

func (r RootsResult) Text() string {
	if len(r.Roots) == 0 {
		return "no real roots"
	}
	sorted := append([]float64(nil), r.Roots...)
	sort.Float64s(sorted)
	lines := make([]string, len(sorted))
	for i, x := range sorted {
		lines[i] = "x = " + formatFloat(x)
	}
	return strings.Join(lines, "\n")
}

// RationalResult is the output of the rational subcommands.
type RationalResult struct {
	Op       string            `json:"op"`
	Input    rational.Function `json:"input"`
	Result   rational.Function `json:"result"`
	Rendered string            `json:"rendered"`
}

func (r RationalResult) Text() string {
	return r.Rendered
}

func formatFloat(v float64) string {
	if v == 0 {
		v = 0 // -0
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}
