package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/polykit/internal/curve"
)

// AnalysisResult wraps a curve report for output.
type AnalysisResult struct {
	*curve.Report
}

func (r AnalysisResult) Text() string {
	var b strings.Builder
	fmt.Fprintf(&b, "f(x) = %s\n", r.Function)
	if r.Simplified != r.Function {
		fmt.Fprintf(&b, "simplified: %s\n", r.Simplified)
	}
	fmt.Fprintf(&b, "zeros: %s\n", formatList(r.Zeros))
	fmt.Fprintf(&b, "poles: %s\n", formatList(r.Poles))
	if r.YIntercept != nil {
		fmt.Fprintf(&b, "y-intercept: %s\n", formatFloat(*r.YIntercept))
	} else {
		b.WriteString("y-intercept: none\n")
	}
	fmt.Fprintf(&b, "symmetry: %s\n", r.Symmetry)
	fmt.Fprintf(&b, "maxima: %s\n", formatPoints(r.Maxima))
	fmt.Fprintf(&b, "minima: %s\n", formatPoints(r.Minima))
	fmt.Fprintf(&b, "inflections: %s", formatPoints(r.Inflections))
	for _, w := range r.Warnings {
		fmt.Fprintf(&b, "\nwarning: %s", w)
	}
	return b.String()
}

// NewAnalyzeCommand creates the analyze command.
func NewAnalyzeCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "analyze <numerator> [denominator]",
		Short: "Curve analysis of a polynomial or rational function",
		Long: `Report zeros, poles, y-intercept, symmetry, extrema and inflection
points. Common factors are cancelled first. Root searches that fail are
reported as warnings rather than errors.

Examples:
  polykit analyze "x^3 - 3x"
  polykit analyze 1 "x^2 - 1" --format json`,
		Args:          cobra.RangeArgs(1, 2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: withSession(rootOpts, func(ctx context.Context, s *session, args []string) error {
			f, err := s.function(ctx, args)
			if err != nil {
				return s.out.Fail(err, nil)
			}

			report, err := s.analyzer.Analyze(f)
			if err != nil {
				return s.out.Fail(err, nil)
			}
			for _, w := range report.Warnings {
				s.out.VerboseLog("warning: %s", w)
			}

			res := AnalysisResult{Report: report}
			s.record(ctx, "analyze", strings.Join(args, " "), res)
			return s.out.Success(res)
		}),
	}
}

func formatList(xs []float64) string {
	if len(xs) == 0 {
		return "none"
	}
	parts := make([]string, len(xs))
	for i, x := range xs {
		parts[i] = formatFloat(x)
	}
	return strings.Join(parts, ", ")
}

func formatPoints(pts []curve.Point) string {
	if len(pts) == 0 {
		return "none"
	}
	parts := make([]string, len(pts))
	for i, p := range pts {
		parts[i] = fmt.Sprintf("(%s, %s)", formatFloat(p.X), formatFloat(p.Y))
	}
	return strings.Join(parts, ", ")
}
