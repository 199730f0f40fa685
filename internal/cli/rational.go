package cli

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/polykit/internal/rational"
)

// NewRationalCommand creates the rational command group.
func NewRationalCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rational",
		Short: "Rational-function operations on numerator / denominator pairs",
	}

	cmd.AddCommand(rationalCommand(rootOpts, "diff",
		"Differentiate u/v with the quotient rule (not simplified)",
		func(s *session, f rational.Function) rational.Function {
			return rational.Differentiate(f)
		}))
	cmd.AddCommand(rationalCommand(rootOpts, "simplify",
		"Cancel linear factors shared by numerator and denominator",
		func(s *session, f rational.Function) rational.Function {
			return s.simplifier.Simplify(f)
		}))

	return cmd
}

func rationalCommand(rootOpts *RootOptions, name, short string, fn func(*session, rational.Function) rational.Function) *cobra.Command {
	return &cobra.Command{
		Use:   name + " <numerator> [denominator]",
		Short: short,
		Long: short + `.

The denominator defaults to 1.

Example:
  polykit rational ` + name + ` "x^2 + 2x + 1" "x + 3"`,
		Args:          cobra.RangeArgs(1, 2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: withSession(rootOpts, func(ctx context.Context, s *session, args []string) error {
			f, err := s.function(ctx, args)
			if err != nil {
				return s.out.Fail(err, nil)
			}

			g := fn(s, f)
			res := RationalResult{Op: name, Input: f, Result: g, Rendered: g.String()}
			s.record(ctx, "rational "+name, strings.Join(args, " "), res)
			return s.out.Success(res)
		}),
	}
}

// function reads one or two arguments as numerator and denominator.
func (s *session) function(ctx context.Context, args []string) (rational.Function, error) {
	ps, err := s.polynomials(ctx, args)
	if err != nil {
		return rational.Function{}, err
	}
	if len(ps) == 1 {
		return rational.FromPolynomial(ps[0]), nil
	}
	return rational.New(ps[0], ps[1]), nil
}
