package cli

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/polykit/internal/poly"
)

// EvalOptions holds flags for the eval command.
type EvalOptions struct {
	*RootOptions
	At   float64
	Imag float64
}

// NewEvalCommand creates the eval command.
func NewEvalCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &EvalOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "eval <poly>",
		Short: "Evaluate a polynomial at a point",
		Long: `Evaluate a polynomial with Horner's scheme.

A non-zero --imag evaluates at the complex point at + imag·i.

Examples:
  polykit eval 1,6,11,6 --at 2
  polykit eval "x^2 + 1" --at 0 --imag 1`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: withSession(rootOpts, func(ctx context.Context, s *session, args []string) error {
			p, err := s.polynomial(ctx, args[0])
			if err != nil {
				return s.out.Fail(err, nil)
			}

			res := EvalResult{Polynomial: p, At: opts.At, AtImag: opts.Imag}
			if opts.Imag != 0 {
				z := p.EvaluateComplex(complex(opts.At, opts.Imag))
				im := imag(z)
				res.Value, res.ValueImag = real(z), &im
			} else {
				res.Value = p.EvaluateAt(opts.At)
			}

			s.record(ctx, "eval", strings.Join(args, " "), res)
			return s.out.Success(res)
		}),
	}

	cmd.Flags().Float64Var(&opts.At, "at", 0, "point to evaluate at (real part)")
	cmd.Flags().Float64Var(&opts.Imag, "imag", 0, "imaginary part of the point")

	return cmd
}

// NewRootsCommand creates the roots command.
func NewRootsCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "roots <poly>",
		Short: "Find the real roots of a polynomial",
		Long: `Find real roots by scanning for sign changes, refining with Halley's
method and deflating. Degree 2 and 1 are solved in closed form.

The scan range, step and tolerances come from the configuration
(--config or POLYKIT_* environment variables).

Exit codes:
  0 - All roots found
  1 - Search failed (no bracket, negative discriminant); partial roots
      are reported as error details
  2 - Command error

Examples:
  polykit roots 1,6,11,6
  polykit roots "x^4 - 5x^2 + 4" --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: withSession(rootOpts, func(ctx context.Context, s *session, args []string) error {
			p, err := s.polynomial(ctx, args[0])
			if err != nil {
				return s.out.Fail(err, nil)
			}

			roots, err := s.finder.FindZeros(p)
			res := RootsResult{Polynomial: p, Roots: roots}
			if err != nil {
				return s.out.Fail(err, res)
			}

			s.record(ctx, "roots", args[0], res)
			return s.out.Success(res)
		}),
	}
}

// binaryOp is a two-operand polynomial command.
type binaryOp struct {
	name  string
	short string
	apply func(a, b poly.Polynomial) (PolyResult, error)
}

var binaryOps = []binaryOp{
	{
		name:  "add",
		short: "Add two polynomials",
		apply: func(a, b poly.Polynomial) (PolyResult, error) {
			return PolyResult{Result: a.Add(b)}, nil
		},
	},
	{
		name:  "sub",
		short: "Subtract the second polynomial from the first",
		apply: func(a, b poly.Polynomial) (PolyResult, error) {
			return PolyResult{Result: a.Sub(b)}, nil
		},
	},
	{
		name:  "mul",
		short: "Multiply two polynomials",
		apply: func(a, b poly.Polynomial) (PolyResult, error) {
			return PolyResult{Result: a.Mul(b)}, nil
		},
	},
	{
		name:  "div",
		short: "Long division with remainder",
		apply: func(a, b poly.Polynomial) (PolyResult, error) {
			q, err := a.Div(b)
			if err != nil {
				return PolyResult{}, err
			}
			res := PolyResult{Result: q}
			if rest, ok := q.Rest(); ok {
				res.Rest = &rest
			}
			return res, nil
		},
	},
}

// NewBinaryCommand creates one of add, sub, mul and div.
func NewBinaryCommand(rootOpts *RootOptions, op binaryOp) *cobra.Command {
	return &cobra.Command{
		Use:           op.name + " <poly> <poly>",
		Short:         op.short,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: withSession(rootOpts, func(ctx context.Context, s *session, args []string) error {
			ps, err := s.polynomials(ctx, args)
			if err != nil {
				return s.out.Fail(err, nil)
			}

			res, err := op.apply(ps[0], ps[1])
			if err != nil {
				return s.out.Fail(err, nil)
			}
			res.Op, res.Inputs = op.name, ps

			s.record(ctx, op.name, strings.Join(args, " "), res)
			return s.out.Success(res)
		}),
	}
}

// NewDiffCommand creates the diff command.
func NewDiffCommand(rootOpts *RootOptions) *cobra.Command {
	return unaryCommand(rootOpts, "diff", "Differentiate a polynomial", poly.Polynomial.Differentiate)
}

// NewIntegrateCommand creates the integrate command.
func NewIntegrateCommand(rootOpts *RootOptions) *cobra.Command {
	return unaryCommand(rootOpts, "integrate", "Integrate a polynomial (constant of integration 0)", poly.Polynomial.Integrate)
}

func unaryCommand(rootOpts *RootOptions, name, short string, fn func(poly.Polynomial) poly.Polynomial) *cobra.Command {
	return &cobra.Command{
		Use:           name + " <poly>",
		Short:         short,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: withSession(rootOpts, func(ctx context.Context, s *session, args []string) error {
			p, err := s.polynomial(ctx, args[0])
			if err != nil {
				return s.out.Fail(err, nil)
			}

			res := PolyResult{Op: name, Inputs: []poly.Polynomial{p}, Result: fn(p)}
			s.record(ctx, name, args[0], res)
			return s.out.Success(res)
		}),
	}
}
