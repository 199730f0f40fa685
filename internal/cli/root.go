package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose    bool
	Format     string // "json" | "text"
	ConfigPath string
	Database   string // overrides the configured database when set
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the polykit CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "polykit",
		Short: "polykit - single-variable polynomial algebra",
		Long: `Arithmetic, division, calculus and real root finding for polynomials,
plus rational-function differentiation, simplification and curve analysis.

Polynomials are given as coefficient lists (highest degree first), as
expressions in x, or as @name references to polynomials saved in the
workspace:

  polykit roots 1,6,11,6
  polykit eval "x^3 + 6x^2 + 11x + 6" --at 2
  polykit save cubic 1,6,11,6 && polykit diff @cubic`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			return nil
		},
	}

	// Global flags
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", "", "path to a CUE config file")
	cmd.PersistentFlags().StringVar(&opts.Database, "db", "", "path to the workspace database")

	cmd.AddCommand(NewEvalCommand(opts))
	cmd.AddCommand(NewRootsCommand(opts))
	for _, op := range binaryOps {
		cmd.AddCommand(NewBinaryCommand(opts, op))
	}
	cmd.AddCommand(NewDiffCommand(opts))
	cmd.AddCommand(NewIntegrateCommand(opts))
	cmd.AddCommand(NewRationalCommand(opts))
	cmd.AddCommand(NewAnalyzeCommand(opts))
	cmd.AddCommand(NewTestCommand(opts))
	cmd.AddCommand(NewSaveCommand(opts))
	cmd.AddCommand(NewShowCommand(opts))
	cmd.AddCommand(NewListCommand(opts))
	cmd.AddCommand(NewDeleteCommand(opts))
	cmd.AddCommand(NewHistoryCommand(opts))

	return cmd
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}
