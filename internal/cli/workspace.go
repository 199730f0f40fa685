package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/polykit/internal/store"
)

// SavedResult is the output of save and show.
type SavedResult struct {
	store.SavedPolynomial
}

func (r SavedResult) Text() string {
	return fmt.Sprintf("@%s = %s  (%s)", r.Name, r.Polynomial, shortHash(r.Hash))
}

// ListResult is the output of list.
type ListResult struct {
	Polynomials []store.SavedPolynomial `json:"polynomials"`
}

func (r ListResult) Text() string {
	if len(r.Polynomials) == 0 {
		return "workspace is empty"
	}
	lines := make([]string, len(r.Polynomials))
	for i, p := range r.Polynomials {
		lines[i] = SavedResult{p}.Text()
	}
	return strings.Join(lines, "\n")
}

// HistoryResult is the output of history.
type HistoryResult struct {
	Entries []store.HistoryRecord `json:"entries"`
}

func (r HistoryResult) Text() string {
	if len(r.Entries) == 0 {
		return "no history"
	}
	var b strings.Builder
	for i, e := range r.Entries {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "%4d  %-16s %s -> %s", e.Seq, e.Op, e.Input, strings.ReplaceAll(e.Output, "\n", "; "))
	}
	return b.String()
}

type message string

func (m message) Text() string { return string(m) }

func shortHash(h string) string {
	if len(h) > 12 {
		return h[:12]
	}
	return h
}

// NewSaveCommand creates the save command.
func NewSaveCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "save <name> <poly>",
		Short: "Save a polynomial to the workspace under a name",
		Long: `Save a polynomial to the workspace database, replacing any polynomial
with the same name. Saved polynomials can be used as @name arguments.

Example:
  polykit save cubic "x^3 + 6x^2 + 11x + 6"
  polykit roots @cubic`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: withSession(rootOpts, func(ctx context.Context, s *session, args []string) error {
			p, err := s.polynomial(ctx, args[1])
			if err != nil {
				return s.out.Fail(err, nil)
			}
			ws, err := s.workspace()
			if err != nil {
				return s.out.Fail(err, nil)
			}
			if _, err := ws.SavePolynomial(ctx, args[0], p); err != nil {
				return s.out.Fail(commandError(ErrCodeWorkspace, err), nil)
			}
			saved, err := ws.GetPolynomial(ctx, args[0])
			if err != nil {
				return s.out.Fail(err, nil)
			}

			res := SavedResult{saved}
			s.record(ctx, "save", strings.Join(args, " "), res)
			return s.out.Success(res)
		}),
	}
}

// NewShowCommand creates the show command.
func NewShowCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "show <name>",
		Short:         "Show a saved polynomial",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: withSession(rootOpts, func(ctx context.Context, s *session, args []string) error {
			ws, err := s.workspace()
			if err != nil {
				return s.out.Fail(err, nil)
			}
			saved, err := ws.GetPolynomial(ctx, strings.TrimPrefix(args[0], "@"))
			if err != nil {
				return s.out.Fail(fmt.Errorf("polynomial %s: %w", args[0], err), nil)
			}
			return s.out.Success(SavedResult{saved})
		}),
	}
}

// NewListCommand creates the list command.
func NewListCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "list",
		Short:         "List saved polynomials",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: withSession(rootOpts, func(ctx context.Context, s *session, args []string) error {
			ws, err := s.workspace()
			if err != nil {
				return s.out.Fail(err, nil)
			}
			all, err := ws.ListPolynomials(ctx)
			if err != nil {
				return s.out.Fail(commandError(ErrCodeWorkspace, err), nil)
			}
			if all == nil {
				all = []store.SavedPolynomial{}
			}
			return s.out.Success(ListResult{Polynomials: all})
		}),
	}
}

// NewDeleteCommand creates the delete command.
func NewDeleteCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "delete <name>",
		Short:         "Delete a saved polynomial",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: withSession(rootOpts, func(ctx context.Context, s *session, args []string) error {
			ws, err := s.workspace()
			if err != nil {
				return s.out.Fail(err, nil)
			}
			name := strings.TrimPrefix(args[0], "@")
			if err := ws.DeletePolynomial(ctx, name); err != nil {
				return s.out.Fail(fmt.Errorf("polynomial %s: %w", args[0], err), nil)
			}
			res := message("deleted @" + store.NormalizeName(name))
			s.record(ctx, "delete", args[0], res)
			return s.out.Success(res)
		}),
	}
}

// HistoryOptions holds flags for the history command.
type HistoryOptions struct {
	*RootOptions
	Limit int
}

// NewHistoryCommand creates the history command.
func NewHistoryCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &HistoryOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recorded operations",
		Long: `Show the operation log of the workspace, oldest first.

Operations are recorded only once a workspace exists (after the first save).`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: withSession(rootOpts, func(ctx context.Context, s *session, args []string) error {
			ws, err := s.workspace()
			if err != nil {
				return s.out.Fail(err, nil)
			}
			entries, err := ws.ListHistory(ctx, opts.Limit)
			if err != nil {
				return s.out.Fail(commandError(ErrCodeWorkspace, err), nil)
			}
			if entries == nil {
				entries = []store.HistoryRecord{}
			}
			return s.out.Success(HistoryResult{Entries: entries})
		}),
	}

	cmd.Flags().IntVarP(&opts.Limit, "limit", "n", 20, "number of entries to show (0 for all)")

	return cmd
}
