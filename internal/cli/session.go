package cli

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/polykit/internal/config"
	"github.com/roach88/polykit/internal/curve"
	"github.com/roach88/polykit/internal/poly"
	"github.com/roach88/polykit/internal/rational"
	"github.com/roach88/polykit/internal/store"
)

// session bundles everything one command invocation needs: configuration,
// logging, output, the numeric components and a lazily opened workspace.
type session struct {
	opts       *RootOptions
	cfg        *config.Config
	logger     *slog.Logger
	out        *OutputFormatter
	finder     *poly.RootFinder
	simplifier *rational.Simplifier
	analyzer   *curve.Analyzer

	ws *store.Store
}

// commandError tags err with a CLI error code and ExitCommandError.
func commandError(code string, err error) *ExitError {
	return WrapExitError(ExitCommandError, code, err)
}

// newSession loads configuration and sets up logging. The default slog
// logger is replaced so library code logging through slog.Default follows
// the same level.
func newSession(opts *RootOptions, cmd *cobra.Command) (*session, error) {
	out := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, out.Fail(commandError(ErrCodeConfig, err), nil)
	}
	if opts.Database != "" {
		cfg = cfg.WithDatabase(opts.Database)
	}

	level := cfg.SlogLevel()
	if opts.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	finder, err := poly.NewRootFinder(cfg.RootConfig(), logger)
	if err != nil {
		return nil, out.Fail(commandError(ErrCodeConfig, err), nil)
	}
	simplifier, err := rational.NewSimplifier(finder, cfg.CancelTolerance, logger)
	if err != nil {
		return nil, out.Fail(commandError(ErrCodeConfig, err), nil)
	}
	analyzer, err := curve.NewAnalyzer(finder, cfg.CancelTolerance, logger)
	if err != nil {
		return nil, out.Fail(commandError(ErrCodeConfig, err), nil)
	}

	return &session{
		opts:       opts,
		cfg:        cfg,
		logger:     logger,
		out:        out,
		finder:     finder,
		simplifier: simplifier,
		analyzer:   analyzer,
	}, nil
}

// workspace opens the database on first use, creating it if needed.
func (s *session) workspace() (*store.Store, error) {
	if s.ws != nil {
		return s.ws, nil
	}
	s.logger.Debug("opening workspace", "path", s.cfg.Database)
	ws, err := store.Open(s.cfg.Database)
	if err != nil {
		return nil, commandError(ErrCodeWorkspace, err)
	}
	s.ws = ws
	return ws, nil
}

// workspaceExists reports whether the database file is already present.
func (s *session) workspaceExists() bool {
	if s.ws != nil {
		return true
	}
	_, err := os.Stat(s.cfg.Database)
	return !errors.Is(err, fs.ErrNotExist)
}

func (s *session) close() {
	if s.ws == nil {
		return
	}
	if err := s.ws.Close(); err != nil {
		s.logger.Error("error closing workspace", "error", err)
	}
}

// polynomial resolves a command argument: "@name" loads a saved polynomial,
// anything else is parsed with poly.Parse. A reference never creates the
// workspace; without one every name is unknown.
func (s *session) polynomial(ctx context.Context, arg string) (poly.Polynomial, error) {
	name, ok := strings.CutPrefix(strings.TrimSpace(arg), "@")
	if !ok {
		return poly.Parse(arg)
	}
	if !s.workspaceExists() {
		return poly.Polynomial{}, fmt.Errorf("polynomial @%s: %w", name, store.ErrNotFound)
	}
	ws, err := s.workspace()
	if err != nil {
		return poly.Polynomial{}, err
	}
	saved, err := ws.GetPolynomial(ctx, name)
	if err != nil {
		return poly.Polynomial{}, fmt.Errorf("polynomial @%s: %w", name, err)
	}
	s.logger.Debug("resolved reference", "name", saved.Name, "hash", saved.Hash)
	return saved.Polynomial, nil
}

func (s *session) polynomials(ctx context.Context, args []string) ([]poly.Polynomial, error) {
	out := make([]poly.Polynomial, len(args))
	for i, arg := range args {
		p, err := s.polynomial(ctx, arg)
		if err != nil {
			return nil, err
		}
		out[i] = p
	}
	return out, nil
}

// record appends a history entry when a workspace exists. Commands never
// create a workspace just to log into it; failures are logged, not returned.
func (s *session) record(ctx context.Context, op, input string, result Texter) {
	if !s.workspaceExists() {
		return
	}
	ws, err := s.workspace()
	if err != nil {
		s.logger.Warn("history not recorded", "op", op, "error", err)
		return
	}
	rec, err := ws.AppendHistory(ctx, op, input, result.Text())
	if err != nil {
		s.logger.Warn("history not recorded", "op", op, "error", err)
		return
	}
	s.logger.Debug("history recorded", "op", op, "seq", rec.Seq, "id", rec.ID)
}

// withSession wraps a command body with session setup and teardown.
func withSession(opts *RootOptions, fn func(ctx context.Context, s *session, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		s, err := newSession(opts, cmd)
		if err != nil {
			return err
		}
		defer s.close()

		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		return fn(ctx, s, args)
	}
}
