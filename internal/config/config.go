// Package config holds engine and CLI settings.
//
// Settings are resolved in three layers: built-in defaults, an optional CUE
// file checked against the embedded #Config schema, and POLYKIT_* environment
// variables.
package config

import (
	_ "embed"
	"fmt"
	"log/slog"
	"os"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"
	"github.com/caarlos0/env/v11"

	"github.com/roach88/polykit/internal/poly"
)

//go:embed schema.cue
var schemaCUE string

// Config is the full set of tunables.
type Config struct {
	ScanFrom           float64 `json:"scan_from" env:"POLYKIT_SCAN_FROM"`
	ScanTo             float64 `json:"scan_to" env:"POLYKIT_SCAN_TO"`
	ScanStep           float64 `json:"scan_step" env:"POLYKIT_SCAN_STEP"`
	Tolerance          float64 `json:"tolerance" env:"POLYKIT_TOLERANCE"`
	MaxIterations      int     `json:"max_iterations" env:"POLYKIT_MAX_ITERATIONS"`
	DeflationTolerance float64 `json:"deflation_tolerance" env:"POLYKIT_DEFLATION_TOLERANCE"`
	CancelTolerance    float64 `json:"cancel_tolerance" env:"POLYKIT_CANCEL_TOLERANCE"`
	Database           string  `json:"database" env:"POLYKIT_DB"`
	LogLevel           string  `json:"log_level" env:"POLYKIT_LOG_LEVEL"`
}

// ValidLogLevels lists the accepted LogLevel values.
var ValidLogLevels = []string{"debug", "info", "warn", "error"}

// Default returns the built-in configuration. The root-finding fields match
// poly.DefaultRootConfig.
func Default() *Config {
	rc := poly.DefaultRootConfig()
	return &Config{
		ScanFrom:           rc.ScanFrom,
		ScanTo:             rc.ScanTo,
		ScanStep:           rc.ScanStep,
		Tolerance:          rc.Tolerance,
		MaxIterations:      rc.MaxIterations,
		DeflationTolerance: rc.DeflationTolerance,
		CancelTolerance:    1e-9,
		Database:           "polykit.db",
		LogLevel:           "info",
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if err := c.RootConfig().Validate(); err != nil {
		return err
	}
	if c.CancelTolerance < 0 {
		return fmt.Errorf("cancel tolerance must be non-negative, got %g", c.CancelTolerance)
	}
	if c.Database == "" {
		return fmt.Errorf("database path must not be empty")
	}
	for _, l := range ValidLogLevels {
		if c.LogLevel == l {
			return nil
		}
	}
	return fmt.Errorf("log level must be one of %v, got '%s'", ValidLogLevels, c.LogLevel)
}

// RootConfig projects the root-finding fields.
func (c *Config) RootConfig() poly.RootConfig {
	return poly.RootConfig{
		ScanFrom:           c.ScanFrom,
		ScanTo:             c.ScanTo,
		ScanStep:           c.ScanStep,
		Tolerance:          c.Tolerance,
		MaxIterations:      c.MaxIterations,
		DeflationTolerance: c.DeflationTolerance,
	}
}

// SlogLevel maps LogLevel onto slog; unknown values map to Info.
func (c *Config) SlogLevel() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}

// WithScanRange sets the bracket scan interval.
func (c *Config) WithScanRange(from, to float64) *Config {
	c.ScanFrom, c.ScanTo = from, to
	return c
}

// WithScanStep sets the bracket scan step.
func (c *Config) WithScanStep(step float64) *Config {
	c.ScanStep = step
	return c
}

// WithTolerance sets the Halley stopping tolerance.
func (c *Config) WithTolerance(tol float64) *Config {
	c.Tolerance = tol
	return c
}

// WithMaxIterations sets the Halley iteration cap.
func (c *Config) WithMaxIterations(n int) *Config {
	c.MaxIterations = n
	return c
}

// WithDeflationTolerance sets the largest accepted deflation remainder.
func (c *Config) WithDeflationTolerance(tol float64) *Config {
	c.DeflationTolerance = tol
	return c
}

// WithCancelTolerance sets the zero/pole matching tolerance.
func (c *Config) WithCancelTolerance(tol float64) *Config {
	c.CancelTolerance = tol
	return c
}

// WithDatabase sets the workspace database path.
func (c *Config) WithDatabase(path string) *Config {
	c.Database = path
	return c
}

// WithLogLevel sets the log level.
func (c *Config) WithLogLevel(level string) *Config {
	c.LogLevel = level
	return c
}

// Clone returns a copy.
func (c *Config) Clone() *Config {
	out := *c
	return &out
}

// Error reports an invalid configuration file, with the CUE position when
// one is available.
type Error struct {
	Message string
	Pos     token.Pos
}

func (e *Error) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s", e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(), e.Message)
	}
	return e.Message
}

// Load resolves the configuration: defaults, then the CUE file at path if
// path is non-empty, then environment overrides. The result is validated.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		cfg, err = Parse(data, path)
		if err != nil {
			return nil, err
		}
	}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// Parse compiles CUE source, unifies it with #Config and decodes the result.
// Unknown fields and constraint violations are rejected by the schema.
func Parse(src []byte, filename string) (*Config, error) {
	ctx := cuecontext.New()

	schema := ctx.CompileString(schemaCUE, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}
	def := schema.LookupPath(cue.ParsePath("#Config"))

	v := ctx.CompileBytes(src, cue.Filename(filename))
	if err := v.Err(); err != nil {
		return nil, formatCUEError(err)
	}

	if err := checkKnownFields(def, v); err != nil {
		return nil, err
	}

	unified := def.Unify(v)
	if err := unified.Validate(); err != nil {
		return nil, formatCUEError(err)
	}

	cfg := &Config{}
	if err := unified.Decode(cfg); err != nil {
		return nil, formatCUEError(err)
	}
	return cfg, nil
}

// checkKnownFields rejects top-level fields that #Config does not declare.
func checkKnownFields(def, v cue.Value) error {
	iter, err := v.Fields()
	if err != nil {
		return formatCUEError(err)
	}
	for iter.Next() {
		label := iter.Selector().String()
		if !def.LookupPath(cue.MakePath(iter.Selector())).Exists() {
			return &Error{Message: fmt.Sprintf("unknown field %q", label), Pos: iter.Value().Pos()}
		}
	}
	return nil
}

// formatCUEError keeps the first error and its position.
func formatCUEError(err error) error {
	errs := cueerrors.Errors(err)
	if len(errs) == 0 {
		return &Error{Message: err.Error()}
	}
	first := errs[0]
	out := &Error{Message: first.Error()}
	if pos := cueerrors.Positions(first); len(pos) > 0 {
		out.Pos = pos[0]
	}
	return out
}
