package poly

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/polykit/internal/testutil"
)

func TestFindZeros(t *testing.T) {
	tests := []struct {
		name   string
		coeffs []float64
		want   []float64
	}{
		{"cubic", []float64{1, 6, 11, 6}, []float64{-1, -2, -3}},
		{"cubic with zero root", []float64{1, 0, -1, 0}, []float64{-1, 0, 1}},
		{"triple root at origin", []float64{1, 0, 0, 0}, []float64{0, 0, 0}},
		{"non-monic cubic", []float64{2, -3, -11, 6}, []float64{-2, 0.5, 3}},
		{"quartic exact sample", []float64{1, -1, -12, -4, 16}, []float64{-2, -2, 1, 4}},
		{"biquadratic", []float64{1, 0, -5, 0, 4}, []float64{-2, -1, 1, 2}},
		{"quadratic", []float64{1, -10, 9}, []float64{9, 1}},
		{"double root", []float64{1, -6, 9}, []float64{3, 3}},
		{"linear", []float64{2, -5}, []float64{2.5}},
		{"constant", []float64{7}, []float64{}},
		{"zero", nil, []float64{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FindZeros(New(tt.coeffs...))
			require.NoError(t, err)
			testutil.AssertRoots(t, tt.want, got)
		})
	}
}

func TestFindZerosRootsAreZeros(t *testing.T) {
	p := New(1, 6, 11, 6)
	roots, err := p.Zeros()
	require.NoError(t, err)
	for _, r := range roots {
		assert.InDelta(t, 0, p.EvaluateAt(r), 1e-9)
	}
}

func TestFindZerosNoBracket(t *testing.T) {
	_, err := FindZeros(New(1, 0, 0, 0, 1))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNoZeroInInterval)
	assert.True(t, IsArithmeticError(err))
}

func TestFindZerosComplexPairSurfaces(t *testing.T) {
	// x^3 + 1 deflates to x^2 - x + 1, which has no real roots.
	roots, err := FindZeros(New(1, 0, 0, 1))
	assert.ErrorIs(t, err, ErrNegativeDiscriminant)
	testutil.AssertRoots(t, []float64{-1}, roots)
}

func TestFindZerosOutsideScanRange(t *testing.T) {
	cfg := DefaultRootConfig()
	cfg.ScanFrom, cfg.ScanTo = -10, 10

	f, err := NewRootFinder(cfg, nil)
	require.NoError(t, err)

	// x^3 + x - 2000 is monotonic with its only real root near 12.57.
	p := New(1, 0, 1, -2000)
	_, err = f.FindZeros(p)
	assert.ErrorIs(t, err, ErrNoZeroInInterval)
}

func TestSolveQuadratic(t *testing.T) {
	got, err := SolveQuadratic(New(1, -10, 9))
	require.NoError(t, err)
	assert.Equal(t, []float64{9, 1}, got, "+root first")

	got, err = SolveQuadratic(New(2, -20, 18))
	require.NoError(t, err)
	assert.Equal(t, []float64{9, 1}, got, "normalized to monic")

	_, err = SolveQuadratic(New(1, 0, 7.5))
	assert.ErrorIs(t, err, ErrNegativeDiscriminant)
	assert.True(t, IsArithmeticError(err))

	_, err = SolveQuadratic(New(4, 3, 2, 1, 0))
	assert.ErrorIs(t, err, ErrWrongShape)
	assert.True(t, IsArgumentError(err))

	_, err = SolveQuadratic(New(1, 1))
	assert.ErrorIs(t, err, ErrWrongShape)
}

func TestSolveLinear(t *testing.T) {
	got, err := SolveLinear(New(4, -2))
	require.NoError(t, err)
	assert.Equal(t, 0.5, got)

	_, err = SolveLinear(New(1, 2, 3))
	assert.ErrorIs(t, err, ErrWrongShape)

	_, err = SolveLinear(New(3))
	assert.ErrorIs(t, err, ErrWrongShape)
}

func TestRefineHalley(t *testing.T) {
	p := New(1, 6, 11, 6)
	assert.InDelta(t, -3, RefineHalley(p, -2.8), 1e-12)
	assert.InDelta(t, -1, RefineHalley(p, -0.8), 1e-12)

	// Already on a root: no iteration.
	assert.Equal(t, -2.0, RefineHalley(p, -2))

	// Vanishing derivative stops immediately.
	assert.Equal(t, 0.0, RefineHalley(New(1, 0, 1), 0))
}

func TestRefineHalleyRespectsIterationCap(t *testing.T) {
	cfg := DefaultRootConfig()
	cfg.MaxIterations = 1

	f, err := NewRootFinder(cfg, nil)
	require.NoError(t, err)
	assert.Equal(t, 5.0, f.RefineHalley(New(1, 6, 11, 6), 5))
}

func TestDeflationTolerance(t *testing.T) {
	// (x-1)^3 defeats exact deflation: Halley stalls slightly off the root.
	p := New(1, -3, 3, -1)

	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))

	cfg := DefaultRootConfig()
	cfg.DeflationTolerance = 1e-6
	f, err := NewRootFinder(cfg, logger)
	require.NoError(t, err)

	roots, err := f.FindZeros(p)
	if err == nil {
		for _, r := range roots {
			assert.InDelta(t, 1, r, 1e-3)
		}
	} else {
		assert.ErrorIs(t, err, ErrNegativeDiscriminant)
	}
	assert.Contains(t, logs.String(), "bracket found")
}

func TestRootConfigValidate(t *testing.T) {
	require.NoError(t, DefaultRootConfig().Validate())

	tests := []struct {
		name   string
		mutate func(*RootConfig)
		errMsg string
	}{
		{"step", func(c *RootConfig) { c.ScanStep = 0 }, "scan step"},
		{"range", func(c *RootConfig) { c.ScanTo = c.ScanFrom }, "scan range"},
		{"tolerance", func(c *RootConfig) { c.Tolerance = -1 }, "tolerance"},
		{"iterations", func(c *RootConfig) { c.MaxIterations = 0 }, "max iterations"},
		{"deflation", func(c *RootConfig) { c.DeflationTolerance = -1 }, "deflation"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultRootConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)

			_, err = NewRootFinder(cfg, nil)
			assert.Error(t, err)
		})
	}
}

func TestDefaultRootFinder(t *testing.T) {
	f := DefaultRootFinder()
	require.NotNil(t, f)
	assert.Equal(t, DefaultRootConfig(), f.Config())

	got, err := f.SolveQuadratic(New(1, -10, 9))
	require.NoError(t, err)
	want, err := SolveQuadratic(New(1, -10, 9))
	require.NoError(t, err)
	assert.Equal(t, want, got)
}
