// Package testutil holds numeric assertions shared by package tests.
package testutil

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RootTolerance is the comparison tolerance used by the root helpers.
const RootTolerance = 1e-9

// AssertRoots compares two root lists as multisets: both are sorted and then
// compared pairwise within RootTolerance.
func AssertRoots(t testing.TB, want, got []float64) {
	t.Helper()
	require.Len(t, got, len(want), "roots %v", got)
	w, g := Sorted(want), Sorted(got)
	for i := range w {
		assert.InDelta(t, w[i], g[i], RootTolerance, "root %d of %v", i, got)
	}
}

// AssertValues compares two ordered lists pairwise within RootTolerance.
func AssertValues(t testing.TB, want, got []float64) {
	t.Helper()
	require.Len(t, got, len(want), "values %v", got)
	for i := range want {
		assert.InDelta(t, want[i], got[i], RootTolerance, "value %d", i)
	}
}

// Sorted returns an ascending copy of xs.
func Sorted(xs []float64) []float64 {
	out := append([]float64(nil), xs...)
	sort.Float64s(out)
	return out
}
