package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSorted_DoesNotModifyInput(t *testing.T) {
	in := []float64{3, -1, 2}
	out := Sorted(in)

	assert.Equal(t, []float64{-1, 2, 3}, out)
	assert.Equal(t, []float64{3, -1, 2}, in)
}

func TestAssertRoots_OrderInsensitive(t *testing.T) {
	AssertRoots(t, []float64{1, 2, 3}, []float64{3, 1, 2 + 1e-12})
}

func TestAssertValues(t *testing.T) {
	AssertValues(t, []float64{0.5, -0.5}, []float64{0.5, -0.5})
}
