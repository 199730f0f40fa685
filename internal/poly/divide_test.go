package poly

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDivFixtures(t *testing.T) {
	tests := []struct {
		num, den, quot []float64
		rest           []float64 // nil when exact
	}{
		{[]float64{1, -1, -12, -4, 16}, []float64{1, -1}, []float64{1, 0, -12, -16}, nil},
		{[]float64{-6, -28, -16, 0}, []float64{1, 4}, []float64{-6, -4, 0}, nil},
		{[]float64{-3, 9, 0, 0, 0}, []float64{1, -3}, []float64{-3, 0, 0, 0}, nil},
		{[]float64{-7, -18, -8, 0, 0}, []float64{1, 2}, []float64{-7, -4, 0, 0}, nil},
		{[]float64{3, -4, -15, -4, 12}, []float64{1, -3}, []float64{3, 5, 0, -4}, nil},
		{[]float64{7, -21, -6, 16, 6}, []float64{1, -3}, []float64{7, 0, -6, -2}, nil},
		{[]float64{3, 12, 0}, []float64{1, 4}, []float64{3, 0}, nil},
		{[]float64{-7, -37, -10, 0, 0}, []float64{1, 5}, []float64{-7, -2, 0, 0}, nil},
		{[]float64{1, -4, -5, 6, -30}, []float64{1, -5}, []float64{1, 1, 0, 6}, nil},
		{[]float64{-6, -6, 1, -5, -6}, []float64{1, 1}, []float64{-6, 0, 1, -6}, nil},
		{[]float64{-2, 12, -18}, []float64{1, -3}, []float64{-2, 6}, nil},
		{[]float64{4, 2, -1, 1}, []float64{2, -2, 1}, []float64{2, 3}, []float64{3, -2}},
		{[]float64{1, 5, -3, 1}, []float64{2, 1, -3}, []float64{0.5, 2.25}, []float64{-3.75, 7.75}},
		{[]float64{2, -3, 4, 5}, []float64{1, 2}, []float64{2, -7, 18}, []float64{-31}},
		{[]float64{2, 3, 0, 0, -1}, []float64{1, 2, -1, 1}, []float64{2, -1}, []float64{4, -3, 0}},
		{[]float64{1, 0, 2, 0, 0, -4}, []float64{1, 0, 1, 0, 1}, []float64{1, 0}, []float64{1, 0, -1, -4}},
		{[]float64{3, 0, -2, 0, 0, 1, 0, 0}, []float64{1, 1, -2, 1}, []float64{3, -3, 7, -16, 33}, []float64{-71, 82, -33}},
	}

	for _, tt := range tests {
		num, den := New(tt.num...), New(tt.den...)
		t.Run(num.String()+" / "+den.String(), func(t *testing.T) {
			q, err := num.Div(den)
			require.NoError(t, err)
			assert.True(t, q.Equal(New(tt.quot...)), "quotient %s", q)

			rest, ok := q.Rest()
			if tt.rest == nil {
				assert.False(t, ok, "unexpected rest %s", rest)
				rest = Polynomial{}
			} else {
				require.True(t, ok)
				assert.True(t, rest.Equal(New(tt.rest...)), "rest %s", rest)
			}

			// a == (a/b)*b + rest
			assert.True(t, q.Mul(den).Add(rest).Equal(num))
		})
	}
}

func TestDivErrors(t *testing.T) {
	_, err := New(1, 2, 3).Div(Polynomial{})
	assert.ErrorIs(t, err, ErrDivideByZero)
	assert.True(t, IsArithmeticError(err))

	_, err = New(1, 2).Div(New(1, 0, 1))
	assert.ErrorIs(t, err, ErrNotDivisible)
	assert.Equal(t, CodeNotDivisible, CodeOf(err))
}

func TestDivByConstant(t *testing.T) {
	q, err := New(4, 2, 6).Div(New(2))
	require.NoError(t, err)
	assert.Equal(t, []float64{2, 1, 3}, q.Coefficients())
	_, ok := q.Rest()
	assert.False(t, ok)
}

func TestDivNegligibleRestDropped(t *testing.T) {
	// Round-off leaves a remainder near 1e-17 here.
	num := New(1, -0.7).Mul(New(1, -0.3)).Mul(New(1, 0.3))
	q, err := num.Div(New(1, -0.3))
	require.NoError(t, err)
	_, ok := q.Rest()
	assert.False(t, ok)
	assert.InDelta(t, -0.4, q.At(1).Coefficient, 1e-12)
	assert.InDelta(t, -0.21, q.At(2).Coefficient, 1e-12)
}

func TestDivRestDropsRoundOffTerms(t *testing.T) {
	// (x - 0.7)(x^2 + 0.1x - 0.09) + 5 leaves about 1e-17 on the x term.
	den := New(1, 0.1, -0.09)
	num := New(1, -0.7).Mul(den).AddScalar(5)

	q, err := num.Div(den)
	require.NoError(t, err)
	assert.True(t, q.Equal(New(1, -0.7)), "quotient %s", q)

	rest, ok := q.Rest()
	require.True(t, ok)
	assert.Equal(t, 0, rest.Order(), "rest %v", rest.Coefficients())
	assert.InDelta(t, 5, rest.At(0).Coefficient, 1e-12)
}

func TestRestNotCarriedByArithmetic(t *testing.T) {
	q, err := New(2, -3, 4, 5).Div(New(1, 2))
	require.NoError(t, err)

	_, ok := q.Add(New(1)).Rest()
	assert.False(t, ok)
}

func TestDeflate(t *testing.T) {
	q, rem := New(1, 6, 11, 6).Deflate(-1)
	assert.Equal(t, []float64{1, 5, 6}, q.Coefficients())
	assert.Equal(t, 0.0, rem)

	q, rem = New(2, -3, 4, 5).Deflate(-2)
	assert.Equal(t, []float64{2, -7, 18}, q.Coefficients())
	assert.Equal(t, -31.0, rem)

	q, rem = New(7).Deflate(3)
	assert.True(t, q.IsZero())
	assert.Equal(t, 7.0, rem)
}
