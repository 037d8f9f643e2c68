package curve

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rzzdr/dcf-engine/pkg/interpolation"
	"github.com/rzzdr/dcf-engine/pkg/utils/errors"
)

func TestNewValidation(t *testing.T) {
	_, err := New([]float64{1.0, 2.0}, []float64{1.0}, nil)
	require.Error(t, err)
	assert.True(t, errors.IsKind(err, errors.KindDomain))

	_, err = New(nil, nil, nil)
	require.Error(t, err)

	// duplicates and unsorted domains are rejected
	_, err = New([]float64{1.0, 1.0}, []float64{1.0, 2.0}, nil)
	require.Error(t, err)

	_, err = New([]float64{2.0, 1.0}, []float64{1.0, 2.0}, nil)
	require.Error(t, err)
}

func TestValueAndDefensiveCopies(t *testing.T) {
	domain := []float64{0.0, 1.0}
	c, err := New(domain, []float64{1.0, 3.0}, nil)
	require.NoError(t, err)

	y, err := c.Value(0.5)
	require.NoError(t, err)
	assert.InDelta(t, 2.0, y, 1e-12)

	// mutating inputs or outputs never changes the curve
	domain[0] = 99.0
	got := c.Domain()
	assert.Equal(t, 0.0, got[0])
	got[1] = 99.0
	assert.Equal(t, 1.0, c.Domain()[1])
}

func TestShifted(t *testing.T) {
	c, err := New([]float64{0.0, 2.0}, []float64{1.0, 3.0}, nil)
	require.NoError(t, err)

	shifted := c.Shifted(0.5)
	for _, x := range []float64{0.5, 1.0, 2.5} {
		want, err := c.Value(x - 0.5)
		require.NoError(t, err)
		got, err := shifted.Value(x)
		require.NoError(t, err)
		assert.InDelta(t, want, got, 1e-12, "x=%g", x)
	}
}

func TestWithValueAndBumped(t *testing.T) {
	c, err := New([]float64{0.0, 1.0}, []float64{1.0, 2.0}, nil)
	require.NoError(t, err)

	replaced, err := c.WithValue(1, 5.0)
	require.NoError(t, err)
	assert.Equal(t, []float64{1.0, 5.0}, replaced.Values())
	assert.Equal(t, []float64{1.0, 2.0}, c.Values())

	_, err = c.WithValue(2, 5.0)
	require.Error(t, err)

	bumped := c.Bumped(0.5)
	assert.Equal(t, []float64{1.5, 2.5}, bumped.Values())
}

func TestAlgebra(t *testing.T) {
	a, err := New([]float64{0.0, 2.0}, []float64{1.0, 3.0}, nil)
	require.NoError(t, err)
	b, err := New([]float64{0.0, 1.0, 2.0}, []float64{2.0, 2.0, 2.0}, nil)
	require.NoError(t, err)

	sum, err := a.Add(b)
	require.NoError(t, err)
	// union of domains
	assert.Equal(t, []float64{0.0, 1.0, 2.0}, sum.Domain())
	y, err := sum.Value(1.0)
	require.NoError(t, err)
	assert.InDelta(t, 4.0, y, 1e-12)

	diff, err := a.Sub(b)
	require.NoError(t, err)
	y, err = diff.Value(2.0)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, y, 1e-12)

	prod, err := a.Mul(b)
	require.NoError(t, err)
	y, err = prod.Value(0.0)
	require.NoError(t, err)
	assert.InDelta(t, 2.0, y, 1e-12)

	quot, err := a.Div(b)
	require.NoError(t, err)
	y, err = quot.Value(2.0)
	require.NoError(t, err)
	assert.InDelta(t, 1.5, y, 1e-12)

	zero, err := New([]float64{0.0}, []float64{0.0}, nil)
	require.NoError(t, err)
	_, err = a.Div(zero)
	require.Error(t, err)
}

func TestIntegrateAndDerivativeRequireSchemeSupport(t *testing.T) {
	c, err := New([]float64{0.0, 1.0}, []float64{1.0, 2.0}, interpolation.Nearest{})
	require.NoError(t, err)

	_, err = c.Integrate(0.0, 1.0)
	require.Error(t, err)

	_, err = c.Derivative(0.5)
	require.Error(t, err)
}
