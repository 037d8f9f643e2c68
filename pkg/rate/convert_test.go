package rate

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rzzdr/dcf-engine/pkg/interpolation"
)

func TestZeroToDiscountFactorRoundTrip(t *testing.T) {
	src, err := NewZeroRate([]float64{1.0, 2.0, 5.0}, []float64{0.03, 0.04, 0.045}, nil)
	require.NoError(t, err)

	df, err := ToDiscountFactor(src)
	require.NoError(t, err)
	assert.Equal(t, DiscountFactor, df.Kind())

	back, err := ToZeroRate(df)
	require.NoError(t, err)
	for i, want := range src.Values() {
		assert.InDelta(t, want, back.Values()[i], 1e-9, "node %d", i)
	}

	// sampled factors match the source's own factors
	for _, tau := range []float64{1.0, 2.0, 5.0} {
		want, err := src.DiscountFactorTo(tau)
		require.NoError(t, err)
		got, err := df.DiscountFactorTo(tau)
		require.NoError(t, err)
		assert.InDelta(t, want, got, 1e-12)
	}
}

func TestCashToZeroRoundTrip(t *testing.T) {
	// a flat simple rate stays flat through the continuous representation
	src, err := NewCashRate([]float64{0.25, 1.0, 3.0}, []float64{0.02, 0.02, 0.02}, nil)
	require.NoError(t, err)

	zero, err := ToZeroRate(src)
	require.NoError(t, err)
	assert.Equal(t, ZeroRate, zero.Kind())

	back, err := ToCashRate(zero)
	require.NoError(t, err)
	for i := range src.Values() {
		assert.InDelta(t, 0.02, back.Values()[i], 1e-9, "node %d", i)
	}
}

func TestToShortRateUsesStepBasis(t *testing.T) {
	src, err := NewZeroRate([]float64{0.0, 1.0, 2.0}, []float64{0.03, 0.03, 0.03}, nil)
	require.NoError(t, err)

	short, err := ToShortRate(src)
	require.NoError(t, err)
	assert.Equal(t, ShortRate, short.Kind())
	assert.Equal(t, "constant-left", short.Scheme().Name())

	// a flat zero curve has a flat short rate
	for _, v := range short.Values() {
		assert.InDelta(t, 0.03, v, 1e-9)
	}
}

func TestConvertIdentityReturnsSource(t *testing.T) {
	src, err := NewZeroRate([]float64{0.0, 1.0}, []float64{0.02, 0.03}, nil)
	require.NoError(t, err)

	same, err := ToZeroRate(src)
	require.NoError(t, err)
	assert.Same(t, src, same)
}

func TestConvertOnExplicitDomain(t *testing.T) {
	src, err := NewZeroRate([]float64{0.0, 4.0}, []float64{0.02, 0.06}, nil)
	require.NoError(t, err)

	df, err := ToDiscountFactor(src, OnDomain([]float64{1.0, 2.0, 3.0}),
		WithScheme(interpolation.LogLinear{}))
	require.NoError(t, err)
	assert.Equal(t, []float64{1.0, 2.0, 3.0}, df.Domain())
	assert.Equal(t, "log-linear", df.Scheme().Name())

	// z(2) = 0.04 on the linear source
	got, err := df.Value(2.0)
	require.NoError(t, err)
	assert.InDelta(t, math.Exp(-0.04*2.0), got, 1e-12)
}

func TestConvertPreservesOriginAndTenor(t *testing.T) {
	src, err := NewCashRate([]float64{0.5, 1.0}, []float64{0.02, 0.03}, nil,
		WithForwardTenor(0.5))
	require.NoError(t, err)

	zero, err := ToZeroRate(src)
	require.NoError(t, err)
	assert.Equal(t, 0.5, zero.ForwardTenor())
	assert.Equal(t, 0.0, zero.Origin())
}
