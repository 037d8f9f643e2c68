package option

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rzzdr/dcf-engine/pkg/utils/errors"
)

func TestIntrinsicValues(t *testing.T) {
	f := Intrinsic{}

	v, err := f.Price(105.0, 100.0, 1.0, 0.2, Call)
	require.NoError(t, err)
	assert.Equal(t, 5.0, v)

	v, err = f.Price(105.0, 100.0, 1.0, 0.2, Put)
	require.NoError(t, err)
	assert.Equal(t, 0.0, v)

	v, err = f.Price(105.0, 100.0, 1.0, 0.2, DigitalCall)
	require.NoError(t, err)
	assert.Equal(t, 1.0, v)

	v, err = f.Price(105.0, 100.0, 1.0, 0.2, DigitalPut)
	require.NoError(t, err)
	assert.Equal(t, 0.0, v)
}

func TestVanishingVolConvergesToIntrinsic(t *testing.T) {
	formulas := []Formula{Bachelier{}, Black76{}, Displaced{Displacement: 3.0}}
	cases := []struct {
		forward, strike float64
		typ             Type
	}{
		{105.0, 100.0, Call},
		{95.0, 100.0, Call},
		{105.0, 100.0, Put},
		{95.0, 100.0, Put},
	}
	for _, f := range formulas {
		for _, c := range cases {
			want, err := Intrinsic{}.Price(c.forward, c.strike, 1.0, 0.0, c.typ)
			require.NoError(t, err)

			got, err := f.Price(c.forward, c.strike, 1.0, 1e-9, c.typ)
			require.NoError(t, err)
			assert.InDelta(t, want, got, 1e-6, "%s %s f=%g", f.Name(), c.typ, c.forward)

			// zero expiry collapses the same way
			got, err = f.Price(c.forward, c.strike, 0.0, 0.2, c.typ)
			require.NoError(t, err)
			assert.InDelta(t, want, got, 1e-12, "%s %s tau=0", f.Name(), c.typ)
		}
	}
}

func TestPutCallParity(t *testing.T) {
	// call - put = forward - strike on forward terms
	for _, f := range []Formula{Bachelier{}, Black76{}, Displaced{Displacement: 2.0}} {
		call, err := f.Price(102.0, 100.0, 2.0, 0.25, Call)
		require.NoError(t, err)
		put, err := f.Price(102.0, 100.0, 2.0, 0.25, Put)
		require.NoError(t, err)
		assert.InDelta(t, 2.0, call-put, 1e-9, f.Name())
	}
}

func TestDigitalComplement(t *testing.T) {
	// digital call and digital put probabilities sum to one
	for _, f := range []Formula{Bachelier{}, Black76{}} {
		dc, err := f.Price(102.0, 100.0, 1.5, 0.3, DigitalCall)
		require.NoError(t, err)
		dp, err := f.Price(102.0, 100.0, 1.5, 0.3, DigitalPut)
		require.NoError(t, err)
		assert.InDelta(t, 1.0, dc+dp, 1e-12, f.Name())
	}
}

func TestBachelierAtTheMoney(t *testing.T) {
	// atm normal call value is stdDev / sqrt(2 pi)
	vol, tau := 0.01, 4.0
	v, err := Bachelier{}.Price(0.03, 0.03, tau, vol, Call)
	require.NoError(t, err)
	assert.InDelta(t, vol*2.0*0.3989422804014327, v, 1e-12)

	// negative forwards are valid in the normal model
	_, err = Bachelier{}.Price(-0.01, 0.0, 1.0, 0.01, Call)
	require.NoError(t, err)
}

func TestBlack76RejectsNonPositiveTerms(t *testing.T) {
	_, err := Black76{}.Price(-1.0, 100.0, 1.0, 0.2, Call)
	require.Error(t, err)
	assert.True(t, errors.IsKind(err, errors.KindDomain))

	_, err = Black76{}.Price(100.0, 0.0, 1.0, 0.2, Call)
	require.Error(t, err)
}

func TestDisplacedHandlesNegativeForwards(t *testing.T) {
	d := Displaced{Displacement: 0.02}

	// forward above the negative displacement prices fine
	v, err := d.Price(-0.01, 0.01, 1.0, 0.5, Call)
	require.NoError(t, err)
	assert.Greater(t, v, 0.0)

	// forward at or below the displacement fails
	_, err = d.Price(-0.02, 0.01, 1.0, 0.5, Call)
	require.Error(t, err)
	assert.True(t, errors.IsKind(err, errors.KindDomain))
}

func TestValidationErrors(t *testing.T) {
	for _, f := range []Formula{Intrinsic{}, Bachelier{}, Black76{}} {
		_, err := f.Price(100.0, 100.0, -1.0, 0.2, Call)
		require.Error(t, err, f.Name())
		assert.True(t, errors.IsKind(err, errors.KindDomain))

		_, err = f.Price(100.0, 100.0, 1.0, -0.2, Call)
		require.Error(t, err, f.Name())
	}
}

func TestByName(t *testing.T) {
	f, err := ByName("black76", 0.0)
	require.NoError(t, err)
	assert.Equal(t, "black76", f.Name())

	f, err = ByName("displaced", 0.03)
	require.NoError(t, err)
	assert.Equal(t, Displaced{Displacement: 0.03}, f)

	_, err = ByName("quadratic", 0.0)
	require.Error(t, err)
}
