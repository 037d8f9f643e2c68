package cashflow

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rzzdr/dcf-engine/pkg/curve"
	"github.com/rzzdr/dcf-engine/pkg/option"
	"github.com/rzzdr/dcf-engine/pkg/rate"
)

func TestFixedPayoff(t *testing.T) {
	p := FixedPayoff{PayDate: 1.5, Value: 100.0}
	assert.Equal(t, 1.5, p.Pay())

	a, err := p.Amount(0.0)
	require.NoError(t, err)
	assert.Equal(t, 100.0, a)

	neg := p.Scaled(-1.0)
	a, err = neg.Amount(0.0)
	require.NoError(t, err)
	assert.Equal(t, -100.0, a)
}

func TestRatePayoffFixedLeg(t *testing.T) {
	p := RatePayoff{
		PayDate:   1.0,
		Notional:  1000.0,
		FixedRate: 0.04,
		Start:     0.5,
		End:       1.0,
	}
	a, err := p.Amount(0.0)
	require.NoError(t, err)
	assert.InDelta(t, 1000.0*0.04*0.5, a, 1e-12)
}

func TestRatePayoffFloatingLeg(t *testing.T) {
	fwd, err := rate.NewZeroRate([]float64{0.0, 2.0}, []float64{0.05, 0.05}, nil)
	require.NoError(t, err)

	p := RatePayoff{
		PayDate:  1.0,
		Notional: 1000.0,
		Start:    0.5,
		End:      1.0,
		Forward:  fwd,
	}
	f, err := fwd.CashRate(0.5, 1.0)
	require.NoError(t, err)

	a, err := p.Amount(0.0)
	require.NoError(t, err)
	assert.InDelta(t, 1000.0*f*0.5, a, 1e-12)

	// a fixed spread adds on top of the forward
	p.FixedRate = 0.01
	a, err = p.Amount(0.0)
	require.NoError(t, err)
	assert.InDelta(t, 1000.0*(f+0.01)*0.5, a, 1e-12)
}

func TestRatePayoffCollar(t *testing.T) {
	floor, cap := 0.02, 0.03
	p := RatePayoff{
		PayDate:   1.0,
		Notional:  100.0,
		FixedRate: 0.05,
		Start:     0.0,
		End:       1.0,
		Floor:     &floor,
		Cap:       &cap,
	}
	a, err := p.Amount(0.0)
	require.NoError(t, err)
	assert.InDelta(t, 100.0*cap, a, 1e-12)

	p.FixedRate = 0.001
	a, err = p.Amount(0.0)
	require.NoError(t, err)
	assert.InDelta(t, 100.0*floor, a, 1e-12)
}

func TestRatePayoffAccruedInterest(t *testing.T) {
	p := RatePayoff{
		PayDate:   1.0,
		Notional:  1000.0,
		FixedRate: 0.04,
		Start:     0.0,
		End:       1.0,
	}
	full, err := p.Amount(0.0)
	require.NoError(t, err)

	acc, err := p.AccruedInterest(0.25)
	require.NoError(t, err)
	assert.InDelta(t, full*0.25, acc, 1e-12)

	acc, err = p.AccruedInterest(-1.0)
	require.NoError(t, err)
	assert.Equal(t, 0.0, acc)

	acc, err = p.AccruedInterest(2.0)
	require.NoError(t, err)
	assert.InDelta(t, full, acc, 1e-12)
}

func TestOptionPayoff(t *testing.T) {
	forward, err := curve.New([]float64{1.0}, []float64{105.0}, nil)
	require.NoError(t, err)
	vol, err := curve.New([]float64{1.0}, []float64{0.2}, nil)
	require.NoError(t, err)

	p := OptionPayoff{
		PayDate:  1.0,
		Notional: 10.0,
		Expiry:   1.0,
		Strike:   100.0,
		Type:     option.Call,
		Formula:  option.Black76{},
		Forward:  forward,
		Vol:      vol,
	}
	a, err := p.Amount(0.0)
	require.NoError(t, err)
	// worth more than intrinsic before expiry
	assert.Greater(t, a, 10.0*5.0)

	// at expiry only the intrinsic value remains
	a, err = p.Amount(1.0)
	require.NoError(t, err)
	assert.InDelta(t, 10.0*5.0, a, 1e-12)

	// valuation after expiry is a caller error
	_, err = p.Amount(1.5)
	require.Error(t, err)

	// a non-intrinsic formula without a volatility curve is a caller error
	p.Vol = nil
	_, err = p.Amount(0.0)
	require.Error(t, err)

	// the intrinsic formula needs no volatility
	p.Formula = option.Intrinsic{}
	a, err = p.Amount(0.0)
	require.NoError(t, err)
	assert.InDelta(t, 10.0*5.0, a, 1e-12)
}

func TestRatePayoffOffsets(t *testing.T) {
	fwd, err := rate.NewZeroRate([]float64{0.0, 2.0}, []float64{0.04, 0.04}, nil)
	require.NoError(t, err)

	p := RatePayoff{
		PayDate:      1.0,
		Notional:     1000.0,
		Start:        0.5,
		End:          1.0,
		FixingOffset: 0.1,
		PayOffset:    0.05,
		Forward:      fwd,
	}
	// the effective pay date carries the pay offset
	assert.InDelta(t, 1.05, p.Pay(), 1e-15)

	// the forward fixes over the offset period
	f, err := fwd.CashRate(0.4, 0.9)
	require.NoError(t, err)
	a, err := p.Amount(0.0)
	require.NoError(t, err)
	assert.InDelta(t, 1000.0*f*0.5, a, 1e-12)
}

func TestRowRecords(t *testing.T) {
	fwd, err := rate.NewZeroRate([]float64{0.0, 2.0}, []float64{0.03, 0.03}, nil)
	require.NoError(t, err)

	list := NewList(
		FixedPayoff{PayDate: 1.0, Value: 50.0},
		RatePayoff{PayDate: 2.0, Notional: 1000.0, Start: 1.0, End: 2.0, Forward: fwd},
	)
	rows, err := list.Rows(0.0)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "fixed", rows[0].Kind)
	assert.Equal(t, 50.0, rows[0].Amount)
	assert.Equal(t, "rate", rows[1].Kind)
	assert.Greater(t, rows[1].ForwardRate, 0.0)
	assert.Equal(t, 1.0, rows[1].Tau)
}
