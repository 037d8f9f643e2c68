package pricer

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rzzdr/dcf-engine/pkg/cashflow"
	"github.com/rzzdr/dcf-engine/pkg/rate"
)

func flatZero(t *testing.T, y float64) *rate.Curve {
	t.Helper()
	c, err := rate.NewZeroRate([]float64{0.0, 10.0}, []float64{y, y}, nil)
	require.NoError(t, err)
	return c
}

func TestPVExcludesPastAndCurrentPayments(t *testing.T) {
	flows, err := cashflow.FixedFlows(
		[]float64{-1.0, 0.0, 1.0}, []float64{100.0, 100.0, 100.0})
	require.NoError(t, err)

	d := flatZero(t, 0.03)
	pv, err := PV(d, flows, 0.0)
	require.NoError(t, err)
	assert.InDelta(t, 100.0*math.Exp(-0.03), pv, 1e-12)

	ecf, err := ECF(flows, 0.0)
	require.NoError(t, err)
	require.Len(t, ecf, 1)
	assert.Equal(t, 1.0, ecf[0].Pay)
}

func TestPVDiscountsFromValuationDate(t *testing.T) {
	flows, err := cashflow.FixedFlows([]float64{2.0}, []float64{100.0})
	require.NoError(t, err)

	d := flatZero(t, 0.05)
	pv, err := PV(d, flows, 1.0)
	require.NoError(t, err)
	assert.InDelta(t, 100.0*math.Exp(-0.05), pv, 1e-12)
}

func TestYTMRecoversFlatYield(t *testing.T) {
	flows, err := cashflow.FixedFlows(
		[]float64{1.0, 2.0, 3.0}, []float64{4.0, 4.0, 104.0})
	require.NoError(t, err)

	d := flatZero(t, 0.05)
	price, err := PV(d, flows, 0.0)
	require.NoError(t, err)

	y, err := YTM(flows, 0.0, price)
	require.NoError(t, err)
	assert.InDelta(t, 0.05, y, 1e-8)
}

func TestFairRecoversFixedRate(t *testing.T) {
	flows, err := cashflow.RateFlows([]float64{0.0, 0.5, 1.0}, 1000.0, 0.04)
	require.NoError(t, err)

	d := flatZero(t, 0.03)
	target, err := PV(d, flows, 0.0)
	require.NoError(t, err)

	fair, err := Fair(d, flows, 0.0, target)
	require.NoError(t, err)
	assert.InDelta(t, 0.04, fair, 1e-8)

	// a fair rate of zero prices an interest leg to zero
	fair, err = Fair(d, flows, 0.0, 0.0)
	require.NoError(t, err)
	assert.InDelta(t, 0.0, fair, 1e-8)
}

func TestIACProRataAccrual(t *testing.T) {
	flows, err := cashflow.RateFlows([]float64{0.0, 1.0}, 1000.0, 0.04)
	require.NoError(t, err)

	acc, err := IAC(flows, 0.25)
	require.NoError(t, err)
	assert.InDelta(t, 40.0*0.25, acc, 1e-12)

	// nothing accrued before the period starts
	acc, err = IAC(flows, -0.5)
	require.NoError(t, err)
	assert.Equal(t, 0.0, acc)
}

func TestBPVMatchesDeltaSum(t *testing.T) {
	c, err := rate.NewZeroRate([]float64{1.0, 2.0}, []float64{0.03, 0.04}, nil)
	require.NoError(t, err)
	flows, err := cashflow.FixedFlows([]float64{1.0, 2.0}, []float64{100.0, 100.0})
	require.NoError(t, err)

	bpv, err := BPV(c, flows, 0.0)
	require.NoError(t, err)
	assert.Less(t, bpv, 0.0)

	deltas, err := Delta(context.Background(), c, flows, 0.0)
	require.NoError(t, err)
	require.Len(t, deltas, 2)

	sum := 0.0
	for _, d := range deltas {
		sum += d
	}
	assert.InDelta(t, bpv, sum, 1e-12)
}

func TestDeltaBucketsLocalizeSensitivity(t *testing.T) {
	c, err := rate.NewZeroRate([]float64{1.0, 5.0}, []float64{0.03, 0.03}, nil)
	require.NoError(t, err)
	// a single payment at the first node only moves with the first node
	flows, err := cashflow.FixedFlows([]float64{1.0}, []float64{100.0})
	require.NoError(t, err)

	deltas, err := Delta(context.Background(), c, flows, 0.0)
	require.NoError(t, err)
	assert.Less(t, deltas[0], 0.0)
	assert.Equal(t, 0.0, deltas[1])
}
