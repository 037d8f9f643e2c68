package cashflow

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func planSum(plan []float64) float64 {
	total := 0.0
	for _, p := range plan {
		total += p
	}
	return total
}

func TestFlatPlan(t *testing.T) {
	plan, err := Flat(4, 25.0)
	require.NoError(t, err)
	assert.Equal(t, []float64{25.0, 25.0, 25.0, 25.0}, plan)

	_, err = Flat(0, 25.0)
	require.Error(t, err)
}

func TestBulletPlan(t *testing.T) {
	plan, err := Bullet(4, 1000.0)
	require.NoError(t, err)
	assert.Equal(t, []float64{0.0, 0.0, 0.0, 1000.0}, plan)
}

func TestAmortizePlanSumsToTotal(t *testing.T) {
	plan, err := Amortize(8, 1000.0)
	require.NoError(t, err)
	require.Len(t, plan, 8)
	assert.Equal(t, 1000.0, planSum(plan))
	assert.Equal(t, 125.0, plan[0])
}

func TestAnnuityPlan(t *testing.T) {
	rate := 0.01
	plan, err := Annuity(12, 1000.0, rate)
	require.NoError(t, err)
	assert.InDelta(t, 1000.0, planSum(plan), 1e-9)

	// interest plus redemption is the same installment every period
	outstanding := Outstanding(plan)
	installment := plan[0] + rate*outstanding[0]
	for i := 1; i < len(plan); i++ {
		assert.InDelta(t, installment, plan[i]+rate*outstanding[i], 1e-9, "period %d", i)
	}

	// redemptions grow over time as interest shrinks
	assert.Greater(t, plan[11], plan[0])
}

func TestAnnuityZeroRateDegeneratesToAmortize(t *testing.T) {
	plan, err := Annuity(4, 1000.0, 0.0)
	require.NoError(t, err)
	assert.Equal(t, []float64{250.0, 250.0, 250.0, 250.0}, plan)
}

func TestConsumerPlan(t *testing.T) {
	rate := 0.01
	plan, err := Consumer(12, 1000.0, rate)
	require.NoError(t, err)

	// equal gross installments covering interest and redemption
	for i := 1; i < len(plan); i++ {
		assert.Equal(t, plan[0], plan[i])
	}
	assert.Greater(t, planSum(plan), 1000.0)
}

func TestOutstanding(t *testing.T) {
	out := Outstanding([]float64{250.0, 250.0, 250.0, 250.0})
	assert.Equal(t, []float64{1000.0, 750.0, 500.0, 250.0}, out)
}
