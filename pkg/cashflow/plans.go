package cashflow

import (
	"math"

	"github.com/rzzdr/dcf-engine/pkg/utils/errors"
)

// Payment plans generate redemption amounts per period. Every plan returns
// amounts that sum to the total, so the notional is fully repaid.

// Flat returns n equal amounts
func Flat(n int, amount float64) ([]float64, error) {
	if n <= 0 {
		return nil, errors.Domainf("payment plan requires a positive period count, got %d", n)
	}
	plan := make([]float64, n)
	for i := range plan {
		plan[i] = amount
	}
	return plan, nil
}

// Bullet repays the whole total in the last period
func Bullet(n int, total float64) ([]float64, error) {
	if n <= 0 {
		return nil, errors.Domainf("payment plan requires a positive period count, got %d", n)
	}
	plan := make([]float64, n)
	plan[n-1] = total
	return plan, nil
}

// Amortize repays the total in n equal redemptions
func Amortize(n int, total float64) ([]float64, error) {
	if n <= 0 {
		return nil, errors.Domainf("payment plan requires a positive period count, got %d", n)
	}
	plan := make([]float64, n)
	for i := range plan {
		plan[i] = total / float64(n)
	}
	return plan, nil
}

// Annuity repays the total with a constant sum of interest and redemption
// per period at the given period rate. The returned redemptions grow
// geometrically and sum to the total.
func Annuity(n int, total, rate float64) ([]float64, error) {
	if n <= 0 {
		return nil, errors.Domainf("payment plan requires a positive period count, got %d", n)
	}
	if rate == 0 {
		return Amortize(n, total)
	}
	if rate <= -1 {
		return nil, errors.Domainf("annuity plan requires a period rate above -1, got %g", rate)
	}
	// constant installment against the outstanding balance
	q := 1.0 + rate
	installment := total * rate / (1.0 - math.Pow(q, -float64(n)))
	plan := make([]float64, n)
	outstanding := total
	for i := 0; i < n; i++ {
		plan[i] = installment - rate*outstanding
		outstanding -= plan[i]
	}
	// absorb the floating point residual in the last redemption
	plan[n-1] += outstanding
	return plan, nil
}

// Consumer returns the constant gross installments of a consumer credit,
// interest on the outstanding balance included. The sum of the installments
// exceeds the total by the interest paid.
func Consumer(n int, total, rate float64) ([]float64, error) {
	if n <= 0 {
		return nil, errors.Domainf("payment plan requires a positive period count, got %d", n)
	}
	if rate == 0 {
		return Amortize(n, total)
	}
	if rate <= -1 {
		return nil, errors.Domainf("consumer plan requires a period rate above -1, got %g", rate)
	}
	q := 1.0 + rate
	installment := total * rate / (1.0 - math.Pow(q, -float64(n)))
	plan := make([]float64, n)
	for i := range plan {
		plan[i] = installment
	}
	return plan, nil
}

// Outstanding returns the balance at the start of each period for a
// redemption plan, beginning with the sum of all redemptions.
func Outstanding(redemptions []float64) []float64 {
	balance := 0.0
	for _, r := range redemptions {
		balance += r
	}
	out := make([]float64, len(redemptions))
	for i, r := range redemptions {
		out[i] = balance
		balance -= r
	}
	return out
}
