// Package pricer provides the valuation routines on cashflow lists:
// expected cashflows, present value, yield to maturity, fair rates,
// accrued interest and rate sensitivities.
package pricer

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/rzzdr/dcf-engine/pkg/cashflow"
	"github.com/rzzdr/dcf-engine/pkg/rate"
	"github.com/rzzdr/dcf-engine/pkg/utils/errors"
)

// Discounter supplies discount factors between two time points.
// *rate.Curve satisfies it.
type Discounter interface {
	DiscountFactor(start, end float64) (float64, error)
}

// basisPoint is the standard rate shift for BPV and bucketed deltas
const basisPoint = 1e-4

// CashFlow is a dated expected payment amount
type CashFlow struct {
	Pay    float64
	Amount float64
}

// ECF returns the expected cashflows paying strictly after the valuation
// date, fixed at the valuation date.
func ECF(flows *cashflow.List, valuation float64) ([]CashFlow, error) {
	var out []CashFlow
	for _, p := range flows.Payoffs() {
		if p.Pay() <= valuation {
			continue
		}
		a, err := p.Amount(valuation)
		if err != nil {
			return nil, err
		}
		out = append(out, CashFlow{Pay: p.Pay(), Amount: a})
	}
	return out, nil
}

// PV returns the present value at the valuation date. Payments at or
// before the valuation date are excluded.
func PV(d Discounter, flows *cashflow.List, valuation float64) (float64, error) {
	ecf, err := ECF(flows, valuation)
	if err != nil {
		return 0, err
	}
	pv := 0.0
	for _, cf := range ecf {
		df, err := d.DiscountFactor(valuation, cf.Pay)
		if err != nil {
			return 0, err
		}
		pv += cf.Amount * df
	}
	return pv, nil
}

// YTM returns the flat continuously compounded yield that discounts the
// cashflows to the given present value.
func YTM(flows *cashflow.List, valuation, presentValue float64) (float64, error) {
	dates := flows.PayDates()
	if len(dates) == 0 {
		return 0, errors.Domain("yield requires at least one cashflow")
	}
	horizon := dates[len(dates)-1]
	objective := func(y float64) (float64, error) {
		flat, err := rate.NewZeroRate([]float64{valuation, horizon}, []float64{y, y}, nil,
			rate.WithOrigin(valuation))
		if err != nil {
			return 0, err
		}
		pv, err := PV(flat, flows, valuation)
		if err != nil {
			return 0, err
		}
		return pv - presentValue, nil
	}
	return NewSolver().Root(objective, -0.1, 0.2)
}

// Fair returns the fixed rate that prices the cashflows to the given
// present value. The list itself is not modified.
func Fair(d Discounter, flows *cashflow.List, valuation, presentValue float64) (float64, error) {
	objective := func(r float64) (float64, error) {
		pv, err := PV(d, flows.WithFixedRate(r), valuation)
		if err != nil {
			return 0, err
		}
		return pv - presentValue, nil
	}
	return NewSolver().Root(objective, -0.1, 0.2)
}

// IAC returns the interest accrued up to the valuation date on cashflows
// paying after it.
func IAC(flows *cashflow.List, valuation float64) (float64, error) {
	total := 0.0
	for _, p := range flows.Payoffs() {
		if p.Pay() <= valuation {
			continue
		}
		accruer, ok := p.(interface {
			AccruedInterest(float64) (float64, error)
		})
		if !ok {
			continue
		}
		a, err := accruer.AccruedInterest(valuation)
		if err != nil {
			return 0, err
		}
		total += a
	}
	return total, nil
}

// BPV returns the present value change under a one basis point parallel
// shift of the discount curve.
func BPV(c *rate.Curve, flows *cashflow.List, valuation float64) (float64, error) {
	base, err := PV(c, flows, valuation)
	if err != nil {
		return 0, err
	}
	shifted, err := PV(c.Bumped(basisPoint), flows, valuation)
	if err != nil {
		return 0, err
	}
	return shifted - base, nil
}

// Delta returns the present value change per curve node under a one basis
// point shift of that node alone. Nodes are valued concurrently, the
// curves are immutable.
func Delta(ctx context.Context, c *rate.Curve, flows *cashflow.List, valuation float64) ([]float64, error) {
	base, err := PV(c, flows, valuation)
	if err != nil {
		return nil, err
	}
	deltas := make([]float64, len(c.Domain()))
	g, ctx := errgroup.WithContext(ctx)
	for i := range deltas {
		i := i
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			bumped, err := c.BumpedNode(i, basisPoint)
			if err != nil {
				return err
			}
			pv, err := PV(bumped, flows, valuation)
			if err != nil {
				return err
			}
			deltas[i] = pv - base
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return deltas, nil
}
