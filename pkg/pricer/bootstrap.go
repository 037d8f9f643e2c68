package pricer

import (
	"github.com/rzzdr/dcf-engine/pkg/cashflow"
	"github.com/rzzdr/dcf-engine/pkg/rate"
	"github.com/rzzdr/dcf-engine/pkg/utils/errors"
)

// Instrument pairs a calibration product with its observed present value
type Instrument struct {
	Flows  *cashflow.List
	Target float64
}

// calibrationBracket is the native value search half width per node
const calibrationBracket = 0.1

// Fit calibrates the curve node by node so each instrument prices to its
// target. Instruments are matched to nodes in domain order, one per node,
// so each instrument should be most sensitive to its own node. The input
// curve is not modified.
func Fit(c *rate.Curve, instruments []Instrument, valuation float64, solver Solver) (*rate.Curve, error) {
	nodes := c.Domain()
	if len(instruments) != len(nodes) {
		return nil, errors.Domainf("calibration requires one instrument per node: %d != %d",
			len(instruments), len(nodes))
	}
	fitted := c
	for i, inst := range instruments {
		if inst.Flows == nil {
			return nil, errors.Domainf("calibration instrument %d has no cashflows", i)
		}
		current := fitted.Values()[i]
		lo, hi := current-calibrationBracket, current+calibrationBracket
		if c.Kind() == rate.DiscountFactor && lo <= 0 {
			lo = 1e-8
		}
		objective := func(v float64) (float64, error) {
			candidate, err := fitted.WithNodeValue(i, v)
			if err != nil {
				return 0, err
			}
			pv, err := PV(candidate, inst.Flows, valuation)
			if err != nil {
				return 0, err
			}
			return pv - inst.Target, nil
		}
		v, err := solver.Root(objective, lo, hi)
		if err != nil {
			return nil, errors.WrapKindf(err, errors.KindConvergence,
				"cannot fit node %d at %g", i, nodes[i])
		}
		fitted, err = fitted.WithNodeValue(i, v)
		if err != nil {
			return nil, err
		}
	}
	return fitted, nil
}
