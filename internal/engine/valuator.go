// Package engine wires curves, cashflows and the pricer into valuation
// runs with logging and metrics.
package engine

import (
	"context"
	"time"

	"github.com/rzzdr/dcf-engine/pkg/cashflow"
	"github.com/rzzdr/dcf-engine/pkg/metrics"
	"github.com/rzzdr/dcf-engine/pkg/pricer"
	"github.com/rzzdr/dcf-engine/pkg/rate"
	"github.com/rzzdr/dcf-engine/pkg/utils/errors"
	"github.com/rzzdr/dcf-engine/pkg/utils/logger"
)

// ValuatorConfig contains configuration for the valuator
type ValuatorConfig struct {
	SolverTolerance     float64
	SolverMaxIterations int
}

// Product pairs a named cashflow list with the curve it discounts on
type Product struct {
	Name  string
	Flows *cashflow.List
}

// Report holds the valuation results for one product
type Report struct {
	Product      string
	Valuation    float64
	PresentValue float64
	Accrued      float64
	Yield        float64
	BPV          float64
	Deltas       []float64
	Rows         []cashflow.Row
}

// Valuator runs valuations and calibrations over products
type Valuator struct {
	config   ValuatorConfig
	solver   pricer.Solver
	recorder *metrics.Recorder
	log      *logger.Logger
}

// NewValuator creates a new valuator
func NewValuator(config ValuatorConfig, recorder *metrics.Recorder) *Valuator {
	solver := pricer.NewSolver()
	if config.SolverTolerance > 0 {
		solver.Tolerance = config.SolverTolerance
	}
	if config.SolverMaxIterations > 0 {
		solver.MaxIterations = config.SolverMaxIterations
	}
	return &Valuator{
		config:   config,
		solver:   solver,
		recorder: recorder,
		log:      logger.GetLogger("engine.valuator"),
	}
}

func (v *Valuator) record(product, measure string, start time.Time) {
	if v.recorder != nil {
		v.recorder.RecordValuation(product, measure, time.Since(start))
	}
}

// Value computes present value, accrued interest, yield and rate
// sensitivities of a product on the discount curve.
func (v *Valuator) Value(ctx context.Context, product Product, discount *rate.Curve, valuation float64) (*Report, error) {
	if product.Flows == nil {
		return nil, errors.Domainf("product %q has no cashflows", product.Name)
	}
	v.log.Infof("Valuing %s with %d cashflows at %g", product.Name, product.Flows.Len(), valuation)

	report := &Report{Product: product.Name, Valuation: valuation}

	start := time.Now()
	pv, err := pricer.PV(discount, product.Flows, valuation)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot value %s", product.Name)
	}
	report.PresentValue = pv
	v.record(product.Name, "pv", start)

	start = time.Now()
	accrued, err := pricer.IAC(product.Flows, valuation)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot accrue %s", product.Name)
	}
	report.Accrued = accrued
	v.record(product.Name, "iac", start)

	start = time.Now()
	yield, err := pricer.YTM(product.Flows, valuation, pv)
	if err != nil {
		// yields do not exist for every cashflow profile
		v.log.Warnf("No yield for %s: %v", product.Name, err)
	} else {
		report.Yield = yield
		v.record(product.Name, "ytm", start)
	}

	start = time.Now()
	bpv, err := pricer.BPV(discount, product.Flows, valuation)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot compute bpv for %s", product.Name)
	}
	report.BPV = bpv
	v.record(product.Name, "bpv", start)

	start = time.Now()
	deltas, err := pricer.Delta(ctx, discount, product.Flows, valuation)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot compute deltas for %s", product.Name)
	}
	report.Deltas = deltas
	v.record(product.Name, "delta", start)

	rows, err := product.Flows.Rows(valuation)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot tabulate %s", product.Name)
	}
	report.Rows = rows

	if v.recorder != nil {
		v.recorder.RecordCashflows(product.Name, len(rows))
	}
	v.log.Infof("Valued %s: pv=%.6f accrued=%.6f bpv=%.6f", product.Name, pv, accrued, bpv)
	return report, nil
}

// Calibrate bootstraps the curve node by node against the instruments
func (v *Valuator) Calibrate(name string, c *rate.Curve, instruments []pricer.Instrument, valuation float64) (*rate.Curve, error) {
	start := time.Now()
	v.log.Infof("Calibrating %s curve with %d instruments", name, len(instruments))

	fitted, err := pricer.Fit(c, instruments, valuation, v.solver)
	if v.recorder != nil {
		status := "ok"
		if err != nil {
			status = "failed"
		}
		v.recorder.RecordCalibration(name, status, len(c.Domain()), time.Since(start))
	}
	if err != nil {
		return nil, errors.Wrapf(err, "cannot calibrate %s curve", name)
	}
	v.log.Infof("Calibrated %s curve in %s", name, time.Since(start))
	return fitted, nil
}
