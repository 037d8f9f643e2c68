package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"text/tabwriter"

	"github.com/rzzdr/dcf-engine/config"
	"github.com/rzzdr/dcf-engine/internal/engine"
	"github.com/rzzdr/dcf-engine/pkg/cashflow"
	"github.com/rzzdr/dcf-engine/pkg/curve"
	"github.com/rzzdr/dcf-engine/pkg/interpolation"
	"github.com/rzzdr/dcf-engine/pkg/metrics"
	"github.com/rzzdr/dcf-engine/pkg/option"
	"github.com/rzzdr/dcf-engine/pkg/pricer"
	"github.com/rzzdr/dcf-engine/pkg/rate"
	"github.com/rzzdr/dcf-engine/pkg/utils/logger"
)

func main() {
	// Parse command line flags
	valuation := flag.Float64("valuation", 0.0, "valuation date as year fraction")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	logger.Init(cfg.App.LogLevel, cfg.App.Environment)
	log := logger.GetLogger("dcf-engine.main")
	log.Info("Starting DCF valuation engine")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize metrics recorder and sample system gauges periodically
	recorder := metrics.NewRecorder()
	go recorder.CollectSystem(ctx, cfg.Metrics.Interval)

	// Start Prometheus metrics server if enabled
	var promServer *metrics.PrometheusServer
	if cfg.Metrics.Prometheus.Enabled {
		promServer = metrics.NewPrometheusServer(cfg.Metrics.Prometheus.Port)
		go func() {
			if err := promServer.Start(); err != nil && err != http.ErrServerClosed {
				log.Errorf("Metrics server error: %v", err)
			}
		}()
	}

	scheme, err := interpolation.ByName(cfg.Curve.Interpolation)
	if err != nil {
		log.Fatalf("Invalid curve configuration: %v", err)
	}

	// Build the initial zero curve on the configured calibration nodes
	nodes := cfg.Calibration.Nodes
	if len(nodes) == 0 {
		nodes = []float64{1.0, 2.0, 5.0, 10.0}
	}
	guesses := make([]float64, len(nodes))
	for i := range guesses {
		guesses[i] = 0.02
	}
	zero, err := rate.NewZeroRate(nodes, guesses, scheme,
		rate.WithForwardTenor(cfg.Curve.ForwardTenor))
	if err != nil {
		log.Fatalf("Failed to build zero curve: %v", err)
	}

	// Create valuator
	valuator := engine.NewValuator(engine.ValuatorConfig{
		SolverTolerance:     cfg.Solver.Tolerance,
		SolverMaxIterations: cfg.Solver.MaxIterations,
	}, recorder)

	// Calibrate against synthetic zero bond quotes, one per node
	quotes := []float64{0.022, 0.025, 0.028, 0.03}
	instruments := make([]pricer.Instrument, len(nodes))
	for i, node := range nodes {
		flows, err := cashflow.FixedFlows([]float64{node}, []float64{100.0})
		if err != nil {
			log.Fatalf("Failed to build calibration instrument: %v", err)
		}
		y := quotes[i%len(quotes)]
		target, err := mustPV(y, node)
		if err != nil {
			log.Fatalf("Failed to price calibration target: %v", err)
		}
		instruments[i] = pricer.Instrument{Flows: flows, Target: target}
	}
	discount, err := valuator.Calibrate("zero", zero, instruments, *valuation)
	if err != nil {
		log.Fatalf("Calibration failed: %v", err)
	}

	// A fixed rate bond amortizing over the curve horizon
	redemptions, err := cashflow.Annuity(8, 1000.0, 0.01)
	if err != nil {
		log.Fatalf("Failed to build redemption plan: %v", err)
	}
	schedule := make([]float64, 9)
	for i := range schedule {
		schedule[i] = float64(i) * 0.5
	}
	bondFlows, err := cashflow.AmortizingFlows(schedule, redemptions, 0.035)
	if err != nil {
		log.Fatalf("Failed to build bond cashflows: %v", err)
	}

	// A collared floater on the calibrated forwards
	floaterFlows, err := cashflow.RateFlows(schedule, 1000.0, 0.0,
		cashflow.WithForward(discount),
		cashflow.WithCollar(0.01, 0.05))
	if err != nil {
		log.Fatalf("Failed to build floater cashflows: %v", err)
	}

	// A strip of caplets on the same forwards
	formula, err := option.ByName(cfg.Option.Formula, cfg.Option.Displacement)
	if err != nil {
		log.Fatalf("Invalid option configuration: %v", err)
	}
	forwards, err := rate.ToCashRate(discount)
	if err != nil {
		log.Fatalf("Failed to derive forward curve: %v", err)
	}
	vols, err := flatVolCurve(nodes, 0.2)
	if err != nil {
		log.Fatalf("Failed to build volatility curve: %v", err)
	}
	capletFlows, err := cashflow.OptionFlows(nodes, 1000.0, 0.03, option.Call,
		formula, forwards, vols)
	if err != nil {
		log.Fatalf("Failed to build caplet cashflows: %v", err)
	}

	products := []engine.Product{
		{Name: "amortizing-bond", Flows: bondFlows},
		{Name: "collared-floater", Flows: floaterFlows},
		{Name: "caplet-strip", Flows: capletFlows},
	}
	for _, product := range products {
		report, err := valuator.Value(ctx, product, discount, *valuation)
		if err != nil {
			log.Fatalf("Valuation of %s failed: %v", product.Name, err)
		}
		printReport(report)
	}

	if promServer != nil {
		if err := promServer.Stop(); err != nil {
			log.Errorf("Metrics server shutdown error: %v", err)
		}
	}
	log.Info("Shutdown complete")
}

// mustPV prices a unit zero bond quote at a flat yield
func mustPV(y, maturity float64) (float64, error) {
	flat, err := rate.NewZeroRate([]float64{maturity}, []float64{y}, nil)
	if err != nil {
		return 0, err
	}
	df, err := flat.DiscountFactorTo(maturity)
	if err != nil {
		return 0, err
	}
	return 100.0 * df, nil
}

func flatVolCurve(nodes []float64, vol float64) (cashflow.ValueCurve, error) {
	values := make([]float64, len(nodes))
	for i := range values {
		values[i] = vol
	}
	c, err := curve.New(nodes, values, nil)
	if err != nil {
		return nil, err
	}
	return c, nil
}

func printReport(r *engine.Report) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "\n%s\tpv=%.4f\taccrued=%.4f\tytm=%.6f\tbpv=%.6f\n",
		r.Product, r.PresentValue, r.Accrued, r.Yield, r.BPV)
	fmt.Fprintln(w, "kind\tpay\tnotional\trate\tforward\tstart\tend\tamount")
	for _, row := range r.Rows {
		fmt.Fprintf(w, "%s\t%.2f\t%.2f\t%.4f\t%.4f\t%.2f\t%.2f\t%.4f\n",
			row.Kind, row.Pay, row.Notional, row.FixedRate, row.ForwardRate,
			row.Start, row.End, row.Amount)
	}
	w.Flush()
}
