package metrics

import (
	"context"
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// defaultCollectInterval is the system gauge sampling period when none is
// configured
const defaultCollectInterval = 15 * time.Second

// Recorder handles metrics recording and exposure
type Recorder struct {
	// Valuation metrics
	valuationCounter *prometheus.CounterVec
	valuationLatency *prometheus.HistogramVec

	// Calibration metrics
	calibrationCounter *prometheus.CounterVec
	calibrationLatency *prometheus.HistogramVec
	curveNodesGauge    *prometheus.GaugeVec

	// Cashflow metrics
	cashflowCounter *prometheus.CounterVec

	// System metrics
	memoryUsageGauge    prometheus.Gauge
	goroutineCountGauge prometheus.Gauge
}

// NewRecorder creates a new metrics recorder
func NewRecorder() *Recorder {
	return &Recorder{
		// Valuation metrics
		valuationCounter: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "dcf_valuations_total",
				Help: "The total number of valuations",
			},
			[]string{"product", "measure"},
		),
		valuationLatency: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "dcf_valuation_latency_seconds",
				Help:    "Valuation latency distribution",
				Buckets: prometheus.ExponentialBuckets(0.0001, 2, 15), // From 0.1ms to ~1.6s
			},
			[]string{"product", "measure"},
		),

		// Calibration metrics
		calibrationCounter: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "dcf_calibrations_total",
				Help: "The total number of curve calibrations",
			},
			[]string{"curve", "status"},
		),
		calibrationLatency: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "dcf_calibration_latency_seconds",
				Help:    "Curve calibration latency in seconds",
				Buckets: prometheus.ExponentialBuckets(0.001, 2, 12), // From 1ms to ~4s
			},
			[]string{"curve"},
		),
		curveNodesGauge: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "dcf_curve_nodes",
				Help: "Number of nodes on a calibrated curve",
			},
			[]string{"curve"},
		),

		// Cashflow metrics
		cashflowCounter: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "dcf_cashflows_total",
				Help: "The total number of cashflows valued",
			},
			[]string{"product"},
		),

		// System metrics
		memoryUsageGauge: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "dcf_memory_usage_bytes",
				Help: "Memory usage of the application in bytes",
			},
		),
		goroutineCountGauge: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "dcf_goroutine_count",
				Help: "Number of goroutines",
			},
		),
	}
}

// RecordValuation records metrics for a valuation
func (r *Recorder) RecordValuation(product, measure string, latency time.Duration) {
	r.valuationCounter.WithLabelValues(product, measure).Inc()
	r.valuationLatency.WithLabelValues(product, measure).Observe(latency.Seconds())
}

// RecordCalibration records metrics for a curve calibration
func (r *Recorder) RecordCalibration(curve, status string, nodes int, latency time.Duration) {
	r.calibrationCounter.WithLabelValues(curve, status).Inc()
	r.calibrationLatency.WithLabelValues(curve).Observe(latency.Seconds())
	r.curveNodesGauge.WithLabelValues(curve).Set(float64(nodes))
}

// RecordCashflows records the number of cashflows valued for a product
func (r *Recorder) RecordCashflows(product string, count int) {
	r.cashflowCounter.WithLabelValues(product).Add(float64(count))
}

// RecordMemoryUsage records the current memory usage
func (r *Recorder) RecordMemoryUsage(bytesUsed uint64) {
	r.memoryUsageGauge.Set(float64(bytesUsed))
}

// RecordGoroutineCount records the current number of goroutines
func (r *Recorder) RecordGoroutineCount(count int) {
	r.goroutineCountGauge.Set(float64(count))
}

// SampleSystem records the current memory usage and goroutine count
func (r *Recorder) SampleSystem() {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	r.RecordMemoryUsage(m.Alloc)
	r.RecordGoroutineCount(runtime.NumGoroutine())
}

// CollectSystem samples the system gauges on every interval tick until the
// context is cancelled. A non-positive interval falls back to the default.
func (r *Recorder) CollectSystem(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = defaultCollectInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.SampleSystem()
		}
	}
}
