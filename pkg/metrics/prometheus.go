package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain.repository.Metrics using Prometheus.
type Recorder struct {
	fetchesTotal *prometheus.CounterVec
	probesTotal  *prometheus.CounterVec
	failedLabels prometheus.Gauge
	panelRows    prometheus.Gauge
	panelCols    prometheus.Gauge
	latency      *prometheus.HistogramVec
}

// New creates a new Prometheus metrics recorder.
func New() *Recorder {
	return &Recorder{
		fetchesTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "marketmon_fetches_total",
				Help: "Total number of data source fetches by outcome",
			},
			[]string{"source", "outcome"},
		),
		probesTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "marketmon_resolver_probes_total",
				Help: "Total number of resolver candidate probes",
			},
			[]string{"ticker"},
		),
		failedLabels: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "marketmon_failed_labels",
				Help: "Number of asset labels that failed in the last session",
			},
		),
		panelRows: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "marketmon_panel_rows",
				Help: "Rows (dates) in the last aligned panel",
			},
		),
		panelCols: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "marketmon_panel_columns",
				Help: "Columns (assets) in the last aligned panel",
			},
		),
		latency: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "marketmon_operation_duration_seconds",
				Help:    "Duration of pipeline operations in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
	}
}

// RecordFetch records a fetch attempt outcome for a data source.
func (r *Recorder) RecordFetch(source string, ok bool) {
	outcome := "ok"
	if !ok {
		outcome = "error"
	}
	r.fetchesTotal.WithLabelValues(source, outcome).Inc()
}

// RecordProbe records one resolver candidate probe.
func (r *Recorder) RecordProbe(ticker string) {
	r.probesTotal.WithLabelValues(ticker).Inc()
}

// RecordFailedLabels records how many labels failed in a session.
func (r *Recorder) RecordFailedLabels(n int) {
	r.failedLabels.Set(float64(n))
}

// RecordLatency records operation latency in seconds.
func (r *Recorder) RecordLatency(op string, seconds float64) {
	r.latency.WithLabelValues(op).Observe(seconds)
}

// RecordPanelSize records the shape of the last aligned panel.
func (r *Recorder) RecordPanelSize(rows, cols int) {
	r.panelRows.Set(float64(rows))
	r.panelCols.Set(float64(cols))
}
