package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// HistogramBuckets are latency buckets in milliseconds. Store round trips dominate, so the
// resolution is highest below 500ms.
var HistogramBuckets = []float64{
	5, 10, 25, 50, 75, 100, 150, 200, 300, 400, 500,
	750, 1000, 1500, 2000, 3000, 5000, 10000, 30000,
}

// Metric describes one collector. Type is one of counter, gauge, histogram or summary, with a
// "_vec" suffix when Args lists label names. MetricCollector is set once registered.
type Metric struct {
	MetricCollector prometheus.Collector
	ID              string
	Name            string
	Description     string
	Type            string
	Args            []string
}

// NewMetric builds the collector for m. It returns nil for an unknown Type.
func NewMetric(m *Metric, subsystem string) prometheus.Collector {
	switch m.Type {
	case "counter_vec":
		return prometheus.NewCounterVec(prometheus.CounterOpts{Subsystem: subsystem, Name: m.Name, Help: m.Description}, m.Args)
	case "counter":
		return prometheus.NewCounter(prometheus.CounterOpts{Subsystem: subsystem, Name: m.Name, Help: m.Description})
	case "gauge_vec":
		return prometheus.NewGaugeVec(prometheus.GaugeOpts{Subsystem: subsystem, Name: m.Name, Help: m.Description}, m.Args)
	case "gauge":
		return prometheus.NewGauge(prometheus.GaugeOpts{Subsystem: subsystem, Name: m.Name, Help: m.Description})
	case "histogram_vec":
		return prometheus.NewHistogramVec(histogramOpts(m, subsystem), m.Args)
	case "histogram":
		return prometheus.NewHistogram(histogramOpts(m, subsystem))
	case "summary_vec":
		return prometheus.NewSummaryVec(prometheus.SummaryOpts{Subsystem: subsystem, Name: m.Name, Help: m.Description}, m.Args)
	case "summary":
		return prometheus.NewSummary(prometheus.SummaryOpts{Subsystem: subsystem, Name: m.Name, Help: m.Description})
	}
	return nil
}

func histogramOpts(m *Metric, subsystem string) prometheus.HistogramOpts {
	return prometheus.HistogramOpts{Subsystem: subsystem, Name: m.Name, Help: m.Description, Buckets: HistogramBuckets}
}

// MetricsBusinessProcess times service operations, labelled by domain (type) and
// operation (subtype), e.g. subscription/create.
var MetricsBusinessProcess = &Metric{
	ID:          "bpDur",
	Name:        "bp_dur",
	Description: "process latency in milliseconds",
	Type:        "histogram_vec",
	Args:        []string{"type", "subtype"},
}

// ObserveBusinessProcess records the latency since start. It is a no-op until
// MetricsBusinessProcess has been registered through NewPrometheus.
func ObserveBusinessProcess(typ, subtype string, start time.Time) {
	if hv, ok := MetricsBusinessProcess.MetricCollector.(*prometheus.HistogramVec); ok {
		hv.WithLabelValues(typ, subtype).Observe(MillisecondsSince(start))
	}
}

// MillisecondsSince returns the elapsed time since start in fractional milliseconds.
func MillisecondsSince(start time.Time) float64 {
	return float64(time.Since(start).Microseconds()) / 1000
}

const (
	RefererKey = "X-Referer"
)
