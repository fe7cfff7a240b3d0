package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics collects counters for one msgtools run.
type Metrics struct {
	registry *prometheus.Registry

	CatalogsResolved prometheus.Counter
	CatalogEntries   prometheus.Histogram
	FilesWritten     *prometheus.CounterVec
	WriteFailures    *prometheus.CounterVec
}

// NewMetrics creates the run metrics on a private registry.
func NewMetrics() *Metrics {
	m := &Metrics{registry: prometheus.NewRegistry()}

	m.CatalogsResolved = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "msgtools_catalogs_resolved_total",
			Help: "Total number of message catalogs resolved",
		},
	)

	m.CatalogEntries = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "msgtools_catalog_entries",
			Help:    "Number of entries per resolved catalog",
			Buckets: prometheus.ExponentialBuckets(1, 2, 10),
		},
	)

	m.FilesWritten = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "msgtools_skeleton_files_written_total",
			Help: "Total number of skeleton translation files written",
		},
		[]string{"format"},
	)

	m.WriteFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "msgtools_skeleton_write_failures_total",
			Help: "Total number of skeleton translation files that could not be written",
		},
		[]string{"format"},
	)

	m.registry.MustRegister(
		m.CatalogsResolved,
		m.CatalogEntries,
		m.FilesWritten,
		m.WriteFailures,
	)

	return m
}

// ObserveCatalog records one resolved catalog of n entries.
func (m *Metrics) ObserveCatalog(n int) {
	if m == nil {
		return
	}
	m.CatalogsResolved.Inc()
	m.CatalogEntries.Observe(float64(n))
}

// FileWritten records a written file of the given format.
func (m *Metrics) FileWritten(format string) {
	if m == nil {
		return
	}
	m.FilesWritten.WithLabelValues(format).Inc()
}

// WriteFailed records a failed file of the given format.
func (m *Metrics) WriteFailed(format string) {
	if m == nil {
		return
	}
	m.WriteFailures.WithLabelValues(format).Inc()
}

// WriteTextfile writes the metrics in the node exporter textfile format.
func (m *Metrics) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.registry)
}
