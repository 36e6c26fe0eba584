// Package metrics records certificate runs for Prometheus scraping via the
// node-exporter textfile collector.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	registry = prometheus.NewRegistry()

	jobsTotal = promauto.With(registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "certgen_jobs_total",
			Help: "Total number of certificate jobs run.",
		},
		[]string{"status"},
	)
	certificatesTotal = promauto.With(registry).NewCounter(
		prometheus.CounterOpts{
			Name: "certgen_certificates_total",
			Help: "Total number of certificate sheets written.",
		},
	)
	jobDurationSeconds = promauto.With(registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "certgen_job_duration_seconds",
			Help:    "Certificate job duration in seconds.",
			Buckets: prometheus.DefBuckets,
		},
	)
	pdfExportsTotal = promauto.With(registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "certgen_pdf_exports_total",
			Help: "Total number of sheets exported to PDF.",
		},
		[]string{"status"},
	)
)

const (
	StatusSuccess = "success"
	StatusFailed  = "failed"
)

func status(ok bool) string {
	if ok {
		return StatusSuccess
	}
	return StatusFailed
}

// ObserveJob records one finished job.
func ObserveJob(ok bool, certificates int, dur time.Duration) {
	jobsTotal.WithLabelValues(status(ok)).Inc()
	if certificates > 0 {
		certificatesTotal.Add(float64(certificates))
	}
	jobDurationSeconds.Observe(dur.Seconds())
}

// ObservePDFExport records the outcome of exporting one sheet.
func ObservePDFExport(ok bool) {
	pdfExportsTotal.WithLabelValues(status(ok)).Inc()
}

// Registry exposes the collectors, mainly for tests.
func Registry() *prometheus.Registry {
	return registry
}

// WriteTextfile writes every metric to path in the text exposition format.
// The file is replaced atomically.
func WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, registry)
}
