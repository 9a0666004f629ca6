package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// ExporterMetrics holds Prometheus metrics for exporter internal monitoring
type ExporterMetrics struct {
	// Scrape duration histogram (in seconds)
	ScrapeDurationSeconds prometheus.Histogram

	// Scrape error counter
	ScrapeErrorsTotal prometheus.Counter

	// Build info gauge
	BuildInfo prometheus.Gauge

	// Authentication status gauge (1 = credentials accepted, 0 = rejected or unverified)
	AuthenticationValid prometheus.Gauge

	// Authentication error counter
	AuthenticationErrorsTotal prometheus.Counter

	// Last successful scrape timestamp (unix seconds)
	LastScrapeSuccessUnix prometheus.Gauge
}

// NewExporterMetrics creates exporter health metrics and registers them with
// the default Prometheus registry
func NewExporterMetrics() (*ExporterMetrics, error) {
	em := NewExporterMetricsUnregistered()
	if err := em.RegisterWith(prometheus.DefaultRegisterer); err != nil {
		return nil, err
	}
	return em, nil
}

// NewExporterMetricsUnregistered creates exporter health metrics without
// registering them
func NewExporterMetricsUnregistered() *ExporterMetrics {
	em := &ExporterMetrics{
		ScrapeDurationSeconds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "huum_exporter_scrape_duration_seconds",
			Help:    "Time taken to collect metrics from the Huum API in seconds",
			Buckets: prometheus.ExponentialBuckets(0.1, 2, 6), // 0.1, 0.2, 0.4, 0.8, 1.6, 3.2
		}),

		ScrapeErrorsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "huum_exporter_scrape_errors_total",
			Help: "Total number of errors while collecting metrics from the Huum API",
		}),

		BuildInfo: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "huum_exporter_build_info",
			Help: "Build information for the exporter (value is always 1)",
		}),

		AuthenticationValid: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "huum_exporter_authentication_valid",
			Help: "Set to 1 if the Huum API accepts the configured credentials, 0 if rejected",
		}),

		AuthenticationErrorsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "huum_exporter_authentication_errors_total",
			Help: "Total number of authentication failures against the Huum API",
		}),

		LastScrapeSuccessUnix: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "huum_exporter_last_scrape_success_unix",
			Help: "Unix timestamp of the last successful scrape",
		}),
	}

	em.BuildInfo.Set(1)
	em.AuthenticationValid.Set(0) // not yet verified

	return em
}

// RegisterWith registers all exporter metrics with the given registerer
func (em *ExporterMetrics) RegisterWith(reg prometheus.Registerer) error {
	collectors := []prometheus.Collector{
		em.ScrapeDurationSeconds,
		em.ScrapeErrorsTotal,
		em.BuildInfo,
		em.AuthenticationValid,
		em.AuthenticationErrorsTotal,
		em.LastScrapeSuccessUnix,
	}
	for _, c := range collectors {
		if err := reg.Register(c); err != nil {
			return err
		}
	}
	return nil
}

// RecordScrapeDuration records the duration of one scrape
func (em *ExporterMetrics) RecordScrapeDuration(seconds float64) {
	em.ScrapeDurationSeconds.Observe(seconds)
}

// IncrementScrapeErrors increments the scrape error counter
func (em *ExporterMetrics) IncrementScrapeErrors() {
	em.ScrapeErrorsTotal.Inc()
}

// IncrementAuthenticationErrors increments the authentication error counter
func (em *ExporterMetrics) IncrementAuthenticationErrors() {
	em.AuthenticationErrorsTotal.Inc()
}

// SetAuthenticationValid updates the authentication status gauge
func (em *ExporterMetrics) SetAuthenticationValid(valid bool) {
	if valid {
		em.AuthenticationValid.Set(1)
	} else {
		em.AuthenticationValid.Set(0)
	}
}

// RecordScrapeSuccess records the timestamp of a successful scrape
func (em *ExporterMetrics) RecordScrapeSuccess() {
	em.LastScrapeSuccessUnix.Set(float64(time.Now().Unix()))
}
