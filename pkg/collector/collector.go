// Package collector implements the Prometheus collector for Huum sauna metrics.
//
// It provides:
//   - Prometheus collector interface implementation
//   - On-demand sauna status fetching per scrape
//   - Graceful error handling: a failed scrape keeps the last known values
//   - Exporter health metrics reporting
//
// The collector polls the reconciled status rather than the plain status so
// the target temperature gauge stays populated while the sauna is idle.
package collector

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/mkallas/huum-exporter/pkg/huum"
	"github.com/mkallas/huum-exporter/pkg/logger"
	"github.com/mkallas/huum-exporter/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus"
)

// SaunaCollector implements the prometheus.Collector interface.
// It fetches the sauna status on-demand when Prometheus scrapes /metrics.
type SaunaCollector struct {
	saunaClient       SaunaAPI
	metricDescriptors *metrics.MetricDescriptors
	scrapeTimeout     time.Duration
	log               *logger.Logger
	exporterMetrics   *metrics.ExporterMetrics // Optional: for internal health monitoring
}

// NewSaunaCollector creates a new sauna metrics collector
func NewSaunaCollector(
	saunaClient SaunaAPI,
	metricDescriptors *metrics.MetricDescriptors,
	scrapeTimeout time.Duration,
	log *logger.Logger,
) *SaunaCollector {
	// Use noop logger if none provided
	if log == nil {
		noop, _ := logger.NewWithWriter("error", "text", io.Discard)
		log = noop
	}

	return &SaunaCollector{
		saunaClient:       saunaClient,
		metricDescriptors: metricDescriptors,
		scrapeTimeout:     scrapeTimeout,
		log:               log,
	}
}

// WithExporterMetrics adds exporter health metrics to the collector
func (sc *SaunaCollector) WithExporterMetrics(em *metrics.ExporterMetrics) *SaunaCollector {
	sc.exporterMetrics = em
	return sc
}

// Describe sends the descriptors of all metrics collected by this collector
func (sc *SaunaCollector) Describe(ch chan<- *prometheus.Desc) {
	sc.metricDescriptors.StatusCode.Describe(ch)
	sc.metricDescriptors.IsOnline.Describe(ch)
	sc.metricDescriptors.IsHeating.Describe(ch)
	sc.metricDescriptors.IsLocked.Describe(ch)
	sc.metricDescriptors.TemperatureCelsius.Describe(ch)
	sc.metricDescriptors.TargetTemperatureCelsius.Describe(ch)
	sc.metricDescriptors.IsDoorClosed.Describe(ch)
	sc.metricDescriptors.SteamerFault.Describe(ch)

	if sc.exporterMetrics != nil {
		sc.exporterMetrics.ScrapeDurationSeconds.Describe(ch)
		sc.exporterMetrics.ScrapeErrorsTotal.Describe(ch)
		sc.exporterMetrics.BuildInfo.Describe(ch)
		sc.exporterMetrics.AuthenticationValid.Describe(ch)
		sc.exporterMetrics.AuthenticationErrorsTotal.Describe(ch)
		sc.exporterMetrics.LastScrapeSuccessUnix.Describe(ch)
	}
}

// Collect is called by the Prometheus client when scraping /metrics.
// It fetches the current status from the Huum API and sends the gauges to
// the channel. On failure the gauges keep their last known values, so the
// scrape still reports the last state the sauna was seen in.
func (sc *SaunaCollector) Collect(ch chan<- prometheus.Metric) {
	ctx, cancel := context.WithTimeout(context.Background(), sc.scrapeTimeout)
	defer cancel()

	startTime := time.Now()

	if err := sc.fetchAndCollect(ctx); err != nil {
		sc.log.Warn("Failed to collect sauna metrics", "error", err.Error())
		if sc.exporterMetrics != nil {
			sc.exporterMetrics.IncrementScrapeErrors()
			var authErr *huum.AuthError
			if errors.As(err, &authErr) {
				sc.exporterMetrics.IncrementAuthenticationErrors()
				sc.exporterMetrics.SetAuthenticationValid(false)
			}
		}
		// Don't return - Prometheus will see the last known values
	}

	if sc.exporterMetrics != nil {
		sc.exporterMetrics.RecordScrapeDuration(time.Since(startTime).Seconds())
	}

	sc.metricDescriptors.StatusCode.Collect(ch)
	sc.metricDescriptors.IsOnline.Collect(ch)
	sc.metricDescriptors.IsHeating.Collect(ch)
	sc.metricDescriptors.IsLocked.Collect(ch)
	sc.metricDescriptors.TemperatureCelsius.Collect(ch)
	sc.metricDescriptors.TargetTemperatureCelsius.Collect(ch)
	sc.metricDescriptors.IsDoorClosed.Collect(ch)
	sc.metricDescriptors.SteamerFault.Collect(ch)

	if sc.exporterMetrics != nil {
		sc.exporterMetrics.ScrapeDurationSeconds.Collect(ch)
		sc.exporterMetrics.ScrapeErrorsTotal.Collect(ch)
		sc.exporterMetrics.BuildInfo.Collect(ch)
		sc.exporterMetrics.AuthenticationValid.Collect(ch)
		sc.exporterMetrics.AuthenticationErrorsTotal.Collect(ch)
		sc.exporterMetrics.LastScrapeSuccessUnix.Collect(ch)
	}
}

// fetchAndCollect fetches the sauna status and updates the gauge values
func (sc *SaunaCollector) fetchAndCollect(ctx context.Context) error {
	status, err := sc.saunaClient.ReconciledStatus(ctx)
	if err != nil {
		return err
	}

	if sc.exporterMetrics != nil {
		sc.exporterMetrics.SetAuthenticationValid(true)
		sc.exporterMetrics.RecordScrapeSuccess()
	}

	sc.updateMetrics(status)

	sc.log.Debug("Collected sauna status",
		"status", status.Status.String(),
		"door_closed", status.DoorClosed)

	return nil
}

// updateMetrics maps one status response onto the gauges
func (sc *SaunaCollector) updateMetrics(status *huum.StatusResponse) {
	md := sc.metricDescriptors

	md.StatusCode.Set(float64(status.Status))
	md.IsOnline.Set(boolValue(status.Status != huum.Offline))
	md.IsHeating.Set(boolValue(status.Status == huum.OnlineHeating))
	md.IsLocked.Set(boolValue(status.Status == huum.Locked || status.Status == huum.EmergencyStop))
	md.IsDoorClosed.Set(boolValue(status.DoorClosed))
	md.SteamerFault.Set(boolValue(status.SteamerCode != nil))

	if status.Temperature != nil {
		md.TemperatureCelsius.Set(*status.Temperature)
	}
	if status.TargetTemperature != nil {
		md.TargetTemperatureCelsius.Set(float64(*status.TargetTemperature))
	}
}

// boolValue converts a bool to a 0/1 gauge value
func boolValue(b bool) float64 {
	if b {
		return 1.0
	}
	return 0.0
}
