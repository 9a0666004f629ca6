package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/mkallas/huum-exporter/pkg/collector"
	"github.com/mkallas/huum-exporter/pkg/config"
	"github.com/mkallas/huum-exporter/pkg/huum"
	"github.com/mkallas/huum-exporter/pkg/logger"
	"github.com/mkallas/huum-exporter/pkg/metrics"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}

	log.Info("huum-exporter starting", "config", cfg.String())

	// Create context with graceful shutdown support
	ctx := SetupGracefulShutdown()

	saunaCollector, err := initializeCollector(context.Background(), cfg, log)
	if err != nil {
		log.Error("Initialization failed", "error", err.Error())
		os.Exit(1)
	}

	if err := StartServer(ctx, cfg, saunaCollector, log); err != nil {
		log.Error("Server error", "error", err.Error())
		os.Exit(1)
	}
}

// initializeCollector builds the sauna client, verifies the credentials with
// one probe call and wires up the Prometheus collector
func initializeCollector(ctx context.Context, cfg *config.Config, log *logger.Logger) (*collector.SaunaCollector, error) {
	metricDescs := metrics.NewMetricDescriptorsUnregistered()
	exporterMetrics := metrics.NewExporterMetricsUnregistered()

	opts := []huum.Option{huum.WithLogger(log)}
	if cfg.BaseURL != "" {
		opts = append(opts, huum.WithBaseURL(cfg.BaseURL))
	}

	saunaClient, err := huum.NewClient(cfg.Username, cfg.Password, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create sauna client: %w", err)
	}

	scrapeTimeout := time.Duration(cfg.ScrapeTimeout) * time.Second

	// Probe the API once at startup so bad credentials fail fast instead of
	// surfacing as a broken first scrape. The reconciled status is used so
	// the target temperature gauge starts populated even for an idle sauna.
	probeCtx, cancel := context.WithTimeout(ctx, scrapeTimeout)
	defer cancel()

	status, err := saunaClient.ReconciledStatus(probeCtx)
	if err != nil {
		return nil, fmt.Errorf("failed to reach Huum API: %w", err)
	}
	exporterMetrics.SetAuthenticationValid(true)
	log.Info("Connected to Huum API", "status", status.Status.String(), "door_closed", status.DoorClosed)

	// Protect the API with a circuit breaker so a flapping cloud service is
	// not hammered on every scrape
	api := collector.NewSaunaAPIWithCircuitBreaker(saunaClient, collector.DefaultCircuitBreakerConfig())

	saunaCollector := collector.NewSaunaCollector(api, metricDescs, scrapeTimeout, log).
		WithExporterMetrics(exporterMetrics)

	return saunaCollector, nil
}
