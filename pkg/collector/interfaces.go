// Package collector implements the Prometheus collector for Huum sauna metrics.
package collector

import (
	"context"

	"github.com/mkallas/huum-exporter/pkg/huum"
)

// SaunaAPI defines the interface for Huum API interactions.
// This interface allows for dependency injection and testing with mocks.
type SaunaAPI interface {
	// Status retrieves the current sauna state (read-only)
	Status(ctx context.Context) (*huum.StatusResponse, error)

	// ReconciledStatus retrieves the sauna state, recovering the target
	// temperature when the sauna is idle
	ReconciledStatus(ctx context.Context) (*huum.StatusResponse, error)

	// TurnOn starts heating towards the given target temperature
	TurnOn(ctx context.Context, temperature int, safetyOverride bool) (*huum.StatusResponse, error)

	// TurnOff stops heating
	TurnOff(ctx context.Context) (*huum.StatusResponse, error)

	// SetTemperature sets the target temperature (alias of TurnOn)
	SetTemperature(ctx context.Context, temperature int, safetyOverride bool) (*huum.StatusResponse, error)
}
