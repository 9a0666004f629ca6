package collector

import (
	"context"
	"fmt"
	"time"

	"github.com/mkallas/huum-exporter/pkg/huum"
	"github.com/sony/gobreaker"
)

// CircuitBreakerConfig configures the circuit breaker behavior
type CircuitBreakerConfig struct {
	// MaxConsecutiveFailures is the number of consecutive failures before opening
	MaxConsecutiveFailures uint32
	// Timeout is how long the circuit breaker stays open before trying half-open
	Timeout time.Duration
}

// DefaultCircuitBreakerConfig returns sensible defaults
func DefaultCircuitBreakerConfig() CircuitBreakerConfig {
	return CircuitBreakerConfig{
		MaxConsecutiveFailures: 5,
		Timeout:                30 * time.Second,
	}
}

// CircuitBreakerState represents the circuit breaker state
type CircuitBreakerState int

const (
	CircuitClosed CircuitBreakerState = iota
	CircuitOpen
	CircuitHalfOpen
)

// circuitBreakerAPI wraps SaunaAPI with circuit breaker protection.
// The wrapped client still performs no retries of its own; the breaker only
// stops the exporter from hammering an API that keeps failing.
type circuitBreakerAPI struct {
	api     SaunaAPI
	breaker *gobreaker.CircuitBreaker
	timeout time.Duration
}

// NewSaunaAPIWithCircuitBreaker wraps a SaunaAPI with circuit breaker protection
func NewSaunaAPIWithCircuitBreaker(api SaunaAPI, config CircuitBreakerConfig) SaunaAPI {
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "HuumAPI",
		MaxRequests: 1,
		Interval:    config.Timeout,
		Timeout:     2 * config.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= config.MaxConsecutiveFailures
		},
	})

	return &circuitBreakerAPI{
		api:     api,
		breaker: cb,
		timeout: config.Timeout,
	}
}

// execute runs one call through the breaker and normalizes breaker errors
func (cb *circuitBreakerAPI) execute(fn func() (*huum.StatusResponse, error)) (*huum.StatusResponse, error) {
	result, err := cb.breaker.Execute(func() (interface{}, error) {
		return fn()
	})
	if err != nil {
		return nil, cb.wrapError(err)
	}
	return result.(*huum.StatusResponse), nil
}

// Status implements SaunaAPI.Status with circuit breaker protection
func (cb *circuitBreakerAPI) Status(ctx context.Context) (*huum.StatusResponse, error) {
	return cb.execute(func() (*huum.StatusResponse, error) {
		return cb.api.Status(ctx)
	})
}

// ReconciledStatus implements SaunaAPI.ReconciledStatus with circuit breaker protection
func (cb *circuitBreakerAPI) ReconciledStatus(ctx context.Context) (*huum.StatusResponse, error) {
	return cb.execute(func() (*huum.StatusResponse, error) {
		return cb.api.ReconciledStatus(ctx)
	})
}

// TurnOn implements SaunaAPI.TurnOn with circuit breaker protection
func (cb *circuitBreakerAPI) TurnOn(ctx context.Context, temperature int, safetyOverride bool) (*huum.StatusResponse, error) {
	return cb.execute(func() (*huum.StatusResponse, error) {
		return cb.api.TurnOn(ctx, temperature, safetyOverride)
	})
}

// TurnOff implements SaunaAPI.TurnOff with circuit breaker protection
func (cb *circuitBreakerAPI) TurnOff(ctx context.Context) (*huum.StatusResponse, error) {
	return cb.execute(func() (*huum.StatusResponse, error) {
		return cb.api.TurnOff(ctx)
	})
}

// SetTemperature implements SaunaAPI.SetTemperature with circuit breaker protection
func (cb *circuitBreakerAPI) SetTemperature(ctx context.Context, temperature int, safetyOverride bool) (*huum.StatusResponse, error) {
	return cb.execute(func() (*huum.StatusResponse, error) {
		return cb.api.SetTemperature(ctx, temperature, safetyOverride)
	})
}

// wrapError converts circuit breaker errors to user-friendly messages.
// API errors pass through unchanged so callers can still match the huum
// error taxonomy with errors.As.
func (cb *circuitBreakerAPI) wrapError(err error) error {
	if err == gobreaker.ErrOpenState {
		return fmt.Errorf("circuit breaker is open: Huum API is temporarily unavailable (will retry after %v)", cb.timeout)
	}
	if err == gobreaker.ErrTooManyRequests {
		return fmt.Errorf("circuit breaker is half-open: testing Huum API recovery")
	}
	return err
}

// State returns the current circuit breaker state
func (cb *circuitBreakerAPI) State() CircuitBreakerState {
	switch cb.breaker.State() {
	case gobreaker.StateOpen:
		return CircuitOpen
	case gobreaker.StateHalfOpen:
		return CircuitHalfOpen
	default:
		return CircuitClosed
	}
}
