package collector

import (
	"context"
	"testing"
	"time"

	"github.com/mkallas/huum-exporter/pkg/collector/mocks"
	"github.com/mkallas/huum-exporter/pkg/huum"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// TestCircuitBreakerStartsClosed tests that the circuit breaker starts in closed state
func TestCircuitBreakerStartsClosed(t *testing.T) {
	t.Parallel()

	mockAPI := &mocks.MockSaunaAPI{}
	cb := NewSaunaAPIWithCircuitBreaker(mockAPI, CircuitBreakerConfig{
		MaxConsecutiveFailures: 3,
		Timeout:                10 * time.Millisecond,
	})

	cbAPI, ok := cb.(*circuitBreakerAPI)
	require.True(t, ok)
	assert.Equal(t, CircuitClosed, cbAPI.State())
}

// TestCircuitBreakerOpensOnFailures tests that the breaker opens after consecutive failures
func TestCircuitBreakerOpensOnFailures(t *testing.T) {
	t.Parallel()

	mockAPI := &mocks.MockSaunaAPI{}
	mockAPI.ExpectReconciledStatusError(&huum.TransportError{StatusCode: 503})

	cb := NewSaunaAPIWithCircuitBreaker(mockAPI, CircuitBreakerConfig{
		MaxConsecutiveFailures: 2,
		Timeout:                100 * time.Millisecond,
	})

	ctx := context.Background()

	// First failure
	_, err := cb.ReconciledStatus(ctx)
	require.Error(t, err)

	// Second failure - should open
	_, err = cb.ReconciledStatus(ctx)
	require.Error(t, err)

	// Next call should fail immediately without reaching the API
	_, err = cb.ReconciledStatus(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "circuit breaker is open")
	mockAPI.AssertNumberOfCalls(t, "ReconciledStatus", 2)
}

// TestCircuitBreakerPassesThroughTypedErrors tests that the huum error
// taxonomy stays matchable through the breaker
func TestCircuitBreakerPassesThroughTypedErrors(t *testing.T) {
	t.Parallel()

	mockAPI := &mocks.MockSaunaAPI{}
	mockAPI.ExpectReconciledStatusError(&huum.AuthError{StatusCode: 401})

	cb := NewSaunaAPIWithCircuitBreaker(mockAPI, DefaultCircuitBreakerConfig())

	_, err := cb.ReconciledStatus(context.Background())
	require.Error(t, err)

	var authErr *huum.AuthError
	require.ErrorAs(t, err, &authErr)
	assert.Equal(t, 401, authErr.StatusCode)
}

// TestCircuitBreakerRecovery tests that the breaker recovers after its timeout
func TestCircuitBreakerRecovery(t *testing.T) {
	t.Parallel()

	mockAPI := &mocks.MockSaunaAPI{}

	// First 2 calls fail, subsequent calls succeed
	mockAPI.On("ReconciledStatus", mock.Anything).Return(nil, &huum.TransportError{StatusCode: 503}).Twice()
	mockAPI.On("ReconciledStatus", mock.Anything).Return(mocks.IdleStatus(20.0, 70), nil)

	cb := NewSaunaAPIWithCircuitBreaker(mockAPI, CircuitBreakerConfig{
		MaxConsecutiveFailures: 2,
		Timeout:                20 * time.Millisecond,
	})

	ctx := context.Background()

	_, err := cb.ReconciledStatus(ctx)
	require.Error(t, err)
	_, err = cb.ReconciledStatus(ctx)
	require.Error(t, err)

	cbAPI := cb.(*circuitBreakerAPI)
	assert.Equal(t, CircuitOpen, cbAPI.State())

	// Wait for the breaker to allow a half-open probe
	// (gobreaker Timeout is configured as 2x the config timeout)
	time.Sleep(50 * time.Millisecond)

	resp, err := cb.ReconciledStatus(ctx)
	require.NoError(t, err)
	assert.Equal(t, huum.OnlineNotHeating, resp.Status)
	assert.Equal(t, CircuitClosed, cbAPI.State())
}

// TestCircuitBreakerWrapsAllOperations tests that every SaunaAPI operation
// goes through the breaker
func TestCircuitBreakerWrapsAllOperations(t *testing.T) {
	t.Parallel()

	mockAPI := &mocks.MockSaunaAPI{}
	resp := mocks.HeatingStatus(50.0, 80)
	mockAPI.On("Status", mock.Anything).Return(resp, nil)
	mockAPI.On("ReconciledStatus", mock.Anything).Return(resp, nil)
	mockAPI.On("TurnOn", mock.Anything, 80, false).Return(resp, nil)
	mockAPI.On("TurnOff", mock.Anything).Return(resp, nil)
	mockAPI.On("SetTemperature", mock.Anything, 85, true).Return(resp, nil)

	cb := NewSaunaAPIWithCircuitBreaker(mockAPI, DefaultCircuitBreakerConfig())
	ctx := context.Background()

	_, err := cb.Status(ctx)
	require.NoError(t, err)
	_, err = cb.ReconciledStatus(ctx)
	require.NoError(t, err)
	_, err = cb.TurnOn(ctx, 80, false)
	require.NoError(t, err)
	_, err = cb.TurnOff(ctx)
	require.NoError(t, err)
	_, err = cb.SetTemperature(ctx, 85, true)
	require.NoError(t, err)

	mockAPI.AssertExpectations(t)
}
