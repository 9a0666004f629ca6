// Package mocks provides test doubles for the collector package.
package mocks

import (
	"context"

	"github.com/mkallas/huum-exporter/pkg/huum"
	"github.com/stretchr/testify/mock"
)

// MockSaunaAPI is a mock implementation of the SaunaAPI interface
type MockSaunaAPI struct {
	mock.Mock
}

// Status implements SaunaAPI.Status
func (m *MockSaunaAPI) Status(ctx context.Context) (*huum.StatusResponse, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*huum.StatusResponse), args.Error(1)
}

// ReconciledStatus implements SaunaAPI.ReconciledStatus
func (m *MockSaunaAPI) ReconciledStatus(ctx context.Context) (*huum.StatusResponse, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*huum.StatusResponse), args.Error(1)
}

// TurnOn implements SaunaAPI.TurnOn
func (m *MockSaunaAPI) TurnOn(ctx context.Context, temperature int, safetyOverride bool) (*huum.StatusResponse, error) {
	args := m.Called(ctx, temperature, safetyOverride)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*huum.StatusResponse), args.Error(1)
}

// TurnOff implements SaunaAPI.TurnOff
func (m *MockSaunaAPI) TurnOff(ctx context.Context) (*huum.StatusResponse, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*huum.StatusResponse), args.Error(1)
}

// SetTemperature implements SaunaAPI.SetTemperature
func (m *MockSaunaAPI) SetTemperature(ctx context.Context, temperature int, safetyOverride bool) (*huum.StatusResponse, error) {
	args := m.Called(ctx, temperature, safetyOverride)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*huum.StatusResponse), args.Error(1)
}

// ExpectReconciledStatus sets up ReconciledStatus to return the given response
func (m *MockSaunaAPI) ExpectReconciledStatus(resp *huum.StatusResponse) *MockSaunaAPI {
	m.On("ReconciledStatus", mock.Anything).Return(resp, nil)
	return m
}

// ExpectReconciledStatusError sets up ReconciledStatus to return an error
func (m *MockSaunaAPI) ExpectReconciledStatusError(err error) *MockSaunaAPI {
	m.On("ReconciledStatus", mock.Anything).Return(nil, err)
	return m
}

// IdleStatus builds a response for an idle sauna with a configured target
func IdleStatus(temperature float64, target int) *huum.StatusResponse {
	return &huum.StatusResponse{
		Status:            huum.OnlineNotHeating,
		Temperature:       &temperature,
		TargetTemperature: &target,
		DoorClosed:        true,
	}
}

// HeatingStatus builds a response for an actively heating sauna
func HeatingStatus(temperature float64, target int) *huum.StatusResponse {
	return &huum.StatusResponse{
		Status:            huum.OnlineHeating,
		Temperature:       &temperature,
		TargetTemperature: &target,
		DoorClosed:        true,
	}
}
