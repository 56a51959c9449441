package testutil

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/supereasy-dev/super-easy-in-app-purchase/domain/entities"
)

// MockVersionProbe is a testify mock implementing ports.VersionProbe.
type MockVersionProbe struct {
	mock.Mock
}

// Probe implements ports.VersionProbe.
func (m *MockVersionProbe) Probe(ctx context.Context) (entities.PlatformInfo, error) {
	args := m.Called(ctx)
	return args.Get(0).(entities.PlatformInfo), args.Error(1)
}

// NewIOSProbe returns a mock that reports iOS 17.4 on every call.
func NewIOSProbe() *MockVersionProbe {
	m := &MockVersionProbe{}
	m.On("Probe", mock.Anything).Return(entities.PlatformInfo{
		Label:   "iOS",
		Version: "17.4",
		Kernel:  "23.4.0",
		Arch:    "arm64",
		Source:  "mock",
	}, nil)
	return m
}
