package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockReporter is a mock implementation of telemetry.Reporter
type MockReporter struct {
	mock.Mock
}

func (m *MockReporter) Report(ctx context.Context, event string, fields map[string]any) {
	m.Called(ctx, event, fields)
}
