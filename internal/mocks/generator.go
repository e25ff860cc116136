package mocks

import (
	"context"

	"github.com/kimurazver67/sport-transformation-app-sub000/internal/types"
	"github.com/stretchr/testify/mock"
)

// MockGenerator is a mock implementation of the Generator interface
type MockGenerator struct {
	mock.Mock
}

func (m *MockGenerator) Generate(ctx context.Context, req *types.GenerationRequest) (*types.PlanSummary, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.PlanSummary), args.Error(1)
}
