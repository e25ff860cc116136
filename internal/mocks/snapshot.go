package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/kimurazver67/sport-transformation-app-sub000/internal/types"
	"github.com/stretchr/testify/mock"
)

// MockSnapshotStore is a mock implementation of the SnapshotStore interface
type MockSnapshotStore struct {
	mock.Mock
}

func (m *MockSnapshotStore) Save(ctx context.Context, req *types.GenerationRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}

func (m *MockSnapshotStore) Latest(ctx context.Context, userID uuid.UUID) (*types.GenerationRequest, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.GenerationRequest), args.Error(1)
}
