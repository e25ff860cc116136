package mocks

import (
	"github.com/kimurazver67/sport-transformation-app-sub000/internal/types"
	"github.com/stretchr/testify/mock"
)

// MockTokenValidator is a mock implementation of middleware.TokenValidator
type MockTokenValidator struct {
	mock.Mock
}

func (m *MockTokenValidator) ValidateToken(token string) (*types.TokenClaims, error) {
	args := m.Called(token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.TokenClaims), args.Error(1)
}
