package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"checkdesk/internal/domain"
	"checkdesk/internal/port"
)

// MockCheckRepo is a mock implementation of port.CheckRepository.
type MockCheckRepo struct {
	mock.Mock
}

func (m *MockCheckRepo) Create(ctx context.Context, check *domain.Check) error {
	args := m.Called(ctx, check)
	return args.Error(0)
}

func (m *MockCheckRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Check, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Check), args.Error(1)
}

func (m *MockCheckRepo) Update(ctx context.Context, check *domain.Check) error {
	args := m.Called(ctx, check)
	return args.Error(0)
}

func (m *MockCheckRepo) List(ctx context.Context, filter port.CheckFilter, offset, limit int) ([]domain.Check, int, error) {
	args := m.Called(ctx, filter, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Check), args.Int(1), args.Error(2)
}

func (m *MockCheckRepo) ListAll(ctx context.Context, filter port.CheckFilter) ([]domain.Check, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Check), args.Error(1)
}
