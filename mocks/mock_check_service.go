package mocks

import (
	"context"
	"io"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"checkdesk/internal/domain"
	"checkdesk/internal/port"
	"checkdesk/internal/service"
)

// MockCheckService is a mock implementation of service.CheckService.
type MockCheckService struct {
	mock.Mock
}

func (m *MockCheckService) Upload(ctx context.Context, input service.CheckUploadInput) (*domain.Check, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Check), args.Error(1)
}

func (m *MockCheckService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Check, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Check), args.Error(1)
}

func (m *MockCheckService) Update(ctx context.Context, id uuid.UUID, input service.CheckUpdateInput) (*domain.Check, error) {
	args := m.Called(ctx, id, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Check), args.Error(1)
}

func (m *MockCheckService) List(ctx context.Context, filter port.CheckFilter, offset, limit int) ([]domain.Check, int, error) {
	args := m.Called(ctx, filter, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Check), args.Int(1), args.Error(2)
}

func (m *MockCheckService) ExportCSV(ctx context.Context, filter port.CheckFilter, w io.Writer) error {
	args := m.Called(ctx, filter, w)
	return args.Error(0)
}

func (m *MockCheckService) ExportXLSX(ctx context.Context, filter port.CheckFilter, w io.Writer) error {
	args := m.Called(ctx, filter, w)
	return args.Error(0)
}
