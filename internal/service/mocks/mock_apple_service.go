package mocks

import (
	"context"

	"applesapi/internal/model"
	"applesapi/internal/service"
	"github.com/stretchr/testify/mock"
)

type MockAppleService struct {
	mock.Mock
}

func (m *MockAppleService) Get(ctx context.Context, id string) (*model.AppleDTO, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.AppleDTO), args.Error(1)
}

func (m *MockAppleService) Create(ctx context.Context, in model.AppleDTO) (*model.AppleDTO, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.AppleDTO), args.Error(1)
}

func (m *MockAppleService) Update(ctx context.Context, id string, in model.AppleDTO) (*model.AppleDTO, error) {
	args := m.Called(ctx, id, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.AppleDTO), args.Error(1)
}

func (m *MockAppleService) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockAppleService) List(ctx context.Context, limit, offset int) (*service.AppleListResult, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.AppleListResult), args.Error(1)
}
