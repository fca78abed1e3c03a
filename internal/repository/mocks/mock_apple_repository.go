package mocks

import (
	"context"

	"applesapi/internal/model"
	"applesapi/internal/repository"
	"github.com/stretchr/testify/mock"
)

type MockAppleRepository struct {
	mock.Mock
}

func (m *MockAppleRepository) FindByID(ctx context.Context, id string) (*model.Apple, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Apple), args.Error(1)
}

func (m *MockAppleRepository) ExistsByID(ctx context.Context, id string) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockAppleRepository) Insert(ctx context.Context, apple *model.Apple) (*model.Apple, error) {
	args := m.Called(ctx, apple)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Apple), args.Error(1)
}

func (m *MockAppleRepository) Save(ctx context.Context, apple *model.Apple) (*model.Apple, error) {
	args := m.Called(ctx, apple)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Apple), args.Error(1)
}

func (m *MockAppleRepository) DeleteByID(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockAppleRepository) List(ctx context.Context, pq repository.PageQuery) (*repository.PageResult[model.Apple], error) {
	args := m.Called(ctx, pq)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.PageResult[model.Apple]), args.Error(1)
}
