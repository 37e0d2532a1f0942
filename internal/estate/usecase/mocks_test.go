package usecase

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/Bobybuu/real-estate-Gabby-sub000/internal/adapter/api"
	"github.com/Bobybuu/real-estate-Gabby-sub000/internal/estate/domain"
)

type MockGateway struct {
	mock.Mock
}

func (m *MockGateway) Get(ctx context.Context, path string) (*api.Response, error) {
	args := m.Called(ctx, path)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*api.Response), args.Error(1)
}

func (m *MockGateway) Post(ctx context.Context, path string, body any) (*api.Response, error) {
	args := m.Called(ctx, path, body)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*api.Response), args.Error(1)
}

func (m *MockGateway) Put(ctx context.Context, path string, body any) (*api.Response, error) {
	args := m.Called(ctx, path, body)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*api.Response), args.Error(1)
}

func (m *MockGateway) Delete(ctx context.Context, path string) (*api.Response, error) {
	args := m.Called(ctx, path)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*api.Response), args.Error(1)
}

func (m *MockGateway) Upload(ctx context.Context, path string, attachments []domain.MediaAttachment) (*api.Response, error) {
	args := m.Called(ctx, path, attachments)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*api.Response), args.Error(1)
}
