package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"orion/internal/model"
)

type MockRefreshTokenRepository struct {
	mock.Mock
}

func (m *MockRefreshTokenRepository) Replace(ctx context.Context, t *model.RefreshToken) (*model.RefreshToken, error) {
	args := m.Called(ctx, t)
	if f, ok := args.Get(0).(func(context.Context, *model.RefreshToken) *model.RefreshToken); ok {
		return f(ctx, t), args.Error(1)
	}
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.RefreshToken), args.Error(1)
}

func (m *MockRefreshTokenRepository) Consume(ctx context.Context, token string) (*model.RefreshToken, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.RefreshToken), args.Error(1)
}

func (m *MockRefreshTokenRepository) DeleteByUser(ctx context.Context, userID int64) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}
