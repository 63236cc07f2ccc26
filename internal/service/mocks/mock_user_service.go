package mocks

import (
	"context"
	"io"
	"time"

	"github.com/stretchr/testify/mock"

	"orion/internal/model"
)

type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) List(ctx context.Context) ([]model.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.User), args.Error(1)
}

func (m *MockUserService) Get(ctx context.Context, id int64) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserService) DeleteSelf(ctx context.Context, id int64, tokenID string, expiresAt time.Time) error {
	args := m.Called(ctx, id, tokenID, expiresAt)
	return args.Error(0)
}

func (m *MockUserService) UploadAvatar(ctx context.Context, userID int64, r io.Reader, contentType string, size int64) (*model.User, error) {
	args := m.Called(ctx, userID, r, contentType, size)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserService) AvatarURL(ctx context.Context, userID int64) (string, error) {
	args := m.Called(ctx, userID)
	return args.String(0), args.Error(1)
}
