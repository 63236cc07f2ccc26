package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"orion/internal/model"
)

type MockCommentService struct {
	mock.Mock
}

func (m *MockCommentService) Add(ctx context.Context, authorID, postID int64, content string) (*model.Comment, error) {
	args := m.Called(ctx, authorID, postID, content)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Comment), args.Error(1)
}

func (m *MockCommentService) ListByPost(ctx context.Context, postID int64) ([]model.Comment, error) {
	args := m.Called(ctx, postID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Comment), args.Error(1)
}

func (m *MockCommentService) Update(ctx context.Context, id, authorID int64, content string) (*model.Comment, error) {
	args := m.Called(ctx, id, authorID, content)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Comment), args.Error(1)
}

func (m *MockCommentService) Delete(ctx context.Context, id, authorID int64) error {
	args := m.Called(ctx, id, authorID)
	return args.Error(0)
}
