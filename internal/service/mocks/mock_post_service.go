package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"orion/internal/model"
	"orion/internal/service"
)

type MockPostService struct {
	mock.Mock
}

func (m *MockPostService) posts(args mock.Arguments) ([]model.Post, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Post), args.Error(1)
}

func (m *MockPostService) post(args mock.Arguments) (*model.Post, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Post), args.Error(1)
}

func (m *MockPostService) List(ctx context.Context) ([]model.Post, error) {
	return m.posts(m.Called(ctx))
}

func (m *MockPostService) Get(ctx context.Context, id int64) (*model.Post, error) {
	return m.post(m.Called(ctx, id))
}

func (m *MockPostService) ListByAuthor(ctx context.Context, authorID int64, sort, order string) ([]model.Post, error) {
	return m.posts(m.Called(ctx, authorID, sort, order))
}

func (m *MockPostService) ListByTopic(ctx context.Context, topicID int64, sort, order string) ([]model.Post, error) {
	return m.posts(m.Called(ctx, topicID, sort, order))
}

func (m *MockPostService) Feed(ctx context.Context, userID int64, limit, offset int) (*service.PostListResult, error) {
	args := m.Called(ctx, userID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.PostListResult), args.Error(1)
}

func (m *MockPostService) Create(ctx context.Context, authorID int64, in service.PostInput) (*model.Post, error) {
	return m.post(m.Called(ctx, authorID, in))
}

func (m *MockPostService) Update(ctx context.Context, id, authorID int64, in service.PostInput) (*model.Post, error) {
	return m.post(m.Called(ctx, id, authorID, in))
}

func (m *MockPostService) Delete(ctx context.Context, id, authorID int64) error {
	args := m.Called(ctx, id, authorID)
	return args.Error(0)
}
