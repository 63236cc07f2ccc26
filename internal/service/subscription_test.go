package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"orion/internal/model"
	"orion/internal/repository"
	repoMocks "orion/internal/repository/mocks"
)

func TestSubscriptionService_Subscribe(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name       string
		setupMocks func(ms *repoMocks.MockSubscriptionRepository, mt *repoMocks.MockTopicRepository)
		wantErr    error
	}{
		{
			name: "happy path",
			setupMocks: func(ms *repoMocks.MockSubscriptionRepository, mt *repoMocks.MockTopicRepository) {
				mt.On("FindByID", ctx, int64(2)).Return(&model.Topic{ID: 2}, nil)
				ms.On("FindByUserAndTopic", ctx, int64(1), int64(2)).Return(nil, sql.ErrNoRows)
				ms.On("Create", ctx, &model.Subscription{UserID: 1, TopicID: 2}).
					Return(&model.Subscription{ID: 4, UserID: 1, TopicID: 2, TopicName: "go"}, nil)
			},
		},
		{
			name: "topic not found",
			setupMocks: func(ms *repoMocks.MockSubscriptionRepository, mt *repoMocks.MockTopicRepository) {
				mt.On("FindByID", ctx, int64(2)).Return(nil, sql.ErrNoRows)
			},
			wantErr: ErrTopicNotFound,
		},
		{
			name: "already subscribed",
			setupMocks: func(ms *repoMocks.MockSubscriptionRepository, mt *repoMocks.MockTopicRepository) {
				mt.On("FindByID", ctx, int64(2)).Return(&model.Topic{ID: 2}, nil)
				ms.On("FindByUserAndTopic", ctx, int64(1), int64(2)).Return(&model.Subscription{ID: 4}, nil)
			},
			wantErr: ErrAlreadySubscribed,
		},
		{
			name: "concurrent duplicate",
			setupMocks: func(ms *repoMocks.MockSubscriptionRepository, mt *repoMocks.MockTopicRepository) {
				mt.On("FindByID", ctx, int64(2)).Return(&model.Topic{ID: 2}, nil)
				ms.On("FindByUserAndTopic", ctx, int64(1), int64(2)).Return(nil, sql.ErrNoRows)
				ms.On("Create", ctx, mock.Anything).Return(nil, repository.ErrDuplicate)
			},
			wantErr: ErrAlreadySubscribed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ms := new(repoMocks.MockSubscriptionRepository)
			mt := new(repoMocks.MockTopicRepository)
			tt.setupMocks(ms, mt)

			sub, err := NewSubscriptionService(ms, mt).Subscribe(ctx, 1, 2)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, sub)
			} else {
				require.NoError(t, err)
				assert.Equal(t, "go", sub.TopicName)
			}
			ms.AssertExpectations(t)
			mt.AssertExpectations(t)
		})
	}
}

func TestSubscriptionService_Unsubscribe(t *testing.T) {
	ctx := context.Background()
	ms := new(repoMocks.MockSubscriptionRepository)
	ms.On("FindByID", ctx, int64(4)).Return(&model.Subscription{ID: 4, UserID: 1}, nil)
	ms.On("FindByID", ctx, int64(5)).Return(nil, sql.ErrNoRows)
	ms.On("Delete", ctx, int64(4)).Return(nil)
	svc := NewSubscriptionService(ms, new(repoMocks.MockTopicRepository))

	assert.ErrorIs(t, svc.Unsubscribe(ctx, 4, 2), ErrForbidden)
	assert.ErrorIs(t, svc.Unsubscribe(ctx, 5, 1), ErrSubscriptionNotFound)
	assert.NoError(t, svc.Unsubscribe(ctx, 4, 1))
	ms.AssertNumberOfCalls(t, "Delete", 1)
}
