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

func TestTopicService_Create(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name      string
		topic     string
		setupMock func(m *repoMocks.MockTopicRepository)
		wantErr   error
	}{
		{
			name:  "happy path",
			topic: "  golang ",
			setupMock: func(m *repoMocks.MockTopicRepository) {
				m.On("Create", ctx, mock.MatchedBy(func(tp *model.Topic) bool { return tp.Name == "golang" })).
					Return(&model.Topic{ID: 1, Name: "golang"}, nil)
			},
		},
		{
			name:      "blank name",
			topic:     " ",
			setupMock: func(m *repoMocks.MockTopicRepository) {},
			wantErr:   ErrValidation,
		},
		{
			name:  "duplicate name",
			topic: "golang",
			setupMock: func(m *repoMocks.MockTopicRepository) {
				m.On("Create", ctx, mock.Anything).Return(nil, repository.ErrDuplicate)
			},
			wantErr: ErrTopicExists,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := new(repoMocks.MockTopicRepository)
			tt.setupMock(m)

			got, err := NewTopicService(m).Create(ctx, tt.topic, "all things go")
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
				assert.Equal(t, int64(1), got.ID)
			}
			m.AssertExpectations(t)
		})
	}
}

func TestTopicService_Get(t *testing.T) {
	ctx := context.Background()
	m := new(repoMocks.MockTopicRepository)
	m.On("FindByID", ctx, int64(9)).Return(nil, sql.ErrNoRows)

	_, err := NewTopicService(m).Get(ctx, 9)
	assert.ErrorIs(t, err, ErrTopicNotFound)
}
