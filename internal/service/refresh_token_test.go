package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"orion/internal/model"
	repoMocks "orion/internal/repository/mocks"
)

func newTestRefreshService(repo *repoMocks.MockRefreshTokenRepository, now time.Time) *refreshTokenService {
	s := NewRefreshTokenService(repo, 2*time.Hour).(*refreshTokenService)
	s.now = func() time.Time { return now }
	s.newToken = func() string { return "fixed-token" }
	return s
}

func TestRefreshTokenService_CreateForUser(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	repo := new(repoMocks.MockRefreshTokenRepository)
	want := &model.RefreshToken{Token: "fixed-token", ExpiryDate: now.Add(2 * time.Hour), UserID: 7}
	repo.On("Replace", ctx, want).Return(&model.RefreshToken{ID: 1, Token: "fixed-token", ExpiryDate: want.ExpiryDate, UserID: 7}, nil)

	got, err := newTestRefreshService(repo, now).CreateForUser(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, int64(1), got.ID)
	assert.Equal(t, "fixed-token", got.Token)
	repo.AssertExpectations(t)
}

func TestRefreshTokenService_CreateForUser_RepoError(t *testing.T) {
	ctx := context.Background()
	repo := new(repoMocks.MockRefreshTokenRepository)
	repo.On("Replace", ctx, mock.AnythingOfType("*model.RefreshToken")).Return(nil, errors.New("db down"))

	_, err := newTestRefreshService(repo, time.Now()).CreateForUser(ctx, 7)
	assert.EqualError(t, err, "store refresh token: db down")
}

func TestRefreshTokenService_Redeem(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		token     string
		setupMock func(repo *repoMocks.MockRefreshTokenRepository)
		wantErr   error
	}{
		{
			name:  "valid token",
			token: "abc",
			setupMock: func(repo *repoMocks.MockRefreshTokenRepository) {
				repo.On("Consume", ctx, "abc").Return(&model.RefreshToken{ID: 1, Token: "abc", UserID: 3, ExpiryDate: now.Add(time.Minute)}, nil)
			},
		},
		{
			name:      "blank token",
			token:     "   ",
			setupMock: func(repo *repoMocks.MockRefreshTokenRepository) {},
			wantErr:   ErrInvalidRefreshToken,
		},
		{
			name:  "unknown or already used",
			token: "abc",
			setupMock: func(repo *repoMocks.MockRefreshTokenRepository) {
				repo.On("Consume", ctx, "abc").Return(nil, sql.ErrNoRows)
			},
			wantErr: ErrInvalidRefreshToken,
		},
		{
			name:  "expired",
			token: "abc",
			setupMock: func(repo *repoMocks.MockRefreshTokenRepository) {
				repo.On("Consume", ctx, "abc").Return(&model.RefreshToken{ID: 1, Token: "abc", UserID: 3, ExpiryDate: now}, nil)
			},
			wantErr: ErrRefreshTokenExpired,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(repoMocks.MockRefreshTokenRepository)
			tt.setupMock(repo)

			got, err := newTestRefreshService(repo, now).Redeem(ctx, tt.token)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)
			} else {
				require.NoError(t, err)
				assert.Equal(t, int64(3), got.UserID)
			}
			repo.AssertExpectations(t)
		})
	}
}

func TestRefreshTokenService_DeleteForUser(t *testing.T) {
	ctx := context.Background()
	repo := new(repoMocks.MockRefreshTokenRepository)
	repo.On("DeleteByUser", ctx, int64(4)).Return(nil)

	assert.NoError(t, NewRefreshTokenService(repo, 0).DeleteForUser(ctx, 4))
	repo.AssertExpectations(t)
}

func TestNewRefreshTokenService_DefaultTTL(t *testing.T) {
	s := NewRefreshTokenService(nil, 0).(*refreshTokenService)
	assert.Equal(t, DefaultRefreshTokenTTL, s.ttl)
}
