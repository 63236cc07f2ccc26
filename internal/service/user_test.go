package service

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"orion/internal/auth"
	"orion/internal/model"
	repoMocks "orion/internal/repository/mocks"
	"orion/internal/storage"
	storeMocks "orion/internal/storage/mocks"
)

func TestUserService_Get(t *testing.T) {
	ctx := context.Background()
	mRepo := new(repoMocks.MockUserRepository)
	mRepo.On("FindByID", ctx, int64(1)).Return(&model.User{ID: 1, Username: "alice"}, nil)
	mRepo.On("FindByID", ctx, int64(2)).Return(nil, sql.ErrNoRows)

	svc := NewUserService(mRepo, nil, auth.NewMemoryRevoker())

	u, err := svc.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "alice", u.Username)

	_, err = svc.Get(ctx, 2)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUserService_UploadAvatar(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name        string
		contentType string
		size        int64
		nilStore    bool
		setupMocks  func(mStore *storeMocks.MockStorage, mRepo *repoMocks.MockUserRepository)
		wantErr     error
		wantErrMsg  string
	}{
		{
			name:        "replaces previous avatar",
			contentType: "image/png",
			size:        5,
			setupMocks: func(mStore *storeMocks.MockStorage, mRepo *repoMocks.MockUserRepository) {
				mRepo.On("FindByID", ctx, int64(1)).Return(&model.User{ID: 1, AvatarKey: "avatars/1/old.png"}, nil)
				mStore.On("Put", ctx, mock.MatchedBy(func(key string) bool {
					return strings.HasPrefix(key, "avatars/1/") && strings.HasSuffix(key, ".png")
				}), mock.Anything, storage.PutObjectOptions{Size: 5, ContentType: "image/png"}).
					Return(func(_ context.Context, key string, _ io.Reader, _ storage.PutObjectOptions) storage.ObjectInfo {
						return storage.ObjectInfo{Key: key}
					}, nil)
				mRepo.On("UpdateAvatar", ctx, int64(1), mock.AnythingOfType("string")).Return(nil)
				mStore.On("Delete", ctx, "avatars/1/old.png").Return(nil)
			},
		},
		{
			name:        "storage not configured",
			contentType: "image/png",
			size:        5,
			nilStore:    true,
			setupMocks:  func(mStore *storeMocks.MockStorage, mRepo *repoMocks.MockUserRepository) {},
			wantErr:     ErrStorageUnavailable,
		},
		{
			name:        "unsupported type",
			contentType: "application/pdf",
			size:        5,
			setupMocks:  func(mStore *storeMocks.MockStorage, mRepo *repoMocks.MockUserRepository) {},
			wantErr:     ErrValidation,
		},
		{
			name:        "too large",
			contentType: "image/png",
			size:        MaxAvatarSize + 1,
			setupMocks:  func(mStore *storeMocks.MockStorage, mRepo *repoMocks.MockUserRepository) {},
			wantErr:     ErrValidation,
		},
		{
			name:        "db error rolls back upload",
			contentType: "image/jpeg",
			size:        5,
			setupMocks: func(mStore *storeMocks.MockStorage, mRepo *repoMocks.MockUserRepository) {
				mRepo.On("FindByID", ctx, int64(1)).Return(&model.User{ID: 1}, nil)
				mStore.On("Put", ctx, mock.Anything, mock.Anything, mock.Anything).Return(storage.ObjectInfo{}, nil)
				mRepo.On("UpdateAvatar", ctx, int64(1), mock.Anything).Return(errors.New("db fail"))
				mStore.On("Delete", ctx, mock.MatchedBy(func(key string) bool {
					return strings.HasSuffix(key, ".jpg")
				})).Return(nil)
			},
			wantErrMsg: "db save failed: db fail",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mStore := storeMocks.NewMockStorage(t)
			mRepo := new(repoMocks.MockUserRepository)
			tt.setupMocks(mStore, mRepo)

			var store storage.Storage = mStore
			if tt.nilStore {
				store = nil
			}
			svc := NewUserService(mRepo, store, auth.NewMemoryRevoker())

			u, err := svc.UploadAvatar(ctx, 1, strings.NewReader("image"), tt.contentType, tt.size)
			switch {
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
			case tt.wantErrMsg != "":
				assert.EqualError(t, err, tt.wantErrMsg)
			default:
				require.NoError(t, err)
				assert.True(t, strings.HasPrefix(u.AvatarKey, "avatars/1/"))
			}
			mRepo.AssertExpectations(t)
		})
	}
}

func TestUserService_AvatarURL(t *testing.T) {
	ctx := context.Background()
	mStore := new(storeMocks.MockStorage)
	mRepo := new(repoMocks.MockUserRepository)
	mRepo.On("FindByID", ctx, int64(1)).Return(&model.User{ID: 1, AvatarKey: "avatars/1/a.png"}, nil)
	mRepo.On("FindByID", ctx, int64(2)).Return(&model.User{ID: 2}, nil)
	mStore.On("PresignGet", ctx, "avatars/1/a.png", 15*time.Minute).Return("http://minio/a.png?sig", nil)

	svc := NewUserService(mRepo, mStore, auth.NewMemoryRevoker())

	url, err := svc.AvatarURL(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "http://minio/a.png?sig", url)

	_, err = svc.AvatarURL(ctx, 2)
	assert.ErrorIs(t, err, ErrAvatarNotFound)
}

func TestUserService_DeleteSelf(t *testing.T) {
	ctx := context.Background()
	mStore := storeMocks.NewMockStorage(t)
	mRepo := new(repoMocks.MockUserRepository)
	mRepo.On("FindByID", ctx, int64(1)).Return(&model.User{ID: 1, AvatarKey: "avatars/1/a.png"}, nil)
	mRepo.On("Delete", ctx, int64(1)).Return(nil)
	mStore.On("Delete", ctx, "avatars/1/a.png").Return(errors.New("ignored"))

	revoker := auth.NewMemoryRevoker()
	expires := time.Now().Add(time.Hour)

	assert.NoError(t, NewUserService(mRepo, mStore, revoker).DeleteSelf(ctx, 1, "jti-1", expires))
	mRepo.AssertExpectations(t)

	revoked, err := revoker.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.True(t, revoked, "access token of a deleted account must stop working")
}

func TestUserService_DeleteSelf_UnknownUserKeepsToken(t *testing.T) {
	ctx := context.Background()
	mRepo := new(repoMocks.MockUserRepository)
	mRepo.On("FindByID", ctx, int64(9)).Return(nil, sql.ErrNoRows)
	revoker := auth.NewMemoryRevoker()

	err := NewUserService(mRepo, nil, revoker).DeleteSelf(ctx, 9, "jti-9", time.Now().Add(time.Hour))
	assert.ErrorIs(t, err, ErrUserNotFound)

	revoked, err := revoker.IsRevoked(ctx, "jti-9")
	require.NoError(t, err)
	assert.False(t, revoked)
}
