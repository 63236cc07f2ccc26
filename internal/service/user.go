package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"orion/internal/auth"
	"orion/internal/model"
	"orion/internal/repository"
	"orion/internal/storage"
)

const (
	// MaxAvatarSize caps avatar uploads at 2 MiB.
	MaxAvatarSize = 2 << 20
	avatarURLTTL  = 15 * time.Minute
)

var avatarExtensions = map[string]string{
	"image/png":  ".png",
	"image/jpeg": ".jpg",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// UserService exposes user profiles and avatars.
type UserService interface {
	List(ctx context.Context) ([]model.User, error)
	Get(ctx context.Context, id int64) (*model.User, error)

	// DeleteSelf removes the account with everything it owns, including the avatar object.
	// The access token tokenID is revoked until its expiry so it cannot outlive the account.
	DeleteSelf(ctx context.Context, id int64, tokenID string, expiresAt time.Time) error

	// UploadAvatar stores a new avatar image and drops the previous one.
	UploadAvatar(ctx context.Context, userID int64, r io.Reader, contentType string, size int64) (*model.User, error)

	// AvatarURL returns a short-lived presigned URL for the user's avatar.
	AvatarURL(ctx context.Context, userID int64) (string, error)
}

type userService struct {
	users   repository.UserRepository
	store   storage.Storage
	revoker auth.Revoker
}

// NewUserService constructs a UserService. store may be nil, in which case avatar
// operations fail with ErrStorageUnavailable.
func NewUserService(users repository.UserRepository, store storage.Storage, revoker auth.Revoker) UserService {
	return &userService{users: users, store: store, revoker: revoker}
}

func (s *userService) List(ctx context.Context) ([]model.User, error) {
	return s.users.List(ctx)
}

func (s *userService) Get(ctx context.Context, id int64) (*model.User, error) {
	u, err := s.users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return u, nil
}

func (s *userService) DeleteSelf(ctx context.Context, id int64, tokenID string, expiresAt time.Time) error {
	u, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if tokenID != "" {
		if err := s.revoker.Revoke(ctx, tokenID, expiresAt); err != nil {
			return fmt.Errorf("revoke access token: %w", err)
		}
	}
	if err := s.users.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrUserNotFound
		}
		return err
	}
	if s.store != nil && u.HasAvatar() {
		// The account is already gone; a leftover object is unreachable.
		_ = s.store.Delete(ctx, u.AvatarKey)
	}
	return nil
}

func (s *userService) UploadAvatar(ctx context.Context, userID int64, r io.Reader, contentType string, size int64) (*model.User, error) {
	if s.store == nil {
		return nil, ErrStorageUnavailable
	}
	if r == nil || size <= 0 || size > MaxAvatarSize {
		return nil, fmt.Errorf("%w: avatar must be between 1 byte and %d bytes", ErrValidation, MaxAvatarSize)
	}
	ext, ok := avatarExtensions[strings.ToLower(contentType)]
	if !ok {
		return nil, fmt.Errorf("%w: unsupported avatar type %q", ErrValidation, contentType)
	}

	u, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	key := path.Join("avatars", strconv.FormatInt(userID, 10), uuid.NewString()+ext)
	if _, err := s.store.Put(ctx, key, r, storage.PutObjectOptions{Size: size, ContentType: contentType}); err != nil {
		return nil, fmt.Errorf("upload to storage: %w", err)
	}

	if err := s.users.UpdateAvatar(ctx, userID, key); err != nil {
		if delErr := s.store.Delete(ctx, key); delErr != nil {
			return nil, fmt.Errorf("db save failed: %v; rollback delete failed: %v", err, delErr)
		}
		return nil, fmt.Errorf("db save failed: %w", err)
	}

	if u.HasAvatar() {
		_ = s.store.Delete(ctx, u.AvatarKey)
	}
	u.AvatarKey = key
	return u, nil
}

func (s *userService) AvatarURL(ctx context.Context, userID int64) (string, error) {
	if s.store == nil {
		return "", ErrStorageUnavailable
	}
	u, err := s.Get(ctx, userID)
	if err != nil {
		return "", err
	}
	if !u.HasAvatar() {
		return "", ErrAvatarNotFound
	}
	return s.store.PresignGet(ctx, u.AvatarKey, avatarURLTTL)
}
