package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"orion/internal/model"
	"orion/internal/repository"
)

// DefaultRefreshTokenTTL is the refresh token lifetime used when none is configured.
const DefaultRefreshTokenTTL = 168 * time.Hour

// RefreshTokenService manages the single refresh token each user may hold.
type RefreshTokenService interface {
	// CreateForUser drops every existing token of the user and issues a new one.
	CreateForUser(ctx context.Context, userID int64) (*model.RefreshToken, error)

	// Redeem validates and spends token. A token can be redeemed once; expired tokens
	// are removed and rejected with ErrRefreshTokenExpired.
	Redeem(ctx context.Context, token string) (*model.RefreshToken, error)

	// DeleteForUser revokes every token of the user.
	DeleteForUser(ctx context.Context, userID int64) error
}

type refreshTokenService struct {
	repo     repository.RefreshTokenRepository
	ttl      time.Duration
	now      func() time.Time
	newToken func() string
}

// NewRefreshTokenService constructs a RefreshTokenService. A non-positive ttl selects DefaultRefreshTokenTTL.
func NewRefreshTokenService(repo repository.RefreshTokenRepository, ttl time.Duration) RefreshTokenService {
	if ttl <= 0 {
		ttl = DefaultRefreshTokenTTL
	}
	return &refreshTokenService{
		repo:     repo,
		ttl:      ttl,
		now:      time.Now,
		newToken: uuid.NewString,
	}
}

func (s *refreshTokenService) CreateForUser(ctx context.Context, userID int64) (*model.RefreshToken, error) {
	t, err := s.repo.Replace(ctx, &model.RefreshToken{
		Token:      s.newToken(),
		ExpiryDate: s.now().Add(s.ttl).UTC(),
		UserID:     userID,
	})
	if err != nil {
		return nil, fmt.Errorf("store refresh token: %w", err)
	}
	return t, nil
}

func (s *refreshTokenService) Redeem(ctx context.Context, token string) (*model.RefreshToken, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, ErrInvalidRefreshToken
	}
	t, err := s.repo.Consume(ctx, token)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrInvalidRefreshToken
		}
		return nil, err
	}
	if t.Expired(s.now()) {
		return nil, ErrRefreshTokenExpired
	}
	return t, nil
}

func (s *refreshTokenService) DeleteForUser(ctx context.Context, userID int64) error {
	return s.repo.DeleteByUser(ctx, userID)
}
