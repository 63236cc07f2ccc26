package repository

import (
	"context"

	"orion/internal/model"
)

// RefreshTokenRepository defines persistence operations for refresh tokens.
type RefreshTokenRepository interface {
	// Replace deletes every token of t.UserID and stores t, in one transaction.
	Replace(ctx context.Context, t *model.RefreshToken) (*model.RefreshToken, error)
	// Consume deletes the token row and returns it. Only one caller can consume a given token.
	Consume(ctx context.Context, token string) (*model.RefreshToken, error)
	DeleteByUser(ctx context.Context, userID int64) error
}
