package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"orion/internal/model"
	"orion/internal/repository"
)

// RefreshTokenPostgres is a PostgreSQL implementation of repository.RefreshTokenRepository.
type RefreshTokenPostgres struct {
	db *sql.DB
}

// NewRefreshTokenPostgres creates a new RefreshTokenPostgres repository.
func NewRefreshTokenPostgres(db *sql.DB) *RefreshTokenPostgres {
	return &RefreshTokenPostgres{db: db}
}

var _ repository.RefreshTokenRepository = (*RefreshTokenPostgres)(nil)

// Replace swaps the user's tokens for t inside a single transaction.
func (r *RefreshTokenPostgres) Replace(ctx context.Context, t *model.RefreshToken) (*model.RefreshToken, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM refresh_tokens WHERE user_id = $1`, t.UserID); err != nil {
		return nil, fmt.Errorf("delete previous tokens: %w", err)
	}

	const q = `
		INSERT INTO refresh_tokens (token, expiry_date, user_id)
		VALUES ($1, $2, $3)
		RETURNING id, token, expiry_date, user_id
	`
	var out model.RefreshToken
	if err := tx.QueryRowContext(ctx, q, t.Token, t.ExpiryDate, t.UserID).
		Scan(&out.ID, &out.Token, &out.ExpiryDate, &out.UserID); err != nil {
		return nil, translateError(err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	return &out, nil
}

// Consume deletes the row holding token and returns it. sql.ErrNoRows means the token
// is unknown or was already consumed.
func (r *RefreshTokenPostgres) Consume(ctx context.Context, token string) (*model.RefreshToken, error) {
	const q = `
		DELETE FROM refresh_tokens WHERE token = $1
		RETURNING id, token, expiry_date, user_id
	`
	var out model.RefreshToken
	if err := r.db.QueryRowContext(ctx, q, token).
		Scan(&out.ID, &out.Token, &out.ExpiryDate, &out.UserID); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *RefreshTokenPostgres) DeleteByUser(ctx context.Context, userID int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM refresh_tokens WHERE user_id = $1`, userID)
	return err
}
