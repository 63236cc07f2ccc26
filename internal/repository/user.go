package repository

import (
	"context"

	"orion/internal/model"
)

// UserRepository defines persistence operations for users.
type UserRepository interface {
	// Create inserts a user and returns the stored row. Duplicate username or email yields ErrDuplicate.
	Create(ctx context.Context, u *model.User) (*model.User, error)
	FindByID(ctx context.Context, id int64) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindByUsername(ctx context.Context, username string) (*model.User, error)
	// List returns every user ordered by id.
	List(ctx context.Context) ([]model.User, error)
	// Update overwrites username, email and password hash.
	Update(ctx context.Context, u *model.User) (*model.User, error)
	UpdateAvatar(ctx context.Context, id int64, key string) error
	// Delete removes the user; owned rows are removed by cascading foreign keys.
	Delete(ctx context.Context, id int64) error
}
