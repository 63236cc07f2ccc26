package repository

import (
	"context"

	"orion/internal/model"
)

// CommentRepository defines persistence operations for comments.
type CommentRepository interface {
	Create(ctx context.Context, c *model.Comment) (*model.Comment, error)
	FindByID(ctx context.Context, id int64) (*model.Comment, error)
	// ListByPost returns the comments of a post, oldest first.
	ListByPost(ctx context.Context, postID int64) ([]model.Comment, error)
	UpdateContent(ctx context.Context, id int64, content string) (*model.Comment, error)
	Delete(ctx context.Context, id int64) error
}
