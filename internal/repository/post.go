package repository

import (
	"context"

	"orion/internal/model"
)

// PostRepository defines persistence operations for posts.
// Returned posts carry author username and topic name; Comments is left empty.
type PostRepository interface {
	Create(ctx context.Context, p *model.Post) (*model.Post, error)
	FindByID(ctx context.Context, id int64) (*model.Post, error)
	// List returns every post, newest first.
	List(ctx context.Context) ([]model.Post, error)
	ListByAuthor(ctx context.Context, authorID int64, sort PostSort) ([]model.Post, error)
	ListByTopic(ctx context.Context, topicID int64, sort PostSort) ([]model.Post, error)
	// ListFeed returns posts from the topics the user is subscribed to, newest first.
	ListFeed(ctx context.Context, userID int64, pq PageQuery) (*PageResult[model.Post], error)
	// Update overwrites title, content, topic and updated_at.
	Update(ctx context.Context, p *model.Post) (*model.Post, error)
	Delete(ctx context.Context, id int64) error
}
