package repository

import (
	"context"

	"orion/internal/model"
)

// TopicRepository defines persistence operations for topics.
type TopicRepository interface {
	Create(ctx context.Context, t *model.Topic) (*model.Topic, error)
	FindByID(ctx context.Context, id int64) (*model.Topic, error)
	// List returns all topics ordered by name ascending.
	List(ctx context.Context) ([]model.Topic, error)
}
