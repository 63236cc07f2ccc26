package repository

import (
	"context"

	"orion/internal/model"
)

// SubscriptionRepository defines persistence operations for topic subscriptions.
type SubscriptionRepository interface {
	// Create inserts a subscription. An existing (user, topic) pair yields ErrDuplicate.
	Create(ctx context.Context, s *model.Subscription) (*model.Subscription, error)
	FindByID(ctx context.Context, id int64) (*model.Subscription, error)
	FindByUserAndTopic(ctx context.Context, userID, topicID int64) (*model.Subscription, error)
	// ListByUser returns the user's subscriptions ordered by topic name.
	ListByUser(ctx context.Context, userID int64) ([]model.Subscription, error)
	Delete(ctx context.Context, id int64) error
}
