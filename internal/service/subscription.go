package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"orion/internal/model"
	"orion/internal/repository"
)

// SubscriptionService manages which topics feed into a user's post feed.
type SubscriptionService interface {
	// Subscribe fails with ErrAlreadySubscribed if the pair already exists.
	Subscribe(ctx context.Context, userID, topicID int64) (*model.Subscription, error)
	ListMine(ctx context.Context, userID int64) ([]model.Subscription, error)
	// Unsubscribe removes a subscription owned by userID.
	Unsubscribe(ctx context.Context, id, userID int64) error
}

type subscriptionService struct {
	subs   repository.SubscriptionRepository
	topics repository.TopicRepository
}

func NewSubscriptionService(subs repository.SubscriptionRepository, topics repository.TopicRepository) SubscriptionService {
	return &subscriptionService{subs: subs, topics: topics}
}

func (s *subscriptionService) Subscribe(ctx context.Context, userID, topicID int64) (*model.Subscription, error) {
	if _, err := s.topics.FindByID(ctx, topicID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTopicNotFound
		}
		return nil, err
	}

	_, err := s.subs.FindByUserAndTopic(ctx, userID, topicID)
	switch {
	case err == nil:
		return nil, ErrAlreadySubscribed
	case !errors.Is(err, sql.ErrNoRows):
		return nil, err
	}

	sub, err := s.subs.Create(ctx, &model.Subscription{
		UserID:  userID,
		TopicID: topicID,
	})
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrAlreadySubscribed
		}
		return nil, fmt.Errorf("create subscription: %w", err)
	}
	return sub, nil
}

func (s *subscriptionService) ListMine(ctx context.Context, userID int64) ([]model.Subscription, error) {
	return s.subs.ListByUser(ctx, userID)
}

func (s *subscriptionService) Unsubscribe(ctx context.Context, id, userID int64) error {
	sub, err := s.subs.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrSubscriptionNotFound
		}
		return err
	}
	if sub.UserID != userID {
		return ErrForbidden
	}
	if err := s.subs.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrSubscriptionNotFound
		}
		return err
	}
	return nil
}
