package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"orion/internal/model"
	"orion/internal/repository"
)

// TopicService manages the topics posts are filed under.
type TopicService interface {
	// List returns all topics ordered by name.
	List(ctx context.Context) ([]model.Topic, error)
	Get(ctx context.Context, id int64) (*model.Topic, error)
	// Create adds a topic. Names are unique.
	Create(ctx context.Context, name, description string) (*model.Topic, error)
}

type topicService struct {
	topics repository.TopicRepository
}

func NewTopicService(topics repository.TopicRepository) TopicService {
	return &topicService{topics: topics}
}

func (s *topicService) List(ctx context.Context) ([]model.Topic, error) {
	return s.topics.List(ctx)
}

func (s *topicService) Get(ctx context.Context, id int64) (*model.Topic, error) {
	t, err := s.topics.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTopicNotFound
		}
		return nil, err
	}
	return t, nil
}

func (s *topicService) Create(ctx context.Context, name, description string) (*model.Topic, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrValidation)
	}
	t, err := s.topics.Create(ctx, &model.Topic{
		Name:        name,
		Description: strings.TrimSpace(description),
	})
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrTopicExists
		}
		return nil, fmt.Errorf("create topic: %w", err)
	}
	return t, nil
}
