package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"orion/internal/model"
	"orion/internal/repository"
)

// PostInput carries the editable fields of a post.
type PostInput struct {
	Title   string
	Content string
	TopicID int64
}

// PostListResult is a page of posts with the total number available.
type PostListResult struct {
	Items []model.Post `json:"data"`
	Total int          `json:"total"`
}

// PostService defines the use cases around posts.
type PostService interface {
	// List returns every post, newest first.
	List(ctx context.Context) ([]model.Post, error)

	// Get returns a post together with its comments.
	Get(ctx context.Context, id int64) (*model.Post, error)

	// ListByAuthor and ListByTopic accept sort "createdAt" or "title" and order "asc" or "desc".
	// Empty values select createdAt, newest first.
	ListByAuthor(ctx context.Context, authorID int64, sort, order string) ([]model.Post, error)
	ListByTopic(ctx context.Context, topicID int64, sort, order string) ([]model.Post, error)

	// Feed pages through posts of the topics the user subscribes to, newest first.
	Feed(ctx context.Context, userID int64, limit, offset int) (*PostListResult, error)

	Create(ctx context.Context, authorID int64, in PostInput) (*model.Post, error)

	// Update and Delete are restricted to the post's author.
	Update(ctx context.Context, id, authorID int64, in PostInput) (*model.Post, error)
	Delete(ctx context.Context, id, authorID int64) error
}

type postService struct {
	posts    repository.PostRepository
	comments repository.CommentRepository
	users    repository.UserRepository
	topics   repository.TopicRepository
	now      func() time.Time
}

func NewPostService(
	posts repository.PostRepository,
	comments repository.CommentRepository,
	users repository.UserRepository,
	topics repository.TopicRepository,
) PostService {
	return &postService{posts: posts, comments: comments, users: users, topics: topics, now: time.Now}
}

// ParsePostSort maps query parameters onto a repository sort. Title sorts default to ascending,
// creation date sorts to descending.
func ParsePostSort(sort, order string) (repository.PostSort, error) {
	var ps repository.PostSort
	switch strings.ToLower(sort) {
	case "", "createdat":
		ps = repository.PostSort{Field: repository.SortByCreatedAt, Desc: true}
	case "title":
		ps = repository.PostSort{Field: repository.SortByTitle}
	default:
		return ps, fmt.Errorf("%w: unknown sort field %q", ErrInvalidSort, sort)
	}
	switch strings.ToLower(order) {
	case "":
	case "asc":
		ps.Desc = false
	case "desc":
		ps.Desc = true
	default:
		return ps, fmt.Errorf("%w: unknown order %q", ErrInvalidSort, order)
	}
	return ps, nil
}

func (s *postService) List(ctx context.Context) ([]model.Post, error) {
	return s.posts.List(ctx)
}

func (s *postService) Get(ctx context.Context, id int64) (*model.Post, error) {
	p, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	comments, err := s.comments.ListByPost(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	p.Comments = comments
	return p, nil
}

func (s *postService) ListByAuthor(ctx context.Context, authorID int64, sort, order string) ([]model.Post, error) {
	ps, err := ParsePostSort(sort, order)
	if err != nil {
		return nil, err
	}
	if _, err := s.users.FindByID(ctx, authorID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return s.posts.ListByAuthor(ctx, authorID, ps)
}

func (s *postService) ListByTopic(ctx context.Context, topicID int64, sort, order string) ([]model.Post, error) {
	ps, err := ParsePostSort(sort, order)
	if err != nil {
		return nil, err
	}
	if err := s.ensureTopic(ctx, topicID); err != nil {
		return nil, err
	}
	return s.posts.ListByTopic(ctx, topicID, ps)
}

func (s *postService) Feed(ctx context.Context, userID int64, limit, offset int) (*PostListResult, error) {
	if limit <= 0 {
		limit = 10
	}
	if offset < 0 {
		offset = 0
	}

	res, err := s.posts.ListFeed(ctx, userID, repository.PageQuery{Limit: limit, Offset: offset})
	if err != nil {
		return nil, err
	}
	return &PostListResult{Items: res.Items, Total: res.Total}, nil
}

func (s *postService) Create(ctx context.Context, authorID int64, in PostInput) (*model.Post, error) {
	if err := validatePost(in); err != nil {
		return nil, err
	}
	if err := s.ensureTopic(ctx, in.TopicID); err != nil {
		return nil, err
	}
	p, err := s.posts.Create(ctx, &model.Post{
		Title:     strings.TrimSpace(in.Title),
		Content:   in.Content,
		CreatedAt: s.now().UTC(),
		AuthorID:  authorID,
		TopicID:   in.TopicID,
	})
	if err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}
	return p, nil
}

func (s *postService) Update(ctx context.Context, id, authorID int64, in PostInput) (*model.Post, error) {
	if err := validatePost(in); err != nil {
		return nil, err
	}
	p, err := s.owned(ctx, id, authorID)
	if err != nil {
		return nil, err
	}
	if in.TopicID != p.TopicID {
		if err := s.ensureTopic(ctx, in.TopicID); err != nil {
			return nil, err
		}
	}
	p.Title = strings.TrimSpace(in.Title)
	p.Content = in.Content
	p.TopicID = in.TopicID
	p.UpdatedAt = s.now().UTC()

	updated, err := s.posts.Update(ctx, p)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPostNotFound
		}
		return nil, fmt.Errorf("update post: %w", err)
	}
	return updated, nil
}

func (s *postService) Delete(ctx context.Context, id, authorID int64) error {
	if _, err := s.owned(ctx, id, authorID); err != nil {
		return err
	}
	if err := s.posts.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrPostNotFound
		}
		return err
	}
	return nil
}

func (s *postService) find(ctx context.Context, id int64) (*model.Post, error) {
	p, err := s.posts.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	return p, nil
}

// owned loads the post and checks that authorID wrote it.
func (s *postService) owned(ctx context.Context, id, authorID int64) (*model.Post, error) {
	p, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.AuthorID != authorID {
		return nil, ErrForbidden
	}
	return p, nil
}

func (s *postService) ensureTopic(ctx context.Context, topicID int64) error {
	if _, err := s.topics.FindByID(ctx, topicID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrTopicNotFound
		}
		return err
	}
	return nil
}

func validatePost(in PostInput) error {
	if strings.TrimSpace(in.Title) == "" || strings.TrimSpace(in.Content) == "" {
		return fmt.Errorf("%w: title and content are required", ErrValidation)
	}
	if in.TopicID <= 0 {
		return fmt.Errorf("%w: topicId is required", ErrValidation)
	}
	return nil
}
