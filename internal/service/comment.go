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

// CommentService manages comments on posts. Only a comment's author may change it.
type CommentService interface {
	Add(ctx context.Context, authorID, postID int64, content string) (*model.Comment, error)
	// ListByPost returns the post's comments, oldest first.
	ListByPost(ctx context.Context, postID int64) ([]model.Comment, error)
	Update(ctx context.Context, id, authorID int64, content string) (*model.Comment, error)
	Delete(ctx context.Context, id, authorID int64) error
}

type commentService struct {
	comments repository.CommentRepository
	posts    repository.PostRepository
	now      func() time.Time
}

func NewCommentService(comments repository.CommentRepository, posts repository.PostRepository) CommentService {
	return &commentService{comments: comments, posts: posts, now: time.Now}
}

func (s *commentService) Add(ctx context.Context, authorID, postID int64, content string) (*model.Comment, error) {
	if strings.TrimSpace(content) == "" {
		return nil, fmt.Errorf("%w: content is required", ErrValidation)
	}
	if err := s.ensurePost(ctx, postID); err != nil {
		return nil, err
	}
	c, err := s.comments.Create(ctx, &model.Comment{
		Content:   content,
		CreatedAt: s.now().UTC(),
		AuthorID:  authorID,
		PostID:    postID,
	})
	if err != nil {
		return nil, fmt.Errorf("create comment: %w", err)
	}
	return c, nil
}

func (s *commentService) ListByPost(ctx context.Context, postID int64) ([]model.Comment, error) {
	if err := s.ensurePost(ctx, postID); err != nil {
		return nil, err
	}
	return s.comments.ListByPost(ctx, postID)
}

func (s *commentService) Update(ctx context.Context, id, authorID int64, content string) (*model.Comment, error) {
	if strings.TrimSpace(content) == "" {
		return nil, fmt.Errorf("%w: content is required", ErrValidation)
	}
	if _, err := s.owned(ctx, id, authorID); err != nil {
		return nil, err
	}
	c, err := s.comments.UpdateContent(ctx, id, content)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCommentNotFound
		}
		return nil, fmt.Errorf("update comment: %w", err)
	}
	return c, nil
}

func (s *commentService) Delete(ctx context.Context, id, authorID int64) error {
	if _, err := s.owned(ctx, id, authorID); err != nil {
		return err
	}
	if err := s.comments.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrCommentNotFound
		}
		return err
	}
	return nil
}

func (s *commentService) owned(ctx context.Context, id, authorID int64) (*model.Comment, error) {
	c, err := s.comments.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCommentNotFound
		}
		return nil, err
	}
	if c.AuthorID != authorID {
		return nil, ErrForbidden
	}
	return c, nil
}

func (s *commentService) ensurePost(ctx context.Context, postID int64) error {
	if _, err := s.posts.FindByID(ctx, postID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrPostNotFound
		}
		return err
	}
	return nil
}
