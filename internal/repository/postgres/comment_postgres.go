package postgres

import (
	"context"
	"database/sql"

	"orion/internal/model"
	"orion/internal/repository"
)

// CommentPostgres is a PostgreSQL implementation of repository.CommentRepository.
type CommentPostgres struct {
	db *sql.DB
}

// NewCommentPostgres creates a new CommentPostgres repository.
func NewCommentPostgres(db *sql.DB) *CommentPostgres {
	return &CommentPostgres{db: db}
}

var _ repository.CommentRepository = (*CommentPostgres)(nil)

func scanComment(s scanner) (*model.Comment, error) {
	var c model.Comment
	if err := s.Scan(&c.ID, &c.Content, &c.CreatedAt, &c.AuthorID, &c.AuthorUsername, &c.PostID); err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CommentPostgres) Create(ctx context.Context, c *model.Comment) (*model.Comment, error) {
	const q = `
		WITH inserted AS (
			INSERT INTO comments (content, author_id, post_id, created_at)
			VALUES ($1, $2, $3, $4)
			RETURNING id, content, created_at, author_id, post_id
		)
		SELECT c.id, c.content, c.created_at, c.author_id, u.username, c.post_id
		FROM inserted c
		JOIN users u ON u.id = c.author_id
	`
	return scanComment(r.db.QueryRowContext(ctx, q, c.Content, c.AuthorID, c.PostID, c.CreatedAt))
}

func (r *CommentPostgres) FindByID(ctx context.Context, id int64) (*model.Comment, error) {
	const q = `
		SELECT c.id, c.content, c.created_at, c.author_id, u.username, c.post_id
		FROM comments c
		JOIN users u ON u.id = c.author_id
		WHERE c.id = $1
	`
	return scanComment(r.db.QueryRowContext(ctx, q, id))
}

func (r *CommentPostgres) ListByPost(ctx context.Context, postID int64) ([]model.Comment, error) {
	const q = `
		SELECT c.id, c.content, c.created_at, c.author_id, u.username, c.post_id
		FROM comments c
		JOIN users u ON u.id = c.author_id
		WHERE c.post_id = $1
		ORDER BY c.created_at ASC, c.id ASC
	`
	rows, err := r.db.QueryContext(ctx, q, postID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Comment, 0)
	for rows.Next() {
		c, err := scanComment(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *CommentPostgres) UpdateContent(ctx context.Context, id int64, content string) (*model.Comment, error) {
	const q = `
		WITH updated AS (
			UPDATE comments SET content = $2 WHERE id = $1
			RETURNING id, content, created_at, author_id, post_id
		)
		SELECT c.id, c.content, c.created_at, c.author_id, u.username, c.post_id
		FROM updated c
		JOIN users u ON u.id = c.author_id
	`
	return scanComment(r.db.QueryRowContext(ctx, q, id, content))
}

func (r *CommentPostgres) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM comments WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return requireAffected(res)
}
