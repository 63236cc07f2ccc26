package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"orion/internal/model"
	"orion/internal/repository"
)

// PostPostgres is a PostgreSQL implementation of repository.PostRepository.
// Reads join users and topics to fill AuthorUsername and TopicName.
type PostPostgres struct {
	db *sql.DB
}

// NewPostPostgres creates a new PostPostgres repository.
func NewPostPostgres(db *sql.DB) *PostPostgres {
	return &PostPostgres{db: db}
}

var _ repository.PostRepository = (*PostPostgres)(nil)

const postSelect = `
	SELECT p.id, p.title, p.content, p.created_at, p.updated_at,
	       p.author_id, u.username, p.topic_id, t.name
	FROM posts p
	JOIN users u ON u.id = p.author_id
	JOIN topics t ON t.id = p.topic_id
`

// sortColumns whitelists the ORDER BY expressions a caller may select.
var sortColumns = map[repository.SortField]string{
	repository.SortByCreatedAt: "p.created_at",
	repository.SortByTitle:     "p.title",
}

func orderBy(s repository.PostSort) string {
	col, ok := sortColumns[s.Field]
	if !ok {
		col = sortColumns[repository.SortByCreatedAt]
	}
	dir := "ASC"
	if s.Desc {
		dir = "DESC"
	}
	return fmt.Sprintf(" ORDER BY %s %s, p.id %s", col, dir, dir)
}

func scanPost(s scanner) (*model.Post, error) {
	var p model.Post
	if err := s.Scan(
		&p.ID,
		&p.Title,
		&p.Content,
		&p.CreatedAt,
		&p.UpdatedAt,
		&p.AuthorID,
		&p.AuthorUsername,
		&p.TopicID,
		&p.TopicName,
	); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PostPostgres) queryPosts(ctx context.Context, q string, args ...any) ([]model.Post, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Post, 0)
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// Create inserts a post and returns it joined with author and topic.
func (r *PostPostgres) Create(ctx context.Context, p *model.Post) (*model.Post, error) {
	const q = `
		WITH inserted AS (
			INSERT INTO posts (title, content, author_id, topic_id, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $5)
			RETURNING id, title, content, created_at, updated_at, author_id, topic_id
		)
		SELECT p.id, p.title, p.content, p.created_at, p.updated_at,
		       p.author_id, u.username, p.topic_id, t.name
		FROM inserted p
		JOIN users u ON u.id = p.author_id
		JOIN topics t ON t.id = p.topic_id
	`
	return scanPost(r.db.QueryRowContext(ctx, q, p.Title, p.Content, p.AuthorID, p.TopicID, p.CreatedAt))
}

func (r *PostPostgres) FindByID(ctx context.Context, id int64) (*model.Post, error) {
	return scanPost(r.db.QueryRowContext(ctx, postSelect+` WHERE p.id = $1`, id))
}

func (r *PostPostgres) List(ctx context.Context) ([]model.Post, error) {
	return r.queryPosts(ctx, postSelect+orderBy(repository.PostSort{Field: repository.SortByCreatedAt, Desc: true}))
}

func (r *PostPostgres) ListByAuthor(ctx context.Context, authorID int64, sort repository.PostSort) ([]model.Post, error) {
	return r.queryPosts(ctx, postSelect+` WHERE p.author_id = $1`+orderBy(sort), authorID)
}

func (r *PostPostgres) ListByTopic(ctx context.Context, topicID int64, sort repository.PostSort) ([]model.Post, error) {
	return r.queryPosts(ctx, postSelect+` WHERE p.topic_id = $1`+orderBy(sort), topicID)
}

// ListFeed returns a page of posts from subscribed topics and the total count.
func (r *PostPostgres) ListFeed(ctx context.Context, userID int64, pq repository.PageQuery) (*repository.PageResult[model.Post], error) {
	const qCount = `
		SELECT COUNT(*) FROM posts p
		JOIN subscriptions s ON s.topic_id = p.topic_id
		WHERE s.user_id = $1
	`
	var total int
	if err := r.db.QueryRowContext(ctx, qCount, userID).Scan(&total); err != nil {
		return nil, err
	}

	q := postSelect + `
		JOIN subscriptions s ON s.topic_id = p.topic_id
		WHERE s.user_id = $1` +
		orderBy(repository.PostSort{Field: repository.SortByCreatedAt, Desc: true}) + `
		LIMIT $2 OFFSET $3`
	items, err := r.queryPosts(ctx, q, userID, pq.Limit, pq.Offset)
	if err != nil {
		return nil, err
	}
	return &repository.PageResult[model.Post]{Items: items, Total: total}, nil
}

// Update overwrites title, content and topic, and returns the joined row.
func (r *PostPostgres) Update(ctx context.Context, p *model.Post) (*model.Post, error) {
	const q = `
		WITH updated AS (
			UPDATE posts SET title = $2, content = $3, topic_id = $4, updated_at = $5
			WHERE id = $1
			RETURNING id, title, content, created_at, updated_at, author_id, topic_id
		)
		SELECT p.id, p.title, p.content, p.created_at, p.updated_at,
		       p.author_id, u.username, p.topic_id, t.name
		FROM updated p
		JOIN users u ON u.id = p.author_id
		JOIN topics t ON t.id = p.topic_id
	`
	return scanPost(r.db.QueryRowContext(ctx, q, p.ID, p.Title, p.Content, p.TopicID, p.UpdatedAt))
}

// Delete removes a post; its comments cascade.
func (r *PostPostgres) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return requireAffected(res)
}
