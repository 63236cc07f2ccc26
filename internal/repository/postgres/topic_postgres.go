package postgres

import (
	"context"
	"database/sql"

	"orion/internal/model"
	"orion/internal/repository"
)

// TopicPostgres is a PostgreSQL implementation of repository.TopicRepository.
type TopicPostgres struct {
	db *sql.DB
}

// NewTopicPostgres creates a new TopicPostgres repository.
func NewTopicPostgres(db *sql.DB) *TopicPostgres {
	return &TopicPostgres{db: db}
}

var _ repository.TopicRepository = (*TopicPostgres)(nil)

func scanTopic(s scanner) (*model.Topic, error) {
	var t model.Topic
	if err := s.Scan(&t.ID, &t.Name, &t.Description, &t.CreatedAt); err != nil {
		return nil, err
	}
	return &t, nil
}

// Create inserts a topic. A taken name yields repository.ErrDuplicate.
func (r *TopicPostgres) Create(ctx context.Context, t *model.Topic) (*model.Topic, error) {
	const q = `
		INSERT INTO topics (name, description)
		VALUES ($1, $2)
		RETURNING id, name, description, created_at
	`
	out, err := scanTopic(r.db.QueryRowContext(ctx, q, t.Name, t.Description))
	if err != nil {
		return nil, translateError(err)
	}
	return out, nil
}

func (r *TopicPostgres) FindByID(ctx context.Context, id int64) (*model.Topic, error) {
	const q = `SELECT id, name, description, created_at FROM topics WHERE id = $1`
	return scanTopic(r.db.QueryRowContext(ctx, q, id))
}

func (r *TopicPostgres) List(ctx context.Context) ([]model.Topic, error) {
	const q = `SELECT id, name, description, created_at FROM topics ORDER BY name ASC`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Topic, 0)
	for rows.Next() {
		t, err := scanTopic(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
