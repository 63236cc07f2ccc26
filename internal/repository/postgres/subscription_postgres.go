package postgres

import (
	"context"
	"database/sql"

	"orion/internal/model"
	"orion/internal/repository"
)

// SubscriptionPostgres is a PostgreSQL implementation of repository.SubscriptionRepository.
// The (user_id, topic_id) unique constraint backs the one-subscription-per-topic rule.
type SubscriptionPostgres struct {
	db *sql.DB
}

// NewSubscriptionPostgres creates a new SubscriptionPostgres repository.
func NewSubscriptionPostgres(db *sql.DB) *SubscriptionPostgres {
	return &SubscriptionPostgres{db: db}
}

var _ repository.SubscriptionRepository = (*SubscriptionPostgres)(nil)

const subscriptionSelect = `
	SELECT s.id, s.user_id, s.topic_id, t.name, s.created_at
	FROM subscriptions s
	JOIN topics t ON t.id = s.topic_id
`

func scanSubscription(s scanner) (*model.Subscription, error) {
	var sub model.Subscription
	if err := s.Scan(&sub.ID, &sub.UserID, &sub.TopicID, &sub.TopicName, &sub.CreatedAt); err != nil {
		return nil, err
	}
	return &sub, nil
}

func (r *SubscriptionPostgres) Create(ctx context.Context, s *model.Subscription) (*model.Subscription, error) {
	const q = `
		WITH inserted AS (
			INSERT INTO subscriptions (user_id, topic_id)
			VALUES ($1, $2)
			RETURNING id, user_id, topic_id, created_at
		)
		SELECT s.id, s.user_id, s.topic_id, t.name, s.created_at
		FROM inserted s
		JOIN topics t ON t.id = s.topic_id
	`
	out, err := scanSubscription(r.db.QueryRowContext(ctx, q, s.UserID, s.TopicID))
	if err != nil {
		return nil, translateError(err)
	}
	return out, nil
}

func (r *SubscriptionPostgres) FindByID(ctx context.Context, id int64) (*model.Subscription, error) {
	return scanSubscription(r.db.QueryRowContext(ctx, subscriptionSelect+` WHERE s.id = $1`, id))
}

func (r *SubscriptionPostgres) FindByUserAndTopic(ctx context.Context, userID, topicID int64) (*model.Subscription, error) {
	q := subscriptionSelect + ` WHERE s.user_id = $1 AND s.topic_id = $2`
	return scanSubscription(r.db.QueryRowContext(ctx, q, userID, topicID))
}

func (r *SubscriptionPostgres) ListByUser(ctx context.Context, userID int64) ([]model.Subscription, error) {
	q := subscriptionSelect + ` WHERE s.user_id = $1 ORDER BY t.name ASC`
	rows, err := r.db.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Subscription, 0)
	for rows.Next() {
		sub, err := scanSubscription(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *sub)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *SubscriptionPostgres) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM subscriptions WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return requireAffected(res)
}
