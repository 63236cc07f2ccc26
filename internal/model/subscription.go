package model

import "time"

// Subscription links a user to a topic. At most one exists per (user, topic) pair.
type Subscription struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"userId"`
	TopicID   int64     `json:"topicId"`
	TopicName string    `json:"topicName"`
	CreatedAt time.Time `json:"createdAt"`
}
