package model

import "time"

// Post is an article published by a user under a topic.
// AuthorUsername and TopicName are denormalized from joins for presentation.
type Post struct {
	ID             int64     `json:"id"`
	Title          string    `json:"title"`
	Content        string    `json:"content"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
	AuthorID       int64     `json:"authorId"`
	AuthorUsername string    `json:"authorUsername"`
	TopicID        int64     `json:"topicId"`
	TopicName      string    `json:"topicName"`
	Comments       []Comment `json:"comments,omitempty"`
}

// Comment is a reply attached to a post.
type Comment struct {
	ID             int64     `json:"id"`
	Content        string    `json:"content"`
	CreatedAt      time.Time `json:"createdAt"`
	AuthorID       int64     `json:"authorId"`
	AuthorUsername string    `json:"authorUsername"`
	PostID         int64     `json:"postId"`
}
