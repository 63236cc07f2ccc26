package model

import "time"

// Topic groups posts and is the unit users subscribe to. Name is unique.
type Topic struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
}
