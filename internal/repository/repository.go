// Package repository defines data access for the forum entities.
// Implementations live in subpackages (postgres) and contain no business logic.
// A missing row is reported as sql.ErrNoRows.
package repository

import "errors"

// ErrDuplicate is returned when a write violates a uniqueness constraint.
var ErrDuplicate = errors.New("duplicate key")

// PageQuery holds limit/offset pagination parameters.
type PageQuery struct {
	Limit  int
	Offset int
}

// PageResult is a generic pagination result wrapper.
// T is typically a model type.
type PageResult[T any] struct {
	Items []T
	Total int
}

// SortField names a column posts can be ordered by.
type SortField string

const (
	SortByCreatedAt SortField = "created_at"
	SortByTitle     SortField = "title"
)

// PostSort describes the ordering of a post listing.
type PostSort struct {
	Field SortField
	Desc  bool
}
