package repository

import (
	"context"
	"errors"

	"applesapi/internal/model"
)

// ErrNotFound is returned by repositories when no apple matches the id.
var ErrNotFound = errors.New("apple not found")

// ErrAlreadyExists is returned by Insert when the id is already stored.
var ErrAlreadyExists = errors.New("apple already exists")

// AppleRepository defines data access for apples. Id policy lives in the service layer.
// Insert is the only conditional write.
type AppleRepository interface {
	// FindByID returns the apple with the given id or ErrNotFound.
	FindByID(ctx context.Context, id string) (*model.Apple, error)

	// ExistsByID reports whether an apple with the given id is stored.
	ExistsByID(ctx context.Context, id string) (bool, error)

	// Insert stores a new apple and fails with ErrAlreadyExists if the id is taken.
	// The check and the write happen in one store operation.
	Insert(ctx context.Context, apple *model.Apple) (*model.Apple, error)

	// Save writes the apple keyed by its ID, replacing any existing record,
	// and returns the stored value.
	Save(ctx context.Context, apple *model.Apple) (*model.Apple, error)

	// DeleteByID removes an apple. It returns nil if the record did not exist.
	DeleteByID(ctx context.Context, id string) error

	// List returns a page of apples ordered by id and the total count.
	List(ctx context.Context, pq PageQuery) (*PageResult[model.Apple], error)
}

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
