package repository

import (
	"context"
	"errors"
	"time"

	"billdocs/internal/model"
)

var (
	// ErrDuplicateReference is returned when a display reference is already taken.
	ErrDuplicateReference = errors.New("display reference already exists")
	// ErrUnknownClient is returned when a document points at a client that does not exist.
	ErrUnknownClient = errors.New("referenced client does not exist")
)

// DocumentRepository defines data access for billing documents using SQL queries only.
// No business logic here, only persistence.
// Lookups of a missing id return sql.ErrNoRows.
type DocumentRepository interface {
	// Create inserts a new document. created_at and updated_at are set by the database.
	// Returns the stored document including the joined client summary.
	Create(ctx context.Context, doc *model.Document) (*model.Document, error)

	// Update applies only the non-nil fields of patch and bumps updated_at.
	Update(ctx context.Context, id string, patch model.DocumentPatch) (*model.Document, error)

	// FindByID returns a document with its client summary.
	FindByID(ctx context.Context, id string) (*model.Document, error)

	// List returns documents newest first and the total rows count.
	List(ctx context.Context, pq PageQuery) (*PageResult[model.Document], error)

	// CountSince counts documents created at or after since, whatever their type.
	CountSince(ctx context.Context, since time.Time) (int, error)

	// NextSequence atomically increments and returns the document counter of year.
	NextSequence(ctx context.Context, year int) (int, error)
}

// PageQuery holds limit/offset pagination parameters. A non-positive Limit means no limit.
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
