package domain

import "context"

// Repository defines the persistence operations shared by every content type.
// Implementations translate storage-level unique violations into ErrConflict
// and missing records into ErrNotFound.
type Repository[T any] interface {
	Create(ctx context.Context, entity *T) error
	GetByID(ctx context.Context, id string) (*T, error)
	// List returns one page of records and the total number of records.
	List(ctx context.Context, page PageRequest) ([]T, int, error)
	Update(ctx context.Context, entity *T) error
	Delete(ctx context.Context, id string) error
}
