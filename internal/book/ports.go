package book

import (
	"context"
)

// Repository defines the contract for book record storage. Records are
// ordered by ascending id; ids are assigned at insert and never reused.
type Repository interface {
	// Insert stores a validated record, assigns its id and returns the
	// stored copy.
	Insert(ctx context.Context, b Book) (Book, error)
	// FindByID returns the record or ErrNotFound.
	FindByID(ctx context.Context, id int64) (Book, error)
	// ExistsByID reports whether the id is present, without side effects.
	ExistsByID(ctx context.Context, id int64) (bool, error)
	// FindPage returns up to limit records in ascending id order, skipping
	// offset records. limit 0 yields an empty page. A page shorter than
	// limit means the set is exhausted.
	FindPage(ctx context.Context, offset, limit int) ([]Book, error)
	// Save replaces the record with the same id, or returns ErrNotFound.
	Save(ctx context.Context, b Book) error
	// DeleteByID removes the record, or returns ErrNotFound.
	DeleteByID(ctx context.Context, id int64) error
}
