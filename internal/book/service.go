package book

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"sync"
)

// DefaultPageSize is the listing size when the caller supplies none.
const DefaultPageSize = 10

const deletedMessage = "Book deleted successfully"

// Service implements the catalog contract: create, paginated list, partial
// update and delete over book records.
type Service struct {
	repo  Repository
	clock Clock
	locks idLocks
}

func NewService(repo Repository, clock Clock) *Service {
	return &Service{repo: repo, clock: clock}
}

// AddBook validates the request, stamps the creation date and persists the
// record. Returns the stored record with its assigned id.
func (s *Service) AddBook(ctx context.Context, req CreateRequest) (Book, error) {
	if err := ValidateCreate(req); err != nil {
		return Book{}, err
	}

	b := Book{
		Title:         req.Title,
		Author:        req.Author,
		ISBN:          req.ISBN,
		PublishedDate: s.clock.Today(),
	}

	created, err := s.repo.Insert(ctx, b)
	if err != nil {
		return Book{}, fmt.Errorf("%w: insert: %v", ErrStorage, err)
	}
	log.Printf("book added id=%d title=%q", created.ID, created.Title)
	return created, nil
}

// GetAllBooks returns the page-th window of size records in ascending id
// order. An out-of-range page yields an empty list, never an error.
func (s *Service) GetAllBooks(ctx context.Context, page, size int) ([]Book, error) {
	if page < 0 {
		page = 0
	}
	if size < 1 {
		size = DefaultPageSize
	}
	// page*size would overflow for absurd page values; any such window
	// lies past the end of the catalog.
	if page > math.MaxInt/size {
		return []Book{}, nil
	}

	books, err := s.repo.FindPage(ctx, page*size, size)
	if err != nil {
		return nil, fmt.Errorf("%w: list: %v", ErrStorage, err)
	}
	if books == nil {
		books = []Book{}
	}
	return books, nil
}

// UpdateBook merges the present fields of req into the stored record. Id and
// publishedDate are never overwritten. Validation happens before any
// mutation, so a failed update leaves the record untouched.
func (s *Service) UpdateBook(ctx context.Context, id int64, req UpdateRequest) (Book, error) {
	unlock := s.locks.lock(id)
	defer unlock()

	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Book{}, fmt.Errorf("id %d: %w", id, ErrNotFound)
		}
		return Book{}, fmt.Errorf("%w: find: %v", ErrStorage, err)
	}

	if err := ValidateUpdate(req); err != nil {
		return Book{}, err
	}

	if req.Title != nil {
		existing.Title = *req.Title
	}
	if req.Author != nil {
		existing.Author = *req.Author
	}
	if req.ISBN != nil {
		existing.ISBN = *req.ISBN
	}

	if err := s.repo.Save(ctx, existing); err != nil {
		// FindByID succeeded under the same lock, so a missing row here is
		// an invariant breach, not a handled not-found.
		return Book{}, fmt.Errorf("%w: save id %d: %v", ErrStorage, id, err)
	}
	log.Printf("book updated id=%d", id)
	return existing, nil
}

// DeleteBook removes the record and returns a confirmation message. The id
// is permanently retired; the sequence never reissues it.
func (s *Service) DeleteBook(ctx context.Context, id int64) (string, error) {
	unlock := s.locks.lock(id)
	defer unlock()

	exists, err := s.repo.ExistsByID(ctx, id)
	if err != nil {
		return "", fmt.Errorf("%w: exists: %v", ErrStorage, err)
	}
	if !exists {
		return "", fmt.Errorf("id %d: %w", id, ErrNotFound)
	}

	if err := s.repo.DeleteByID(ctx, id); err != nil {
		if errors.Is(err, ErrNotFound) {
			return "", fmt.Errorf("id %d: %w", id, ErrNotFound)
		}
		return "", fmt.Errorf("%w: delete: %v", ErrStorage, err)
	}
	log.Printf("book deleted id=%d", id)
	return deletedMessage, nil
}

// idLocks serializes read-modify-write sequences per record id, so
// concurrent updates or deletes of the same book cannot lose writes.
// Striped to keep memory bounded.
type idLocks [32]sync.Mutex

func (l *idLocks) lock(id int64) func() {
	m := &l[uint64(id)%uint64(len(l))]
	m.Lock()
	return m.Unlock
}
