package book

import (
	"context"
	"sort"
	"sync"
)

// MemoryRepo is an in-memory Repository backed by a map and a Sequence.
// Safe for concurrent use.
type MemoryRepo struct {
	mu    sync.RWMutex
	books map[int64]Book
	seq   *Sequence
}

// NewMemoryRepo constructs an empty in-memory repository, optionally seeded
// with existing records. The id sequence resumes past the highest seeded id.
func NewMemoryRepo(seed ...Book) *MemoryRepo {
	r := &MemoryRepo{
		books: make(map[int64]Book, len(seed)),
		seq:   NewSequence(0),
	}
	for _, b := range seed {
		r.books[b.ID] = b
		r.seq.Advance(b.ID)
	}
	return r
}

func (r *MemoryRepo) Insert(_ context.Context, b Book) (Book, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	b.ID = r.seq.Next()
	r.books[b.ID] = b
	return b, nil
}

func (r *MemoryRepo) FindByID(_ context.Context, id int64) (Book, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	b, ok := r.books[id]
	if !ok {
		return Book{}, ErrNotFound
	}
	return b, nil
}

func (r *MemoryRepo) ExistsByID(_ context.Context, id int64) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.books[id]
	return ok, nil
}

func (r *MemoryRepo) FindPage(_ context.Context, offset, limit int) ([]Book, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]int64, 0, len(r.books))
	for id := range r.books {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	if offset < 0 || offset >= len(ids) || limit <= 0 {
		return nil, nil
	}
	end := offset + limit
	if end > len(ids) {
		end = len(ids)
	}

	page := make([]Book, 0, end-offset)
	for _, id := range ids[offset:end] {
		page = append(page, r.books[id])
	}
	return page, nil
}

func (r *MemoryRepo) Save(_ context.Context, b Book) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.books[b.ID]; !ok {
		return ErrNotFound
	}
	r.books[b.ID] = b
	return nil
}

func (r *MemoryRepo) DeleteByID(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.books[id]; !ok {
		return ErrNotFound
	}
	delete(r.books, id)
	return nil
}
