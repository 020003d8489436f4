package book

import (
	"sync/atomic"
	"time"
)

// Sequence issues monotonically increasing int64 identifiers. Ids are never
// repeated within the process lifetime, including after deletions.
type Sequence struct {
	last atomic.Int64
}

// NewSequence returns a sequence whose first Next call yields start+1.
// Seed with the highest persisted id when recovering existing state.
func NewSequence(start int64) *Sequence {
	s := &Sequence{}
	s.last.Store(start)
	return s
}

// Next returns the next identifier.
func (s *Sequence) Next() int64 {
	return s.last.Add(1)
}

// Advance raises the sequence floor to at least id. Subsequent Next calls
// return values greater than id.
func (s *Sequence) Advance(id int64) {
	for {
		cur := s.last.Load()
		if cur >= id || s.last.CompareAndSwap(cur, id) {
			return
		}
	}
}

// Clock supplies the creation date for new records.
type Clock interface {
	Today() Date
}

// SystemClock reads the wall clock.
type SystemClock struct{}

func (SystemClock) Today() Date {
	return NewDate(time.Now())
}
