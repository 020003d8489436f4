package book

import (
	"database/sql/driver"
	"fmt"
	"time"
)

// Book represents a catalog record. The store assigns ID and the service
// assigns PublishedDate on creation; neither is caller-settable afterwards.
type Book struct {
	ID            int64  `json:"id"`
	Title         string `json:"title"`
	Author        string `json:"author"`
	ISBN          string `json:"isbn"`
	PublishedDate Date   `json:"publishedDate"`
}

// CreateRequest carries the caller-supplied fields for a new book.
type CreateRequest struct {
	Title  string `json:"title" validate:"required,notblank,min=1,max=100"`
	Author string `json:"author" validate:"required,notblank,min=1,max=100"`
	ISBN   string `json:"isbn" validate:"required,isbn"`
}

// UpdateRequest carries a partial update. Nil fields are left untouched;
// non-nil fields are validated and merged into the stored record.
type UpdateRequest struct {
	// omitnil (not omitempty) so a present-but-blank field still fails
	// validation instead of being skipped as a zero value.
	Title  *string `json:"title" validate:"omitnil,notblank,min=1,max=100"`
	Author *string `json:"author" validate:"omitnil,notblank,min=1,max=100"`
	ISBN   *string `json:"isbn" validate:"omitnil,isbn"`
}

const dateLayout = "2006-01-02"

// Date is a day-precision calendar date. It serializes to JSON as
// "2006-01-02" and round-trips through a DATE column.
type Date struct {
	time.Time
}

// NewDate truncates t to its calendar day in UTC.
func NewDate(t time.Time) Date {
	y, m, d := t.Date()
	return Date{time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Format(dateLayout) + `"`), nil
}

func (d *Date) UnmarshalJSON(b []byte) error {
	t, err := time.Parse(`"`+dateLayout+`"`, string(b))
	if err != nil {
		return fmt.Errorf("invalid date %s: %w", b, err)
	}
	*d = NewDate(t)
	return nil
}

func (d Date) Value() (driver.Value, error) {
	return d.Time, nil
}

func (d *Date) Scan(src any) error {
	switch v := src.(type) {
	case time.Time:
		*d = NewDate(v)
		return nil
	case string:
		t, err := time.Parse(dateLayout, v)
		if err != nil {
			return err
		}
		*d = NewDate(t)
		return nil
	default:
		return fmt.Errorf("cannot scan %T into Date", src)
	}
}
