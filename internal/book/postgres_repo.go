package book

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresRepo is a Repository backed by the books table. Ids come from the
// table's identity column, so uniqueness and no-reuse hold across restarts.
type PostgresRepo struct {
	db      *pgxpool.Pool
	timeout time.Duration
}

func NewPostgresRepo(db *pgxpool.Pool, timeout time.Duration) *PostgresRepo {
	return &PostgresRepo{db: db, timeout: timeout}
}

func (r *PostgresRepo) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, r.timeout)
}

func (r *PostgresRepo) Insert(ctx context.Context, b Book) (Book, error) {
	const query = `
		INSERT INTO books (title, author, isbn, published_date)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	err := r.db.QueryRow(timeoutCtx, query, b.Title, b.Author, b.ISBN, b.PublishedDate).Scan(&b.ID)
	if err != nil {
		return Book{}, err
	}
	return b, nil
}

func (r *PostgresRepo) FindByID(ctx context.Context, id int64) (Book, error) {
	const query = `
		SELECT id, title, author, isbn, published_date
		FROM books
		WHERE id = $1
	`
	var b Book
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	err := r.db.QueryRow(timeoutCtx, query, id).Scan(
		&b.ID, &b.Title, &b.Author, &b.ISBN, &b.PublishedDate,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Book{}, ErrNotFound
		}
		return Book{}, err
	}
	return b, nil
}

func (r *PostgresRepo) ExistsByID(ctx context.Context, id int64) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM books WHERE id = $1)`

	var exists bool
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	if err := r.db.QueryRow(timeoutCtx, query, id).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *PostgresRepo) FindPage(ctx context.Context, offset, limit int) ([]Book, error) {
	const query = `
		SELECT id, title, author, isbn, published_date
		FROM books
		ORDER BY id ASC
		LIMIT $1 OFFSET $2
	`
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	rows, err := r.db.Query(timeoutCtx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Book
	for rows.Next() {
		var b Book
		if err := rows.Scan(&b.ID, &b.Title, &b.Author, &b.ISBN, &b.PublishedDate); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (r *PostgresRepo) Save(ctx context.Context, b Book) error {
	const query = `
		UPDATE books
		SET title = $1, author = $2, isbn = $3, published_date = $4
		WHERE id = $5
	`
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	tag, err := r.db.Exec(timeoutCtx, query, b.Title, b.Author, b.ISBN, b.PublishedDate, b.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresRepo) DeleteByID(ctx context.Context, id int64) error {
	const query = `DELETE FROM books WHERE id = $1`

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	tag, err := r.db.Exec(timeoutCtx, query, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
