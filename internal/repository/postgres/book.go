package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"librarium-backend/internal/domain"
	"librarium-backend/internal/repository"
)

type bookRepository struct {
	db *sql.DB
}

func NewBookRepository(db *sql.DB) repository.BookRepository {
	return &bookRepository{db: db}
}

func (r *bookRepository) Create(ctx context.Context, b *domain.Book) error {
	query := `INSERT INTO books (title, author, created_on) VALUES ($1, $2, $3) RETURNING id`
	return q(ctx, r.db).QueryRowContext(ctx, query, b.Title, b.Author, time.Now()).Scan(&b.ID)
}

func (r *bookRepository) GetByID(ctx context.Context, id int32) (*domain.Book, error) {
	b := &domain.Book{}
	var createdOn time.Time
	query := `SELECT id, title, author, created_on FROM books WHERE id = $1`
	err := q(ctx, r.db).QueryRowContext(ctx, query, id).Scan(&b.ID, &b.Title, &b.Author, &createdOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	b.CreatedOn = createdOn.Format(time.RFC3339)
	return b, nil
}

func (r *bookRepository) GetTitle(ctx context.Context, id int32) (string, error) {
	var title string
	query := `SELECT title FROM books WHERE id = $1`
	err := q(ctx, r.db).QueryRowContext(ctx, query, id).Scan(&title)
	if errors.Is(err, sql.ErrNoRows) {
		return "", domain.ErrNotFound
	}
	return title, err
}
