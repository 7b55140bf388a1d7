package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"librarium-backend/internal/domain"
	"librarium-backend/internal/repository"
)

type stockRepository struct {
	db *sql.DB
}

func NewStockRepository(db *sql.DB) repository.StockRepository {
	return &stockRepository{db: db}
}

func (r *stockRepository) Create(ctx context.Context, rec *domain.StockRecord) error {
	query := `INSERT INTO stock_records (book_id, quantity, available, created_on, updated_on)
	          VALUES ($1, $2, $2 > 0, $3, $3) RETURNING id`
	rec.Available = rec.Quantity > 0
	return q(ctx, r.db).QueryRowContext(ctx, query, rec.BookID, rec.Quantity, time.Now()).Scan(&rec.ID)
}

func (r *stockRepository) GetByID(ctx context.Context, id int32) (*domain.StockRecord, error) {
	query := `SELECT id, book_id, quantity, available, created_on, updated_on FROM stock_records WHERE id = $1`
	rec, err := scanStock(q(ctx, r.db).QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	return rec, err
}

func (r *stockRepository) GetByBook(ctx context.Context, bookID int32) (*domain.StockRecord, error) {
	query := `SELECT id, book_id, quantity, available, created_on, updated_on FROM stock_records WHERE book_id = $1`
	rec, err := scanStock(q(ctx, r.db).QueryRowContext(ctx, query, bookID))
	if errors.Is(err, sql.ErrNoRows) {
		// No inventory row at all; callers distinguish this from quantity 0.
		return nil, nil
	}
	return rec, err
}

// DecrementIfAvailable is the conditional decrement used by checkout.
// The WHERE clause makes the update atomic: of two concurrent callers
// racing for the last copy, exactly one sees a row affected.
func (r *stockRepository) DecrementIfAvailable(ctx context.Context, id int32, now time.Time) (bool, error) {
	query := `UPDATE stock_records
	          SET quantity = quantity - 1, available = quantity - 1 > 0, updated_on = $2
	          WHERE id = $1 AND quantity > 0`
	res, err := q(ctx, r.db).ExecContext(ctx, query, id, now)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected == 1, nil
}

func (r *stockRepository) Increment(ctx context.Context, id int32, now time.Time) error {
	query := `UPDATE stock_records
	          SET quantity = quantity + 1, available = TRUE, updated_on = $2
	          WHERE id = $1`
	res, err := q(ctx, r.db).ExecContext(ctx, query, id, now)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// AdjustBy clamps at zero rather than erroring; availability is
// recomputed from the clamped quantity in the same statement.
func (r *stockRepository) AdjustBy(ctx context.Context, id int32, delta int32, now time.Time) (*domain.StockRecord, error) {
	query := `UPDATE stock_records
	          SET quantity = GREATEST(0, quantity + $2),
	              available = GREATEST(0, quantity + $2) > 0,
	              updated_on = $3
	          WHERE id = $1
	          RETURNING id, book_id, quantity, available, created_on, updated_on`
	rec, err := scanStock(q(ctx, r.db).QueryRowContext(ctx, query, id, delta, now))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	return rec, err
}

func scanStock(row *sql.Row) (*domain.StockRecord, error) {
	rec := &domain.StockRecord{}
	var createdOn, updatedOn time.Time
	if err := row.Scan(&rec.ID, &rec.BookID, &rec.Quantity, &rec.Available, &createdOn, &updatedOn); err != nil {
		return nil, err
	}
	rec.CreatedOn = createdOn.Format(time.RFC3339)
	rec.UpdatedOn = updatedOn.Format(time.RFC3339)
	return rec, nil
}
