package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"librarium-backend/internal/domain"
	"librarium-backend/internal/repository"
)

type loanRepository struct {
	db *sql.DB
}

func NewLoanRepository(db *sql.DB) repository.LoanRepository {
	return &loanRepository{db: db}
}

const loanColumns = `id, member_id, book_id, stock_id, checkout_date, due_date, return_date, fine_cents, created_on, updated_on`

func (r *loanRepository) Create(ctx context.Context, l *domain.Loan) error {
	query := `INSERT INTO loans (member_id, book_id, stock_id, checkout_date, due_date, fine_cents, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $7) RETURNING id`
	return q(ctx, r.db).QueryRowContext(ctx, query,
		l.MemberID, l.BookID, l.StockID, l.CheckoutDate, l.DueDate, l.FineCents, time.Now()).Scan(&l.ID)
}

func (r *loanRepository) GetByID(ctx context.Context, id int32) (*domain.Loan, error) {
	query := `SELECT ` + loanColumns + ` FROM loans WHERE id = $1`
	l, err := scanLoan(q(ctx, r.db).QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	return l, err
}

// MarkReturned claims the return. The return_date IS NULL guard makes the
// claim atomic: the second of two concurrent callers sees zero rows.
func (r *loanRepository) MarkReturned(ctx context.Context, id int32, returnDate time.Time, fineCents int32) (bool, error) {
	query := `UPDATE loans SET return_date = $2, fine_cents = $3, updated_on = $2
	          WHERE id = $1 AND return_date IS NULL`
	res, err := q(ctx, r.db).ExecContext(ctx, query, id, returnDate, fineCents)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected == 1, nil
}

func (r *loanRepository) CountActiveByMember(ctx context.Context, memberID int32) (int32, error) {
	var count int32
	query := `SELECT count(*) FROM loans WHERE member_id = $1 AND return_date IS NULL`
	err := q(ctx, r.db).QueryRowContext(ctx, query, memberID).Scan(&count)
	return count, err
}

func (r *loanRepository) List(ctx context.Context, page, pageSize int32) ([]domain.Loan, int32, error) {
	offset := (page - 1) * pageSize

	var count int32
	if err := q(ctx, r.db).QueryRowContext(ctx, `SELECT count(*) FROM loans`).Scan(&count); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + loanColumns + ` FROM loans ORDER BY created_on DESC LIMIT $1 OFFSET $2`
	rows, err := q(ctx, r.db).QueryContext(ctx, query, pageSize, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	loans, err := collectLoans(rows)
	return loans, count, err
}

func (r *loanRepository) ListByMember(ctx context.Context, memberID int32, page, pageSize int32) ([]domain.Loan, int32, error) {
	offset := (page - 1) * pageSize

	var count int32
	countQuery := `SELECT count(*) FROM loans WHERE member_id = $1`
	if err := q(ctx, r.db).QueryRowContext(ctx, countQuery, memberID).Scan(&count); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + loanColumns + ` FROM loans WHERE member_id = $1 ORDER BY created_on DESC LIMIT $2 OFFSET $3`
	rows, err := q(ctx, r.db).QueryContext(ctx, query, memberID, pageSize, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	loans, err := collectLoans(rows)
	return loans, count, err
}

func (r *loanRepository) UpdateDueDate(ctx context.Context, id int32, dueDate time.Time) (bool, error) {
	query := `UPDATE loans SET due_date = $2, updated_on = $3 WHERE id = $1`
	res, err := q(ctx, r.db).ExecContext(ctx, query, id, dueDate, time.Now())
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected == 1, nil
}

func (r *loanRepository) Delete(ctx context.Context, id int32) (bool, error) {
	res, err := q(ctx, r.db).ExecContext(ctx, `DELETE FROM loans WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected == 1, nil
}

func scanLoan(row *sql.Row) (*domain.Loan, error) {
	l := &domain.Loan{}
	var returnDate sql.NullTime
	var createdOn, updatedOn time.Time
	err := row.Scan(&l.ID, &l.MemberID, &l.BookID, &l.StockID, &l.CheckoutDate, &l.DueDate, &returnDate, &l.FineCents, &createdOn, &updatedOn)
	if err != nil {
		return nil, err
	}
	if returnDate.Valid {
		l.ReturnDate = &returnDate.Time
	}
	l.CreatedOn = createdOn.Format(time.RFC3339)
	l.UpdatedOn = updatedOn.Format(time.RFC3339)
	return l, nil
}

func collectLoans(rows *sql.Rows) ([]domain.Loan, error) {
	var loans []domain.Loan
	for rows.Next() {
		var l domain.Loan
		var returnDate sql.NullTime
		var createdOn, updatedOn time.Time
		if err := rows.Scan(&l.ID, &l.MemberID, &l.BookID, &l.StockID, &l.CheckoutDate, &l.DueDate, &returnDate, &l.FineCents, &createdOn, &updatedOn); err != nil {
			return nil, err
		}
		if returnDate.Valid {
			l.ReturnDate = &returnDate.Time
		}
		l.CreatedOn = createdOn.Format(time.RFC3339)
		l.UpdatedOn = updatedOn.Format(time.RFC3339)
		loans = append(loans, l)
	}
	return loans, rows.Err()
}
