package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"librarium-backend/internal/domain"
	"librarium-backend/internal/repository"
)

type reservationRepository struct {
	db *sql.DB
}

func NewReservationRepository(db *sql.DB) repository.ReservationRepository {
	return &reservationRepository{db: db}
}

const reservationColumns = `id, member_id, book_id, status, stock_id, available_on, created_on, updated_on`

func (r *reservationRepository) Create(ctx context.Context, res *domain.Reservation) error {
	query := `INSERT INTO reservations (member_id, book_id, status, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $4) RETURNING id`
	return q(ctx, r.db).QueryRowContext(ctx, query,
		res.MemberID, res.BookID, res.Status, res.CreatedOn).Scan(&res.ID)
}

func (r *reservationRepository) GetByID(ctx context.Context, id int32) (*domain.Reservation, error) {
	query := `SELECT ` + reservationColumns + ` FROM reservations WHERE id = $1`
	res, err := scanReservation(q(ctx, r.db).QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	return res, err
}

func (r *reservationRepository) HasActive(ctx context.Context, memberID, bookID int32) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM reservations
	          WHERE member_id = $1 AND book_id = $2 AND status IN ('PENDING', 'AVAILABLE'))`
	err := q(ctx, r.db).QueryRowContext(ctx, query, memberID, bookID).Scan(&exists)
	return exists, err
}

// ClaimEarliestPending promotes the oldest pending reservation in one
// statement. FOR UPDATE SKIP LOCKED lets concurrent returns of the same
// book each claim a distinct row, or none, never the same one twice.
func (r *reservationRepository) ClaimEarliestPending(ctx context.Context, bookID, stockID int32, availableOn time.Time) (*domain.Reservation, error) {
	query := `UPDATE reservations
	          SET status = 'AVAILABLE', stock_id = $2, available_on = $3, updated_on = $3
	          WHERE id = (
	              SELECT id FROM reservations
	              WHERE book_id = $1 AND status = 'PENDING'
	              ORDER BY created_on ASC
	              LIMIT 1
	              FOR UPDATE SKIP LOCKED
	          )
	          RETURNING ` + reservationColumns
	res, err := scanReservation(q(ctx, r.db).QueryRowContext(ctx, query, bookID, stockID, availableOn))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return res, err
}

// CompleteAvailable fulfils the member's AVAILABLE reservation for the
// book. The status guard keeps the transition one-way; zero rows means
// the member held no promoted reservation.
func (r *reservationRepository) CompleteAvailable(ctx context.Context, memberID, bookID int32, now time.Time) (bool, error) {
	query := `UPDATE reservations
	          SET status = 'COMPLETED', updated_on = $3
	          WHERE member_id = $1 AND book_id = $2 AND status = 'AVAILABLE'`
	res, err := q(ctx, r.db).ExecContext(ctx, query, memberID, bookID, now)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected == 1, nil
}

func (r *reservationRepository) ListActiveByMember(ctx context.Context, memberID int32) ([]domain.Reservation, error) {
	query := `SELECT ` + reservationColumns + ` FROM reservations
	          WHERE member_id = $1 AND status IN ('PENDING', 'AVAILABLE')
	          ORDER BY created_on ASC`
	rows, err := q(ctx, r.db).QueryContext(ctx, query, memberID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectReservations(rows)
}

func (r *reservationRepository) ListPendingByBook(ctx context.Context, bookID int32) ([]domain.Reservation, error) {
	query := `SELECT ` + reservationColumns + ` FROM reservations
	          WHERE book_id = $1 AND status = 'PENDING'
	          ORDER BY created_on ASC`
	rows, err := q(ctx, r.db).QueryContext(ctx, query, bookID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectReservations(rows)
}

func (r *reservationRepository) UpdateStatus(ctx context.Context, id int32, status domain.ReservationStatus) (bool, error) {
	query := `UPDATE reservations SET status = $2, updated_on = $3 WHERE id = $1`
	res, err := q(ctx, r.db).ExecContext(ctx, query, id, status, time.Now())
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected == 1, nil
}

func (r *reservationRepository) Delete(ctx context.Context, id int32) (bool, error) {
	res, err := q(ctx, r.db).ExecContext(ctx, `DELETE FROM reservations WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected == 1, nil
}

func scanReservation(row *sql.Row) (*domain.Reservation, error) {
	res := &domain.Reservation{}
	var stockID sql.NullInt32
	var availableOn sql.NullTime
	err := row.Scan(&res.ID, &res.MemberID, &res.BookID, &res.Status, &stockID, &availableOn, &res.CreatedOn, &res.UpdatedOn)
	if err != nil {
		return nil, err
	}
	if stockID.Valid {
		res.StockID = &stockID.Int32
	}
	if availableOn.Valid {
		res.AvailableOn = &availableOn.Time
	}
	return res, nil
}

func collectReservations(rows *sql.Rows) ([]domain.Reservation, error) {
	var reservations []domain.Reservation
	for rows.Next() {
		var res domain.Reservation
		var stockID sql.NullInt32
		var availableOn sql.NullTime
		if err := rows.Scan(&res.ID, &res.MemberID, &res.BookID, &res.Status, &stockID, &availableOn, &res.CreatedOn, &res.UpdatedOn); err != nil {
			return nil, err
		}
		if stockID.Valid {
			res.StockID = &stockID.Int32
		}
		if availableOn.Valid {
			res.AvailableOn = &availableOn.Time
		}
		reservations = append(reservations, res)
	}
	return reservations, rows.Err()
}
