package postgres

import (
	"context"
	"database/sql"

	"librarium-backend/internal/domain"
	"librarium-backend/internal/repository"
)

type historyRepository struct {
	db *sql.DB
}

func NewHistoryRepository(db *sql.DB) repository.HistoryRepository {
	return &historyRepository{db: db}
}

func (r *historyRepository) Create(ctx context.Context, e *domain.HistoryEvent) error {
	query := `INSERT INTO history_events (member_id, event_type, loan_id, reservation_id, created_on)
	          VALUES ($1, $2, $3, $4, $5) RETURNING id`
	return q(ctx, r.db).QueryRowContext(ctx, query,
		e.MemberID, e.EventType, e.LoanID, e.ReservationID, e.CreatedOn).Scan(&e.ID)
}

func (r *historyRepository) ListByMember(ctx context.Context, memberID int32, limit, offset int32) ([]domain.HistoryEvent, error) {
	query := `SELECT id, member_id, event_type, loan_id, reservation_id, created_on
	          FROM history_events WHERE member_id = $1
	          ORDER BY created_on DESC LIMIT $2 OFFSET $3`
	rows, err := q(ctx, r.db).QueryContext(ctx, query, memberID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []domain.HistoryEvent
	for rows.Next() {
		var e domain.HistoryEvent
		var loanID, reservationID sql.NullInt32
		if err := rows.Scan(&e.ID, &e.MemberID, &e.EventType, &loanID, &reservationID, &e.CreatedOn); err != nil {
			return nil, err
		}
		if loanID.Valid {
			e.LoanID = &loanID.Int32
		}
		if reservationID.Valid {
			e.ReservationID = &reservationID.Int32
		}
		events = append(events, e)
	}
	return events, rows.Err()
}
