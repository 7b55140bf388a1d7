package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"librarium-backend/internal/repository"

	_ "github.com/lib/pq"
)

// querier is satisfied by both *sql.DB and *sql.Tx so every repository
// method can run standalone or inside a transaction started by WithinTx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type txKey struct{}

func q(ctx context.Context, db *sql.DB) querier {
	if tx, ok := ctx.Value(txKey{}).(*sql.Tx); ok {
		return tx
	}
	return db
}

type Store struct {
	db *sql.DB
	repository.MemberRepository
	repository.BookRepository
	repository.StockRepository
	repository.LoanRepository
	repository.ReservationRepository
	repository.HistoryRepository
	repository.ActivityLogRepository
	repository.NotificationRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                     db,
		MemberRepository:       NewMemberRepository(db),
		BookRepository:         NewBookRepository(db),
		StockRepository:        NewStockRepository(db),
		LoanRepository:         NewLoanRepository(db),
		ReservationRepository:  NewReservationRepository(db),
		HistoryRepository:      NewHistoryRepository(db),
		ActivityLogRepository:  NewActivityLogRepository(db),
		NotificationRepository: NewNotificationRepository(db),
	}
}

// WithinTx implements repository.TxManager. The transaction handle rides
// in the context, so repositories join it without signature changes.
func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	if err := fn(context.WithValue(ctx, txKey{}, tx)); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("rollback after %v: %w", err, rbErr)
		}
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
