package repository

import (
	"context"
	"time"

	"librarium-backend/internal/domain"
)

// TxManager runs a function inside a single database transaction. Every
// repository call made with the context it passes to fn joins that
// transaction; an error from fn rolls the whole unit back.
type TxManager interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type MemberRepository interface {
	Create(ctx context.Context, member *domain.Member) error
	GetByID(ctx context.Context, id int32) (*domain.Member, error)
	Exists(ctx context.Context, id int32) (bool, error)
}

type BookRepository interface {
	Create(ctx context.Context, book *domain.Book) error
	GetByID(ctx context.Context, id int32) (*domain.Book, error)
	GetTitle(ctx context.Context, id int32) (string, error)
}

type StockRepository interface {
	Create(ctx context.Context, rec *domain.StockRecord) error
	GetByID(ctx context.Context, id int32) (*domain.StockRecord, error)
	// GetByBook returns (nil, nil) when the book has no inventory row at
	// all, which callers treat differently from quantity zero.
	GetByBook(ctx context.Context, bookID int32) (*domain.StockRecord, error)
	// DecrementIfAvailable atomically takes one copy and reports whether
	// it won; quantity never goes below zero and exactly one of two
	// concurrent callers on the last copy succeeds.
	DecrementIfAvailable(ctx context.Context, id int32, now time.Time) (bool, error)
	Increment(ctx context.Context, id int32, now time.Time) error
	// AdjustBy clamps the result at zero and returns the updated record.
	AdjustBy(ctx context.Context, id int32, delta int32, now time.Time) (*domain.StockRecord, error)
}

type LoanRepository interface {
	Create(ctx context.Context, loan *domain.Loan) error
	GetByID(ctx context.Context, id int32) (*domain.Loan, error)
	// MarkReturned sets the return date and fine only while the loan is
	// still active; it reports false when another caller already claimed
	// the return or the loan does not exist.
	MarkReturned(ctx context.Context, id int32, returnDate time.Time, fineCents int32) (bool, error)
	CountActiveByMember(ctx context.Context, memberID int32) (int32, error)
	List(ctx context.Context, page, pageSize int32) ([]domain.Loan, int32, error)
	ListByMember(ctx context.Context, memberID int32, page, pageSize int32) ([]domain.Loan, int32, error)
	UpdateDueDate(ctx context.Context, id int32, dueDate time.Time) (bool, error)
	Delete(ctx context.Context, id int32) (bool, error)
}

type ReservationRepository interface {
	Create(ctx context.Context, res *domain.Reservation) error
	GetByID(ctx context.Context, id int32) (*domain.Reservation, error)
	// HasActive reports whether the member already holds a PENDING or
	// AVAILABLE reservation for the book.
	HasActive(ctx context.Context, memberID, bookID int32) (bool, error)
	// ClaimEarliestPending atomically promotes the oldest PENDING
	// reservation for the book to AVAILABLE, assigning the stock record
	// and the availability time. It returns (nil, nil) when no pending
	// reservation exists; two concurrent callers never claim the same row.
	ClaimEarliestPending(ctx context.Context, bookID, stockID int32, availableOn time.Time) (*domain.Reservation, error)
	// CompleteAvailable closes the member's AVAILABLE reservation for the
	// book, reporting whether one was held. Checkout fulfils the
	// reservation this way.
	CompleteAvailable(ctx context.Context, memberID, bookID int32, now time.Time) (bool, error)
	ListActiveByMember(ctx context.Context, memberID int32) ([]domain.Reservation, error)
	ListPendingByBook(ctx context.Context, bookID int32) ([]domain.Reservation, error)
	UpdateStatus(ctx context.Context, id int32, status domain.ReservationStatus) (bool, error)
	Delete(ctx context.Context, id int32) (bool, error)
}

type HistoryRepository interface {
	Create(ctx context.Context, event *domain.HistoryEvent) error
	ListByMember(ctx context.Context, memberID int32, limit, offset int32) ([]domain.HistoryEvent, error)
}

type ActivityLogRepository interface {
	Create(ctx context.Context, entry *domain.ActivityLogEntry) error
}

type NotificationRepository interface {
	Create(ctx context.Context, note *domain.Notification) error
	List(ctx context.Context, memberID int32, limit, offset int32) ([]domain.Notification, int32, error)
	MarkAsRead(ctx context.Context, id, memberID int32) error
}
