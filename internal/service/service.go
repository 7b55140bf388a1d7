package service

import (
	"context"

	"librarium-backend/internal/domain"
)

// Policy carries the lending constants, sourced from configuration.
type Policy struct {
	MaxActiveLoansPerMember int32
	LoanPeriodDays          int32
	LateFeePerDayCents      int32
}

type LoanService interface {
	// CreateLoan checks a copy out to a member. It fails with
	// domain.ErrNotFound when the member is unknown, ErrPolicyViolation
	// when the member is at the active-loan limit, and ErrUnavailable
	// when the book has no stock record or no copy left.
	CreateLoan(ctx context.Context, memberID, bookID int32) (*domain.Loan, error)
	// ReturnLoan closes an active loan, computes the late fee, restores
	// the copy to stock and promotes the earliest pending reservation if
	// one exists. The returned bool reports whether a reservation was
	// promoted and its holder notified.
	ReturnLoan(ctx context.Context, loanID int32) (*domain.Loan, bool, error)
	GetLoan(ctx context.Context, loanID int32) (*domain.Loan, error)
	ListLoans(ctx context.Context, memberID int32, page, pageSize int32) ([]domain.Loan, int32, error)
	UpdateDueDate(ctx context.Context, loanID int32, dueDate string) (*domain.Loan, error)
	DeleteLoan(ctx context.Context, loanID int32) error
}

type ReservationService interface {
	// CreateReservation joins the FIFO queue for a book. The acting
	// member may only reserve for themselves. Current stock level is not
	// a precondition; a reservation is a place in a future-fulfillment
	// queue.
	CreateReservation(ctx context.Context, actingMemberID, memberID, bookID int32) (*domain.Reservation, error)
	ListForMember(ctx context.Context, memberID int32) ([]domain.Reservation, error)
	ListPendingForBook(ctx context.Context, bookID int32) ([]domain.Reservation, error)
	GetReservation(ctx context.Context, id int32) (*domain.Reservation, error)
	UpdateStatus(ctx context.Context, id int32, status domain.ReservationStatus) (*domain.Reservation, error)
	DeleteReservation(ctx context.Context, id int32) error
}

type StockService interface {
	CreateStock(ctx context.Context, bookID, quantity int32) (*domain.StockRecord, error)
	GetByBook(ctx context.Context, bookID int32) (*domain.StockRecord, error)
	Increase(ctx context.Context, stockID int32) (*domain.StockRecord, error)
	// Decrease clamps at zero rather than erroring; the checkout path in
	// LoanService uses the conditional decrement instead.
	Decrease(ctx context.Context, stockID int32) (*domain.StockRecord, error)
	AdjustBy(ctx context.Context, stockID int32, delta int32) (*domain.StockRecord, error)
}

type NotificationService interface {
	GetNotifications(ctx context.Context, memberID int32, page, pageSize int32) ([]domain.Notification, int32, error)
	MarkAsRead(ctx context.Context, memberID, notificationID int32) error
}

// NotificationGateway delivers a message to a member over an external
// channel. Calls are awaited; a delivery failure is returned to the
// caller, never swallowed.
type NotificationGateway interface {
	NotifyUser(ctx context.Context, memberID int32, subject, message string) error
}
