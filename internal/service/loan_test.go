package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"librarium-backend/internal/clock"
	"librarium-backend/internal/domain"
	"librarium-backend/internal/service"
)

var testPolicy = service.Policy{
	MaxActiveLoansPerMember: 5,
	LoanPeriodDays:          14,
	LateFeePerDayCents:      50,
}

type loanFixture struct {
	loanRepo     *MockLoanRepo
	memberRepo   *MockMemberRepo
	bookRepo     *MockBookRepo
	stockRepo    *MockStockRepo
	resRepo      *MockReservationRepo
	historyRepo  *MockHistoryRepo
	activityRepo *MockActivityLogRepo
	noteRepo     *MockNotificationRepo
	gateway      *MockNotificationGateway
	svc          service.LoanService
}

func newLoanFixture(clk clock.Clock) *loanFixture {
	f := &loanFixture{
		loanRepo:     new(MockLoanRepo),
		memberRepo:   new(MockMemberRepo),
		bookRepo:     new(MockBookRepo),
		stockRepo:    new(MockStockRepo),
		resRepo:      new(MockReservationRepo),
		historyRepo:  new(MockHistoryRepo),
		activityRepo: new(MockActivityLogRepo),
		noteRepo:     new(MockNotificationRepo),
		gateway:      new(MockNotificationGateway),
	}
	f.svc = service.NewLoanService(
		&MockTxManager{},
		f.loanRepo, f.memberRepo, f.bookRepo, f.stockRepo, f.resRepo,
		f.historyRepo, f.activityRepo, f.noteRepo, f.gateway,
		clk, testPolicy,
	)
	return f
}

func TestLoanService_CreateLoan(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	memberID := int32(1)
	bookID := int32(7)

	t.Run("Success", func(t *testing.T) {
		f := newLoanFixture(clock.Fixed(now))
		f.memberRepo.On("Exists", ctx, memberID).Return(true, nil)
		f.loanRepo.On("CountActiveByMember", ctx, memberID).Return(int32(2), nil)
		f.stockRepo.On("GetByBook", ctx, bookID).Return(&domain.StockRecord{ID: 3, BookID: bookID, Quantity: 1}, nil)
		f.stockRepo.On("DecrementIfAvailable", ctx, int32(3), now).Return(true, nil)
		f.loanRepo.On("Create", ctx, mock.AnythingOfType("*domain.Loan")).Return(nil)
		f.resRepo.On("CompleteAvailable", ctx, memberID, bookID, now).Return(false, nil)
		f.historyRepo.On("Create", ctx, mock.AnythingOfType("*domain.HistoryEvent")).Return(nil)
		f.activityRepo.On("Create", ctx, mock.AnythingOfType("*domain.ActivityLogEntry")).Return(nil)

		loan, err := f.svc.CreateLoan(ctx, memberID, bookID)
		assert.NoError(t, err)
		assert.NotNil(t, loan)
		assert.Equal(t, memberID, loan.MemberID)
		assert.Equal(t, bookID, loan.BookID)
		assert.Equal(t, now, loan.CheckoutDate)
		assert.Equal(t, now.AddDate(0, 0, 14), loan.DueDate)
		assert.True(t, loan.Active())
	})

	t.Run("Completes Held Reservation", func(t *testing.T) {
		f := newLoanFixture(clock.Fixed(now))
		f.memberRepo.On("Exists", ctx, memberID).Return(true, nil)
		f.loanRepo.On("CountActiveByMember", ctx, memberID).Return(int32(0), nil)
		f.stockRepo.On("GetByBook", ctx, bookID).Return(&domain.StockRecord{ID: 3, BookID: bookID, Quantity: 1}, nil)
		f.stockRepo.On("DecrementIfAvailable", ctx, int32(3), now).Return(true, nil)
		f.loanRepo.On("Create", ctx, mock.AnythingOfType("*domain.Loan")).Return(nil)
		f.resRepo.On("CompleteAvailable", ctx, memberID, bookID, now).Return(true, nil)
		f.historyRepo.On("Create", ctx, mock.AnythingOfType("*domain.HistoryEvent")).Return(nil)
		f.activityRepo.On("Create", ctx, mock.AnythingOfType("*domain.ActivityLogEntry")).Return(nil)

		loan, err := f.svc.CreateLoan(ctx, memberID, bookID)
		assert.NoError(t, err)
		assert.NotNil(t, loan)
		f.resRepo.AssertCalled(t, "CompleteAvailable", ctx, memberID, bookID, now)
	})

	t.Run("Reservation Completion Failure Aborts Checkout", func(t *testing.T) {
		f := newLoanFixture(clock.Fixed(now))
		f.memberRepo.On("Exists", ctx, memberID).Return(true, nil)
		f.loanRepo.On("CountActiveByMember", ctx, memberID).Return(int32(0), nil)
		f.stockRepo.On("GetByBook", ctx, bookID).Return(&domain.StockRecord{ID: 3, BookID: bookID, Quantity: 1}, nil)
		f.stockRepo.On("DecrementIfAvailable", ctx, int32(3), now).Return(true, nil)
		f.loanRepo.On("Create", ctx, mock.AnythingOfType("*domain.Loan")).Return(nil)
		updateErr := errors.New("connection reset")
		f.resRepo.On("CompleteAvailable", ctx, memberID, bookID, now).Return(false, updateErr)

		loan, err := f.svc.CreateLoan(ctx, memberID, bookID)
		assert.Nil(t, loan)
		assert.ErrorIs(t, err, updateErr)
		f.historyRepo.AssertNotCalled(t, "Create", ctx, mock.Anything)
	})

	t.Run("Unknown Member", func(t *testing.T) {
		f := newLoanFixture(clock.Fixed(now))
		f.memberRepo.On("Exists", ctx, memberID).Return(false, nil)

		loan, err := f.svc.CreateLoan(ctx, memberID, bookID)
		assert.Nil(t, loan)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("At Loan Limit", func(t *testing.T) {
		f := newLoanFixture(clock.Fixed(now))
		f.memberRepo.On("Exists", ctx, memberID).Return(true, nil)
		f.loanRepo.On("CountActiveByMember", ctx, memberID).Return(int32(5), nil)

		loan, err := f.svc.CreateLoan(ctx, memberID, bookID)
		assert.Nil(t, loan)
		assert.ErrorIs(t, err, domain.ErrPolicyViolation)
		f.stockRepo.AssertNotCalled(t, "DecrementIfAvailable", ctx, mock.Anything)
	})

	t.Run("No Stock Record", func(t *testing.T) {
		f := newLoanFixture(clock.Fixed(now))
		f.memberRepo.On("Exists", ctx, memberID).Return(true, nil)
		f.loanRepo.On("CountActiveByMember", ctx, memberID).Return(int32(0), nil)
		f.stockRepo.On("GetByBook", ctx, bookID).Return(nil, nil)

		loan, err := f.svc.CreateLoan(ctx, memberID, bookID)
		assert.Nil(t, loan)
		assert.ErrorIs(t, err, domain.ErrUnavailable)
	})

	t.Run("No Copies Left", func(t *testing.T) {
		f := newLoanFixture(clock.Fixed(now))
		f.memberRepo.On("Exists", ctx, memberID).Return(true, nil)
		f.loanRepo.On("CountActiveByMember", ctx, memberID).Return(int32(0), nil)
		f.stockRepo.On("GetByBook", ctx, bookID).Return(&domain.StockRecord{ID: 3, BookID: bookID, Quantity: 0}, nil)
		f.stockRepo.On("DecrementIfAvailable", ctx, int32(3), now).Return(false, nil)

		loan, err := f.svc.CreateLoan(ctx, memberID, bookID)
		assert.Nil(t, loan)
		assert.ErrorIs(t, err, domain.ErrUnavailable)
		f.loanRepo.AssertNotCalled(t, "Create", ctx, mock.Anything)
		f.resRepo.AssertNotCalled(t, "CompleteAvailable", ctx, memberID, bookID, now)
	})
}

func TestLoanService_ReturnLoan(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	loanID := int32(42)

	activeLoan := func(due time.Time) *domain.Loan {
		return &domain.Loan{
			ID:           loanID,
			MemberID:     1,
			BookID:       7,
			StockID:      3,
			CheckoutDate: due.AddDate(0, 0, -14),
			DueDate:      due,
		}
	}

	t.Run("On Time No Fine", func(t *testing.T) {
		f := newLoanFixture(clock.Fixed(now))
		f.loanRepo.On("GetByID", ctx, loanID).Return(activeLoan(now.AddDate(0, 0, 2)), nil)
		f.loanRepo.On("MarkReturned", ctx, loanID, now, int32(0)).Return(true, nil)
		f.stockRepo.On("Increment", ctx, int32(3), now).Return(nil)
		f.resRepo.On("ClaimEarliestPending", ctx, int32(7), int32(3), now).Return(nil, nil)
		f.historyRepo.On("Create", ctx, mock.AnythingOfType("*domain.HistoryEvent")).Return(nil)
		f.activityRepo.On("Create", ctx, mock.AnythingOfType("*domain.ActivityLogEntry")).Return(nil)

		loan, notified, err := f.svc.ReturnLoan(ctx, loanID)
		assert.NoError(t, err)
		assert.False(t, notified)
		assert.Equal(t, int32(0), loan.FineCents)
		assert.NotNil(t, loan.ReturnDate)
		assert.Equal(t, now.Format(time.RFC3339), loan.UpdatedOn)
		f.gateway.AssertNotCalled(t, "NotifyUser", ctx, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Five Days Late", func(t *testing.T) {
		f := newLoanFixture(clock.Fixed(now))
		due := now.AddDate(0, 0, -5)
		f.loanRepo.On("GetByID", ctx, loanID).Return(activeLoan(due), nil)
		f.loanRepo.On("MarkReturned", ctx, loanID, now, int32(250)).Return(true, nil)
		f.stockRepo.On("Increment", ctx, int32(3), now).Return(nil)
		f.resRepo.On("ClaimEarliestPending", ctx, int32(7), int32(3), now).Return(nil, nil)
		f.historyRepo.On("Create", ctx, mock.AnythingOfType("*domain.HistoryEvent")).Return(nil)
		f.activityRepo.On("Create", ctx, mock.AnythingOfType("*domain.ActivityLogEntry")).Return(nil)

		loan, _, err := f.svc.ReturnLoan(ctx, loanID)
		assert.NoError(t, err)
		assert.Equal(t, int32(250), loan.FineCents)
	})

	t.Run("Promotes Earliest Reservation", func(t *testing.T) {
		f := newLoanFixture(clock.Fixed(now))
		f.loanRepo.On("GetByID", ctx, loanID).Return(activeLoan(now.AddDate(0, 0, 2)), nil)
		f.loanRepo.On("MarkReturned", ctx, loanID, now, int32(0)).Return(true, nil)
		f.stockRepo.On("Increment", ctx, int32(3), now).Return(nil)
		res := &domain.Reservation{ID: 9, MemberID: 5, BookID: 7, Status: domain.ReservationStatusAvailable}
		f.resRepo.On("ClaimEarliestPending", ctx, int32(7), int32(3), now).Return(res, nil)
		f.bookRepo.On("GetTitle", ctx, int32(7)).Return("The Go Programming Language", nil)
		f.gateway.On("NotifyUser", ctx, int32(5), "Reservation Ready",
			`"The Go Programming Language" is now available. Your reservation is ready for pickup.`).Return(nil)
		f.noteRepo.On("Create", ctx, mock.AnythingOfType("*domain.Notification")).Return(nil)
		f.historyRepo.On("Create", ctx, mock.AnythingOfType("*domain.HistoryEvent")).Return(nil)
		f.activityRepo.On("Create", ctx, mock.AnythingOfType("*domain.ActivityLogEntry")).Return(nil)

		_, notified, err := f.svc.ReturnLoan(ctx, loanID)
		assert.NoError(t, err)
		assert.True(t, notified)
		f.gateway.AssertExpectations(t)
	})

	t.Run("Notification Failure Fails The Return", func(t *testing.T) {
		f := newLoanFixture(clock.Fixed(now))
		f.loanRepo.On("GetByID", ctx, loanID).Return(activeLoan(now.AddDate(0, 0, 2)), nil)
		f.loanRepo.On("MarkReturned", ctx, loanID, now, int32(0)).Return(true, nil)
		f.stockRepo.On("Increment", ctx, int32(3), now).Return(nil)
		res := &domain.Reservation{ID: 9, MemberID: 5, BookID: 7, Status: domain.ReservationStatusAvailable}
		f.resRepo.On("ClaimEarliestPending", ctx, int32(7), int32(3), now).Return(res, nil)
		f.bookRepo.On("GetTitle", ctx, int32(7)).Return("The Go Programming Language", nil)
		sendErr := errors.New("smtp: connection refused")
		f.gateway.On("NotifyUser", ctx, int32(5), "Reservation Ready", mock.Anything).Return(sendErr)

		loan, notified, err := f.svc.ReturnLoan(ctx, loanID)
		assert.Nil(t, loan)
		assert.False(t, notified)
		assert.ErrorIs(t, err, sendErr)
		f.noteRepo.AssertNotCalled(t, "Create", ctx, mock.Anything)
	})

	t.Run("Already Returned", func(t *testing.T) {
		f := newLoanFixture(clock.Fixed(now))
		f.loanRepo.On("GetByID", ctx, loanID).Return(activeLoan(now.AddDate(0, 0, 2)), nil)
		f.loanRepo.On("MarkReturned", ctx, loanID, now, int32(0)).Return(false, nil)

		loan, _, err := f.svc.ReturnLoan(ctx, loanID)
		assert.Nil(t, loan)
		assert.ErrorIs(t, err, domain.ErrNotFound)
		f.stockRepo.AssertNotCalled(t, "Increment", ctx, mock.Anything, mock.Anything)
	})

	t.Run("Unknown Loan", func(t *testing.T) {
		f := newLoanFixture(clock.Fixed(now))
		f.loanRepo.On("GetByID", ctx, loanID).Return(nil, domain.ErrNotFound)

		loan, _, err := f.svc.ReturnLoan(ctx, loanID)
		assert.Nil(t, loan)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestLoanService_UpdateDueDate(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	t.Run("Invalid Date", func(t *testing.T) {
		f := newLoanFixture(clock.Fixed(now))
		loan, err := f.svc.UpdateDueDate(ctx, 1, "next tuesday")
		assert.Nil(t, loan)
		assert.Error(t, err)
	})

	t.Run("Unknown Loan", func(t *testing.T) {
		f := newLoanFixture(clock.Fixed(now))
		due := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)
		f.loanRepo.On("UpdateDueDate", ctx, int32(1), due).Return(false, nil)

		loan, err := f.svc.UpdateDueDate(ctx, 1, "2025-04-01")
		assert.Nil(t, loan)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}
