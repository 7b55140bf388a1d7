package service_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"librarium-backend/internal/domain"
)

// MockTxManager runs the unit of work inline; the error from fn is the
// error of the transaction, which is exactly what the real manager does
// minus the database.
type MockTxManager struct{}

func (m *MockTxManager) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// MockMemberRepo
type MockMemberRepo struct {
	mock.Mock
}

func (m *MockMemberRepo) Create(ctx context.Context, member *domain.Member) error {
	args := m.Called(ctx, member)
	return args.Error(0)
}
func (m *MockMemberRepo) GetByID(ctx context.Context, id int32) (*domain.Member, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Member), args.Error(1)
}
func (m *MockMemberRepo) Exists(ctx context.Context, id int32) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

// MockBookRepo
type MockBookRepo struct {
	mock.Mock
}

func (m *MockBookRepo) Create(ctx context.Context, book *domain.Book) error {
	args := m.Called(ctx, book)
	return args.Error(0)
}
func (m *MockBookRepo) GetByID(ctx context.Context, id int32) (*domain.Book, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Book), args.Error(1)
}
func (m *MockBookRepo) GetTitle(ctx context.Context, id int32) (string, error) {
	args := m.Called(ctx, id)
	return args.String(0), args.Error(1)
}

// MockStockRepo
type MockStockRepo struct {
	mock.Mock
}

func (m *MockStockRepo) Create(ctx context.Context, rec *domain.StockRecord) error {
	args := m.Called(ctx, rec)
	return args.Error(0)
}
func (m *MockStockRepo) GetByID(ctx context.Context, id int32) (*domain.StockRecord, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.StockRecord), args.Error(1)
}
func (m *MockStockRepo) GetByBook(ctx context.Context, bookID int32) (*domain.StockRecord, error) {
	args := m.Called(ctx, bookID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.StockRecord), args.Error(1)
}
func (m *MockStockRepo) DecrementIfAvailable(ctx context.Context, id int32, now time.Time) (bool, error) {
	args := m.Called(ctx, id, now)
	return args.Bool(0), args.Error(1)
}
func (m *MockStockRepo) Increment(ctx context.Context, id int32, now time.Time) error {
	args := m.Called(ctx, id, now)
	return args.Error(0)
}
func (m *MockStockRepo) AdjustBy(ctx context.Context, id int32, delta int32, now time.Time) (*domain.StockRecord, error) {
	args := m.Called(ctx, id, delta, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.StockRecord), args.Error(1)
}

// MockLoanRepo
type MockLoanRepo struct {
	mock.Mock
}

func (m *MockLoanRepo) Create(ctx context.Context, loan *domain.Loan) error {
	args := m.Called(ctx, loan)
	return args.Error(0)
}
func (m *MockLoanRepo) GetByID(ctx context.Context, id int32) (*domain.Loan, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Loan), args.Error(1)
}
func (m *MockLoanRepo) MarkReturned(ctx context.Context, id int32, returnDate time.Time, fineCents int32) (bool, error) {
	args := m.Called(ctx, id, returnDate, fineCents)
	return args.Bool(0), args.Error(1)
}
func (m *MockLoanRepo) CountActiveByMember(ctx context.Context, memberID int32) (int32, error) {
	args := m.Called(ctx, memberID)
	return args.Get(0).(int32), args.Error(1)
}
func (m *MockLoanRepo) List(ctx context.Context, page, pageSize int32) ([]domain.Loan, int32, error) {
	args := m.Called(ctx, page, pageSize)
	return args.Get(0).([]domain.Loan), args.Get(1).(int32), args.Error(2)
}
func (m *MockLoanRepo) ListByMember(ctx context.Context, memberID int32, page, pageSize int32) ([]domain.Loan, int32, error) {
	args := m.Called(ctx, memberID, page, pageSize)
	return args.Get(0).([]domain.Loan), args.Get(1).(int32), args.Error(2)
}
func (m *MockLoanRepo) UpdateDueDate(ctx context.Context, id int32, dueDate time.Time) (bool, error) {
	args := m.Called(ctx, id, dueDate)
	return args.Bool(0), args.Error(1)
}
func (m *MockLoanRepo) Delete(ctx context.Context, id int32) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

// MockReservationRepo
type MockReservationRepo struct {
	mock.Mock
}

func (m *MockReservationRepo) Create(ctx context.Context, res *domain.Reservation) error {
	args := m.Called(ctx, res)
	return args.Error(0)
}
func (m *MockReservationRepo) GetByID(ctx context.Context, id int32) (*domain.Reservation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Reservation), args.Error(1)
}
func (m *MockReservationRepo) HasActive(ctx context.Context, memberID, bookID int32) (bool, error) {
	args := m.Called(ctx, memberID, bookID)
	return args.Bool(0), args.Error(1)
}
func (m *MockReservationRepo) ClaimEarliestPending(ctx context.Context, bookID, stockID int32, availableOn time.Time) (*domain.Reservation, error) {
	args := m.Called(ctx, bookID, stockID, availableOn)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Reservation), args.Error(1)
}
func (m *MockReservationRepo) CompleteAvailable(ctx context.Context, memberID, bookID int32, now time.Time) (bool, error) {
	args := m.Called(ctx, memberID, bookID, now)
	return args.Bool(0), args.Error(1)
}
func (m *MockReservationRepo) ListActiveByMember(ctx context.Context, memberID int32) ([]domain.Reservation, error) {
	args := m.Called(ctx, memberID)
	return args.Get(0).([]domain.Reservation), args.Error(1)
}
func (m *MockReservationRepo) ListPendingByBook(ctx context.Context, bookID int32) ([]domain.Reservation, error) {
	args := m.Called(ctx, bookID)
	return args.Get(0).([]domain.Reservation), args.Error(1)
}
func (m *MockReservationRepo) UpdateStatus(ctx context.Context, id int32, status domain.ReservationStatus) (bool, error) {
	args := m.Called(ctx, id, status)
	return args.Bool(0), args.Error(1)
}
func (m *MockReservationRepo) Delete(ctx context.Context, id int32) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

// MockHistoryRepo
type MockHistoryRepo struct {
	mock.Mock
}

func (m *MockHistoryRepo) Create(ctx context.Context, event *domain.HistoryEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}
func (m *MockHistoryRepo) ListByMember(ctx context.Context, memberID int32, limit, offset int32) ([]domain.HistoryEvent, error) {
	args := m.Called(ctx, memberID, limit, offset)
	return args.Get(0).([]domain.HistoryEvent), args.Error(1)
}

// MockActivityLogRepo
type MockActivityLogRepo struct {
	mock.Mock
}

func (m *MockActivityLogRepo) Create(ctx context.Context, entry *domain.ActivityLogEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

// MockNotificationRepo
type MockNotificationRepo struct {
	mock.Mock
}

func (m *MockNotificationRepo) Create(ctx context.Context, note *domain.Notification) error {
	args := m.Called(ctx, note)
	return args.Error(0)
}
func (m *MockNotificationRepo) List(ctx context.Context, memberID int32, limit, offset int32) ([]domain.Notification, int32, error) {
	args := m.Called(ctx, memberID, limit, offset)
	return args.Get(0).([]domain.Notification), args.Get(1).(int32), args.Error(2)
}
func (m *MockNotificationRepo) MarkAsRead(ctx context.Context, id, memberID int32) error {
	args := m.Called(ctx, id, memberID)
	return args.Error(0)
}

// MockNotificationGateway
type MockNotificationGateway struct {
	mock.Mock
}

func (m *MockNotificationGateway) NotifyUser(ctx context.Context, memberID int32, subject, message string) error {
	args := m.Called(ctx, memberID, subject, message)
	return args.Error(0)
}
