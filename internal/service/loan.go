package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"librarium-backend/internal/clock"
	"librarium-backend/internal/domain"
	"librarium-backend/internal/repository"
	"librarium-backend/internal/utils"
)

type loanService struct {
	txm          repository.TxManager
	loanRepo     repository.LoanRepository
	memberRepo   repository.MemberRepository
	bookRepo     repository.BookRepository
	stockRepo    repository.StockRepository
	resRepo      repository.ReservationRepository
	historyRepo  repository.HistoryRepository
	activityRepo repository.ActivityLogRepository
	noteRepo     repository.NotificationRepository
	gateway      NotificationGateway
	clock        clock.Clock
	policy       Policy
}

func NewLoanService(
	txm repository.TxManager,
	loanRepo repository.LoanRepository,
	memberRepo repository.MemberRepository,
	bookRepo repository.BookRepository,
	stockRepo repository.StockRepository,
	resRepo repository.ReservationRepository,
	historyRepo repository.HistoryRepository,
	activityRepo repository.ActivityLogRepository,
	noteRepo repository.NotificationRepository,
	gateway NotificationGateway,
	clk clock.Clock,
	policy Policy,
) LoanService {
	return &loanService{
		txm:          txm,
		loanRepo:     loanRepo,
		memberRepo:   memberRepo,
		bookRepo:     bookRepo,
		stockRepo:    stockRepo,
		resRepo:      resRepo,
		historyRepo:  historyRepo,
		activityRepo: activityRepo,
		noteRepo:     noteRepo,
		gateway:      gateway,
		clock:        clk,
		policy:       policy,
	}
}

func (s *loanService) CreateLoan(ctx context.Context, memberID, bookID int32) (*domain.Loan, error) {
	var loan *domain.Loan
	err := s.txm.WithinTx(ctx, func(ctx context.Context) error {
		exists, err := s.memberRepo.Exists(ctx, memberID)
		if err != nil {
			return fmt.Errorf("look up member %d: %w", memberID, err)
		}
		if !exists {
			return fmt.Errorf("member %d: %w", memberID, domain.ErrNotFound)
		}

		active, err := s.loanRepo.CountActiveByMember(ctx, memberID)
		if err != nil {
			return fmt.Errorf("count active loans for member %d: %w", memberID, err)
		}
		if active >= s.policy.MaxActiveLoansPerMember {
			return fmt.Errorf("member %d already has %d active loans: %w",
				memberID, active, domain.ErrPolicyViolation)
		}

		stock, err := s.stockRepo.GetByBook(ctx, bookID)
		if err != nil {
			return fmt.Errorf("load stock for book %d: %w", bookID, err)
		}
		if stock == nil {
			return fmt.Errorf("book %d has no stock record: %w", bookID, domain.ErrUnavailable)
		}

		now := s.clock.Now()

		// Conditional decrement: of two concurrent checkouts racing for
		// the last copy, exactly one passes this point.
		won, err := s.stockRepo.DecrementIfAvailable(ctx, stock.ID, now)
		if err != nil {
			return fmt.Errorf("decrement stock for book %d: %w", bookID, err)
		}
		if !won {
			return fmt.Errorf("book %d has no copies left: %w", bookID, domain.ErrUnavailable)
		}

		loan = &domain.Loan{
			MemberID:     memberID,
			BookID:       bookID,
			StockID:      stock.ID,
			CheckoutDate: now,
			DueDate:      now.AddDate(0, 0, int(s.policy.LoanPeriodDays)),
			FineCents:    0,
		}
		if err := s.loanRepo.Create(ctx, loan); err != nil {
			return fmt.Errorf("create loan: %w", err)
		}

		// Checking the book out fulfils a promoted reservation the member
		// holds for it; without this the AVAILABLE row would linger until
		// the expiry job cancelled it.
		if _, err := s.resRepo.CompleteAvailable(ctx, memberID, bookID, now); err != nil {
			return fmt.Errorf("complete reservation for book %d: %w", bookID, err)
		}

		if err := s.recordEvent(ctx, memberID, domain.HistoryEventLoan, &loan.ID, nil, now); err != nil {
			return err
		}
		return s.logActivity(ctx, memberID, "CreateLoan",
			fmt.Sprintf("checked out book %d, due %s", bookID, loan.DueDate.Format("2006-01-02")), now)
	})
	if err != nil {
		return nil, err
	}
	return loan, nil
}

func (s *loanService) ReturnLoan(ctx context.Context, loanID int32) (*domain.Loan, bool, error) {
	var returned *domain.Loan
	var reservationNotified bool
	err := s.txm.WithinTx(ctx, func(ctx context.Context) error {
		loan, err := s.loanRepo.GetByID(ctx, loanID)
		if err != nil {
			return fmt.Errorf("loan %d: %w", loanID, err)
		}

		now := s.clock.Now()
		fine := utils.LateFee(now, loan.DueDate, s.policy.LateFeePerDayCents)

		// Claiming via the conditional update makes a second ReturnLoan on
		// the same id, concurrent or not, report NotFound.
		claimed, err := s.loanRepo.MarkReturned(ctx, loanID, now, fine)
		if err != nil {
			return fmt.Errorf("mark loan %d returned: %w", loanID, err)
		}
		if !claimed {
			return fmt.Errorf("loan %d is not active: %w", loanID, domain.ErrNotFound)
		}

		if err := s.stockRepo.Increment(ctx, loan.StockID, now); err != nil {
			return fmt.Errorf("restore stock %d: %w", loan.StockID, err)
		}

		res, err := s.resRepo.ClaimEarliestPending(ctx, loan.BookID, loan.StockID, now)
		if err != nil {
			return fmt.Errorf("claim pending reservation for book %d: %w", loan.BookID, err)
		}
		if res != nil {
			title, err := s.bookRepo.GetTitle(ctx, loan.BookID)
			if err != nil {
				return fmt.Errorf("book %d: %w", loan.BookID, err)
			}
			message := fmt.Sprintf("%q is now available. Your reservation is ready for pickup.", title)
			if err := s.gateway.NotifyUser(ctx, res.MemberID, "Reservation Ready", message); err != nil {
				return fmt.Errorf("notify member %d: %w", res.MemberID, err)
			}
			note := &domain.Notification{
				MemberID: res.MemberID,
				Title:    "Reservation Ready",
				Message:  message,
				Attributes: map[string]string{
					"type":           "RESERVATION_AVAILABLE",
					"reservation_id": fmt.Sprintf("%d", res.ID),
				},
			}
			if err := s.noteRepo.Create(ctx, note); err != nil {
				return fmt.Errorf("record notification: %w", err)
			}
			reservationNotified = true
		}

		if err := s.recordEvent(ctx, loan.MemberID, domain.HistoryEventReturn, &loan.ID, nil, now); err != nil {
			return err
		}
		if err := s.logActivity(ctx, loan.MemberID, "ReturnLoan",
			fmt.Sprintf("returned book %d, fine %d cents", loan.BookID, fine), now); err != nil {
			return err
		}

		out := *loan
		out.ReturnDate = &now
		out.FineCents = fine
		out.UpdatedOn = now.Format(time.RFC3339)
		returned = &out
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	return returned, reservationNotified, nil
}

func (s *loanService) GetLoan(ctx context.Context, loanID int32) (*domain.Loan, error) {
	loan, err := s.loanRepo.GetByID(ctx, loanID)
	if err != nil {
		return nil, fmt.Errorf("loan %d: %w", loanID, err)
	}
	return loan, nil
}

func (s *loanService) ListLoans(ctx context.Context, memberID int32, page, pageSize int32) ([]domain.Loan, int32, error) {
	if memberID == 0 {
		return s.loanRepo.List(ctx, page, pageSize)
	}
	return s.loanRepo.ListByMember(ctx, memberID, page, pageSize)
}

func (s *loanService) UpdateDueDate(ctx context.Context, loanID int32, dueDate string) (*domain.Loan, error) {
	due, err := time.Parse("2006-01-02", dueDate)
	if err != nil {
		return nil, fmt.Errorf("invalid due date %q: %w", dueDate, err)
	}
	updated, err := s.loanRepo.UpdateDueDate(ctx, loanID, due)
	if err != nil {
		return nil, fmt.Errorf("update due date for loan %d: %w", loanID, err)
	}
	if !updated {
		return nil, fmt.Errorf("loan %d: %w", loanID, domain.ErrNotFound)
	}
	return s.loanRepo.GetByID(ctx, loanID)
}

func (s *loanService) DeleteLoan(ctx context.Context, loanID int32) error {
	deleted, err := s.loanRepo.Delete(ctx, loanID)
	if err != nil {
		return fmt.Errorf("delete loan %d: %w", loanID, err)
	}
	if !deleted {
		return fmt.Errorf("loan %d: %w", loanID, domain.ErrNotFound)
	}
	return nil
}

func (s *loanService) recordEvent(ctx context.Context, memberID int32, eventType domain.HistoryEventType, loanID, reservationID *int32, now time.Time) error {
	event := &domain.HistoryEvent{
		MemberID:      memberID,
		EventType:     eventType,
		LoanID:        loanID,
		ReservationID: reservationID,
		CreatedOn:     now,
	}
	if err := s.historyRepo.Create(ctx, event); err != nil {
		return fmt.Errorf("record %s event: %w", eventType, err)
	}
	return nil
}

func (s *loanService) logActivity(ctx context.Context, memberID int32, action, detail string, now time.Time) error {
	entry := &domain.ActivityLogEntry{
		ID:        uuid.NewString(),
		MemberID:  memberID,
		Action:    action,
		Detail:    detail,
		CreatedOn: now,
	}
	if err := s.activityRepo.Create(ctx, entry); err != nil {
		return fmt.Errorf("log activity: %w", err)
	}
	return nil
}
