package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"librarium-backend/internal/clock"
	"librarium-backend/internal/domain"
	"librarium-backend/internal/repository"
)

type reservationService struct {
	txm          repository.TxManager
	resRepo      repository.ReservationRepository
	memberRepo   repository.MemberRepository
	activityRepo repository.ActivityLogRepository
	clock        clock.Clock
}

func NewReservationService(
	txm repository.TxManager,
	resRepo repository.ReservationRepository,
	memberRepo repository.MemberRepository,
	activityRepo repository.ActivityLogRepository,
	clk clock.Clock,
) ReservationService {
	return &reservationService{
		txm:          txm,
		resRepo:      resRepo,
		memberRepo:   memberRepo,
		activityRepo: activityRepo,
		clock:        clk,
	}
}

func (s *reservationService) CreateReservation(ctx context.Context, actingMemberID, memberID, bookID int32) (*domain.Reservation, error) {
	if actingMemberID != memberID {
		return nil, fmt.Errorf("member %d may not reserve for member %d: %w",
			actingMemberID, memberID, domain.ErrUnauthorized)
	}

	var res *domain.Reservation
	err := s.txm.WithinTx(ctx, func(ctx context.Context) error {
		exists, err := s.memberRepo.Exists(ctx, memberID)
		if err != nil {
			return fmt.Errorf("look up member %d: %w", memberID, err)
		}
		if !exists {
			return fmt.Errorf("member %d: %w", memberID, domain.ErrNotFound)
		}

		active, err := s.resRepo.HasActive(ctx, memberID, bookID)
		if err != nil {
			return fmt.Errorf("check active reservation: %w", err)
		}
		if active {
			return fmt.Errorf("member %d already holds a reservation for book %d: %w",
				memberID, bookID, domain.ErrConflict)
		}

		now := s.clock.Now()
		res = &domain.Reservation{
			MemberID:  memberID,
			BookID:    bookID,
			Status:    domain.ReservationStatusPending,
			CreatedOn: now,
			UpdatedOn: now,
		}
		if err := s.resRepo.Create(ctx, res); err != nil {
			return fmt.Errorf("create reservation: %w", err)
		}

		entry := &domain.ActivityLogEntry{
			ID:        uuid.NewString(),
			MemberID:  memberID,
			Action:    "CreateReservation",
			Detail:    fmt.Sprintf("joined the queue for book %d", bookID),
			CreatedOn: now,
		}
		if err := s.activityRepo.Create(ctx, entry); err != nil {
			return fmt.Errorf("log activity: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

func (s *reservationService) ListForMember(ctx context.Context, memberID int32) ([]domain.Reservation, error) {
	return s.resRepo.ListActiveByMember(ctx, memberID)
}

func (s *reservationService) ListPendingForBook(ctx context.Context, bookID int32) ([]domain.Reservation, error) {
	return s.resRepo.ListPendingByBook(ctx, bookID)
}

func (s *reservationService) GetReservation(ctx context.Context, id int32) (*domain.Reservation, error) {
	res, err := s.resRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("reservation %d: %w", id, err)
	}
	return res, nil
}

func (s *reservationService) UpdateStatus(ctx context.Context, id int32, status domain.ReservationStatus) (*domain.Reservation, error) {
	updated, err := s.resRepo.UpdateStatus(ctx, id, status)
	if err != nil {
		return nil, fmt.Errorf("update reservation %d: %w", id, err)
	}
	if !updated {
		return nil, fmt.Errorf("reservation %d: %w", id, domain.ErrNotFound)
	}
	return s.resRepo.GetByID(ctx, id)
}

func (s *reservationService) DeleteReservation(ctx context.Context, id int32) error {
	deleted, err := s.resRepo.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("delete reservation %d: %w", id, err)
	}
	if !deleted {
		return fmt.Errorf("reservation %d: %w", id, domain.ErrNotFound)
	}
	return nil
}
