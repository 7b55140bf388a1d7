package service

import (
	"context"
	"fmt"

	"librarium-backend/internal/clock"
	"librarium-backend/internal/domain"
	"librarium-backend/internal/repository"
)

type stockService struct {
	stockRepo repository.StockRepository
	clock     clock.Clock
}

func NewStockService(stockRepo repository.StockRepository, clk clock.Clock) StockService {
	return &stockService{stockRepo: stockRepo, clock: clk}
}

func (s *stockService) CreateStock(ctx context.Context, bookID, quantity int32) (*domain.StockRecord, error) {
	if quantity < 0 {
		return nil, fmt.Errorf("quantity must not be negative: %w", domain.ErrPolicyViolation)
	}
	existing, err := s.stockRepo.GetByBook(ctx, bookID)
	if err != nil {
		return nil, fmt.Errorf("load stock for book %d: %w", bookID, err)
	}
	if existing != nil {
		return nil, fmt.Errorf("book %d already has a stock record: %w", bookID, domain.ErrConflict)
	}
	rec := &domain.StockRecord{BookID: bookID, Quantity: quantity}
	if err := s.stockRepo.Create(ctx, rec); err != nil {
		return nil, fmt.Errorf("create stock record: %w", err)
	}
	return rec, nil
}

func (s *stockService) GetByBook(ctx context.Context, bookID int32) (*domain.StockRecord, error) {
	rec, err := s.stockRepo.GetByBook(ctx, bookID)
	if err != nil {
		return nil, fmt.Errorf("load stock for book %d: %w", bookID, err)
	}
	if rec == nil {
		return nil, fmt.Errorf("book %d has no stock record: %w", bookID, domain.ErrNotFound)
	}
	return rec, nil
}

func (s *stockService) Increase(ctx context.Context, stockID int32) (*domain.StockRecord, error) {
	return s.stockRepo.AdjustBy(ctx, stockID, 1, s.clock.Now())
}

func (s *stockService) Decrease(ctx context.Context, stockID int32) (*domain.StockRecord, error) {
	return s.stockRepo.AdjustBy(ctx, stockID, -1, s.clock.Now())
}

func (s *stockService) AdjustBy(ctx context.Context, stockID int32, delta int32) (*domain.StockRecord, error) {
	return s.stockRepo.AdjustBy(ctx, stockID, delta, s.clock.Now())
}
