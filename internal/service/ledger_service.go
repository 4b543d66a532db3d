package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/jafarshop/retailops/internal/domain"
	"github.com/jafarshop/retailops/internal/repository"
	"github.com/jafarshop/retailops/pkg/errors"
)

type ledgerService struct {
	repos  *repository.Repositories
	logger *zap.Logger
	now    func() time.Time
}

// NewLedgerService creates a new purchase and expense service
func NewLedgerService(repos *repository.Repositories, logger *zap.Logger) *ledgerService {
	return &ledgerService{
		repos:  repos,
		logger: logger,
		now:    time.Now,
	}
}

// RecordPurchase stores a stock purchase. Analytics reads its amount from
// total_cost and its date from purchase_date.
func (s *ledgerService) RecordPurchase(ctx context.Context, req LedgerEntryRequest) (domain.Document, error) {
	if err := validateLedgerEntry(req); err != nil {
		return nil, err
	}

	doc := domain.Document{
		"total_cost":    req.Amount,
		"purchase_date": s.entryDate(req).Format(time.RFC3339),
	}
	if req.Description != "" {
		doc["description"] = req.Description
	}
	if req.Supplier != "" {
		doc["supplier"] = req.Supplier
	}

	if err := s.repos.Ledger.AppendPurchase(ctx, doc); err != nil {
		s.logger.Error("Failed to record purchase", zap.Error(err))
		return nil, &errors.ErrPersistence{Op: "record purchase", Err: err}
	}

	s.logger.Info("Purchase recorded", zap.String("amount", req.Amount.String()))
	return doc, nil
}

// RecordExpense stores an operating expense under amount and expense_date
func (s *ledgerService) RecordExpense(ctx context.Context, req LedgerEntryRequest) (domain.Document, error) {
	if err := validateLedgerEntry(req); err != nil {
		return nil, err
	}

	doc := domain.Document{
		"amount":       req.Amount,
		"expense_date": s.entryDate(req).Format(time.RFC3339),
	}
	if req.Description != "" {
		doc["description"] = req.Description
	}
	if req.Category != "" {
		doc["category"] = req.Category
	}

	if err := s.repos.Ledger.AppendExpense(ctx, doc); err != nil {
		s.logger.Error("Failed to record expense", zap.Error(err))
		return nil, &errors.ErrPersistence{Op: "record expense", Err: err}
	}

	s.logger.Info("Expense recorded", zap.String("amount", req.Amount.String()))
	return doc, nil
}

func (s *ledgerService) entryDate(req LedgerEntryRequest) time.Time {
	if req.Date != nil && !req.Date.IsZero() {
		return *req.Date
	}
	return s.now()
}

func validateLedgerEntry(req LedgerEntryRequest) error {
	if req.Amount.IsNegative() {
		return &errors.ErrValidation{Field: "amount", Message: "must not be negative"}
	}
	if req.Amount.IsZero() {
		return &errors.ErrValidation{Field: "amount", Message: "must be greater than zero"}
	}
	return nil
}
