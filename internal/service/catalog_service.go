package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/jafarshop/retailops/internal/analytics"
	"github.com/jafarshop/retailops/internal/domain"
	"github.com/jafarshop/retailops/internal/pricing"
	"github.com/jafarshop/retailops/internal/repository"
	"github.com/jafarshop/retailops/pkg/errors"
)

type catalogService struct {
	repos  *repository.Repositories
	opts   analytics.Options
	logger *zap.Logger
}

// NewCatalogService creates a new catalog service
func NewCatalogService(repos *repository.Repositories, opts analytics.Options, logger *zap.Logger) *catalogService {
	return &catalogService{
		repos:  repos,
		opts:   opts,
		logger: logger,
	}
}

// ListWithPrices returns every catalog item with its price resolved against
// the current discount rules.
func (s *catalogService) ListWithPrices(ctx context.Context) ([]CatalogEntry, error) {
	items, err := s.repos.Catalog.List(ctx)
	if err != nil {
		return nil, err
	}
	rules, err := s.repos.DiscountRules.List(ctx)
	if err != nil {
		return nil, err
	}

	entries := make([]CatalogEntry, 0, len(items))
	for _, item := range items {
		entries = append(entries, s.entry(item, rules))
	}
	return entries, nil
}

// GetPrice resolves the effective price of one item
func (s *catalogService) GetPrice(ctx context.Context, id uuid.UUID) (*domain.PriceResolution, error) {
	item, err := s.repos.Catalog.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	rules, err := s.repos.DiscountRules.List(ctx)
	if err != nil {
		return nil, err
	}

	resolution := pricing.ResolvePrice(item, rules)
	return &resolution, nil
}

// GetByBarcode looks an item up by barcode and prices it
func (s *catalogService) GetByBarcode(ctx context.Context, barcode string) (*CatalogEntry, error) {
	if barcode == "" {
		return nil, &errors.ErrValidation{Field: "barcode", Message: "must not be empty"}
	}

	item, err := s.repos.Catalog.GetByBarcode(ctx, barcode)
	if err != nil {
		return nil, err
	}
	rules, err := s.repos.DiscountRules.List(ctx)
	if err != nil {
		return nil, err
	}

	entry := s.entry(item, rules)
	return &entry, nil
}

// AdjustStock sets the stock level. Negative input is stored as zero.
func (s *catalogService) AdjustStock(ctx context.Context, id uuid.UUID, stock int) (*domain.CatalogItem, error) {
	if stock < 0 {
		stock = 0
	}

	if err := s.repos.Catalog.AdjustStock(ctx, id, stock); err != nil {
		if _, ok := err.(*errors.ErrNotFound); ok {
			return nil, err
		}
		s.logger.Error("Failed to adjust stock", zap.String("item_id", id.String()), zap.Error(err))
		return nil, &errors.ErrPersistence{Op: "adjust stock", Err: err}
	}

	s.logger.Info("Stock adjusted", zap.String("item_id", id.String()), zap.Int("stock", stock))
	return s.repos.Catalog.GetByID(ctx, id)
}

// AdjustPrice sets the list price of an item
func (s *catalogService) AdjustPrice(ctx context.Context, id uuid.UUID, price decimal.Decimal) (*domain.CatalogItem, error) {
	if price.IsNegative() {
		return nil, &errors.ErrValidation{Field: "sale_price", Message: "must not be negative"}
	}

	if err := s.repos.Catalog.AdjustPrice(ctx, id, price); err != nil {
		if _, ok := err.(*errors.ErrNotFound); ok {
			return nil, err
		}
		s.logger.Error("Failed to adjust price", zap.String("item_id", id.String()), zap.Error(err))
		return nil, &errors.ErrPersistence{Op: "adjust price", Err: err}
	}

	s.logger.Info("Price adjusted", zap.String("item_id", id.String()), zap.String("sale_price", price.String()))
	return s.repos.Catalog.GetByID(ctx, id)
}

func (s *catalogService) entry(item *domain.CatalogItem, rules []domain.DiscountRule) CatalogEntry {
	return CatalogEntry{
		Item:        item,
		Price:       pricing.ResolvePrice(item, rules),
		StockStatus: analytics.ClassifyStock(item, s.opts.DefaultCriticalStock),
	}
}
