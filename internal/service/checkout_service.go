package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/jafarshop/retailops/internal/domain"
	"github.com/jafarshop/retailops/internal/pricing"
	"github.com/jafarshop/retailops/internal/repository"
	"github.com/jafarshop/retailops/pkg/errors"
)

type checkoutService struct {
	repos  *repository.Repositories
	logger *zap.Logger
	now    func() time.Time
}

// NewCheckoutService creates a new checkout service
func NewCheckoutService(repos *repository.Repositories, logger *zap.Logger) *checkoutService {
	return &checkoutService{
		repos:  repos,
		logger: logger,
		now:    time.Now,
	}
}

// Quote prices a cart against the live catalog without persisting anything
func (s *checkoutService) Quote(ctx context.Context, req CheckoutRequest) (*Quote, error) {
	if len(req.Items) == 0 {
		return nil, &errors.ErrValidation{Field: "items", Message: "cart is empty"}
	}

	adj, err := adjustmentFromRequest(req.Adjustment)
	if err != nil {
		return nil, err
	}

	lines := make([]domain.CartLine, 0, len(req.Items))
	for _, cartItem := range req.Items {
		if cartItem.Quantity < 1 {
			return nil, &errors.ErrValidation{Field: "quantity", Message: "must be at least 1"}
		}
		id, err := uuid.Parse(cartItem.ProductID)
		if err != nil {
			return nil, &errors.ErrValidation{Field: "product_id", Message: "not a valid ID: " + cartItem.ProductID}
		}
		item, err := s.repos.Catalog.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		lines = append(lines, domain.CartLine{Item: item, Quantity: cartItem.Quantity})
	}

	rules, err := s.repos.DiscountRules.List(ctx)
	if err != nil {
		return nil, err
	}

	totals := pricing.CalculateTotals(lines, rules, adj)

	quote := &Quote{
		Lines:  make([]QuoteLine, 0, len(totals.Lines)),
		Totals: totals,
	}
	for _, line := range totals.Lines {
		quote.Lines = append(quote.Lines, QuoteLine{
			ProductID:              line.Item.ID.String(),
			Name:                   line.Item.Name,
			Quantity:               line.Quantity,
			OriginalPrice:          line.Resolution.OriginalPrice,
			FinalPrice:             line.Resolution.FinalPrice,
			DiscountAppliedPerUnit: line.Resolution.DiscountAppliedPerUnit,
			LineTotal:              line.Resolution.FinalPrice.Mul(decimal.NewFromInt(int64(line.Quantity))),
			AppliedRule:            line.Resolution.AppliedRule,
		})
	}
	return quote, nil
}

// Checkout prices the cart, then records the sale and the stock decrements
// as one unit of work. On a persistence failure nothing is written and the
// caller keeps its cart.
func (s *checkoutService) Checkout(ctx context.Context, req CheckoutRequest) (*domain.SaleRecord, error) {
	if !req.PaymentMethod.IsValid() {
		return nil, &errors.ErrValidation{Field: "payment_method", Message: "must be CASH, CARD or TRANSFER"}
	}

	quote, err := s.Quote(ctx, req)
	if err != nil {
		return nil, err
	}

	sale := buildSaleRecord(quote.Totals, req, s.now())

	err = s.repos.WithinTx(ctx, func(ctx context.Context, tx *repository.Repositories) error {
		if err := tx.Sales.AppendSale(ctx, sale); err != nil {
			return err
		}
		for _, line := range quote.Totals.Lines {
			current, err := tx.Catalog.GetByID(ctx, line.Item.ID)
			if err != nil {
				return err
			}
			remaining := current.Stock - line.Quantity
			if remaining < 0 {
				remaining = 0
			}
			if err := tx.Catalog.AdjustStock(ctx, line.Item.ID, remaining); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		s.logger.Error("Failed to commit sale",
			zap.String("sale_id", sale.ID.String()),
			zap.Error(err),
		)
		return nil, &errors.ErrPersistence{Op: "checkout", Err: err}
	}

	s.logger.Info("Sale committed",
		zap.String("sale_id", sale.ID.String()),
		zap.String("total", sale.Totals.Total.String()),
		zap.Int("items", sale.Totals.TotalItemCount),
		zap.String("payment_method", string(sale.PaymentMethod)),
	)
	return sale, nil
}

func buildSaleRecord(totals domain.OrderTotals, req CheckoutRequest, at time.Time) *domain.SaleRecord {
	sale := &domain.SaleRecord{
		ID:                        uuid.New(),
		Items:                     make([]domain.SaleLine, 0, len(totals.Lines)),
		PaymentMethod:             req.PaymentMethod,
		TransactionDiscountAmount: totals.TransactionDiscountAmount,
		Totals: domain.SaleTotals{
			Subtotal:          totals.Subtotal,
			LineDiscountTotal: totals.LineDiscountTotal,
			Total:             totals.Total,
			TotalItemCount:    totals.TotalItemCount,
		},
		Timestamp: at,
		Status:    domain.SaleStatusCompleted,
	}

	if req.Customer != nil {
		sale.Customer = &domain.CustomerInfo{Name: req.Customer.Name, Phone: req.Customer.Phone}
	}

	for _, line := range totals.Lines {
		sale.Items = append(sale.Items, domain.SaleLine{
			ProductID:              line.Item.ID,
			Name:                   line.Item.Name,
			Category:               line.Item.CategoryName(),
			Quantity:               line.Quantity,
			FinalPrice:             line.Resolution.FinalPrice,
			OriginalPrice:          line.Resolution.OriginalPrice,
			PurchasePrice:          line.Item.PurchasePrice,
			DiscountAppliedPerUnit: line.Resolution.DiscountAppliedPerUnit,
			AppliedRule:            line.Resolution.AppliedRule,
		})
	}
	return sale
}

func adjustmentFromRequest(req *AdjustmentRequest) (domain.Adjustment, error) {
	if req == nil {
		return domain.Adjustment{}, nil
	}
	if !req.Type.IsValid() {
		return domain.Adjustment{}, &errors.ErrValidation{Field: "adjustment.type", Message: "must be PERCENTAGE or FIXED_AMOUNT"}
	}
	if req.Value.IsNegative() {
		return domain.Adjustment{}, &errors.ErrValidation{Field: "adjustment.value", Message: "must not be negative"}
	}
	return domain.Adjustment{Type: req.Type, Value: req.Value}, nil
}
