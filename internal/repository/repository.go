package repository

import (
	"bytes"
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jafarshop/retailops/internal/domain"
)

// CatalogRepository reads and updates catalog items
type CatalogRepository interface {
	List(ctx context.Context) ([]*domain.CatalogItem, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.CatalogItem, error)
	GetByBarcode(ctx context.Context, barcode string) (*domain.CatalogItem, error)
	Create(ctx context.Context, item *domain.CatalogItem) error
	AdjustStock(ctx context.Context, id uuid.UUID, newStock int) error
	AdjustPrice(ctx context.Context, id uuid.UUID, newPrice decimal.Decimal) error
}

// SalesRepository appends committed sales and lists them as raw documents
type SalesRepository interface {
	AppendSale(ctx context.Context, sale *domain.SaleRecord) error
	ListSales(ctx context.Context) ([]domain.Document, error)
}

// LedgerRepository stores purchase and expense documents
type LedgerRepository interface {
	AppendPurchase(ctx context.Context, doc domain.Document) error
	AppendExpense(ctx context.Context, doc domain.Document) error
	ListPurchases(ctx context.Context) ([]domain.Document, error)
	ListExpenses(ctx context.Context) ([]domain.Document, error)
}

// DiscountRuleRepository exposes the configured discount rules
type DiscountRuleRepository interface {
	List(ctx context.Context) ([]domain.DiscountRule, error)
	Create(ctx context.Context, rule *domain.DiscountRule) error
}

// OperatorRepository authenticates API callers
type OperatorRepository interface {
	GetByAPIKey(ctx context.Context, apiKey string) (*domain.Operator, error)
	Create(ctx context.Context, operator *domain.Operator) error
}

// TxFunc receives repositories bound to a single unit of work
type TxFunc func(ctx context.Context, repos *Repositories) error

// TxRunner runs fn atomically: every write lands, or none does
type TxRunner interface {
	WithinTx(ctx context.Context, fn TxFunc) error
}

// Repositories groups every store the services use
type Repositories struct {
	Catalog       CatalogRepository
	Sales         SalesRepository
	Ledger        LedgerRepository
	DiscountRules DiscountRuleRepository
	Operator      OperatorRepository
	Tx            TxRunner
}

// WithinTx runs fn in a unit of work when the backing store supports one
func (r *Repositories) WithinTx(ctx context.Context, fn TxFunc) error {
	if r.Tx == nil {
		return fn(ctx, r)
	}
	return r.Tx.WithinTx(ctx, fn)
}

// DecodeDocument parses a stored JSON document. Numbers are kept as
// json.Number so amounts do not pass through float64.
func DecodeDocument(data []byte) (domain.Document, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var doc domain.Document
	if err := dec.Decode(&doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// EncodeDocument converts a typed record into its stored document form
func EncodeDocument(v interface{}) (domain.Document, []byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, nil, err
	}
	doc, err := DecodeDocument(data)
	if err != nil {
		return nil, nil, err
	}
	return doc, data, nil
}
