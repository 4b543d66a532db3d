package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jafarshop/retailops/internal/domain"
	"github.com/jafarshop/retailops/internal/repository"
)

// Document tables share one layout: id, doc JSONB, created_at
const (
	salesTable     = "sales"
	purchasesTable = "purchases"
	expensesTable  = "expenses"
)

type documentTable struct {
	db     dbtx
	logger *zap.Logger
}

func (t *documentTable) insert(ctx context.Context, table string, id uuid.UUID, payload []byte) error {
	query := `INSERT INTO ` + table + ` (id, doc, created_at) VALUES ($1, $2, $3)`

	if _, err := t.db.ExecContext(ctx, query, id, string(payload), time.Now()); err != nil {
		t.logger.Error("Failed to insert document",
			zap.String("table", table),
			zap.String("id", id.String()),
			zap.Error(err),
		)
		return err
	}
	return nil
}

func (t *documentTable) list(ctx context.Context, table string) ([]domain.Document, error) {
	query := `SELECT doc FROM ` + table + ` ORDER BY created_at, id`

	rows, err := t.db.QueryContext(ctx, query)
	if err != nil {
		t.logger.Error("Failed to list documents", zap.String("table", table), zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var docs []domain.Document
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, err
		}
		doc, err := repository.DecodeDocument(raw)
		if err != nil {
			// A malformed row must not hide the rest of the history
			t.logger.Warn("Skipping malformed document", zap.String("table", table), zap.Error(err))
			continue
		}
		docs = append(docs, doc)
	}
	return docs, rows.Err()
}

type salesRepository struct {
	documentTable
}

// NewSalesRepository creates a new sales repository
func NewSalesRepository(db dbtx, logger *zap.Logger) *salesRepository {
	return &salesRepository{documentTable{db: db, logger: logger}}
}

func (r *salesRepository) AppendSale(ctx context.Context, sale *domain.SaleRecord) error {
	if sale.ID == uuid.Nil {
		sale.ID = uuid.New()
	}
	_, payload, err := repository.EncodeDocument(sale)
	if err != nil {
		return err
	}
	return r.insert(ctx, salesTable, sale.ID, payload)
}

func (r *salesRepository) ListSales(ctx context.Context) ([]domain.Document, error) {
	return r.list(ctx, salesTable)
}

type ledgerRepository struct {
	documentTable
}

// NewLedgerRepository creates a new purchase and expense repository
func NewLedgerRepository(db dbtx, logger *zap.Logger) *ledgerRepository {
	return &ledgerRepository{documentTable{db: db, logger: logger}}
}

func (r *ledgerRepository) AppendPurchase(ctx context.Context, doc domain.Document) error {
	return r.appendDoc(ctx, purchasesTable, doc)
}

func (r *ledgerRepository) AppendExpense(ctx context.Context, doc domain.Document) error {
	return r.appendDoc(ctx, expensesTable, doc)
}

func (r *ledgerRepository) appendDoc(ctx context.Context, table string, doc domain.Document) error {
	_, payload, err := repository.EncodeDocument(doc)
	if err != nil {
		return err
	}
	return r.insert(ctx, table, uuid.New(), payload)
}

func (r *ledgerRepository) ListPurchases(ctx context.Context) ([]domain.Document, error) {
	return r.list(ctx, purchasesTable)
}

func (r *ledgerRepository) ListExpenses(ctx context.Context) ([]domain.Document, error) {
	return r.list(ctx, expensesTable)
}
