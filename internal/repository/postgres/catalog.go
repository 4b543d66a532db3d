package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/jafarshop/retailops/internal/domain"
	"github.com/jafarshop/retailops/pkg/errors"
)

const catalogColumns = `id, name, category, stock, sale_price, purchase_price, critical_stock_level, barcode, created_at, updated_at`

type catalogRepository struct {
	db     dbtx
	logger *zap.Logger
}

// NewCatalogRepository creates a new catalog repository
func NewCatalogRepository(db dbtx, logger *zap.Logger) *catalogRepository {
	return &catalogRepository{
		db:     db,
		logger: logger,
	}
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanCatalogItem(row rowScanner) (*domain.CatalogItem, error) {
	var item domain.CatalogItem
	var category, barcode sql.NullString

	err := row.Scan(
		&item.ID,
		&item.Name,
		&category,
		&item.Stock,
		&item.SalePrice,
		&item.PurchasePrice,
		&item.CriticalStockLevel,
		&barcode,
		&item.CreatedAt,
		&item.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if category.Valid {
		item.Category = &category.String
	}
	if barcode.Valid {
		item.Barcode = &barcode.String
	}
	return &item, nil
}

func (r *catalogRepository) List(ctx context.Context) ([]*domain.CatalogItem, error) {
	query := `SELECT ` + catalogColumns + ` FROM catalog_items ORDER BY created_at, id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		r.logger.Error("Failed to list catalog items", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var items []*domain.CatalogItem
	for rows.Next() {
		item, err := scanCatalogItem(rows)
		if err != nil {
			r.logger.Error("Failed to scan catalog item", zap.Error(err))
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (r *catalogRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.CatalogItem, error) {
	query := `SELECT ` + catalogColumns + ` FROM catalog_items WHERE id = $1`

	item, err := scanCatalogItem(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, &errors.ErrNotFound{Resource: "catalog item", ID: id.String()}
	}
	if err != nil {
		r.logger.Error("Failed to get catalog item by ID", zap.Error(err))
		return nil, err
	}
	return item, nil
}

func (r *catalogRepository) GetByBarcode(ctx context.Context, barcode string) (*domain.CatalogItem, error) {
	query := `SELECT ` + catalogColumns + ` FROM catalog_items WHERE barcode = $1`

	item, err := scanCatalogItem(r.db.QueryRowContext(ctx, query, barcode))
	if err == sql.ErrNoRows {
		return nil, &errors.ErrNotFound{Resource: "catalog item", ID: barcode}
	}
	if err != nil {
		r.logger.Error("Failed to get catalog item by barcode", zap.Error(err))
		return nil, err
	}
	return item, nil
}

func (r *catalogRepository) Create(ctx context.Context, item *domain.CatalogItem) error {
	query := `
		INSERT INTO catalog_items (` + catalogColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	now := time.Now()
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	if item.CriticalStockLevel <= 0 {
		item.CriticalStockLevel = domain.DefaultCriticalStockLevel
	}
	if item.CreatedAt.IsZero() {
		item.CreatedAt = now
	}
	item.UpdatedAt = now

	_, err := r.db.ExecContext(ctx, query,
		item.ID,
		item.Name,
		item.Category,
		item.Stock,
		item.SalePrice,
		item.PurchasePrice,
		item.CriticalStockLevel,
		item.Barcode,
		item.CreatedAt,
		item.UpdatedAt,
	)
	if err != nil {
		r.logger.Error("Failed to create catalog item", zap.Error(err))
		return err
	}
	return nil
}

func (r *catalogRepository) AdjustStock(ctx context.Context, id uuid.UUID, newStock int) error {
	query := `UPDATE catalog_items SET stock = $2, updated_at = $3 WHERE id = $1`
	return r.update(ctx, "stock", query, id, newStock)
}

func (r *catalogRepository) AdjustPrice(ctx context.Context, id uuid.UUID, newPrice decimal.Decimal) error {
	query := `UPDATE catalog_items SET sale_price = $2, updated_at = $3 WHERE id = $1`
	return r.update(ctx, "price", query, id, newPrice)
}

func (r *catalogRepository) update(ctx context.Context, field, query string, id uuid.UUID, value interface{}) error {
	result, err := r.db.ExecContext(ctx, query, id, value, time.Now())
	if err != nil {
		r.logger.Error("Failed to update catalog item",
			zap.String("field", field),
			zap.String("item_id", id.String()),
			zap.Error(err),
		)
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return &errors.ErrNotFound{Resource: "catalog item", ID: id.String()}
	}
	return nil
}
