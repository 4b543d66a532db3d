package memory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jafarshop/retailops/internal/domain"
	"github.com/jafarshop/retailops/pkg/errors"
)

type catalogRepository struct {
	store *Store
}

func (r *catalogRepository) List(ctx context.Context) ([]*domain.CatalogItem, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	items := make([]*domain.CatalogItem, 0, len(r.store.data.order))
	for _, id := range r.store.data.order {
		item := r.store.data.items[id]
		items = append(items, &item)
	}
	return items, nil
}

func (r *catalogRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.CatalogItem, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	item, ok := r.store.data.items[id.String()]
	if !ok {
		return nil, &errors.ErrNotFound{Resource: "catalog item", ID: id.String()}
	}
	return &item, nil
}

func (r *catalogRepository) GetByBarcode(ctx context.Context, barcode string) (*domain.CatalogItem, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, id := range r.store.data.order {
		item := r.store.data.items[id]
		if item.Barcode != nil && *item.Barcode == barcode {
			return &item, nil
		}
	}
	return nil, &errors.ErrNotFound{Resource: "catalog item", ID: barcode}
}

func (r *catalogRepository) Create(ctx context.Context, item *domain.CatalogItem) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if item.Barcode != nil {
		for _, existing := range r.store.data.items {
			if existing.Barcode != nil && *existing.Barcode == *item.Barcode {
				return &errors.ErrValidation{Field: "barcode", Message: "already in use"}
			}
		}
	}

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

	key := item.ID.String()
	if _, exists := r.store.data.items[key]; !exists {
		r.store.data.order = append(r.store.data.order, key)
	}
	r.store.data.items[key] = *item
	return nil
}

func (r *catalogRepository) AdjustStock(ctx context.Context, id uuid.UUID, newStock int) error {
	return r.update(id, func(item *domain.CatalogItem) {
		item.Stock = newStock
	})
}

func (r *catalogRepository) AdjustPrice(ctx context.Context, id uuid.UUID, newPrice decimal.Decimal) error {
	return r.update(id, func(item *domain.CatalogItem) {
		item.SalePrice = newPrice
	})
}

func (r *catalogRepository) update(id uuid.UUID, fn func(item *domain.CatalogItem)) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	item, ok := r.store.data.items[id.String()]
	if !ok {
		return &errors.ErrNotFound{Resource: "catalog item", ID: id.String()}
	}
	fn(&item)
	item.UpdatedAt = time.Now()
	r.store.data.items[id.String()] = item
	return nil
}
