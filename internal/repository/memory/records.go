package memory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jafarshop/retailops/internal/domain"
	"github.com/jafarshop/retailops/internal/repository"
	"github.com/jafarshop/retailops/pkg/errors"
)

type salesRepository struct {
	store *Store
}

// AppendSale stores the sale in its JSON document form so reads see the
// same shapes the Postgres store returns.
func (r *salesRepository) AppendSale(ctx context.Context, sale *domain.SaleRecord) error {
	doc, _, err := repository.EncodeDocument(sale)
	if err != nil {
		return err
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.data.sales = append(r.store.data.sales, doc)
	return nil
}

func (r *salesRepository) ListSales(ctx context.Context) ([]domain.Document, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	return append([]domain.Document(nil), r.store.data.sales...), nil
}

type ledgerRepository struct {
	store *Store
}

func (r *ledgerRepository) AppendPurchase(ctx context.Context, doc domain.Document) error {
	return r.append(doc, &r.store.data.purchases)
}

func (r *ledgerRepository) AppendExpense(ctx context.Context, doc domain.Document) error {
	return r.append(doc, &r.store.data.expenses)
}

func (r *ledgerRepository) append(doc domain.Document, dst *[]domain.Document) error {
	stored, _, err := repository.EncodeDocument(doc)
	if err != nil {
		return err
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	*dst = append(*dst, stored)
	return nil
}

func (r *ledgerRepository) ListPurchases(ctx context.Context) ([]domain.Document, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	return append([]domain.Document(nil), r.store.data.purchases...), nil
}

func (r *ledgerRepository) ListExpenses(ctx context.Context) ([]domain.Document, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	return append([]domain.Document(nil), r.store.data.expenses...), nil
}

type discountRuleRepository struct {
	store *Store
}

func (r *discountRuleRepository) List(ctx context.Context) ([]domain.DiscountRule, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	return append([]domain.DiscountRule(nil), r.store.data.rules...), nil
}

func (r *discountRuleRepository) Create(ctx context.Context, rule *domain.DiscountRule) error {
	if rule.ID == uuid.Nil {
		rule.ID = uuid.New()
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.data.rules = append(r.store.data.rules, *rule)
	return nil
}

type operatorRepository struct {
	store *Store
}

func (r *operatorRepository) GetByAPIKey(ctx context.Context, apiKey string) (*domain.Operator, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, op := range r.store.data.operators {
		if !op.IsActive {
			continue
		}
		if err := bcrypt.CompareHashAndPassword([]byte(op.APIKeyHash), []byte(apiKey)); err == nil {
			found := op
			return &found, nil
		}
	}
	return nil, &errors.ErrUnauthorized{Message: "invalid API key"}
}

func (r *operatorRepository) Create(ctx context.Context, operator *domain.Operator) error {
	now := time.Now()
	if operator.ID == uuid.Nil {
		operator.ID = uuid.New()
	}
	if operator.CreatedAt.IsZero() {
		operator.CreatedAt = now
	}
	operator.UpdatedAt = now

	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.data.operators = append(r.store.data.operators, *operator)
	return nil
}
