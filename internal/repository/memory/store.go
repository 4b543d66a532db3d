// Package memory is an in-process implementation of the repositories, used
// for local runs (STORE_DRIVER=memory) and tests.
package memory

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/jafarshop/retailops/internal/domain"
	"github.com/jafarshop/retailops/internal/repository"
)

type state struct {
	items     map[string]domain.CatalogItem
	order     []string
	sales     []domain.Document
	purchases []domain.Document
	expenses  []domain.Document
	rules     []domain.DiscountRule
	operators []domain.Operator
}

func (s *state) clone() *state {
	c := &state{
		items:     make(map[string]domain.CatalogItem, len(s.items)),
		order:     append([]string(nil), s.order...),
		sales:     append([]domain.Document(nil), s.sales...),
		purchases: append([]domain.Document(nil), s.purchases...),
		expenses:  append([]domain.Document(nil), s.expenses...),
		rules:     append([]domain.DiscountRule(nil), s.rules...),
		operators: append([]domain.Operator(nil), s.operators...),
	}
	for k, v := range s.items {
		c.items[k] = v
	}
	return c
}

// Store holds all data behind one lock
type Store struct {
	mu     sync.RWMutex
	txMu   sync.Mutex
	data   *state
	logger *zap.Logger
}

// NewStore creates an empty store
func NewStore(logger *zap.Logger) *Store {
	return &Store{
		data: &state{
			items: make(map[string]domain.CatalogItem),
		},
		logger: logger,
	}
}

// NewRepositories wires every repository to one shared store
func NewRepositories(store *Store) *repository.Repositories {
	return &repository.Repositories{
		Catalog:       &catalogRepository{store: store},
		Sales:         &salesRepository{store: store},
		Ledger:        &ledgerRepository{store: store},
		DiscountRules: &discountRuleRepository{store: store},
		Operator:      &operatorRepository{store: store},
		Tx:            store,
	}
}

// WithinTx serialises units of work and restores the previous state when fn fails.
// Writes made outside a unit of work may still interleave with it.
func (s *Store) WithinTx(ctx context.Context, fn repository.TxFunc) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()

	s.mu.RLock()
	snapshot := s.data.clone()
	s.mu.RUnlock()

	if err := fn(ctx, NewRepositories(s)); err != nil {
		s.mu.Lock()
		s.data = snapshot
		s.mu.Unlock()
		s.logger.Warn("Unit of work failed, state restored", zap.Error(err))
		return err
	}
	return nil
}
