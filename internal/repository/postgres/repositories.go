package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"go.uber.org/zap"

	"github.com/jafarshop/retailops/internal/repository"
)

// NewRepositories creates every repository on top of one connection pool
func NewRepositories(db *sql.DB, logger *zap.Logger) *repository.Repositories {
	repos := bind(db, logger)
	repos.Tx = &txRunner{db: db, logger: logger}
	return repos
}

func bind(db dbtx, logger *zap.Logger) *repository.Repositories {
	return &repository.Repositories{
		Catalog:       NewCatalogRepository(db, logger),
		Sales:         NewSalesRepository(db, logger),
		Ledger:        NewLedgerRepository(db, logger),
		DiscountRules: NewDiscountRuleRepository(db, logger),
		Operator:      NewOperatorRepository(db, logger),
	}
}

type txRunner struct {
	db     *sql.DB
	logger *zap.Logger
}

// WithinTx runs fn with repositories bound to one transaction. The
// transaction commits when fn returns nil and rolls back otherwise.
func (t *txRunner) WithinTx(ctx context.Context, fn repository.TxFunc) (err error) {
	tx, err := t.db.BeginTx(ctx, nil)
	if err != nil {
		t.logger.Error("Failed to begin transaction", zap.Error(err))
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			tx.Rollback()
			t.logger.Error("Transaction panic, rolling back", zap.Any("panic", p))
			panic(p)
		}
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				t.logger.Error("Failed to roll back transaction", zap.Error(rbErr))
			}
			t.logger.Warn("Transaction failed, rolled back", zap.Error(err))
			return
		}
		if err = tx.Commit(); err != nil {
			t.logger.Error("Failed to commit transaction", zap.Error(err))
		}
	}()

	err = fn(ctx, bind(tx, t.logger))
	return err
}
