package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/jafarshop/retailops/internal/analytics"
	"github.com/jafarshop/retailops/internal/config"
	"github.com/jafarshop/retailops/internal/repository"
	"github.com/jafarshop/retailops/internal/timewindow"
)

type dashboardService struct {
	repos  *repository.Repositories
	opts   analytics.Options
	logger *zap.Logger
	now    func() time.Time
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(repos *repository.Repositories, opts analytics.Options, logger *zap.Logger) *dashboardService {
	return &dashboardService{
		repos:  repos,
		opts:   opts,
		logger: logger,
		now:    time.Now,
	}
}

// AnalyticsOptions maps the analytics settings onto the options the
// analytics package expects.
func AnalyticsOptions(cfg *config.Config) (analytics.Options, error) {
	loc, err := cfg.Location()
	if err != nil {
		return analytics.Options{}, err
	}
	return analytics.Options{
		Location:             loc,
		TopItemsLimit:        cfg.Analytics.TopItemsLimit,
		UncategorizedLabel:   cfg.Analytics.UncategorizedLabel,
		DefaultCriticalStock: cfg.Analytics.DefaultCriticalStock,
	}, nil
}

// Snapshot loads every collection and recomputes the dashboard for mode.
// Nothing is cached between calls.
func (s *dashboardService) Snapshot(ctx context.Context, mode timewindow.Mode) (*analytics.Snapshot, error) {
	catalog, err := s.repos.Catalog.List(ctx)
	if err != nil {
		return nil, err
	}
	rules, err := s.repos.DiscountRules.List(ctx)
	if err != nil {
		return nil, err
	}
	sales, err := s.repos.Sales.ListSales(ctx)
	if err != nil {
		return nil, err
	}
	purchases, err := s.repos.Ledger.ListPurchases(ctx)
	if err != nil {
		return nil, err
	}
	expenses, err := s.repos.Ledger.ListExpenses(ctx)
	if err != nil {
		return nil, err
	}

	snap := analytics.BuildSnapshot(mode, s.now(), analytics.Inputs{
		Catalog:   catalog,
		Rules:     rules,
		Sales:     sales,
		Purchases: purchases,
		Expenses:  expenses,
	}, s.opts)

	s.logger.Debug("Dashboard computed",
		zap.String("period", string(snap.Period.Mode)),
		zap.Int("sales", len(sales)),
		zap.Int("current_sales", snap.Current.SalesCount),
	)
	return &snap, nil
}
