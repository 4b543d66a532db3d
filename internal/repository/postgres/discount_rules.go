package postgres

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jafarshop/retailops/internal/domain"
)

type discountRuleRepository struct {
	db     dbtx
	logger *zap.Logger
}

// NewDiscountRuleRepository creates a new discount rule repository
func NewDiscountRuleRepository(db dbtx, logger *zap.Logger) *discountRuleRepository {
	return &discountRuleRepository{
		db:     db,
		logger: logger,
	}
}

// List returns rules in creation order; the resolver breaks ties by that order.
func (r *discountRuleRepository) List(ctx context.Context) ([]domain.DiscountRule, error) {
	query := `SELECT id, category, type, value FROM discount_rules ORDER BY created_at, id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		r.logger.Error("Failed to list discount rules", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var rules []domain.DiscountRule
	for rows.Next() {
		var rule domain.DiscountRule
		if err := rows.Scan(&rule.ID, &rule.Category, &rule.Type, &rule.Value); err != nil {
			r.logger.Error("Failed to scan discount rule", zap.Error(err))
			return nil, err
		}
		rules = append(rules, rule)
	}
	return rules, rows.Err()
}

func (r *discountRuleRepository) Create(ctx context.Context, rule *domain.DiscountRule) error {
	query := `INSERT INTO discount_rules (id, category, type, value) VALUES ($1, $2, $3, $4)`

	if rule.ID == uuid.Nil {
		rule.ID = uuid.New()
	}

	_, err := r.db.ExecContext(ctx, query, rule.ID, rule.Category, rule.Type, rule.Value)
	if err != nil {
		r.logger.Error("Failed to create discount rule", zap.Error(err))
		return err
	}
	return nil
}
