package repository

import (
	"context"

	"gorm.io/gorm"
	"vitacoin.app/rewardsplatform/internal/model"
)

type RuleRepository interface {
	Create(ctx context.Context, rule *model.RewardRule) error
	FindActiveByKey(ctx context.Context, key string) (*model.RewardRule, error)
	FindAll(ctx context.Context) ([]model.RewardRule, error)
	ExistsByKey(ctx context.Context, key string) (bool, error)
}

type ruleRepository struct {
	db *gorm.DB
}

func NewRuleRepository(db *gorm.DB) RuleRepository {
	return &ruleRepository{db: db}
}

func (r *ruleRepository) Create(ctx context.Context, rule *model.RewardRule) error {
	return r.db.WithContext(ctx).Create(rule).Error
}

func (r *ruleRepository) FindActiveByKey(ctx context.Context, key string) (*model.RewardRule, error) {
	var rule model.RewardRule
	if err := r.db.WithContext(ctx).
		Where("key = ? AND active = ?", key, true).
		First(&rule).Error; err != nil {
		return nil, err
	}

	return &rule, nil
}

func (r *ruleRepository) FindAll(ctx context.Context) ([]model.RewardRule, error) {
	var rules []model.RewardRule
	if err := r.db.WithContext(ctx).
		Order("created_at ASC").
		Find(&rules).Error; err != nil {
		return nil, err
	}

	return rules, nil
}

func (r *ruleRepository) ExistsByKey(ctx context.Context, key string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.RewardRule{}).
		Where("key = ?", key).
		Count(&count).Error
	return count > 0, err
}
