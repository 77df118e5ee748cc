package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"vitacoin.app/rewardsplatform/internal/model"
)

type TransactionRepository interface {
	ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]model.Transaction, error)
	CountByUserAndRule(ctx context.Context, userID uuid.UUID, ruleKey string) (int64, error)
	CountByUserAndRuleSince(ctx context.Context, userID uuid.UUID, ruleKey string, since time.Time) (int64, error)
}

type transactionRepository struct {
	db *gorm.DB
}

func NewTransactionRepository(db *gorm.DB) TransactionRepository {
	return &transactionRepository{db: db}
}

func (r *transactionRepository) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]model.Transaction, error) {
	var transactions []model.Transaction
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&transactions).Error
	return transactions, err
}

func (r *transactionRepository) CountByUserAndRule(ctx context.Context, userID uuid.UUID, ruleKey string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Transaction{}).
		Where("user_id = ? AND rule_key = ?", userID, ruleKey).
		Count(&count).Error
	return count, err
}

func (r *transactionRepository) CountByUserAndRuleSince(ctx context.Context, userID uuid.UUID, ruleKey string, since time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Transaction{}).
		Where("user_id = ? AND rule_key = ? AND created_at >= ?", userID, ruleKey, since).
		Count(&count).Error
	return count, err
}
