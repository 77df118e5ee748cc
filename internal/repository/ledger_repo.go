package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"vitacoin.app/rewardsplatform/internal/model"
)

// LedgerRepository owns the two read-modify-write units of the rewards
// ledger. Each runs inside a single database transaction so a concurrent
// reader can never observe a balance change without its paired transaction
// row, or vice versa.
type LedgerRepository interface {
	// ApplyDailyReward credits the rule's points and stamps
	// last_daily_reward, guarded by the cooldown cutoff. Returns
	// ErrNotEligible when a concurrent call already claimed inside the
	// window. Returns the new balance.
	ApplyDailyReward(ctx context.Context, userID uuid.UUID, rule *model.RewardRule, now, cutoff time.Time) (int, error)
	// CompleteTask records the completion exactly once per user, bumps the
	// task's global completion counter under its cap, credits the reward
	// and appends the audit records. Returns the new balance.
	CompleteTask(ctx context.Context, userID uuid.UUID, task *model.Task, now time.Time) (int, error)
}

type ledgerRepository struct {
	db *gorm.DB
}

func NewLedgerRepository(db *gorm.DB) LedgerRepository {
	return &ledgerRepository{db: db}
}

func (r *ledgerRepository) ApplyDailyReward(ctx context.Context, userID uuid.UUID, rule *model.RewardRule, now, cutoff time.Time) (int, error) {
	var newBalance int

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&model.User{}).
			Where("id = ?", userID).
			Where("last_daily_reward IS NULL OR last_daily_reward <= ?", cutoff).
			Updates(map[string]interface{}{
				"coins":             gorm.Expr("coins + ?", rule.Points),
				"last_daily_reward": now,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			// A concurrent call won the race inside the cooldown window.
			return ErrNotEligible
		}

		var user model.User
		if err := tx.Select("coins").Where("id = ?", userID).First(&user).Error; err != nil {
			return err
		}
		newBalance = user.Coins

		txn := &model.Transaction{
			UserID:      userID,
			Amount:      rule.Points,
			Type:        model.TransactionCredit,
			RuleKey:     rule.Key,
			Description: rule.Description,
		}
		if err := tx.Create(txn).Error; err != nil {
			return err
		}

		event := &model.ActivityEvent{
			UserID: userID,
			Action: model.ActionDailyReward,
			Detail: map[string]any{"rule_key": rule.Key, "points": rule.Points},
		}
		return tx.Create(event).Error
	})
	if err != nil {
		return 0, err
	}

	return newBalance, nil
}

func (r *ledgerRepository) CompleteTask(ctx context.Context, userID uuid.UUID, task *model.Task, now time.Time) (int, error) {
	var newBalance int

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Exactly-once per (user, task): the composite primary key makes
		// this insert the compare-and-swap for concurrent claims.
		res := tx.Clauses(clause.OnConflict{DoNothing: true}).
			Create(&model.CompletedTask{UserID: userID, TaskID: task.ID})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrAlreadyCompleted
		}

		res = tx.Model(&model.Task{}).
			Where("id = ?", task.ID).
			Where("max_completions IS NULL OR completion_count < max_completions").
			Update("completion_count", gorm.Expr("completion_count + 1"))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrCompletionLimitReached
		}

		res = tx.Model(&model.User{}).
			Where("id = ?", userID).
			Update("coins", gorm.Expr("coins + ?", task.CoinsReward))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		var user model.User
		if err := tx.Select("coins").Where("id = ?", userID).First(&user).Error; err != nil {
			return err
		}
		newBalance = user.Coins

		taskID := task.ID
		txn := &model.Transaction{
			UserID:      userID,
			Amount:      task.CoinsReward,
			Type:        model.TransactionCredit,
			RuleKey:     "task_" + task.Category,
			Description: "Task completed: " + task.Title,
			TaskID:      &taskID,
		}
		if err := tx.Create(txn).Error; err != nil {
			return err
		}

		events := []model.ActivityEvent{
			{
				UserID: userID,
				Action: model.ActionTaskCompleted,
				Detail: map[string]any{"task_id": task.ID.String(), "task_title": task.Title},
			},
			{
				UserID: userID,
				Action: model.ActionCoinsEarned,
				Detail: map[string]any{"amount": task.CoinsReward, "source": "task_" + task.Category},
			},
		}
		return tx.Create(&events).Error
	})
	if err != nil {
		return 0, err
	}

	return newBalance, nil
}
