package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Well-known activity actions fed back into task evaluation.
const (
	ActionDailyReward        = "daily_reward"
	ActionTaskCompleted      = "task_completed"
	ActionCoinsEarned        = "coins_earned"
	ActionLogin              = "login"
	ActionProfileViewed      = "profile_viewed"
	ActionTransactionsViewed = "transactions_viewed"
	ActionLeaderboardViewed  = "leaderboard_viewed"
)

// ActivityEvent is the per-user append-only event stream. The evaluator only
// ever loads a bounded recent window of it, so the table may grow without
// affecting read cost.
type ActivityEvent struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID      `gorm:"type:uuid;index:idx_activity_user_time,priority:1;not null" json:"user_id"`
	Action    string         `gorm:"size:50;not null" json:"action"`
	Detail    map[string]any `gorm:"serializer:json" json:"detail,omitempty"`
	CreatedAt time.Time      `gorm:"autoCreateTime;index:idx_activity_user_time,priority:2" json:"created_at"`
}

func (e *ActivityEvent) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}
