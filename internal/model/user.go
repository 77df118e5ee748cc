package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID              uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Name            string     `gorm:"size:100;not null" json:"name"`
	Email           string     `gorm:"size:100;uniqueIndex;not null" json:"email"`
	PasswordHash    string     `gorm:"size:255;not null" json:"-"`
	Role            string     `gorm:"size:20;not null;default:user" json:"role"`
	Coins           int        `gorm:"not null;default:0" json:"coins"`
	AvatarURL       *string    `gorm:"type:text" json:"avatar_url,omitempty"`
	LastDailyReward *time.Time `json:"last_daily_reward,omitempty"`
	CreatedAt       time.Time  `gorm:"autoCreateTime" json:"created_at"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// CompletedTask is one row per (user, task) completion. The composite primary
// key doubles as the conditional-update target: inserting with ON CONFLICT DO
// NOTHING is what guarantees a task credits a user at most once.
type CompletedTask struct {
	UserID    uuid.UUID `gorm:"type:uuid;primaryKey" json:"user_id"`
	TaskID    uuid.UUID `gorm:"type:uuid;primaryKey" json:"task_id"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"completed_at"`
}
