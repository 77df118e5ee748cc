package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Task kinds select the eligibility predicate at creation time. A task with
// an empty or unknown kind is always claimable.
const (
	TaskKindLogin             = "login"
	TaskKindMultiAction       = "multi_action"
	TaskKindThreshold         = "threshold"
	TaskKindCountWithinWindow = "count_within_window"
)

const (
	TaskCategoryDaily       = "daily"
	TaskCategoryWeekly      = "weekly"
	TaskCategoryAchievement = "achievement"
	TaskCategorySpecial     = "special"
)

type Task struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Title       string    `gorm:"size:100;not null" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	Category    string    `gorm:"size:20;not null" json:"category"`
	CoinsReward int       `gorm:"not null" json:"coins_reward"`
	Difficulty  string    `gorm:"size:20;not null;default:easy" json:"difficulty"`

	// Typed requirement parameters, interpreted per Kind.
	Kind            string   `gorm:"size:30" json:"kind,omitempty"`
	RequiredActions []string `gorm:"serializer:json" json:"required_actions,omitempty"`
	TargetValue     int      `json:"target_value,omitempty"`
	WindowAction    string   `gorm:"size:50" json:"window_action,omitempty"`

	Active          bool       `gorm:"not null;default:true" json:"active"`
	MaxCompletions  *int       `json:"max_completions,omitempty"`
	CompletionCount int        `gorm:"not null;default:0" json:"completion_count"`
	ExpiresAt       *time.Time `json:"expires_at,omitempty"`
	CreatedAt       time.Time  `gorm:"autoCreateTime" json:"created_at"`
}

func (t *Task) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

func (t *Task) Expired(now time.Time) bool {
	return t.ExpiresAt != nil && t.ExpiresAt.Before(now)
}
