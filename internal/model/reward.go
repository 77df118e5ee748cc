package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RewardRule points are stored pre-negated for penalty rules. The engine
// credits whatever the rule author configured and never flips the sign; the
// Penalty flag is informational.
type RewardRule struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Key           string    `gorm:"size:50;uniqueIndex;not null" json:"key"`
	Description   string    `gorm:"type:text" json:"description"`
	Points        int       `gorm:"not null" json:"points"`
	Penalty       bool      `gorm:"not null;default:false" json:"penalty"`
	Active        bool      `gorm:"not null;default:true" json:"active"`
	CooldownHours *int      `json:"cooldown_hours,omitempty"`
	DailyCap      *int      `json:"daily_cap,omitempty"`
	PerUserCap    *int      `json:"per_user_cap,omitempty"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (r *RewardRule) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

const (
	TransactionCredit = "credit"
	TransactionDebit  = "debit"
)

// Transaction is append-only: the audit trail of every balance change. Rows
// are never updated or deleted, even when the authorizing rule is later
// deactivated. Debit rows are representable but no current operation writes
// one.
type Transaction struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID      uuid.UUID  `gorm:"type:uuid;index;not null" json:"user_id"`
	Amount      int        `gorm:"not null" json:"amount"`
	Type        string     `gorm:"size:10;not null" json:"type"`
	RuleKey     string     `gorm:"size:50;not null" json:"rule_key"`
	Description string     `gorm:"type:text" json:"description"`
	TaskID      *uuid.UUID `gorm:"type:uuid;index" json:"task_id,omitempty"`
	CreatedAt   time.Time  `gorm:"autoCreateTime;index" json:"created_at"`
}

func (t *Transaction) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}
