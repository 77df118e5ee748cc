package dto

import (
	"time"

	"vitacoin.app/rewardsplatform/internal/model"
)

// Progress status tags. The shape (status tag, description, optional numeric
// fields) is part of the API contract even where wording varies.
const (
	ProgressClaimable  = "claimable"
	ProgressInProgress = "in_progress"
	ProgressCompleted  = "completed"
)

type TaskProgress struct {
	Status         string   `json:"status"`
	Description    string   `json:"description"`
	CanClaim       bool     `json:"can_claim"`
	MissingActions []string `json:"missing_actions,omitempty"`
	Achieved       *int     `json:"achieved,omitempty"`
	Target         *int     `json:"target,omitempty"`
	Remaining      *int     `json:"remaining,omitempty"`
}

type TaskWithProgress struct {
	model.Task
	Completed bool         `json:"completed"`
	Progress  TaskProgress `json:"progress"`
}

type TaskClaimResponse struct {
	Success     bool   `json:"success"`
	Message     string `json:"message"`
	CoinsEarned int    `json:"coins_earned"`
	NewBalance  int    `json:"new_balance"`
}

type TaskCreateInput struct {
	Title       string `json:"title" binding:"required,max=100"`
	Description string `json:"description"`
	Category    string `json:"category" binding:"required,oneof=daily weekly achievement special"`
	CoinsReward int    `json:"coins_reward" binding:"required,min=1"`
	Difficulty  string `json:"difficulty" binding:"omitempty,oneof=easy medium hard"`

	Kind            string   `json:"kind" binding:"omitempty,oneof=login multi_action threshold count_within_window"`
	RequiredActions []string `json:"required_actions"`
	TargetValue     int      `json:"target_value"`
	WindowAction    string   `json:"window_action"`

	MaxCompletions *int       `json:"max_completions"`
	ExpiresAt      *time.Time `json:"expires_at"`
}

type TaskSearchResult struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
	CoinsReward int    `json:"coins_reward"`
	Difficulty  string `json:"difficulty"`
}
