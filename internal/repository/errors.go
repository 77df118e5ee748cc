package repository

import "errors"

// Conditional-update outcomes surfaced to the service layer. These are not
// storage failures: they mean the guarded precondition no longer held when
// the write was attempted.
var (
	ErrNotEligible            = errors.New("cooldown has not elapsed")
	ErrAlreadyCompleted       = errors.New("task already completed by user")
	ErrCompletionLimitReached = errors.New("task completion limit reached")
)
