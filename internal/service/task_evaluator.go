package service

import (
	"fmt"
	"strings"
	"time"

	"vitacoin.app/rewardsplatform/internal/dto"
	"vitacoin.app/rewardsplatform/internal/model"
)

// EvaluateRequirements computes how close a user is to claiming a task. It is
// pure: it inspects the user, the task's typed requirement parameters and the
// recent activity window, and never mutates any of them. Tasks without a
// specialized kind are immediately claimable by design.
func EvaluateRequirements(user *model.User, task *model.Task, events []model.ActivityEvent, now time.Time) dto.TaskProgress {
	switch task.Kind {
	case model.TaskKindLogin:
		return dto.TaskProgress{
			Status:      dto.ProgressClaimable,
			Description: "Log in and claim your reward",
			CanClaim:    true,
		}

	case model.TaskKindMultiAction:
		return evaluateMultiAction(task, events)

	case model.TaskKindThreshold:
		return evaluateThreshold(user, task)

	case model.TaskKindCountWithinWindow:
		return evaluateCountWithinWindow(task, events, now)

	default:
		return dto.TaskProgress{
			Status:      dto.ProgressClaimable,
			Description: "Ready to claim",
			CanClaim:    true,
		}
	}
}

// evaluateMultiAction requires every named action to appear in the recent
// activity window. Missing actions are reported in requirement order.
func evaluateMultiAction(task *model.Task, events []model.ActivityEvent) dto.TaskProgress {
	seen := make(map[string]bool, len(events))
	for _, event := range events {
		seen[event.Action] = true
	}

	var missing []string
	for _, action := range task.RequiredActions {
		if !seen[action] {
			missing = append(missing, action)
		}
	}

	if len(missing) == 0 {
		return dto.TaskProgress{
			Status:      dto.ProgressClaimable,
			Description: "All required actions completed",
			CanClaim:    true,
		}
	}

	return dto.TaskProgress{
		Status:         dto.ProgressInProgress,
		Description:    "Still missing: " + strings.Join(missing, ", "),
		MissingActions: missing,
	}
}

// evaluateThreshold compares the user's balance against the numeric target
// and reports the remaining delta.
func evaluateThreshold(user *model.User, task *model.Task) dto.TaskProgress {
	target := task.TargetValue
	achieved := user.Coins

	if achieved >= target {
		return dto.TaskProgress{
			Status:      dto.ProgressClaimable,
			Description: fmt.Sprintf("Balance target of %d coins reached", target),
			CanClaim:    true,
			Achieved:    &achieved,
			Target:      &target,
		}
	}

	remaining := target - achieved
	return dto.TaskProgress{
		Status:      dto.ProgressInProgress,
		Description: fmt.Sprintf("Earn %d more coins to reach %d", remaining, target),
		Achieved:    &achieved,
		Target:      &target,
		Remaining:   &remaining,
	}
}

// evaluateCountWithinWindow counts the named action within the current UTC
// calendar day. Events from previous days never count, even when they are
// still inside the loaded window.
func evaluateCountWithinWindow(task *model.Task, events []model.ActivityEvent, now time.Time) dto.TaskProgress {
	now = now.UTC()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	target := task.TargetValue
	achieved := 0
	for _, event := range events {
		if event.Action == task.WindowAction && !event.CreatedAt.UTC().Before(dayStart) {
			achieved++
		}
	}

	if achieved >= target {
		return dto.TaskProgress{
			Status:      dto.ProgressClaimable,
			Description: fmt.Sprintf("Done: %d of %d today", achieved, target),
			CanClaim:    true,
			Achieved:    &achieved,
			Target:      &target,
		}
	}

	return dto.TaskProgress{
		Status:      dto.ProgressInProgress,
		Description: fmt.Sprintf("Progress: %d of %d today", achieved, target),
		Achieved:    &achieved,
		Target:      &target,
	}
}
