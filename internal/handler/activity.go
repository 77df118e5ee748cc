package handler

import (
	"context"
	"log"

	"github.com/google/uuid"
	"vitacoin.app/rewardsplatform/internal/model"
	"vitacoin.app/rewardsplatform/internal/repository"
)

// recordActivity appends a view event best-effort; failures never affect the
// response the user asked for.
func recordActivity(ctx context.Context, activity repository.ActivityRepository, userID uuid.UUID, action string) {
	if activity == nil {
		return
	}
	event := &model.ActivityEvent{UserID: userID, Action: action}
	if err := activity.Append(ctx, event); err != nil {
		log.Printf("failed to record %s activity for user %s: %v", action, userID, err)
	}
}
