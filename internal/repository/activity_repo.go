package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"vitacoin.app/rewardsplatform/internal/model"
)

type ActivityRepository interface {
	Append(ctx context.Context, event *model.ActivityEvent) error
	// Recent returns at most limit events for the user, newest first. The
	// evaluator never loads more than this bounded window.
	Recent(ctx context.Context, userID uuid.UUID, limit int) ([]model.ActivityEvent, error)
}

type activityRepository struct {
	db *gorm.DB
}

func NewActivityRepository(db *gorm.DB) ActivityRepository {
	return &activityRepository{db: db}
}

func (r *activityRepository) Append(ctx context.Context, event *model.ActivityEvent) error {
	return r.db.WithContext(ctx).Create(event).Error
}

func (r *activityRepository) Recent(ctx context.Context, userID uuid.UUID, limit int) ([]model.ActivityEvent, error) {
	var events []model.ActivityEvent
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&events).Error
	return events, err
}
