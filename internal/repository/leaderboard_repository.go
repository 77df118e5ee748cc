package repository

import (
	"context"

	"gorm.io/gorm"
	"vitacoin.app/rewardsplatform/internal/model"
)

type LeaderboardRepository interface {
	// TopByCoins returns the top users by balance. Ties keep storage
	// order (earliest account first) so ranks are strictly 1..N.
	TopByCoins(ctx context.Context, limit int) ([]model.User, error)
}

type leaderboardRepository struct {
	db *gorm.DB
}

func NewLeaderboardRepository(db *gorm.DB) LeaderboardRepository {
	return &leaderboardRepository{db: db}
}

func (r *leaderboardRepository) TopByCoins(ctx context.Context, limit int) ([]model.User, error) {
	var users []model.User
	err := r.db.WithContext(ctx).
		Order("coins DESC, created_at ASC, id ASC").
		Limit(limit).
		Find(&users).Error
	return users, err
}
