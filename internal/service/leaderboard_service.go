package service

import (
	"context"

	"vitacoin.app/rewardsplatform/internal/dto"
	"vitacoin.app/rewardsplatform/internal/repository"
)

const DefaultLeaderboardSize = 10

type LeaderboardService interface {
	GetLeaderboard(ctx context.Context, limit int) ([]dto.LeaderboardEntry, error)
}

type leaderboardService struct {
	repo repository.LeaderboardRepository
}

func NewLeaderboardService(repo repository.LeaderboardRepository) LeaderboardService {
	return &leaderboardService{repo: repo}
}

// GetLeaderboard recomputes the ranking on every call; no rank state is
// cached. Ties share a balance but never a rank: positions are strictly 1..N
// in storage order.
func (s *leaderboardService) GetLeaderboard(ctx context.Context, limit int) ([]dto.LeaderboardEntry, error) {
	if limit <= 0 {
		limit = DefaultLeaderboardSize
	}

	users, err := s.repo.TopByCoins(ctx, limit)
	if err != nil {
		return nil, err
	}

	entries := make([]dto.LeaderboardEntry, 0, len(users))
	for i, user := range users {
		entries = append(entries, dto.LeaderboardEntry{
			ID:    user.ID.String(),
			Name:  user.Name,
			Coins: user.Coins,
			Rank:  i + 1,
		})
	}

	return entries, nil
}
