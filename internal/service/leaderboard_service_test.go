package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"vitacoin.app/rewardsplatform/internal/model"
)

type stubLeaderboardRepo struct {
	users []model.User
}

func (s *stubLeaderboardRepo) TopByCoins(ctx context.Context, limit int) ([]model.User, error) {
	if len(s.users) > limit {
		return s.users[:limit], nil
	}
	return s.users, nil
}

func TestGetLeaderboard_StrictRanksOnTies(t *testing.T) {
	older := time.Now().Add(-2 * time.Hour)
	newer := time.Now().Add(-time.Hour)

	// Already in storage order: coins DESC, created_at ASC.
	repo := &stubLeaderboardRepo{users: []model.User{
		{ID: uuid.New(), Name: "alice", Coins: 50, CreatedAt: older},
		{ID: uuid.New(), Name: "bob", Coins: 50, CreatedAt: newer},
		{ID: uuid.New(), Name: "carol", Coins: 30},
	}}

	entries, err := NewLeaderboardService(repo).GetLeaderboard(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, entries, 3)

	assert.Equal(t, []int{1, 2, 3}, []int{entries[0].Rank, entries[1].Rank, entries[2].Rank})
	assert.Equal(t, "alice", entries[0].Name)
	assert.Equal(t, "bob", entries[1].Name)
	assert.Equal(t, "carol", entries[2].Name)
}

func TestGetLeaderboard_DefaultLimit(t *testing.T) {
	users := make([]model.User, 15)
	for i := range users {
		users[i] = model.User{ID: uuid.New(), Coins: 100 - i}
	}
	repo := &stubLeaderboardRepo{users: users}

	entries, err := NewLeaderboardService(repo).GetLeaderboard(context.Background(), 0)
	require.NoError(t, err)
	assert.Len(t, entries, DefaultLeaderboardSize)
}
