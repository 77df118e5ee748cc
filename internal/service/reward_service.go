package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"vitacoin.app/rewardsplatform/internal/dto"
	"vitacoin.app/rewardsplatform/internal/model"
	"vitacoin.app/rewardsplatform/internal/realtime"
	"vitacoin.app/rewardsplatform/internal/repository"
)

const (
	DailyRewardRuleKey   = "daily_login"
	defaultCooldownHours = 24
)

type RewardService interface {
	ApplyDailyReward(ctx context.Context, userID uuid.UUID) (*dto.DailyRewardResponse, error)
}

type rewardService struct {
	users           repository.UserRepository
	rules           repository.RuleRepository
	ledger          repository.LedgerRepository
	transactions    repository.TransactionRepository
	leaderboard     LeaderboardService
	hub             Broadcaster
	leaderboardSize int
}

func NewRewardService(
	users repository.UserRepository,
	rules repository.RuleRepository,
	ledger repository.LedgerRepository,
	transactions repository.TransactionRepository,
	leaderboard LeaderboardService,
	hub Broadcaster,
	leaderboardSize int,
) RewardService {
	if leaderboardSize <= 0 {
		leaderboardSize = DefaultLeaderboardSize
	}
	return &rewardService{
		users:           users,
		rules:           rules,
		ledger:          ledger,
		transactions:    transactions,
		leaderboard:     leaderboard,
		hub:             hub,
		leaderboardSize: leaderboardSize,
	}
}

// ApplyDailyReward credits the daily login reward once per cooldown window.
// Ineligibility is reported in the response, never as an error.
func (s *rewardService) ApplyDailyReward(ctx context.Context, userID uuid.UUID) (*dto.DailyRewardResponse, error) {
	user, err := s.users.FindByID(ctx, userID.String())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	rule, err := s.rules.FindActiveByKey(ctx, DailyRewardRuleKey)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRuleNotFound
		}
		return nil, err
	}

	now := time.Now().UTC()
	cooldown := ruleCooldown(rule)

	if resp := checkCooldown(user.LastDailyReward, now, cooldown); resp != nil {
		return resp, nil
	}

	if resp, err := s.checkCaps(ctx, user.ID, rule, now); err != nil || resp != nil {
		return resp, err
	}

	cutoff := now.Add(-cooldown)
	newBalance, err := s.ledger.ApplyDailyReward(ctx, user.ID, rule, now, cutoff)
	if err != nil {
		if errors.Is(err, repository.ErrNotEligible) {
			// A concurrent call claimed first; report the full window.
			next := hoursCeil(cooldown)
			return ineligibleResponse(next), nil
		}
		return nil, err
	}

	s.pushBalanceUpdate(user.ID, newBalance, rule.Points, "Daily Reward")

	earned := rule.Points
	return &dto.DailyRewardResponse{
		Success:     true,
		Message:     fmt.Sprintf("Daily reward claimed! +%d coins", rule.Points),
		CoinsEarned: &earned,
		NewBalance:  &newBalance,
	}, nil
}

// checkCooldown returns the ineligible response when the cooldown has not
// elapsed yet. Timestamps stored without a zone are treated as UTC.
func checkCooldown(last *time.Time, now time.Time, cooldown time.Duration) *dto.DailyRewardResponse {
	if last == nil {
		return nil
	}

	remaining := cooldown - now.Sub(last.UTC())
	if remaining <= 0 {
		return nil
	}

	return ineligibleResponse(hoursCeil(remaining))
}

// checkCaps enforces the rule's optional daily and lifetime caps against the
// transaction history.
func (s *rewardService) checkCaps(ctx context.Context, userID uuid.UUID, rule *model.RewardRule, now time.Time) (*dto.DailyRewardResponse, error) {
	if rule.DailyCap != nil {
		dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
		count, err := s.transactions.CountByUserAndRuleSince(ctx, userID, rule.Key, dayStart)
		if err != nil {
			return nil, err
		}
		if count >= int64(*rule.DailyCap) {
			return &dto.DailyRewardResponse{
				Success: false,
				Message: "Daily cap for this reward reached. Try again tomorrow.",
			}, nil
		}
	}

	if rule.PerUserCap != nil {
		count, err := s.transactions.CountByUserAndRule(ctx, userID, rule.Key)
		if err != nil {
			return nil, err
		}
		if count >= int64(*rule.PerUserCap) {
			return &dto.DailyRewardResponse{
				Success: false,
				Message: "You have reached the limit for this reward.",
			}, nil
		}
	}

	return nil, nil
}

func (s *rewardService) pushBalanceUpdate(userID uuid.UUID, newBalance, delta int, source string) {
	if s.hub == nil {
		return
	}

	s.hub.SendToUser(userID.String(), realtime.NewBalanceUpdate(newBalance, delta, source))
	broadcastLeaderboard(s.hub, s.leaderboard, s.leaderboardSize)
}

// broadcastLeaderboard recomputes the ranking and fans it out to everyone.
// Failures are logged and absorbed: realtime delivery must never fail the
// business operation that triggered it.
func broadcastLeaderboard(hub Broadcaster, leaderboard LeaderboardService, size int) {
	entries, err := leaderboard.GetLeaderboard(context.Background(), size)
	if err != nil {
		log.Printf("failed to compute leaderboard for broadcast: %v", err)
		return
	}
	hub.Broadcast(realtime.NewLeaderboardUpdate(entries))
}

func ruleCooldown(rule *model.RewardRule) time.Duration {
	hours := defaultCooldownHours
	if rule.CooldownHours != nil {
		hours = *rule.CooldownHours
	}
	return time.Duration(hours) * time.Hour
}

func hoursCeil(d time.Duration) int {
	return int(math.Ceil(d.Hours()))
}

func ineligibleResponse(nextInHours int) *dto.DailyRewardResponse {
	return &dto.DailyRewardResponse{
		Success:      false,
		Message:      fmt.Sprintf("Daily reward already claimed. Next reward in %d hours.", nextInHours),
		NextRewardIn: &nextInHours,
	}
}
