package service

import (
	"context"

	"vitacoin.app/rewardsplatform/internal/dto"
	"vitacoin.app/rewardsplatform/internal/model"
	"vitacoin.app/rewardsplatform/internal/repository"
)

type AdminService interface {
	ListUsers(ctx context.Context) ([]*model.User, error)
	ListRules(ctx context.Context) ([]model.RewardRule, error)
	CreateRule(ctx context.Context, input dto.RuleCreateInput) (*model.RewardRule, error)
}

type adminService struct {
	users repository.UserRepository
	rules repository.RuleRepository
}

func NewAdminService(users repository.UserRepository, rules repository.RuleRepository) AdminService {
	return &adminService{
		users: users,
		rules: rules,
	}
}

func (s *adminService) ListUsers(ctx context.Context) ([]*model.User, error) {
	return s.users.FindAll(ctx)
}

func (s *adminService) ListRules(ctx context.Context) ([]model.RewardRule, error) {
	return s.rules.FindAll(ctx)
}

func (s *adminService) CreateRule(ctx context.Context, input dto.RuleCreateInput) (*model.RewardRule, error) {
	exists, err := s.rules.ExistsByKey(ctx, input.Key)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrRuleKeyTaken
	}

	points := input.Points
	// Penalty rules store their points pre-negated; the ledger always credits
	// the stored value as-is.
	if input.Penalty && points > 0 {
		points = -points
	}

	active := true
	if input.Active != nil {
		active = *input.Active
	}

	rule := &model.RewardRule{
		Key:           input.Key,
		Description:   input.Description,
		Points:        points,
		Penalty:       input.Penalty,
		Active:        active,
		CooldownHours: input.CooldownHours,
		DailyCap:      input.DailyCap,
		PerUserCap:    input.PerUserCap,
	}

	if err := s.rules.Create(ctx, rule); err != nil {
		return nil, err
	}

	return rule, nil
}
