package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"vitacoin.app/rewardsplatform/internal/dto"
	"vitacoin.app/rewardsplatform/internal/model"
)

func TestCreateRule_PenaltyPointsStoredNegated(t *testing.T) {
	rules := &stubRuleRepo{rules: map[string]*model.RewardRule{}}
	svc := NewAdminService(&stubUserRepo{}, rules)

	rule, err := svc.CreateRule(context.Background(), dto.RuleCreateInput{
		Key:     "spam_penalty",
		Points:  15,
		Penalty: true,
	})
	require.NoError(t, err)

	assert.Equal(t, -15, rule.Points)
	assert.True(t, rule.Penalty)
	assert.True(t, rule.Active)
}

func TestCreateRule_DuplicateKeyRejected(t *testing.T) {
	rules := &stubRuleRepo{rules: map[string]*model.RewardRule{
		"daily_login": {Key: "daily_login", Points: 10, Active: true},
	}}
	svc := NewAdminService(&stubUserRepo{}, rules)

	_, err := svc.CreateRule(context.Background(), dto.RuleCreateInput{Key: "daily_login", Points: 5})
	assert.ErrorIs(t, err, ErrRuleKeyTaken)
}

func TestCreateRule_ExplicitInactive(t *testing.T) {
	rules := &stubRuleRepo{rules: map[string]*model.RewardRule{}}
	svc := NewAdminService(&stubUserRepo{}, rules)

	inactive := false
	rule, err := svc.CreateRule(context.Background(), dto.RuleCreateInput{
		Key:    "seasonal",
		Points: 30,
		Active: &inactive,
	})
	require.NoError(t, err)
	assert.False(t, rule.Active)
}
