package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"vitacoin.app/rewardsplatform/internal/dto"
	"vitacoin.app/rewardsplatform/internal/model"
)

func TestRegister_EmailNormalizedAndTaken(t *testing.T) {
	users := &stubUserRepo{}
	svc := NewAuthService(users, &stubActivityRepo{}, "secret", time.Hour)

	user, err := svc.Register(context.Background(), dto.RegisterInput{
		Name:     "Alice",
		Email:    "  Alice@Example.COM ",
		Password: "password123",
	})
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", user.Email)
	assert.Equal(t, "user", user.Role)
	assert.NotEqual(t, "password123", user.PasswordHash)

	users.user = user
	_, err = svc.Register(context.Background(), dto.RegisterInput{
		Name:     "Other",
		Email:    "alice@example.com",
		Password: "password123",
	})
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestLogin(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	require.NoError(t, err)

	users := &stubUserRepo{user: &model.User{
		Name:         "Alice",
		Email:        "alice@example.com",
		PasswordHash: string(hash),
	}}
	activity := &stubActivityRepo{}
	svc := NewAuthService(users, activity, "secret", time.Hour)

	t.Run("valid credentials", func(t *testing.T) {
		res, err := svc.Login(context.Background(), dto.LoginInput{Email: "alice@example.com", Password: "password123"})
		require.NoError(t, err)
		assert.NotEmpty(t, res.AccessToken)
		assert.Equal(t, "Bearer", res.TokenType)

		require.Len(t, activity.events, 1)
		assert.Equal(t, model.ActionLogin, activity.events[0].Action)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Login(context.Background(), dto.LoginInput{Email: "alice@example.com", Password: "nope"})
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := svc.Login(context.Background(), dto.LoginInput{Email: "ghost@example.com", Password: "password123"})
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}
