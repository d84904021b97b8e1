package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterAndLogin(t *testing.T) {
	setupTestDB(t)
	s := NewAuthService()
	ctx := context.Background()

	user, err := s.Register(ctx, "alice", "alice@example.com", "secret123")
	require.NoError(t, err)
	assert.NotZero(t, user.ID)
	assert.NotEqual(t, "secret123", user.Password, "пароль не должен храниться открытым текстом")

	token, err := s.Login(ctx, "alice", "secret123")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	fromToken, err := s.UserByToken(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, fromToken.ID)
}

func TestRegisterDuplicate(t *testing.T) {
	setupTestDB(t)
	s := NewAuthService()
	ctx := context.Background()

	_, err := s.Register(ctx, "alice", "alice@example.com", "secret123")
	require.NoError(t, err)

	_, err = s.Register(ctx, "alice", "other@example.com", "secret123")
	assert.ErrorIs(t, err, ErrConflict)
}

func TestLoginWrongPassword(t *testing.T) {
	setupTestDB(t)
	s := NewAuthService()
	ctx := context.Background()

	_, err := s.Register(ctx, "alice", "alice@example.com", "secret123")
	require.NoError(t, err)

	_, err = s.Login(ctx, "alice", "wrong")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLogoutRevokesToken(t *testing.T) {
	setupTestDB(t)
	s := NewAuthService()
	ctx := context.Background()

	_, err := s.Register(ctx, "alice", "alice@example.com", "secret123")
	require.NoError(t, err)
	token, err := s.Login(ctx, "alice", "secret123")
	require.NoError(t, err)

	require.NoError(t, s.Logout(ctx, token))

	_, err = s.UserByToken(ctx, token)
	assert.ErrorIs(t, err, ErrNotFound)

	// Повторный logout того же токена
	assert.ErrorIs(t, s.Logout(ctx, token), ErrNotFound)
}
