package service

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterAndLogin(t *testing.T) {
	env := newTestEnv(t)

	user, err := env.auth.Register(context.Background(), "new@example.com", "password123", "New User")
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, user.ID)
	assert.Equal(t, "New User", user.FullName)
	// The stored hash is never the raw password.
	assert.NotEqual(t, "password123", user.PasswordHash)

	token, loggedIn, err := env.auth.Login(context.Background(), "new@example.com", "password123")
	require.NoError(t, err)
	require.NotNil(t, loggedIn)
	assert.Equal(t, user.ID, loggedIn.ID)
	assert.NotEmpty(t, token)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.auth.Register(context.Background(), "taken@example.com", "password123", "")
	require.NoError(t, err)

	_, err = env.auth.Register(context.Background(), "taken@example.com", "different456", "")
	assert.ErrorIs(t, err, ErrUserAlreadyExists)
}

func TestLoginFailures(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.auth.Register(context.Background(), "user@example.com", "password123", "")
	require.NoError(t, err)

	_, _, err = env.auth.Login(context.Background(), "user@example.com", "wrongpass1")
	assert.ErrorIs(t, err, ErrAuthenticationFailed)

	// An unknown email fails the same way as a bad password.
	_, _, err = env.auth.Login(context.Background(), "ghost@example.com", "password123")
	assert.ErrorIs(t, err, ErrAuthenticationFailed)
}

func TestLoginTokenClaims(t *testing.T) {
	env := newTestEnv(t)

	user, err := env.auth.Register(context.Background(), "user@example.com", "password123", "")
	require.NoError(t, err)

	token, _, err := env.auth.Login(context.Background(), "user@example.com", "password123")
	require.NoError(t, err)

	claims := &jwtClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(env.auth.GetJWTSecret()), nil
	})
	require.NoError(t, err)
	require.True(t, parsed.Valid)

	assert.Equal(t, user.ID.String(), claims.UserID)
	assert.Equal(t, "user@example.com", claims.Email)
	assert.Equal(t, "fitness-manager", claims.Issuer)
	require.NotNil(t, claims.ExpiresAt)
	assert.WithinDuration(t, time.Now().Add(env.auth.TokenTTL()), claims.ExpiresAt.Time, time.Minute)
}

func TestGetUserByID(t *testing.T) {
	env := newTestEnv(t)

	user, err := env.auth.Register(context.Background(), "user@example.com", "password123", "Full Name")
	require.NoError(t, err)

	got, err := env.auth.GetUserByID(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Full Name", got.FullName)

	_, err = env.auth.GetUserByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrUserNotFound)
}
