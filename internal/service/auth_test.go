package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuth(e *env) *AuthService {
	return NewAuthService(e.users, "test-secret", time.Hour)
}

func TestSignupAndLogin(t *testing.T) {
	e := newEnv(t)
	auth := newAuth(e)
	ctx := context.Background()

	u, err := auth.Signup(ctx, "alice", "alice@example.com", "hunter22")
	require.NoError(t, err)
	assert.NotEmpty(t, u.ID)
	assert.NotEqual(t, "hunter22", u.PasswordHash, "password is hashed")

	token, logged, err := auth.Login(ctx, "alice", "hunter22")
	require.NoError(t, err)
	assert.Equal(t, u.ID, logged.ID)

	got, err := auth.Authenticate(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, "alice", got.Username)
}

func TestSignupDuplicateUsername(t *testing.T) {
	e := newEnv(t)
	auth := newAuth(e)
	ctx := context.Background()

	_, err := auth.Signup(ctx, "alice", "", "pw")
	require.NoError(t, err)
	_, err = auth.Signup(ctx, "alice", "", "pw2")
	assert.ErrorIs(t, err, ErrUsernameTaken)
}

func TestLoginBadCredentials(t *testing.T) {
	e := newEnv(t)
	auth := newAuth(e)
	ctx := context.Background()

	_, err := auth.Signup(ctx, "alice", "", "right")
	require.NoError(t, err)

	_, _, err = auth.Login(ctx, "alice", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, _, err = auth.Login(ctx, "nobody", "x")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthenticateGarbageToken(t *testing.T) {
	e := newEnv(t)
	auth := newAuth(e)
	_, err := auth.Authenticate(context.Background(), "not-a-token")
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestAuthenticateWrongSecret(t *testing.T) {
	e := newEnv(t)
	auth := newAuth(e)
	other := NewAuthService(e.users, "other-secret", time.Hour)
	ctx := context.Background()

	_, err := auth.Signup(ctx, "alice", "", "pw")
	require.NoError(t, err)
	token, _, err := auth.Login(ctx, "alice", "pw")
	require.NoError(t, err)

	_, err = other.Authenticate(ctx, token)
	assert.ErrorIs(t, err, ErrUnauthorized)
}
