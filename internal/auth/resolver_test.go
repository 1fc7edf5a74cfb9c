package auth

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tharun69CS/EcoFinds/internal/adapter/repository/memory"
	"github.com/tharun69CS/EcoFinds/internal/platform/logger"
	userdomain "github.com/tharun69CS/EcoFinds/internal/user/domain"
)

func testLogger() *logger.Logger {
	return logger.NewWithOutput(io.Discard, &logger.Config{Level: "error", Format: "json"})
}

func newTestResolver(t *testing.T, ttl time.Duration) (*Resolver, *TokenManager, *userdomain.User) {
	t.Helper()
	users := memory.NewUserRepository()
	user := &userdomain.User{
		Username:     "alice",
		Email:        "alice@example.com",
		PasswordHash: "irrelevant",
		CreatedAt:    time.Now(),
	}
	require.NoError(t, users.Create(context.Background(), user))

	tokens := NewTokenManager("test-secret", ttl)
	return NewResolver(tokens, users, testLogger()), tokens, user
}

func TestResolver_RoundTrip(t *testing.T) {
	resolver, tokens, user := newTestResolver(t, time.Hour)

	token, expiresAt, err := tokens.Issue(user.ID)
	require.NoError(t, err)
	assert.True(t, expiresAt.After(time.Now()))

	identity, err := resolver.Resolve(context.Background(), "Bearer "+token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, identity.UserID)
	assert.Equal(t, "alice", identity.Username)
	assert.Equal(t, "alice@example.com", identity.Email)
}

func TestResolver_MissingCredential(t *testing.T) {
	resolver, _, _ := newTestResolver(t, time.Hour)

	tests := []struct {
		name   string
		header string
	}{
		{"empty header", ""},
		{"no scheme", "sometoken"},
		{"wrong scheme", "Basic dXNlcjpwYXNz"},
		{"bearer without token", "Bearer"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := resolver.Resolve(context.Background(), tt.header)
			assert.ErrorIs(t, err, ErrMissingCredential)
		})
	}
}

func TestResolver_InvalidCredential(t *testing.T) {
	resolver, _, _ := newTestResolver(t, time.Hour)

	_, err := resolver.Resolve(context.Background(), "Bearer not.a.jwt")
	assert.ErrorIs(t, err, ErrInvalidCredential)

	// A token signed with a different secret is rejected.
	otherTokens := NewTokenManager("other-secret", time.Hour)
	forged, _, err := otherTokens.Issue(userdomain.ID("u1"))
	require.NoError(t, err)
	_, err = resolver.Resolve(context.Background(), "Bearer "+forged)
	assert.ErrorIs(t, err, ErrInvalidCredential)
}

func TestResolver_ExpiredCredential(t *testing.T) {
	resolver, tokens, user := newTestResolver(t, -time.Minute)

	token, _, err := tokens.Issue(user.ID)
	require.NoError(t, err)

	_, err = resolver.Resolve(context.Background(), "Bearer "+token)
	assert.ErrorIs(t, err, ErrInvalidCredential)
}

func TestResolver_UnknownIdentity(t *testing.T) {
	resolver, tokens, _ := newTestResolver(t, time.Hour)

	// Valid token for a user id that does not exist in the repository.
	token, _, err := tokens.Issue(userdomain.ID("ghost"))
	require.NoError(t, err)

	_, err = resolver.Resolve(context.Background(), "Bearer "+token)
	assert.ErrorIs(t, err, ErrUnknownIdentity)
}

func TestResolver_BearerSchemeIsCaseInsensitive(t *testing.T) {
	resolver, tokens, user := newTestResolver(t, time.Hour)

	token, _, err := tokens.Issue(user.ID)
	require.NoError(t, err)

	identity, err := resolver.Resolve(context.Background(), "bearer "+token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, identity.UserID)
}
