package usecase

import (
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/tharun69CS/EcoFinds/internal/adapter/repository/memory"
	"github.com/tharun69CS/EcoFinds/internal/platform/logger"
	"github.com/tharun69CS/EcoFinds/internal/user/domain"
)

func testLogger() *logger.Logger {
	return logger.NewWithOutput(io.Discard, &logger.Config{Level: "error", Format: "json"})
}

func TestUserUsecase_RegisterHashesPassword(t *testing.T) {
	uc := NewUserUsecase(memory.NewUserRepository(), testLogger())

	user, err := uc.Register(context.Background(), "alice", "alice@example.com", "s3cretpw")
	require.NoError(t, err)

	assert.NotEmpty(t, user.ID)
	assert.NotEqual(t, "s3cretpw", user.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("s3cretpw")))
}

func TestUserUsecase_RegisterDuplicate(t *testing.T) {
	repo := memory.NewUserRepository()
	uc := NewUserUsecase(repo, testLogger())
	ctx := context.Background()

	_, err := uc.Register(ctx, "alice", "alice@example.com", "s3cretpw")
	require.NoError(t, err)

	_, err = uc.Register(ctx, "alice2", "alice@example.com", "s3cretpw")
	assert.ErrorIs(t, err, domain.ErrDuplicateEmail)

	_, err = uc.Register(ctx, "alice", "other@example.com", "s3cretpw")
	assert.ErrorIs(t, err, domain.ErrDuplicateUsername)
}

func TestUserUsecase_Login(t *testing.T) {
	uc := NewUserUsecase(memory.NewUserRepository(), testLogger())
	ctx := context.Background()

	registered, err := uc.Register(ctx, "alice", "alice@example.com", "s3cretpw")
	require.NoError(t, err)

	user, err := uc.Login(ctx, "alice@example.com", "s3cretpw")
	require.NoError(t, err)
	assert.Equal(t, registered.ID, user.ID)

	_, err = uc.Login(ctx, "alice@example.com", "wrongpw")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	// An unknown email yields the same error as a wrong password.
	_, err = uc.Login(ctx, "nobody@example.com", "s3cretpw")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestUserUsecase_Profile(t *testing.T) {
	uc := NewUserUsecase(memory.NewUserRepository(), testLogger())
	ctx := context.Background()

	registered, err := uc.Register(ctx, "alice", "alice@example.com", "s3cretpw")
	require.NoError(t, err)

	user, err := uc.Profile(ctx, registered.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)

	_, err = uc.Profile(ctx, domain.ID("ghost"))
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}
