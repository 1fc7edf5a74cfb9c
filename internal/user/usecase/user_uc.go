package usecase

import (
	"context"
	"errors"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/tharun69CS/EcoFinds/internal/platform/logger"
	"github.com/tharun69CS/EcoFinds/internal/user/domain"
)

var ErrInvalidCredentials = errors.New("invalid email or password")

type UserUsecase struct {
	repo   domain.Repository
	logger *logger.Logger
}

func NewUserUsecase(repo domain.Repository, log *logger.Logger) *UserUsecase {
	return &UserUsecase{repo: repo, logger: log}
}

func (uc *UserUsecase) Register(ctx context.Context, username, email, password string) (*domain.User, error) {
	uc.logger.Info("UserUsecase.Register: registering new user", "username", username, "email", email)

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		uc.logger.Error("UserUsecase.Register: failed to hash password", "error", err.Error())
		return nil, err
	}

	user := &domain.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    time.Now(),
	}
	if err := uc.repo.Create(ctx, user); err != nil {
		uc.logger.Warn("UserUsecase.Register: failed to create user", "email", email, "error", err.Error())
		return nil, err
	}
	return user, nil
}

// Login checks the password against the stored hash. A missing user and a
// wrong password are indistinguishable to the caller.
func (uc *UserUsecase) Login(ctx context.Context, email, password string) (*domain.User, error) {
	user, err := uc.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		uc.logger.Warn("UserUsecase.Login: password mismatch", "email", email)
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

func (uc *UserUsecase) Profile(ctx context.Context, id domain.ID) (*domain.User, error) {
	return uc.repo.FindByID(ctx, id)
}
