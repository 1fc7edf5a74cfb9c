package auth

import (
	"context"
	"errors"
	"strings"

	"github.com/tharun69CS/EcoFinds/internal/platform/logger"
	userdomain "github.com/tharun69CS/EcoFinds/internal/user/domain"
)

var (
	ErrMissingCredential = errors.New("authorization token is not provided")
	ErrInvalidCredential = errors.New("authorization token is invalid or expired")
	ErrUnknownIdentity   = errors.New("token subject no longer exists")
)

// Identity is the resolved, authenticated representation of a caller.
type Identity struct {
	UserID   userdomain.ID
	Username string
	Email    string
}

// Resolver validates a bearer credential and resolves it to a user identity.
// It is read-only; every failure is terminal for the request.
type Resolver struct {
	tokens *TokenManager
	users  userdomain.Repository
	logger *logger.Logger
}

func NewResolver(tokens *TokenManager, users userdomain.Repository, log *logger.Logger) *Resolver {
	return &Resolver{tokens: tokens, users: users, logger: log}
}

// Resolve takes the raw Authorization header value, expects the form
// "Bearer <token>", verifies the token and loads the referenced user.
func (r *Resolver) Resolve(ctx context.Context, authorization string) (*Identity, error) {
	if authorization == "" {
		return nil, ErrMissingCredential
	}

	parts := strings.Fields(authorization)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		r.logger.Warn("Resolver: malformed authorization header")
		return nil, ErrMissingCredential
	}

	claims, err := r.tokens.Parse(parts[1])
	if err != nil {
		r.logger.Warn("Resolver: token validation failed", "error", err.Error())
		return nil, ErrInvalidCredential
	}

	user, err := r.users.FindByID(ctx, userdomain.ID(claims.UserID))
	if err != nil {
		if errors.Is(err, userdomain.ErrUserNotFound) {
			r.logger.Warn("Resolver: token references a deleted user", "user_id", claims.UserID)
			return nil, ErrUnknownIdentity
		}
		return nil, err
	}

	return &Identity{
		UserID:   user.ID,
		Username: user.Username,
		Email:    user.Email,
	}, nil
}
